package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridAddressing(t *testing.T) {
	g, err := New(3, 2)
	require.NoError(t, err)
	require.Len(t, g.Cells, 6)

	g.Set(2, 1, 0.75)
	assert.Equal(t, 0.75, g.At(2, 1))
	assert.Equal(t, 5, g.Index(2, 1))
	assert.Equal(t, 0.75, g.Cells[5])
	assert.Equal(t, []float64{0, 0, 0.75}, g.Row(1))
}

func TestGridWrap(t *testing.T) {
	g, err := New(4, 3)
	require.NoError(t, err)
	for i := range g.Cells {
		g.Cells[i] = float64(i)
	}

	tests := []struct {
		x, y int
		want float64
	}{
		{0, 0, 0},
		{4, 0, 0},
		{5, 3, 1},
		{-1, 0, 3},
		{-1, -1, 11},
		{8, 6, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, g.Wrap(tt.x, tt.y), "Wrap(%d,%d)", tt.x, tt.y)
	}
}

func TestGridNewRejectsEmpty(t *testing.T) {
	_, err := New(0, 5)
	assert.ErrorIs(t, err, ErrConfig)
	_, err = New(5, 0)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestGridCloneAndMinMax(t *testing.T) {
	g, err := New(2, 2)
	require.NoError(t, err)
	copy(g.Cells, []float64{0.3, 0.9, 0.1, 0.5})

	c := g.Clone()
	c.Fill(0)
	lo, hi := g.MinMax()
	assert.Equal(t, 0.1, lo)
	assert.Equal(t, 0.9, hi)
	assert.True(t, g.SameSize(c))
	assert.Equal(t, []float64{0, 0, 0, 0}, c.Cells)
}
