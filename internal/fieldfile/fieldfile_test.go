package fieldfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noise-contours/internal/contour"
	"noise-contours/internal/field"
)

func sampleDocument(t *testing.T) *Document {
	t.Helper()
	base, err := field.GenerateBaseNoise(8, 6, 3)
	require.NoError(t, err)
	oct := field.Octaves{Count: 3, Persistence: 0.5}
	h, err := field.DeriveHeightField(base, oct, field.Smoothed)
	require.NoError(t, err)
	return &Document{
		Name:          "sample",
		Seed:          3,
		Dimensions:    2,
		Octaves:       oct,
		Interpolation: field.Smoothed,
		Threshold:     0.5,
		Heights:       h,
		Segments:      contour.Extract(h, 0.5),
	}
}

func export(t *testing.T, d *Document, path string) {
	t.Helper()
	data, err := Marshal(d)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestExportLoad(t *testing.T) {
	d := sampleDocument(t)
	path := filepath.Join(t.TempDir(), "sample.json")
	export(t, d, path)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Width)
	assert.Equal(t, 6, got.Height)
	assert.Equal(t, d.Octaves, got.Octaves)
	assert.Equal(t, field.Smoothed, got.Interpolation)
	assert.InDeltaSlice(t, d.Heights.Cells, got.Heights.Cells, 1e-12)
	assert.Equal(t, d.Segments, got.Segments)
}

func TestUnmarshalRejects(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", `{`},
		{"bad mode", `{"width":1,"height":1,"dimensions":1,"octaves":1,"persistence":0.5,"interpolation":"cubic","heights":[[0.5]]}`},
		{"bad persistence", `{"width":1,"height":1,"dimensions":1,"octaves":1,"persistence":2,"interpolation":"linear","heights":[[0.5]]}`},
		{"row count", `{"width":1,"height":2,"dimensions":2,"octaves":1,"persistence":0.5,"interpolation":"linear","heights":[[0.5]]}`},
		{"row width", `{"width":2,"height":1,"dimensions":1,"octaves":1,"persistence":0.5,"interpolation":"linear","heights":[[0.5]]}`},
		{"missing dimensions", `{"width":1,"height":1,"octaves":1,"persistence":0.5,"interpolation":"linear","heights":[[0.5]]}`},
		{"three dimensions", `{"width":1,"height":1,"dimensions":3,"octaves":1,"persistence":0.5,"interpolation":"linear","heights":[[0.5]]}`},
		{"1d with rows", `{"width":1,"height":2,"dimensions":1,"octaves":1,"persistence":0.5,"interpolation":"linear","heights":[[0.5],[0.5]]}`},
		{"threshold above one", `{"width":1,"height":1,"dimensions":1,"octaves":1,"persistence":0.5,"interpolation":"linear","threshold":5,"heights":[[0.5]]}`},
		{"negative threshold", `{"width":1,"height":1,"dimensions":1,"octaves":1,"persistence":0.5,"interpolation":"linear","threshold":-0.1,"heights":[[0.5]]}`},
		{"out of range", `{"width":1,"height":1,"dimensions":1,"octaves":1,"persistence":0.5,"interpolation":"linear","heights":[[1.5]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.json))
			assert.Error(t, err)
		})
	}

	_, err := Unmarshal([]byte(`{"width":1,"height":1,"dimensions":1,"threshold":5,"octaves":1,"persistence":0.5,"interpolation":"linear","heights":[[0.5]]}`))
	assert.ErrorIs(t, err, field.ErrConfig)
}

func TestUnmarshalAccepts1D(t *testing.T) {
	d, err := Unmarshal([]byte(`{"width":2,"height":1,"dimensions":1,"octaves":8,"persistence":0.5,"interpolation":"linear","heights":[[0.25,0.75]]}`))
	require.NoError(t, err)
	assert.Equal(t, 1, d.Dimensions)
	assert.Equal(t, []float64{0.25, 0.75}, d.Heights.Cells)
	assert.Empty(t, d.Segments)
}

func TestLoadNamesFromFile(t *testing.T) {
	dir := t.TempDir()
	d := sampleDocument(t)
	d.Name = ""
	export(t, d, filepath.Join(dir, "one.json"))

	got, err := Load(filepath.Join(dir, "one.json"))
	require.NoError(t, err)
	assert.Equal(t, "one", got.Name)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
