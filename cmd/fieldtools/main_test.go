package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noise-contours/internal/contour"
	"noise-contours/internal/field"
	"noise-contours/internal/fieldfile"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigGeneratesField(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "small.yaml", "field:\n  width: 16\n  height: 12\n  seed: 5\n")

	l, err := load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, l.heights.Width)
	assert.Equal(t, 12, l.heights.Height)
	assert.Equal(t, 2, l.dims)
	assert.NoError(t, validateOne(path))
}

func TestValidateDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.yaml", "noise:\n  octaves: 4\n")
	assert.Equal(t, 0, runValidate(dir))

	writeFile(t, dir, "bad.yml", "noise:\n  persistence: 3\n")
	assert.Equal(t, 1, runValidate(dir))
	assert.Equal(t, 1, runValidate(filepath.Join(dir, "missing")))
}

func exportField(t *testing.T, dir string, mutate func([]contour.Segment)) string {
	t.Helper()
	base, err := field.GenerateBaseNoise(12, 10, 9)
	require.NoError(t, err)
	oct := field.Octaves{Count: 3, Persistence: 0.5}
	h, err := field.DeriveHeightField(base, oct, field.Linear)
	require.NoError(t, err)
	segs := contour.Extract(h, 0.5)
	require.NotEmpty(t, segs)
	mutate(segs)

	data, err := fieldfile.Marshal(&fieldfile.Document{
		Dimensions:    2,
		Octaves:       oct,
		Interpolation: field.Linear,
		Threshold:     0.5,
		Heights:       h,
		Segments:      segs,
	})
	require.NoError(t, err)
	path := filepath.Join(dir, "field.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestValidateComparesSegments(t *testing.T) {
	path := exportField(t, t.TempDir(), func([]contour.Segment) {})
	assert.NoError(t, validateOne(path))

	shifted := exportField(t, t.TempDir(), func(segs []contour.Segment) {
		segs[len(segs)/2].A.X += 1
	})
	err := validateOne(shifted)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "segment")

	swapped := exportField(t, t.TempDir(), func(segs []contour.Segment) {
		segs[0].A, segs[0].B = segs[0].B, segs[0].A
	})
	assert.Error(t, validateOne(swapped))
}

func TestCompareSegmentsCounts(t *testing.T) {
	one := []contour.Segment{{A: contour.Point{X: 0, Y: 0.5}, B: contour.Point{X: 0.5, Y: 0}}}
	assert.NoError(t, compareSegments(one, one))
	assert.Error(t, compareSegments(one, nil))
}
