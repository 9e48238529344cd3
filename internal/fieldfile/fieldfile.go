// Package fieldfile is the JSON export format for generated height fields.
// Exports are written once by the generator and read back only for
// inspection; nothing restores a session from them.
package fieldfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"noise-contours/internal/contour"
	"noise-contours/internal/field"
)

// Document is a generated field together with the settings that produced it.
type Document struct {
	Name          string
	Seed          int64
	Width         int
	Height        int
	Dimensions    int
	Octaves       field.Octaves
	Interpolation field.Interpolation
	Threshold     float64
	Heights       *field.Grid
	Segments      []contour.Segment
}

// jsonField is the on-disk JSON format.
type jsonField struct {
	Name          string       `json:"name,omitempty"`
	Seed          int64        `json:"seed"`
	Width         int          `json:"width"`
	Height        int          `json:"height"`
	Dimensions    int          `json:"dimensions"`
	Octaves       int          `json:"octaves"`
	Persistence   float64      `json:"persistence"`
	Interpolation string       `json:"interpolation"`
	Threshold     float64      `json:"threshold"`
	Heights       [][]float64  `json:"heights"` // [y][x]
	Segments      [][4]float64 `json:"segments,omitempty"`
}

// Marshal encodes d as indented JSON.
func Marshal(d *Document) ([]byte, error) {
	if d.Heights == nil {
		return nil, fmt.Errorf("field %q has no heights", d.Name)
	}
	jf := jsonField{
		Name:          d.Name,
		Seed:          d.Seed,
		Width:         d.Heights.Width,
		Height:        d.Heights.Height,
		Dimensions:    d.Dimensions,
		Octaves:       d.Octaves.Count,
		Persistence:   d.Octaves.Persistence,
		Interpolation: d.Interpolation.String(),
		Threshold:     d.Threshold,
		Heights:       make([][]float64, d.Heights.Height),
	}
	for y := range jf.Heights {
		jf.Heights[y] = append([]float64(nil), d.Heights.Row(y)...)
	}
	for _, s := range d.Segments {
		jf.Segments = append(jf.Segments, [4]float64{s.A.X, s.A.Y, s.B.X, s.B.Y})
	}
	return json.MarshalIndent(jf, "", "  ")
}

// Unmarshal decodes and checks a field document.
func Unmarshal(data []byte) (*Document, error) {
	var jf jsonField
	if err := json.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("parse field JSON: %w", err)
	}

	mode, err := field.ParseInterpolation(jf.Interpolation)
	if err != nil {
		return nil, err
	}
	oct := field.Octaves{Count: jf.Octaves, Persistence: jf.Persistence}
	if err := oct.Validate(); err != nil {
		return nil, err
	}
	if jf.Dimensions != 1 && jf.Dimensions != 2 {
		return nil, &field.ConfigError{Param: "dimensions", Value: jf.Dimensions, Reason: "must be 1 or 2"}
	}
	if jf.Dimensions == 1 && jf.Height != 1 {
		return nil, &field.ConfigError{Param: "height", Value: jf.Height, Reason: "must be 1 for a 1D field"}
	}
	if !(jf.Threshold >= 0 && jf.Threshold <= 1) {
		return nil, &field.ConfigError{Param: "threshold", Value: jf.Threshold, Reason: "must lie in [0, 1]"}
	}
	if len(jf.Heights) != jf.Height {
		return nil, fmt.Errorf("heights has %d rows, expected %d", len(jf.Heights), jf.Height)
	}
	g, err := field.New(jf.Width, jf.Height)
	if err != nil {
		return nil, err
	}
	for y, row := range jf.Heights {
		if len(row) != jf.Width {
			return nil, fmt.Errorf("row %d has %d values, expected %d", y, len(row), jf.Width)
		}
		for x, v := range row {
			if !(v >= 0 && v <= 1) {
				return nil, fmt.Errorf("height (%d,%d) = %v outside [0, 1]", x, y, v)
			}
		}
		copy(g.Row(y), row)
	}

	d := &Document{
		Name:          jf.Name,
		Seed:          jf.Seed,
		Width:         jf.Width,
		Height:        jf.Height,
		Dimensions:    jf.Dimensions,
		Octaves:       oct,
		Interpolation: mode,
		Threshold:     jf.Threshold,
		Heights:       g,
	}
	for _, s := range jf.Segments {
		d.Segments = append(d.Segments, contour.Segment{
			A: contour.Point{X: s[0], Y: s[1]},
			B: contour.Point{X: s[2], Y: s[3]},
		})
	}
	return d, nil
}

// Load reads an exported field for inspection.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read field file: %w", err)
	}
	d, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	return d, nil
}
