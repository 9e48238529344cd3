package field

import (
	"fmt"
	"math/rand"
	"strings"
)

// RandomSource yields uniform values in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// FillRandom overwrites every cell with an independent sample from src.
func FillRandom(g *Grid, src RandomSource) {
	for i := range g.Cells {
		g.Cells[i] = src.Float64()
	}
}

// GenerateBaseNoise allocates a width x height grid of seeded uniform noise.
func GenerateBaseNoise(width, height int, seed int64) (*Grid, error) {
	g, err := New(width, height)
	if err != nil {
		return nil, err
	}
	FillRandom(g, rand.New(rand.NewSource(seed)))
	return g, nil
}

// Interpolation selects how blend factors are applied between samples.
type Interpolation int

const (
	Linear Interpolation = iota
	Smoothed
)

func (m Interpolation) String() string {
	switch m {
	case Linear:
		return "linear"
	case Smoothed:
		return "smoothed"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(m))
	}
}

// ParseInterpolation accepts "linear" or "smoothed" (case-insensitive).
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear":
		return Linear, nil
	case "smoothed", "smooth":
		return Smoothed, nil
	}
	return Linear, &ConfigError{Param: "interpolation", Value: s, Reason: "expected linear or smoothed"}
}

// Octaves configures fractal accumulation.
type Octaves struct {
	Count       int
	Persistence float64
}

const (
	DefaultOctaves1D   = 8
	DefaultOctaves2D   = 5
	DefaultPersistence = 0.5
)

// Validate rejects a non-positive count or a persistence outside (0, 1).
func (o Octaves) Validate() error {
	if o.Count <= 0 {
		return &ConfigError{Param: "octave count", Value: o.Count, Reason: "must be positive"}
	}
	if !(o.Persistence > 0 && o.Persistence < 1) {
		return &ConfigError{Param: "persistence", Value: o.Persistence, Reason: "must lie in (0, 1)"}
	}
	return nil
}
