// Package scene owns the shared noise field and the tick loop that applies
// viewer actions to it and publishes rendered snapshots.
package scene

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"noise-contours/internal/config"
	"noise-contours/internal/contour"
	"noise-contours/internal/field"
	"noise-contours/internal/metrics"
	"noise-contours/internal/render"
)

// Options configures a Field.
type Options struct {
	Width, Height int
	Seed          int64 // 0 picks a time-based seed
	Dimensions    int
	Octaves       field.Octaves
	Interpolation field.Interpolation
	Threshold     float64
	ShowContours  bool
	CellSize      int
	Palette       render.Palette
	ContourColor  render.Pixel
	Metrics       *metrics.Recorder
}

// OptionsFromConfig resolves a validated configuration into field options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	if err := cfg.Validate(); err != nil {
		return Options{}, err
	}
	mode, err := cfg.Interpolation()
	if err != nil {
		return Options{}, err
	}
	pal, err := render.PaletteByName(cfg.Render.Palette)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Width:         cfg.Field.Width,
		Height:        cfg.Field.Height,
		Seed:          cfg.Field.Seed,
		Dimensions:    cfg.Field.Dimensions,
		Octaves:       cfg.Octaves(),
		Interpolation: mode,
		Threshold:     cfg.Contour.Threshold,
		ShowContours:  cfg.Contour.Enabled,
		CellSize:      cfg.Render.CellSize,
		Palette:       pal,
		ContourColor:  cfg.ContourPixel(),
	}, nil
}

// Settings is a read-only view of the current parameters.
type Settings struct {
	Seed          int64
	Dimensions    int
	Octaves       field.Octaves
	Interpolation field.Interpolation
	Threshold     float64
	ShowContours  bool
	Segments      int
}

// Info formats the settings for the HUD.
func (s Settings) Info() string {
	parts := []string{
		fmt.Sprintf("seed %d", s.Seed),
		fmt.Sprintf("%dD", s.Dimensions),
		fmt.Sprintf("octaves %d", s.Octaves.Count),
		fmt.Sprintf("persistence %.2f", s.Octaves.Persistence),
		s.Interpolation.String(),
	}
	if s.Dimensions == 2 {
		parts = append(parts, fmt.Sprintf("threshold %.2f", s.Threshold))
		if s.ShowContours {
			parts = append(parts, fmt.Sprintf("%d segments", s.Segments))
		} else {
			parts = append(parts, "contours off")
		}
	}
	return strings.Join(parts, " │ ")
}

// Field holds the base noise, the derived height field and the contour
// segments, recomputing only the stages a change invalidated. It is not safe
// for concurrent use; the Loop owns it.
type Field struct {
	width, height int
	cell          int
	palette       render.Palette
	lineColor     render.Pixel
	rec           *metrics.Recorder

	rng     *rand.Rand
	seed    int64
	base    *field.Grid
	line    *field.Grid // first base row, used in 1D mode
	heights *field.Grid
	segs    []contour.Segment

	dims         int
	oct          field.Octaves
	mode         field.Interpolation
	threshold    float64
	showContours bool

	baseDirty, heightDirty, contourDirty bool
	revision                             uint64
}

// NewField validates opts and computes the initial field.
func NewField(opts Options) (*Field, error) {
	if opts.Width < 1 || opts.Height < 1 {
		return nil, &field.ConfigError{Param: "size", Value: [2]int{opts.Width, opts.Height}, Reason: "must be at least 1x1"}
	}
	if opts.Dimensions != 1 && opts.Dimensions != 2 {
		return nil, &field.ConfigError{Param: "dimensions", Value: opts.Dimensions, Reason: "must be 1 or 2"}
	}
	if err := checkOctaves(opts.Octaves); err != nil {
		return nil, err
	}
	if err := checkThreshold(opts.Threshold); err != nil {
		return nil, err
	}
	if opts.CellSize < 1 {
		opts.CellSize = 1
	}
	if opts.Palette == nil {
		opts.Palette = render.Grayscale{}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	f := &Field{
		width:        opts.Width,
		height:       opts.Height,
		cell:         opts.CellSize,
		palette:      opts.Palette,
		lineColor:    opts.ContourColor,
		rec:          opts.Metrics,
		rng:          rand.New(rand.NewSource(seed)),
		seed:         seed,
		dims:         opts.Dimensions,
		oct:          opts.Octaves,
		mode:         opts.Interpolation,
		threshold:    opts.Threshold,
		showContours: opts.ShowContours,
		baseDirty:    true,
	}
	if err := f.Update(); err != nil {
		return nil, err
	}
	return f, nil
}

// Revision increases whenever anything visible changes.
func (f *Field) Revision() uint64 { return f.revision }

func (f *Field) Settings() Settings {
	return Settings{
		Seed:          f.seed,
		Dimensions:    f.dims,
		Octaves:       f.oct,
		Interpolation: f.mode,
		Threshold:     f.threshold,
		ShowContours:  f.showContours,
		Segments:      len(f.segs),
	}
}

// Heights returns the current height field. In 1D mode it is one row high.
func (f *Field) Heights() *field.Grid { return f.heights }

// Segments returns the current contour segments; empty in 1D mode or with
// contours hidden.
func (f *Field) Segments() []contour.Segment { return f.segs }

// Regenerate draws a new seed and replaces the base noise.
func (f *Field) Regenerate() {
	f.seed = f.rng.Int63()
	f.baseDirty = true
	f.revision++
}

// Resmooth recomputes the height field from the current base noise.
func (f *Field) Resmooth() {
	f.heightDirty = true
	f.revision++
}

// SetOctaves sets the octave count, rejecting values outside 1..MaxOctaves.
func (f *Field) SetOctaves(n int) error {
	oct := field.Octaves{Count: n, Persistence: f.oct.Persistence}
	if err := checkOctaves(oct); err != nil {
		f.rec.Rejected()
		return err
	}
	f.oct = oct
	f.heightDirty = true
	f.revision++
	return nil
}

func (f *Field) AdjustOctaves(delta int) error {
	return f.SetOctaves(f.oct.Count + delta)
}

// AdjustPersistence changes the persistence by delta. Results outside (0, 1)
// are rejected and the current value kept.
func (f *Field) AdjustPersistence(delta float64) error {
	oct := field.Octaves{Count: f.oct.Count, Persistence: round2(f.oct.Persistence + delta)}
	if err := oct.Validate(); err != nil {
		f.rec.Rejected()
		return err
	}
	f.oct = oct
	f.heightDirty = true
	f.revision++
	return nil
}

// AdjustThreshold changes the contour threshold by delta within [0, 1].
func (f *Field) AdjustThreshold(delta float64) error {
	t := round2(f.threshold + delta)
	if err := checkThreshold(t); err != nil {
		f.rec.Rejected()
		return err
	}
	f.threshold = t
	f.contourDirty = true
	f.revision++
	return nil
}

func (f *Field) ToggleInterpolation() {
	if f.mode == field.Linear {
		f.mode = field.Smoothed
	} else {
		f.mode = field.Linear
	}
	if f.dims == 2 {
		f.heightDirty = true
	}
	f.revision++
}

// ToggleDimensions switches between 1D and 2D.
func (f *Field) ToggleDimensions() {
	f.SetDimensions(3 - f.dims)
}

// SetDimensions switches to 1D or 2D, resetting the octave count to that
// mode's default. Other values are ignored.
func (f *Field) SetDimensions(dims int) {
	if dims == f.dims || (dims != 1 && dims != 2) {
		return
	}
	f.dims = dims
	if dims == 1 {
		f.oct.Count = field.DefaultOctaves1D
	} else {
		f.oct.Count = field.DefaultOctaves2D
	}
	f.heightDirty = true
	f.revision++
}

func (f *Field) ToggleContours() {
	f.showContours = !f.showContours
	f.contourDirty = true
	f.revision++
}

// Update recomputes the stages invalidated since the last call.
func (f *Field) Update() error {
	if f.baseDirty {
		base, err := field.GenerateBaseNoise(f.width, f.height, f.seed)
		if err != nil {
			return fmt.Errorf("generate base noise: %w", err)
		}
		f.base = base
		f.line = &field.Grid{Width: f.width, Height: 1, Cells: base.Row(0)}
		f.baseDirty = false
		f.heightDirty = true
		f.rec.Regenerated()
	}

	if f.heightDirty {
		src := f.base
		if f.dims == 1 {
			src = f.line
		}
		if f.heights == nil || !f.heights.SameSize(src) {
			g, err := field.New(src.Width, src.Height)
			if err != nil {
				return err
			}
			f.heights = g
		}
		start := time.Now()
		var err error
		if f.dims == 1 {
			err = field.Derive1D(f.heights.Cells, src.Cells, f.oct)
		} else {
			err = field.Derive2D(f.heights, src, f.oct, f.mode)
		}
		if err != nil {
			return fmt.Errorf("derive height field: %w", err)
		}
		f.rec.Derived(f.dims, f.mode.String(), time.Since(start))
		f.heightDirty = false
		f.contourDirty = true
	}

	if f.contourDirty {
		f.segs = nil
		if f.dims == 2 && f.showContours {
			f.segs = contour.Extract(f.heights, f.threshold)
		}
		f.rec.Segments(len(f.segs))
		f.contourDirty = false
	}
	return nil
}

// Frame rasterises the current state: the shaded field with its contour
// overlay in 2D, or the height profile in 1D.
func (f *Field) Frame() *render.Frame {
	fr := render.NewFrame(f.width*f.cell, f.height*f.cell)
	if f.dims == 1 {
		fr.Fill(render.P(10, 10, 15))
		render.DrawProfile(fr, f.heights.Cells, f.palette, f.lineColor)
		return fr
	}
	render.ShadeField(fr, f.heights, f.cell, f.palette)
	if f.showContours {
		render.DrawSegments(fr, f.segs, f.cell, f.lineColor)
	}
	return fr
}

func checkOctaves(oct field.Octaves) error {
	if err := oct.Validate(); err != nil {
		return err
	}
	if oct.Count > MaxOctaves {
		return &field.ConfigError{Param: "octave count", Value: oct.Count, Reason: fmt.Sprintf("must be at most %d", MaxOctaves)}
	}
	return nil
}

func checkThreshold(t float64) error {
	if !(t >= 0 && t <= 1) {
		return &field.ConfigError{Param: "threshold", Value: t, Reason: "must lie in [0, 1]"}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
