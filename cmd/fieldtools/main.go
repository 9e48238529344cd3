package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"noise-contours/internal/config"
	"noise-contours/internal/contour"
	"noise-contours/internal/field"
	"noise-contours/internal/fieldfile"
	"noise-contours/internal/render"
	"noise-contours/internal/scene"
)

const vizCell = 2

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "validate":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: fieldtools validate <config.yaml|field.json|dir>")
			os.Exit(1)
		}
		os.Exit(runValidate(args[0]))
	case "viz":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: fieldtools viz <config.yaml|field.json>")
			os.Exit(1)
		}
		os.Exit(runViz(args[0]))
	case "stats":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: fieldtools stats <config.yaml|field.json>")
			os.Exit(1)
		}
		os.Exit(runStats(args[0]))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: fieldtools <command> <path>

Commands:
  validate <path>   Check a config, a field file, or every file in a directory
  viz      <path>   Render the field as half-block ANSI art
  stats    <path>   Show height distribution and marching-squares case counts

A .yaml/.yml path is generated from its config; a .json path is a saved field.`)
}

// loaded is a height field plus the settings needed to draw it.
type loaded struct {
	name      string
	heights   *field.Grid
	dims      int
	threshold float64
	segs      []contour.Segment
	palette   render.Palette
	line      render.Pixel
}

func isConfig(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func load(path string) (*loaded, error) {
	if isConfig(path) {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		opts, err := scene.OptionsFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		if opts.Seed == 0 {
			opts.Seed = 1
		}
		f, err := scene.NewField(opts)
		if err != nil {
			return nil, err
		}
		return &loaded{
			name:      filepath.Base(path),
			heights:   f.Heights(),
			dims:      opts.Dimensions,
			threshold: opts.Threshold,
			segs:      f.Segments(),
			palette:   opts.Palette,
			line:      opts.ContourColor,
		}, nil
	}

	d, err := fieldfile.Load(path)
	if err != nil {
		return nil, err
	}
	dims := d.Dimensions
	if d.Heights.Height == 1 {
		dims = 1
	}
	return &loaded{
		name:      d.Name,
		heights:   d.Heights,
		dims:      dims,
		threshold: d.Threshold,
		segs:      d.Segments,
		palette:   render.Grayscale{},
		line:      render.P(255, 64, 64),
	}, nil
}

// --- validate ---

func runValidate(path string) int {
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		return 1
	}

	paths := []string{path}
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
			return 1
		}
		paths = paths[:0]
		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if !e.IsDir() && (ext == ".json" || ext == ".yaml" || ext == ".yml") {
				paths = append(paths, filepath.Join(path, e.Name()))
			}
		}
	}

	errors := 0
	for _, p := range paths {
		fmt.Printf("Validating %s...\n", p)
		if err := validateOne(p); err != nil {
			fmt.Printf("  ERROR: %v\n", err)
			errors++
			continue
		}
		fmt.Println("  OK")
	}

	if errors > 0 {
		fmt.Printf("\n%d error(s) found\n", errors)
		return 1
	}
	fmt.Printf("\nAll %d files valid\n", len(paths))
	return 0
}

func validateOne(path string) error {
	if isConfig(path) {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		return cfg.Validate()
	}

	d, err := fieldfile.Load(path)
	if err != nil {
		return err
	}
	// Stored segments must match a fresh extraction. An export without
	// segments had contours switched off.
	if d.Heights.Height > 1 && len(d.Segments) > 0 {
		return compareSegments(d.Segments, contour.Extract(d.Heights, d.Threshold))
	}
	return nil
}

func compareSegments(stored, want []contour.Segment) error {
	if len(stored) != len(want) {
		return fmt.Errorf("%d stored segments, extraction gives %d", len(stored), len(want))
	}
	for i := range want {
		if stored[i] != want[i] {
			return fmt.Errorf("segment %d is %v, extraction gives %v", i, stored[i], want[i])
		}
	}
	return nil
}

// --- viz ---

func runViz(path string) int {
	l, err := load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	h := l.heights
	fmt.Printf("%s (%dx%d)\n", l.name, h.Width, h.Height)
	if l.dims == 1 {
		fr := render.NewFrame(h.Width*vizCell, 24)
		render.DrawProfile(fr, h.Cells, l.palette, l.line)
		fmt.Print(render.HalfBlocks(fr))
	} else {
		fr := render.NewFrame(h.Width*vizCell, h.Height*vizCell)
		render.ShadeField(fr, h, vizCell, l.palette)
		render.DrawSegments(fr, l.segs, vizCell, l.line)
		fmt.Print(render.HalfBlocks(fr))
	}
	fmt.Println()
	return 0
}

// --- stats ---

func runStats(path string) int {
	l, err := load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	h := l.heights
	lo, hi := h.MinMax()
	fmt.Printf("%s (%dx%d = %d samples)\n", l.name, h.Width, h.Height, len(h.Cells))
	fmt.Printf("Range: %.3f .. %.3f\n\n", lo, hi)

	const bins = 10
	var counts [bins]int
	for _, v := range h.Cells {
		counts[min(max(int(v*bins), 0), bins-1)]++
	}
	total := len(h.Cells)
	for i, c := range counts {
		pct := float64(c) / float64(total) * 100
		bar := strings.Repeat("█", int(pct/2))
		fmt.Printf("  %.1f-%.1f %6d (%5.1f%%) %s\n", float64(i)/bins, float64(i+1)/bins, c, pct, bar)
	}

	if h.Height < 2 {
		return 0
	}

	hist := contour.Histogram(h, l.threshold)
	type entry struct {
		idx   int
		count int
	}
	var sorted []entry
	for i, c := range hist {
		if c > 0 {
			sorted = append(sorted, entry{i, c})
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].idx < sorted[j].idx
	})

	cells := (h.Width - 1) * (h.Height - 1)
	fmt.Printf("\nCases at threshold %.2f:\n", l.threshold)
	segs := 0
	for _, e := range sorted {
		segs += e.count * contour.Table[e.idx].Segments()
		pct := float64(e.count) / float64(cells) * 100
		fmt.Printf("  case %2d %6d (%5.1f%%) %s\n", e.idx, e.count, pct, strings.Repeat("█", int(pct/2)))
	}
	fmt.Printf("\nSegments: %d (max %d)\n", segs, contour.MaxSegments(h.Width, h.Height))
	fmt.Printf("Saddles:  %d\n", hist[contour.SaddleTRBL]+hist[contour.SaddleTLBR])
	return 0
}
