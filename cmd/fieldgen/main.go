package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/png"
	"os"
	"strconv"
	"strings"
	"time"

	"noise-contours/internal/config"
	"noise-contours/internal/contour"
	"noise-contours/internal/field"
	"noise-contours/internal/fieldfile"
	"noise-contours/internal/render"
	"noise-contours/internal/scene"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default $"+config.EnvConfigPath+")")
	seed := flag.Int64("seed", 0, "random seed (0 = config seed, else random)")
	size := flag.String("size", "", "field size as WxH")
	dims := flag.Int("dims", 0, "1 or 2 dimensions")
	octaves := flag.Int("octaves", 0, "octave count")
	persistence := flag.Float64("persistence", 0, "amplitude falloff per octave, in (0, 1)")
	mode := flag.String("mode", "", "interpolation: linear or smoothed")
	threshold := flag.Float64("threshold", -1, "contour threshold in [0, 1]")
	cell := flag.Int("cell", 0, "pixels per sample in PNG output")
	scale := flag.Int("scale", 1, "extra nearest-neighbour upscale for PNG output")
	palette := flag.String("palette", "", "grayscale or terrain")
	format := flag.String("format", "png", "output format: png or json")
	out := flag.String("out", "", "output file (default: stdout)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fail("%v", err)
	}

	// Flags override the file.
	if *seed != 0 {
		cfg.Field.Seed = *seed
	}
	if *size != "" {
		w, h, err := parseSize(*size)
		if err != nil {
			fail("%v", err)
		}
		cfg.Field.Width, cfg.Field.Height = w, h
	}
	if *dims != 0 {
		cfg.Field.Dimensions = *dims
		if *octaves == 0 && *dims == 1 {
			cfg.Noise.Octaves = field.DefaultOctaves1D
		}
	}
	if *octaves != 0 {
		cfg.Noise.Octaves = *octaves
	}
	if *persistence != 0 {
		cfg.Noise.Persistence = *persistence
	}
	if *mode != "" {
		cfg.Noise.Interpolation = *mode
	}
	if *threshold >= 0 {
		cfg.Contour.Threshold = *threshold
	}
	if *cell != 0 {
		cfg.Render.CellSize = *cell
	}
	if *palette != "" {
		cfg.Render.Palette = *palette
	}
	if cfg.Field.Seed == 0 {
		cfg.Field.Seed = time.Now().UnixNano()
	}
	if *format != "png" && *format != "json" {
		fail("unknown format %q (available: png, json)", *format)
	}
	if *scale < 1 {
		fail("invalid scale %d (minimum 1)", *scale)
	}

	opts, err := scene.OptionsFromConfig(cfg)
	if err != nil {
		fail("%v", err)
	}
	fmt.Fprintf(os.Stderr, "Generating %dx%d %dD field (seed %d, %d octaves, persistence %.2f, %s)...\n",
		opts.Width, opts.Height, opts.Dimensions, cfg.Field.Seed, opts.Octaves.Count, opts.Octaves.Persistence, opts.Interpolation)

	f, err := scene.NewField(opts)
	if err != nil {
		fail("%v", err)
	}

	var data []byte
	switch *format {
	case "json":
		s := f.Settings()
		data, err = fieldfile.Marshal(&fieldfile.Document{
			Seed:          s.Seed,
			Dimensions:    s.Dimensions,
			Octaves:       s.Octaves,
			Interpolation: s.Interpolation,
			Threshold:     s.Threshold,
			Heights:       f.Heights(),
			Segments:      f.Segments(),
		})
		data = append(data, '\n')
	case "png":
		var buf bytes.Buffer
		img := render.ScaleImage(f.Frame().ToImage(), *scale)
		err = png.Encode(&buf, img)
		data = buf.Bytes()
	}
	if err != nil {
		fail("encoding %s: %v", *format, err)
	}

	if *out == "" {
		os.Stdout.Write(data)
	} else {
		if err := os.WriteFile(*out, data, 0644); err != nil {
			fail("writing file: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", *out, len(data))
	}

	printSummary(f)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WxH)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < 1 {
		return 0, 0, fmt.Errorf("invalid width %q (minimum 1)", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h < 1 {
		return 0, 0, fmt.Errorf("invalid height %q (minimum 1)", parts[1])
	}
	return w, h, nil
}

// printSummary writes the height distribution and contour counts to stderr.
func printSummary(f *scene.Field) {
	h := f.Heights()
	lo, hi := h.MinMax()
	fmt.Fprintf(os.Stderr, "\nHeight range: %.3f .. %.3f\n", lo, hi)

	const bins = 10
	var counts [bins]int
	for _, v := range h.Cells {
		b := int(v * bins)
		counts[min(max(b, 0), bins-1)]++
	}
	total := len(h.Cells)
	fmt.Fprintf(os.Stderr, "Height distribution:\n")
	for i, c := range counts {
		pct := float64(c) / float64(total) * 100
		fmt.Fprintf(os.Stderr, "  %.1f-%.1f %6d (%5.1f%%) %s\n",
			float64(i)/bins, float64(i+1)/bins, c, pct, strings.Repeat("█", int(pct/2)))
	}

	s := f.Settings()
	if s.Dimensions == 2 {
		fmt.Fprintf(os.Stderr, "Contour segments at %.2f: %d (max %d)\n",
			s.Threshold, len(f.Segments()), contour.MaxSegments(h.Width, h.Height))
	}
}
