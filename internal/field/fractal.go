package field

// Derive1D fills dst with multi-octave value noise sampled from base. Each
// octave halves the sampling pitch (floored at 1) and scales the amplitude by
// oct.Persistence. Samples wrap around the end of base,
// so the result is periodic. The sum is divided by the accumulated amplitude,
// keeping dst inside the range of base.
func Derive1D(dst, base []float64, oct Octaves) error {
	if err := oct.Validate(); err != nil {
		return err
	}
	w := len(base)
	if w < 1 {
		return &ConfigError{Param: "width", Value: w, Reason: "must be at least 1"}
	}
	if len(dst) != w {
		return &ConfigError{Param: "output length", Value: len(dst), Reason: "must match base length"}
	}
	if overlaps(dst, base) {
		return &ConfigError{Param: "output", Value: "base", Reason: "must not share storage with base"}
	}

	for x := range dst {
		dst[x] = 0
	}
	amp, acc := 1.0, 0.0
	for o := 0; o < oct.Count; o++ {
		pitch := octavePitch(w, o)
		for x := 0; x < w; x++ {
			s1 := (x / pitch) * pitch
			s2 := (s1 + pitch) % w
			blend := float64(x-s1) / float64(pitch)
			dst[x] += amp * lerp(base[s1], base[s2], blend)
		}
		acc += amp
		amp *= oct.Persistence
	}
	for x := range dst {
		dst[x] /= acc
	}
	return nil
}

// Derive2D is the two-dimensional form of Derive1D. Pitches are computed per
// axis and each cell bilinearly blends the four wrapped corner samples of its
// octave cell. With Smoothed the blend factors are eased before use.
func Derive2D(dst, base *Grid, oct Octaves, mode Interpolation) error {
	if err := oct.Validate(); err != nil {
		return err
	}
	if err := checkMode(mode); err != nil {
		return err
	}
	if base.Width < 1 || base.Height < 1 {
		return &ConfigError{Param: "dimensions", Value: [2]int{base.Width, base.Height}, Reason: "must be at least 1x1"}
	}
	if !dst.SameSize(base) || len(dst.Cells) != len(base.Cells) {
		return &ConfigError{Param: "output size", Value: [2]int{dst.Width, dst.Height}, Reason: "must match base size"}
	}
	if overlaps(dst.Cells, base.Cells) {
		return &ConfigError{Param: "output", Value: "base", Reason: "must not share storage with base"}
	}

	w, h := base.Width, base.Height
	dst.Fill(0)
	amp, acc := 1.0, 0.0
	for o := 0; o < oct.Count; o++ {
		pitchX := octavePitch(w, o)
		pitchY := octavePitch(h, o)
		for y := 0; y < h; y++ {
			y1 := (y / pitchY) * pitchY
			y2 := (y1 + pitchY) % h
			by := ease(float64(y-y1)/float64(pitchY), mode)
			for x := 0; x < w; x++ {
				x1 := (x / pitchX) * pitchX
				x2 := (x1 + pitchX) % w
				bx := ease(float64(x-x1)/float64(pitchX), mode)

				top := lerp(base.At(x1, y1), base.At(x2, y1), bx)
				bottom := lerp(base.At(x1, y2), base.At(x2, y2), bx)
				dst.Cells[y*w+x] += amp * lerp(top, bottom, by)
			}
		}
		acc += amp
		amp *= oct.Persistence
	}
	for i := range dst.Cells {
		dst.Cells[i] /= acc
	}
	return nil
}

// DeriveHeightField allocates a height field for base. A single-row base is
// treated as a 1D field.
func DeriveHeightField(base *Grid, oct Octaves, mode Interpolation) (*Grid, error) {
	if base.Width < 1 || base.Height < 1 {
		return nil, &ConfigError{Param: "dimensions", Value: [2]int{base.Width, base.Height}, Reason: "must be at least 1x1"}
	}
	if err := checkMode(mode); err != nil {
		return nil, err
	}
	out := &Grid{Width: base.Width, Height: base.Height, Cells: make([]float64, len(base.Cells))}
	var err error
	if base.Height == 1 {
		err = Derive1D(out.Cells, base.Cells, oct)
	} else {
		err = Derive2D(out, base, oct, mode)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// overlaps reports whether a and b share any element of a backing array.
func overlaps(a, b []float64) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	for i := range a {
		if &a[i] == &b[0] {
			return true
		}
	}
	for i := range b {
		if &b[i] == &a[0] {
			return true
		}
	}
	return false
}

func checkMode(mode Interpolation) error {
	if mode != Linear && mode != Smoothed {
		return &ConfigError{Param: "interpolation", Value: mode, Reason: "unknown mode"}
	}
	return nil
}

func octavePitch(size, octave int) int {
	if octave >= 63 {
		return 1
	}
	p := size >> octave
	if p < 1 {
		p = 1
	}
	return p
}

func lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// ease applies the cubic smoothstep t*t*(3-2t) in Smoothed mode.
func ease(t float64, mode Interpolation) float64 {
	if mode == Smoothed {
		return t * t * (3 - 2*t)
	}
	return t
}
