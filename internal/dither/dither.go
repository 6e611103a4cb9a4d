// Package dither reduces normalized images to a small set of gray levels.
//
// Every algorithm writes a monochrome pixel: all channels receive the same
// level, chosen from the average of the input channels. Error diffusion
// depends on raster order, so Apply always runs sequentially.
package dither

import (
	"fmt"
	"math/rand/v2"

	"golang.org/x/text/cases"

	"github.com/gogpu/rasterkit/internal/image"
)

// Algorithm identifies a dithering algorithm.
type Algorithm uint8

const (
	None Algorithm = iota
	Random
	Ordered
	FloydSteinberg
	Atkinson
	algorithmCount
)

var algorithmNames = [algorithmCount]string{
	None:           "none",
	Random:         "random",
	Ordered:        "ordered",
	FloydSteinberg: "floyd-steinberg",
	Atkinson:       "atkinson",
}

// String returns the algorithm name.
func (a Algorithm) String() string {
	if a >= algorithmCount {
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
	return algorithmNames[a]
}

// ParseAlgorithm maps a case-insensitive name to its Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	want := cases.Fold().String(name)
	for a, n := range algorithmNames {
		if n == want {
			return Algorithm(a), nil
		}
	}
	return 0, fmt.Errorf("dither: unknown algorithm %q: %w", name, image.ErrUnsupported)
}

// bayer8 is the 8x8 Bayer threshold matrix, indexed [y][x].
var bayer8 = [8][8]float64{
	{0, 32, 8, 40, 2, 34, 10, 42},
	{48, 16, 56, 24, 50, 18, 58, 26},
	{12, 44, 4, 36, 14, 46, 6, 38},
	{60, 28, 52, 20, 62, 30, 54, 22},
	{3, 35, 11, 43, 1, 33, 9, 41},
	{51, 19, 59, 27, 49, 17, 57, 25},
	{15, 47, 7, 39, 13, 45, 5, 37},
	{63, 31, 55, 23, 61, 29, 53, 21},
}

// tap is one error-diffusion neighbour: an offset and its share of the error.
type tap struct {
	dx, dy int
	weight float64
}

var floydSteinbergTaps = []tap{
	{1, 0, 7.0 / 16},
	{-1, 1, 3.0 / 16},
	{0, 1, 5.0 / 16},
	{1, 1, 1.0 / 16},
}

// atkinsonTaps spread 6/8 of the error; the remaining 2/8 is dropped.
var atkinsonTaps = []tap{
	{1, 0, 1.0 / 8},
	{2, 0, 1.0 / 8},
	{-1, 1, 1.0 / 8},
	{0, 1, 1.0 / 8},
	{1, 1, 1.0 / 8},
	{0, 2, 1.0 / 8},
}

// Ditherer applies one algorithm with a fixed level set.
type Ditherer struct {
	algo   Algorithm
	levels Levels
	rng    *rand.Rand
}

// New returns a Ditherer quantizing to 2^bits levels. rng feeds the Random
// algorithm; a nil rng gets a freshly seeded generator.
func New(algo Algorithm, bits int, rng *rand.Rand) (*Ditherer, error) {
	levels, err := NewLevels(bits)
	if err != nil {
		return nil, err
	}
	return NewWithLevels(algo, levels, rng)
}

// NewWithLevels is like New with an explicit level set.
func NewWithLevels(algo Algorithm, levels Levels, rng *rand.Rand) (*Ditherer, error) {
	if algo >= algorithmCount {
		return nil, fmt.Errorf("dither: %v: %w", algo, image.ErrUnsupported)
	}
	if len(levels) < 2 {
		return nil, fmt.Errorf("dither: %d levels, need at least 2: %w", len(levels), image.ErrUnsupported)
	}
	// Nearest relies on a strictly ascending set inside [0, 1].
	for i, v := range levels {
		if !(v >= 0 && v <= 1) {
			return nil, fmt.Errorf("dither: level %v outside [0, 1]: %w", v, image.ErrUnsupported)
		}
		if i > 0 && v <= levels[i-1] {
			return nil, fmt.Errorf("dither: levels not ascending at %d: %w", i, image.ErrUnsupported)
		}
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Ditherer{algo: algo, levels: levels, rng: rng}, nil
}

// Algorithm returns the configured algorithm.
func (d *Ditherer) Algorithm() Algorithm { return d.algo }

// Levels returns the quantization level set.
func (d *Ditherer) Levels() Levels { return d.levels }

// ApplyAt dithers the pixel at (x, y) in place. Error-diffusion
// algorithms also update the not yet visited neighbours; neighbours
// outside the image are skipped. Out-of-bounds positions are ignored.
func (d *Ditherer) ApplyAt(buf *image.FloatBuf, x, y int) {
	px := buf.Pixel(x, y)
	if px == nil || d.algo == None {
		return
	}

	var avg float64
	for _, v := range px {
		avg += v
	}
	avg /= float64(len(px))

	n := float64(len(d.levels))
	var q float64
	switch d.algo {
	case Random:
		q = d.levels.Nearest(avg + (2*d.rng.Float64()-1)/n)
	case Ordered:
		q = d.levels.Nearest(avg + (bayer8[y%8][x%8]/64-0.5)/n)
	case FloydSteinberg:
		q = d.levels.Nearest(avg)
		diffuse(buf, x, y, avg-q, floydSteinbergTaps)
	case Atkinson:
		q = d.levels.Nearest(avg)
		diffuse(buf, x, y, avg-q, atkinsonTaps)
	}
	for i := range px {
		px[i] = q
	}
}

// Apply dithers the whole buffer in raster order.
func (d *Ditherer) Apply(buf *image.FloatBuf) {
	if d.algo == None {
		return
	}
	for y := range buf.Height() {
		for x := range buf.Width() {
			d.ApplyAt(buf, x, y)
		}
	}
}

func diffuse(buf *image.FloatBuf, x, y int, err float64, taps []tap) {
	for _, t := range taps {
		nb := buf.Pixel(x+t.dx, y+t.dy)
		if nb == nil {
			continue
		}
		for i := range nb {
			nb[i] += err * t.weight
		}
	}
}

// ApplyAt dithers a single position with algo and levels.
func ApplyAt(algo Algorithm, buf *image.FloatBuf, x, y int, levels Levels, rng *rand.Rand) error {
	d, err := NewWithLevels(algo, levels, rng)
	if err != nil {
		return err
	}
	d.ApplyAt(buf, x, y)
	return nil
}
