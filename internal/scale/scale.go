// Package scale resamples normalized images to new dimensions and shifts
// them on the pixel grid.
package scale

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/text/cases"

	"github.com/gogpu/rasterkit/internal/image"
	"github.com/gogpu/rasterkit/internal/parallel"
)

// Algorithm identifies a resampling algorithm.
type Algorithm uint8

const (
	None Algorithm = iota
	Nearest
	Bilinear
	Lanczos3
	BCSpline
	algorithmCount
)

var algorithmNames = [algorithmCount]string{
	None:     "none",
	Nearest:  "nearest",
	Bilinear: "bilinear",
	Lanczos3: "lanczos3",
	BCSpline: "bc-spline",
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
	return 0, fmt.Errorf("scale: unknown algorithm %q: %w", name, image.ErrUnsupported)
}

// Options tune a resampling run.
type Options struct {
	// Workers bounds row parallelism; see parallel.Workers.
	Workers int

	// Spline holds the BCSpline parameters. Nil means DefaultSpline.
	Spline *Spline

	// Scratch recycles the intermediate buffer of Lanczos3 and BCSpline
	// between runs. Nil allocates a fresh one each time.
	Scratch *image.Pool
}

// Scale resamples src to width x height. When the dimensions already
// match, or algo is None, src itself is returned. Otherwise the result is
// a new buffer of the same format with every sample clamped to [0,1].
func Scale(ctx context.Context, algo Algorithm, src *image.FloatBuf, width, height int, opts Options) (*image.FloatBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("scale: target %dx%d: %w", width, height, image.ErrSize)
	}
	if algo >= algorithmCount {
		return nil, fmt.Errorf("scale: %v: %w", algo, image.ErrUnsupported)
	}
	if algo == None || (src.Width() == width && src.Height() == height) {
		return src, nil
	}

	switch algo {
	case Nearest:
		return nearest(ctx, src, width, height, opts.Workers)
	case Bilinear:
		return bilinear(ctx, src, width, height, opts.Workers)
	case Lanczos3:
		return separable(ctx, src, width, height, opts.Workers, opts.Scratch, lanczosTaps)
	case BCSpline:
		sp := DefaultSpline
		if opts.Spline != nil {
			sp = *opts.Spline
		}
		return separable(ctx, src, width, height, opts.Workers, opts.Scratch, sp.taps)
	default:
		return nil, fmt.Errorf("scale: %v: %w", algo, image.ErrUnsupported)
	}
}

// nearest samples source pixel (floor(x*srcW/dstW), floor(y*srcH/dstH)).
func nearest(ctx context.Context, src *image.FloatBuf, width, height, workers int) (*image.FloatBuf, error) {
	dst, err := image.NewFloatBuf(width, height, src.Format())
	if err != nil {
		return nil, err
	}
	sw, sh := src.Bounds()
	err = parallel.Rows(ctx, height, workers, func(y int) error {
		sy := y * sh / height
		for x := range width {
			dst.SetPixel(x, y, src.Pixel(x*sw/width, sy))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// bilinear blends the four samples around the fractional source
// coordinate. Taps past the right or bottom edge contribute 0.
func bilinear(ctx context.Context, src *image.FloatBuf, width, height, workers int) (*image.FloatBuf, error) {
	dst, err := image.NewFloatBuf(width, height, src.Format())
	if err != nil {
		return nil, err
	}
	sw, sh := src.Bounds()
	rx := float64(sw) / float64(width)
	ry := float64(sh) / float64(height)
	ch := src.Channels()

	err = parallel.Rows(ctx, height, workers, func(y int) error {
		fy := float64(y) * ry
		y0, y1 := int(math.Floor(fy)), int(math.Ceil(fy))
		yw := fy - float64(y0)

		out := dst.Row(y)
		for x := range width {
			fx := float64(x) * rx
			x0, x1 := int(math.Floor(fx)), int(math.Ceil(fx))
			xw := fx - float64(x0)

			p00 := src.Pixel(x0, y0)
			p10 := src.Pixel(x1, y0)
			p01 := src.Pixel(x0, y1)
			p11 := src.Pixel(x1, y1)
			for c := range ch {
				v := (1-xw)*(1-yw)*sample(p00, c) +
					xw*(1-yw)*sample(p10, c) +
					(1-xw)*yw*sample(p01, c) +
					xw*yw*sample(p11, c)
				out[x*ch+c] = image.Clamp01(v)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

func sample(px []float64, c int) float64 {
	if px == nil {
		return 0
	}
	return px[c]
}
