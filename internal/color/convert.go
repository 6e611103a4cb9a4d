package color

import (
	"context"
	"fmt"
	"math"

	"github.com/gogpu/rasterkit/internal/image"
	"github.com/gogpu/rasterkit/internal/parallel"
)

// Pixel is a normalized three-channel sample.
type Pixel [3]float64

// Luma coefficients (kr, kb) of the YCbCr variants.
const (
	kr601, kb601 = 0.299, 0.114
	kr709, kb709 = 0.2126, 0.0722
)

// Convert converts px from one space to another by way of RGB.
// Identical spaces return px unchanged.
func Convert(px Pixel, from, to Space) (Pixel, error) {
	if !from.IsValid() {
		return px, unsupported(from)
	}
	if !to.IsValid() {
		return px, unsupported(to)
	}
	if from == to {
		return px, nil
	}
	rgb, err := ToRGB(px, from)
	if err != nil {
		return px, err
	}
	return FromRGB(rgb, to)
}

// FromRGB converts an RGB pixel into space s.
func FromRGB(px Pixel, s Space) (Pixel, error) {
	r, g, b := px[0], px[1], px[2]
	switch s {
	case RGB:
		return px, nil
	case HSL:
		maxc, minc := max(r, g, b), min(r, g, b)
		delta := maxc - minc
		l := (maxc + minc) / 2
		var sat float64
		if delta != 0 {
			sat = delta / (1 - math.Abs(maxc+minc-1))
		}
		return Pixel{hue(r, g, b, maxc, delta), sat, l}, nil
	case HSV:
		maxc, minc := max(r, g, b), min(r, g, b)
		delta := maxc - minc
		var sat float64
		if maxc != 0 {
			sat = delta / maxc
		}
		return Pixel{hue(r, g, b, maxc, delta), sat, maxc}, nil
	case YCbCr601:
		return toYCbCr(px, kr601, kb601), nil
	case YCbCr709:
		return toYCbCr(px, kr709, kb709), nil
	case YCoCg:
		return Pixel{
			r/4 + g/2 + b/4,
			r/2 - b/2 + 0.5,
			-r/4 + g/2 - b/4 + 0.5,
		}, nil
	case CMY:
		return Pixel{1 - r, 1 - g, 1 - b}, nil
	default:
		return px, unsupported(s)
	}
}

// ToRGB converts a pixel in space s to RGB. The result is clamped to [0,1].
func ToRGB(px Pixel, s Space) (Pixel, error) {
	var out Pixel
	switch s {
	case RGB:
		return px, nil
	case HSL:
		h, sat, l := px[0], px[1], px[2]
		c := (1 - math.Abs(2*l-1)) * sat
		out = fromChroma(h, c, l-c/2)
	case HSV:
		h, sat, v := px[0], px[1], px[2]
		c := v * sat
		out = fromChroma(h, c, v-c)
	case YCbCr601:
		out = fromYCbCr(px, kr601, kb601)
	case YCbCr709:
		out = fromYCbCr(px, kr709, kb709)
	case YCoCg:
		y, co, cg := px[0], px[1]-0.5, px[2]-0.5
		t := y - cg
		out = Pixel{t + co, y + cg, t - co}
	case CMY:
		out = Pixel{1 - px[0], 1 - px[1], 1 - px[2]}
	default:
		return px, unsupported(s)
	}
	for i := range out {
		out[i] = image.Clamp01(out[i])
	}
	return out, nil
}

// hue returns the hue of an RGB pixel as degrees/360. Ties on the maximum
// channel resolve to red, then green.
func hue(r, g, b, maxc, delta float64) float64 {
	if delta == 0 {
		return 0
	}
	var h float64
	switch maxc {
	case r:
		h = math.Mod((g-b)/delta, 6)
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h / 360
}

// fromChroma rebuilds RGB from hue h (degrees/360), chroma c and offset m
// using the six 60 degree sectors.
func fromChroma(h, c, m float64) Pixel {
	hp := math.Mod(h*6, 6)
	if hp < 0 {
		hp += 6
	}
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return Pixel{r + m, g + m, b + m}
}

func toYCbCr(px Pixel, kr, kb float64) Pixel {
	r, g, b := px[0], px[1], px[2]
	y := kr*r + (1-kr-kb)*g + kb*b
	return Pixel{
		y,
		(b-y)/(2*(1-kb)) + 0.5,
		(r-y)/(2*(1-kr)) + 0.5,
	}
}

func fromYCbCr(px Pixel, kr, kb float64) Pixel {
	y, cb, cr := px[0], px[1]-0.5, px[2]-0.5
	r := y + 2*(1-kr)*cr
	b := y + 2*(1-kb)*cb
	g := (y - kr*r - kb*b) / (1 - kr - kb)
	return Pixel{r, g, b}
}

// ConvertImage converts every pixel of buf and returns the result in a new
// buffer. Rows are spread over workers (see parallel.Workers).
//
// Grayscale buffers are accepted only when from == to.
func ConvertImage(ctx context.Context, buf *image.FloatBuf, from, to Space, workers int) (*image.FloatBuf, error) {
	if !from.IsValid() {
		return nil, unsupported(from)
	}
	if !to.IsValid() {
		return nil, unsupported(to)
	}
	if from == to {
		return buf.Clone(), nil
	}
	if buf.Channels() != 3 {
		return nil, fmt.Errorf("color: %v to %v needs 3 channels, have %d: %w",
			from, to, buf.Channels(), image.ErrFormat)
	}

	out, err := image.NewFloatBuf(buf.Width(), buf.Height(), buf.Format())
	if err != nil {
		return nil, err
	}
	err = parallel.Rows(ctx, buf.Height(), workers, func(y int) error {
		src, dst := buf.Row(y), out.Row(y)
		for i := 0; i < len(src); i += 3 {
			px, err := Convert(Pixel{src[i], src[i+1], src[i+2]}, from, to)
			if err != nil {
				return err
			}
			copy(dst[i:i+3], px[:])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
