// Package draw rasterizes anti-aliased primitives onto normalized buffers.
package draw

import (
	"fmt"
	"math"

	"github.com/gogpu/rasterkit/internal/gamma"
	"github.com/gogpu/rasterkit/internal/image"
)

// Point is a position in pixel coordinates; pixel (x, y) is centered on
// the integer point (x, y).
type Point struct {
	X, Y float64
}

// Line draws an anti-aliased line from p0 to p1 in the given color.
//
// Coverage follows Xiaolin Wu: for every step along the major axis the
// line is a band of the given thickness across the minor axis, and each
// pixel receives the length of its overlap with that band. Colors are
// blended in linear light: samples are decoded with gamma g, mixed by
// coverage and re-encoded. Pixels outside buf are skipped.
func Line(buf *image.FloatBuf, p0, p1 Point, color []float64, thickness, g float64) error {
	if len(color) != buf.Channels() {
		return fmt.Errorf("draw: color has %d channels, buffer %d: %w", len(color), buf.Channels(), image.ErrFormat)
	}
	if !(thickness > 0) || math.IsInf(thickness, 0) {
		return fmt.Errorf("draw: thickness %v: %w", thickness, image.ErrSize)
	}
	if err := gamma.Validate(g); err != nil {
		return err
	}

	x0, y0, x1, y1 := p0.X, p0.Y, p1.X, p1.Y
	steep := math.Abs(y1-y0) > math.Abs(x1-x0)
	if steep {
		x0, y0, x1, y1 = y0, x0, y1, x1
	}
	if x1 < x0 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	var grad float64
	if dx := x1 - x0; dx != 0 {
		grad = (y1 - y0) / dx
	}

	fg := make([]float64, len(color))
	for i, v := range color {
		fg[i] = gamma.Decode(image.Clamp01(v), g)
	}

	half := thickness / 2
	for x := int(math.Round(x0)); x <= int(math.Round(x1)); x++ {
		c := y0 + grad*(float64(x)-x0)
		for j := int(math.Floor(c - half)); j <= int(math.Ceil(c+half)); j++ {
			cover := min(float64(j)+0.5, c+half) - max(float64(j)-0.5, c-half)
			if cover <= 0 {
				continue
			}
			if steep {
				blend(buf, j, x, fg, min(cover, 1), g)
			} else {
				blend(buf, x, j, fg, min(cover, 1), g)
			}
		}
	}
	return nil
}

// blend mixes the linear-light color fg over pixel (x, y) with weight a.
func blend(buf *image.FloatBuf, x, y int, fg []float64, a, g float64) {
	px := buf.Pixel(x, y)
	if px == nil {
		return
	}
	for i, v := range px {
		bg := gamma.Decode(image.Clamp01(v), g)
		px[i] = gamma.Encode(a*fg[i]+(1-a)*bg, g)
	}
}
