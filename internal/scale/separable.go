package scale

import (
	"context"

	"github.com/gogpu/rasterkit/internal/image"
	"github.com/gogpu/rasterkit/internal/parallel"
)

// separable resamples horizontally into an intermediate buffer, then
// vertically into the result. Only the final samples are clamped. The
// intermediate buffer comes from scratch, which may be nil.
func separable(ctx context.Context, src *image.FloatBuf, width, height, workers int, scratch *image.Pool, taps tapFunc) (*image.FloatBuf, error) {
	sw, sh := src.Bounds()
	ch := src.Channels()

	tmp, err := scratch.Get(width, sh, src.Format())
	if err != nil {
		return nil, err
	}
	defer scratch.Put(tmp)
	xTaps := taps(sw, width)
	err = parallel.Rows(ctx, sh, workers, func(y int) error {
		in, out := src.Row(y), tmp.Row(y)
		for x, tx := range xTaps {
			for c := range ch {
				var v float64
				for _, t := range tx {
					v += t.weight * in[t.index*ch+c]
				}
				out[x*ch+c] = v
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	dst, err := image.NewFloatBuf(width, height, src.Format())
	if err != nil {
		return nil, err
	}
	yTaps := taps(sh, height)
	err = parallel.Rows(ctx, height, workers, func(y int) error {
		out := dst.Row(y)
		for i := range out {
			var v float64
			for _, t := range yTaps[y] {
				v += t.weight * tmp.Row(t.index)[i]
			}
			out[i] = image.Clamp01(v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}
