package rasterkit

import (
	"context"
	"fmt"
	stdimage "image"
	"time"

	"github.com/gogpu/rasterkit/internal/color"
	"github.com/gogpu/rasterkit/internal/dither"
	"github.com/gogpu/rasterkit/internal/draw"
	"github.com/gogpu/rasterkit/internal/gamma"
	"github.com/gogpu/rasterkit/internal/image"
	"github.com/gogpu/rasterkit/internal/preview"
	"github.com/gogpu/rasterkit/internal/scale"
)

// ConvertColor converts every pixel of img from one color space to
// another and returns a new image. Grayscale images are accepted only
// when from == to.
func ConvertColor(img *FloatImage, from, to ColorSpace, opts ...Option) (*FloatImage, error) {
	o := newOptions(opts)
	return color.ConvertImage(context.Background(), img, from, to, o.workers)
}

// ApplyGamma moves the samples of one pixel in place from gamma from to
// gamma to. Equal gammas leave px untouched.
func ApplyGamma(px []float64, from, to float64, policy GammaPolicy) error {
	return gamma.ApplyPixel(px, from, to, policy)
}

// GammaImage moves every sample of img in place from gamma from to gamma to.
func GammaImage(img *FloatImage, from, to float64, policy GammaPolicy) error {
	return gamma.ApplyBuf(img, from, to, policy)
}

// ApplyDither dithers the single pixel at (x, y) against levels,
// diffusing error into unvisited neighbours for the error-diffusion
// algorithms.
func ApplyDither(algo DitherAlgorithm, img *FloatImage, x, y int, levels Levels, opts ...Option) error {
	o := newOptions(opts)
	return dither.ApplyAt(algo, img, x, y, levels, o.rng)
}

// Dither reduces img in place to 2^bits gray levels, scanning in raster
// order.
func Dither(algo DitherAlgorithm, img *FloatImage, bits int, opts ...Option) error {
	o := newOptions(opts)
	d, err := dither.New(algo, bits, o.rng)
	if err != nil {
		return err
	}
	d.Apply(img)
	return nil
}

// Scale resamples img to width x height. Matching dimensions or NoScale
// return img itself.
func Scale(algo ScaleAlgorithm, img *FloatImage, width, height int, opts ...Option) (*FloatImage, error) {
	o := newOptions(opts)
	return scale.Scale(context.Background(), algo, img, width, height, scale.Options{
		Workers: o.workers,
		Spline:  o.spline,
		Scratch: o.scratch,
	})
}

// Displace shifts img by (dx, dy) pixels, filling vacated pixels with 0.
// A zero shift returns img itself.
func Displace(img *FloatImage, dx, dy int) *FloatImage {
	return scale.Displace(img, dx, dy)
}

// DrawLine draws an anti-aliased line of the given thickness from
// (x0, y0) to (x1, y1), blending in the linear light of gamma g.
func DrawLine(img *FloatImage, x0, y0, x1, y1 float64, c []float64, thickness, g float64) error {
	return draw.Line(img, draw.Point{X: x0, Y: y0}, draw.Point{X: x1, Y: y1}, c, thickness, g)
}

// Thumbnail returns img as a standard library image that fits in
// maxW x maxH, keeping the aspect ratio.
func Thumbnail(img *Image, maxW, maxH int) (stdimage.Image, error) {
	return preview.Thumbnail(img, maxW, maxH)
}

// Steps describes one pass of the pixel pipeline. The zero value copies
// the image unchanged.
type Steps struct {
	// MaskChannels zeroes the flagged channels of an RGB image first.
	MaskChannels [3]bool

	// From and To select a color space conversion; equal values skip it.
	From, To ColorSpace

	// GammaFrom and GammaTo select a gamma change under GammaPolicy.
	// The step runs when either is nonzero, and both must then be positive.
	GammaFrom, GammaTo float64
	GammaPolicy        GammaPolicy

	// Dither reduces the result to 2^DitherBits levels.
	Dither     DitherAlgorithm
	DitherBits int

	// Scale resamples to Width x Height.
	Scale         ScaleAlgorithm
	Width, Height int

	// DX and DY shift the result on the pixel grid.
	DX, DY int
}

// gammaOnly reports whether the gamma change is the only stage, which
// an 8-bit lookup table computes exactly.
func (s Steps) gammaOnly() bool {
	return (s.GammaFrom != 0 || s.GammaTo != 0) &&
		s.MaskChannels == [3]bool{} && s.From == s.To &&
		s.Dither == NoDither && s.Scale == NoScale && s.DX == 0 && s.DY == 0
}

// Process runs img through the pipeline stages selected by steps, in the
// order mask, color, gamma, dither, scale, displace, and returns a new
// image. The input is never modified.
//
// The output carries GammaTo as its gamma when the gamma step ran, and
// the input gamma otherwise.
func Process(img *Image, steps Steps, opts ...Option) (*Image, error) {
	o := newOptions(opts)
	log := o.logger

	if steps.gammaOnly() {
		start := time.Now()
		tbl, err := o.tables.Table(steps.GammaFrom, steps.GammaTo, steps.GammaPolicy)
		if err != nil {
			return nil, fmt.Errorf("rasterkit: gamma: %w", err)
		}
		out := img.Clone()
		tbl.ApplyImage(out)
		out.SetMaxColor(image.DefaultMaxColor)
		out.SetGamma(steps.GammaTo)
		log.Debug("rasterkit: stage", "name", "gamma-table", "elapsed", time.Since(start))
		return out, nil
	}

	buf := img.ToFloat()
	stage := func(name string, start time.Time) {
		log.Debug("rasterkit: stage", "name", name, "elapsed", time.Since(start))
	}

	if steps.MaskChannels != [3]bool{} {
		start := time.Now()
		buf.MaskChannels(steps.MaskChannels)
		stage("mask", start)
	}

	if steps.From != steps.To {
		start := time.Now()
		out, err := color.ConvertImage(context.Background(), buf, steps.From, steps.To, o.workers)
		if err != nil {
			return nil, fmt.Errorf("rasterkit: color: %w", err)
		}
		buf = out
		stage("color", start)
	}

	outGamma := img.Gamma()
	if steps.GammaFrom != 0 || steps.GammaTo != 0 {
		start := time.Now()
		if err := gamma.ApplyBuf(buf, steps.GammaFrom, steps.GammaTo, steps.GammaPolicy); err != nil {
			return nil, fmt.Errorf("rasterkit: gamma: %w", err)
		}
		outGamma = steps.GammaTo
		stage("gamma", start)
	}

	if steps.Dither != NoDither {
		start := time.Now()
		d, err := dither.New(steps.Dither, steps.DitherBits, o.rng)
		if err != nil {
			return nil, fmt.Errorf("rasterkit: dither: %w", err)
		}
		d.Apply(buf)
		stage("dither", start)
	}

	if steps.Scale != NoScale {
		start := time.Now()
		out, err := scale.Scale(context.Background(), steps.Scale, buf, steps.Width, steps.Height,
			scale.Options{Workers: o.workers, Spline: o.spline, Scratch: o.scratch})
		if err != nil {
			return nil, fmt.Errorf("rasterkit: scale: %w", err)
		}
		buf = out
		stage("scale", start)
	}

	if steps.DX != 0 || steps.DY != 0 {
		start := time.Now()
		buf = scale.Displace(buf, steps.DX, steps.DY)
		stage("displace", start)
	}

	out := buf.ToImage()
	out.SetGamma(outGamma)
	return out, nil
}
