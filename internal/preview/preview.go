// Package preview renders small display copies of raster images.
package preview

import (
	"fmt"
	stdimage "image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/rasterkit/internal/image"
)

// FitSize returns the largest size with the aspect ratio of w x h that
// fits in maxW x maxH. Images that already fit keep their size; each
// dimension is at least 1.
func FitSize(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	sx := float64(maxW) / float64(w)
	sy := float64(maxH) / float64(h)
	s := min(sx, sy)
	return max(1, int(float64(w)*s)), max(1, int(float64(h)*s))
}

// Thumbnail returns img as a standard library image no larger than
// maxW x maxH, downscaled with a Catmull-Rom filter when needed. The
// result is *image.Gray for grayscale input and *image.NRGBA otherwise.
func Thumbnail(img *image.ImageBuf, maxW, maxH int) (stdimage.Image, error) {
	if maxW <= 0 || maxH <= 0 {
		return nil, fmt.Errorf("preview: bounds %dx%d: %w", maxW, maxH, image.ErrSize)
	}
	src := img.ToStdImage()
	w, h := FitSize(img.Width(), img.Height(), maxW, maxH)
	if w == img.Width() && h == img.Height() {
		return src, nil
	}

	rect := stdimage.Rect(0, 0, w, h)
	var dst xdraw.Image
	if img.Format().IsGrayscale() {
		dst = stdimage.NewGray(rect)
	} else {
		dst = stdimage.NewNRGBA(rect)
	}
	xdraw.CatmullRom.Scale(dst, rect, src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}
