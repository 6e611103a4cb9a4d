package image

import (
	"fmt"
	"slices"
)

// FloatBuf is the pipeline representation of a raster: the same layout as
// ImageBuf, with samples as float64 nominally in [0,1]. Intermediate
// stages (error diffusion) may push samples outside that range; ToImage
// clamps.
type FloatBuf struct {
	data   []float64
	width  int
	height int
	format Format
}

// NewFloatBuf creates a zeroed float buffer.
func NewFloatBuf(width, height int, format Format) (*FloatBuf, error) {
	if err := checkGeometry(width, height, format); err != nil {
		return nil, err
	}
	return &FloatBuf{
		data:   make([]float64, format.ImageBytes(width, height)),
		width:  width,
		height: height,
		format: format,
	}, nil
}

// FloatFromSlice wraps existing samples without copying.
func FloatFromSlice(data []float64, width, height int, format Format) (*FloatBuf, error) {
	if err := checkGeometry(width, height, format); err != nil {
		return nil, err
	}
	if want := format.ImageBytes(width, height); len(data) != want {
		return nil, fmt.Errorf("image: content length %d, want %d: %w", len(data), want, ErrSize)
	}
	return &FloatBuf{data: data, width: width, height: height, format: format}, nil
}

// Clone creates a deep copy of the buffer.
func (b *FloatBuf) Clone() *FloatBuf {
	c := *b
	c.data = slices.Clone(b.data)
	return &c
}

// Width returns the image width in pixels.
func (b *FloatBuf) Width() int { return b.width }

// Height returns the image height in pixels.
func (b *FloatBuf) Height() int { return b.height }

// Format returns the pixel format.
func (b *FloatBuf) Format() Format { return b.format }

// Channels returns the number of samples per pixel.
func (b *FloatBuf) Channels() int { return b.format.Channels() }

// Bounds returns the image dimensions as (width, height).
func (b *FloatBuf) Bounds() (int, int) { return b.width, b.height }

// Data returns the sample slice.
func (b *FloatBuf) Data() []float64 { return b.data }

// Row returns the samples of row y, or nil if y is out of bounds.
func (b *FloatBuf) Row(y int) []float64 {
	if y < 0 || y >= b.height {
		return nil
	}
	n := b.format.RowBytes(b.width)
	return b.data[y*n : (y+1)*n]
}

// PixelOffset returns the sample offset of pixel (x, y), or -1 if out of bounds.
func (b *FloatBuf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return (y*b.width + x) * b.format.Channels()
}

// Pixel returns the samples of pixel (x, y). The slice aliases the buffer.
// Returns nil if coordinates are out of bounds.
func (b *FloatBuf) Pixel(x, y int) []float64 {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return nil
	}
	return b.data[off : off+b.format.Channels()]
}

// SetPixel copies px into pixel (x, y). Out-of-bounds writes are ignored.
func (b *FloatBuf) SetPixel(x, y int, px []float64) {
	if dst := b.Pixel(x, y); dst != nil {
		copy(dst, px)
	}
}

// Equal reports whether both buffers have the same geometry and samples.
func (b *FloatBuf) Equal(o *FloatBuf) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.width == o.width && b.height == o.height &&
		b.format == o.format && slices.Equal(b.data, o.data)
}

// MaskChannels zeroes the channels flagged in disabled. It is a no-op for
// grayscale buffers.
func (b *FloatBuf) MaskChannels(disabled [3]bool) {
	if b.format.Channels() != 3 {
		return
	}
	for i := range b.data {
		if disabled[i%3] {
			b.data[i] = 0
		}
	}
}

// ToImage converts the buffer back to 8-bit samples, scaling by 255,
// rounding half up and clamping to [0,255].
func (b *FloatBuf) ToImage() *ImageBuf {
	data := make([]byte, len(b.data))
	for i, v := range b.data {
		data[i] = ClampByte(v * 255)
	}
	return &ImageBuf{
		data:     data,
		width:    b.width,
		height:   b.height,
		format:   b.format,
		maxColor: DefaultMaxColor,
	}
}

// ClampByte rounds v to the nearest integer and clamps it to [0,255].
func ClampByte(v float64) byte {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v + 0.5)
}

// Clamp01 clamps v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
