package image

import (
	"bytes"
	"fmt"
)

// DefaultMaxColor is the max color value used when none was declared.
const DefaultMaxColor = 255

// ImageBuf is an 8-bit raster: a flat, row-major, top-to-bottom sequence of
// per-channel samples whose length always equals Width*Height*BytesPerPixel.
//
// ImageBuf is not safe for concurrent mutation. A buffer is owned by the
// pipeline stage that currently holds it; use Clone to keep a copy.
type ImageBuf struct {
	data     []byte
	width    int
	height   int
	format   Format
	maxColor int
	gamma    float64
}

// NewImageBuf creates a zeroed buffer with the given dimensions and format.
func NewImageBuf(width, height int, format Format) (*ImageBuf, error) {
	if err := checkGeometry(width, height, format); err != nil {
		return nil, err
	}
	return &ImageBuf{
		data:     make([]byte, format.ImageBytes(width, height)),
		width:    width,
		height:   height,
		format:   format,
		maxColor: DefaultMaxColor,
	}, nil
}

// FromRaw wraps existing data without copying. The length of data must
// match the declared geometry exactly.
func FromRaw(data []byte, width, height int, format Format) (*ImageBuf, error) {
	if err := checkGeometry(width, height, format); err != nil {
		return nil, err
	}
	if want := format.ImageBytes(width, height); len(data) != want {
		return nil, fmt.Errorf("image: content length %d, want %d: %w", len(data), want, ErrSize)
	}
	return &ImageBuf{
		data:     data,
		width:    width,
		height:   height,
		format:   format,
		maxColor: DefaultMaxColor,
	}, nil
}

// MaxImageBytes is the largest sample count a buffer may hold.
const MaxImageBytes = 1<<31 - 1

// FitsLimit reports whether a width x height image in format holds at
// most MaxImageBytes samples. It never overflows.
func FitsLimit(width, height int, format Format) bool {
	bpp := format.BytesPerPixel()
	if width <= 0 || height <= 0 || bpp <= 0 {
		return false
	}
	return width <= MaxImageBytes/height/bpp
}

func checkGeometry(width, height int, format Format) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("image: invalid dimensions %dx%d: %w", width, height, ErrSize)
	}
	if !format.IsValid() {
		return fmt.Errorf("image: invalid format %d: %w", format, ErrFormat)
	}
	if !FitsLimit(width, height, format) {
		return fmt.Errorf("image: %dx%d exceeds %d samples: %w", width, height, MaxImageBytes, ErrSize)
	}
	return nil
}

// Clone creates a deep copy of the image buffer.
func (b *ImageBuf) Clone() *ImageBuf {
	c := *b
	c.data = bytes.Clone(b.data)
	return &c
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Format returns the pixel format.
func (b *ImageBuf) Format() Format {
	return b.format
}

// Bounds returns the image dimensions as (width, height).
func (b *ImageBuf) Bounds() (int, int) {
	return b.width, b.height
}

// Data returns the raw sample slice.
func (b *ImageBuf) Data() []byte {
	return b.data
}

// MaxColor returns the declared max color value (PNM header).
func (b *ImageBuf) MaxColor() int {
	return b.maxColor
}

// SetMaxColor sets the declared max color value.
func (b *ImageBuf) SetMaxColor(v int) {
	b.maxColor = v
}

// Gamma returns the gamma attached to the image, or 0 if none is known.
func (b *ImageBuf) Gamma() float64 {
	return b.gamma
}

// SetGamma attaches a gamma value; 0 means unknown.
func (b *ImageBuf) SetGamma(g float64) {
	b.gamma = g
}

// RowBytes returns a slice of the pixel data for row y.
// Returns nil if y is out of bounds.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	n := b.format.RowBytes(b.width)
	return b.data[y*n : (y+1)*n]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *ImageBuf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return (y*b.width + x) * b.format.BytesPerPixel()
}

// PixelBytes returns a slice of the raw bytes for pixel (x, y).
// Returns nil if coordinates are out of bounds.
func (b *ImageBuf) PixelBytes(x, y int) []byte {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return nil
	}
	return b.data[offset : offset+b.format.BytesPerPixel()]
}

// SetPixelBytes sets the raw bytes for pixel (x, y).
func (b *ImageBuf) SetPixelBytes(x, y int, pixel []byte) error {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return fmt.Errorf("image: pixel (%d,%d) outside %dx%d: %w", x, y, b.width, b.height, ErrSize)
	}
	copy(b.data[offset:offset+b.format.BytesPerPixel()], pixel)
	return nil
}

// Equal reports whether both buffers have the same geometry, format and samples.
func (b *ImageBuf) Equal(o *ImageBuf) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.width == o.width && b.height == o.height &&
		b.format == o.format && bytes.Equal(b.data, o.data)
}

// ToFloat returns a FloatBuf with every sample divided by 255.
func (b *ImageBuf) ToFloat() *FloatBuf {
	data := make([]float64, len(b.data))
	for i, v := range b.data {
		data[i] = float64(v) / 255
	}
	return &FloatBuf{
		data:   data,
		width:  b.width,
		height: b.height,
		format: b.format,
	}
}
