package png

import (
	"encoding/binary"

	"github.com/gogpu/rasterkit/internal/image"
)

// ihdrLength is the exact size of the IHDR payload.
const ihdrLength = 13

// IHDR is the image header chunk.
type IHDR struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// ParseIHDR decodes the 13-byte IHDR payload positionally. It does not
// check whether the values are supported; see Validate.
func ParseIHDR(data []byte) (IHDR, error) {
	if len(data) != ihdrLength {
		return IHDR{}, image.Errorf(opDecode, image.ErrChunk, "IHDR length %d, want %d", len(data), ihdrLength)
	}
	return IHDR{
		Width:             binary.BigEndian.Uint32(data[0:4]),
		Height:            binary.BigEndian.Uint32(data[4:8]),
		BitDepth:          data[8],
		ColorType:         data[9],
		CompressionMethod: data[10],
		FilterMethod:      data[11],
		InterlaceMethod:   data[12],
	}, nil
}

// Bytes packs the header into its 13-byte big-endian form.
func (h IHDR) Bytes() []byte {
	b := make([]byte, ihdrLength)
	binary.BigEndian.PutUint32(b[0:4], h.Width)
	binary.BigEndian.PutUint32(b[4:8], h.Height)
	b[8] = h.BitDepth
	b[9] = h.ColorType
	b[10] = h.CompressionMethod
	b[11] = h.FilterMethod
	b[12] = h.InterlaceMethod
	return b
}

// Format returns the raster format for the header's color type.
func (h IHDR) Format() (image.Format, bool) {
	return image.FormatFromPNGColorType(h.ColorType)
}

// Validate rejects everything outside the supported subset.
func (h IHDR) Validate() error {
	if h.Width == 0 || h.Height == 0 || h.Width > maxChunkLength || h.Height > maxChunkLength {
		return image.Errorf(opDecode, image.ErrSize, "invalid size %dx%d", h.Width, h.Height)
	}
	if h.BitDepth != 8 {
		return image.Errorf(opDecode, image.ErrFormat, "bit depth %d not supported", h.BitDepth)
	}
	if _, ok := h.Format(); !ok {
		return image.Errorf(opDecode, image.ErrFormat, "color type %d not supported", h.ColorType)
	}
	if h.CompressionMethod != 0 {
		return image.Errorf(opDecode, image.ErrFormat, "compression method %d not supported", h.CompressionMethod)
	}
	if h.FilterMethod != 0 {
		return image.Errorf(opDecode, image.ErrFormat, "filter method %d not supported", h.FilterMethod)
	}
	if h.InterlaceMethod != 0 {
		return image.Errorf(opDecode, image.ErrFormat, "interlace method %d not supported", h.InterlaceMethod)
	}
	return nil
}
