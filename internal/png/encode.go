package png

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/gogpu/rasterkit/internal/binio"
	"github.com/gogpu/rasterkit/internal/image"
)

// CompressionLevel indicates the zlib effort used for IDAT.
type CompressionLevel int

const (
	DefaultCompression CompressionLevel = 0
	NoCompression      CompressionLevel = -1
	BestSpeed          CompressionLevel = -2
	BestCompression    CompressionLevel = -3
)

func (l CompressionLevel) zlibLevel() int {
	switch l {
	case NoCompression:
		return zlib.NoCompression
	case BestSpeed:
		return zlib.BestSpeed
	case BestCompression:
		return zlib.BestCompression
	default:
		return zlib.DefaultCompression
	}
}

// Encoder writes PNG streams. A zero Encoder writes every scanline with
// filter type None at the default compression level.
type Encoder struct {
	CompressionLevel CompressionLevel

	// Filter is applied to every scanline.
	Filter FilterType

	// Ancillary chunks are written between gAMA and IDAT. Critical and
	// gAMA chunks in this list are skipped; gAMA comes from the image.
	Ancillary []Chunk
}

// Encode writes img with a default Encoder.
func Encode(w io.Writer, img *image.ImageBuf) error {
	var e Encoder
	return e.Encode(w, img)
}

// Encode writes img as PNG. A gAMA chunk is written when img.Gamma() > 0.
func (e *Encoder) Encode(w io.Writer, img *image.ImageBuf) error {
	if !e.Filter.IsValid() {
		return image.Errorf(opEncode, image.ErrInvalidFilterType, "filter type %d", uint8(e.Filter))
	}
	if !img.Format().IsValid() {
		return image.Errorf(opEncode, image.ErrFormat, "format %d", img.Format())
	}
	for _, c := range e.Ancillary {
		if len(c.Type) != 4 || !validType([]byte(c.Type)) {
			return image.Errorf(opEncode, image.ErrChunk, "ancillary chunk type %q", c.Type)
		}
	}

	idat, err := e.compress(img)
	if err != nil {
		return err
	}

	hdr := IHDR{
		Width:     uint32(img.Width()),
		Height:    uint32(img.Height()),
		BitDepth:  8,
		ColorType: img.Format().PNGColorType(),
	}

	bw := bufio.NewWriter(w)
	out := binio.NewWriter(bw)
	_, _ = out.Write([]byte(Signature))
	_ = writeChunk(out, TypeIHDR, hdr.Bytes())
	if stored := StoredFromGamma(img.Gamma()); stored != 0 {
		_ = writeChunk(out, TypeGAMA, gamaBytes(stored))
	}
	for _, c := range e.Ancillary {
		if c.IsCritical() || c.Type == TypeGAMA {
			continue
		}
		_ = writeChunk(out, c.Type, c.Data)
	}
	for len(idat) > 0 {
		n := min(len(idat), maxIDATChunk)
		_ = writeChunk(out, TypeIDAT, idat[:n])
		idat = idat[n:]
	}
	_ = writeChunk(out, TypeIEND, nil)

	if err := out.Err(); err != nil {
		return &image.ParseError{Op: opEncode, Err: fmt.Errorf("%w: %w", image.ErrIO, err)}
	}
	if err := bw.Flush(); err != nil {
		return &image.ParseError{Op: opEncode, Err: fmt.Errorf("%w: %w", image.ErrIO, err)}
	}
	return nil
}

// compress filters every scanline and deflates the result.
func (e *Encoder) compress(img *image.ImageBuf) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, e.CompressionLevel.zlibLevel())
	if err != nil {
		return nil, &image.ParseError{Op: opEncode, Err: fmt.Errorf("%w: %w", image.ErrIO, err)}
	}

	bpp := img.Format().BytesPerPixel()
	stride := img.Format().RowBytes(img.Width())
	line := make([]byte, stride+1)
	prev := make([]byte, stride)
	for y := range img.Height() {
		cur := img.RowBytes(y)
		line[0] = byte(e.Filter)
		if err := Apply(e.Filter, line[1:], cur, prev, bpp); err != nil {
			return nil, err
		}
		if _, err := zw.Write(line); err != nil {
			return nil, &image.ParseError{Op: opEncode, Err: fmt.Errorf("%w: %w", image.ErrIO, err)}
		}
		prev = cur
	}
	if err := zw.Close(); err != nil {
		return nil, &image.ParseError{Op: opEncode, Err: fmt.Errorf("%w: %w", image.ErrIO, err)}
	}
	return buf.Bytes(), nil
}
