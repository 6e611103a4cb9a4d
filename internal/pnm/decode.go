package pnm

import (
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/rasterkit/internal/binio"
	"github.com/gogpu/rasterkit/internal/image"
)

// Decode reads a complete PNM file from r.
func Decode(r io.Reader) (*image.ImageBuf, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &image.ParseError{Op: opDecode, Err: fmt.Errorf("%w: %w", image.ErrIO, err)}
	}
	img, _, err := DecodeBytes(data)
	return img, err
}

// DecodeBytes parses a complete PNM file held in memory and returns the
// raster together with its header. The body is copied.
func DecodeBytes(data []byte) (*image.ImageBuf, Header, error) {
	r := binio.NewReader(data)

	h, err := ReadHeader(r)
	if err != nil {
		return nil, Header{}, err
	}

	body, err := r.ReadN(h.BodySize())
	if err != nil {
		return nil, h, image.Errorf(opDecode, image.ErrSize,
			"body has %d bytes, header declares %d", r.Remaining(), h.BodySize())
	}
	if _, err := r.ReadByte(); !errors.Is(err, io.EOF) {
		return nil, h, image.Errorf(opDecode, image.ErrSize,
			"%d trailing bytes after body", r.Remaining()+1)
	}

	img, err := image.FromRaw(append([]byte(nil), body...), h.Width, h.Height, h.Format)
	if err != nil {
		return nil, h, &image.ParseError{Op: opDecode, Err: err}
	}
	img.SetMaxColor(h.MaxColor)
	return img, h, nil
}

// ReadHeader parses the three header lines at the reader position.
func ReadHeader(r *binio.Reader) (Header, error) {
	var h Header

	line, err := r.ReadLine()
	if err != nil {
		return h, image.Errorf(opDecode, image.ErrFormat, "missing format line")
	}
	if h.Format, err = parseFormat(line); err != nil {
		return h, err
	}

	line, err = r.ReadLine()
	if err != nil {
		return h, image.Errorf(opDecode, image.ErrSize, "missing size line")
	}
	if h.Width, h.Height, err = parseSize(line, h.Format); err != nil {
		return h, err
	}

	line, err = r.ReadLine()
	if err != nil {
		return h, image.Errorf(opDecode, image.ErrColor, "missing max color line")
	}
	if h.MaxColor, err = parseMaxColor(line); err != nil {
		return h, err
	}
	return h, nil
}
