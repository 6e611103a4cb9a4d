package pnm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/gogpu/rasterkit/internal/binio"
	"github.com/gogpu/rasterkit/internal/image"
)

// Sample is a content element accepted by WriteContent. Float samples use
// the 0..255 scale; every sample is clamped to [0,255] before emission.
type Sample interface {
	~byte | ~int | ~float64
}

// Encode writes img as PNM using its format and max color value.
func Encode(w io.Writer, img *image.ImageBuf) error {
	h := Header{
		Format:   img.Format(),
		Width:    img.Width(),
		Height:   img.Height(),
		MaxColor: img.MaxColor(),
	}
	return WriteContent(w, h, img.Data())
}

// WriteContent validates h and the content length and then writes the
// header lines and the body. Nothing is written if validation fails.
func WriteContent[S Sample](w io.Writer, h Header, content []S) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if len(content) != h.BodySize() {
		return image.Errorf(opEncode, image.ErrSize,
			"content has %d samples, %dx%d %s needs %d",
			len(content), h.Width, h.Height, h.Format.PNMToken(), h.BodySize())
	}

	bw := bufio.NewWriter(w)
	out := binio.NewWriter(bw)
	_ = out.WriteLine(h.Format.PNMToken())
	_ = out.WriteLine(strconv.Itoa(h.Width) + " " + strconv.Itoa(h.Height))
	_ = out.WriteLine(strconv.Itoa(h.MaxColor))
	for _, v := range content {
		_ = out.WriteByte(clampSample(v))
	}
	if err := out.Err(); err != nil {
		return &image.ParseError{Op: opEncode, Err: fmt.Errorf("%w: %w", image.ErrIO, err)}
	}
	if err := bw.Flush(); err != nil {
		return &image.ParseError{Op: opEncode, Err: fmt.Errorf("%w: %w", image.ErrIO, err)}
	}
	return nil
}

func clampSample[S Sample](v S) byte {
	switch s := any(v).(type) {
	case byte:
		return s
	case int:
		return byte(max(0, min(s, 255)))
	case float64:
		return image.ClampByte(s)
	}
	// Named types fall through to the float path.
	return image.ClampByte(float64(v))
}
