// Package pnm implements the binary PNM variants P5 (graymap) and P6
// (pixmap) with 8-bit samples.
//
// The header is exactly three newline-terminated text lines:
//
//	P5
//	<width> <height>
//	<max color>
//
// followed by width*height*bytes-per-pixel raw samples and nothing else.
// Comments are not supported.
package pnm

import (
	"strconv"
	"strings"

	"github.com/gogpu/rasterkit/internal/image"
)

const (
	opDecode = "pnm: decode"
	opEncode = "pnm: encode"
)

// MaxColorLimit is the largest max color value accepted.
const MaxColorLimit = 255

// Header is a parsed PNM header. It is immutable once parsed.
type Header struct {
	Format   image.Format
	Width    int
	Height   int
	MaxColor int
}

// BodySize returns the number of sample bytes that follow the header.
func (h Header) BodySize() int {
	return h.Format.ImageBytes(h.Width, h.Height)
}

// Validate checks every header field independently, in header order.
func (h Header) Validate() error {
	if !h.Format.IsValid() {
		return image.Errorf(opEncode, image.ErrFormat, "unsupported format %d", h.Format)
	}
	if !image.FitsLimit(h.Width, h.Height, h.Format) {
		return image.Errorf(opEncode, image.ErrSize, "invalid size %dx%d", h.Width, h.Height)
	}
	if h.MaxColor < 0 || h.MaxColor > MaxColorLimit {
		return image.Errorf(opEncode, image.ErrColor, "max color value %d out of [0,%d]", h.MaxColor, MaxColorLimit)
	}
	return nil
}

func parseFormat(line string) (image.Format, error) {
	f, ok := image.FormatFromPNMToken(strings.TrimSpace(line))
	if !ok {
		return 0, image.Errorf(opDecode, image.ErrFormat, "unsupported format %q", line)
	}
	return f, nil
}

// parseSize reads "W H". Both must be positive and the body they declare
// for format f must fit in image.MaxImageBytes.
func parseSize(line string, f image.Format) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, image.Errorf(opDecode, image.ErrSize, "invalid size %q", line)
	}
	w, errW := strconv.Atoi(fields[0])
	h, errH := strconv.Atoi(fields[1])
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, image.Errorf(opDecode, image.ErrSize, "invalid size %q", line)
	}
	if !image.FitsLimit(w, h, f) {
		return 0, 0, image.Errorf(opDecode, image.ErrSize, "size %dx%d exceeds %d bytes", w, h, image.MaxImageBytes)
	}
	return w, h, nil
}

func parseMaxColor(line string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, image.Errorf(opDecode, image.ErrColor, "invalid max color value %q", line)
	}
	if v < 0 || v > MaxColorLimit {
		return 0, image.Errorf(opDecode, image.ErrColor, "max color value %d out of [0,%d]", v, MaxColorLimit)
	}
	return v, nil
}
