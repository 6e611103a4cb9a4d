package image

import (
	"errors"
	"fmt"
)

// Error kinds shared by the codecs and the pixel pipeline. Every error
// returned by this module matches exactly one of them under errors.Is.
var (
	// ErrFormat is returned for an unrecognized format token, PNG color type,
	// bit depth, compression, filter or interlace method.
	ErrFormat = errors.New("format error")

	// ErrSize is returned for non-positive or mismatched dimensions and
	// content lengths.
	ErrSize = errors.New("size error")

	// ErrColor is returned when a max color value is unparsable or out of [0,255].
	ErrColor = errors.New("color error")

	// ErrChunk is returned for duplicate IHDR/IEND, misplaced or malformed chunks.
	ErrChunk = errors.New("chunk error")

	// ErrInvalidFilterType is returned for a PNG scanline filter byte outside 0-4.
	ErrInvalidFilterType = errors.New("invalid filter type")

	// ErrIO is returned for missing files and use of a closed handle.
	ErrIO = errors.New("io error")

	// ErrUnsupported is returned for unknown color spaces, algorithms or
	// gamma values.
	ErrUnsupported = errors.New("unsupported format")
)

// ParseError describes a failed codec operation.
type ParseError struct {
	Op   string // operation that failed, e.g. "pnm: decode"
	Path string // file path if applicable
	Err  error  // underlying error, wraps one of the kinds above
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s (%s): %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Errorf returns a *ParseError for op whose message is formatted from
// format and args and which matches kind under errors.Is.
func Errorf(op string, kind error, format string, args ...any) error {
	return &ParseError{
		Op:  op,
		Err: fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)),
	}
}
