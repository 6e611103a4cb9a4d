package rasterkit

import (
	"errors"

	"github.com/gogpu/rasterkit/internal/image"
)

// Error kinds. Every error returned by this package matches exactly one
// of them under errors.Is.
var (
	ErrFormat            = image.ErrFormat
	ErrSize              = image.ErrSize
	ErrColor             = image.ErrColor
	ErrChunk             = image.ErrChunk
	ErrInvalidFilterType = image.ErrInvalidFilterType
	ErrIO                = image.ErrIO
	ErrUnsupported       = image.ErrUnsupported
)

// ParseError describes a failed codec or file operation.
type ParseError = image.ParseError

// withPath attaches path to a *ParseError, or wraps err in one.
func withPath(op, path string, err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		c := *pe
		c.Path = path
		return &c
	}
	return &ParseError{Op: op, Path: path, Err: err}
}
