// Package binio provides sequential big-endian byte readers and writers with
// position tracking, shared by the PNM and PNG codecs.
package binio

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Reader reads from an in-memory byte slice and tracks its position.
//
// All reads that cannot be fully satisfied return io.ErrUnexpectedEOF and
// leave the position unchanged. Reading at the exact end returns io.EOF.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the number of bytes consumed so far.
func (r *Reader) Pos() int {
	return r.pos
}

// Len returns the total length of the underlying data.
func (r *Reader) Len() int {
	return len(r.data)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadN returns the next n bytes. The returned slice aliases the
// underlying data and must not be modified.
func (r *Reader) ReadN(n int) ([]byte, error) {
	if n < 0 {
		return nil, io.ErrUnexpectedEOF
	}
	if n == 0 {
		return []byte{}, nil
	}
	if r.pos >= len(r.data) {
		return nil, io.EOF
	}
	if r.Remaining() < n {
		return nil, io.ErrUnexpectedEOF
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadU32 reads a big-endian unsigned 32-bit integer.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadN(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// ReadLine reads up to the next '\n' and returns the line without the
// terminator. A trailing '\r' is stripped. A final line without a newline
// is returned with a nil error; reading past the end returns io.EOF.
func (r *Reader) ReadLine() (string, error) {
	if r.pos >= len(r.data) {
		return "", io.EOF
	}
	rest := r.data[r.pos:]
	i := bytes.IndexByte(rest, '\n')
	var line []byte
	if i < 0 {
		line = rest
		r.pos = len(r.data)
	} else {
		line = rest[:i]
		r.pos += i + 1
	}
	line = bytes.TrimSuffix(line, []byte{'\r'})
	return string(line), nil
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int) error {
	if n < 0 || r.Remaining() < n {
		return io.ErrUnexpectedEOF
	}
	r.pos += n
	return nil
}

// Writer writes big-endian values to an io.Writer and tracks the number of
// bytes written. The first write error is sticky: every later call is a
// no-op returning that error.
type Writer struct {
	w   io.Writer
	pos int
	err error
	tmp [4]byte
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Pos returns the number of bytes written so far.
func (w *Writer) Pos() int {
	return w.pos
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error {
	return w.err
}

// Write writes p in full.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(p)
	w.pos += n
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	w.err = err
	return n, err
}

// WriteByte writes a single byte.
func (w *Writer) WriteByte(b byte) error {
	w.tmp[0] = b
	_, err := w.Write(w.tmp[:1])
	return err
}

// WriteU32 writes v as a big-endian unsigned 32-bit integer.
func (w *Writer) WriteU32(v uint32) error {
	binary.BigEndian.PutUint32(w.tmp[:], v)
	_, err := w.Write(w.tmp[:])
	return err
}

// WriteLine writes s followed by '\n'.
func (w *Writer) WriteLine(s string) error {
	if _, err := w.Write([]byte(s)); err != nil {
		return err
	}
	return w.WriteByte('\n')
}
