package rasterkit

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/rasterkit/internal/png"
	"github.com/gogpu/rasterkit/internal/pnm"
)

const (
	opOpen  = "rasterkit: open"
	opRead  = "rasterkit: read"
	opWrite = "rasterkit: write"
	opClose = "rasterkit: close"
)

// Mode selects whether a Handle reads or writes.
type Mode uint8

const (
	ReadMode Mode = iota
	WriteMode
)

// String returns "read" or "write".
func (m Mode) String() string {
	switch m {
	case ReadMode:
		return "read"
	case WriteMode:
		return "write"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Kind is the container format of a file.
type Kind uint8

const (
	KindPNM Kind = iota
	KindPNG
)

// String returns "PNM" or "PNG".
func (k Kind) String() string {
	switch k {
	case KindPNM:
		return "PNM"
	case KindPNG:
		return "PNG"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// KindFromPath picks the container for a file name by extension:
// .png is PNG; .pnm, .pgm and .ppm are PNM.
func KindFromPath(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return KindPNG, nil
	case ".pnm", ".pgm", ".ppm":
		return KindPNM, nil
	}
	return 0, fmt.Errorf("%w: no container for extension %q", ErrUnsupported, filepath.Ext(path))
}

// Sniff detects the container from the first bytes of a file: the PNG
// signature or a PNM "P" token.
func Sniff(head []byte) (Kind, error) {
	if bytes.HasPrefix(head, []byte(png.Signature)) {
		return KindPNG, nil
	}
	if len(head) >= 2 && head[0] == 'P' {
		return KindPNM, nil
	}
	return 0, fmt.Errorf("%w: unrecognized file signature", ErrFormat)
}

// Handle is an open image file. A Handle is not safe for concurrent use.
type Handle struct {
	path   string
	mode   Mode
	kind   Kind
	f      *os.File
	opts   options
	log    *slog.Logger
	chunks []Chunk
}

// Open opens path for reading or writing.
//
// In ReadMode the container is detected from the file contents. In
// WriteMode it is chosen from the extension and the file is created (or
// truncated) immediately; nothing is written until Write succeeds in
// encoding the whole image.
func Open(path string, mode Mode, opts ...Option) (*Handle, error) {
	o := newOptions(opts)
	h := &Handle{path: path, mode: mode, opts: o, log: o.logger.With("path", path)}

	switch mode {
	case ReadMode:
		f, err := os.Open(path)
		if err != nil {
			return nil, withPath(opOpen, path, fmt.Errorf("%w: %w", ErrIO, err))
		}
		head, _ := bufio.NewReaderSize(f, 16).Peek(len(png.Signature))
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			_ = f.Close()
			return nil, withPath(opOpen, path, fmt.Errorf("%w: %w", ErrIO, err))
		}
		kind, err := Sniff(head)
		if err != nil {
			_ = f.Close()
			return nil, withPath(opOpen, path, err)
		}
		h.f, h.kind = f, kind

	case WriteMode:
		kind, err := KindFromPath(path)
		if err != nil {
			return nil, withPath(opOpen, path, err)
		}
		f, err := os.Create(path)
		if err != nil {
			return nil, withPath(opOpen, path, fmt.Errorf("%w: %w", ErrIO, err))
		}
		h.f, h.kind = f, kind

	default:
		return nil, withPath(opOpen, path, fmt.Errorf("%w: mode %d", ErrUnsupported, mode))
	}

	h.log.Debug("rasterkit: opened", "mode", mode, "kind", h.kind)
	return h, nil
}

// Kind returns the container format of the file.
func (h *Handle) Kind() Kind { return h.kind }

// Path returns the file path.
func (h *Handle) Path() string { return h.path }

// Chunks returns the chunks seen by the last Read of a PNG file, in
// stream order. It is nil for PNM files.
func (h *Handle) Chunks() []Chunk { return h.chunks }

func (h *Handle) check(op string, want Mode) error {
	if h.f == nil {
		return withPath(op, h.path, fmt.Errorf("%w: handle is closed", ErrIO))
	}
	if h.mode != want {
		return withPath(op, h.path, fmt.Errorf("%w: handle not opened for this operation", ErrIO))
	}
	return nil
}

// Read decodes the whole file. It may be called more than once.
func (h *Handle) Read() (*Image, error) {
	if err := h.check(opRead, ReadMode); err != nil {
		return nil, err
	}
	if _, err := h.f.Seek(0, io.SeekStart); err != nil {
		return nil, withPath(opRead, h.path, fmt.Errorf("%w: %w", ErrIO, err))
	}
	data, err := io.ReadAll(h.f)
	if err != nil {
		return nil, withPath(opRead, h.path, fmt.Errorf("%w: %w", ErrIO, err))
	}

	switch h.kind {
	case KindPNG:
		d := png.Decoder{Logger: h.log, StrictCRC: h.opts.strictCRC}
		f, err := d.DecodeBytes(data)
		if err != nil {
			return nil, withPath(opRead, h.path, err)
		}
		// The stream already decoded, so listing its chunks cannot fail.
		var quiet png.Decoder
		chunks, _ := quiet.ReadChunks(data)
		h.chunks = chunks
		h.log.Debug("rasterkit: decoded", "width", f.Header.Width, "height", f.Header.Height,
			"format", f.Image.Format(), "gamma", f.Gamma, "chunks", len(chunks))
		return f.Image, nil

	default:
		img, hdr, err := pnm.DecodeBytes(data)
		if err != nil {
			return nil, withPath(opRead, h.path, err)
		}
		h.log.Debug("rasterkit: decoded", "width", hdr.Width, "height", hdr.Height,
			"format", hdr.Format, "max", hdr.MaxColor)
		return img, nil
	}
}

// Write encodes img and replaces the file contents with it. The image is
// encoded in memory first, so a failed Write leaves the file empty.
func (h *Handle) Write(img *Image) error {
	if err := h.check(opWrite, WriteMode); err != nil {
		return err
	}
	if img == nil {
		return withPath(opWrite, h.path, fmt.Errorf("%w: nil image", ErrSize))
	}

	var buf bytes.Buffer
	var err error
	switch h.kind {
	case KindPNG:
		enc := png.Encoder{
			CompressionLevel: h.opts.compression,
			Filter:           h.opts.filter,
			Ancillary:        h.opts.chunks,
		}
		err = enc.Encode(&buf, img)
	default:
		err = pnm.Encode(&buf, img)
	}
	if err != nil {
		return withPath(opWrite, h.path, err)
	}

	if err := h.f.Truncate(0); err != nil {
		return withPath(opWrite, h.path, fmt.Errorf("%w: %w", ErrIO, err))
	}
	if _, err := h.f.Seek(0, io.SeekStart); err != nil {
		return withPath(opWrite, h.path, fmt.Errorf("%w: %w", ErrIO, err))
	}
	n, err := buf.WriteTo(h.f)
	if err != nil {
		return withPath(opWrite, h.path, fmt.Errorf("%w: %w", ErrIO, err))
	}
	h.log.Debug("rasterkit: wrote", "bytes", n, "kind", h.kind)
	return nil
}

// Close releases the file. Closing twice is a no-op.
func (h *Handle) Close() error {
	if h.f == nil {
		return nil
	}
	f := h.f
	h.f = nil
	if err := f.Close(); err != nil {
		return withPath(opClose, h.path, fmt.Errorf("%w: %w", ErrIO, err))
	}
	return nil
}

// ReadFile opens, decodes and closes path.
func ReadFile(path string, opts ...Option) (*Image, error) {
	h, err := Open(path, ReadMode, opts...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = h.Close() }()
	return h.Read()
}

// WriteFile creates path, encodes img into it and closes it. The
// container is chosen from the extension.
func WriteFile(path string, img *Image, opts ...Option) (err error) {
	h, err := Open(path, WriteMode, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := h.Close(); err == nil {
			err = cerr
		}
	}()
	return h.Write(img)
}
