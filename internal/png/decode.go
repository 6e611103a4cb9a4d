package png

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/klauspost/compress/zlib"

	"github.com/gogpu/rasterkit/internal/binio"
	"github.com/gogpu/rasterkit/internal/image"
	"github.com/gogpu/rasterkit/internal/logging"
)

// File is a decoded PNG stream.
type File struct {
	Header IHDR

	// Gamma is the display gamma from gAMA, or 0 if the chunk is absent.
	Gamma float64

	// StoredGamma is the raw gAMA payload, or 0 if the chunk is absent.
	StoredGamma uint32

	// Ancillary holds every chunk other than IHDR, IDAT, IEND and gAMA,
	// in stream order.
	Ancillary []Chunk

	// Image is the reconstructed raster.
	Image *image.ImageBuf
}

// Decoder decodes PNG streams.
//
// A zero Decoder is ready to use: it logs nothing and tolerates CRC
// mismatches.
type Decoder struct {
	// Logger receives chunk traces (debug) and tolerated CRC mismatches (warn).
	Logger *slog.Logger

	// StrictCRC turns a CRC mismatch into an ErrChunk failure.
	StrictCRC bool
}

// Decode reads a PNG stream with a default Decoder and returns its raster.
func Decode(r io.Reader) (*image.ImageBuf, error) {
	var d Decoder
	f, err := d.Decode(r)
	if err != nil {
		return nil, err
	}
	return f.Image, nil
}

// Decode reads the whole stream from r and decodes it.
func (d *Decoder) Decode(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &image.ParseError{Op: opDecode, Err: fmt.Errorf("%w: %w", image.ErrIO, err)}
	}
	return d.DecodeBytes(data)
}

// DecodeBytes decodes a PNG stream held in memory.
func (d *Decoder) DecodeBytes(data []byte) (*File, error) {
	log := logging.OrNop(d.Logger)

	r, err := openStream(data)
	if err != nil {
		return nil, err
	}

	var (
		f        File
		seenIHDR bool
		idat     bytes.Buffer
		nChunks  int
	)

loop:
	for {
		c, err := readChunk(r)
		if err != nil {
			return nil, err
		}
		if err := d.checkCRC(log, c); err != nil {
			return nil, err
		}
		log.Debug("png: chunk", "type", c.Type, "length", len(c.Data), "critical", c.IsCritical())
		nChunks++

		switch c.Type {
		case TypeIHDR:
			if seenIHDR {
				return nil, image.Errorf(opDecode, image.ErrChunk, "duplicate IHDR chunk")
			}
			if nChunks != 1 {
				return nil, image.Errorf(opDecode, image.ErrChunk, "IHDR is chunk %d, must be first", nChunks)
			}
			if f.Header, err = ParseIHDR(c.Data); err != nil {
				return nil, err
			}
			if err := f.Header.Validate(); err != nil {
				return nil, err
			}
			seenIHDR = true

		case TypeIEND:
			if !seenIHDR {
				return nil, image.Errorf(opDecode, image.ErrChunk, "IEND before IHDR")
			}
			break loop

		case TypeIDAT:
			if !seenIHDR {
				return nil, image.Errorf(opDecode, image.ErrChunk, "IDAT before IHDR")
			}
			idat.Write(c.Data)

		case TypeGAMA:
			if !seenIHDR {
				return nil, image.Errorf(opDecode, image.ErrChunk, "gAMA before IHDR")
			}
			if f.StoredGamma, err = parseGAMA(c.Data); err != nil {
				return nil, err
			}
			f.Gamma = GammaFromStored(f.StoredGamma)

		default:
			if !seenIHDR {
				return nil, image.Errorf(opDecode, image.ErrChunk, "%s before IHDR", c.Type)
			}
			c.Data = bytes.Clone(c.Data)
			f.Ancillary = append(f.Ancillary, c)
		}
	}

	if err := checkTrailing(log, r); err != nil {
		return nil, err
	}

	img, err := inflate(f.Header, idat.Bytes())
	if err != nil {
		return nil, err
	}
	img.SetGamma(f.Gamma)
	f.Image = img
	return &f, nil
}

// ReadChunks returns every chunk of the stream up to and including the
// first IEND, without interpreting them. Chunk data is copied.
func (d *Decoder) ReadChunks(data []byte) ([]Chunk, error) {
	log := logging.OrNop(d.Logger)

	r, err := openStream(data)
	if err != nil {
		return nil, err
	}
	var chunks []Chunk
	for {
		c, err := readChunk(r)
		if err != nil {
			return chunks, err
		}
		if err := d.checkCRC(log, c); err != nil {
			return chunks, err
		}
		c.Data = bytes.Clone(c.Data)
		chunks = append(chunks, c)
		if c.Type == TypeIEND {
			return chunks, nil
		}
	}
}

func openStream(data []byte) (*binio.Reader, error) {
	if len(data) < len(Signature) || string(data[:len(Signature)]) != Signature {
		return nil, image.Errorf(opDecode, image.ErrFormat, "not a PNG file")
	}
	r := binio.NewReader(data)
	_ = r.Skip(len(Signature))
	return r, nil
}

func (d *Decoder) checkCRC(log *slog.Logger, c Chunk) error {
	if c.CRCValid {
		return nil
	}
	if d.StrictCRC {
		return image.Errorf(opDecode, image.ErrChunk, "%s chunk CRC mismatch: stored %08x, computed %08x",
			c.Type, c.CRC, Checksum(c.Type, c.Data))
	}
	log.Warn("png: chunk CRC mismatch", "type", c.Type,
		"stored", c.CRC, "computed", Checksum(c.Type, c.Data))
	return nil
}

// checkTrailing scans whatever follows IEND. Another IHDR or IEND is a
// duplicate; anything else is ignored.
func checkTrailing(log *slog.Logger, r *binio.Reader) error {
	if r.Remaining() == 0 {
		return nil
	}
	log.Debug("png: data after IEND", "bytes", r.Remaining())
	for r.Remaining() >= 12 {
		c, err := readChunk(r)
		if err != nil {
			return nil
		}
		if c.Type == TypeIEND || c.Type == TypeIHDR {
			return image.Errorf(opDecode, image.ErrChunk, "duplicate %s chunk", c.Type)
		}
	}
	return nil
}

// inflate decompresses the concatenated IDAT payload and reconstructs
// every scanline.
func inflate(h IHDR, payload []byte) (*image.ImageBuf, error) {
	format, _ := h.Format()
	bpp := format.BytesPerPixel()
	stride := uint64(h.Width) * uint64(bpp)
	total := (stride + 1) * uint64(h.Height)
	if total > maxImageBytes {
		return nil, image.Errorf(opDecode, image.ErrSize, "image %dx%d too large", h.Width, h.Height)
	}
	if len(payload) == 0 {
		return nil, image.Errorf(opDecode, image.ErrChunk, "no IDAT data")
	}

	zr, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, image.Errorf(opDecode, image.ErrChunk, "corrupt IDAT stream: %v", err)
	}
	defer func() { _ = zr.Close() }()

	// Memory follows the inflated size rather than the IHDR claim.
	var buf bytes.Buffer
	n, err := buf.ReadFrom(io.LimitReader(zr, int64(total)+1))
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, image.Errorf(opDecode, image.ErrSize, "inflated stream truncated after %d bytes, want %d", n, total)
		}
		return nil, image.Errorf(opDecode, image.ErrChunk, "corrupt IDAT stream: %v", err)
	}
	switch {
	case uint64(n) < total:
		return nil, image.Errorf(opDecode, image.ErrSize, "inflated %d bytes, want %d", n, total)
	case uint64(n) > total:
		return nil, image.Errorf(opDecode, image.ErrSize, "inflated stream longer than %d bytes", total)
	}
	raw := buf.Bytes()

	img, err := image.NewImageBuf(int(h.Width), int(h.Height), format)
	if err != nil {
		return nil, &image.ParseError{Op: opDecode, Err: err}
	}

	line := int(stride) + 1
	prev := make([]byte, stride)
	for y := range img.Height() {
		scan := raw[y*line : (y+1)*line]
		ft := FilterType(scan[0])
		if !ft.IsValid() {
			return nil, image.Errorf(opDecode, image.ErrInvalidFilterType, "filter type %d on row %d", scan[0], y)
		}
		cur := img.RowBytes(y)
		copy(cur, scan[1:])
		if err := Reconstruct(ft, cur, prev, bpp); err != nil {
			return nil, err
		}
		prev = cur
	}
	return img, nil
}
