package png

import (
	"hash/crc32"

	"github.com/gogpu/rasterkit/internal/binio"
	"github.com/gogpu/rasterkit/internal/image"
)

// Chunk is one length/type/data/CRC record of a PNG stream.
type Chunk struct {
	Type string
	Data []byte

	// CRC is the checksum stored in the file (or computed, for written chunks).
	CRC uint32

	// CRCValid reports whether CRC matches the checksum of Type+Data.
	CRCValid bool
}

// IsCritical reports whether the chunk is critical: the first letter of
// the type code is uppercase.
func (c Chunk) IsCritical() bool {
	return len(c.Type) == 4 && c.Type[0]&0x20 == 0
}

// Checksum computes the CRC32 (IEEE) of the chunk type followed by data.
func Checksum(typ string, data []byte) uint32 {
	h := crc32.NewIEEE()
	_, _ = h.Write([]byte(typ))
	_, _ = h.Write(data)
	return h.Sum32()
}

// readChunk reads one chunk. The returned data aliases the reader buffer.
func readChunk(r *binio.Reader) (Chunk, error) {
	start := r.Pos()
	length, err := r.ReadU32()
	if err != nil {
		return Chunk{}, image.Errorf(opDecode, image.ErrChunk, "truncated chunk header at offset %d", start)
	}
	if length > maxChunkLength {
		return Chunk{}, image.Errorf(opDecode, image.ErrChunk, "chunk length %d too large at offset %d", length, start)
	}
	typ, err := r.ReadN(4)
	if err != nil {
		return Chunk{}, image.Errorf(opDecode, image.ErrChunk, "truncated chunk type at offset %d", start)
	}
	if !validType(typ) {
		return Chunk{}, image.Errorf(opDecode, image.ErrChunk, "invalid chunk type %q at offset %d", typ, start)
	}
	data, err := r.ReadN(int(length))
	if err != nil {
		return Chunk{}, image.Errorf(opDecode, image.ErrChunk,
			"%s chunk declares %d bytes, %d available", typ, length, r.Remaining())
	}
	crc, err := r.ReadU32()
	if err != nil {
		return Chunk{}, image.Errorf(opDecode, image.ErrChunk, "%s chunk missing CRC", typ)
	}
	c := Chunk{Type: string(typ), Data: data, CRC: crc}
	c.CRCValid = Checksum(c.Type, c.Data) == crc
	return c, nil
}

func validType(typ []byte) bool {
	for _, b := range typ {
		if (b < 'A' || b > 'Z') && (b < 'a' || b > 'z') {
			return false
		}
	}
	return true
}

// writeChunk writes a chunk with its length and CRC.
func writeChunk(w *binio.Writer, typ string, data []byte) error {
	_ = w.WriteU32(uint32(len(data)))
	_, _ = w.Write([]byte(typ))
	_, _ = w.Write(data)
	return w.WriteU32(Checksum(typ, data))
}
