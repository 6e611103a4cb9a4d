// Package png implements a subset of PNG: 8-bit grayscale and truecolor,
// no interlacing, with IHDR, IDAT, IEND and gAMA interpreted and every
// other chunk carried through opaquely.
package png

const (
	opDecode = "png: decode"
	opEncode = "png: encode"
)

// Signature is the 8-byte PNG file signature.
const Signature = "\x89PNG\r\n\x1a\n"

// Chunk type codes.
const (
	TypeIHDR = "IHDR"
	TypeIDAT = "IDAT"
	TypeIEND = "IEND"
	TypeGAMA = "gAMA"
)

// maxChunkLength is the largest chunk length allowed by the PNG standard.
const maxChunkLength = 1<<31 - 1

// maxIDATChunk is the payload size at which the encoder starts a new IDAT chunk.
const maxIDATChunk = 1 << 20

// maxImageBytes bounds the inflated scanline stream.
const maxImageBytes = 1 << 31
