// Package rasterkit reads, transforms and writes 8-bit grayscale and RGB
// raster images.
//
// # Overview
//
// rasterkit understands binary PNM (P5 and P6) and a subset of PNG
// (8-bit grayscale and truecolor, not interlaced). Decoded images run
// through a small pixel pipeline: color space conversion, gamma
// assignment or conversion, dithering to a reduced level set, resampling
// and integer displacement.
//
// # Quick Start
//
//	import "github.com/gogpu/rasterkit"
//
//	img, err := rasterkit.ReadFile("in.ppm")
//	if err != nil {
//		return err
//	}
//	out, err := rasterkit.Process(img, rasterkit.Steps{
//		Dither:     rasterkit.FloydSteinberg,
//		DitherBits: 1,
//	})
//	if err != nil {
//		return err
//	}
//	return rasterkit.WriteFile("out.png", out)
//
// # Buffers
//
// Image holds samples exactly as stored in a file. FloatImage holds the
// same samples divided by 255; every pipeline stage works on FloatImage.
// Stages that keep the geometry (gamma, dithering) mutate their input;
// stages that change it (color conversion, scaling, displacement) return
// a new buffer. Use Clone to keep an original.
//
// # Configuration
//
// There is no package-level state. Loggers, worker counts, random
// sources and codec settings are passed per call as Options. Callers
// that run many pipelines can share a TableCache (WithTableCache) for the
// gamma-only fast path and a ScratchPool (WithScratchPool) for scaling.
//
// # Errors
//
// Every failure matches one of ErrFormat, ErrSize, ErrColor, ErrChunk,
// ErrInvalidFilterType, ErrIO or ErrUnsupported under errors.Is. Codec
// failures are *ParseError values carrying the operation and file path.
package rasterkit
