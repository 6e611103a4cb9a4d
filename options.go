package rasterkit

import (
	"log/slog"
	"math/rand/v2"

	"github.com/gogpu/rasterkit/internal/logging"
	"github.com/gogpu/rasterkit/internal/png"
	"github.com/gogpu/rasterkit/internal/scale"
)

// Option configures a single call.
//
// Example:
//
//	h, err := rasterkit.Open("in.png", rasterkit.ReadMode,
//		rasterkit.WithStrictCRC(true),
//		rasterkit.WithLogger(slog.Default()))
type Option func(*options)

// options holds the per-call configuration.
type options struct {
	logger      *slog.Logger
	strictCRC   bool
	workers     int
	rng         *rand.Rand
	compression png.CompressionLevel
	chunks      []png.Chunk
	filter      png.FilterType
	spline      *scale.Spline
	tables      *TableCache
	scratch     *ScratchPool
}

// newOptions applies opts over the defaults: silent logging, lenient CRC
// checks, GOMAXPROCS workers, default compression and filter None.
func newOptions(opts []Option) options {
	o := options{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger. Chunk traversal and stage timings are
// logged at debug level, tolerated CRC mismatches at warn level.
// Nil restores the silent default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = logging.OrNop(l)
	}
}

// WithStrictCRC makes a PNG chunk CRC mismatch fail decoding with
// ErrChunk instead of logging a warning.
func WithStrictCRC(strict bool) Option {
	return func(o *options) {
		o.strictCRC = strict
	}
}

// WithWorkers bounds the goroutines used for row-parallel stages (color
// conversion and scaling). 1 runs sequentially; 0 or less uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithRand sets the random source for random dithering. Without it each
// call seeds a fresh generator.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithCompressionLevel sets the zlib effort for PNG output.
func WithCompressionLevel(l CompressionLevel) Option {
	return func(o *options) {
		o.compression = l
	}
}

// WithPNGFilter sets the scanline filter used for PNG output.
func WithPNGFilter(f PNGFilter) Option {
	return func(o *options) {
		o.filter = f
	}
}

// WithBCSpline sets the B and C parameters of BCSpline scaling.
// The default is B = 0, C = 0.5.
func WithBCSpline(b, c float64) Option {
	return func(o *options) {
		o.spline = &scale.Spline{B: b, C: c}
	}
}

// WithChunks copies ancillary chunks into PNG output, for example the
// Chunks of a Handle that was read. Critical and gAMA chunks are ignored.
func WithChunks(chunks []Chunk) Option {
	return func(o *options) {
		o.chunks = chunks
	}
}

// WithTableCache lets Process reuse gamma lookup tables across calls.
// Without it each gamma-only run builds its own table.
func WithTableCache(c *TableCache) Option {
	return func(o *options) {
		o.tables = c
	}
}

// WithScratchPool lets Lanczos3 and BCSpline scaling reuse intermediate
// buffers across calls. Without it each run allocates its own.
func WithScratchPool(p *ScratchPool) Option {
	return func(o *options) {
		o.scratch = p
	}
}
