package rasterkit

import (
	stdimage "image"

	"github.com/gogpu/rasterkit/internal/color"
	"github.com/gogpu/rasterkit/internal/dither"
	"github.com/gogpu/rasterkit/internal/gamma"
	"github.com/gogpu/rasterkit/internal/image"
	"github.com/gogpu/rasterkit/internal/png"
	"github.com/gogpu/rasterkit/internal/scale"
)

// Image is an 8-bit raster as stored in a file.
type Image = image.ImageBuf

// FloatImage is a raster with samples normalized to [0,1].
type FloatImage = image.FloatBuf

// Format is the pixel layout of an image.
type Format = image.Format

const (
	Gray8 = image.FormatGray8
	RGB8  = image.FormatRGB8
)

// NewImage creates a zeroed image.
func NewImage(width, height int, format Format) (*Image, error) {
	return image.NewImageBuf(width, height, format)
}

// NewFloatImage creates a zeroed normalized image.
func NewFloatImage(width, height int, format Format) (*FloatImage, error) {
	return image.NewFloatBuf(width, height, format)
}

// FromStdImage copies a standard library image into a new Image of the
// given format. Alpha is discarded.
func FromStdImage(img stdimage.Image, format Format) (*Image, error) {
	return image.FromStdImage(img, format)
}

// Gradient returns a width x height horizontal black-to-white ramp.
func Gradient(width, height int) (*Image, error) {
	return image.Gradient(width, height)
}

// ColorSpace identifies a color space.
type ColorSpace = color.Space

const (
	RGB      = color.RGB
	HSL      = color.HSL
	HSV      = color.HSV
	YCbCr601 = color.YCbCr601
	YCbCr709 = color.YCbCr709
	YCoCg    = color.YCoCg
	CMY      = color.CMY
)

// ParseColorSpace maps a case-insensitive name such as "ycbcr709" to its
// ColorSpace.
func ParseColorSpace(name string) (ColorSpace, error) { return color.ParseSpace(name) }

// GammaPolicy selects how samples move between gamma values.
type GammaPolicy = gamma.Policy

const (
	AssignGamma  = gamma.Assign
	ConvertGamma = gamma.Convert
)

// SRGBGamma selects the sRGB transfer curves.
const SRGBGamma = gamma.SRGB

// ParseGammaPolicy maps "assign" or "convert" to its GammaPolicy.
func ParseGammaPolicy(name string) (GammaPolicy, error) { return gamma.ParsePolicy(name) }

// DitherAlgorithm identifies a dithering algorithm.
type DitherAlgorithm = dither.Algorithm

const (
	NoDither       = dither.None
	RandomDither   = dither.Random
	OrderedDither  = dither.Ordered
	FloydSteinberg = dither.FloydSteinberg
	Atkinson       = dither.Atkinson
)

// ParseDitherAlgorithm maps a case-insensitive name to its DitherAlgorithm.
func ParseDitherAlgorithm(name string) (DitherAlgorithm, error) { return dither.ParseAlgorithm(name) }

// Levels is an ascending set of quantization levels on [0,1].
type Levels = dither.Levels

// NewLevels returns the 2^bits evenly spaced levels for bits in [1,8].
func NewLevels(bits int) (Levels, error) { return dither.NewLevels(bits) }

// ScaleAlgorithm identifies a resampling algorithm.
type ScaleAlgorithm = scale.Algorithm

const (
	NoScale  = scale.None
	Nearest  = scale.Nearest
	Bilinear = scale.Bilinear
	Lanczos3 = scale.Lanczos3
	BCSpline = scale.BCSpline
)

// ParseScaleAlgorithm maps a case-insensitive name to its ScaleAlgorithm.
func ParseScaleAlgorithm(name string) (ScaleAlgorithm, error) { return scale.ParseAlgorithm(name) }

// PNGFilter is a PNG scanline filter type.
type PNGFilter = png.FilterType

const (
	FilterNone    = png.FilterNone
	FilterSub     = png.FilterSub
	FilterUp      = png.FilterUp
	FilterAverage = png.FilterAverage
	FilterPaeth   = png.FilterPaeth
)

// CompressionLevel is the zlib effort used for PNG output.
type CompressionLevel = png.CompressionLevel

const (
	DefaultCompression = png.DefaultCompression
	NoCompression      = png.NoCompression
	BestSpeed          = png.BestSpeed
	BestCompression    = png.BestCompression
)

// Chunk is a raw PNG chunk.
type Chunk = png.Chunk

// TableCache shares 8-bit gamma lookup tables between Process calls.
type TableCache = gamma.TableCache

// NewTableCache returns a cache holding at most size tables.
func NewTableCache(size int) *TableCache { return gamma.NewTableCache(size) }

// ScratchPool recycles the intermediate buffers of separable scaling.
type ScratchPool = image.Pool

// NewScratchPool returns a pool keeping at most perSize buffers of each
// geometry.
func NewScratchPool(perSize int) *ScratchPool { return image.NewPool(perSize) }
