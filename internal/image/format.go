// Package image provides the raster buffers shared by the codecs and the
// pixel pipeline.
//
// ImageBuf holds 8-bit samples exactly as they appear in a file body;
// FloatBuf holds the same samples normalized to [0,1] while the pipeline
// works on them.
package image

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatGray8 is 8-bit grayscale (1 byte per pixel): PNM P5, PNG color type 0.
	FormatGray8 Format = iota

	// FormatRGB8 is 24-bit RGB (3 bytes per pixel): PNM P6, PNG color type 2.
	FormatRGB8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// IsGrayscale indicates if this is a grayscale format.
	IsGrayscale bool

	// PNMToken is the magic token of the matching PNM variant.
	PNMToken string

	// PNGColorType is the IHDR color type of the matching PNG variant.
	PNGColorType uint8
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatGray8: {
		BytesPerPixel: 1,
		IsGrayscale:   true,
		PNMToken:      "P5",
		PNGColorType:  0,
	},
	FormatRGB8: {
		BytesPerPixel: 3,
		IsGrayscale:   false,
		PNMToken:      "P6",
		PNGColorType:  2,
	},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// Channels returns the number of color channels.
func (f Format) Channels() int {
	return f.Info().BytesPerPixel
}

// IsGrayscale returns true if this is a grayscale format.
func (f Format) IsGrayscale() bool {
	return f.Info().IsGrayscale
}

// PNMToken returns the PNM magic token, or "" for an invalid format.
func (f Format) PNMToken() string {
	return f.Info().PNMToken
}

// PNGColorType returns the PNG IHDR color type.
func (f Format) PNGColorType() uint8 {
	return f.Info().PNGColorType
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "Gray8"
	case FormatRGB8:
		return "RGB8"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// ImageBytes calculates the total number of bytes needed for an image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}

// FormatFromPNMToken returns the format for a PNM magic token.
func FormatFromPNMToken(token string) (Format, bool) {
	for f := range formatCount {
		if formatInfoTable[f].PNMToken == token {
			return f, true
		}
	}
	return 0, false
}

// FormatFromPNGColorType returns the format for a PNG IHDR color type.
// Only grayscale (0) and truecolor (2) are supported.
func FormatFromPNGColorType(ct uint8) (Format, bool) {
	for f := range formatCount {
		if formatInfoTable[f].PNGColorType == ct {
			return f, true
		}
	}
	return 0, false
}
