package png

import "github.com/gogpu/rasterkit/internal/image"

// FilterType is the per-scanline prediction scheme byte.
type FilterType uint8

// Filter types, numbered as in the PNG format.
const (
	FilterNone FilterType = iota
	FilterSub
	FilterUp
	FilterAverage
	FilterPaeth
	nFilter
)

// String returns the PNG name of the filter type.
func (f FilterType) String() string {
	switch f {
	case FilterNone:
		return "None"
	case FilterSub:
		return "Sub"
	case FilterUp:
		return "Up"
	case FilterAverage:
		return "Average"
	case FilterPaeth:
		return "Paeth"
	default:
		return "Unknown"
	}
}

// IsValid reports whether f is one of the five defined filter types.
func (f FilterType) IsValid() bool {
	return f < nFilter
}

// Paeth returns whichever of a (left), b (up) and c (up-left) is closest
// to p = a + b - c, preferring a, then b, then c on ties.
func Paeth(a, b, c uint8) uint8 {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Reconstruct reverses filter ft in place on cur, given the already
// reconstructed previous scanline prev (all zeros for the first row) and
// bpp bytes per pixel. All arithmetic is modulo 256.
func Reconstruct(ft FilterType, cur, prev []byte, bpp int) error {
	switch ft {
	case FilterNone:
	case FilterSub:
		for i := bpp; i < len(cur); i++ {
			cur[i] += cur[i-bpp]
		}
	case FilterUp:
		for i := range cur {
			cur[i] += prev[i]
		}
	case FilterAverage:
		for i := range bpp {
			cur[i] += prev[i] / 2
		}
		for i := bpp; i < len(cur); i++ {
			cur[i] += uint8((int(cur[i-bpp]) + int(prev[i])) / 2)
		}
	case FilterPaeth:
		for i := range bpp {
			cur[i] += Paeth(0, prev[i], 0)
		}
		for i := bpp; i < len(cur); i++ {
			cur[i] += Paeth(cur[i-bpp], prev[i], prev[i-bpp])
		}
	default:
		return image.Errorf(opDecode, image.ErrInvalidFilterType, "filter type %d", uint8(ft))
	}
	return nil
}

// Apply writes the ft-filtered form of the raw scanline cur into dst,
// given the raw previous scanline prev. It is the exact inverse of
// Reconstruct. dst and cur must not overlap.
func Apply(ft FilterType, dst, cur, prev []byte, bpp int) error {
	switch ft {
	case FilterNone:
		copy(dst, cur)
	case FilterSub:
		for i := range cur {
			var left byte
			if i >= bpp {
				left = cur[i-bpp]
			}
			dst[i] = cur[i] - left
		}
	case FilterUp:
		for i := range cur {
			dst[i] = cur[i] - prev[i]
		}
	case FilterAverage:
		for i := range cur {
			var left int
			if i >= bpp {
				left = int(cur[i-bpp])
			}
			dst[i] = cur[i] - uint8((left+int(prev[i]))/2)
		}
	case FilterPaeth:
		for i := range cur {
			var left, upLeft byte
			if i >= bpp {
				left, upLeft = cur[i-bpp], prev[i-bpp]
			}
			dst[i] = cur[i] - Paeth(left, prev[i], upLeft)
		}
	default:
		return image.Errorf(opEncode, image.ErrInvalidFilterType, "filter type %d", uint8(ft))
	}
	return nil
}
