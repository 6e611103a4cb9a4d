// Package gamma re-encodes normalized samples between gamma values.
//
// A gamma of exactly 2.4 selects the sRGB piecewise curves; a gamma of 1
// is linear; any other value is a pure power law.
package gamma

import (
	"fmt"
	"math"

	"golang.org/x/text/cases"

	"github.com/gogpu/rasterkit/internal/image"
)

// SRGB is the gamma value that selects the sRGB transfer curves.
const SRGB = 2.4

// Policy selects how samples are moved from one gamma to another.
type Policy uint8

const (
	// Assign reinterprets the samples: encode with the source gamma, then
	// decode with the target gamma.
	Assign Policy = iota

	// Convert re-encodes the samples: encode with the source gamma, raise
	// to source/target, then decode with the target gamma.
	Convert
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case Assign:
		return "Assign"
	case Convert:
		return "Convert"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// ParsePolicy maps a case-insensitive policy name to its Policy.
func ParsePolicy(name string) (Policy, error) {
	switch cases.Fold().String(name) {
	case "assign":
		return Assign, nil
	case "convert":
		return Convert, nil
	}
	return 0, fmt.Errorf("gamma: unknown policy %q: %w", name, image.ErrUnsupported)
}

// Encode applies the encoding curve of gamma g to v: the sRGB OETF for
// g == 2.4 (breakpoint 0.0031308), identity for g == 1, else v^(1/g).
func Encode(v, g float64) float64 {
	switch g {
	case SRGB:
		if v <= 0.0031308 {
			return v * 12.92
		}
		return 1.055*math.Pow(v, 1/2.4) - 0.055
	case 1:
		return v
	default:
		return math.Pow(v, 1/g)
	}
}

// Decode applies the decoding curve of gamma g to v: the sRGB EOTF for
// g == 2.4 (breakpoint 0.04045), identity for g == 1, else v^g.
func Decode(v, g float64) float64 {
	switch g {
	case SRGB:
		if v <= 0.04045 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	case 1:
		return v
	default:
		return math.Pow(v, g)
	}
}

// Validate rejects non-positive and non-finite gamma values.
func Validate(g float64) error {
	if !(g > 0) || math.IsInf(g, 0) {
		return fmt.Errorf("gamma: invalid gamma %v: %w", g, image.ErrUnsupported)
	}
	return nil
}

func check(src, dst float64, p Policy) error {
	if err := Validate(src); err != nil {
		return err
	}
	if err := Validate(dst); err != nil {
		return err
	}
	if p != Assign && p != Convert {
		return fmt.Errorf("gamma: %v: %w", p, image.ErrUnsupported)
	}
	return nil
}

// transform moves one sample from src to dst gamma. Arguments are valid.
func transform(v, src, dst float64, p Policy) float64 {
	if src == dst {
		return v
	}
	e := Encode(v, src)
	if p == Convert {
		e = math.Pow(e, src/dst)
	}
	return image.Clamp01(Decode(e, dst))
}

// Apply moves a single sample from src to dst gamma under policy p.
// When src == dst, v is returned unchanged.
func Apply(v, src, dst float64, p Policy) (float64, error) {
	if err := check(src, dst, p); err != nil {
		return v, err
	}
	return transform(v, src, dst, p), nil
}

// ApplyPixel moves every channel of px in place.
func ApplyPixel(px []float64, src, dst float64, p Policy) error {
	if err := check(src, dst, p); err != nil {
		return err
	}
	for i, v := range px {
		px[i] = transform(v, src, dst, p)
	}
	return nil
}

// ApplyBuf moves every sample of buf in place.
func ApplyBuf(buf *image.FloatBuf, src, dst float64, p Policy) error {
	return ApplyPixel(buf.Data(), src, dst, p)
}
