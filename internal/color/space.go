// Package color converts normalized pixels between RGB and the derived
// color spaces HSL, HSV, YCbCr (BT.601 and BT.709), YCoCg and CMY.
//
// Every channel of every space is kept in [0,1]: hue is stored as
// degrees/360 and chroma channels carry a +0.5 offset.
package color

import (
	"fmt"

	"golang.org/x/text/cases"

	"github.com/gogpu/rasterkit/internal/image"
)

// Space identifies a color space.
type Space uint8

const (
	RGB Space = iota
	HSL
	HSV
	YCbCr601
	YCbCr709
	YCoCg
	CMY
	spaceCount
)

var spaceNames = [spaceCount]string{
	RGB:      "RGB",
	HSL:      "HSL",
	HSV:      "HSV",
	YCbCr601: "YCbCr601",
	YCbCr709: "YCbCr709",
	YCoCg:    "YCoCg",
	CMY:      "CMY",
}

// String returns the canonical name of the space.
func (s Space) String() string {
	if s >= spaceCount {
		return fmt.Sprintf("Space(%d)", uint8(s))
	}
	return spaceNames[s]
}

// IsValid reports whether s is a known space.
func (s Space) IsValid() bool {
	return s < spaceCount
}

// Spaces returns every known space in declaration order.
func Spaces() []Space {
	out := make([]Space, spaceCount)
	for i := range out {
		out[i] = Space(i)
	}
	return out
}

// ParseSpace maps a case-insensitive space name to its Space.
func ParseSpace(name string) (Space, error) {
	fold := cases.Fold()
	want := fold.String(name)
	for s, n := range spaceNames {
		if fold.String(n) == want {
			return Space(s), nil
		}
	}
	return 0, fmt.Errorf("color: unknown space %q: %w", name, image.ErrUnsupported)
}

func unsupported(s Space) error {
	return fmt.Errorf("color: %v: %w", s, image.ErrUnsupported)
}
