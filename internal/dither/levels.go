package dither

import (
	"fmt"

	"github.com/gogpu/rasterkit/internal/image"
)

// MaxBits is the largest supported quantization depth.
const MaxBits = 8

// Levels is an ascending set of evenly spaced quantization levels on [0,1].
type Levels []float64

// NewLevels returns the 2^bits levels i/(2^bits-1). bits must be in [1,8].
func NewLevels(bits int) (Levels, error) {
	if bits < 1 || bits > MaxBits {
		return nil, fmt.Errorf("dither: %d bits outside [1,%d]: %w", bits, MaxBits, image.ErrUnsupported)
	}
	n := 1 << bits
	l := make(Levels, n)
	for i := range l {
		l[i] = float64(i) / float64(n-1)
	}
	return l, nil
}

// Nearest returns the level closest to v; ties resolve to the lower level.
// Values outside the set's range snap to its ends.
func (l Levels) Nearest(v float64) float64 {
	if len(l) == 0 {
		return v
	}
	lo, hi := 0, len(l)-1
	if v <= l[lo] {
		return l[lo]
	}
	if v >= l[hi] {
		return l[hi]
	}
	// Invariant: l[lo] < v < l[hi].
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if l[mid] <= v {
			lo = mid
		} else {
			hi = mid
		}
	}
	if v-l[lo] <= l[hi]-v {
		return l[lo]
	}
	return l[hi]
}
