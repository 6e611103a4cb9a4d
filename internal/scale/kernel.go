package scale

import "math"

// Lanczos evaluates the Lanczos kernel with a = 3:
// L(0) = 1, L(x) = 3 sin(pi x) sin(pi x / 3) / (pi^2 x^2), 0 for |x| > 3.
func Lanczos(x float64) float64 {
	const a = 3
	if x == 0 {
		return 1
	}
	if x < -a || x > a {
		return 0
	}
	px := math.Pi * x
	return a * math.Sin(px) * math.Sin(px/a) / (px * px)
}

// Spline holds the B and C parameters of the Mitchell-Netravali cubic.
type Spline struct {
	B, C float64
}

// DefaultSpline is B = 0, C = 0.5 (Catmull-Rom).
var DefaultSpline = Spline{B: 0, C: 0.5}

// Weight evaluates the cubic at x; it is 0 for |x| >= 2.
func (s Spline) Weight(x float64) float64 {
	b, c := s.B, s.C
	x = math.Abs(x)
	switch {
	case x < 1:
		return ((12-9*b-6*c)*x*x*x + (-18+12*b+6*c)*x*x + (6 - 2*b)) / 6
	case x < 2:
		return ((-b-6*c)*x*x*x + (6*b+30*c)*x*x + (-12*b-48*c)*x + (8*b + 24*c)) / 6
	default:
		return 0
	}
}

// contrib is one source tap of a target coordinate.
type contrib struct {
	index  int
	weight float64
}

// tapFunc returns the taps of every target coordinate along one axis.
type tapFunc func(srcN, dstN int) [][]contrib

// lanczosTaps places taps floor(s)-2 .. floor(s)+3 around s = t*srcN/dstN,
// clamping indices to the source. Weights are left unnormalized.
func lanczosTaps(srcN, dstN int) [][]contrib {
	ratio := float64(srcN) / float64(dstN)
	out := make([][]contrib, dstN)
	for t := range out {
		s := float64(t) * ratio
		base := int(math.Floor(s))
		taps := make([]contrib, 0, 6)
		for i := base - 2; i <= base+3; i++ {
			taps = append(taps, contrib{
				index:  clampIndex(i, srcN),
				weight: Lanczos(s - float64(i)),
			})
		}
		out[t] = taps
	}
	return out
}

// taps places taps floor(s)-1 .. floor(s)+2 and normalizes their weights.
func (sp Spline) taps(srcN, dstN int) [][]contrib {
	ratio := float64(srcN) / float64(dstN)
	out := make([][]contrib, dstN)
	for t := range out {
		s := float64(t) * ratio
		base := int(math.Floor(s))
		taps := make([]contrib, 0, 4)
		var sum float64
		for i := base - 1; i <= base+2; i++ {
			w := sp.Weight(s - float64(i))
			sum += w
			taps = append(taps, contrib{index: clampIndex(i, srcN), weight: w})
		}
		if sum != 0 {
			for i := range taps {
				taps[i].weight /= sum
			}
		}
		out[t] = taps
	}
	return out
}

func clampIndex(i, n int) int {
	return max(0, min(i, n-1))
}
