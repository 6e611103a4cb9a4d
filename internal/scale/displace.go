package scale

import "github.com/gogpu/rasterkit/internal/image"

// Displace shifts src by (dx, dy) pixels. Pixels moved past an edge are
// dropped and vacated pixels are 0; nothing wraps around. A zero shift
// returns src itself.
func Displace(src *image.FloatBuf, dx, dy int) *image.FloatBuf {
	if dx == 0 && dy == 0 {
		return src
	}
	w, h := src.Bounds()
	dst, _ := image.NewFloatBuf(w, h, src.Format())
	ch := src.Channels()

	x0, x1 := max(0, dx), min(w, w+dx)
	for y := max(0, dy); y < min(h, h+dy); y++ {
		if x0 >= x1 {
			break
		}
		in := src.Row(y - dy)
		copy(dst.Row(y)[x0*ch:x1*ch], in[(x0-dx)*ch:(x1-dx)*ch])
	}
	return dst
}
