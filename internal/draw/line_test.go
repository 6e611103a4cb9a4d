package draw

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/rasterkit/internal/image"
)

func newGray(t *testing.T, w, h int) *image.FloatBuf {
	t.Helper()
	buf, err := image.NewFloatBuf(w, h, image.FormatGray8)
	if err != nil {
		t.Fatalf("NewFloatBuf failed: %v", err)
	}
	return buf
}

func TestHorizontalLine(t *testing.T) {
	buf := newGray(t, 5, 3)
	if err := Line(buf, Point{0, 1}, Point{4, 1}, []float64{1}, 1, 1); err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	for y := range 3 {
		for x := range 5 {
			want := 0.0
			if y == 1 {
				want = 1
			}
			if got := buf.Pixel(x, y)[0]; math.Abs(got-want) > 1e-12 {
				t.Errorf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestVerticalLineReversed(t *testing.T) {
	buf := newGray(t, 3, 4)
	if err := Line(buf, Point{2, 3}, Point{2, 0}, []float64{1}, 1, 1); err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	for y := range 4 {
		if got := buf.Pixel(2, y)[0]; got != 1 {
			t.Errorf("(2,%d) = %v, want 1", y, got)
		}
		if got := buf.Pixel(1, y)[0]; got != 0 {
			t.Errorf("(1,%d) = %v, want 0", y, got)
		}
	}
}

func TestSplitCoverage(t *testing.T) {
	for _, tt := range []struct {
		gamma, want float64
	}{
		{1, 0.5},
		{2.2, math.Pow(0.5, 1/2.2)},
	} {
		buf := newGray(t, 4, 4)
		if err := Line(buf, Point{0, 1.5}, Point{3, 1.5}, []float64{1}, 1, tt.gamma); err != nil {
			t.Fatalf("Line failed: %v", err)
		}
		for x := range 4 {
			for _, y := range []int{1, 2} {
				if got := buf.Pixel(x, y)[0]; math.Abs(got-tt.want) > 1e-12 {
					t.Errorf("gamma %v: (%d,%d) = %v, want %v", tt.gamma, x, y, got, tt.want)
				}
			}
		}
	}
}

func TestThickLine(t *testing.T) {
	buf := newGray(t, 5, 5)
	if err := Line(buf, Point{0, 2}, Point{4, 2}, []float64{1}, 3, 1); err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	for y := range 5 {
		want := 0.0
		if y >= 1 && y <= 3 {
			want = 1
		}
		if got := buf.Pixel(2, y)[0]; math.Abs(got-want) > 1e-12 {
			t.Errorf("(2,%d) = %v, want %v", y, got, want)
		}
	}
}

func TestRGBLineClipped(t *testing.T) {
	buf, _ := image.NewFloatBuf(3, 3, image.FormatRGB8)
	if err := Line(buf, Point{-5, -5}, Point{10, 10}, []float64{1, 0, 0.5}, 1, 1); err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	for i := range 3 {
		px := buf.Pixel(i, i)
		if px[0] != 1 || px[1] != 0 || px[2] != 0.5 {
			t.Errorf("(%d,%d) = %v, want [1 0 0.5]", i, i, px)
		}
	}
}

func TestLineRejects(t *testing.T) {
	buf := newGray(t, 2, 2)
	if err := Line(buf, Point{}, Point{1, 1}, []float64{1, 1, 1}, 1, 1); !errors.Is(err, image.ErrFormat) {
		t.Errorf("channel mismatch error = %v, want ErrFormat", err)
	}
	if err := Line(buf, Point{}, Point{1, 1}, []float64{1}, 0, 1); !errors.Is(err, image.ErrSize) {
		t.Errorf("zero thickness error = %v, want ErrSize", err)
	}
	if err := Line(buf, Point{}, Point{1, 1}, []float64{1}, 1, -2); !errors.Is(err, image.ErrUnsupported) {
		t.Errorf("bad gamma error = %v, want ErrUnsupported", err)
	}
}
