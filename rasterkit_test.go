package rasterkit

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testImage(t *testing.T, format Format, w, h int) *Image {
	t.Helper()
	img, err := NewImage(w, h, format)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	for i := range img.Data() {
		img.Data()[i] = byte(i*13 + 1)
	}
	return img
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		format Format
		kind   Kind
		opts   []Option
	}{
		{"gray.pgm", Gray8, KindPNM, nil},
		{"rgb.ppm", RGB8, KindPNM, nil},
		{"rgb.pnm", RGB8, KindPNM, nil},
		{"gray.png", Gray8, KindPNG, nil},
		{"rgb.png", RGB8, KindPNG, []Option{WithPNGFilter(FilterPaeth), WithCompressionLevel(BestCompression)}},
		{"RGB.PNG", RGB8, KindPNG, []Option{WithPNGFilter(FilterAverage)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			src := testImage(t, tt.format, 7, 5)
			if err := WriteFile(path, src, tt.opts...); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}

			h, err := Open(path, ReadMode)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer h.Close()
			if h.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", h.Kind(), tt.kind)
			}
			got, err := h.Read()
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if !got.Equal(src) {
				t.Error("read pixels differ from written pixels")
			}
			again, err := h.Read()
			if err != nil || !again.Equal(src) {
				t.Errorf("second Read = %v", err)
			}
			if tt.kind == KindPNG && len(h.Chunks()) < 3 {
				t.Errorf("Chunks() = %d chunks", len(h.Chunks()))
			}
		})
	}
}

func TestSniffIgnoresExtension(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "a.png")
	if err := WriteFile(png, testImage(t, Gray8, 2, 2)); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	renamed := filepath.Join(dir, "a.ppm")
	if err := os.Rename(png, renamed); err != nil {
		t.Fatal(err)
	}
	h, err := Open(renamed, ReadMode)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer h.Close()
	if h.Kind() != KindPNG {
		t.Errorf("Kind() = %v, want PNG", h.Kind())
	}
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.pnm"), ReadMode)
	if !errors.Is(err, ErrIO) {
		t.Errorf("missing file error = %v, want ErrIO", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || !strings.HasSuffix(pe.Path, "missing.pnm") {
		t.Errorf("missing file error %v does not carry the path", err)
	}

	junk := filepath.Join(dir, "junk.bin")
	if err := os.WriteFile(junk, []byte("GIF89a"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(junk, ReadMode); !errors.Is(err, ErrFormat) {
		t.Errorf("junk file error = %v, want ErrFormat", err)
	}

	if _, err := Open(filepath.Join(dir, "out.jpg"), WriteMode); !errors.Is(err, ErrUnsupported) {
		t.Errorf("jpg write error = %v, want ErrUnsupported", err)
	}
	if _, err := Open(junk, Mode(9)); !errors.Is(err, ErrUnsupported) {
		t.Errorf("bad mode error = %v, want ErrUnsupported", err)
	}
}

func TestHandleMisuse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.pgm")
	h, err := Open(path, WriteMode)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := h.Read(); !errors.Is(err, ErrIO) {
		t.Errorf("Read on write handle error = %v, want ErrIO", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
	if err := h.Write(testImage(t, Gray8, 1, 1)); !errors.Is(err, ErrIO) {
		t.Errorf("Write after Close error = %v, want ErrIO", err)
	}
}

func TestFailedWriteLeavesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	err := WriteFile(path, testImage(t, RGB8, 3, 3), WithPNGFilter(PNGFilter(9)))
	if !errors.Is(err, ErrInvalidFilterType) {
		t.Fatalf("WriteFile error = %v, want ErrInvalidFilterType", err)
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if st.Size() != 0 {
		t.Errorf("file size = %d, want 0", st.Size())
	}
}

func TestReadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.pgm")
	if err := os.WriteFile(path, []byte("P5\n2 2\n255\n\x00"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := ReadFile(path)
	if !errors.Is(err, ErrSize) {
		t.Errorf("ReadFile error = %v, want ErrSize", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Path != path {
		t.Errorf("error %v does not carry path %s", err, path)
	}
}

func TestStrictCRC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crc.png")
	if err := WriteFile(path, testImage(t, Gray8, 4, 4)); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// Corrupt the last byte of the IEND CRC.
	data[len(data)-1] ^= 0xff
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	if _, err := ReadFile(path, WithLogger(slog.New(slog.NewTextHandler(&logs, nil)))); err != nil {
		t.Fatalf("lenient ReadFile failed: %v", err)
	}
	if !strings.Contains(logs.String(), "CRC mismatch") {
		t.Errorf("missing CRC warning in %q", logs.String())
	}
	if _, err := ReadFile(path, WithStrictCRC(true)); !errors.Is(err, ErrChunk) {
		t.Errorf("strict ReadFile error = %v, want ErrChunk", err)
	}
}

func TestWriteWithChunks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "text.png")
	img := testImage(t, RGB8, 2, 2)
	img.SetGamma(2.2)
	extra := []Chunk{
		{Type: "tEXt", Data: []byte("Comment\x00hello")},
		{Type: "gAMA", Data: []byte{0, 0, 0, 1}},
		{Type: "IDAT", Data: []byte{1, 2, 3}},
	}
	if err := WriteFile(path, img, WithChunks(extra)); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	h, err := Open(path, ReadMode)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = h.Close() }()
	got, err := h.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Gamma() != 2.2 {
		t.Errorf("Gamma() = %v, want 2.2", got.Gamma())
	}
	var types []string
	for _, c := range h.Chunks() {
		types = append(types, c.Type)
	}
	if want := "IHDR gAMA tEXt IDAT IEND"; strings.Join(types, " ") != want {
		t.Errorf("chunks = %v, want %s", types, want)
	}
}

func TestProcessZeroSteps(t *testing.T) {
	src := testImage(t, RGB8, 4, 3)
	src.SetGamma(2.2)
	out, err := Process(src, Steps{})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if !out.Equal(src) || out == src {
		t.Error("zero Steps should return an equal copy")
	}
	if out.Gamma() != 2.2 {
		t.Errorf("Gamma() = %v, want 2.2", out.Gamma())
	}
}

func TestProcessPipeline(t *testing.T) {
	src := testImage(t, RGB8, 16, 8)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	out, err := Process(src, Steps{
		From:        RGB,
		To:          YCbCr601,
		GammaFrom:   2.2,
		GammaTo:     1,
		GammaPolicy: ConvertGamma,
		Dither:      OrderedDither,
		DitherBits:  1,
		Scale:       Nearest,
		Width:       8,
		Height:      4,
		DX:          1,
	}, WithLogger(logger), WithWorkers(2))
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if w, h := out.Bounds(); w != 8 || h != 4 {
		t.Errorf("Bounds() = (%d, %d), want (8, 4)", w, h)
	}
	if out.Gamma() != 1 {
		t.Errorf("Gamma() = %v, want 1", out.Gamma())
	}
	for i, v := range out.Data() {
		if v != 0 && v != 255 {
			t.Fatalf("sample %d = %d, want 0 or 255", i, v)
		}
	}
	for y := range 4 {
		if px := out.PixelBytes(0, y); px[0] != 0 || px[1] != 0 || px[2] != 0 {
			t.Errorf("displaced column pixel (0,%d) = %v, want black", y, px)
		}
	}
	for _, name := range []string{"color", "gamma", "dither", "scale", "displace"} {
		if !strings.Contains(logs.String(), "name="+name) {
			t.Errorf("no stage log for %s", name)
		}
	}
}

func TestProcessGammaOnlyMatchesFloatPath(t *testing.T) {
	src := testImage(t, RGB8, 5, 3)
	src.SetGamma(2.2)

	out, err := Process(src, Steps{GammaFrom: 2.2, GammaTo: SRGBGamma, GammaPolicy: ConvertGamma})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	buf := src.ToFloat()
	if err := GammaImage(buf, 2.2, SRGBGamma, ConvertGamma); err != nil {
		t.Fatalf("GammaImage failed: %v", err)
	}
	if want := buf.ToImage(); !out.Equal(want) {
		t.Error("table path differs from float path")
	}
	if out.Gamma() != SRGBGamma {
		t.Errorf("Gamma() = %v, want %v", out.Gamma(), SRGBGamma)
	}
	if src.Gamma() != 2.2 {
		t.Error("Process modified its input")
	}
}

func TestProcessSharedCaches(t *testing.T) {
	src := testImage(t, RGB8, 6, 4)
	tables := NewTableCache(4)
	pool := NewScratchPool(2)

	gammaSteps := Steps{GammaFrom: 2.2, GammaTo: 1, GammaPolicy: AssignGamma}
	scaleSteps := Steps{Scale: Lanczos3, Width: 9, Height: 2}
	wantGamma, _ := Process(src, gammaSteps)
	wantScale, _ := Process(src, scaleSteps)

	for range 2 {
		got, err := Process(src, gammaSteps, WithTableCache(tables))
		if err != nil {
			t.Fatalf("Process failed: %v", err)
		}
		if !got.Equal(wantGamma) {
			t.Error("cached gamma table changed the result")
		}
		got, err = Process(src, scaleSteps, WithScratchPool(pool))
		if err != nil {
			t.Fatalf("Process failed: %v", err)
		}
		if !got.Equal(wantScale) {
			t.Error("pooled scratch changed the result")
		}
	}
	if tables.Len() != 1 {
		t.Errorf("TableCache.Len() = %d, want 1", tables.Len())
	}
	if n := pool.Len(9, 4, RGB8); n != 1 {
		t.Errorf("ScratchPool holds %d buffers, want 1", n)
	}
}

func TestProcessErrors(t *testing.T) {
	gray := testImage(t, Gray8, 2, 2)
	tests := []struct {
		name  string
		steps Steps
		want  error
	}{
		{"gray color conversion", Steps{From: RGB, To: HSV}, ErrFormat},
		{"one gamma", Steps{GammaTo: 2.2}, ErrUnsupported},
		{"dither bits", Steps{Dither: FloydSteinberg, DitherBits: 12}, ErrUnsupported},
		{"scale size", Steps{Scale: Bilinear}, ErrSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Process(gray, tt.steps); !errors.Is(err, tt.want) {
				t.Errorf("Process error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFacadeStages(t *testing.T) {
	img, _ := NewFloatImage(4, 4, RGB8)
	for i := range img.Data() {
		img.Data()[i] = 0.5
	}

	hsl, err := ConvertColor(img, RGB, HSL, WithWorkers(1))
	if err != nil {
		t.Fatalf("ConvertColor failed: %v", err)
	}
	if px := hsl.Pixel(0, 0); px[0] != 0 || px[1] != 0 || px[2] != 0.5 {
		t.Errorf("HSL of gray = %v", px)
	}

	px := []float64{0.25, 0.25, 0.25}
	if err := ApplyGamma(px, 2, 1, AssignGamma); err != nil || px[0] != 0.5 {
		t.Errorf("ApplyGamma = %v, %v", px, err)
	}
	if err := GammaImage(img, 1, 1, ConvertGamma); err != nil {
		t.Errorf("GammaImage failed: %v", err)
	}

	levels, _ := NewLevels(1)
	if err := ApplyDither(FloydSteinberg, img, 0, 0, levels); err != nil {
		t.Fatalf("ApplyDither failed: %v", err)
	}
	if p := img.Pixel(0, 0); p[0] != 0 {
		t.Errorf("dithered pixel = %v, want 0", p)
	}
	if err := Dither(RandomDither, img, 2, WithRand(rand.New(rand.NewPCG(1, 1)))); err != nil {
		t.Errorf("Dither failed: %v", err)
	}

	big, err := Scale(BCSpline, img, 8, 8, WithBCSpline(1.0/3, 1.0/3))
	if err != nil {
		t.Fatalf("Scale failed: %v", err)
	}
	if w, h := big.Bounds(); w != 8 || h != 8 {
		t.Errorf("scaled to %dx%d", w, h)
	}
	if Displace(big, 0, 0) != big {
		t.Error("zero Displace should return its input")
	}

	canvas, _ := NewFloatImage(5, 5, Gray8)
	if err := DrawLine(canvas, 0, 2, 4, 2, []float64{1}, 1, SRGBGamma); err != nil {
		t.Fatalf("DrawLine failed: %v", err)
	}
	if v := canvas.Pixel(3, 2)[0]; math.Abs(v-1) > 1e-9 {
		t.Errorf("line pixel = %v", canvas.Pixel(3, 2))
	}

	ramp, _ := Gradient(40, 20)
	th, err := Thumbnail(ramp, 10, 10)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}
	if b := th.Bounds(); b.Dx() != 10 || b.Dy() != 5 {
		t.Errorf("thumbnail bounds = %v", b)
	}
}

func TestParseHelpers(t *testing.T) {
	if s, err := ParseColorSpace("ycocg"); err != nil || s != YCoCg {
		t.Errorf("ParseColorSpace = %v, %v", s, err)
	}
	if p, err := ParseGammaPolicy("Convert"); err != nil || p != ConvertGamma {
		t.Errorf("ParseGammaPolicy = %v, %v", p, err)
	}
	if a, err := ParseDitherAlgorithm("Atkinson"); err != nil || a != Atkinson {
		t.Errorf("ParseDitherAlgorithm = %v, %v", a, err)
	}
	if a, err := ParseScaleAlgorithm("BILINEAR"); err != nil || a != Bilinear {
		t.Errorf("ParseScaleAlgorithm = %v, %v", a, err)
	}
	if k, err := KindFromPath("x.PGM"); err != nil || k != KindPNM {
		t.Errorf("KindFromPath = %v, %v", k, err)
	}
}
