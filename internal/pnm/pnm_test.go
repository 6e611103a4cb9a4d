package pnm

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/gogpu/rasterkit/internal/image"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		format   image.Format
		w, h     int
		maxColor int
	}{
		{image.FormatGray8, 1, 1, 255},
		{image.FormatGray8, 2, 2, 255},
		{image.FormatGray8, 7, 3, 100},
		{image.FormatRGB8, 1, 1, 0},
		{image.FormatRGB8, 5, 4, 255},
		{image.FormatRGB8, 16, 9, 200},
	}

	for _, tt := range tests {
		name := fmt.Sprintf("%s_%dx%d_max%d", tt.format, tt.w, tt.h, tt.maxColor)
		t.Run(name, func(t *testing.T) {
			src, err := image.NewImageBuf(tt.w, tt.h, tt.format)
			if err != nil {
				t.Fatalf("NewImageBuf failed: %v", err)
			}
			for i := range src.Data() {
				src.Data()[i] = byte(i*31 + 7)
			}
			src.SetMaxColor(tt.maxColor)

			var buf bytes.Buffer
			if err := Encode(&buf, src); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			got, h, err := DecodeBytes(buf.Bytes())
			if err != nil {
				t.Fatalf("DecodeBytes failed: %v", err)
			}
			if !got.Equal(src) {
				t.Error("decoded pixels differ from encoded pixels")
			}
			want := Header{Format: tt.format, Width: tt.w, Height: tt.h, MaxColor: tt.maxColor}
			if h != want {
				t.Errorf("header = %+v, want %+v", h, want)
			}
			if got.MaxColor() != tt.maxColor {
				t.Errorf("MaxColor() = %d, want %d", got.MaxColor(), tt.maxColor)
			}
		})
	}
}

func TestEncodeLayout(t *testing.T) {
	src, _ := image.FromRaw([]byte{2, 2, 2, 2}, 2, 2, image.FormatGray8)
	var buf bytes.Buffer
	if err := Encode(&buf, src); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := "P5\n2 2\n255\n\x02\x02\x02\x02"
	if buf.String() != want {
		t.Errorf("encoded = %q, want %q", buf.String(), want)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"format P4", "P4\n2 2\n255\n\x00", image.ErrFormat},
		{"format empty", "", image.ErrFormat},
		{"max color 256", "P5\n2 2\n256\n\x00\x00\x00\x00", image.ErrColor},
		{"max color negative", "P5\n2 2\n-1\n\x00\x00\x00\x00", image.ErrColor},
		{"max color text", "P5\n2 2\nabc\n\x00\x00\x00\x00", image.ErrColor},
		{"negative width", "P5\n-2 2\n255\n\x00\x00\x00\x00", image.ErrSize},
		{"negative height", "P6\n2 -2\n255\n", image.ErrSize},
		{"zero width", "P5\n0 2\n255\n", image.ErrSize},
		{"size one field", "P5\n2\n255\n", image.ErrSize},
		{"size text", "P5\na b\n255\n", image.ErrSize},
		{"body one short", "P5\n2 2\n255\n\x00\x00\x00", image.ErrSize},
		{"body one long", "P5\n2 2\n255\n\x00\x00\x00\x00\x00", image.ErrSize},
		{"body far too long", "P5\n2 2\n255\n\x00\x00\x00\x00\x00\x00", image.ErrSize},
		{"body missing", "P5\n2 2\n255\n", image.ErrSize},
		{"P6 body short", "P6\n1 1\n255\n\x00\x00", image.ErrSize},
		{"size wraps to zero", "P5\n4294967296 4294967296\n255\n", image.ErrSize},
		{"size past limit", "P6\n65536 16384\n255\n", image.ErrSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeBytes([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("DecodeBytes error = %v, want %v", err, tt.want)
			}
			var pe *image.ParseError
			if !errors.As(err, &pe) {
				t.Errorf("error %T is not a *ParseError", err)
			}
		})
	}
}

func TestDecodeCRLFHeader(t *testing.T) {
	img, h, err := DecodeBytes([]byte("P6\r\n1 1\r\n255\r\n\x01\x02\x03"))
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	if h.Format != image.FormatRGB8 || !bytes.Equal(img.Data(), []byte{1, 2, 3}) {
		t.Errorf("got header %+v data %v", h, img.Data())
	}
}

func TestDecodeReader(t *testing.T) {
	img, err := Decode(bytes.NewReader([]byte("P5\n1 2\n255\n\x07\x08")))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if w, h := img.Bounds(); w != 1 || h != 2 {
		t.Errorf("Bounds() = (%d, %d), want (1, 2)", w, h)
	}
}

func TestWriteContentValidation(t *testing.T) {
	tests := []struct {
		name    string
		header  Header
		content []int
		want    error
	}{
		{"length short", Header{image.FormatRGB8, 2, 2, 255}, make([]int, 11), image.ErrSize},
		{"length long", Header{image.FormatGray8, 2, 2, 255}, make([]int, 5), image.ErrSize},
		{"bad width", Header{image.FormatGray8, 0, 2, 255}, nil, image.ErrSize},
		{"size past limit", Header{image.FormatRGB8, 1 << 16, 1 << 16, 255}, nil, image.ErrSize},
		{"bad max", Header{image.FormatGray8, 1, 1, 256}, []int{0}, image.ErrColor},
		{"bad format", Header{image.Format(7), 1, 1, 255}, []int{0}, image.ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := WriteContent(&buf, tt.header, tt.content)
			if !errors.Is(err, tt.want) {
				t.Errorf("WriteContent error = %v, want %v", err, tt.want)
			}
			if buf.Len() != 0 {
				t.Errorf("failed write emitted %d bytes", buf.Len())
			}
		})
	}
}

func TestWriteContentClamps(t *testing.T) {
	var buf bytes.Buffer
	h := Header{Format: image.FormatGray8, Width: 4, Height: 1, MaxColor: 255}

	if err := WriteContent(&buf, h, []int{-20, 0, 128, 999}); err != nil {
		t.Fatalf("WriteContent(int) failed: %v", err)
	}
	if got := buf.Bytes()[buf.Len()-4:]; !bytes.Equal(got, []byte{0, 0, 128, 255}) {
		t.Errorf("int body = %v", got)
	}

	buf.Reset()
	if err := WriteContent(&buf, h, []float64{-0.5, 12.4, 12.5, 300.1}); err != nil {
		t.Fatalf("WriteContent(float64) failed: %v", err)
	}
	if got := buf.Bytes()[buf.Len()-4:]; !bytes.Equal(got, []byte{0, 12, 13, 255}) {
		t.Errorf("float body = %v", got)
	}
}
