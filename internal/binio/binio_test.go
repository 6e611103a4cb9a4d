package binio

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestReaderSequence(t *testing.T) {
	r := NewReader([]byte{0x00, 0x00, 0x01, 0x02, 0xAB, 'h', 'i', '\r', '\n', 'x'})

	v, err := r.ReadU32()
	if err != nil {
		t.Fatalf("ReadU32() error = %v", err)
	}
	if v != 0x102 {
		t.Errorf("ReadU32() = %#x, want 0x102", v)
	}
	if r.Pos() != 4 {
		t.Errorf("Pos() = %d, want 4", r.Pos())
	}

	b, err := r.ReadByte()
	if err != nil || b != 0xAB {
		t.Errorf("ReadByte() = (%#x, %v), want (0xab, nil)", b, err)
	}

	line, err := r.ReadLine()
	if err != nil || line != "hi" {
		t.Errorf("ReadLine() = (%q, %v), want (\"hi\", nil)", line, err)
	}

	line, err = r.ReadLine()
	if err != nil || line != "x" {
		t.Errorf("ReadLine() = (%q, %v), want (\"x\", nil)", line, err)
	}

	if _, err := r.ReadByte(); !errors.Is(err, io.EOF) {
		t.Errorf("ReadByte() at end error = %v, want io.EOF", err)
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", r.Remaining())
	}
}

func TestReaderShortRead(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})

	if _, err := r.ReadU32(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadU32() error = %v, want io.ErrUnexpectedEOF", err)
	}
	if r.Pos() != 0 {
		t.Errorf("Pos() after failed read = %d, want 0", r.Pos())
	}
	if err := r.Skip(4); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Skip(4) error = %v, want io.ErrUnexpectedEOF", err)
	}
	if err := r.Skip(3); err != nil {
		t.Errorf("Skip(3) error = %v", err)
	}
	if _, err := r.ReadN(1); !errors.Is(err, io.EOF) {
		t.Errorf("ReadN(1) at end error = %v, want io.EOF", err)
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	_ = w.WriteLine("P5")
	_ = w.WriteU32(0xDEADBEEF)
	_ = w.WriteByte(7)

	if err := w.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	want := []byte{'P', '5', '\n', 0xDE, 0xAD, 0xBE, 0xEF, 7}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("written = %v, want %v", buf.Bytes(), want)
	}
	if w.Pos() != len(want) {
		t.Errorf("Pos() = %d, want %d", w.Pos(), len(want))
	}
}

type failWriter struct{ n int }

func (f *failWriter) Write(p []byte) (int, error) {
	if f.n == 0 {
		return 0, io.ErrClosedPipe
	}
	f.n--
	return len(p), nil
}

func TestWriterStickyError(t *testing.T) {
	w := NewWriter(&failWriter{n: 1})

	if err := w.WriteByte(1); err != nil {
		t.Fatalf("first WriteByte() error = %v", err)
	}
	if err := w.WriteByte(2); !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("second WriteByte() error = %v, want io.ErrClosedPipe", err)
	}
	if err := w.WriteU32(3); !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("WriteU32() after failure error = %v, want sticky io.ErrClosedPipe", err)
	}
	if w.Pos() != 1 {
		t.Errorf("Pos() = %d, want 1", w.Pos())
	}
}
