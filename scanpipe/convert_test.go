package scanpipe

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mrjoshuak/go-scanpipe/pixel"
)

func arraySource(t *testing.T, width, height int, f pixel.Format, data []byte) *ArraySource {
	t.Helper()
	src, err := NewArraySource(width, height, f, data)
	if err != nil {
		t.Fatalf("NewArraySource() error = %v", err)
	}
	return src
}

func TestFormatConvertIdentity(t *testing.T) {
	data := rowPattern(3, 4, 1)
	src := arraySource(t, 4, 3, pixel.FormatI8, data)
	n, err := NewFormatConvert(src, pixel.FormatI8)
	if err != nil {
		t.Fatalf("NewFormatConvert() error = %v", err)
	}
	if n.Width() != 4 || n.Height() != 3 || n.Format() != pixel.FormatI8 {
		t.Fatalf("geometry = %dx%d %v, want 4x3 i8", n.Width(), n.Height(), n.Format())
	}
	out := make([]byte, 4)
	for i := 0; i < 3; i++ {
		if err := n.NextRow(out); err != nil {
			t.Fatalf("NextRow(%d) error = %v", i, err)
		}
		if !bytes.Equal(out, data[i*4:(i+1)*4]) {
			t.Errorf("identity conversion row %d = %v, want %v", i, out, data[i*4:(i+1)*4])
		}
	}
}

func TestFormatConvertDepth(t *testing.T) {
	src := arraySource(t, 2, 1, pixel.FormatI8, []byte{0x20, 0xff})
	n, err := NewFormatConvert(src, pixel.FormatI16)
	if err != nil {
		t.Fatalf("NewFormatConvert() error = %v", err)
	}
	out := make([]byte, RowBytes(n))
	if err := n.NextRow(out); err != nil {
		t.Fatalf("NextRow() error = %v", err)
	}
	want := []byte{0x20, 0x20, 0xff, 0xff}
	if !bytes.Equal(out, want) {
		t.Errorf("i8->i16 row = %v, want %v", out, want)
	}
}

func TestFormatConvertOrder(t *testing.T) {
	src := arraySource(t, 2, 1, pixel.FormatRGB888, []byte{1, 2, 3, 4, 5, 6})
	n, err := NewFormatConvert(src, pixel.FormatBGR888)
	if err != nil {
		t.Fatalf("NewFormatConvert() error = %v", err)
	}
	out := make([]byte, 6)
	if err := n.NextRow(out); err != nil {
		t.Fatalf("NextRow() error = %v", err)
	}
	want := []byte{3, 2, 1, 6, 5, 4}
	if !bytes.Equal(out, want) {
		t.Errorf("rgb->bgr row = %v, want %v", out, want)
	}
}

func TestFormatConvertRejectsUnknown(t *testing.T) {
	src := arraySource(t, 2, 1, pixel.FormatI8, []byte{0, 0})
	if _, err := NewFormatConvert(src, pixel.FormatUnknown); !errors.Is(err, ErrFormat) {
		t.Fatalf("NewFormatConvert() error = %v, want ErrFormat", err)
	}
}
