package scanpipe

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mrjoshuak/go-scanpipe/pixel"
)

// rgbRows returns height RGB888 rows of the given width where every channel
// of every pixel in row i equals i.
func rgbRows(width, height int) []byte {
	data := make([]byte, width*height*3)
	for i := 0; i < height; i++ {
		row := data[i*width*3 : (i+1)*width*3]
		for j := range row {
			row[j] = byte(i)
		}
	}
	return data
}

func TestComponentShift(t *testing.T) {
	// Red captured two rows ahead, green one: output row i must read
	// {red: i+2, green: i+1, blue: i} and the two trailing source rows are
	// consumed by the shift.
	const width, height = 4, 10
	src := arraySource(t, width, height, pixel.FormatRGB888, rgbRows(width, height))
	n, err := NewComponentShift(src, 2, 1, 0)
	if err != nil {
		t.Fatalf("NewComponentShift() error = %v", err)
	}
	if got := n.Height(); got != 8 {
		t.Fatalf("Height() = %d, want 8", got)
	}
	out := make([]byte, RowBytes(n))
	for i := 0; i < 8; i++ {
		if err := n.NextRow(out); err != nil {
			t.Fatalf("NextRow(%d) error = %v", i, err)
		}
		for x := 0; x < width; x++ {
			got := pixel.Get(out, x, pixel.FormatRGB888)
			want := pixel.Pixel{
				R: uint16(i+2) * 0x101,
				G: uint16(i+1) * 0x101,
				B: uint16(i) * 0x101,
			}
			if got != want {
				t.Fatalf("row %d pixel %d = %v, want %v", i, x, got, want)
			}
		}
	}
}

func TestComponentShiftZeroIsIdentity(t *testing.T) {
	const width, height = 3, 5
	data := rgbRows(width, height)
	src := arraySource(t, width, height, pixel.FormatRGB888, data)
	n, err := NewComponentShift(src, 0, 0, 0)
	if err != nil {
		t.Fatalf("NewComponentShift() error = %v", err)
	}
	if got := n.Height(); got != height {
		t.Fatalf("Height() = %d, want %d", got, height)
	}
	out := make([]byte, RowBytes(n))
	for i := 0; i < height; i++ {
		if err := n.NextRow(out); err != nil {
			t.Fatalf("NextRow(%d) error = %v", i, err)
		}
		if !bytes.Equal(out, data[i*width*3:(i+1)*width*3]) {
			t.Errorf("row %d modified by zero shift", i)
		}
	}
}

func TestComponentShiftValidation(t *testing.T) {
	src := arraySource(t, 4, 10, pixel.FormatRGB888, rgbRows(4, 10))
	if _, err := NewComponentShift(src, -1, 0, 0); !errors.Is(err, ErrGeometry) {
		t.Errorf("negative shift error = %v, want ErrGeometry", err)
	}
	if _, err := NewComponentShift(src, 10, 0, 0); !errors.Is(err, ErrGeometry) {
		t.Errorf("oversized shift error = %v, want ErrGeometry", err)
	}
	mono := arraySource(t, 4, 10, pixel.FormatI8, make([]byte, 40))
	if _, err := NewComponentShift(mono, 1, 0, 0); !errors.Is(err, ErrFormat) {
		t.Errorf("mono input error = %v, want ErrFormat", err)
	}
}

func TestPixelShift(t *testing.T) {
	// Even pixels offset by one row: output row i has odd pixels from row i
	// and even pixels from row i+1.
	const width, height = 4, 4
	data := make([]byte, width*height)
	for i := 0; i < height; i++ {
		for x := 0; x < width; x++ {
			data[i*width+x] = byte(i*10 + x)
		}
	}
	src := arraySource(t, width, height, pixel.FormatI8, data)
	n, err := NewPixelShift(src, []int{1, 0})
	if err != nil {
		t.Fatalf("NewPixelShift() error = %v", err)
	}
	if got := n.Height(); got != 3 {
		t.Fatalf("Height() = %d, want 3", got)
	}
	out := make([]byte, width)
	for i := 0; i < 3; i++ {
		if err := n.NextRow(out); err != nil {
			t.Fatalf("NextRow(%d) error = %v", i, err)
		}
		want := []byte{
			byte((i+1)*10 + 0),
			byte(i*10 + 1),
			byte((i+1)*10 + 2),
			byte(i*10 + 3),
		}
		if !bytes.Equal(out, want) {
			t.Errorf("row %d = %v, want %v", i, out, want)
		}
	}
}

func TestPixelShiftSingleGroupIsIdentity(t *testing.T) {
	data := rowPattern(4, 3, 9)
	src := arraySource(t, 3, 4, pixel.FormatI8, data)
	n, err := NewPixelShift(src, []int{0})
	if err != nil {
		t.Fatalf("NewPixelShift() error = %v", err)
	}
	out := make([]byte, 3)
	for i := 0; i < 4; i++ {
		if err := n.NextRow(out); err != nil {
			t.Fatalf("NextRow(%d) error = %v", i, err)
		}
		if !bytes.Equal(out, data[i*3:(i+1)*3]) {
			t.Errorf("row %d modified by zero shift", i)
		}
	}
}

func TestPixelShiftValidation(t *testing.T) {
	src := arraySource(t, 4, 4, pixel.FormatI8, make([]byte, 16))
	if _, err := NewPixelShift(src, nil); !errors.Is(err, ErrGeometry) {
		t.Errorf("empty shifts error = %v, want ErrGeometry", err)
	}
	if _, err := NewPixelShift(src, []int{0, 1, 2}); !errors.Is(err, ErrGeometry) {
		t.Errorf("too many shifts error = %v, want ErrGeometry", err)
	}
	if _, err := NewPixelShift(src, []int{-1, 0}); !errors.Is(err, ErrGeometry) {
		t.Errorf("negative shift error = %v, want ErrGeometry", err)
	}
}
