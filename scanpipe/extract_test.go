package scanpipe

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mrjoshuak/go-scanpipe/pixel"
)

func TestExtractFullFrameIsIdentity(t *testing.T) {
	data := rowPattern(4, 5, 3)
	src := arraySource(t, 5, 4, pixel.FormatI8, data)
	n, err := NewExtract(src, 0, 0, 5, 4)
	if err != nil {
		t.Fatalf("NewExtract() error = %v", err)
	}
	out := make([]byte, 5)
	for i := 0; i < 4; i++ {
		if err := n.NextRow(out); err != nil {
			t.Fatalf("NextRow(%d) error = %v", i, err)
		}
		if !bytes.Equal(out, data[i*5:(i+1)*5]) {
			t.Errorf("row %d = %v, want %v", i, out, data[i*5:(i+1)*5])
		}
	}
}

func TestExtractCrop(t *testing.T) {
	// 4x4 image with distinct bytes; take the 2x2 window at (1,1).
	data := make([]byte, 16)
	for i := range data {
		data[i] = byte(i)
	}
	src := arraySource(t, 4, 4, pixel.FormatI8, data)
	n, err := NewExtract(src, 1, 1, 2, 2)
	if err != nil {
		t.Fatalf("NewExtract() error = %v", err)
	}
	out := make([]byte, 2)
	want := [][]byte{{5, 6}, {9, 10}}
	for i := 0; i < 2; i++ {
		if err := n.NextRow(out); err != nil {
			t.Fatalf("NextRow(%d) error = %v", i, err)
		}
		if !bytes.Equal(out, want[i]) {
			t.Errorf("row %d = %v, want %v", i, out, want[i])
		}
	}
	if err := n.NextRow(out); !errors.Is(err, ErrOutOfData) {
		t.Fatalf("NextRow() past height error = %v, want ErrOutOfData", err)
	}
}

func TestExtractPadsRightAndBottom(t *testing.T) {
	src := arraySource(t, 2, 1, pixel.FormatI8, []byte{7, 8})
	n, err := NewExtract(src, 1, 0, 3, 2)
	if err != nil {
		t.Fatalf("NewExtract() error = %v", err)
	}
	out := []byte{0xee, 0xee, 0xee}
	if err := n.NextRow(out); err != nil {
		t.Fatalf("NextRow() error = %v", err)
	}
	if !bytes.Equal(out, []byte{8, 0, 0}) {
		t.Errorf("row 0 = %v, want [8 0 0]", out)
	}
	out = []byte{0xee, 0xee, 0xee}
	if err := n.NextRow(out); err != nil {
		t.Fatalf("NextRow() error = %v", err)
	}
	if !bytes.Equal(out, []byte{0, 0, 0}) {
		t.Errorf("padding row = %v, want zeros", out)
	}
}

func TestExtractSkipsLeadingRows(t *testing.T) {
	data := rowPattern(5, 2, 0)
	src := arraySource(t, 2, 5, pixel.FormatI8, data)
	n, err := NewExtract(src, 0, 3, 2, 2)
	if err != nil {
		t.Fatalf("NewExtract() error = %v", err)
	}
	out := make([]byte, 2)
	if err := n.NextRow(out); err != nil {
		t.Fatalf("NextRow() error = %v", err)
	}
	if !bytes.Equal(out, []byte{3, 3}) {
		t.Errorf("row 0 = %v, want [3 3]", out)
	}
	if err := n.NextRow(out); err != nil {
		t.Fatalf("NextRow() error = %v", err)
	}
	if !bytes.Equal(out, []byte{4, 4}) {
		t.Errorf("row 1 = %v, want [4 4]", out)
	}
}

func TestExtractColorWindow(t *testing.T) {
	src := arraySource(t, 3, 1, pixel.FormatRGB888, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9})
	n, err := NewExtract(src, 1, 0, 2, 1)
	if err != nil {
		t.Fatalf("NewExtract() error = %v", err)
	}
	out := make([]byte, 6)
	if err := n.NextRow(out); err != nil {
		t.Fatalf("NextRow() error = %v", err)
	}
	want := []byte{4, 5, 6, 7, 8, 9}
	if !bytes.Equal(out, want) {
		t.Errorf("row = %v, want %v", out, want)
	}
}

func TestExtractRejectsNegativeOffsets(t *testing.T) {
	src := arraySource(t, 2, 2, pixel.FormatI8, make([]byte, 4))
	if _, err := NewExtract(src, -1, 0, 2, 2); !errors.Is(err, ErrGeometry) {
		t.Errorf("negative x error = %v, want ErrGeometry", err)
	}
	if _, err := NewExtract(src, 0, -1, 2, 2); !errors.Is(err, ErrGeometry) {
		t.Errorf("negative y error = %v, want ErrGeometry", err)
	}
	if _, err := NewExtract(src, 0, 0, 0, 2); !errors.Is(err, ErrGeometry) {
		t.Errorf("zero width error = %v, want ErrGeometry", err)
	}
}
