package scanpipe

import (
	"bytes"
	"errors"
	"testing"
)

// countingProducer serves an incrementing byte pattern and records the size
// of every request.
type countingProducer struct {
	next   byte
	served int
	calls  []int
}

func (p *countingProducer) Fill(out []byte) (int, error) {
	p.calls = append(p.calls, len(out))
	for i := range out {
		out[i] = p.next
		p.next++
	}
	return len(out), nil
}

func TestImageBufferSlicesAcrossChunks(t *testing.T) {
	p := &countingProducer{}
	b := NewImageBuffer(7, 30, p)

	out := make([]byte, 10)
	for i := 0; i < 3; i++ {
		if err := b.Read(out); err != nil {
			t.Fatalf("Read(%d) error = %v", i, err)
		}
		want := make([]byte, 10)
		for j := range want {
			want[j] = byte(i*10 + j)
		}
		if !bytes.Equal(out, want) {
			t.Errorf("read %d = %v, want %v", i, out, want)
		}
	}

	// 30 total bytes in chunks of 7: the last request is capped at 2.
	want := []int{7, 7, 7, 7, 2}
	if len(p.calls) != len(want) {
		t.Fatalf("producer calls = %v, want %v", p.calls, want)
	}
	for i := range want {
		if p.calls[i] != want[i] {
			t.Errorf("call %d size = %d, want %d", i, p.calls[i], want[i])
		}
	}
}

func TestImageBufferAvailable(t *testing.T) {
	b := NewImageBuffer(8, 32, &countingProducer{})
	if got := b.Available(); got != 0 {
		t.Errorf("Available() before read = %d, want 0", got)
	}
	out := make([]byte, 5)
	if err := b.Read(out); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	// One 8-byte chunk pulled, 5 consumed.
	if got := b.Available(); got != 3 {
		t.Errorf("Available() = %d, want 3", got)
	}
}

func TestImageBufferOutOfData(t *testing.T) {
	b := NewImageBuffer(4, 8, &countingProducer{})
	out := make([]byte, 8)
	if err := b.Read(out); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if err := b.Read(out); !errors.Is(err, ErrOutOfData) {
		t.Fatalf("Read() past total error = %v, want ErrOutOfData", err)
	}
}

func TestImageBufferPropagatesUnderrun(t *testing.T) {
	short := ProducerFunc(func(out []byte) (int, error) {
		return len(out) / 2, nil
	})
	b := NewImageBuffer(4, 8, short)
	err := b.Read(make([]byte, 4))
	if !errors.Is(err, ErrProducerUnderrun) {
		t.Fatalf("Read() error = %v, want ErrProducerUnderrun", err)
	}
}

func TestRowRing(t *testing.T) {
	r := newRowRing(3, 2)
	for i := 0; i < 3; i++ {
		slot := r.pushBack()
		slot[0], slot[1] = byte(i), byte(i)
	}
	if !r.full() {
		t.Fatal("ring should be full after three pushes")
	}
	for i := 0; i < 3; i++ {
		if got := r.row(i)[0]; got != byte(i) {
			t.Errorf("row(%d) = %d, want %d", i, got, i)
		}
	}

	// Slide the window: drop row 0, add row 3.
	r.popFront()
	slot := r.pushBack()
	slot[0] = 3
	if got := r.row(0)[0]; got != 1 {
		t.Errorf("row(0) after slide = %d, want 1", got)
	}
	if got := r.row(2)[0]; got != 3 {
		t.Errorf("row(2) after slide = %d, want 3", got)
	}
}
