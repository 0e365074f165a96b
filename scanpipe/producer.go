package scanpipe

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Producer supplies raw bytes to a source node. Fill writes exactly len(out)
// bytes into out and returns the number written; it may block, for example
// on a transport read. Returning fewer bytes without an error is an
// underrun; reporting more than len(out) is an overrun. Both are fatal to
// the pull that observed them.
type Producer interface {
	Fill(out []byte) (int, error)
}

// ProducerFunc adapts a function to the Producer interface.
type ProducerFunc func(out []byte) (int, error)

// Fill calls f(out).
func (f ProducerFunc) Fill(out []byte) (int, error) {
	return f(out)
}

// fill runs a producer and normalizes short and long counts into the
// pipeline's error set.
func fill(p Producer, out []byte) error {
	n, err := p.Fill(out)
	if err != nil {
		if n < len(out) {
			return fmt.Errorf("%w: got %d of %d bytes: %w", ErrProducerUnderrun, n, len(out), err)
		}
		return err
	}
	if n < len(out) {
		return fmt.Errorf("%w: got %d of %d bytes", ErrProducerUnderrun, n, len(out))
	}
	if n > len(out) {
		return fmt.Errorf("%w: got %d of %d bytes", ErrProducerOverrun, n, len(out))
	}
	return nil
}

// readerProducer adapts an io.Reader to the Producer contract.
type readerProducer struct {
	r io.Reader
}

// ReaderProducer returns a producer that fills requests from r, blocking
// until each request is complete. A stream that ends mid-request reports the
// bytes it managed to deliver, which the pipeline surfaces as an underrun.
func ReaderProducer(r io.Reader) Producer {
	return &readerProducer{r: r}
}

func (p *readerProducer) Fill(out []byte) (int, error) {
	n, err := io.ReadFull(p.r, out)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		// Report the short count; the caller maps it to an underrun.
		return n, nil
	}
	return n, err
}

// ZstdProducer returns a producer that transparently decompresses a
// zstd-framed transport stream. Scanners that compress raw sensor data on
// the wire are decompressed before entering the pipeline.
func ZstdProducer(r io.Reader) (Producer, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("scanpipe: creating zstd reader: %w", err)
	}
	return ReaderProducer(zr), nil
}
