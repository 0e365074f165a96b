package scanpipe

import (
	"fmt"

	"github.com/mrjoshuak/go-scanpipe/pixel"
)

// geometry carries the fixed dimensions shared by all source nodes.
type geometry struct {
	width  int
	height int
	format pixel.Format
}

func (g geometry) Width() int           { return g.width }
func (g geometry) Height() int          { return g.height }
func (g geometry) Format() pixel.Format { return g.format }

func (g geometry) validate() error {
	if g.width <= 0 || g.height < 0 {
		return fmt.Errorf("%w: %dx%d source", ErrGeometry, g.width, g.height)
	}
	if g.format.BitsPerPixel() == 0 {
		return fmt.Errorf("%w: %v", ErrFormat, g.format)
	}
	return nil
}

// CallableSource terminates a pipeline with a producer that is invoked once
// per row for exactly one row of bytes. No internal buffering is performed.
type CallableSource struct {
	geometry
	producer Producer
	row      int
}

// NewCallableSource returns a source of height rows of the given width and
// format, each filled by a single producer call.
func NewCallableSource(width, height int, format pixel.Format, producer Producer) (*CallableSource, error) {
	g := geometry{width, height, format}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return &CallableSource{geometry: g, producer: producer}, nil
}

// NextRow fills out with the next row from the producer.
func (s *CallableSource) NextRow(out []byte) error {
	if s.row >= s.height {
		return ErrOutOfData
	}
	if err := fill(s.producer, out); err != nil {
		return err
	}
	s.row++
	return nil
}

// BufferedSource terminates a pipeline with a producer that delivers data in
// a fixed chunk size unrelated to the row size. Chunks accumulate in an
// internal byte buffer and rows are sliced across chunk boundaries.
type BufferedSource struct {
	geometry
	buffer *ImageBuffer
	row    int
}

// NewBufferedSource returns a buffered source reading chunkSize bytes per
// producer call. The final read is capped to the bytes remaining in the
// scan.
func NewBufferedSource(width, height int, format pixel.Format, chunkSize int, producer Producer) (*BufferedSource, error) {
	g := geometry{width, height, format}
	if err := g.validate(); err != nil {
		return nil, err
	}
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d", ErrGeometry, chunkSize)
	}
	total := format.RowBytes(width) * height
	return &BufferedSource{
		geometry: g,
		buffer:   NewImageBuffer(chunkSize, total, producer),
	}, nil
}

// Available returns the number of buffered bytes not yet consumed, for flow
// introspection.
func (s *BufferedSource) Available() int {
	return s.buffer.Available()
}

// NextRow fills out with the next row, pulling more chunks as needed.
func (s *BufferedSource) NextRow(out []byte) error {
	if s.row >= s.height {
		return ErrOutOfData
	}
	if err := s.buffer.Read(out); err != nil {
		return err
	}
	s.row++
	return nil
}

// TransportSource is a buffered source whose read sizes follow a transport
// model, so buffering overhead matches the physical transfer granularity.
type TransportSource struct {
	geometry
	buffer *ImageBuffer
	row    int
}

// NewTransportSource returns a source paced by the given transport model.
func NewTransportSource(width, height int, format pixel.Format, model *TransportModel, producer Producer) (*TransportSource, error) {
	g := geometry{width, height, format}
	if err := g.validate(); err != nil {
		return nil, err
	}
	total := format.RowBytes(width) * height
	return &TransportSource{
		geometry: g,
		buffer:   newImageBufferModel(model, total, producer),
	}, nil
}

// Available returns the number of buffered bytes not yet consumed.
func (s *TransportSource) Available() int {
	return s.buffer.Available()
}

// NextRow fills out with the next row, pulling transport-sized reads as
// needed.
func (s *TransportSource) NextRow(out []byte) error {
	if s.row >= s.height {
		return ErrOutOfData
	}
	if err := s.buffer.Read(out); err != nil {
		return err
	}
	s.row++
	return nil
}

// ArraySource terminates a pipeline with a pre-populated in-memory block.
// Rows are served by offset slicing.
type ArraySource struct {
	geometry
	data []byte
	row  int
}

// NewArraySource returns a source over data, which must hold at least
// height full rows.
func NewArraySource(width, height int, format pixel.Format, data []byte) (*ArraySource, error) {
	g := geometry{width, height, format}
	if err := g.validate(); err != nil {
		return nil, err
	}
	if need := format.RowBytes(width) * height; len(data) < need {
		return nil, fmt.Errorf("%w: %d bytes of data for %d rows of %d bytes",
			ErrGeometry, len(data), height, format.RowBytes(width))
	}
	return &ArraySource{geometry: g, data: data}, nil
}

// NextRow fills out with the next row of the array. Pulling past the
// configured height returns ErrOutOfData.
func (s *ArraySource) NextRow(out []byte) error {
	if s.row >= s.height {
		return ErrOutOfData
	}
	rb := s.format.RowBytes(s.width)
	copy(out, s.data[s.row*rb:(s.row+1)*rb])
	s.row++
	return nil
}
