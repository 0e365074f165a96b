package scanpipe

import (
	"fmt"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/mrjoshuak/go-scanpipe/log"
	"github.com/mrjoshuak/go-scanpipe/pixel"
)

// Stack owns an ordered chain of pipeline nodes built bottom-up for one
// scan: a source node first, then transform nodes each wrapping the current
// top. Nodes live exactly as long as the stack; Clear destroys them all and
// the stack can be rebuilt for the next scan. Rows are pulled from the top
// node, and a stack is never resumed after a pull fails.
type Stack struct {
	nodes []Node
	log   *logrus.Entry
}

// NewStack returns an empty pipeline stack. Debug logs of stack construction
// carry a unique stack id for correlation.
func NewStack() *Stack {
	return &Stack{
		log: log.New().WithField("stack", xid.New().String()),
	}
}

// Clear removes all nodes and their buffers.
func (s *Stack) Clear() {
	s.nodes = nil
}

// PushFirst installs the source node. It fails with ErrStackNotEmpty if the
// stack already has nodes.
func (s *Stack) PushFirst(n Node) error {
	if len(s.nodes) != 0 {
		return ErrStackNotEmpty
	}
	s.push(n)
	return nil
}

// Push builds a transform node over the current top node and installs it as
// the new top. It fails with ErrEmptyStack if there is no source node yet;
// construction errors from build are returned as is.
func (s *Stack) Push(build func(source Node) (Node, error)) error {
	if len(s.nodes) == 0 {
		return ErrEmptyStack
	}
	n, err := build(s.top())
	if err != nil {
		return err
	}
	s.push(n)
	return nil
}

func (s *Stack) push(n Node) {
	s.nodes = append(s.nodes, n)
	s.log.WithFields(logrus.Fields{
		"node":   fmt.Sprintf("%T", n),
		"width":  n.Width(),
		"height": n.Height(),
		"format": n.Format().String(),
	}).Debug("push node")
}

func (s *Stack) top() Node {
	return s.nodes[len(s.nodes)-1]
}

// PushCallableSource installs a plain callback source.
func (s *Stack) PushCallableSource(width, height int, format pixel.Format, producer Producer) error {
	if len(s.nodes) != 0 {
		return ErrStackNotEmpty
	}
	n, err := NewCallableSource(width, height, format, producer)
	if err != nil {
		return err
	}
	s.push(n)
	return nil
}

// PushBufferedSource installs a chunk-buffered callback source.
func (s *Stack) PushBufferedSource(width, height int, format pixel.Format, chunkSize int, producer Producer) error {
	if len(s.nodes) != 0 {
		return ErrStackNotEmpty
	}
	n, err := NewBufferedSource(width, height, format, chunkSize, producer)
	if err != nil {
		return err
	}
	s.push(n)
	return nil
}

// PushTransportSource installs a source paced by a transport model.
func (s *Stack) PushTransportSource(width, height int, format pixel.Format, model *TransportModel, producer Producer) error {
	if len(s.nodes) != 0 {
		return ErrStackNotEmpty
	}
	n, err := NewTransportSource(width, height, format, model, producer)
	if err != nil {
		return err
	}
	s.push(n)
	return nil
}

// PushArraySource installs an in-memory source.
func (s *Stack) PushArraySource(width, height int, format pixel.Format, data []byte) error {
	if len(s.nodes) != 0 {
		return ErrStackNotEmpty
	}
	n, err := NewArraySource(width, height, format, data)
	if err != nil {
		return err
	}
	s.push(n)
	return nil
}

// PushFormatConvert wraps the top node in a format conversion.
func (s *Stack) PushFormatConvert(format pixel.Format) error {
	return s.Push(func(source Node) (Node, error) {
		return NewFormatConvert(source, format)
	})
}

// PushDesegment wraps the top node in a desegmentation.
func (s *Stack) PushDesegment(cfg DesegmentConfig) error {
	return s.Push(func(source Node) (Node, error) {
		return NewDesegment(source, cfg)
	})
}

// PushDeinterleaveLines wraps the top node in a line deinterleave.
func (s *Stack) PushDeinterleaveLines(interleavedLines, pixelsPerChunk int) error {
	return s.Push(func(source Node) (Node, error) {
		return NewDeinterleaveLines(source, interleavedLines, pixelsPerChunk)
	})
}

// PushMergeMonoLines wraps the top node in a mono line merge.
func (s *Stack) PushMergeMonoLines(order pixel.ChannelOrder) error {
	return s.Push(func(source Node) (Node, error) {
		return NewMergeMonoLines(source, order)
	})
}

// PushSplitMonoLines wraps the top node in a mono line split.
func (s *Stack) PushSplitMonoLines() error {
	return s.Push(func(source Node) (Node, error) {
		return NewSplitMonoLines(source)
	})
}

// PushComponentShift wraps the top node in a per-channel line shift.
func (s *Stack) PushComponentShift(shiftR, shiftG, shiftB int) error {
	return s.Push(func(source Node) (Node, error) {
		return NewComponentShift(source, shiftR, shiftG, shiftB)
	})
}

// PushPixelShift wraps the top node in a staggered pixel shift.
func (s *Stack) PushPixelShift(shifts []int) error {
	return s.Push(func(source Node) (Node, error) {
		return NewPixelShift(source, shifts)
	})
}

// PushExtract wraps the top node in a crop/pad to a sub-rectangle.
func (s *Stack) PushExtract(offsetX, offsetY, width, height int) error {
	return s.Push(func(source Node) (Node, error) {
		return NewExtract(source, offsetX, offsetY, width, height)
	})
}

// InputWidth returns the width of the first node, or 0 for an empty stack.
func (s *Stack) InputWidth() int {
	if len(s.nodes) == 0 {
		return 0
	}
	return s.nodes[0].Width()
}

// InputHeight returns the height of the first node, or 0 for an empty stack.
func (s *Stack) InputHeight() int {
	if len(s.nodes) == 0 {
		return 0
	}
	return s.nodes[0].Height()
}

// InputFormat returns the format of the first node.
func (s *Stack) InputFormat() pixel.Format {
	if len(s.nodes) == 0 {
		return pixel.FormatUnknown
	}
	return s.nodes[0].Format()
}

// InputRowBytes returns the row byte size of the first node.
func (s *Stack) InputRowBytes() int {
	if len(s.nodes) == 0 {
		return 0
	}
	return RowBytes(s.nodes[0])
}

// OutputWidth returns the width of the top node, or 0 for an empty stack.
func (s *Stack) OutputWidth() int {
	if len(s.nodes) == 0 {
		return 0
	}
	return s.top().Width()
}

// OutputHeight returns the height of the top node, or 0 for an empty stack.
func (s *Stack) OutputHeight() int {
	if len(s.nodes) == 0 {
		return 0
	}
	return s.top().Height()
}

// OutputFormat returns the format of the top node.
func (s *Stack) OutputFormat() pixel.Format {
	if len(s.nodes) == 0 {
		return pixel.FormatUnknown
	}
	return s.top().Format()
}

// OutputRowBytes returns the row byte size of the top node.
func (s *Stack) OutputRowBytes() int {
	if len(s.nodes) == 0 {
		return 0
	}
	return RowBytes(s.top())
}

// NextRow pulls the next output row from the top node into out, which must
// be sized to OutputRowBytes.
func (s *Stack) NextRow(out []byte) error {
	if len(s.nodes) == 0 {
		return ErrEmptyStack
	}
	return s.top().NextRow(out)
}

// ReadAll drains the top node's full declared height into one contiguous
// buffer. It is a convenience materialization; the per-row pull is the hot
// path.
func (s *Stack) ReadAll() ([]byte, error) {
	if len(s.nodes) == 0 {
		return nil, ErrEmptyStack
	}
	rb := s.OutputRowBytes()
	height := s.OutputHeight()
	data := make([]byte, rb*height)
	for row := 0; row < height; row++ {
		if err := s.NextRow(data[row*rb : (row+1)*rb]); err != nil {
			return nil, fmt.Errorf("scanpipe: materializing row %d: %w", row, err)
		}
	}
	return data, nil
}
