package scanpipe

import (
	"fmt"

	"github.com/mrjoshuak/go-scanpipe/pixel"
)

// mergedFormat maps a mono input format and a destination channel order to
// the merged color format.
func mergedFormat(in pixel.Format, order pixel.ChannelOrder) (pixel.Format, error) {
	switch {
	case in == pixel.FormatI1 && order == pixel.OrderRGB:
		return pixel.FormatRGB111, nil
	case in == pixel.FormatI8 && order == pixel.OrderRGB:
		return pixel.FormatRGB888, nil
	case in == pixel.FormatI8 && order == pixel.OrderBGR:
		return pixel.FormatBGR888, nil
	case in == pixel.FormatI16 && order == pixel.OrderRGB:
		return pixel.FormatRGB161616, nil
	case in == pixel.FormatI16 && order == pixel.OrderBGR:
		return pixel.FormatBGR161616, nil
	default:
		return pixel.FormatUnknown, fmt.Errorf("%w: merging %v lines into %v order", ErrFormat, in, order)
	}
}

// splitFormat maps a color input format to the mono format of its split
// channel lines.
func splitFormat(in pixel.Format) (pixel.Format, error) {
	switch in {
	case pixel.FormatRGB111:
		return pixel.FormatI1, nil
	case pixel.FormatRGB888, pixel.FormatBGR888:
		return pixel.FormatI8, nil
	case pixel.FormatRGB161616, pixel.FormatBGR161616:
		return pixel.FormatI16, nil
	default:
		return pixel.FormatUnknown, fmt.Errorf("%w: splitting %v lines", ErrFormat, in)
	}
}

// MergeMonoLines combines three consecutive mono source rows, captured in
// red, green, blue order, into one color row. The configured channel order
// selects the in-memory layout of the output format. Output height is
// floor(source height / 3); trailing remainder rows are never pulled.
type MergeMonoLines struct {
	source Node
	format pixel.Format
	buffer []byte
}

// NewMergeMonoLines returns a merge node over a mono source.
func NewMergeMonoLines(source Node, order pixel.ChannelOrder) (*MergeMonoLines, error) {
	format, err := mergedFormat(source.Format(), order)
	if err != nil {
		return nil, err
	}
	return &MergeMonoLines{
		source: source,
		format: format,
		buffer: make([]byte, RowBytes(source)*3),
	}, nil
}

func (n *MergeMonoLines) Width() int           { return n.source.Width() }
func (n *MergeMonoLines) Height() int          { return n.source.Height() / 3 }
func (n *MergeMonoLines) Format() pixel.Format { return n.format }

// NextRow pulls three source rows and emits them interleaved as one color
// row.
func (n *MergeMonoLines) NextRow(out []byte) error {
	rb := RowBytes(n.source)
	for i := 0; i < 3; i++ {
		if err := n.source.NextRow(n.buffer[i*rb : (i+1)*rb]); err != nil {
			return err
		}
	}
	srcFormat := n.source.Format()
	red := n.buffer[:rb]
	green := n.buffer[rb : 2*rb]
	blue := n.buffer[2*rb:]
	for x := 0; x < n.Width(); x++ {
		pixel.Set(out, x, n.format, pixel.Pixel{
			R: pixel.Get(red, x, srcFormat).R,
			G: pixel.Get(green, x, srcFormat).G,
			B: pixel.Get(blue, x, srcFormat).B,
		})
	}
	return nil
}

// SplitMonoLines splits each color source row into three mono rows delivered
// on consecutive pulls, red first, then green, then blue, regardless of the
// source layout. Output height is source height ×3.
type SplitMonoLines struct {
	source Node
	format pixel.Format
	buffer []byte
	// nextChannel cycles 0..2 and tracks which channel of the cached source
	// row is due.
	nextChannel int
}

// NewSplitMonoLines returns a split node over a color source.
func NewSplitMonoLines(source Node) (*SplitMonoLines, error) {
	format, err := splitFormat(source.Format())
	if err != nil {
		return nil, err
	}
	return &SplitMonoLines{
		source: source,
		format: format,
		buffer: make([]byte, RowBytes(source)),
	}, nil
}

func (n *SplitMonoLines) Width() int           { return n.source.Width() }
func (n *SplitMonoLines) Height() int          { return n.source.Height() * 3 }
func (n *SplitMonoLines) Format() pixel.Format { return n.format }

// NextRow emits the next channel of the cached source row, pulling a new row
// once all three channels are delivered.
func (n *SplitMonoLines) NextRow(out []byte) error {
	if n.nextChannel == 0 {
		if err := n.source.NextRow(n.buffer); err != nil {
			return err
		}
	}
	srcFormat := n.source.Format()
	for x := 0; x < n.Width(); x++ {
		v := pixel.Get(n.buffer, x, srcFormat).Channel(n.nextChannel)
		pixel.Set(out, x, n.format, pixel.Pixel{R: v, G: v, B: v})
	}
	n.nextChannel = (n.nextChannel + 1) % 3
	return nil
}
