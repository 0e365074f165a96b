package scanpipe

import (
	"fmt"

	"github.com/mrjoshuak/go-scanpipe/pixel"
)

// FormatConvert converts rows to a destination pixel format without changing
// geometry. No cross-row state is kept.
type FormatConvert struct {
	source Node
	format pixel.Format
	buffer []byte
}

// NewFormatConvert returns a node converting the source's rows to format.
func NewFormatConvert(source Node, format pixel.Format) (*FormatConvert, error) {
	if format.BitsPerPixel() == 0 {
		return nil, fmt.Errorf("%w: %v", ErrFormat, format)
	}
	n := &FormatConvert{source: source, format: format}
	if format != source.Format() {
		n.buffer = make([]byte, RowBytes(source))
	}
	return n, nil
}

func (n *FormatConvert) Width() int           { return n.source.Width() }
func (n *FormatConvert) Height() int          { return n.source.Height() }
func (n *FormatConvert) Format() pixel.Format { return n.format }

// NextRow pulls one source row and emits it converted. Matching source and
// destination formats pass bytes through unchanged.
func (n *FormatConvert) NextRow(out []byte) error {
	if n.format == n.source.Format() {
		return n.source.NextRow(out)
	}
	if err := n.source.NextRow(n.buffer); err != nil {
		return err
	}
	pixel.ConvertRow(out, n.format, n.buffer, n.source.Format(), n.Width())
	return nil
}
