package scanpipe

import (
	"fmt"

	"github.com/mrjoshuak/go-scanpipe/pixel"
)

// Extract crops and pads the source to a sub-rectangle given in source
// coordinates. Rows above the rectangle are pulled and discarded to keep the
// pipeline single-pass; rows below the source are zero-filled padding, as
// are pixels to the right of the source. Only non-negative offsets are
// accepted: the node cannot pad to the left or above the source.
type Extract struct {
	source Node
	offX   int
	offY   int
	width  int
	height int

	outRow int
	srcRow int
	cached []byte
}

// NewExtract returns an extract node producing a width×height window of the
// source starting at (offsetX, offsetY). Negative offsets fail construction.
func NewExtract(source Node, offsetX, offsetY, width, height int) (*Extract, error) {
	if offsetX < 0 || offsetY < 0 {
		return nil, fmt.Errorf("%w: negative extract offset (%d, %d)", ErrGeometry, offsetX, offsetY)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d extract window", ErrGeometry, width, height)
	}
	return &Extract{
		source: source,
		offX:   offsetX,
		offY:   offsetY,
		width:  width,
		height: height,
		cached: make([]byte, RowBytes(source)),
	}, nil
}

func (n *Extract) Width() int           { return n.width }
func (n *Extract) Height() int          { return n.height }
func (n *Extract) Format() pixel.Format { return n.source.Format() }

// NextRow emits the next row of the extraction window.
func (n *Extract) NextRow(out []byte) error {
	if n.outRow >= n.height {
		return ErrOutOfData
	}
	srcHeight := n.source.Height()

	// Skip the rows above the window.
	for n.srcRow < n.offY && n.srcRow < srcHeight {
		if err := n.source.NextRow(n.cached); err != nil {
			return err
		}
		n.srcRow++
	}

	f := n.Format()
	if n.offY+n.outRow < srcHeight {
		if err := n.source.NextRow(n.cached); err != nil {
			return err
		}
		n.srcRow++

		avail := n.source.Width() - n.offX
		if avail > n.width {
			avail = n.width
		}
		if avail > 0 {
			pixel.CopyPixels(out, 0, n.cached, n.offX, avail, f)
		} else {
			avail = 0
		}
		if avail < n.width {
			pixel.ClearPixels(out, avail, n.width-avail, f)
		}
	} else {
		// Below the source: zero-filled padding.
		clear(out)
	}
	n.outRow++
	return nil
}
