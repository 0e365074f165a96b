// Package scanpipe reorders raw scanner sensor data into a correctly ordered
// digital image.
//
// A scan is processed by a stack of pipeline nodes built once per scan: a
// source node pulls bytes from the transport, and each transform node wraps
// the node below it, undoing one aspect of the sensor's physical layout
// (segmented readout, interleaved lines, separate mono channel lines,
// per-channel and staggered-pixel offsets) before a final crop. Execution is
// pull-driven and single-threaded: the consumer asks the top node for its
// next row, and each node pulls as many upstream rows as it needs, buffering
// any surplus. The stream is strictly ordered and single-pass; there is no
// seeking and no re-reading of delivered rows.
package scanpipe

import "github.com/mrjoshuak/go-scanpipe/pixel"

// Node is a single stage of the image pipeline. Width, height and format are
// fixed for the node's lifetime. NextRow produces the next row in top-down
// order into out, which must be sized to exactly RowBytes(n) bytes.
//
// Nodes are not safe for concurrent use; the whole stack is driven by a
// single caller.
type Node interface {
	Width() int
	Height() int
	Format() pixel.Format
	NextRow(out []byte) error
}

// RowBytes returns the byte size of one output row of the node.
func RowBytes(n Node) int {
	return n.Format().RowBytes(n.Width())
}
