package scanpipe

import (
	"fmt"

	"github.com/mrjoshuak/go-scanpipe/internal/segment"
	"github.com/mrjoshuak/go-scanpipe/pixel"
)

// DesegmentConfig describes the physical readout layout of a segmented
// sensor. All values are fixed at node construction.
type DesegmentConfig struct {
	// OutputWidth is the logical row width in pixels. It may differ from the
	// source width: desegmenting often requires reading almost the full
	// physical line even when only part of it is wanted.
	OutputWidth int

	// SegmentOrder gives, for each physical readout slot, the logical
	// segment it carries. Leave nil and set SegmentCount for linear sensors
	// needing no permutation.
	SegmentOrder []int

	// SegmentCount builds an implicit identity order when SegmentOrder is
	// nil.
	SegmentCount int

	// SegmentPixels is the number of output pixels owned by one segment.
	SegmentPixels int

	// InterleavedLines is the number of logical rows packed into one group
	// of physical reads. The source height must be an exact multiple.
	InterleavedLines int

	// PixelsPerChunk is the grouping granularity of the segment interleave.
	PixelsPerChunk int
}

// Desegment reorders data produced by a sensor whose pixels are split across
// multiple parallel read segments and possibly interleaved across several
// physical lines. Each output row pulls InterleavedLines source rows into an
// internal buffer and reassembles them into logical pixel order.
type Desegment struct {
	source Node
	cfg    DesegmentConfig
	rows   [][]byte
}

// NewDesegment returns a desegmentation node over source.
func NewDesegment(source Node, cfg DesegmentConfig) (*Desegment, error) {
	if cfg.SegmentOrder == nil {
		cfg.SegmentOrder = segment.IdentityOrder(cfg.SegmentCount)
	}
	if len(cfg.SegmentOrder) == 0 {
		return nil, fmt.Errorf("%w: no segments", ErrGeometry)
	}
	if cfg.OutputWidth <= 0 || cfg.SegmentPixels <= 0 || cfg.PixelsPerChunk <= 0 {
		return nil, fmt.Errorf("%w: output width %d, segment pixels %d, pixels per chunk %d",
			ErrGeometry, cfg.OutputWidth, cfg.SegmentPixels, cfg.PixelsPerChunk)
	}
	if cfg.InterleavedLines <= 0 || source.Height()%cfg.InterleavedLines != 0 {
		return nil, fmt.Errorf("%w: source height %d not a multiple of %d interleaved lines",
			ErrGeometry, source.Height(), cfg.InterleavedLines)
	}

	segments := len(cfg.SegmentOrder)
	groups := cfg.OutputWidth / (segments * cfg.PixelsPerChunk)
	if inPixels := groups * segments * cfg.PixelsPerChunk; inPixels > source.Width()*cfg.InterleavedLines {
		return nil, fmt.Errorf("%w: desegmenting %d pixels from %d available",
			ErrGeometry, inPixels, source.Width()*cfg.InterleavedLines)
	}
	if groups > 0 {
		outMax := (groups-1)*cfg.PixelsPerChunk + segment.MaxIndex(cfg.SegmentOrder)*cfg.SegmentPixels + cfg.PixelsPerChunk
		if outMax > cfg.OutputWidth {
			return nil, fmt.Errorf("%w: segment order writes to pixel %d of a %d pixel row",
				ErrGeometry, outMax-1, cfg.OutputWidth)
		}
	}

	rows := make([][]byte, cfg.InterleavedLines)
	for i := range rows {
		rows[i] = make([]byte, RowBytes(source))
	}
	return &Desegment{
		source: source,
		cfg:    cfg,
		rows:   rows,
	}, nil
}

func (n *Desegment) Width() int           { return n.cfg.OutputWidth }
func (n *Desegment) Height() int          { return n.source.Height() / n.cfg.InterleavedLines }
func (n *Desegment) Format() pixel.Format { return n.source.Format() }

// NextRow pulls one group of interleaved source rows and emits the
// reconstructed logical row. The source rows are indexed per pixel, so
// sub-byte rows with padding bits at the end stay aligned across the group.
func (n *Desegment) NextRow(out []byte) error {
	for _, row := range n.rows {
		if err := n.source.NextRow(row); err != nil {
			return err
		}
	}
	segment.Reorder(out, n.rows, n.source.Width(), n.Format(), n.cfg.OutputWidth,
		n.cfg.SegmentOrder, n.cfg.SegmentPixels, n.cfg.PixelsPerChunk)
	return nil
}

// NewDeinterleaveLines returns a node that splits lines interleaved,
// pixelsPerChunk pixels at a time, across a group of physical reads into a
// single wide logical row per group. It is the desegmentation node with a
// trivial segment mapping: each interleaved line is one segment of the
// source width.
func NewDeinterleaveLines(source Node, interleavedLines, pixelsPerChunk int) (*Desegment, error) {
	return NewDesegment(source, DesegmentConfig{
		OutputWidth:      source.Width() * interleavedLines,
		SegmentCount:     interleavedLines,
		SegmentPixels:    source.Width(),
		InterleavedLines: interleavedLines,
		PixelsPerChunk:   pixelsPerChunk,
	})
}
