package scanpipe

import (
	"fmt"

	"github.com/mrjoshuak/go-scanpipe/pixel"
)

// ComponentShift compensates for the physical vertical offset between color
// channels on the sensor head: each channel of output row r is read from
// source row r+shift[channel]. A rolling window of max(shift)+1 source rows
// is kept; shifting is strictly backward-looking and never needs rows that
// have not been produced yet. Output height is source height − max(shift).
type ComponentShift struct {
	source Node
	shifts [3]int
	extra  int
	ring   *rowRing
}

// NewComponentShift returns a shift node over a color source with the given
// non-negative per-channel shifts.
func NewComponentShift(source Node, shiftR, shiftG, shiftB int) (*ComponentShift, error) {
	if shiftR < 0 || shiftG < 0 || shiftB < 0 {
		return nil, fmt.Errorf("%w: negative channel shift (%d, %d, %d)",
			ErrGeometry, shiftR, shiftG, shiftB)
	}
	if !source.Format().IsColor() {
		return nil, fmt.Errorf("%w: component shift over %v rows", ErrFormat, source.Format())
	}
	extra := max(shiftR, shiftG, shiftB)
	if extra >= source.Height() {
		return nil, fmt.Errorf("%w: shift %d consumes all %d source rows",
			ErrGeometry, extra, source.Height())
	}
	return &ComponentShift{
		source: source,
		shifts: [3]int{shiftR, shiftG, shiftB},
		extra:  extra,
		ring:   newRowRing(extra+1, RowBytes(source)),
	}, nil
}

func (n *ComponentShift) Width() int           { return n.source.Width() }
func (n *ComponentShift) Height() int          { return n.source.Height() - n.extra }
func (n *ComponentShift) Format() pixel.Format { return n.source.Format() }

// NextRow advances the rolling window by one source row and composes the
// output row from the per-channel shifted rows.
func (n *ComponentShift) NextRow(out []byte) error {
	if err := advanceRing(n.ring, n.source); err != nil {
		return err
	}
	if n.shifts[0] == n.shifts[1] && n.shifts[1] == n.shifts[2] {
		copy(out, n.ring.row(n.shifts[0]))
		return nil
	}
	f := n.Format()
	red := n.ring.row(n.shifts[0])
	green := n.ring.row(n.shifts[1])
	blue := n.ring.row(n.shifts[2])
	for x := 0; x < n.Width(); x++ {
		pixel.Set(out, x, f, pixel.Pixel{
			R: pixel.Get(red, x, f).R,
			G: pixel.Get(green, x, f).G,
			B: pixel.Get(blue, x, f).B,
		})
	}
	return nil
}

// maxPixelShiftGroups bounds the pixel-shift configuration; staggered
// sensors offset even and odd elements, so two groups suffice.
const maxPixelShiftGroups = 2

// PixelShift compensates for staggered sensor elements: output row r pixel x
// is read from source row r+shift[x mod len(shifts)]. The same rolling
// window strategy as ComponentShift is applied per pixel group. Output
// height is source height − max(shift).
type PixelShift struct {
	source Node
	shifts []int
	extra  int
	ring   *rowRing
}

// NewPixelShift returns an unstaggering node with one shift per pixel group.
// At most maxPixelShiftGroups groups are supported.
func NewPixelShift(source Node, shifts []int) (*PixelShift, error) {
	if len(shifts) == 0 || len(shifts) > maxPixelShiftGroups {
		return nil, fmt.Errorf("%w: %d pixel shift groups", ErrGeometry, len(shifts))
	}
	extra := 0
	for _, s := range shifts {
		if s < 0 {
			return nil, fmt.Errorf("%w: negative pixel shift %d", ErrGeometry, s)
		}
		if s > extra {
			extra = s
		}
	}
	if extra >= source.Height() {
		return nil, fmt.Errorf("%w: shift %d consumes all %d source rows",
			ErrGeometry, extra, source.Height())
	}
	n := &PixelShift{
		source: source,
		shifts: append([]int(nil), shifts...),
		extra:  extra,
		ring:   newRowRing(extra+1, RowBytes(source)),
	}
	return n, nil
}

func (n *PixelShift) Width() int           { return n.source.Width() }
func (n *PixelShift) Height() int          { return n.source.Height() - n.extra }
func (n *PixelShift) Format() pixel.Format { return n.source.Format() }

// NextRow advances the rolling window and interleaves pixels from the
// per-group shifted rows.
func (n *PixelShift) NextRow(out []byte) error {
	if err := advanceRing(n.ring, n.source); err != nil {
		return err
	}
	f := n.Format()
	for x := 0; x < n.Width(); x++ {
		row := n.ring.row(n.shifts[x%len(n.shifts)])
		pixel.Set(out, x, f, pixel.Get(row, x, f))
	}
	return nil
}

// advanceRing slides the rolling window one source row forward, priming it
// completely on the first call.
func advanceRing(ring *rowRing, source Node) error {
	if ring.full() {
		ring.popFront()
	}
	for !ring.full() {
		if err := source.NextRow(ring.pushBack()); err != nil {
			return err
		}
	}
	return nil
}
