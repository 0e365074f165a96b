// Package segment implements pixel reordering for segmented sensor readout.
//
// Many scanner sensors are read out through several parallel segments, each
// covering a slice of the physical pixel line. The ASIC interleaves the
// segments chunk by chunk, so a physical row arrives as:
//
//	[seg A chunk 0][seg B chunk 0][seg A chunk 1][seg B chunk 1]...
//
// Reorder maps each physical chunk back to its logical position so the row
// reads in linear pixel order again. The segment order is a permutation
// giving, for each physical readout slot, the logical segment it carries.
package segment

import "github.com/mrjoshuak/go-scanpipe/pixel"

// Reorder rearranges chunk-interleaved segment data from rows into logical
// pixel order in dst.
//
// rows is a group of source rows of rowWidth pixels each, treated as one
// continuous pixel stream; indexing is per pixel within each row, so the
// padding bits at the end of non-byte-aligned sub-byte rows are never read.
// For chunk group g and physical slot i, the pixelsPerChunk pixels at stream
// position (g*len(order)+i)*pixelsPerChunk are written to output position
// g*pixelsPerChunk + order[i]*segmentPixels. segmentPixels is the total
// number of output pixels owned by one segment. Groups are processed while
// they fit entirely inside outputWidth; any output pixels not covered by a
// full group are zero-filled.
func Reorder(dst []byte, rows [][]byte, rowWidth int, f pixel.Format, outputWidth int, order []int, segmentPixels, pixelsPerChunk int) {
	segments := len(order)
	groups := outputWidth / (segments * pixelsPerChunk)
	if groups*segments*pixelsPerChunk != outputWidth {
		pixel.ClearPixels(dst, 0, outputWidth, f)
	}
	for g := 0; g < groups; g++ {
		for i, seg := range order {
			srcX := (g*segments + i) * pixelsPerChunk
			dstX := g*pixelsPerChunk + seg*segmentPixels
			copyStream(dst, dstX, rows, rowWidth, srcX, pixelsPerChunk, f)
		}
	}
}

// copyStream copies count pixels starting at stream position srcX, splitting
// the copy wherever it crosses a row boundary.
func copyStream(dst []byte, dstX int, rows [][]byte, rowWidth, srcX, count int, f pixel.Format) {
	for count > 0 {
		row := rows[srcX/rowWidth]
		x := srcX % rowWidth
		n := rowWidth - x
		if n > count {
			n = count
		}
		pixel.CopyPixels(dst, dstX, row, x, n, f)
		srcX += n
		dstX += n
		count -= n
	}
}

// IdentityOrder returns the trivial segment order 0..n-1, used for linear
// multi-segment sensors that need no permutation.
func IdentityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// MaxIndex returns the largest segment index in the order.
func MaxIndex(order []int) int {
	max := 0
	for _, seg := range order {
		if seg > max {
			max = seg
		}
	}
	return max
}
