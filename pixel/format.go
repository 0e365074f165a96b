// Package pixel describes the pixel formats produced by scanner sensors and
// provides low-level access to pixel data stored in raw row buffers.
//
// Scanner ASICs deliver samples in a small set of fixed layouts: 1, 8 or 16
// bits per channel, one or three channels, and either RGB or BGR channel
// order. Rows are densely packed; sub-byte formats pack pixels MSB-first
// within each byte, and 16-bit channels are little-endian.
package pixel

// ChannelOrder identifies the in-memory order of color channels.
type ChannelOrder uint8

const (
	// OrderRGB stores channels as red, green, blue.
	OrderRGB ChannelOrder = iota
	// OrderBGR stores channels as blue, green, red.
	OrderBGR
)

// String returns a string representation of the channel order.
func (o ChannelOrder) String() string {
	switch o {
	case OrderRGB:
		return "rgb"
	case OrderBGR:
		return "bgr"
	default:
		return "unknown"
	}
}

// Format identifies the layout of pixel data within a row buffer.
type Format uint8

const (
	// FormatUnknown is the zero value; it is not a valid row layout.
	FormatUnknown Format = iota
	// FormatI1 is 1-bit mono (lineart), packed MSB-first.
	FormatI1
	// FormatI8 is 8-bit mono, one byte per pixel.
	FormatI8
	// FormatI16 is 16-bit mono, little-endian.
	FormatI16
	// FormatRGB111 is 1-bit color, three bits per pixel packed MSB-first.
	FormatRGB111
	// FormatRGB888 is 8-bit color in RGB order.
	FormatRGB888
	// FormatBGR888 is 8-bit color in BGR order.
	FormatBGR888
	// FormatRGB161616 is 16-bit color in RGB order, little-endian.
	FormatRGB161616
	// FormatBGR161616 is 16-bit color in BGR order, little-endian.
	FormatBGR161616
)

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatI1:
		return "i1"
	case FormatI8:
		return "i8"
	case FormatI16:
		return "i16"
	case FormatRGB111:
		return "rgb111"
	case FormatRGB888:
		return "rgb888"
	case FormatBGR888:
		return "bgr888"
	case FormatRGB161616:
		return "rgb161616"
	case FormatBGR161616:
		return "bgr161616"
	default:
		return "unknown"
	}
}

// ChannelCount returns the number of color channels in the format.
func (f Format) ChannelCount() int {
	switch f {
	case FormatI1, FormatI8, FormatI16:
		return 1
	case FormatRGB111, FormatRGB888, FormatBGR888, FormatRGB161616, FormatBGR161616:
		return 3
	default:
		return 0
	}
}

// ChannelDepth returns the number of bits per channel.
func (f Format) ChannelDepth() int {
	switch f {
	case FormatI1, FormatRGB111:
		return 1
	case FormatI8, FormatRGB888, FormatBGR888:
		return 8
	case FormatI16, FormatRGB161616, FormatBGR161616:
		return 16
	default:
		return 0
	}
}

// BitsPerPixel returns the total number of bits occupied by one pixel.
func (f Format) BitsPerPixel() int {
	return f.ChannelCount() * f.ChannelDepth()
}

// Order returns the channel order of the format. Mono formats report
// OrderRGB.
func (f Format) Order() ChannelOrder {
	switch f {
	case FormatBGR888, FormatBGR161616:
		return OrderBGR
	default:
		return OrderRGB
	}
}

// IsColor returns true if the format carries three channels.
func (f Format) IsColor() bool {
	return f.ChannelCount() == 3
}

// RowBytes returns the number of bytes needed to store a row of the given
// width, rounding sub-byte formats up to a whole byte.
func (f Format) RowBytes(width int) int {
	return (width*f.BitsPerPixel() + 7) / 8
}
