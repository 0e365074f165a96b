package pixel

import "encoding/binary"

// Pixel is a single pixel value normalized to 16 bits per channel. It is the
// interchange representation used when reading, writing or converting pixel
// data: mono formats replicate their sample across all three channels, 8-bit
// samples scale by 0x101 and 1-bit samples map to 0 or 0xFFFF. The mapping
// round-trips losslessly within any single format.
type Pixel struct {
	R, G, B uint16
}

// Channel returns channel i of the pixel, with 0 = red, 1 = green, 2 = blue.
func (p Pixel) Channel(i int) uint16 {
	switch i {
	case 0:
		return p.R
	case 1:
		return p.G
	default:
		return p.B
	}
}

func getBit(row []byte, i int) uint16 {
	if row[i/8]&(0x80>>(i%8)) != 0 {
		return 0xffff
	}
	return 0
}

func setBit(row []byte, i int, v uint16) {
	mask := byte(0x80 >> (i % 8))
	if v >= 0x8000 {
		row[i/8] |= mask
	} else {
		row[i/8] &^= mask
	}
}

// Get reads the pixel at position x from a row stored in the given format.
func Get(row []byte, x int, f Format) Pixel {
	switch f {
	case FormatI1:
		v := getBit(row, x)
		return Pixel{v, v, v}
	case FormatI8:
		v := uint16(row[x]) * 0x101
		return Pixel{v, v, v}
	case FormatI16:
		v := binary.LittleEndian.Uint16(row[x*2:])
		return Pixel{v, v, v}
	case FormatRGB111:
		return Pixel{getBit(row, x*3), getBit(row, x*3+1), getBit(row, x*3+2)}
	case FormatRGB888:
		return Pixel{
			uint16(row[x*3]) * 0x101,
			uint16(row[x*3+1]) * 0x101,
			uint16(row[x*3+2]) * 0x101,
		}
	case FormatBGR888:
		return Pixel{
			uint16(row[x*3+2]) * 0x101,
			uint16(row[x*3+1]) * 0x101,
			uint16(row[x*3]) * 0x101,
		}
	case FormatRGB161616:
		return Pixel{
			binary.LittleEndian.Uint16(row[x*6:]),
			binary.LittleEndian.Uint16(row[x*6+2:]),
			binary.LittleEndian.Uint16(row[x*6+4:]),
		}
	case FormatBGR161616:
		return Pixel{
			binary.LittleEndian.Uint16(row[x*6+4:]),
			binary.LittleEndian.Uint16(row[x*6+2:]),
			binary.LittleEndian.Uint16(row[x*6:]),
		}
	default:
		return Pixel{}
	}
}

// Set writes the pixel at position x into a row stored in the given format.
// Mono formats take the red channel.
func Set(row []byte, x int, f Format, p Pixel) {
	switch f {
	case FormatI1:
		setBit(row, x, p.R)
	case FormatI8:
		row[x] = byte(p.R >> 8)
	case FormatI16:
		binary.LittleEndian.PutUint16(row[x*2:], p.R)
	case FormatRGB111:
		setBit(row, x*3, p.R)
		setBit(row, x*3+1, p.G)
		setBit(row, x*3+2, p.B)
	case FormatRGB888:
		row[x*3] = byte(p.R >> 8)
		row[x*3+1] = byte(p.G >> 8)
		row[x*3+2] = byte(p.B >> 8)
	case FormatBGR888:
		row[x*3] = byte(p.B >> 8)
		row[x*3+1] = byte(p.G >> 8)
		row[x*3+2] = byte(p.R >> 8)
	case FormatRGB161616:
		binary.LittleEndian.PutUint16(row[x*6:], p.R)
		binary.LittleEndian.PutUint16(row[x*6+2:], p.G)
		binary.LittleEndian.PutUint16(row[x*6+4:], p.B)
	case FormatBGR161616:
		binary.LittleEndian.PutUint16(row[x*6:], p.B)
		binary.LittleEndian.PutUint16(row[x*6+2:], p.G)
		binary.LittleEndian.PutUint16(row[x*6+4:], p.R)
	}
}

// CopyPixels copies count pixels of the given format from src starting at
// pixel srcX to dst starting at pixel dstX. Byte-aligned formats copy bytes
// directly; sub-byte formats fall back to per-pixel access.
func CopyPixels(dst []byte, dstX int, src []byte, srcX, count int, f Format) {
	if bpp := f.BitsPerPixel(); bpp%8 == 0 {
		stride := bpp / 8
		copy(dst[dstX*stride:(dstX+count)*stride], src[srcX*stride:(srcX+count)*stride])
		return
	}
	for i := 0; i < count; i++ {
		Set(dst, dstX+i, f, Get(src, srcX+i, f))
	}
}

// ClearPixels zero-fills count pixels of the given format starting at pixel x.
func ClearPixels(row []byte, x, count int, f Format) {
	if bpp := f.BitsPerPixel(); bpp%8 == 0 {
		stride := bpp / 8
		clear(row[x*stride : (x+count)*stride])
		return
	}
	for i := 0; i < count; i++ {
		Set(row, x+i, f, Pixel{})
	}
}

// ConvertRow converts a row of width pixels from srcFormat in src to
// dstFormat in dst. When the formats match the bytes are copied unchanged.
// Color to mono conversion takes the red channel.
func ConvertRow(dst []byte, dstFormat Format, src []byte, srcFormat Format, width int) {
	if dstFormat == srcFormat {
		copy(dst[:srcFormat.RowBytes(width)], src)
		return
	}
	for x := 0; x < width; x++ {
		Set(dst, x, dstFormat, Get(src, x, srcFormat))
	}
}
