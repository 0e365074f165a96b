// scanraw replays a raw sensor dump through an image pipeline and writes the
// reconstructed image.
//
// Usage:
//
//	scanraw -width <n> -height <n> [options] <input> [<output>]
//
// The input is the raw byte stream as read from the scanner transport, one
// file per scan, optionally zstd-compressed (-zstd). The output is PNM for
// 8-bit formats or raw rows otherwise; "-" reads stdin or writes stdout.
//
// Options:
//
//	-width <n>       input width in pixels (required)
//	-height <n>      input height in rows (required)
//	-format <name>   input pixel format: i1, i8, i16, rgb111, rgb888,
//	                 bgr888, rgb161616, bgr161616 (default i8)
//	-zstd            input is zstd-compressed
//	-chunk <n>       transport read-chunk size in bytes (default 65536)
//	-deseg <order>   desegment with the given comma-separated segment order
//	-segpixels <n>   output pixels per segment (with -deseg)
//	-ppc <n>         pixels per chunk for the segment interleave (default 1)
//	-lines <n>       deinterleave n interleaved lines
//	-merge <order>   merge mono lines into color rows: rgb or bgr
//	-shift <r,g,b>   per-channel component shift in rows
//	-unstagger <a,b> per-group pixel shift in rows
//	-extract <x,y,w,h> crop/pad to a window in source coordinates
//	-v               verbose pipeline logging
//
// Exit codes:
//
//	0: success
//	1: pipeline error
//	2: bad arguments
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mrjoshuak/go-scanpipe/log"
	"github.com/mrjoshuak/go-scanpipe/pixel"
	"github.com/mrjoshuak/go-scanpipe/scanpipe"
)

var formats = map[string]pixel.Format{
	"i1":        pixel.FormatI1,
	"i8":        pixel.FormatI8,
	"i16":       pixel.FormatI16,
	"rgb111":    pixel.FormatRGB111,
	"rgb888":    pixel.FormatRGB888,
	"bgr888":    pixel.FormatBGR888,
	"rgb161616": pixel.FormatRGB161616,
	"bgr161616": pixel.FormatBGR161616,
}

func main() {
	var (
		width     = flag.Int("width", 0, "input width in pixels")
		height    = flag.Int("height", 0, "input height in rows")
		formatArg = flag.String("format", "i8", "input pixel format")
		zstdIn    = flag.Bool("zstd", false, "input is zstd-compressed")
		chunk     = flag.Int("chunk", 0x10000, "transport read-chunk size")
		deseg     = flag.String("deseg", "", "segment order, comma-separated")
		segPixels = flag.Int("segpixels", 0, "output pixels per segment")
		ppc       = flag.Int("ppc", 1, "pixels per chunk")
		lines     = flag.Int("lines", 0, "deinterleave n interleaved lines")
		merge     = flag.String("merge", "", "merge mono lines: rgb or bgr")
		shift     = flag.String("shift", "", "component shift r,g,b")
		unstagger = flag.String("unstagger", "", "pixel shift per group")
		extract   = flag.String("extract", "", "extract window x,y,w,h")
		verbose   = flag.Bool("v", false, "verbose pipeline logging")
	)
	flag.Parse()

	if *verbose {
		os.Setenv("SCANPIPE_DEBUG", "1")
	}
	logger := log.New()

	if *width <= 0 || *height <= 0 || flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}
	format, ok := formats[*formatArg]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown format: %s\n", *formatArg)
		os.Exit(2)
	}

	in, err := openInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "scanraw: %v\n", err)
		os.Exit(2)
	}
	defer in.Close()

	s := scanpipe.NewStack()
	if err := buildStack(s, in, format, *width, *height, *zstdIn, *chunk,
		*deseg, *segPixels, *ppc, *lines, *merge, *shift, *unstagger, *extract); err != nil {
		fmt.Fprintf(os.Stderr, "scanraw: %v\n", err)
		os.Exit(2)
	}
	logger.WithField("output", fmt.Sprintf("%dx%d %v",
		s.OutputWidth(), s.OutputHeight(), s.OutputFormat())).Debug("stack built")

	out, err := openOutput(flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "scanraw: %v\n", err)
		os.Exit(2)
	}
	w := bufio.NewWriter(out)

	if err := writeImage(w, s); err != nil {
		fmt.Fprintf(os.Stderr, "scanraw: %v\n", err)
		os.Exit(1)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "scanraw: %v\n", err)
		os.Exit(1)
	}
	if c, ok := out.(io.Closer); ok && out != os.Stdout {
		c.Close()
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.Writer, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

func buildStack(s *scanpipe.Stack, in io.Reader, format pixel.Format,
	width, height int, zstdIn bool, chunk int,
	deseg string, segPixels, ppc, lines int,
	merge, shift, unstagger, extract string) error {

	var producer scanpipe.Producer
	var err error
	if zstdIn {
		producer, err = scanpipe.ZstdProducer(in)
		if err != nil {
			return err
		}
	} else {
		producer = scanpipe.ReaderProducer(in)
	}
	if err := s.PushBufferedSource(width, height, format, chunk, producer); err != nil {
		return err
	}

	if deseg != "" {
		order, err := parseInts(deseg)
		if err != nil {
			return fmt.Errorf("bad -deseg: %w", err)
		}
		pixels := segPixels
		if pixels == 0 {
			pixels = width / len(order)
		}
		if err := s.PushDesegment(scanpipe.DesegmentConfig{
			OutputWidth:      width,
			SegmentOrder:     order,
			SegmentPixels:    pixels,
			InterleavedLines: 1,
			PixelsPerChunk:   ppc,
		}); err != nil {
			return err
		}
	}
	if lines > 0 {
		if err := s.PushDeinterleaveLines(lines, ppc); err != nil {
			return err
		}
	}
	if merge != "" {
		var order pixel.ChannelOrder
		switch merge {
		case "rgb":
			order = pixel.OrderRGB
		case "bgr":
			order = pixel.OrderBGR
		default:
			return fmt.Errorf("bad -merge: %q", merge)
		}
		if err := s.PushMergeMonoLines(order); err != nil {
			return err
		}
	}
	if shift != "" {
		v, err := parseInts(shift)
		if err != nil || len(v) != 3 {
			return fmt.Errorf("bad -shift: want r,g,b")
		}
		if err := s.PushComponentShift(v[0], v[1], v[2]); err != nil {
			return err
		}
	}
	if unstagger != "" {
		v, err := parseInts(unstagger)
		if err != nil {
			return fmt.Errorf("bad -unstagger: %w", err)
		}
		if err := s.PushPixelShift(v); err != nil {
			return err
		}
	}
	if extract != "" {
		v, err := parseInts(extract)
		if err != nil || len(v) != 4 {
			return fmt.Errorf("bad -extract: want x,y,w,h")
		}
		if err := s.PushExtract(v[0], v[1], v[2], v[3]); err != nil {
			return err
		}
	}
	return nil
}

func parseInts(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	v := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		v[i] = n
	}
	return v, nil
}

// writeImage drains the stack row by row. 8-bit output gets a PNM header so
// the result opens in an image viewer; other depths are written as raw rows.
func writeImage(w io.Writer, s *scanpipe.Stack) error {
	format := s.OutputFormat()
	switch format {
	case pixel.FormatI8:
		fmt.Fprintf(w, "P5\n%d %d\n255\n", s.OutputWidth(), s.OutputHeight())
	case pixel.FormatRGB888:
		fmt.Fprintf(w, "P6\n%d %d\n255\n", s.OutputWidth(), s.OutputHeight())
	}

	row := make([]byte, s.OutputRowBytes())
	for i := 0; i < s.OutputHeight(); i++ {
		if err := s.NextRow(row); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
