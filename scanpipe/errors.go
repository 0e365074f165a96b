package scanpipe

import "errors"

// Pipeline errors.
var (
	// ErrStackNotEmpty is returned when a source node is pushed onto a stack
	// that already has nodes.
	ErrStackNotEmpty = errors.New("scanpipe: stack already has a source node")

	// ErrEmptyStack is returned when a transform node is pushed onto, or a
	// row is pulled from, a stack with no nodes.
	ErrEmptyStack = errors.New("scanpipe: stack has no nodes")

	// ErrProducerUnderrun is returned when a producer supplies fewer bytes
	// than requested. The pull that observed it cannot be retried; a fresh
	// stack must be built for a retried scan.
	ErrProducerUnderrun = errors.New("scanpipe: producer returned fewer bytes than requested")

	// ErrProducerOverrun is returned when a producer reports more bytes than
	// requested. An over-delivering producer has lost stream sync, so this
	// is a hard failure rather than a truncation.
	ErrProducerOverrun = errors.New("scanpipe: producer returned more bytes than requested")

	// ErrOutOfData is returned when a node is pulled past its declared
	// height.
	ErrOutOfData = errors.New("scanpipe: read past end of image data")

	// ErrGeometry is returned when a node is constructed with incompatible
	// dimensions.
	ErrGeometry = errors.New("scanpipe: incompatible node geometry")

	// ErrFormat is returned when a node is constructed with a pixel format
	// it does not support.
	ErrFormat = errors.New("scanpipe: unsupported pixel format")
)
