package scanpipe

// ImageBuffer accumulates producer output between the transport and a source
// node. Producers deliver data in read-sized chunks unrelated to the row
// size, so rows are sliced across chunk boundaries. The buffer never
// requests more bytes than remain in the scan.
type ImageBuffer struct {
	producer  Producer
	readSize  func(remaining int) int
	remaining int

	buf []byte
	off int
}

// NewImageBuffer returns a buffer that pulls fixed chunkSize reads from the
// producer until totalSize bytes have been consumed. The final read is
// capped to the bytes remaining.
func NewImageBuffer(chunkSize, totalSize int, producer Producer) *ImageBuffer {
	return &ImageBuffer{
		producer: producer,
		readSize: func(remaining int) int {
			if chunkSize < remaining {
				return chunkSize
			}
			return remaining
		},
		remaining: totalSize,
	}
}

// newImageBufferModel returns a buffer whose read sizes follow a transport
// model instead of a fixed chunk size.
func newImageBufferModel(model *TransportModel, totalSize int, producer Producer) *ImageBuffer {
	return &ImageBuffer{
		producer: producer,
		readSize: func(remaining int) int {
			if size := model.ReadSize(); size < remaining {
				return size
			}
			return remaining
		},
		remaining: totalSize,
	}
}

// Available returns the number of buffered bytes not yet consumed.
func (b *ImageBuffer) Available() int {
	return len(b.buf) - b.off
}

// Read fills out from the buffer, pulling more chunks from the producer as
// needed. It returns ErrOutOfData when the scan's total size is exhausted
// before out can be filled.
func (b *ImageBuffer) Read(out []byte) error {
	for b.Available() < len(out) {
		size := b.readSize(b.remaining)
		if size <= 0 {
			return ErrOutOfData
		}
		if err := b.grow(size); err != nil {
			return err
		}
		b.remaining -= size
	}
	copy(out, b.buf[b.off:])
	b.off += len(out)
	return nil
}

func (b *ImageBuffer) grow(size int) error {
	// Compact consumed bytes before appending.
	if b.off > 0 {
		b.buf = append(b.buf[:0], b.buf[b.off:]...)
		b.off = 0
	}
	end := len(b.buf)
	b.buf = append(b.buf, make([]byte, size)...)
	if err := fill(b.producer, b.buf[end:]); err != nil {
		b.buf = b.buf[:end]
		return err
	}
	return nil
}

// rowRing is a fixed-capacity ring holding the most recent source rows. The
// shift nodes keep exactly max(shift)+1 rows in flight.
type rowRing struct {
	rows  [][]byte
	start int
	count int
}

func newRowRing(capacity, rowBytes int) *rowRing {
	rows := make([][]byte, capacity)
	for i := range rows {
		rows[i] = make([]byte, rowBytes)
	}
	return &rowRing{rows: rows}
}

// pushBack reserves the next slot and returns it for filling. The ring must
// not be full.
func (r *rowRing) pushBack() []byte {
	slot := r.rows[(r.start+r.count)%len(r.rows)]
	r.count++
	return slot
}

// popFront releases the oldest row.
func (r *rowRing) popFront() {
	r.start = (r.start + 1) % len(r.rows)
	r.count--
}

// row returns the i-th row counting from the oldest.
func (r *rowRing) row(i int) []byte {
	return r.rows[(r.start+i)%len(r.rows)]
}

func (r *rowRing) full() bool {
	return r.count == len(r.rows)
}
