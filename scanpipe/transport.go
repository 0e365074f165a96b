package scanpipe

// TransportModel models the buffering stages between the sensor and the
// host: the ASIC's internal FIFO and the USB transfer size. Each stage
// forwards whole rows, so the natural read-chunk size of the transport is
// the smallest stage capacity truncated to the row size. Sizing source-node
// reads with this model keeps buffering overhead aligned with the real
// transfer granularity.
type TransportModel struct {
	sizes []int
}

// NewTransportModel returns an empty model. With no stages registered the
// read size is defaultReadSize.
func NewTransportModel() *TransportModel {
	return &TransportModel{}
}

const defaultReadSize = 0x10000

// PushStep registers a buffering stage with the given capacity. rowBytes is
// the row size flowing through that stage; the effective capacity is
// truncated down to a whole number of rows. Stages with no row constraint
// may pass rowBytes <= 1.
func (m *TransportModel) PushStep(bufferSize, rowBytes int) {
	size := bufferSize
	if rowBytes > 1 && size > rowBytes {
		size -= size % rowBytes
	}
	m.sizes = append(m.sizes, size)
}

// ReadSize returns the transport's natural read-chunk size: the minimum
// effective capacity across all registered stages.
func (m *TransportModel) ReadSize() int {
	if len(m.sizes) == 0 {
		return defaultReadSize
	}
	size := m.sizes[0]
	for _, s := range m.sizes[1:] {
		if s < size {
			size = s
		}
	}
	return size
}
