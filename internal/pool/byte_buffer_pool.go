package pool

import "sync"

const (
	// DocumentBufferDefaultSize is the initial capacity of a document encode buffer.
	DocumentBufferDefaultSize = 1024 * 16 // 16KiB
	// DocumentBufferMaxThreshold is the largest document buffer kept for reuse.
	DocumentBufferMaxThreshold = 1024 * 1024 // 1MiB
	// RegionBufferDefaultSize is the initial capacity of a region encode buffer.
	RegionBufferDefaultSize = 1024 * 1024 // 1MiB
	// RegionBufferMaxThreshold is the largest region buffer kept for reuse.
	RegionBufferMaxThreshold = 1024 * 1024 * 16 // 16MiB
)

// ByteBuffer is a growable byte slice handed out by a ByteBufferPool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
//
// The growth strategy is as follows:
//   - For small buffers, grow by DocumentBufferDefaultSize to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := DocumentBufferDefaultSize
	if cap(bb.B) > 4*DocumentBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// Detach returns a copy of the buffer contents that stays valid after the buffer
// goes back to its pool.
func (bb *ByteBuffer) Detach() []byte {
	out := make([]byte, len(bb.B))
	copy(out, bb.B)

	return out
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// Buffers whose capacity grew beyond maxThreshold are dropped instead of pooled, so
// one huge document does not pin memory for the life of the process.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	documentPool = NewByteBufferPool(DocumentBufferDefaultSize, DocumentBufferMaxThreshold)
	regionPool   = NewByteBufferPool(RegionBufferDefaultSize, RegionBufferMaxThreshold)
)

// GetDocumentBuffer retrieves a ByteBuffer from the document pool.
func GetDocumentBuffer() *ByteBuffer {
	return documentPool.Get()
}

// PutDocumentBuffer returns a ByteBuffer to the document pool.
func PutDocumentBuffer(bb *ByteBuffer) {
	documentPool.Put(bb)
}

// GetRegionBuffer retrieves a ByteBuffer from the region pool.
func GetRegionBuffer() *ByteBuffer {
	return regionPool.Get()
}

// PutRegionBuffer returns a ByteBuffer to the region pool.
func PutRegionBuffer(bb *ByteBuffer) {
	regionPool.Put(bb)
}
