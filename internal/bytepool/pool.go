// Package bytepool provides a sync.Pool-backed buffer reuse helper for the
// per-session socket read buffer, adapted from the byte pool pattern the
// wider codebase uses for connection buffers.
package bytepool

import "sync"

const maxPooled = 64 * 1024

// Pool hands out reusable byte slices, avoiding a fresh read buffer
// allocation for every new connection.
type Pool struct {
	pool sync.Pool
}

// New returns a Pool whose buffers start at the given capacity.
func New(initialCap int) *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return make([]byte, initialCap)
			},
		},
	}
}

// Get returns a buffer of exactly size bytes, reusing a pooled buffer when
// one of sufficient capacity is available.
func (p *Pool) Get(size int) []byte {
	buf := p.pool.Get().([]byte)
	if cap(buf) < size {
		return make([]byte, size)
	}
	return buf[:size]
}

// Put returns buf to the pool for reuse. Buffers larger than maxPooled are
// dropped rather than retained indefinitely.
func (p *Pool) Put(buf []byte) {
	if cap(buf) > maxPooled {
		return
	}
	p.pool.Put(buf[:0])
}
