package memory

import (
	"sync"

	"github.com/calebcase/oops"
)

// Region is an owned, fixed size byte buffer.
type Region struct {
	mu     sync.Mutex
	unsync bool
	buf    []byte
}

// Option configures a Region.
type Option func(r *Region)

// Unsynchronized disables locking on the region.
func Unsynchronized() Option {
	return func(r *Region) {
		r.unsync = true
	}
}

// NewRegion allocates a zeroed region of size bytes.
func NewRegion(size int, opts ...Option) (*Region, error) {
	if size < 0 {
		return nil, Error.New("invalid size: %d", size)
	}

	r := &Region{
		buf: make([]byte, size),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Isolated allocates a region holding a single span of size bytes with pad
// bytes on either side and returns the span. Negative sizes are treated as
// zero.
func Isolated(pad, size int, opts ...Option) Span {
	if pad < 0 {
		pad = 0
	}
	if size < 0 {
		size = 0
	}

	r := &Region{
		buf: make([]byte, 2*pad+size),
	}

	for _, opt := range opts {
		opt(r)
	}

	return Span{
		region: r,
		off:    pad,
		n:      size,
	}
}

func (r *Region) lock() {
	if !r.unsync {
		r.mu.Lock()
	}
}

func (r *Region) unlock() {
	if !r.unsync {
		r.mu.Unlock()
	}
}

// Len returns the size of the region in bytes.
func (r *Region) Len() int {
	return len(r.buf)
}

// Synchronized reports whether access to the region is locked.
func (r *Region) Synchronized() bool {
	return !r.unsync
}

// Span returns a view of n bytes starting at off.
func (r *Region) Span(off, n int) (Span, error) {
	if off < 0 || n < 0 || off+n > len(r.buf) {
		return Span{}, oops.Trace(ErrOutOfBounds)
	}

	return Span{
		region: r,
		off:    off,
		n:      n,
	}, nil
}

// Whole returns a span covering the entire region.
func (r *Region) Whole() Span {
	return Span{
		region: r,
		n:      len(r.buf),
	}
}

// Flip toggles bit (0 is least significant) of the byte at pos. It reports
// false, changing nothing, if pos is outside the region or bit is not a
// valid bit index.
func (r *Region) Flip(pos int, bit uint) bool {
	if pos < 0 || pos >= len(r.buf) || bit > 7 {
		return false
	}

	r.lock()
	r.buf[pos] ^= 1 << bit
	r.unlock()

	return true
}

// Read returns a copy of the bytes in [off, off+n) clipped to the region.
func (r *Region) Read(off, n int) []byte {
	end := off + n
	if off < 0 {
		off = 0
	}
	if end > len(r.buf) {
		end = len(r.buf)
	}
	if off >= end {
		return []byte{}
	}

	out := make([]byte, end-off)

	r.lock()
	copy(out, r.buf[off:end])
	r.unlock()

	return out
}

// Snapshot returns a copy of the whole region.
func (r *Region) Snapshot() []byte {
	return r.Read(0, len(r.buf))
}
