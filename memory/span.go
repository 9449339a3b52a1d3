package memory

// Span is a fixed window into a Region. The zero Span is unbound: it reads
// as empty and ignores writes.
type Span struct {
	region *Region
	off    int
	n      int
}

// Region returns the owning region or nil for an unbound span.
func (s Span) Region() *Region {
	return s.region
}

// Bound reports whether the span belongs to a region.
func (s Span) Bound() bool {
	return s.region != nil
}

// Base is the region offset of the first byte of the span.
func (s Span) Base() int {
	return s.off
}

// End is the region offset one past the last byte of the span.
func (s Span) End() int {
	return s.off + s.n
}

// Len returns the size of the span in bytes.
func (s Span) Len() int {
	return s.n
}

// Contains reports whether the region offset pos falls inside the span.
func (s Span) Contains(pos int) bool {
	return pos >= s.off && pos < s.off+s.n
}

// Load returns a copy of the span's bytes.
func (s Span) Load() []byte {
	if s.region == nil {
		return nil
	}

	return s.region.Read(s.off, s.n)
}

// Store overwrites the span with data, which must be exactly Len() bytes.
func (s Span) Store(data []byte) error {
	if s.region == nil {
		return Error.New("unbound span")
	}
	if len(data) != s.n {
		return Error.New("size mismatch: span=%d data=%d", s.n, len(data))
	}

	s.region.lock()
	copy(s.region.buf[s.off:s.off+s.n], data)
	s.region.unlock()

	return nil
}

// Update calls fn with the span's bytes while holding the region lock. The
// slice must not be retained after fn returns.
func (s Span) Update(fn func(b []byte)) {
	if s.region == nil {
		return
	}

	s.region.lock()
	defer s.region.unlock()

	fn(s.region.buf[s.off : s.off+s.n : s.off+s.n])
}

// Nearby returns rng bytes before the span, the span itself if includeSelf,
// and rng bytes after the span, in address order. The window is clipped to
// the region.
func (s Span) Nearby(rng int, includeSelf bool) []byte {
	if s.region == nil {
		return []byte{}
	}
	if rng < 0 {
		rng = 0
	}

	before := s.region.Read(s.off-rng, rng)
	after := s.region.Read(s.End(), rng)

	out := make([]byte, 0, len(before)+s.n+len(after))
	out = append(out, before...)
	if includeSelf {
		out = append(out, s.region.Read(s.off, s.n)...)
	}
	out = append(out, after...)

	return out
}
