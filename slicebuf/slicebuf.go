// Package slicebuf provides a reference-counted window over a shared byte
// vector, with copy-on-write mutation.
//
// A Buf is a triple (backing, start, end): backing is a byte vector that may
// be aliased by any number of Buf values, and [start, end) is this Buf's
// visible range. SplitOff and DrainTo hand out new windows over the same
// backing in O(1) by bumping a share count; GetMut takes the fast "sole
// owner, mutate in place" path when it is safe to do so and falls back to
// copying the visible bytes into a fresh backing otherwise.
//
// This package has no internal locking: a Buf (and anything split or cloned
// from it) is owned by exactly one goroutine at a time, matching the
// single-threaded cooperative model the rest of this module assumes.
package slicebuf

// DefaultCapacity is the allocation capacity used by New.
const DefaultCapacity = 8 * 1024

type shared struct {
	data []byte
	refs int
}

// Buf is a copy-on-write window over a shared byte vector. The zero Buf is
// not valid; construct one with New, WithCapacity, or FromBytes.
type Buf struct {
	b     *shared
	start int
	end   int
}

// New returns an empty Buf with the default allocation capacity.
func New() Buf {
	return WithCapacity(DefaultCapacity)
}

// WithCapacity returns an empty Buf whose backing vector is allocated with
// capacity n.
func WithCapacity(n int) Buf {
	if n < 0 {
		n = 0
	}
	return Buf{b: &shared{data: make([]byte, 0, n), refs: 1}}
}

// FromBytes wraps p as the sole window over a fresh backing vector. p is
// taken by reference, not copied; callers must not mutate it afterwards
// except through the returned Buf.
func FromBytes(p []byte) Buf {
	return Buf{b: &shared{data: p, refs: 1}, start: 0, end: len(p)}
}

// Len reports the number of visible bytes. It is O(1).
func (b Buf) Len() int {
	return b.end - b.start
}

// Bytes returns the visible window as a slice. The slice aliases the shared
// backing vector and is only valid until the next mutation of this Buf or
// any Buf sharing its backing.
func (b Buf) Bytes() []byte {
	return b.b.data[b.start:b.end]
}

// Refs reports the current share count of the backing vector. It exists
// mainly for tests that assert on copy-on-write behavior.
func (b Buf) Refs() int {
	return b.b.refs
}

// Clone returns a new Buf over the same visible range, sharing the backing
// vector in O(1). It is the Go analog of cloning a reference-counted Rust
// EasyBuf: cheap, but it pins the backing vector's share count up, which in
// turn forces the next GetMut on either Buf onto the copying slow path until
// one of them is released.
func (b *Buf) Clone() Buf {
	b.b.refs++
	return Buf{b: b.b, start: b.start, end: b.end}
}

// Release drops this Buf's claim on the shared backing vector, decrementing
// its share count. Go has no destructors, so callers that hand out a frame's
// bytes via SplitOff/DrainTo/Clone and are done with the result must call
// Release explicitly to let the producing side's GetMut take the fast path
// again. Release clears this Buf's reference, so calling it again on the
// same Buf is a no-op; it panics if the share count is already zero, which
// happens when more copies of a Buf value are released than were shared.
func (b *Buf) Release() {
	if b.b == nil {
		return
	}
	if b.b.refs <= 0 {
		panic("slicebuf: Release called more times than Buf was shared")
	}
	b.b.refs--
	b.b = nil
}

// SplitOff splits the buffer at index at: afterwards b contains [0, at) and
// the returned Buf contains [at, Len()). It is O(1): it bumps the share
// count and adjusts indices only.
//
// SplitOff panics if at > b.Len().
func (b *Buf) SplitOff(at int) Buf {
	if at < 0 || at > b.Len() {
		panic("slicebuf: SplitOff index out of range")
	}
	b.b.refs++
	idx := b.start + at
	other := Buf{b: b.b, start: idx, end: b.end}
	b.end = idx
	return other
}

// DrainTo is the mirror of SplitOff: afterwards b contains [at, Len()) and
// the returned Buf contains [0, at) — the consumed prefix. Decoders use this
// to hand out the bytes of one complete frame while keeping the remainder in
// place for the next decode call.
//
// DrainTo panics if at > b.Len().
func (b *Buf) DrainTo(at int) Buf {
	if at < 0 || at > b.Len() {
		panic("slicebuf: DrainTo index out of range")
	}
	b.b.refs++
	idx := b.start + at
	other := Buf{b: b.b, start: b.start, end: idx}
	b.start = idx
	return other
}

// Mut is a handle for mutating a Buf's backing vector, returned by GetMut.
// It behaves like a growable byte vector; the caller must call Commit when
// done, which is the Go stand-in for the RAII "on drop" behavior of the
// type this is modeled on (original_source/src/frame.rs EasyBufMut).
type Mut struct {
	buf *Buf
}

// Len returns the backing vector's current full length (which may exceed
// the owning Buf's pre-mutation visible length when the backing vector still
// holds bytes past this Buf's end, e.g. after a SplitOff whose tail has since
// been released).
func (m *Mut) Len() int {
	return len(m.buf.b.data)
}

// Cap returns the backing vector's current allocation capacity.
func (m *Mut) Cap() int {
	return cap(m.buf.b.data)
}

// Grow extends the backing vector by n bytes (zero-filled) and returns that
// new region for the caller to write into. When the existing capacity is
// insufficient it reallocates at double the old capacity, or at exactly the
// needed length if doubling is not enough.
func (m *Mut) Grow(n int) []byte {
	d := m.buf.b.data
	old := len(d)
	need := old + n
	if need > cap(d) {
		newCap := cap(d) * 2
		if newCap < need {
			newCap = need
		}
		nd := make([]byte, old, newCap)
		copy(nd, d)
		d = nd
	}
	d = d[:need]
	for i := old; i < need; i++ {
		d[i] = 0
	}
	m.buf.b.data = d
	return d[old:need]
}

// Truncate sets the backing vector's visible length to n bytes, discarding
// anything beyond it. n must not exceed Len().
func (m *Mut) Truncate(n int) {
	if n < 0 || n > len(m.buf.b.data) {
		panic("slicebuf: Truncate length out of range")
	}
	m.buf.b.data = m.buf.b.data[:n]
}

// Commit ends the mutable borrow, pinning the owning Buf's visible end to
// the backing vector's current length. Callers should defer Commit
// immediately after GetMut returns.
func (m *Mut) Commit() {
	m.buf.end = len(m.buf.b.data)
}

// GetMut returns a handle for growing or rewriting this Buf's backing
// vector.
//
// Fast path: if this Buf is the sole owner of the backing vector (share
// count 1), the bytes before start are dropped in place, start is reset to
// 0, and the backing vector is exposed directly — the retained bytes are
// moved to the front in place, with no allocation beyond an occasional
// geometric grow.
//
// Slow path: otherwise a fresh vector with the same capacity is allocated,
// the visible window is copied into it, and that becomes the new backing —
// this is the only place slicebuf ever copies bytes.
func (b *Buf) GetMut() *Mut {
	if b.b.refs <= 1 {
		if b.start > 0 {
			b.b.data = append(b.b.data[:0], b.b.data[b.start:]...)
			b.start = 0
		}
		return &Mut{buf: b}
	}
	fresh := make([]byte, b.Len(), cap(b.b.data))
	copy(fresh, b.Bytes())
	b.b.refs--
	b.b = &shared{data: fresh, refs: 1}
	b.start = 0
	return &Mut{buf: b}
}
