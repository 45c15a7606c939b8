// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"errors"
	"io"

	"code.hybscloud.com/iox"
)

// DefaultBufSize is the fixed internal buffer capacity used by NewBufReader
// and NewBufWriter.
const DefaultBufSize = 8 * 1024

// ErrSeekUnsupported is returned by BufReader.Seek and BufWriter.Seek when
// the wrapped Reader/Writer does not implement io.Seeker.
var ErrSeekUnsupported = errors.New("stream: underlying object does not support Seek")

// BufReader wraps a Reader in a fixed-capacity internal buffer, preserving
// byte-exactness across short reads: whatever the underlying Reader
// produces, one call at a time, is what BufReader.Read hands back, neither
// more nor less, while still coalescing small reads against one real Read
// per refill.
//
// The buffer never grows; NewBufReaderSize fixes its capacity for the
// lifetime of the BufReader.
type BufReader struct {
	rd       Reader
	buf      []byte
	pos, end int
	pendErr  error
}

// NewBufReader returns a BufReader with the default buffer capacity.
func NewBufReader(rd Reader) *BufReader {
	return NewBufReaderSize(rd, DefaultBufSize)
}

// NewBufReaderSize returns a BufReader whose internal buffer has capacity n
// (at least 1).
func NewBufReaderSize(rd Reader, n int) *BufReader {
	if n < 1 {
		n = 1
	}
	return &BufReader{rd: rd, buf: make([]byte, n)}
}

// reset empties the buffer and discards any pending error, used after a
// successful Seek since whatever was buffered no longer corresponds to the
// stream at the new position.
func (b *BufReader) reset() {
	b.pos, b.end = 0, 0
	b.pendErr = nil
}

// fillBuf returns the currently buffered, unconsumed bytes, refilling from
// the underlying Reader first if the buffer is empty. The returned slice
// aliases the internal buffer and is valid only until the next call that
// mutates it (Read or Seek).
func (b *BufReader) fillBuf() ([]byte, error) {
	if b.pos < b.end {
		return b.buf[b.pos:b.end], nil
	}
	if b.pendErr != nil {
		err := b.pendErr
		b.pendErr = nil
		return nil, err
	}
	n, err := b.rd.Read(b.buf)
	b.pos, b.end = 0, n
	if n == 0 {
		return nil, err
	}
	// A Read that returned both bytes and an error is split across calls:
	// hand out the bytes now, surface the error once the buffer drains.
	b.pendErr = err
	return b.buf[:n], nil
}

// consume advances the read cursor by n bytes, clamped to what is actually
// buffered.
func (b *BufReader) consume(n int) {
	if b.pos+n > b.end {
		n = b.end - b.pos
	}
	b.pos += n
}

// Read implements the large-read fast path (bypass buffering when the
// buffer is empty and the destination is at least as large as the internal
// buffer) and otherwise fills and hands out min(available, len(p)) bytes.
func (b *BufReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.pos == b.end && b.pendErr == nil && len(p) >= len(b.buf) {
		return b.rd.Read(p)
	}
	avail, err := b.fillBuf()
	n := copy(p, avail)
	b.consume(n)
	if n > 0 {
		return n, nil
	}
	return 0, err
}

// Buffered reports the number of bytes currently held in the internal
// buffer, not yet consumed.
func (b *BufReader) Buffered() int {
	return b.end - b.pos
}

// Tee arranges for every byte this BufReader pulls from its underlying
// Reader to also be written to side, for diagnostic purposes (protocol
// dumps, traffic capture). It wraps the underlying Reader with
// iox.TeeReaderPolicy under iox.ReturnPolicy{}, matching this package's own
// never-retry-internally rule: a side write that would block surfaces
// ErrWouldBlock to the caller of Read exactly as a primary-stream
// ErrWouldBlock would, rather than busy-retrying the tee write.
//
// Tee only affects bytes read after it is called; anything already sitting
// in the internal buffer was not teed.
func (b *BufReader) Tee(side io.Writer) {
	b.rd = iox.TeeReaderPolicy(b.rd, side, iox.ReturnPolicy{})
}

// subOverflows reports whether a-b overflows a signed 64-bit integer.
func subOverflows(a, b int64) bool {
	d := a - b
	return (b > 0 && d > a) || (b < 0 && d < a)
}

// Seek delegates to the underlying Reader's io.Seeker and always empties
// the buffer afterwards, so the next Read refills from the new position.
//
// For io.SeekCurrent, the bytes already sitting in the buffer have already
// been "consumed" from the stream's point of view but not yet handed to the
// caller; Seek accounts for that remainder by seeking the inner reader by
// offset-remainder in one combined seek. If offset-remainder would overflow a signed
// 64-bit integer, the adjustment is done as two separate seeks (first by
// -remainder, then by offset) instead of one combined seek, so that the net
// effect matches what a single unbounded-precision seek would have done.
func (b *BufReader) Seek(offset int64, whence int) (int64, error) {
	seeker, ok := b.rd.(io.Seeker)
	if !ok {
		return 0, ErrSeekUnsupported
	}
	if whence != io.SeekCurrent {
		pos, err := seeker.Seek(offset, whence)
		b.reset()
		return pos, err
	}
	remainder := int64(b.end - b.pos)
	if subOverflows(offset, remainder) {
		if _, err := seeker.Seek(-remainder, io.SeekCurrent); err != nil {
			return 0, err
		}
		pos, err := seeker.Seek(offset, io.SeekCurrent)
		b.reset()
		return pos, err
	}
	pos, err := seeker.Seek(offset-remainder, io.SeekCurrent)
	b.reset()
	return pos, err
}
