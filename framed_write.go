// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import "errors"

// BackpressureBoundary is the pending-byte threshold at or above which
// FramedWrite.StartSend refuses new items until PollComplete drains the
// buffer. It equals the default buffer size so that typical small frames
// never touch the slow path.
const BackpressureBoundary = DefaultBufSize

// FramedWrite turns a stream of typed items into bytes written to an
// underlying Writer, using enc to serialize each item into a pending
// buffer that PollComplete drains.
//
// buf holds everything encoded since the last full drain; off is the read
// cursor marking how much of it has already been written, the same
// off/len split bytes.Buffer itself uses (see bufwriter.go). PollComplete
// advances off rather than re-slicing buf, so the backing array's
// capacity survives a drain intact and StartSend's next Encode call can
// append into it without reallocating.
type FramedWrite[Item any] struct {
	wr  Writer
	enc Encoder[Item]
	buf []byte
	off int
}

// NewFramedWrite returns a FramedWrite writing to wr and encoding with enc.
func NewFramedWrite[Item any](wr Writer, enc Encoder[Item]) *FramedWrite[Item] {
	return &FramedWrite[Item]{wr: wr, enc: enc}
}

// Buffered reports the number of pending, not-yet-written bytes.
func (f *FramedWrite[Item]) Buffered() int {
	return len(f.buf) - f.off
}

// StartSend encodes item onto the pending buffer and reports ok=true, or,
// if the buffer is already at or above BackpressureBoundary and a single
// PollComplete pass does not bring it back under the boundary, reports
// ok=false: the caller retains ownership of item and must retry later.
func (f *FramedWrite[Item]) StartSend(item Item) (ok bool, err error) {
	if f.Buffered() >= BackpressureBoundary {
		if err := f.PollComplete(); err != nil && !errors.Is(err, ErrWouldBlock) {
			return false, err
		}
		if f.Buffered() >= BackpressureBoundary {
			return false, nil
		}
	}
	nb, err := f.enc.Encode(item, f.buf)
	if err != nil {
		return false, err
	}
	f.buf = nb
	return true, nil
}

// PollComplete writes the pending buffer to the underlying Writer until it
// is empty, then flushes the Writer if it implements Flusher. A write
// returning 0 bytes for non-empty input is fatal (ErrWriteZero).
// ErrWouldBlock is returned immediately, leaving whatever is unwritten
// still pending for the next call.
func (f *FramedWrite[Item]) PollComplete() error {
	for f.off < len(f.buf) {
		n, err := f.wr.Write(f.buf[f.off:])
		if n > 0 {
			f.off += n
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrWriteZero
		}
	}
	f.buf = f.buf[:0]
	f.off = 0
	if fl, ok := f.wr.(Flusher); ok {
		return fl.Flush()
	}
	return nil
}

// Shutdown drains the pending buffer via PollComplete, then shuts down the
// underlying Writer.
func (f *FramedWrite[Item]) Shutdown() error {
	if err := f.PollComplete(); err != nil {
		return err
	}
	return shutdown(f.wr)
}
