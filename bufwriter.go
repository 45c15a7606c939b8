// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"bytes"
	"io"

	"code.hybscloud.com/iox"
)

// Flusher is implemented by writers that support an explicit flush distinct
// from Write, used by BufWriter.Flush to propagate a flush to the
// underlying object once its own buffer has drained.
type Flusher interface {
	Flush() error
}

// BufWriter accumulates writes in a growable buffer with a logical read
// cursor (see bytes.Buffer's own off/len model, which already matches this
// shape) and flushes to the underlying Writer when a Write does not fit in
// the remaining capacity, or on an explicit Flush.
type BufWriter struct {
	wr  Writer
	cap int
	buf bytes.Buffer
}

// NewBufWriter returns a BufWriter with the default flush threshold.
func NewBufWriter(wr Writer) *BufWriter {
	return NewBufWriterSize(wr, DefaultBufSize)
}

// NewBufWriterSize returns a BufWriter with a buffer capacity of n bytes (at
// least 1); it flushes when a Write would not fit in that capacity.
func NewBufWriterSize(wr Writer, n int) *BufWriter {
	if n < 1 {
		n = 1
	}
	return &BufWriter{wr: wr, cap: n}
}

// Buffered reports the number of bytes currently pending flush.
func (w *BufWriter) Buffered() int {
	return w.buf.Len()
}

// Tee arranges for every byte this BufWriter flushes to its underlying
// Writer to also be written to side, for diagnostic purposes. It wraps the
// underlying Writer with iox.TeeWriterPolicy under iox.ReturnPolicy{}, so a
// side write that would block surfaces ErrWouldBlock from Flush/Write
// exactly as a primary-stream ErrWouldBlock would, rather than
// busy-retrying the tee write.
//
// Tee only affects bytes flushed after it is called.
func (w *BufWriter) Tee(side io.Writer) {
	w.wr = iox.TeeWriterPolicy(w.wr, side, iox.ReturnPolicy{})
}

// Write appends p to the pending buffer. If p does not fit in the
// remaining capacity, one flush pass is attempted; if that still leaves no
// room, the buffer is drained fully. If the buffer ends up empty and p is
// at least as large as the flush threshold, p is written directly to the
// underlying Writer, bypassing buffering entirely.
func (w *BufWriter) Write(p []byte) (int, error) {
	remaining := w.cap - w.buf.Len()
	if len(p) > remaining {
		if err := w.flushOnce(); err != nil {
			return 0, err
		}
		remaining = w.cap - w.buf.Len()
		if len(p) > remaining {
			if err := w.flushAll(); err != nil {
				return 0, err
			}
			remaining = w.cap - w.buf.Len()
		}
	}
	if w.buf.Len() == 0 && len(p) >= w.cap {
		return w.wr.Write(p)
	}
	n := len(p)
	if n > remaining {
		n = remaining
	}
	if n < 0 {
		n = 0
	}
	w.buf.Write(p[:n])
	return n, nil
}

// flushOnce issues a single Write of the pending bytes to the underlying
// Writer and advances the read cursor by whatever was accepted. Unlike
// flushAll it does not loop: a partial write, or ErrWouldBlock, is returned
// to the caller as-is.
func (w *BufWriter) flushOnce() error {
	if w.buf.Len() == 0 {
		return nil
	}
	n, err := w.wr.Write(w.buf.Bytes())
	if n > 0 {
		w.buf.Next(n)
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrWriteZero
	}
	return nil
}

// flushAll repeatedly writes the pending bytes to the underlying Writer
// until the buffer is empty. A write returning 0 with no error is fatal
// (ErrWriteZero); ErrWouldBlock is returned immediately, leaving whatever
// is still unwritten in the buffer for the next call.
func (w *BufWriter) flushAll() error {
	for w.buf.Len() > 0 {
		n, err := w.wr.Write(w.buf.Bytes())
		if n > 0 {
			w.buf.Next(n)
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrWriteZero
		}
	}
	return nil
}

// Flush drains the pending buffer to the underlying Writer and, if it
// implements Flusher, flushes that too.
func (w *BufWriter) Flush() error {
	if err := w.flushAll(); err != nil {
		return err
	}
	if f, ok := w.wr.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

// Shutdown flushes pending bytes, then shuts down the underlying Writer
// (via Shutdowner or io.Closer, whichever it implements).
func (w *BufWriter) Shutdown() error {
	if err := w.flushAll(); err != nil {
		return err
	}
	return shutdown(w.wr)
}

// Seek flushes pending bytes, then seeks the underlying Writer, which must
// implement io.Seeker.
func (w *BufWriter) Seek(offset int64, whence int) (int64, error) {
	if err := w.flushAll(); err != nil {
		return 0, err
	}
	seeker, ok := w.wr.(interface {
		Seek(int64, int) (int64, error)
	})
	if !ok {
		return 0, ErrSeekUnsupported
	}
	return seeker.Seek(offset, whence)
}
