// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"io"

	"code.nbio.dev/stream/slicebuf"
)

// framedReadGrowBy is how many bytes FramedRead asks the underlying Reader
// for on each refill once the decoder has declined the current buffer
// contents. It is also, incidentally, the same 8 KiB the rest of this
// package uses as its default buffer size.
const framedReadGrowBy = DefaultBufSize

// FramedRead turns a byte stream into a stream of typed items using dec,
// driving dec to a fixed point against the buffered bytes before asking the
// underlying Reader for more (see Poll).
type FramedRead[Item any] struct {
	rd  Reader
	dec Decoder[Item]
	buf slicebuf.Buf

	eof      bool
	readable bool
	done     bool
	doneErr  error
}

// NewFramedRead returns a FramedRead reading from rd and decoding with dec.
func NewFramedRead[Item any](rd Reader, dec Decoder[Item]) *FramedRead[Item] {
	return &FramedRead[Item]{rd: rd, dec: dec, buf: slicebuf.New()}
}

// Buffered reports the number of bytes currently sitting in the read
// buffer, not yet consumed by the decoder.
func (f *FramedRead[Item]) Buffered() int {
	return f.buf.Len()
}

// Poll drives one step of the decode loop. It returns (item, true, nil) for
// a decoded frame, (zero, false, nil) for end-of-stream (which, once
// returned, is returned on every subsequent call: no double EOF), or
// (zero, false, err) for ErrWouldBlock (not ready, retry later) or any
// fatal decode/I/O error (the FramedRead must not be polled again).
func (f *FramedRead[Item]) Poll() (item Item, ok bool, err error) {
	var zero Item
	if f.done {
		return zero, false, f.doneErr
	}
	for {
		if f.readable {
			if f.eof {
				if f.buf.Len() == 0 {
					f.done = true
					return zero, false, nil
				}
				it, derr := f.decodeEOF()
				f.done = true
				f.doneErr = derr
				if derr != nil {
					return zero, false, derr
				}
				return it, true, nil
			}
			it, got, derr := f.dec.Decode(&f.buf)
			if derr != nil {
				f.done = true
				f.doneErr = derr
				return zero, false, derr
			}
			if got {
				return it, true, nil
			}
			f.readable = false
		}
		if ferr := f.fill(); ferr != nil {
			return zero, false, ferr
		}
	}
}

// decodeEOF implements the default "call decode, fail with ErrBytesRemaining
// if it declines" behavior, unless dec implements EOFDecoder itself.
func (f *FramedRead[Item]) decodeEOF() (Item, error) {
	var zero Item
	if eofDec, ok := f.dec.(EOFDecoder[Item]); ok {
		return eofDec.DecodeEOF(&f.buf)
	}
	item, got, err := f.dec.Decode(&f.buf)
	if err != nil {
		return zero, err
	}
	if !got {
		return zero, ErrBytesRemaining
	}
	return item, nil
}

// fill reserves at least one byte of buffer capacity and reads into it,
// distinguishing "no progress, not ready" (ErrWouldBlock propagated
// unchanged) from "0 bytes, clean EOF" from a fatal I/O error.
func (f *FramedRead[Item]) fill() error {
	mut := f.buf.GetMut()
	before := mut.Len()
	region := mut.Grow(framedReadGrowBy)
	n, err := f.rd.Read(region)
	mut.Truncate(before + n)
	mut.Commit()

	if n == 0 {
		switch err {
		case nil:
			return io.ErrNoProgress
		case io.EOF:
			f.eof = true
			f.readable = true
			return nil
		default:
			return err
		}
	}
	f.readable = true
	if err == io.EOF {
		f.eof = true
		return nil
	}
	return err
}
