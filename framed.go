// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import "io"

// ReadWriter is the underlying object a Framed wraps: something that is
// both a non-blocking Reader and a non-blocking Writer, such as a
// net.Conn.
type ReadWriter = io.ReadWriter

// Codec is both a Decoder and an Encoder for the same item type, the
// shape Framed requires since it drives both directions over one
// underlying object.
type Codec[Item any] interface {
	Decoder[Item]
	Encoder[Item]
}

// Framed fuses a FramedRead and a FramedWrite over a single underlying
// ReadWriter and a single Codec. The two halves share no mutable state;
// correctness of each follows independently from FramedRead and
// FramedWrite.
type Framed[Item any] struct {
	rw ReadWriter
	r  *FramedRead[Item]
	w  *FramedWrite[Item]
}

// NewFramed returns a Framed duplex over rw using codec for both
// directions.
func NewFramed[Item any](rw ReadWriter, codec Codec[Item]) *Framed[Item] {
	return &Framed[Item]{
		rw: rw,
		r:  NewFramedRead[Item](rw, codec),
		w:  NewFramedWrite[Item](rw, codec),
	}
}

// Poll drives the read half; see FramedRead.Poll.
func (f *Framed[Item]) Poll() (item Item, ok bool, err error) {
	return f.r.Poll()
}

// StartSend drives the write half; see FramedWrite.StartSend.
func (f *Framed[Item]) StartSend(item Item) (ok bool, err error) {
	return f.w.StartSend(item)
}

// PollComplete drives the write half; see FramedWrite.PollComplete.
func (f *Framed[Item]) PollComplete() error {
	return f.w.PollComplete()
}

// Shutdown drains and shuts down the write half.
func (f *Framed[Item]) Shutdown() error {
	return f.w.Shutdown()
}

// Reader returns the read half, for callers that want to drive it
// independently of the write half (e.g. on a separate goroutine reading
// while this one writes).
func (f *Framed[Item]) Reader() *FramedRead[Item] {
	return f.r
}

// Writer returns the write half.
func (f *Framed[Item]) Writer() *FramedWrite[Item] {
	return f.w
}

// Unwrap returns the underlying ReadWriter, for a caller that has
// finished with framing (e.g. after a protocol upgrade) and wants to take
// over raw I/O directly. Any bytes still sitting in either half's internal
// buffer are not returned to the caller and are lost.
func (f *Framed[Item]) Unwrap() ReadWriter {
	return f.rw
}

// Buffered reports the pending byte counts of the read and write halves.
func (f *Framed[Item]) Buffered() (read, write int) {
	return f.r.Buffered(), f.w.Buffered()
}
