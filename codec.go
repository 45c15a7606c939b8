// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import "code.nbio.dev/stream/slicebuf"

// Decoder turns a growing byte buffer into a stream of typed items. A
// Decoder is owned by exactly one FramedRead (or Framed) at a time and may
// be stateful, e.g. a length-prefixed parser that carries a partial header
// across calls.
//
// Decode inspects buf. If a complete frame is present at the front of buf,
// Decode must drain exactly its bytes (buf.DrainTo) and return the decoded
// item with ok true. If more bytes are needed, Decode returns ok false
// without draining anything from buf. A non-nil error is fatal: the reader
// that owns this Decoder must not be polled further.
//
// Per the generic-error resolution of the historical open question (errors
// are the standard error type, not fixed to an I/O error type), Decoder
// composes freely with layered codecs.
type Decoder[Item any] interface {
	Decode(buf *slicebuf.Buf) (item Item, ok bool, err error)
}

// EOFDecoder is implemented by decoders that need custom behavior when the
// byte source reaches EOF while buf still holds bytes. FramedRead calls
// DecodeEOF at most once, only when the buffer is non-empty at EOF. A
// Decoder that does not implement EOFDecoder gets the default behavior: one
// more call to Decode, and ErrBytesRemaining if that declines.
type EOFDecoder[Item any] interface {
	Decoder[Item]
	DecodeEOF(buf *slicebuf.Buf) (item Item, err error)
}

// Encoder serializes items onto a growable byte buffer. Encode appends the
// wire form of item to dst; a non-nil error aborts the stream.
type Encoder[Item any] interface {
	Encode(item Item, dst []byte) ([]byte, error)
}
