// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package framecodec implements stream.Decoder[[]byte]/stream.Encoder[[]byte]
// for a length-prefixed wire format: one header byte carrying either the
// payload length directly (0-253) or a marker selecting a 16-bit or 56-bit
// extended length field. It is the concrete codec this module ships so the
// generic FramedRead/FramedWrite/Framed types have a first-party instance
// to pair with, the same wire format code.hybscloud.com/framer used when it
// drove raw io.Reader/io.Writer pairs directly.
//
// Unlike that ancestor, Codec never touches an io.Reader/io.Writer itself:
// Decode inspects and drains a *slicebuf.Buf that FramedRead already owns,
// and Encode appends to the byte slice FramedWrite already owns. All I/O,
// including handing ErrWouldBlock back to the caller, lives once, centrally,
// in FramedRead and FramedWrite, rather than being duplicated per codec.
package framecodec

import (
	"encoding/binary"

	"code.nbio.dev/stream/slicebuf"
)

const (
	headerLen   = 1
	maxLen8Bits = 1<<8 - 3
	maxLen16    = 1<<16 - 1
	maxLen56    = 1<<56 - 1
	ext16Marker = maxLen8Bits + 1
	ext56Marker = maxLen8Bits + 2
)

// Codec implements stream.Decoder[[]byte] and stream.Encoder[[]byte] for
// the length-prefixed wire format described above. The zero Codec is not
// valid; construct one with New.
type Codec struct {
	readByteOrder  binary.ByteOrder
	writeByteOrder binary.ByteOrder
	readLimit      int64
}

// New returns a Codec configured by opts.
func New(opts ...Option) *Codec {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	return &Codec{
		readByteOrder:  o.ReadByteOrder,
		writeByteOrder: o.WriteByteOrder,
		readLimit:      int64(o.ReadLimit),
	}
}

// Decode implements stream.Decoder[[]byte]. It never allocates until a
// whole frame is present, at which point it drains exactly the frame's
// bytes from buf and copies out the payload (buf's backing vector is
// reused by the next fill, so the payload cannot simply alias it past this
// call).
func (c *Codec) Decode(buf *slicebuf.Buf) (item []byte, ok bool, err error) {
	data := buf.Bytes()
	if len(data) < headerLen {
		return nil, false, nil
	}
	exLen := 0
	switch data[0] {
	case ext16Marker:
		exLen = 2
	case ext56Marker:
		exLen = 7
	}
	if len(data) < headerLen+exLen {
		return nil, false, nil
	}

	var length int64
	switch exLen {
	case 2:
		length = int64(c.readByteOrder.Uint16(data[headerLen : headerLen+exLen]))
	case 7:
		var tmp [8]byte
		copy(tmp[:], data[:headerLen+exLen])
		u64 := c.readByteOrder.Uint64(tmp[:])
		if c.readByteOrder == binary.LittleEndian {
			length = int64(u64 >> 8)
		} else {
			length = int64(u64 & maxLen56)
		}
	default:
		length = int64(data[0])
	}

	if length < 0 || length > maxLen56 {
		return nil, false, ErrTooLong
	}
	if c.readLimit > 0 && length > c.readLimit {
		return nil, false, ErrTooLong
	}

	total := headerLen + exLen + int(length)
	if len(data) < total {
		return nil, false, nil
	}

	frame := buf.DrainTo(total)
	payload := append([]byte(nil), frame.Bytes()[headerLen+exLen:]...)
	frame.Release()
	return payload, true, nil
}

// Encode implements stream.Encoder[[]byte], appending item's length-prefixed
// wire form to dst.
func (c *Codec) Encode(item []byte, dst []byte) ([]byte, error) {
	length := int64(len(item))
	if length > maxLen56 {
		return dst, ErrTooLong
	}

	switch {
	case length <= maxLen8Bits:
		dst = append(dst, byte(length))
	case length <= maxLen16:
		var b [2]byte
		c.writeByteOrder.PutUint16(b[:], uint16(length))
		dst = append(dst, ext16Marker)
		dst = append(dst, b[:]...)
	default:
		var b [8]byte
		if c.writeByteOrder == binary.LittleEndian {
			c.writeByteOrder.PutUint64(b[:], uint64(length)<<8)
		} else {
			c.writeByteOrder.PutUint64(b[:], uint64(length)&maxLen56)
		}
		b[0] = ext56Marker
		dst = append(dst, b[:]...)
	}
	return append(dst, item...), nil
}
