// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"code.nbio.dev/stream/slicebuf"
)

// u32Decoder decodes fixed 4-byte big-endian unsigned integers, one frame
// per four bytes, used throughout the framed-read scenarios.
type u32Decoder struct{}

func (u32Decoder) Decode(buf *slicebuf.Buf) (uint32, bool, error) {
	if buf.Len() < 4 {
		return 0, false, nil
	}
	frame := buf.DrainTo(4)
	v := binary.BigEndian.Uint32(frame.Bytes())
	frame.Release()
	return v, true, nil
}

// scriptedReader replays a fixed sequence of (bytes, error) results, one
// per Read call, then returns io.EOF forever.
type scriptedReader struct {
	steps [][]byte
	errs  []error
	i     int
}

func (r *scriptedReader) Read(p []byte) (int, error) {
	if r.i >= len(r.steps) {
		return 0, io.EOF
	}
	data, err := r.steps[r.i], r.errs[r.i]
	r.i++
	n := copy(p, data)
	return n, err
}

func TestFramedReadPacketBoundaries(t *testing.T) {
	// S1
	rd := &scriptedReader{
		steps: [][]byte{{0, 0, 0, 0}, {0, 0, 0, 1}, {0, 0, 0, 2}},
		errs:  []error{nil, nil, nil},
	}
	fr := NewFramedRead[uint32](rd, u32Decoder{})
	want := []uint32{0, 1, 2}
	for _, w := range want {
		item, ok, err := fr.Poll()
		if err != nil {
			t.Fatalf("Poll: %v", err)
		}
		if !ok || item != w {
			t.Fatalf("Poll = (%v, %v), want (%v, true)", item, ok, w)
		}
	}
	item, ok, err := fr.Poll()
	if err != nil || ok {
		t.Fatalf("final Poll = (%v, %v, %v), want (0, false, nil)", item, ok, err)
	}
	// no double EOF
	item, ok, err = fr.Poll()
	if err != nil || ok {
		t.Fatalf("repeat Poll after EOF = (%v, %v, %v), want (0, false, nil)", item, ok, err)
	}
}

func TestFramedReadMultipleFramesPerPacket(t *testing.T) {
	// S2
	rd := &scriptedReader{
		steps: [][]byte{{0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 2}},
		errs:  []error{nil},
	}
	fr := NewFramedRead[uint32](rd, u32Decoder{})
	for _, w := range []uint32{0, 1, 2} {
		item, ok, err := fr.Poll()
		if err != nil || !ok || item != w {
			t.Fatalf("Poll = (%v, %v, %v), want (%v, true, nil)", item, ok, err, w)
		}
	}
	if _, ok, err := fr.Poll(); ok || err != nil {
		t.Fatalf("expected Ready(None)")
	}
}

func TestFramedReadPartialThenWouldBlock(t *testing.T) {
	// S3
	rd := &scriptedReader{
		steps: [][]byte{{0, 0}, nil, {0, 0, 0, 0, 0, 1, 0, 0, 0, 2}},
		errs:  []error{nil, ErrWouldBlock, nil},
	}
	fr := NewFramedRead[uint32](rd, u32Decoder{})

	if _, ok, err := fr.Poll(); ok || !errors.Is(err, ErrWouldBlock) {
		t.Fatalf("first Poll = (ok=%v, err=%v), want NotReady", ok, err)
	}
	for _, w := range []uint32{0, 1, 2} {
		item, ok, err := fr.Poll()
		if err != nil || !ok || item != w {
			t.Fatalf("Poll = (%v, %v, %v), want (%v, true, nil)", item, ok, err, w)
		}
	}
	if _, ok, err := fr.Poll(); ok || err != nil {
		t.Fatalf("expected Ready(None) after drain")
	}
}

func TestFramedReadDecodeEOFBytesRemaining(t *testing.T) {
	rd := &scriptedReader{
		steps: [][]byte{{0, 0, 1}}, // 3 bytes, never a full frame
		errs:  []error{io.EOF},
	}
	fr := NewFramedRead[uint32](rd, u32Decoder{})
	_, ok, err := fr.Poll()
	if ok || !errors.Is(err, ErrBytesRemaining) {
		t.Fatalf("Poll = (ok=%v, err=%v), want ErrBytesRemaining", ok, err)
	}
}

func TestFramedReadBufferedIntrospection(t *testing.T) {
	rd := &scriptedReader{steps: [][]byte{{0, 0}}, errs: []error{nil}}
	fr := NewFramedRead[uint32](rd, u32Decoder{})
	// The reader hits EOF after the 2-byte partial frame, which the decoder
	// declines, so Poll reports ErrBytesRemaining and leaves the bytes buffered.
	if _, ok, err := fr.Poll(); ok || !errors.Is(err, ErrBytesRemaining) {
		t.Fatalf("unexpected result draining incomplete frame")
	}
	if fr.Buffered() != 2 {
		t.Fatalf("Buffered() = %d, want 2", fr.Buffered())
	}
}
