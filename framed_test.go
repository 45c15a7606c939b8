// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"code.nbio.dev/stream/slicebuf"
)

// loopback is a ReadWriter over two independent buffers, so a Framed can be
// driven end-to-end within a single test.
type loopback struct {
	in  *bytes.Buffer // what Read consumes
	out *bytes.Buffer // what Write produces
}

func (l *loopback) Read(p []byte) (int, error)  { return l.in.Read(p) }
func (l *loopback) Write(p []byte) (int, error) { return l.out.Write(p) }

type u32Codec struct{}

func (u32Codec) Decode(buf *slicebuf.Buf) (uint32, bool, error) {
	if buf.Len() < 4 {
		return 0, false, nil
	}
	frame := buf.DrainTo(4)
	v := binary.BigEndian.Uint32(frame.Bytes())
	frame.Release()
	return v, true, nil
}

func (u32Codec) Encode(item uint32, dst []byte) ([]byte, error) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], item)
	return append(dst, b[:]...), nil
}

func TestFramedDuplex(t *testing.T) {
	lb := &loopback{in: bytes.NewBuffer([]byte{0, 0, 0, 7}), out: &bytes.Buffer{}}
	fr := NewFramed[uint32](lb, u32Codec{})

	item, ok, err := fr.Poll()
	if err != nil || !ok || item != 7 {
		t.Fatalf("Poll = (%v, %v, %v), want (7, true, nil)", item, ok, err)
	}
	if _, ok, err := fr.Poll(); ok || err != nil {
		t.Fatalf("expected Ready(None) after drain, got ok=%v err=%v", ok, err)
	}

	if ok, err := fr.StartSend(99); err != nil || !ok {
		t.Fatalf("StartSend: (%v, %v)", ok, err)
	}
	if err := fr.PollComplete(); err != nil {
		t.Fatalf("PollComplete: %v", err)
	}
	if !bytes.Equal(lb.out.Bytes(), []byte{0, 0, 0, 99}) {
		t.Fatalf("output = %v", lb.out.Bytes())
	}

	if fr.Unwrap() != lb {
		t.Fatalf("Unwrap did not return the underlying ReadWriter")
	}
	if fr.Reader() == nil || fr.Writer() == nil {
		t.Fatalf("Reader()/Writer() returned nil")
	}
}

var _ io.ReadWriter = (*loopback)(nil)
