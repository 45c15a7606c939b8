// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"bytes"
	"io"
	"testing"
)

func TestByteSinkOrdering(t *testing.T) {
	var out bytes.Buffer
	sink := NewByteSink(&out, 4)

	for _, s := range []string{"abc", "def", "ghi"} {
		ok, err := sink.StartSend(bytes.NewBufferString(s))
		if err != nil || !ok {
			t.Fatalf("StartSend(%q) = (%v, %v)", s, ok, err)
		}
	}
	if err := sink.PollComplete(); err != nil {
		t.Fatalf("PollComplete: %v", err)
	}
	if out.String() != "abcdefghi" {
		t.Fatalf("out = %q, want %q", out.String(), "abcdefghi")
	}
	if sink.QueueLen() != 0 {
		t.Fatalf("QueueLen() = %d, want 0", sink.QueueLen())
	}
}

// stallingReader yields a fixed schedule of (chunk, err) Read results, one
// per call, letting a test simulate a mid-stream ErrWouldBlock.
type stallingReader struct {
	chunks [][]byte
	errs   []error
	i      int
}

func (r *stallingReader) Read(p []byte) (int, error) {
	if r.i >= len(r.errs) {
		return 0, io.EOF
	}
	chunk, err := r.chunks[r.i], r.errs[r.i]
	n := copy(p, chunk)
	r.i++
	return n, err
}

func TestByteSinkResumesAfterWouldBlock(t *testing.T) {
	var out bytes.Buffer
	sink := NewByteSink(&out, 1)

	r := &stallingReader{
		chunks: [][]byte{[]byte("hello"), nil, []byte("world"), nil},
		errs:   []error{nil, ErrWouldBlock, nil, io.EOF},
	}
	ok, err := sink.StartSend(r)
	if err != nil || !ok {
		t.Fatalf("StartSend: (%v, %v)", ok, err)
	}

	if err := sink.PollComplete(); err != ErrWouldBlock {
		t.Fatalf("first PollComplete = %v, want ErrWouldBlock", err)
	}
	if sink.QueueLen() != 1 {
		t.Fatalf("reader dropped from queue on transient error")
	}
	if err := sink.PollComplete(); err != nil {
		t.Fatalf("second PollComplete: %v", err)
	}
	if out.String() != "helloworld" {
		t.Fatalf("out = %q, want %q", out.String(), "helloworld")
	}
	if sink.QueueLen() != 0 {
		t.Fatalf("reader not dropped after completing")
	}
}

func TestByteSinkQueueDepth(t *testing.T) {
	blocked := &wouldBlockWriter{blocked: true}
	sink := NewByteSink(blocked, 1)

	ok, err := sink.StartSend(bytes.NewBufferString("a"))
	if err != nil || !ok {
		t.Fatalf("first StartSend = (%v, %v)", ok, err)
	}
	ok, err = sink.StartSend(bytes.NewBufferString("b"))
	if err != nil {
		t.Fatalf("second StartSend returned error: %v", err)
	}
	if ok {
		t.Fatalf("second StartSend accepted while queue at depth and writer blocked")
	}
}
