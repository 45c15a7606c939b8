// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import "code.hybscloud.com/iox"

// ByteSink consumes a sequence of readers, streaming each one in full into
// an underlying Writer before copying of the next one begins, preserving
// per-reader and per-sequence ordering.
//
// Each reader's bytes are copied with iox.CopyBufferPolicy under
// iox.ReturnPolicy{}: that policy never retries internally on
// ErrWouldBlock or ErrMore, so a single PollComplete call makes as much
// progress as the current reader/writer readiness allows and then returns,
// leaving the partially-drained reader at the head of the queue to resume
// on the next call — the reader's own Read cursor is ByteSink's only
// resumption state, so there is nothing else to save or restore between
// calls.
type ByteSink struct {
	wr    Writer
	buf   []byte
	queue []Reader
	depth int
}

// NewByteSink returns a ByteSink writing to wr, accepting up to queueDepth
// readers (at least 1) in its queue, counting the one currently draining. The
// original single-reader model is queueDepth 1; a deeper queue lets a
// producer enqueue several readers without busy-looping StartSend while
// the first one drains.
func NewByteSink(wr Writer, queueDepth int) *ByteSink {
	if queueDepth < 1 {
		queueDepth = 1
	}
	return &ByteSink{wr: wr, buf: make([]byte, DefaultBufSize), depth: queueDepth}
}

// QueueLen reports how many readers (including one in progress) are
// currently queued.
func (s *ByteSink) QueueLen() int {
	return len(s.queue)
}

// StartSend enqueues r. If the queue is already at its configured depth,
// one PollComplete pass is attempted to make room; if the queue is still
// full afterwards, StartSend reports ok=false and the caller retains
// ownership of r.
func (s *ByteSink) StartSend(r Reader) (ok bool, err error) {
	if len(s.queue) >= s.depth {
		if err := s.PollComplete(); err != nil && !IsWouldBlock(err) {
			return false, err
		}
		if len(s.queue) >= s.depth {
			return false, nil
		}
	}
	s.queue = append(s.queue, r)
	return true, nil
}

// PollComplete drains readers from the front of the queue in order. A
// reader is dropped once it has been copied to EOF; copying stops and
// PollComplete returns the first error encountered, which may be
// ErrWouldBlock or ErrMore (transient — retry later, the head-of-queue
// reader is unchanged) or a fatal underlying error. Once the queue is
// empty, the underlying Writer is flushed if it implements Flusher.
func (s *ByteSink) PollComplete() error {
	for len(s.queue) > 0 {
		r := s.queue[0]
		_, err := iox.CopyBufferPolicy(s.wr, r, s.buf, iox.ReturnPolicy{})
		if err != nil {
			return err
		}
		s.queue = s.queue[1:]
	}
	if fl, ok := s.wr.(Flusher); ok {
		return fl.Flush()
	}
	return nil
}

// Shutdown drains the queue via PollComplete, then shuts down the
// underlying Writer.
func (s *ByteSink) Shutdown() error {
	if err := s.PollComplete(); err != nil {
		return err
	}
	return shutdown(s.wr)
}
