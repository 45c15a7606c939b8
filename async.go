// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import "io"

// Reader is the non-blocking byte-source contract the rest of this package
// is built on: a Read that would otherwise block instead returns (0,
// ErrWouldBlock), and any other error is fatal. End-of-file is reported as
// io.EOF, as for any io.Reader; 0 bytes with a nil error is not end-of-file
// (BufReader passes it through, FramedRead reports io.ErrNoProgress).
//
// This is deliberately the stdlib io.Reader type, not a new interface: every
// component in this package accepts a plain io.Reader, and treats
// ErrWouldBlock from it as "not ready" rather than failure. There is no
// separate poll_read: the blocking-style call itself is the readiness
// check, same as code.hybscloud.com/iox's own contract.
type Reader = io.Reader

// Writer is the dual of Reader: Write returns ErrWouldBlock instead of
// blocking; 0 bytes written for non-empty input without an error is a
// violation of this contract and surfaces as ErrWriteZero further up.
type Writer = io.Writer

// Shutdowner is implemented by writers that support a clean, flush-then-
// terminate sequence distinct from a bare Close. BufWriter.Shutdown and
// FramedWrite.Shutdown both drain pending bytes before calling through.
type Shutdowner interface {
	Shutdown() error
}

// shutdown calls w.Shutdown if it implements Shutdowner, otherwise falls
// back to io.Closer, otherwise does nothing. Used by components that sit on
// top of an arbitrary underlying writer and need "close it as cleanly as
// this writer supports" without requiring every caller to supply both.
func shutdown(w Writer) error {
	if s, ok := w.(Shutdowner); ok {
		return s.Shutdown()
	}
	if c, ok := w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
