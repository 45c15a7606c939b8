// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock is returned in place of blocking: the caller should retry
// once the underlying reader or writer becomes ready again. It is a
// re-export of iox's own sentinel so that callers already matching on it
// for iox-based transports can match this package's errors the same way.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrMore mirrors iox.ErrMore: returned by a vectored read/write to mean
// "partial progress made, caller must supply more buffer or retry the
// remainder", distinct from ErrWouldBlock which means no progress at all.
var ErrMore = iox.ErrMore

var (
	// ErrBytesRemaining is returned by FramedRead when the underlying
	// source reaches EOF with bytes still sitting in the buffer and the
	// decoder declines to turn them into a final item.
	ErrBytesRemaining = errors.New("stream: bytes remaining on stream")

	// ErrWriteZero is returned when an underlying Writer reports 0 bytes
	// written for a non-empty input without an accompanying error.
	ErrWriteZero = errors.New("stream: write returned 0 with non-empty input")

	// ErrClosed is the sentinel for use of a component after it has been
	// shut down. No component in this package returns it: BufWriter,
	// FramedWrite and ByteSink do not track whether Shutdown was called.
	ErrClosed = errors.New("stream: use of closed component")

	// ErrTooLong is returned when a frame length exceeds a configured or
	// wire-format limit.
	ErrTooLong = errors.New("stream: frame too long")

	// ErrInvalidArgument is the sentinel for nil or otherwise unusable
	// arguments. No constructor in this package returns it: they return no
	// error and raise out-of-range sizes to their minimum instead.
	ErrInvalidArgument = errors.New("stream: invalid argument")
)

// IsWouldBlock reports whether err is, or wraps, ErrWouldBlock.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}
