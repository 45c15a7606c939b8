// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stream provides a non-blocking byte-stream framing toolkit: a
// buffered reader and writer that preserve byte-exactness across short
// reads/writes and seeks, a reference-counted slice buffer for zero-copy
// decoding (see the slicebuf subpackage), and a FramedRead/FramedWrite/Framed
// trio that turns a raw byte stream into a stream of typed items using a
// caller-supplied codec.
//
// Non-blocking here means the same thing it does for code.hybscloud.com/iox:
// a Read or Write may return ErrWouldBlock instead of blocking, and the
// caller is expected to retry once the underlying object is ready again. Not
// one component in this package loops on ErrWouldBlock internally; that is
// the embedder's job, driven by whatever event loop schedules its tasks.
package stream
