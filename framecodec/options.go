// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framecodec

import "encoding/binary"

// Options configures a Codec's wire format.
type Options struct {
	ReadByteOrder  binary.ByteOrder
	WriteByteOrder binary.ByteOrder

	// ReadLimit caps the maximum allowed payload size in bytes. Zero means
	// no limit beyond the wire format's own 56-bit length ceiling.
	ReadLimit int
}

var defaultOptions = Options{
	ReadByteOrder:  binary.BigEndian,
	WriteByteOrder: binary.BigEndian,
	ReadLimit:      0,
}

// Option configures a Codec at construction time.
type Option func(*Options)

// WithByteOrder sets both the read and write length-prefix byte order.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(o *Options) {
		o.ReadByteOrder = order
		o.WriteByteOrder = order
	}
}

// WithReadByteOrder sets the byte order used to parse length prefixes.
func WithReadByteOrder(order binary.ByteOrder) Option {
	return func(o *Options) { o.ReadByteOrder = order }
}

// WithWriteByteOrder sets the byte order used to encode length prefixes.
func WithWriteByteOrder(order binary.ByteOrder) Option {
	return func(o *Options) { o.WriteByteOrder = order }
}

// WithReadLimit caps the maximum payload length Decode will accept.
func WithReadLimit(limit int) Option {
	return func(o *Options) { o.ReadLimit = limit }
}
