// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framecodec

import (
	"encoding/binary"

	"code.nbio.dev/stream/internal/bo"
)

// Network byte-order helpers, the one property of a transport this codec
// still needs to know about: network-named transports use network byte
// order (big-endian); local (same-machine) transports can use native byte
// order instead, since there is no interop concern. The ancestor of this
// package additionally varied whether message boundaries were preserved
// per transport (TCP vs UDP vs SCTP/WebSocket); that distinction now lives
// one layer up, in which Decoder a caller chooses to pair with FramedRead
// (this length-prefixed Codec vs. a pass-through one for already-bounded
// transports), not in this codec's own configuration.

// WithNetworkByteOrder configures both directions for big-endian
// length prefixes, the conventional choice for anything that may cross a
// machine boundary (TCP, UDP, Unix domain sockets used as a stand-in for a
// network protocol, SCTP, WebSocket).
func WithNetworkByteOrder() Option {
	return WithByteOrder(binary.BigEndian)
}

// WithNativeByteOrder configures both directions for this process's native
// byte order, appropriate only for transports confined to one machine
// (e.g. shared memory, a Unix domain socket used purely as a local IPC
// channel) where there is no risk of talking to a different architecture.
func WithNativeByteOrder() Option {
	return WithByteOrder(bo.Native())
}
