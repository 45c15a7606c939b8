// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framecodec

import "code.nbio.dev/stream"

// ErrTooLong reports that a frame's declared length exceeds the configured
// ReadLimit or the wire format's own 56-bit ceiling.
var ErrTooLong = stream.ErrTooLong
