/*
 * MIT License
 *
 * Copyright (c) 2026 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package wire

import "encoding/binary"

// Packet is a decoded (type, payload) pair. Payload is opaque to this package;
// callers interpret it according to Type.
type Packet struct {
	Type    Type
	Payload []byte
}

// Encode serializes a (type, payload) pair into its on-wire representation:
// 1 byte type, 4 bytes big-endian length, then the payload bytes. The returned
// slice is freshly allocated and safe for the caller to retain or mutate.
func Encode(t Type, payload []byte) []byte {
	buf := make([]byte, HeaderSize+len(payload))
	buf[0] = byte(t)
	binary.BigEndian.PutUint32(buf[1:5], uint32(len(payload)))
	copy(buf[5:], payload)
	return buf
}

// EncodeStreamData prefixes payload with the 4-byte big-endian stream id that
// every StreamData (and StreamOpen/StreamEnd/StreamError) packet carries as the
// first field of its payload, per §6: "Data payloads carry a stream-id prefix of
// 4 bytes big-endian, then handler-specific bytes".
func EncodeStreamData(id uint32, body []byte) []byte {
	out := make([]byte, 4+len(body))
	binary.BigEndian.PutUint32(out[0:4], id)
	copy(out[4:], body)
	return out
}

// SplitStreamPayload extracts the stream id prefix and the remaining
// handler-specific bytes from a stream-group packet's payload.
func SplitStreamPayload(payload []byte) (id uint32, body []byte, ok bool) {
	if len(payload) < 4 {
		return 0, nil, false
	}
	return binary.BigEndian.Uint32(payload[0:4]), payload[4:], true
}
