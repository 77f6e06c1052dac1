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

// Package meta encodes the structured sub-payloads that ride inside wire
// packets once the 5-byte packet header (and, for stream-group packets, the
// 4-byte stream-id prefix) has already been peeled off by package wire.
//
// The outer packet framing is deliberately not CBOR — it must stay readable
// from a minimal runtime with no CBOR decoder, per spec §1. Once a packet has
// been identified as carrying structured data (Hello, StreamOpen metadata, a
// Stat reply, a directory entry, a search hit, a StreamError message), that
// inner payload is CBOR, encoded with github.com/fxamacker/cbor/v2 — the same
// library the teacher's ioutils/multiplexer package uses for its own
// stream-message envelope. Exec output and raw Data chunks are never wrapped in
// CBOR; they are opaque bytes, because the whole point of StreamData for a
// bulk transfer is to avoid a per-chunk encoding tax.
package meta

import "github.com/fxamacker/cbor/v2"

func marshal(v interface{}) ([]byte, error) {
	return cbor.Marshal(v)
}

func unmarshal(b []byte, v interface{}) error {
	return cbor.Unmarshal(b, v)
}
