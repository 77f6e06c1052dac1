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

import (
	"encoding/binary"
	"fmt"
)

// ErrOversizedPacket is returned by Feed when a packet's declared length exceeds
// the Framer's configured ceiling. The connection must be failed with
// ProtocolError after this (optionally preceded by a best-effort Goodbye).
type ErrOversizedPacket struct {
	Declared uint32
	Ceiling  uint32
}

func (e *ErrOversizedPacket) Error() string {
	return fmt.Sprintf("wire: declared packet length %d exceeds ceiling %d", e.Declared, e.Ceiling)
}

// Framer incrementally reassembles packets from an arbitrarily segmented byte
// stream. It is the single source of truth for packet boundaries: callers feed
// raw bytes as they arrive off the socket and drain complete packets as they
// become available. Framer is not safe for concurrent use; each connection owns
// exactly one Framer, driven from its single event loop.
type Framer struct {
	ceiling uint32
	buf     []byte
	off     int // read cursor into buf; bytes before off are already consumed
}

// NewFramer returns a Framer that rejects any packet whose declared length
// exceeds ceiling. Per §3, ceiling should be in [1 MiB, 16 MiB], with the legacy
// endpoint using the smaller end of that range; NewFramer itself does not
// enforce the recommended range, only MaxPacketSizeCeiling as a hard cap.
func NewFramer(ceiling uint32) *Framer {
	if ceiling > MaxPacketSizeCeiling {
		ceiling = MaxPacketSizeCeiling
	}
	return &Framer{ceiling: ceiling}
}

// Feed appends newly received bytes and returns every packet that can be fully
// decoded from the accumulated buffer so far, in arrival order. It never blocks
// and never re-reads bytes already returned. A non-nil error means the
// connection must be failed (oversized packet); any packets returned alongside
// the error were fully valid and should still be dispatched before closing.
func (f *Framer) Feed(chunk []byte) ([]Packet, error) {
	if len(chunk) > 0 {
		f.buf = append(f.buf, chunk...)
	}

	var out []Packet
	for {
		if len(f.buf)-f.off < HeaderSize {
			break
		}

		hdr := f.buf[f.off : f.off+HeaderSize]
		t := Type(hdr[0])
		length := binary.BigEndian.Uint32(hdr[1:5])

		if length > f.ceiling {
			return out, &ErrOversizedPacket{Declared: length, Ceiling: f.ceiling}
		}

		total := HeaderSize + int(length)
		if len(f.buf)-f.off < total {
			break
		}

		payload := make([]byte, length)
		copy(payload, f.buf[f.off+HeaderSize:f.off+total])
		out = append(out, Packet{Type: t, Payload: payload})
		f.off += total
	}

	f.compact()
	return out, nil
}

// compact amortizes to O(1) per byte: once the consumed prefix grows past half
// the buffer (and is non-trivial in size), slide the unread tail down to index 0
// instead of letting the backing array grow without bound.
func (f *Framer) compact() {
	if f.off == 0 {
		return
	}
	if f.off == len(f.buf) {
		f.buf = f.buf[:0]
		f.off = 0
		return
	}
	if f.off < 4096 || f.off < len(f.buf)/2 {
		return
	}
	n := copy(f.buf, f.buf[f.off:])
	f.buf = f.buf[:n]
	f.off = 0
}

// Pending returns the number of unconsumed, not-yet-complete bytes currently
// buffered. Useful for diagnostics and tests; not part of the decode contract.
func (f *Framer) Pending() int {
	return len(f.buf) - f.off
}
