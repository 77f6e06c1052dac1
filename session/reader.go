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

package session

import (
	"net"

	"github.com/nabbar/wirebridge/wire"
)

// packetReader turns a net.Conn into a sequence of decoded wire.Packet,
// buffering however many a single Feed call yields so handshake code and the
// main dispatch loop can share the exact same pull-one-at-a-time interface.
type packetReader struct {
	conn   net.Conn
	framer *wire.Framer
	buf    []byte
	queue  []wire.Packet

	// pendingErr holds a framing error discovered mid-drain, surfaced only
	// once every packet that arrived alongside it has been delivered.
	pendingErr error
}

func newPacketReader(conn net.Conn, framer *wire.Framer) *packetReader {
	return &packetReader{conn: conn, framer: framer, buf: make([]byte, 64*1024)}
}

// next returns the next decoded packet, reading from the connection as
// needed. It returns io.EOF (or a net error) when the connection is gone, and
// an *wire.ErrOversizedPacket once every packet that arrived alongside it has
// been drained.
func (r *packetReader) next() (wire.Packet, error) {
	for len(r.queue) == 0 {
		if r.pendingErr != nil {
			err := r.pendingErr
			r.pendingErr = nil
			return wire.Packet{}, err
		}

		n, err := r.conn.Read(r.buf)
		if n > 0 {
			pkts, ferr := r.framer.Feed(r.buf[:n])
			r.queue = append(r.queue, pkts...)
			r.pendingErr = ferr
		}
		if err != nil && len(r.queue) == 0 {
			return wire.Packet{}, err
		}
	}

	pkt := r.queue[0]
	r.queue = r.queue[1:]
	return pkt, nil
}
