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

package meta

// Flags is the bitmask carried in Hello/HelloAck.
type Flags uint8

const (
	FlagSimpleMode Flags = 1 << iota
	FlagResume
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// Hello is the first packet the initiator must send on a new connection.
type Hello struct {
	Version uint16 `cbor:"1,keyasint"`
	Flags   Flags  `cbor:"2,keyasint"`
	Window  uint32 `cbor:"3,keyasint"`
	Cwd     []byte `cbor:"4,keyasint"`
}

func (h Hello) Marshal() ([]byte, error) { return marshal(h) }

func DecodeHello(b []byte) (Hello, error) {
	var h Hello
	err := unmarshal(b, &h)
	return h, err
}

// HelloAck is the acceptor's reply to Hello.
type HelloAck struct {
	Version uint16 `cbor:"1,keyasint"`
	Flags   Flags  `cbor:"2,keyasint"`
	Window  uint32 `cbor:"3,keyasint"`
}

func (h HelloAck) Marshal() ([]byte, error) { return marshal(h) }

func DecodeHelloAck(b []byte) (HelloAck, error) {
	var h HelloAck
	err := unmarshal(b, &h)
	return h, err
}

// GoodbyeReason classifies why a connection is closing.
type GoodbyeReason uint8

const (
	ReasonNormal GoodbyeReason = iota
	ReasonProtocolError
	ReasonIdleTimeout
	ReasonShutdown
)

func (r GoodbyeReason) String() string {
	switch r {
	case ReasonNormal:
		return "normal"
	case ReasonProtocolError:
		return "protocol-error"
	case ReasonIdleTimeout:
		return "idle-timeout"
	case ReasonShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Goodbye is sent, best-effort, before closing a connection.
type Goodbye struct {
	Reason GoodbyeReason `cbor:"1,keyasint"`
	Detail string        `cbor:"2,keyasint"`
}

func (g Goodbye) Marshal() ([]byte, error) { return marshal(g) }

func DecodeGoodbye(b []byte) (Goodbye, error) {
	var g Goodbye
	err := unmarshal(b, &g)
	return g, err
}
