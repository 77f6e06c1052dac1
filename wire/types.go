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

import "fmt"

// Type is the one-byte packet type discriminant. The assigned low range (0x00-0x3F)
// is a closed enumeration; an unrecognized code in that range is a protocol error.
// The high range (0x40-0xFF) is reserved for forward extension and MUST be silently
// ignored by a receiver that doesn't recognize a specific code in it.
type Type byte

const (
	// Control group: handshake and liveness.
	TypeHello     Type = 0x00
	TypeHelloAck  Type = 0x01
	TypePing      Type = 0x02
	TypePong      Type = 0x03
	TypeGoodbye   Type = 0x04

	// Terminal group: the distinguished unmultiplexed channel.
	TypeTerminalInput  Type = 0x10
	TypeTerminalOutput Type = 0x11
	TypeTerminalResize Type = 0x12

	// Stream group: multiplexed operations.
	TypeStreamOpen   Type = 0x20
	TypeStreamData   Type = 0x21
	TypeStreamEnd    Type = 0x22
	TypeStreamError  Type = 0x23
	TypeStreamCancel Type = 0x24

	// Flow group: credit replenishment.
	TypeWindowUpdate Type = 0x30

	// reservedLowMax is the last type code in the assigned low range. Anything at
	// or below this value that isn't one of the constants above is a protocol
	// error; anything above it is reserved and must be ignored.
	reservedLowMax Type = 0x3F
)

// KnownLow reports whether t is one of the assigned low-range type codes.
func (t Type) KnownLow() bool {
	switch t {
	case TypeHello, TypeHelloAck, TypePing, TypePong, TypeGoodbye,
		TypeTerminalInput, TypeTerminalOutput, TypeTerminalResize,
		TypeStreamOpen, TypeStreamData, TypeStreamEnd, TypeStreamError, TypeStreamCancel,
		TypeWindowUpdate:
		return true
	default:
		return false
	}
}

// Reserved reports whether t falls in the high range that unknown receivers must
// silently ignore rather than treat as a protocol error.
func (t Type) Reserved() bool {
	return t > reservedLowMax
}

func (t Type) String() string {
	switch t {
	case TypeHello:
		return "Hello"
	case TypeHelloAck:
		return "HelloAck"
	case TypePing:
		return "Ping"
	case TypePong:
		return "Pong"
	case TypeGoodbye:
		return "Goodbye"
	case TypeTerminalInput:
		return "TerminalInput"
	case TypeTerminalOutput:
		return "TerminalOutput"
	case TypeTerminalResize:
		return "TerminalResize"
	case TypeStreamOpen:
		return "StreamOpen"
	case TypeStreamData:
		return "StreamData"
	case TypeStreamEnd:
		return "StreamEnd"
	case TypeStreamError:
		return "StreamError"
	case TypeStreamCancel:
		return "StreamCancel"
	case TypeWindowUpdate:
		return "WindowUpdate"
	default:
		if t.Reserved() {
			return fmt.Sprintf("Reserved(0x%02x)", byte(t))
		}
		return fmt.Sprintf("Unknown(0x%02x)", byte(t))
	}
}

const (
	// HeaderSize is the fixed on-wire header: 1 byte type + 4 bytes length.
	HeaderSize = 5

	// DefaultMaxPacketSize is the recommended packet size ceiling for the
	// relay-side endpoint (§3: "recommended 1 MiB to 16 MiB").
	DefaultMaxPacketSize = 4 * 1024 * 1024

	// DefaultLegacyMaxPacketSize is the smaller ceiling the legacy endpoint
	// SHOULD use, per §3.
	DefaultLegacyMaxPacketSize = 1024 * 1024

	// MaxPacketSizeCeiling is the hard upper bound any implementation-configured
	// ceiling must not exceed.
	MaxPacketSizeCeiling = 16 * 1024 * 1024

	// MaxPathLength is the resource cap from §5: path strings over this length
	// are rejected as Invalid.
	MaxPathLength = 4096
)
