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
	"fmt"
	"time"

	"github.com/hashicorp/go-version"

	"github.com/nabbar/wirebridge/flowctl"
	"github.com/nabbar/wirebridge/wire"
	"github.com/nabbar/wirebridge/wire/meta"
)

// ErrProtocolError marks a handshake (or later dispatch) failure that
// requires a best-effort Goodbye(ProtocolError) before closing, per §5's
// propagation policy for connection-global failures.
type ErrProtocolError struct {
	Detail string
}

func (e *ErrProtocolError) Error() string { return "session: protocol error: " + e.Detail }

// handshake performs the Hello/HelloAck exchange and populates s.send from
// the peer's advertised window (s.recv is already built by New). The first packet on a connection MUST be
// Hello (from the initiator); anything else is a protocol error (§4.5).
func (s *Session) handshake() error {
	deadline := time.Now().Add(s.cfg.HandshakeTimeout)
	_ = s.conn.SetReadDeadline(deadline)
	defer s.conn.SetReadDeadline(time.Time{})

	if s.cfg.Role == RoleInitiator {
		hello := meta.Hello{Version: ProtocolVersion, Flags: s.cfg.Flags, Window: s.cfg.Window, Cwd: []byte(s.cfg.Cwd)}
		body, err := hello.Marshal()
		if err != nil {
			return err
		}
		if err := s.rawSend(wire.TypeHello, body); err != nil {
			return err
		}

		pkt, err := s.reader.next()
		if err != nil {
			return err
		}
		if pkt.Type != wire.TypeHelloAck {
			return &ErrProtocolError{Detail: fmt.Sprintf("expected HelloAck, got %s", pkt.Type)}
		}
		ack, err := meta.DecodeHelloAck(pkt.Payload)
		if err != nil {
			return &ErrProtocolError{Detail: "malformed HelloAck: " + err.Error()}
		}
		if err := s.negotiate(ack.Version, ack.Flags, ack.Window, nil); err != nil {
			return err
		}
		return nil
	}

	pkt, err := s.reader.next()
	if err != nil {
		return err
	}
	if pkt.Type != wire.TypeHello {
		return &ErrProtocolError{Detail: fmt.Sprintf("expected Hello, got %s", pkt.Type)}
	}
	hello, err := meta.DecodeHello(pkt.Payload)
	if err != nil {
		return &ErrProtocolError{Detail: "malformed Hello: " + err.Error()}
	}
	if err := s.negotiate(hello.Version, hello.Flags, hello.Window, hello.Cwd); err != nil {
		return err
	}

	ack := meta.HelloAck{Version: ProtocolVersion, Flags: s.cfg.Flags, Window: s.cfg.Window}
	body, err := ack.Marshal()
	if err != nil {
		return err
	}
	return s.rawSend(wire.TypeHelloAck, body)
}

// negotiate validates the peer's advertised version/window and stores the
// resulting state: our SendWindow budget toward them, their working
// directory (acceptor side only), and the agreed flags.
func (s *Session) negotiate(peerVersion uint16, peerFlags meta.Flags, peerWindow uint32, peerCwd []byte) error {
	pv, err := version.NewVersion(fmt.Sprintf("%d.0.0", peerVersion))
	if err != nil {
		return &ErrProtocolError{Detail: "unparseable peer version"}
	}
	if pv.LessThan(minSupportedVersion) {
		return &ErrProtocolError{Detail: fmt.Sprintf("unsupported protocol version %d", peerVersion)}
	}
	if !flowctl.ValidAdvertisedWindow(peerWindow) {
		return &ErrProtocolError{Detail: fmt.Sprintf("peer advertised window %d out of range", peerWindow)}
	}

	s.peerVersion = peerVersion
	s.peerFlags = peerFlags
	s.peerCwd = peerCwd
	s.send = flowctl.NewSendWindow(peerWindow)
	return nil
}
