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
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/nabbar/wirebridge/flowctl"
	"github.com/nabbar/wirebridge/muxstream"
	"github.com/nabbar/wirebridge/termchan"
	"github.com/nabbar/wirebridge/wire"
	"github.com/nabbar/wirebridge/wire/meta"
	"github.com/nabbar/wirebridge/wireerr"
	"github.com/nabbar/wirebridge/wlog"
)

// Session is one Established connection: handshake state, the shared flow
// control windows, the stream table, and the Terminal Channel. Streams
// field is a *muxstream.Table; the zero value is never valid — build one
// with New.
type Session struct {
	id  uuid.UUID
	cfg Config
	log wlog.Logger

	conn   net.Conn
	framer *wire.Framer
	reader *packetReader

	writeMu sync.Mutex

	send *flowctl.SendWindow
	recv *flowctl.RecvWindow

	Streams  *muxstream.Table
	Terminal *termchan.Channel

	peerVersion uint16
	peerFlags   meta.Flags
	peerCwd     []byte

	pongCh  chan struct{}
	readyCh chan struct{}
}

// New builds a Session around conn. It does not perform the handshake or
// start the event loop — call Run for that.
func New(conn net.Conn, cfg Config) *Session {
	cfg = cfg.withDefaults()

	ceiling := wire.DefaultMaxPacketSize
	s := &Session{
		id:     uuid.New(),
		cfg:    cfg,
		conn:   conn,
		framer:  wire.NewFramer(uint32(ceiling)),
		pongCh:  make(chan struct{}, 1),
		readyCh: make(chan struct{}),
	}
	s.log = cfg.Logger.WithField("session_id", s.id.String())
	s.reader = newPacketReader(conn, s.framer)
	s.recv = flowctl.NewRecvWindow(flowctl.DefaultUpdateThreshold)
	return s
}

// ID returns this session's unique identifier, generated at construction.
func (s *Session) ID() uuid.UUID { return s.id }

// PeerCwd returns the working directory the peer advertised in Hello
// (acceptor side only; empty on the initiator side, which has no use for it).
func (s *Session) PeerCwd() []byte { return s.peerCwd }

// PeerFlags returns the negotiated flag set.
func (s *Session) PeerFlags() meta.Flags { return s.peerFlags }

// Ready closes once the handshake has completed and Streams/Terminal are
// safe to use; it never closes if Run fails before reaching that point, so
// callers should select on it alongside their own ctx or a Run-completion
// signal rather than waiting on it alone.
func (s *Session) Ready() <-chan struct{} { return s.readyCh }

// Send implements muxstream.Transport and termchan.Sender: it frames and
// writes payload to the connection, serialized against concurrent callers.
func (s *Session) Send(t wire.Type, payload []byte) error {
	return s.rawSend(t, payload)
}

func (s *Session) rawSend(t wire.Type, payload []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_, err := s.conn.Write(wire.Encode(t, payload))
	return err
}

// Close sends a best-effort Goodbye with the given reason/detail, then closes
// the underlying connection. Callers that want an orderly shutdown (the CLI
// entrypoints, on SIGINT) call this instead of reaching for conn.Close
// directly; Run's own goroutines unwind once the read loop observes EOF.
func (s *Session) Close(reason meta.GoodbyeReason, detail string) error {
	gerr := s.failGoodbye(reason, detail)
	cerr := s.conn.Close()
	if gerr != nil {
		return gerr
	}
	return cerr
}

// Run performs the handshake, then drives the session until the connection
// closes, a protocol error occurs, Goodbye is exchanged, or ctx is
// cancelled. It always attempts a best-effort Goodbye before returning, and
// aggregates every teardown-phase error (send failure, close failure, loop
// failure) into a single *multierror.Error so callers see the whole
// picture instead of just the first symptom.
func (s *Session) Run(ctx context.Context) error {
	if err := s.handshake(); err != nil {
		s.failGoodbye(meta.ReasonProtocolError, err.Error())
		_ = s.conn.Close()
		return err
	}

	s.Streams = muxstream.NewTable(s.cfg.MuxRole, s, s.send, s.recv, s.cfg.StreamHandler, s.cfg.Logger)
	s.Terminal = termchan.New(s, s.send)
	close(s.readyCh)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-gctx.Done()
		s.send.Close()
		return s.conn.Close()
	})
	g.Go(func() error { return s.readLoop() })
	g.Go(func() error { return s.keepaliveLoop(gctx) })

	runErr := g.Wait()

	var merr *multierror.Error
	if runErr != nil && runErr != context.Canceled {
		merr = multierror.Append(merr, runErr)
	}
	if gerr := s.failGoodbye(goodbyeReasonFor(runErr), goodbyeDetailFor(runErr)); gerr != nil {
		merr = multierror.Append(merr, gerr)
	}
	if cerr := s.conn.Close(); cerr != nil {
		merr = multierror.Append(merr, cerr)
	}

	return merr.ErrorOrNil()
}

func goodbyeReasonFor(err error) meta.GoodbyeReason {
	if err == nil {
		return meta.ReasonNormal
	}
	if _, ok := err.(*ErrProtocolError); ok {
		return meta.ReasonProtocolError
	}
	return meta.ReasonShutdown
}

func goodbyeDetailFor(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// failGoodbye makes a single best-effort attempt to send Goodbye; write
// failures here are expected once the peer has already hung up, so they are
// returned to the caller to fold into the teardown multierror rather than
// logged as alarming on their own.
func (s *Session) failGoodbye(reason meta.GoodbyeReason, detail string) error {
	body, err := meta.Goodbye{Reason: reason, Detail: detail}.Marshal()
	if err != nil {
		return nil
	}
	return s.rawSend(wire.TypeGoodbye, body)
}

func (s *Session) readLoop() error {
	for {
		pkt, err := s.reader.next()
		if err != nil {
			return err
		}
		if done, err := s.dispatch(pkt); err != nil {
			return err
		} else if done {
			return nil
		}
	}
}

// dispatch routes one decoded packet. The bool return reports whether the
// session should stop cleanly (a Goodbye was received).
func (s *Session) dispatch(pkt wire.Packet) (bool, error) {
	switch pkt.Type {
	case wire.TypePing:
		return false, s.rawSend(wire.TypePong, nil)

	case wire.TypePong:
		select {
		case s.pongCh <- struct{}{}:
		default:
		}
		return false, nil

	case wire.TypeGoodbye:
		return true, nil

	case wire.TypeHello, wire.TypeHelloAck:
		return false, &ErrProtocolError{Detail: fmt.Sprintf("unexpected %s after handshake", pkt.Type)}

	case wire.TypeTerminalInput:
		if s.cfg.TerminalHandler != nil {
			s.cfg.TerminalHandler.HandleInput(pkt.Payload)
		}
		return false, nil

	case wire.TypeTerminalOutput:
		if s.cfg.TerminalHandler != nil {
			s.cfg.TerminalHandler.HandleOutput(pkt.Payload)
		}
		return false, nil

	case wire.TypeTerminalResize:
		cols, rows, err := termchan.DecodeResize(pkt.Payload)
		if err != nil {
			return false, &ErrProtocolError{Detail: err.Error()}
		}
		if s.cfg.TerminalHandler != nil {
			s.cfg.TerminalHandler.HandleResize(cols, rows)
		}
		return false, nil

	case wire.TypeStreamOpen:
		return false, s.absorbStreamError(s.replyOpenRejection(pkt.Payload, s.Streams.HandleOpen(pkt.Payload)))

	case wire.TypeStreamData:
		return false, s.absorbStreamError(s.Streams.HandleData(pkt.Payload))

	case wire.TypeStreamEnd:
		return false, s.absorbStreamError(s.Streams.HandleEnd(pkt.Payload))

	case wire.TypeStreamError:
		return false, s.absorbStreamError(s.Streams.HandleError(pkt.Payload))

	case wire.TypeStreamCancel:
		return false, s.absorbStreamError(s.Streams.HandleCancel(pkt.Payload))

	case wire.TypeWindowUpdate:
		inc, err := wire.DecodeWindowUpdate(pkt.Payload)
		if err != nil {
			return false, &ErrProtocolError{Detail: err.Error()}
		}
		return false, s.send.Credit(inc)

	default:
		if pkt.Type.Reserved() {
			return false, nil
		}
		return false, &ErrProtocolError{Detail: fmt.Sprintf("unknown packet type %s", pkt.Type)}
	}
}

// replyOpenRejection emits a StreamError for the two HandleOpen failures that
// otherwise leave the peer's initiator waiting forever for a stream that will
// never open: a full table (NoResources) and a malformed/duplicate/wrong-
// parity Open (Invalid). Per §4.3 the receiver MUST reply on the offending
// id; every other error passes through unchanged for absorbStreamError.
func (s *Session) replyOpenRejection(payload []byte, err error) error {
	we, ok := err.(*wireerr.Error)
	if !ok || (we.Code != wireerr.Invalid && we.Code != wireerr.NoResources) {
		return err
	}
	id, _, ok := wire.SplitStreamPayload(payload)
	if !ok {
		return err
	}
	body, merr := meta.ErrorBody{Code: uint8(we.Code), Message: we.Message}.Marshal()
	if merr != nil {
		return err
	}
	if serr := s.rawSend(wire.TypeStreamError, wire.EncodeStreamData(id, body)); serr != nil {
		return serr
	}
	return err
}

// absorbStreamError downgrades a stream-local *wireerr.Error into a logged
// no-op: per §5's propagation policy, stream failures must never take down
// the connection. Anything else (a write failure on the underlying conn) is
// a connection-global failure and propagates.
func (s *Session) absorbStreamError(err error) error {
	if err == nil {
		return nil
	}
	if we, ok := err.(*wireerr.Error); ok {
		s.log.WithError(we).Debug("stream-local error absorbed")
		return nil
	}
	return err
}
