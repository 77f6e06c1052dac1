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

package muxstream

import (
	"context"
	"fmt"
	"sync"

	"github.com/nabbar/wirebridge/wire"
	"github.com/nabbar/wirebridge/wire/meta"
	"github.com/nabbar/wirebridge/wireerr"
)

// EventKind discriminates the inbound notifications a Stream delivers to its
// handler goroutine.
type EventKind uint8

const (
	EventData EventKind = iota
	EventEnd
	EventError
	EventCancel
)

// Event is a single inbound occurrence on a Stream, queued in arrival order.
type Event struct {
	Kind EventKind
	Data []byte
	End  meta.EndBody
	Err  meta.ErrorBody
}

// eventQueueDepth bounds how many undelivered inbound events a stream may
// buffer before the read loop blocks delivering to it; a slow handler applies
// backpressure to the whole connection, which is the point — nothing here
// discards data silently.
const eventQueueDepth = 64

// Stream is one multiplexed logical operation, in the lifecycle of §4.3. All
// exported methods are safe for concurrent use; the handler goroutine reads
// Events() while any number of writers may call WriteData/WriteEnd/WriteError
// (though in practice exactly one owner drives the local side).
type Stream struct {
	id   uint32
	kind meta.OpKind
	tbl  *Table

	mu    sync.Mutex
	state State

	events    chan Event
	closeOnce sync.Once
	done      chan struct{}
}

// ID returns the stream's wire identifier.
func (s *Stream) ID() uint32 { return s.id }

// Kind returns the operation this stream carries.
func (s *Stream) Kind() meta.OpKind { return s.kind }

// State returns the stream's current lifecycle position.
func (s *Stream) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Events returns the channel of inbound occurrences for this stream. It is
// never closed; once the stream reaches Closed, use Done to stop reading
// rather than waiting on a close of this channel.
func (s *Stream) Events() <-chan Event { return s.events }

// Done is closed exactly when the stream reaches Closed, regardless of which
// side or which event caused the transition.
func (s *Stream) Done() <-chan struct{} { return s.done }

// WriteData reserves connection-level send credit for body and emits it as a
// StreamData packet. It blocks until credit is available or ctx is done.
func (s *Stream) WriteData(ctx context.Context, body []byte) error {
	s.mu.Lock()
	ok := dataAllowedLocal(s.state)
	s.mu.Unlock()
	if !ok {
		return wireerr.Newf(wireerr.Invalid, "stream %d: data not permitted in state %s", s.id, s.State())
	}

	if err := s.tbl.send.Reserve(ctx, uint32(len(body))); err != nil {
		return err
	}
	return s.tbl.transport.Send(wire.TypeStreamData, wire.EncodeStreamData(s.id, body))
}

// WriteEnd sends a StreamEnd with the given status and trailer, advancing the
// local half of the state machine (closing the stream outright if the remote
// half was already half-closed).
func (s *Stream) WriteEnd(status meta.EndStatus, trailer []byte) error {
	s.mu.Lock()
	next := localEnd(s.state)
	s.state = next
	s.mu.Unlock()

	body, err := meta.EndBody{Status: status, Trailer: trailer}.Marshal()
	if err != nil {
		return err
	}
	if err := s.tbl.transport.Send(wire.TypeStreamEnd, wire.EncodeStreamData(s.id, body)); err != nil {
		return err
	}
	if next == StateClosed {
		s.tbl.release(s.id)
		s.closeDone()
	}
	return nil
}

// WriteError sends a StreamError and unconditionally closes the stream: per
// §4.3, Error collapses to Closed from any state.
func (s *Stream) WriteError(code wireerr.Code, message string) error {
	s.mu.Lock()
	s.state = StateClosed
	s.mu.Unlock()

	body, err := meta.ErrorBody{Code: uint8(code), Message: message}.Marshal()
	if err != nil {
		return err
	}
	if err := s.tbl.transport.Send(wire.TypeStreamError, wire.EncodeStreamData(s.id, body)); err != nil {
		return err
	}
	s.tbl.release(s.id)
	s.closeDone()
	return nil
}

// Cancel sends a StreamCancel and closes the stream locally, per §4.4's
// cancellation contract: the initiator may abandon a stream before it
// reaches a terminal End/Error.
func (s *Stream) Cancel() error {
	s.mu.Lock()
	s.state = StateClosed
	s.mu.Unlock()

	if err := s.tbl.transport.Send(wire.TypeStreamCancel, wire.EncodeStreamData(s.id, nil)); err != nil {
		return err
	}
	s.tbl.release(s.id)
	s.closeDone()
	return nil
}

// deliver pushes an inbound event, applying the corresponding state
// transition first. Called only from the Table's single read-dispatch path.
func (s *Stream) deliver(ev Event) {
	s.mu.Lock()
	switch ev.Kind {
	case EventEnd:
		s.state = remoteEnd(s.state)
	case EventError, EventCancel:
		s.state = StateClosed
	}
	closed := s.state == StateClosed
	s.mu.Unlock()

	select {
	case s.events <- ev:
	case <-s.done:
	}

	if closed {
		s.closeDone()
	}
}

// closeDone closes s.done exactly once, however the stream reached Closed:
// locally (WriteEnd/WriteError/Cancel) or remotely (deliver).
func (s *Stream) closeDone() {
	s.closeOnce.Do(func() { close(s.done) })
}

func newStream(id uint32, kind meta.OpKind, tbl *Table) *Stream {
	return &Stream{
		id:     id,
		kind:   kind,
		tbl:    tbl,
		state:  StateOpen,
		events: make(chan Event, eventQueueDepth),
		done:   make(chan struct{}),
	}
}

// ErrStreamNotFound describes a Data/End/Error/Cancel packet that names an id
// the table has no record of — typically a race between a local Cancel and an
// in-flight packet from the peer. Table does not return it: such packets are
// logged at debug level and ignored.
type ErrStreamNotFound struct{ ID uint32 }

func (e *ErrStreamNotFound) Error() string {
	return fmt.Sprintf("muxstream: no stream with id %d", e.ID)
}
