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
	"sync"

	"github.com/nabbar/wirebridge/flowctl"
	"github.com/nabbar/wirebridge/wire"
	"github.com/nabbar/wirebridge/wire/meta"
	"github.com/nabbar/wirebridge/wireerr"
	"github.com/nabbar/wirebridge/wlog"
)

// MaxConcurrentStreams is the per-connection cap of §4.3: opening a 257th
// stream, locally or from the peer, is refused with NoResources.
const MaxConcurrentStreams = 256

// Transport is the narrow sink a Table writes encoded packets to. A *session
// implements this over the underlying connection's Framer.
type Transport interface {
	Send(t wire.Type, payload []byte) error
}

// Handler is notified of every stream the peer opens. It runs in its own
// goroutine per stream so a slow handler for one operation never blocks
// dispatch of packets belonging to others.
type Handler interface {
	HandleStream(s *Stream, body meta.OpenBody)
}

// Table is the per-connection stream multiplexer: id allocation, the 256-
// stream cap, and dispatch of inbound stream-group packets to the Stream
// they belong to.
type Table struct {
	role Role

	transport Transport
	send      *flowctl.SendWindow
	recv      *flowctl.RecvWindow
	handler   Handler
	log       wlog.Logger

	mu      sync.Mutex
	streams map[uint32]*Stream
	nextID  uint32
}

// NewTable constructs a Table. send/recv are the connection's shared flow
// control windows (see package flowctl) — streams never get their own.
func NewTable(role Role, transport Transport, send *flowctl.SendWindow, recv *flowctl.RecvWindow, handler Handler, log wlog.Logger) *Table {
	first := uint32(2)
	if role == RoleLegacy {
		first = 1
	}
	if log == nil {
		log = wlog.Discard()
	}
	return &Table{
		role:      role,
		transport: transport,
		send:      send,
		recv:      recv,
		handler:   handler,
		log:       log,
		streams:   make(map[uint32]*Stream),
		nextID:    first,
	}
}

// Count reports the number of streams currently tracked, for tests and
// diagnostics.
func (t *Table) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.streams)
}

// Open allocates a new locally-initiated stream, sends its StreamOpen packet,
// and returns it ready for WriteData/WriteEnd. Returns a NoResources
// wireerr.Error if the connection is already at MaxConcurrentStreams.
func (t *Table) Open(ctx context.Context, kind meta.OpKind, metadata interface{}) (*Stream, error) {
	t.mu.Lock()
	if len(t.streams) >= MaxConcurrentStreams {
		t.mu.Unlock()
		return nil, wireerr.New(wireerr.NoResources)
	}
	id := t.nextID
	t.nextID += 2
	s := newStream(id, kind, t)
	t.streams[id] = s
	t.mu.Unlock()

	body, err := meta.EncodeOpenBody(kind, metadata)
	if err != nil {
		t.release(id)
		return nil, err
	}
	if err := t.transport.Send(wire.TypeStreamOpen, wire.EncodeStreamData(id, body)); err != nil {
		t.release(id)
		return nil, err
	}
	return s, nil
}

// localParity reports whether id falls in this Table's own allocation
// parity (the parity it assigns to locally-initiated streams).
func (t *Table) localParity(id uint32) bool {
	if t.role == RoleRelay {
		return id%2 == 0
	}
	return id%2 == 1
}

// HandleOpen processes an inbound StreamOpen packet.
func (t *Table) HandleOpen(payload []byte) error {
	id, body, ok := wire.SplitStreamPayload(payload)
	if !ok {
		return wireerr.New(wireerr.Invalid)
	}
	if t.localParity(id) {
		// The peer used an id from our own allocation range: a protocol
		// violation, not a valid remote-initiated stream.
		return wireerr.Newf(wireerr.Invalid, "stream %d: wrong id parity for remote-initiated open", id)
	}

	open, err := meta.DecodeOpenBody(body)
	if err != nil {
		return wireerr.Wrap(err)
	}
	if !open.Kind.Valid() {
		return wireerr.Newf(wireerr.Invalid, "stream %d: unknown operation kind %d", id, open.Kind)
	}

	t.mu.Lock()
	if _, exists := t.streams[id]; exists {
		t.mu.Unlock()
		return wireerr.Newf(wireerr.Invalid, "stream %d: duplicate open", id)
	}
	if len(t.streams) >= MaxConcurrentStreams {
		t.mu.Unlock()
		return wireerr.New(wireerr.NoResources)
	}
	s := newStream(id, open.Kind, t)
	t.streams[id] = s
	t.mu.Unlock()

	if t.handler != nil {
		go t.handler.HandleStream(s, open)
	}
	return nil
}

// HandleData processes an inbound StreamData packet: accounts the bytes
// against the shared receive window and delivers the chunk to its stream.
func (t *Table) HandleData(payload []byte) error {
	id, body, ok := wire.SplitStreamPayload(payload)
	if !ok {
		return wireerr.New(wireerr.Invalid)
	}

	s := t.lookup(id)
	if s == nil {
		t.log.WithField("stream", id).Debug("data for unknown stream, ignoring")
		return nil
	}
	if !dataAllowedRemote(s.State()) {
		return wireerr.Newf(wireerr.Invalid, "stream %d: data not permitted in state %s", id, s.State())
	}

	if inc := t.recv.Accumulate(uint32(len(body))); inc > 0 {
		if err := t.transport.Send(wire.TypeWindowUpdate, wire.EncodeWindowUpdate(inc)); err != nil {
			return err
		}
	}

	s.deliver(Event{Kind: EventData, Data: body})
	return nil
}

// HandleEnd processes an inbound StreamEnd packet.
func (t *Table) HandleEnd(payload []byte) error {
	id, body, ok := wire.SplitStreamPayload(payload)
	if !ok {
		return wireerr.New(wireerr.Invalid)
	}
	s := t.lookup(id)
	if s == nil {
		return nil
	}

	end, err := meta.DecodeEndBody(body)
	if err != nil {
		return wireerr.Wrap(err)
	}

	if inc := t.recv.Flush(); inc > 0 {
		if err := t.transport.Send(wire.TypeWindowUpdate, wire.EncodeWindowUpdate(inc)); err != nil {
			return err
		}
	}

	s.deliver(Event{Kind: EventEnd, End: end})
	if s.State() == StateClosed {
		t.release(id)
	}
	return nil
}

// HandleError processes an inbound StreamError packet: per §4.3, Error
// collapses the stream to Closed regardless of its prior state.
func (t *Table) HandleError(payload []byte) error {
	id, body, ok := wire.SplitStreamPayload(payload)
	if !ok {
		return wireerr.New(wireerr.Invalid)
	}
	s := t.lookup(id)
	if s == nil {
		return nil
	}
	errBody, err := meta.DecodeErrorBody(body)
	if err != nil {
		return wireerr.Wrap(err)
	}
	s.deliver(Event{Kind: EventError, Err: errBody})
	t.release(id)
	return nil
}

// HandleCancel processes an inbound StreamCancel packet.
func (t *Table) HandleCancel(payload []byte) error {
	id, _, ok := wire.SplitStreamPayload(payload)
	if !ok {
		return wireerr.New(wireerr.Invalid)
	}
	s := t.lookup(id)
	if s == nil {
		return nil
	}
	s.deliver(Event{Kind: EventCancel})
	t.release(id)
	return nil
}

func (t *Table) lookup(id uint32) *Stream {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.streams[id]
}

// release removes a stream from the table, freeing its id and its slot
// against MaxConcurrentStreams — the resource-release guarantee of §8: every
// Closed stream gives back what it held, promptly.
func (t *Table) release(id uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.streams, id)
}
