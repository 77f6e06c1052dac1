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

package relayside

import (
	"context"
	"time"

	"github.com/nabbar/wirebridge/muxstream"
	"github.com/nabbar/wirebridge/wire/meta"
	"github.com/nabbar/wirebridge/wireerr"
)

// Filesystem is the adapter surface a Host Agent tool-call layer would
// implement its own file/process tools against. *Client satisfies it.
type Filesystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, mode uint32, data []byte) error
	Stat(ctx context.Context, path string) (meta.StatReply, error)
	Lstat(ctx context.Context, path string) (meta.StatReply, error)
	Exists(ctx context.Context, path string) (bool, error)
	MakeDir(ctx context.Context, path string) error
	Remove(ctx context.Context, path string) error
	Move(ctx context.Context, src, dst string) error
	Resolve(ctx context.Context, path string) (string, error)
	ListDir(ctx context.Context, path string) ([]meta.DirEntry, error)
	GlobFind(ctx context.Context, base, pattern string) ([]string, error)
	Search(ctx context.Context, base, pattern, filePattern string) ([]meta.SearchHit, error)
	Exec(ctx context.Context, command string, timeout time.Duration, onOutput func(ch meta.ExecChannel, data []byte)) (meta.ExecTrailer, error)
}

// Client drives the twelve operation kinds over a stream table, synchronously
// draining each stream it opens. The zero value is invalid; build one with
// New.
type Client struct {
	streams *muxstream.Table
}

// New wraps a connected Session's stream table (or any *muxstream.Table in
// RoleRelay) for synchronous, call-and-return operation use.
func New(streams *muxstream.Table) *Client {
	return &Client{streams: streams}
}

var _ Filesystem = (*Client)(nil)

// open starts a stream for kind and returns it. The table's error is returned
// unchanged; a full table yields a *wireerr.Error with Code NoResources,
// which the caller can inspect with errors.As.
func (c *Client) open(ctx context.Context, kind meta.OpKind, body interface{}) (*muxstream.Stream, error) {
	s, err := c.streams.Open(ctx, kind, body)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// drain consumes events from s until End or Error, invoking onData for every
// Data event in arrival order. Stream.Cancel finalizes the stream locally and
// never waits for the peer to acknowledge it (muxstream.Table.release drops
// the id from its own map the instant Cancel is called, before any reply
// can arrive), so once ctx is done this sends StreamCancel and returns
// immediately with a synthetic End(Cancelled) rather than blocking on an
// event that the table has already made it impossible to deliver.
func (c *Client) drain(ctx context.Context, s *muxstream.Stream, onData func([]byte)) (meta.EndBody, error) {
	for {
		select {
		case ev, ok := <-s.Events():
			if !ok {
				return meta.EndBody{Status: meta.EndCancelled}, nil
			}
			switch ev.Kind {
			case muxstream.EventData:
				if onData != nil {
					onData(ev.Data)
				}
			case muxstream.EventEnd:
				// A one-directional op (the legacy side only ever receives,
				// never sends) leaves us at HalfClosedRemote here: our own
				// local half never advanced, so neither table would ever
				// release this id. Finalize our half now. WriteFile already
				// called WriteEnd before draining, so by the time its End
				// arrives the stream is already Closed and this is a no-op.
				if s.State() != muxstream.StateClosed {
					_ = s.WriteEnd(meta.EndOK, nil)
				}
				return ev.End, nil
			case muxstream.EventError:
				return meta.EndBody{}, &wireerr.Error{Code: wireerr.Code(ev.Err.Code), Message: ev.Err.Message}
			case muxstream.EventCancel:
				return meta.EndBody{Status: meta.EndCancelled}, nil
			}
		case <-ctx.Done():
			_ = s.Cancel()
			return meta.EndBody{Status: meta.EndCancelled}, nil
		}
	}
}

// statusErr maps a non-error EndBody's status to the error relayside's API
// returns for it; EndOK yields nil.
func statusErr(end meta.EndBody) error {
	switch end.Status {
	case meta.EndOK:
		return nil
	case meta.EndCancelled:
		return wireerr.New(wireerr.Cancelled)
	case meta.EndTimeout:
		return wireerr.New(wireerr.Timeout)
	default:
		return nil
	}
}

// call is the common shape behind every single-reply operation (stat,
// exists, resolve, ...): open the stream, collect exactly the Data packets
// the handler emits, and surface the first error encountered.
func (c *Client) call(ctx context.Context, kind meta.OpKind, body interface{}) ([][]byte, error) {
	s, err := c.open(ctx, kind, body)
	if err != nil {
		return nil, err
	}
	var chunks [][]byte
	end, err := c.drain(ctx, s, func(b []byte) {
		cp := make([]byte, len(b))
		copy(cp, b)
		chunks = append(chunks, cp)
	})
	if err != nil {
		return nil, err
	}
	if serr := statusErr(end); serr != nil {
		return nil, serr
	}
	return chunks, nil
}
