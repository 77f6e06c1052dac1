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

package legacyside

import (
	"context"

	"github.com/nabbar/wirebridge/muxstream"
	"github.com/nabbar/wirebridge/wire/meta"
	"github.com/nabbar/wirebridge/wireerr"
	"github.com/nabbar/wirebridge/wlog"
)

// dataChunkSize is the size of the Data packets file-read and exec-output
// emit. It has no wire significance beyond bounding how much of the shared
// flow-control window a single reservation asks for at once.
const dataChunkSize = 64 * 1024

// Dispatcher routes every inbound StreamOpen to the handler for its kind. It
// implements muxstream.Handler and is stateless: each stream's lifetime is
// entirely owned by the goroutine muxstream.Table spawns for it.
type Dispatcher struct {
	// Root, if non-empty, confines every path operation under it. An empty
	// Root leaves paths exactly as the peer sent them (the common case: the
	// legacy endpoint usually has no sandbox of its own).
	Root string
	Log  wlog.Logger
}

// HandleStream implements muxstream.Handler.
func (d *Dispatcher) HandleStream(s *muxstream.Stream, body meta.OpenBody) {
	log := d.Log
	if log == nil {
		log = wlog.Discard()
	}
	log = log.WithField("stream", s.ID()).WithField("op", body.Kind.String())

	// handleFileWrite reads its own inbound Data/End events (the incoming
	// file content), so it must not share the generic cancel-watcher, which
	// would otherwise steal those events out from under it.
	if body.Kind == meta.OpFileWrite {
		if err := d.handleFileWrite(s, body.Raw); err != nil {
			we := wireerr.Wrap(err)
			log.WithError(we).Debug("operation ended in error")
			_ = s.WriteError(we.Code, we.Message)
		}
		return
	}

	ctx, cancel := watchCancel(s)
	defer cancel()

	var err error
	switch body.Kind {
	case meta.OpFileRead:
		err = d.handleFileRead(ctx, s, body.Raw)
	case meta.OpStat:
		err = d.handleStat(ctx, s, body.Raw, true)
	case meta.OpLstat:
		err = d.handleStat(ctx, s, body.Raw, false)
	case meta.OpExists:
		err = d.handleExists(ctx, s, body.Raw)
	case meta.OpMakeDir:
		err = d.handleMakeDir(ctx, s, body.Raw)
	case meta.OpRemove:
		err = d.handleRemove(ctx, s, body.Raw)
	case meta.OpMove:
		err = d.handleMove(ctx, s, body.Raw)
	case meta.OpResolve:
		err = d.handleResolve(ctx, s, body.Raw)
	case meta.OpListDir:
		err = d.handleListDir(ctx, s, body.Raw)
	case meta.OpGlobFind:
		err = d.handleGlobFind(ctx, s, body.Raw)
	case meta.OpSearch:
		err = d.handleSearch(ctx, s, body.Raw)
	case meta.OpExec:
		err = d.handleExec(ctx, s, body.Raw)
	default:
		err = wireerr.Newf(wireerr.Invalid, "unhandled operation kind %d", body.Kind)
	}

	if err != nil {
		we := wireerr.Wrap(err)
		log.WithError(we).Debug("operation ended in error")
		_ = s.WriteError(we.Code, we.Message)
	}
}

// watchCancel drains s.Events() for the lifetime of the stream so that any
// inbound StreamCancel cancels the returned context. File-write, the one
// handler that expects inbound StreamData, is never given this watcher (see
// HandleStream): it reads s.Events() itself.
func watchCancel(s *muxstream.Stream) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for {
			select {
			case ev, ok := <-s.Events():
				if !ok {
					return
				}
				if ev.Kind == muxstream.EventCancel {
					cancel()
					return
				}
			case <-s.Done():
				return
			}
		}
	}()
	return ctx, cancel
}

// resolvePath validates p against the §5/§3 path caps (length, embedded
// NUL) and joins it onto d.Root when a sandbox root is configured; p is
// otherwise returned unchanged. Called with the raw, peer-supplied path.
func (d *Dispatcher) resolvePath(p string) (string, error) {
	if err := validatePath(p); err != nil {
		return "", err
	}
	if d.Root == "" {
		return p, nil
	}
	return joinRoot(d.Root, p), nil
}
