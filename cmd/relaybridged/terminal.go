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

package main

import (
	"context"

	"github.com/nabbar/wirebridge/session"
	"github.com/nabbar/wirebridge/wlog"
)

// loopbackTerminal stands in for a real PTY: there is no shell on the other
// end of it, so every byte of TerminalInput it receives is simply handed
// back as TerminalOutput, and a resize is just logged. It exists to exercise
// the Terminal Channel end to end without pulling in a PTY dependency no
// other package in this module needs.
//
// It reads sess.Terminal rather than caching a *termchan.Channel at
// construction time: HandleInput can only ever run from the read loop Run
// starts after Terminal is already populated, so the field is safe to read
// here without its own synchronization.
type loopbackTerminal struct {
	sess *session.Session
	log  wlog.Logger
}

func (t *loopbackTerminal) HandleInput(data []byte) {
	cp := append([]byte(nil), data...)
	go func() {
		if err := t.sess.Terminal.WriteOutput(context.Background(), cp); err != nil {
			t.log.WithError(err).Debug("loopback write failed")
		}
	}()
}

func (t *loopbackTerminal) HandleOutput(data []byte) {}

func (t *loopbackTerminal) HandleResize(cols, rows uint16) {
	t.log.WithField("cols", cols).WithField("rows", rows).Debug("peer resized terminal")
}
