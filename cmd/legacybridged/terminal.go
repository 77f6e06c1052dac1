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
	"io"

	"github.com/nabbar/wirebridge/legacyside/termio"
)

// localTerminal implements termchan.Handler for the legacy side: it only
// ever receives TerminalOutput (the relay's PTY output), filtered through
// filter before reaching the real console. HandleInput and HandleResize are
// never invoked here — this side originates those, it doesn't receive them —
// but the interface requires them.
type localTerminal struct {
	out    io.Writer
	filter termio.OutputFilter
}

func (t *localTerminal) HandleInput(data []byte) {}

func (t *localTerminal) HandleOutput(data []byte) {
	_, _ = t.out.Write(t.filter(append([]byte(nil), data...)))
}

func (t *localTerminal) HandleResize(cols, rows uint16) {}
