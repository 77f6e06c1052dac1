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

package termchan

import (
	"context"

	"github.com/nabbar/wirebridge/flowctl"
	"github.com/nabbar/wirebridge/wire"
)

// Sender is the narrow write path a Channel needs from its owning session.
type Sender interface {
	Send(t wire.Type, payload []byte) error
}

// Handler receives inbound Terminal Channel occurrences. A legacy endpoint
// implements HandleOutput (writes bytes to the local terminal); a relay
// endpoint implements HandleInput (writes bytes to the PTY) and HandleResize
// (propagates a window-size change to the PTY).
type Handler interface {
	HandleInput(data []byte)
	HandleOutput(data []byte)
	HandleResize(cols, rows uint16)
}

// Channel is the Terminal Channel's write half: it reserves connection-wide
// send credit exactly like a stream would, then emits TerminalInput/Output.
type Channel struct {
	sender Sender
	send   *flowctl.SendWindow
}

// New builds a Channel bound to the connection's shared send window.
func New(sender Sender, send *flowctl.SendWindow) *Channel {
	return &Channel{sender: sender, send: send}
}

// WriteInput reserves credit and emits a TerminalInput packet (legacy side:
// local keystrokes, relay side: never called).
func (c *Channel) WriteInput(ctx context.Context, data []byte) error {
	if err := c.send.Reserve(ctx, uint32(len(data))); err != nil {
		return err
	}
	return c.sender.Send(wire.TypeTerminalInput, data)
}

// WriteOutput reserves credit and emits a TerminalOutput packet (relay side:
// PTY output).
func (c *Channel) WriteOutput(ctx context.Context, data []byte) error {
	if err := c.send.Reserve(ctx, uint32(len(data))); err != nil {
		return err
	}
	return c.sender.Send(wire.TypeTerminalOutput, data)
}

// WriteResize emits a TerminalResize packet. Resize is a control signal, not
// flow-controlled data, so it never consumes send credit.
func (c *Channel) WriteResize(cols, rows uint16) error {
	return c.sender.Send(wire.TypeTerminalResize, EncodeResize(cols, rows))
}
