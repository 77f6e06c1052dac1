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
	"time"

	"github.com/hashicorp/go-version"

	"github.com/nabbar/wirebridge/muxstream"
	"github.com/nabbar/wirebridge/termchan"
	"github.com/nabbar/wirebridge/wire/meta"
	"github.com/nabbar/wirebridge/wlog"
)

// Role distinguishes which side of the TCP connection this Session is: the
// initiator dials out and sends Hello first; the acceptor listens and replies
// with HelloAck. This is independent of muxstream.Role (stream-id parity) —
// the legacy CLI is the TCP initiator per §6, but either side may be the
// stream-id "relay" depending on deployment.
type Role uint8

const (
	RoleInitiator Role = iota
	RoleAcceptor
)

// ProtocolVersion is the version this implementation speaks and advertises.
var ProtocolVersion uint16 = 2

// minSupportedVersion is the floor negotiated via Hello/HelloAck, expressed
// as a semantic version so future protocol revisions can compare with
// go-version's richer constraint syntax instead of a bare integer equality
// check.
var minSupportedVersion = version.Must(version.NewVersion("2.0.0"))

// Config carries everything a Session needs beyond the raw connection.
type Config struct {
	Role    Role
	MuxRole muxstream.Role

	// Window is this side's advertised receive window, sent in Hello/HelloAck.
	Window uint32
	Flags  meta.Flags
	Cwd    string

	HandshakeTimeout  time.Duration
	PingInterval      time.Duration
	PongDeadline      time.Duration
	IdleStreamTimeout time.Duration

	StreamHandler   muxstream.Handler
	TerminalHandler termchan.Handler

	Logger wlog.Logger
}

// withDefaults fills in the recommended values from §4.5 for anything the
// caller left zero.
func (c Config) withDefaults() Config {
	if c.HandshakeTimeout == 0 {
		c.HandshakeTimeout = 10 * time.Second
	}
	if c.PingInterval == 0 {
		c.PingInterval = 5 * time.Minute
	}
	if c.PongDeadline == 0 {
		c.PongDeadline = 10 * time.Second
	}
	if c.IdleStreamTimeout == 0 {
		c.IdleStreamTimeout = 5 * time.Minute
	}
	if c.Window == 0 {
		c.Window = 256 * 1024
	}
	if c.Logger == nil {
		c.Logger = wlog.Discard()
	}
	return c
}
