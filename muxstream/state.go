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

// State is a position in the per-stream lifecycle of §4.3.
type State uint8

const (
	StateIdle State = iota
	StateOpen
	StateHalfClosedLocal
	StateHalfClosedRemote
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOpen:
		return "open"
	case StateHalfClosedLocal:
		return "half-closed-local"
	case StateHalfClosedRemote:
		return "half-closed-remote"
	case StateClosed:
		return "closed"
	default:
		return "invalid"
	}
}

// Role distinguishes which side of the connection this Table allocates
// stream ids for, per §4.3's parity discipline.
type Role uint8

const (
	// RoleRelay allocates even stream ids (relay-initiated streams).
	RoleRelay Role = iota
	// RoleLegacy allocates odd stream ids (legacy-initiated streams).
	RoleLegacy
)

// localEnd advances state after this side sends an End (or Error/Cancel
// collapses straight to Closed — handled by the caller, not here).
func localEnd(s State) State {
	switch s {
	case StateOpen:
		return StateHalfClosedLocal
	case StateHalfClosedRemote:
		return StateClosed
	default:
		return s
	}
}

// remoteEnd advances state after an End arrives from the peer.
func remoteEnd(s State) State {
	switch s {
	case StateOpen:
		return StateHalfClosedRemote
	case StateHalfClosedLocal:
		return StateClosed
	default:
		return s
	}
}

// dataAllowed reports whether Data may still be sent/received in direction
// (local or remote) while in state s.
func dataAllowedLocal(s State) bool {
	return s == StateOpen || s == StateHalfClosedRemote
}

func dataAllowedRemote(s State) bool {
	return s == StateOpen || s == StateHalfClosedLocal
}
