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

// Package flowctl implements the per-connection credit-based flow control of
// spec §3/§4.2: a SendWindow gates how many payload bytes may be outstanding
// toward the peer, and a RecvWindow tracks inbound consumption and decides
// when to emit a WindowUpdate.
//
// Both directions share the same vocabulary: a "window" is the peer's current
// advertised budget; "in flight" / "pending ack" bytes move the needle without
// ever being allowed to exceed it. Every stream's Data, plus the Terminal
// channel's output bytes, are counted identically — there is no separate
// credit pool per stream.
package flowctl

const (
	// MinWindow and MaxWindow bound the credit advertised in Hello/HelloAck,
	// per §4.2: "Credit advertised in Hello/HelloAck MUST be within
	// [16 KiB, 16 MiB]."
	MinWindow = 16 * 1024
	MaxWindow = 16 * 1024 * 1024

	// DefaultUpdateThreshold is the recommended 8-16 KiB accumulation point at
	// which a RecvWindow emits a WindowUpdate.
	DefaultUpdateThreshold = 12 * 1024
)

// ValidAdvertisedWindow reports whether w is within the range Hello/HelloAck
// must advertise.
func ValidAdvertisedWindow(w uint32) bool {
	return w >= MinWindow && w <= MaxWindow
}
