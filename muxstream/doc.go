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

// Package muxstream implements the stream multiplexer of spec §4.3: a table
// of concurrent logical streams sharing one underlying connection, each
// progressing through the Idle/Open/HalfClosedLocal/HalfClosedRemote/Closed
// state machine independently of its siblings.
//
// A Table owns stream-id allocation (even ids for relay-initiated streams,
// odd ids for legacy-initiated ones), enforces the 256-concurrent-stream
// cap, and dispatches inbound StreamOpen/Data/End/Error/Cancel packets to the
// right Stream. Flow control is connection-scoped, not per-stream (see
// package flowctl) — Table reserves and accumulates against the shared
// windows it is constructed with, so one chatty stream can still starve its
// siblings exactly as the wire budget dictates.
package muxstream
