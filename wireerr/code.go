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

package wireerr

// Code is the one-byte error code carried on the wire in a StreamError packet.
// It is the closed enumeration of §7 — never extended ad hoc.
type Code uint8

const (
	Unknown Code = iota
	NotFound
	Permission
	IOError
	Timeout
	Cancelled
	NoResources
	Invalid
	Exists
	NotDir
	IsDir
)

var messages = map[Code]string{
	Unknown:     "unknown error",
	NotFound:    "path does not exist",
	Permission:  "access denied",
	IOError:     "read/write/syscall failed",
	Timeout:     "operation exceeded deadline",
	Cancelled:   "cancelled by peer",
	NoResources: "stream table full or memory exhausted",
	Invalid:     "malformed metadata or invalid operation",
	Exists:      "path already exists",
	NotDir:      "not a directory",
	IsDir:       "is a directory",
}

// String returns the default human-readable message for a code. Callers that
// have a more specific message (e.g. including the offending path) should
// build their own via New/Wrap rather than rely on this default.
func (c Code) String() string {
	if m, ok := messages[c]; ok {
		return m
	}
	return messages[Unknown]
}

// Retryable reports whether a caller receiving this code MAY retry the
// operation later, per §7's recovery column (only NoResources qualifies).
func (c Code) Retryable() bool {
	return c == NoResources
}
