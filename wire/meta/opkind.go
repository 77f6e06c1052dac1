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

package meta

// OpKind tags a stream with the operation it carries. This is the closed
// vocabulary of §4.4; dispatch on this tag is exhaustive in muxstream/legacyside.
type OpKind uint8

const (
	OpFileRead OpKind = iota + 1
	OpFileWrite
	OpStat
	OpLstat
	OpExists
	OpMakeDir
	OpRemove
	OpMove
	OpResolve
	OpListDir
	OpGlobFind
	OpSearch
	OpExec
)

func (k OpKind) String() string {
	switch k {
	case OpFileRead:
		return "file-read"
	case OpFileWrite:
		return "file-write"
	case OpStat:
		return "stat"
	case OpLstat:
		return "lstat"
	case OpExists:
		return "exists"
	case OpMakeDir:
		return "make-dir"
	case OpRemove:
		return "remove"
	case OpMove:
		return "move"
	case OpResolve:
		return "resolve-path"
	case OpListDir:
		return "list-dir"
	case OpGlobFind:
		return "glob-find"
	case OpSearch:
		return "search"
	case OpExec:
		return "exec"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the closed set of operation kinds.
func (k OpKind) Valid() bool {
	return k >= OpFileRead && k <= OpExec
}
