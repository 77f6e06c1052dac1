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

package termio

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Saver captures a terminal's prior mode and restores it on demand. A nil
// Saver is valid and every method on it is a no-op, so callers never need a
// guard around "was this actually a terminal".
type Saver interface {
	// IsTerminal reports whether the underlying file descriptor is a TTY.
	IsTerminal() bool
	// Restore puts the terminal back in the mode it was in before New.
	// Calling Restore more than once is safe; only the first call has effect.
	Restore() error
}

type fdSaver struct {
	fd       int
	state    *term.State
	terminal bool
	restored bool
}

// New inspects w (expected to be *os.File, typically os.Stdin) and, if it is
// a TTY and raw is true, switches it into raw mode, returning a Saver that
// restores the original mode. If w is not a TTY, or raw is false, New still
// returns a valid Saver whose IsTerminal reflects reality and whose Restore
// is a no-op.
func New(w io.Writer, raw bool) (Saver, error) {
	f, ok := w.(*os.File)
	if !ok {
		return &fdSaver{fd: -1}, nil
	}

	fd := int(f.Fd())
	isTerm := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	s := &fdSaver{fd: fd, terminal: isTerm}
	if !isTerm || !raw {
		return s, nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	s.state = state
	return s, nil
}

func (s *fdSaver) IsTerminal() bool {
	if s == nil {
		return false
	}
	return s.terminal
}

func (s *fdSaver) Restore() error {
	if s == nil || s.state == nil || s.restored {
		return nil
	}
	s.restored = true
	return term.Restore(s.fd, s.state)
}

// Restore calls s.Restore if s is non-nil, swallowing a nil Saver the way a
// deferred cleanup call normally would.
func Restore(s Saver) {
	if s == nil {
		return
	}
	_ = s.Restore()
}

// Size reports the current terminal dimensions of f, falling back to a
// conventional 80x24 if f is not a TTY or the ioctl fails.
func Size(f *os.File) (cols, rows uint16) {
	if f == nil || !isatty.IsTerminal(f.Fd()) {
		return 80, 24
	}
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return uint16(w), uint16(h)
}
