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

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Error is the concrete error type every operation handler returns. It
// implements Unwrap so errors.Is/errors.As keep working against stdlib
// sentinels even though Code is what actually crosses the wire.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code.String(), e.Message)
	}
	return e.Code.String()
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Is(target error) bool {
	var o *Error
	if errors.As(target, &o) {
		return o.Code == e.Code
	}
	return false
}

// New builds an Error with the default message for code.
func New(code Code) *Error {
	return &Error{Code: code, Message: code.String()}
}

// Newf builds an Error with a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies a stdlib error (typically *os.PathError, *os.LinkError, or a
// raw fs/os sentinel) into the closed wire taxonomy, preserving it as Cause.
// A nil err yields a nil *Error.
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}

	var already *Error
	if errors.As(err, &already) {
		return already
	}

	code := Classify(err)
	return &Error{Code: code, Message: err.Error(), Cause: err}
}

// Classify maps a stdlib error to the closed wire taxonomy without wrapping
// it. A nil err maps to Unknown; any other unrecognized error maps to IOError.
func Classify(err error) Code {
	switch {
	case err == nil:
		return Unknown
	case errors.Is(err, fs.ErrNotExist):
		return NotFound
	case errors.Is(err, fs.ErrPermission):
		return Permission
	case errors.Is(err, fs.ErrExist):
		return Exists
	case errors.Is(err, os.ErrDeadlineExceeded):
		return Timeout
	default:
		return IOError
	}
}
