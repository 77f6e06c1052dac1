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

package wireerr_test

import (
	"errors"
	"os"
	"testing"

	"github.com/nabbar/wirebridge/wireerr"
)

func TestWrapClassifiesNotFound(t *testing.T) {
	_, err := os.Open("/does/not/exist/at/all")
	if err == nil {
		t.Fatalf("expected os.Open to fail")
	}
	we := wireerr.Wrap(err)
	if we.Code != wireerr.NotFound {
		t.Fatalf("expected NotFound, got %v", we.Code)
	}
	if !errors.Is(we, os.ErrNotExist) {
		t.Fatalf("expected errors.Is to reach os.ErrNotExist through Unwrap")
	}
}

func TestWrapNilIsNil(t *testing.T) {
	if wireerr.Wrap(nil) != nil {
		t.Fatalf("expected nil")
	}
}

func TestWrapIdempotent(t *testing.T) {
	e1 := wireerr.New(wireerr.Permission)
	e2 := wireerr.Wrap(e1)
	if e2 != e1 {
		t.Fatalf("expected Wrap of an *Error to return it unchanged")
	}
}

func TestIsComparesCode(t *testing.T) {
	a := wireerr.Newf(wireerr.Invalid, "bad path %q", "../../x")
	b := wireerr.New(wireerr.Invalid)
	if !errors.Is(a, b) {
		t.Fatalf("expected errors.Is to match on Code")
	}
	c := wireerr.New(wireerr.NotFound)
	if errors.Is(a, c) {
		t.Fatalf("did not expect match across different codes")
	}
}

func TestRetryable(t *testing.T) {
	if !wireerr.NoResources.Retryable() {
		t.Fatalf("NoResources should be retryable")
	}
	if wireerr.NotFound.Retryable() {
		t.Fatalf("NotFound should not be retryable")
	}
}
