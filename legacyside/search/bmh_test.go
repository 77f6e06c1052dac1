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

package search_test

import (
	"testing"

	"github.com/nabbar/wirebridge/legacyside/search"
)

func TestMatcherContains(t *testing.T) {
	cases := []struct {
		pattern, line string
		want          bool
	}{
		{"func", "func main() {}", true},
		{"func", "package main", false},
		{"", "anything", true},
		{"a", "banana", true},
		{"z", "banana", false},
		{"ana", "banana", true},
		{"nana", "banana", true},
		{"banana!", "banana", false},
	}
	for _, c := range cases {
		m := search.NewMatcher([]byte(c.pattern))
		if got := m.Contains([]byte(c.line)); got != c.want {
			t.Errorf("Contains(%q in %q) = %v, want %v", c.pattern, c.line, got, c.want)
		}
	}
}
