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

package globmatch_test

import (
	"testing"

	"github.com/nabbar/wirebridge/legacyside/globmatch"
)

func TestMatch(t *testing.T) {
	cases := []struct {
		pattern, name string
		want          bool
	}{
		{"*.go", "main.go", true},
		{"*.go", "main.py", false},
		{"*.go", "main.go.bak", false},
		{"test_*.go", "test_match.go", true},
		{"test_*.go", "match_test.go", false},
		{"??.txt", "ab.txt", true},
		{"??.txt", "abc.txt", false},
		{"[abc].txt", "a.txt", true},
		{"[abc].txt", "d.txt", false},
		{"[a-z].txt", "q.txt", true},
		{"[a-z].txt", "Q.txt", false},
		{"[!a-z].txt", "Q.txt", true},
		{"[!a-z].txt", "q.txt", false},
		{"*", "anything.at.all", true},
		{"*", "", true},
		{"", "", true},
		{"", "x", false},
		{"a*b*c", "aXXbYYc", true},
		{"a*b*c", "aXXbYY", false},
		{"*main*", "src/main.go", true},
		{"**/*.go", "a/b.go", true}, // no dedicated '**' semantics: each '*' still matches '/', so this still matches
	}

	for _, c := range cases {
		got := globmatch.Match(c.pattern, c.name)
		if got != c.want {
			t.Errorf("Match(%q, %q) = %v, want %v", c.pattern, c.name, got, c.want)
		}
	}
}

func TestMatchBacktracksAcrossMultipleStars(t *testing.T) {
	if !globmatch.Match("*foo*bar*baz", "xxxfooyyybarzzzbaz") {
		t.Fatal("expected multi-star pattern to match")
	}
}
