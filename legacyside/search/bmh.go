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

package search

// Matcher is a Boyer-Moore-Horspool substring matcher: its skip table is
// built once, in NewMatcher, and Contains performs no allocation regardless
// of how many lines it is called against.
type Matcher struct {
	pattern []byte
	skip    [256]int
}

// NewMatcher builds a Matcher for pattern. An empty pattern matches every
// line, per the usual "empty needle" convention.
func NewMatcher(pattern []byte) *Matcher {
	m := &Matcher{pattern: pattern}
	n := len(pattern)
	for i := range m.skip {
		m.skip[i] = n
	}
	for i := 0; i < n-1; i++ {
		m.skip[pattern[i]] = n - 1 - i
	}
	return m
}

// Contains reports whether line contains the matcher's pattern anywhere.
func (m *Matcher) Contains(line []byte) bool {
	n := len(m.pattern)
	if n == 0 {
		return true
	}
	i := 0
	for i+n <= len(line) {
		j := n - 1
		for j >= 0 && line[i+j] == m.pattern[j] {
			j--
		}
		if j < 0 {
			return true
		}
		i += m.skip[line[i+n-1]]
	}
	return false
}
