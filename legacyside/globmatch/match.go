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

package globmatch

// Match reports whether name satisfies pattern. Both are taken as raw byte
// sequences (native filesystem encoding, not necessarily UTF-8) since paths
// are never assumed to be valid UTF-8 on the wire.
func Match(pattern, name string) bool {
	px, nx := 0, 0
	starPattern, starName := -1, -1

	for nx < len(name) {
		if px < len(pattern) {
			switch pattern[px] {
			case '*':
				starPattern = px
				starName = nx
				px++
				continue
			case '?':
				px++
				nx++
				continue
			case '[':
				if end, ok := classEnd(pattern, px); ok {
					if matchClass(pattern[px:end+1], name[nx]) {
						px = end + 1
						nx++
						continue
					}
					// class present but didn't match: fall through to backtrack
				} else if name[nx] == '[' {
					px++
					nx++
					continue
				}
			default:
				if name[nx] == pattern[px] {
					px++
					nx++
					continue
				}
			}
		}

		if starPattern < 0 {
			return false
		}
		starName++
		nx = starName
		px = starPattern + 1
	}

	for px < len(pattern) && pattern[px] == '*' {
		px++
	}
	return px == len(pattern)
}

// classEnd finds the index of the ']' that closes the bracket expression
// starting at pattern[open] (which must be '['). A ']' immediately following
// '[' or '[!'/'[^' is a literal member of the class, matching common shell
// glob semantics, not the closing bracket.
func classEnd(pattern string, open int) (int, bool) {
	i := open + 1
	if i < len(pattern) && (pattern[i] == '!' || pattern[i] == '^') {
		i++
	}
	if i < len(pattern) && pattern[i] == ']' {
		i++
	}
	for i < len(pattern) {
		if pattern[i] == ']' {
			return i, true
		}
		i++
	}
	return 0, false
}

// matchClass reports whether c satisfies the bracket expression cls
// (including its surrounding '[' and ']').
func matchClass(cls string, c byte) bool {
	body := cls[1 : len(cls)-1]
	negate := false
	if len(body) > 0 && (body[0] == '!' || body[0] == '^') {
		negate = true
		body = body[1:]
	}

	matched := false
	for i := 0; i < len(body); {
		if i+2 < len(body) && body[i+1] == '-' {
			lo, hi := body[i], body[i+2]
			if lo > hi {
				lo, hi = hi, lo
			}
			if c >= lo && c <= hi {
				matched = true
			}
			i += 3
			continue
		}
		if body[i] == c {
			matched = true
		}
		i++
	}

	return matched != negate
}
