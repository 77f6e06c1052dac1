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

// OutputFilter transforms bytes read from the Terminal Channel before they
// reach the local console. The simple-mode flag selects a filter at session
// setup; the filter itself has no wire representation.
type OutputFilter func([]byte) []byte

// PassthroughFilter returns b unchanged. It is the default filter when
// simple-mode is not negotiated.
func PassthroughFilter(b []byte) []byte { return b }

// ASCIIDowngradeFilter replaces every byte outside the printable ASCII range
// (plus newline, carriage return and tab) with '?', in place. It backs the
// simple-mode flag's ASCII-downgrade behavior for terminals that cannot
// render arbitrary UTF-8 or control sequences.
func ASCIIDowngradeFilter(b []byte) []byte {
	for i, c := range b {
		switch {
		case c == '\n' || c == '\r' || c == '\t':
			continue
		case c >= 0x20 && c < 0x7f:
			continue
		default:
			b[i] = '?'
		}
	}
	return b
}

// SelectFilter returns ASCIIDowngradeFilter when simple is true, otherwise
// PassthroughFilter.
func SelectFilter(simple bool) OutputFilter {
	if simple {
		return ASCIIDowngradeFilter
	}
	return PassthroughFilter
}
