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

// Package globmatch implements the §4.4.10 glob pattern language with an
// iterative backtracking matcher: no recursion, no compiled-pattern
// allocation, a single saved "last star" anchor rather than a full stack.
// Worst case is O(n*m) in pattern and subject length; the common case (few
// wildcards) is close to linear.
//
// Supported syntax: '*' (any run of bytes, including none), '?' (exactly one
// byte), and bracket classes '[abc]', '[a-z]', and negated '[!abc]'/'[^abc]'.
// There is no brace-expansion, no '**', and no escaping — the same closed
// vocabulary a legacy shell's fnmatch would offer, not a general globbing
// library's superset.
package globmatch
