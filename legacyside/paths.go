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

package legacyside

import (
	"path/filepath"
	"strings"

	"github.com/nabbar/wirebridge/wire"
	"github.com/nabbar/wirebridge/wireerr"
)

// joinRoot joins p onto root, cleaning the result so a peer-supplied ".."
// cannot escape root through lexical tricks. It does not resolve symlinks;
// callers that need that guarantee should stat the result.
func joinRoot(root, p string) string {
	clean := filepath.Clean("/" + p)
	return filepath.Join(root, clean)
}

// validatePath enforces the two peer-supplied-path caps from §5/§3: a hard
// length ceiling and no embedded NUL byte.
func validatePath(p string) error {
	if len(p) > wire.MaxPathLength {
		return wireerr.Newf(wireerr.Invalid, "path length %d exceeds maximum of %d bytes", len(p), wire.MaxPathLength)
	}
	if strings.IndexByte(p, 0) >= 0 {
		return wireerr.New(wireerr.Invalid)
	}
	return nil
}
