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

package wconfig

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nabbar/wirebridge/wlog"
)

// OpenLogger opens path for append (creating it if needed) and wraps it in
// a wlog.Logger at the given level. An empty path logs to stderr instead. If
// path cannot be opened, a file of the same base name under os.TempDir() is
// tried before giving up. The returned closer is always non-nil; closing it
// is a no-op for stderr.
func OpenLogger(path, level string) (wlog.Logger, io.Closer, error) {
	if path == "" {
		return wlog.New(os.Stderr, level), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		alt := filepath.Join(os.TempDir(), filepath.Base(path))
		var aerr error
		if f, aerr = os.OpenFile(alt, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); aerr != nil {
			return nil, nil, fmt.Errorf("wconfig: opening log file %q: %w", path, err)
		}
	}
	return wlog.New(f, level), f, nil
}
