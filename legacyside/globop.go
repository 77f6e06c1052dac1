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
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/nabbar/wirebridge/legacyside/globmatch"
	"github.com/nabbar/wirebridge/muxstream"
	"github.com/nabbar/wirebridge/wire/meta"
	"github.com/nabbar/wirebridge/wireerr"
)

// maxGlobDepth bounds the explicit directory stack independent of symlink
// cycles (symlinked directories are never pushed onto the stack at all).
const maxGlobDepth = 64

type globFrame struct {
	path  string
	depth int
}

// handleGlobFind implements §4.4.10: an iterative, explicit-stack directory
// walk (no recursion, so no stack-depth surprise from a deep tree) testing
// each entry's leaf name against pattern via globmatch.Match.
func (d *Dispatcher) handleGlobFind(ctx context.Context, s *muxstream.Stream, raw []byte) error {
	m, err := meta.DecodeGlobMeta(raw)
	if err != nil {
		return wireerr.Wrap(err)
	}

	base, err := d.resolvePath(string(m.Base))
	if err != nil {
		return err
	}
	pattern := string(m.Pattern)

	stack := []globFrame{{path: base, depth: 0}}
	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			return wireerr.New(wireerr.Cancelled)
		default:
		}

		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.depth > maxGlobDepth {
			continue
		}

		entries, rerr := os.ReadDir(cur.path)
		if rerr != nil {
			continue
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

		for _, e := range entries {
			name := e.Name()
			full := filepath.Join(cur.path, name)
			isSymlink := e.Type()&os.ModeSymlink != 0

			if globmatch.Match(pattern, name) {
				if err := s.WriteData(ctx, []byte(full)); err != nil {
					return err
				}
			}

			if e.IsDir() && !isSymlink {
				stack = append(stack, globFrame{path: full, depth: cur.depth + 1})
			}
		}
	}

	return s.WriteEnd(meta.EndOK, nil)
}
