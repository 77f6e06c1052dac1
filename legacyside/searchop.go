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

	"github.com/nabbar/wirebridge/legacyside/search"
	"github.com/nabbar/wirebridge/muxstream"
	"github.com/nabbar/wirebridge/wire/meta"
	"github.com/nabbar/wirebridge/wireerr"
)

// handleSearch implements §4.4.11 by delegating the walk to package search,
// marshaling each hit as it arrives and stopping the walk the moment a
// WriteData reservation fails (peer gone, connection torn down, or Cancel).
func (d *Dispatcher) handleSearch(ctx context.Context, s *muxstream.Stream, raw []byte) error {
	m, err := meta.DecodeSearchMeta(raw)
	if err != nil {
		return wireerr.Wrap(err)
	}

	root, err := d.resolvePath(string(m.Base))
	if err != nil {
		return err
	}
	opts := search.Options{
		Root:        root,
		NamePattern: string(m.FilePattern),
	}

	var writeErr error
	walkErr := search.Walk(ctx, opts, m.Pattern, func(hit meta.SearchHit) bool {
		enc, merr := hit.Marshal()
		if merr != nil {
			writeErr = wireerr.Wrap(merr)
			return false
		}
		if err := s.WriteData(ctx, enc); err != nil {
			writeErr = err
			return false
		}
		return true
	})
	if writeErr != nil {
		return writeErr
	}
	if walkErr != nil {
		return wireerr.Wrap(walkErr)
	}

	return s.WriteEnd(meta.EndOK, nil)
}
