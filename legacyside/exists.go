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

	"github.com/nabbar/wirebridge/muxstream"
	"github.com/nabbar/wirebridge/wire/meta"
	"github.com/nabbar/wirebridge/wireerr"
)

// handleExists implements §4.4.4: a single Data packet carrying ExistsReply,
// never an error for a missing path.
func (d *Dispatcher) handleExists(ctx context.Context, s *muxstream.Stream, raw []byte) error {
	m, err := meta.DecodePathMeta(raw)
	if err != nil {
		return wireerr.Wrap(err)
	}

	path, err := d.resolvePath(string(m.Path))
	if err != nil {
		return err
	}

	_, statErr := os.Lstat(path)
	reply := meta.ExistsReply{Exists: statErr == nil}

	enc, err := reply.Marshal()
	if err != nil {
		return wireerr.Wrap(err)
	}
	if err := s.WriteData(ctx, enc); err != nil {
		return err
	}
	return s.WriteEnd(meta.EndOK, nil)
}
