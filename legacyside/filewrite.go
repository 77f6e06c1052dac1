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
	"os"
	"path/filepath"

	"github.com/nabbar/wirebridge/muxstream"
	"github.com/nabbar/wirebridge/wire/meta"
	"github.com/nabbar/wirebridge/wireerr"
)

const defaultFileMode = 0o644

// handleFileWrite implements §4.4.2: the peer streams the new file's content
// as a sequence of Data packets terminated by End; we write it to a temp file
// in the same directory and rename it into place so a crash mid-transfer
// never leaves a half-written file at the destination path.
func (d *Dispatcher) handleFileWrite(s *muxstream.Stream, raw []byte) error {
	m, err := meta.DecodeFileWriteMeta(raw)
	if err != nil {
		return wireerr.Wrap(err)
	}

	mode := os.FileMode(m.Mode)
	if mode == 0 {
		mode = defaultFileMode
	}
	path, err := d.resolvePath(string(m.Path))
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".wirebridge-write-*")
	if err != nil {
		return wireerr.Wrap(err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	for {
		ev, ok := <-s.Events()
		if !ok {
			cleanup()
			return wireerr.New(wireerr.Cancelled)
		}
		switch ev.Kind {
		case muxstream.EventData:
			if _, werr := tmp.Write(ev.Data); werr != nil {
				cleanup()
				return wireerr.Wrap(werr)
			}
		case muxstream.EventEnd:
			if cerr := tmp.Close(); cerr != nil {
				_ = os.Remove(tmpName)
				return wireerr.Wrap(cerr)
			}
			if cerr := os.Chmod(tmpName, mode); cerr != nil {
				_ = os.Remove(tmpName)
				return wireerr.Wrap(cerr)
			}
			if rerr := os.Rename(tmpName, path); rerr != nil {
				_ = os.Remove(tmpName)
				return wireerr.Wrap(rerr)
			}
			return s.WriteEnd(meta.EndOK, nil)
		case muxstream.EventCancel:
			cleanup()
			return wireerr.New(wireerr.Cancelled)
		case muxstream.EventError:
			cleanup()
			return wireerr.New(wireerr.Cancelled)
		}
	}
}

