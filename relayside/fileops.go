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

package relayside

import (
	"context"

	"github.com/nabbar/wirebridge/wire/meta"
)

// ReadFile implements §4.4.1: open a file-read stream and concatenate every
// Data chunk the legacy endpoint emits until End(OK).
func (c *Client) ReadFile(ctx context.Context, path string) ([]byte, error) {
	chunks, err := c.call(ctx, meta.OpFileRead, meta.FileReadMeta{Path: []byte(path)})
	if err != nil {
		return nil, err
	}
	var out []byte
	for _, chunk := range chunks {
		out = append(out, chunk...)
	}
	return out, nil
}

// WriteFile implements §4.4.2: open a file-write stream, push the whole
// payload as a single Data packet, then End(OK) and wait for the peer's own
// End acknowledging the write landed.
func (c *Client) WriteFile(ctx context.Context, path string, mode uint32, data []byte) error {
	s, err := c.open(ctx, meta.OpFileWrite, meta.FileWriteMeta{Path: []byte(path), Mode: mode})
	if err != nil {
		return err
	}
	if len(data) > 0 {
		if err := s.WriteData(ctx, data); err != nil {
			return err
		}
	}
	if err := s.WriteEnd(meta.EndOK, nil); err != nil {
		return err
	}
	end, err := c.drain(ctx, s, nil)
	if err != nil {
		return err
	}
	return statusErr(end)
}
