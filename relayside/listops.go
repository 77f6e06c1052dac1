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

// ListDir implements §4.4.9. A per-entry stat failure on the legacy side
// degrades that one entry to meta.EntryOther rather than failing the whole
// stream, so callers never need to special-case a partial listing here.
func (c *Client) ListDir(ctx context.Context, path string) ([]meta.DirEntry, error) {
	chunks, err := c.call(ctx, meta.OpListDir, meta.PathMeta{Path: []byte(path)})
	if err != nil {
		return nil, err
	}
	entries := make([]meta.DirEntry, 0, len(chunks))
	for _, chunk := range chunks {
		entry, derr := meta.DecodeDirEntry(chunk)
		if derr != nil {
			return nil, derr
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// GlobFind implements §4.4.10: each Data packet is one matching path, already
// joined to base by the legacy endpoint.
func (c *Client) GlobFind(ctx context.Context, base, pattern string) ([]string, error) {
	chunks, err := c.call(ctx, meta.OpGlobFind, meta.GlobMeta{Base: []byte(base), Pattern: []byte(pattern)})
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(chunks))
	for i, chunk := range chunks {
		paths[i] = string(chunk)
	}
	return paths, nil
}

// Search implements §4.4.11. An empty filePattern matches every file, per
// meta.SearchMeta's own documented default.
func (c *Client) Search(ctx context.Context, base, pattern, filePattern string) ([]meta.SearchHit, error) {
	chunks, err := c.call(ctx, meta.OpSearch, meta.SearchMeta{
		Base:        []byte(base),
		Pattern:     []byte(pattern),
		FilePattern: []byte(filePattern),
	})
	if err != nil {
		return nil, err
	}
	hits := make([]meta.SearchHit, 0, len(chunks))
	for _, chunk := range chunks {
		hit, herr := meta.DecodeSearchHit(chunk)
		if herr != nil {
			return nil, herr
		}
		hits = append(hits, hit)
	}
	return hits, nil
}
