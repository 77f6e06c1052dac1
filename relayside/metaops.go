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

func (c *Client) statLike(ctx context.Context, kind meta.OpKind, path string) (meta.StatReply, error) {
	chunks, err := c.call(ctx, kind, meta.PathMeta{Path: []byte(path)})
	if err != nil {
		return meta.StatReply{}, err
	}
	if len(chunks) == 0 {
		return meta.StatReply{}, nil
	}
	return meta.DecodeStatReply(chunks[0])
}

// Stat implements §4.4.3 with symlinks followed.
func (c *Client) Stat(ctx context.Context, path string) (meta.StatReply, error) {
	return c.statLike(ctx, meta.OpStat, path)
}

// Lstat implements §4.4.3 without following a trailing symlink.
func (c *Client) Lstat(ctx context.Context, path string) (meta.StatReply, error) {
	return c.statLike(ctx, meta.OpLstat, path)
}

// Exists implements §4.4.4.
func (c *Client) Exists(ctx context.Context, path string) (bool, error) {
	chunks, err := c.call(ctx, meta.OpExists, meta.PathMeta{Path: []byte(path)})
	if err != nil {
		return false, err
	}
	if len(chunks) == 0 {
		return false, nil
	}
	reply, err := meta.DecodeExistsReply(chunks[0])
	if err != nil {
		return false, err
	}
	return reply.Exists, nil
}

// MakeDir implements §4.4.5 (mkdir -p semantics).
func (c *Client) MakeDir(ctx context.Context, path string) error {
	_, err := c.call(ctx, meta.OpMakeDir, meta.PathMeta{Path: []byte(path)})
	return err
}

// Remove implements §4.4.6: unlink only, never recursive.
func (c *Client) Remove(ctx context.Context, path string) error {
	_, err := c.call(ctx, meta.OpRemove, meta.PathMeta{Path: []byte(path)})
	return err
}

// Move implements §4.4.7.
func (c *Client) Move(ctx context.Context, src, dst string) error {
	_, err := c.call(ctx, meta.OpMove, meta.MoveMeta{Src: []byte(src), Dst: []byte(dst)})
	return err
}

// Resolve implements §4.4.8.
func (c *Client) Resolve(ctx context.Context, path string) (string, error) {
	chunks, err := c.call(ctx, meta.OpResolve, meta.PathMeta{Path: []byte(path)})
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return "", nil
	}
	reply, err := meta.DecodeResolveReply(chunks[0])
	if err != nil {
		return "", err
	}
	return string(reply.Path), nil
}
