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

package search

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/nabbar/wirebridge/legacyside/globmatch"
	"github.com/nabbar/wirebridge/wire/meta"
	"github.com/nabbar/wirebridge/wireerr"
)

const (
	// MaxDepth bounds recursion independent of symlink cycles (symlinks are
	// never traversed, so this is a belt-and-suspenders limit).
	MaxDepth = 32
	// MaxFiles bounds the number of candidate files scanned before the walk
	// stops early with a clean End(OK).
	MaxFiles = 500
	// MaxHits bounds the number of Data packets emitted before the walk stops
	// early with a clean End(OK).
	MaxHits = 200
	// MaxFileSize skips any candidate file larger than this ceiling.
	MaxFileSize = 512 * 1024
	// sniffLen is how many leading bytes are inspected for a NUL byte when
	// deciding whether a file is binary.
	sniffLen = 512
)

var skipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	".idea":        {},
	".vscode":      {},
	"node_modules": {},
	"vendor":       {},
	".cache":       {},
	"target":       {},
	"dist":         {},
	"build":        {},
}

var skipExt = map[string]struct{}{
	".o":    {}, ".a": {}, ".so": {}, ".dll": {}, ".dylib": {}, ".exe": {},
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".bmp": {}, ".ico": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {}, ".xz": {}, ".7z": {},
	".pdf": {}, ".woff": {}, ".woff2": {}, ".ttf": {}, ".eot": {},
	".mp3": {}, ".mp4": {}, ".mov": {}, ".avi": {}, ".webm": {},
}

// Options configures a content-search walk.
type Options struct {
	// Root is the base path under which to search.
	Root string
	// NamePattern, if non-empty, is a globmatch pattern restricting which
	// file names are scanned.
	NamePattern string
}

// Emit is called once per match. It returns false to ask the walk to stop
// (the caller has reached an external bound, e.g. a stream Cancel).
type Emit func(meta.SearchHit) bool

// Walk scans files under opts.Root for pattern, calling emit for every match
// in path order, depth-first, skipping directories and files per the fixed
// skip-lists and stopping early — without error — once MaxFiles or MaxHits is
// reached. A nil error return does not imply every file was scanned; callers
// that care should track how many hits/files they received.
func Walk(ctx context.Context, opts Options, pattern []byte, emit Emit) error {
	info, err := os.Lstat(opts.Root)
	if err != nil {
		return wireerr.Wrap(err)
	}
	if !info.IsDir() {
		return wireerr.New(wireerr.NotDir)
	}

	m := NewMatcher(pattern)
	w := &walker{matcher: m, opts: opts, emit: emit, lineBuf: make([]byte, 64*1024)}
	return w.walkDir(ctx, opts.Root, 0)
}

type walker struct {
	matcher   *Matcher
	opts      Options
	emit      Emit
	filesSeen int
	hits      int
	stopped   bool

	// lineBuf is bufio.Scanner's starting buffer, reused across every file
	// scanFile scans so the hot loop makes no per-file allocation.
	lineBuf []byte
}

func (w *walker) walkDir(ctx context.Context, dir string, depth int) error {
	if w.stopped || depth > MaxDepth {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable subdirectories are skipped, not fatal to the walk.
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		if w.stopped {
			return nil
		}
		name := e.Name()
		full := filepath.Join(dir, name)

		if e.Type()&os.ModeSymlink != 0 {
			continue
		}

		if e.IsDir() {
			if isDotted(name) {
				continue
			}
			if _, skip := skipDirs[name]; skip {
				continue
			}
			if err := w.walkDir(ctx, full, depth+1); err != nil {
				return err
			}
			continue
		}

		if !e.Type().IsRegular() {
			continue
		}
		if w.opts.NamePattern != "" && !globmatch.Match(w.opts.NamePattern, name) {
			continue
		}
		if _, skip := skipExt[filepath.Ext(name)]; skip {
			continue
		}

		if err := w.scanFile(ctx, full); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) scanFile(ctx context.Context, path string) error {
	if w.filesSeen >= MaxFiles || w.hits >= MaxHits {
		w.stopped = true
		return nil
	}

	fi, err := os.Stat(path)
	if err != nil || fi.Size() == 0 || fi.Size() > MaxFileSize {
		return nil
	}
	w.filesSeen++

	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	sniff := make([]byte, sniffLen)
	n, _ := f.Read(sniff)
	if bytes.IndexByte(sniff[:n], 0) >= 0 {
		return nil
	}
	if _, err := f.Seek(0, 0); err != nil {
		return nil
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(w.lineBuf, 1024*1024)

	var lineNo int64
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		lineNo++
		line := scanner.Bytes()
		if !w.matcher.Contains(line) {
			continue
		}
		hit := meta.SearchHit{
			Line: lineNo,
			Path: []byte(path),
			Text: append([]byte(nil), line...),
		}
		if !w.emit(hit) {
			w.stopped = true
			return nil
		}
		w.hits++
		if w.hits >= MaxHits {
			w.stopped = true
			return nil
		}
	}
	return nil
}

func isDotted(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
