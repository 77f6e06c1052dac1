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

package search_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/nabbar/wirebridge/legacyside/search"
	"github.com/nabbar/wirebridge/wire/meta"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkFindsMatchesInOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.go"), "package a\nfunc A() {}\n")
	writeFile(t, filepath.Join(root, "b.go"), "package b\n// func B does nothing\nfunc B() {}\n")
	writeFile(t, filepath.Join(root, "sub", "c.txt"), "func-like but not go\n")

	var hits []meta.SearchHit
	err := search.Walk(context.Background(), search.Options{Root: root, NamePattern: "*.go"}, []byte("func"), func(h meta.SearchHit) bool {
		hits = append(hits, h)
		return true
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d: %+v", len(hits), hits)
	}
	if hits[0].Line != 2 || string(hits[0].Path) != filepath.Join(root, "a.go") {
		t.Errorf("unexpected first hit: %+v", hits[0])
	}
}

func TestWalkSkipsBinaryContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bin.dat"), "func\x00\x00\x00trailing func bytes")

	var hits []meta.SearchHit
	err := search.Walk(context.Background(), search.Options{Root: root}, []byte("func"), func(h meta.SearchHit) bool {
		hits = append(hits, h)
		return true
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected binary file to be skipped, got %d hits", len(hits))
	}
}

func TestWalkSkipsDotAndVCSDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "func ref: refs/heads/main\n")
	writeFile(t, filepath.Join(root, "visible.go"), "func Visible() {}\n")

	var hits []meta.SearchHit
	err := search.Walk(context.Background(), search.Options{Root: root}, []byte("func"), func(h meta.SearchHit) bool {
		hits = append(hits, h)
		return true
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected only visible.go to match, got %d hits", len(hits))
	}
}

func TestWalkStopsAtMaxHits(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < search.MaxHits+20; i++ {
		writeFile(t, filepath.Join(root, fmt.Sprintf("f%03d.go", i)), "func marker() {}\n")
	}

	var hits []meta.SearchHit
	err := search.Walk(context.Background(), search.Options{Root: root}, []byte("func"), func(h meta.SearchHit) bool {
		hits = append(hits, h)
		return true
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if len(hits) != search.MaxHits {
		t.Fatalf("expected exactly MaxHits=%d hits, got %d", search.MaxHits, len(hits))
	}
}

func TestWalkHonorsEmitFalseToStopEarly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.go"), "func A() {}\n")
	writeFile(t, filepath.Join(root, "b.go"), "func B() {}\n")

	var hits []meta.SearchHit
	err := search.Walk(context.Background(), search.Options{Root: root}, []byte("func"), func(h meta.SearchHit) bool {
		hits = append(hits, h)
		return false
	})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected exactly 1 hit before stopping, got %d", len(hits))
	}
}

func TestWalkRejectsNonDirectoryRoot(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "notadir")
	writeFile(t, file, "func x() {}\n")

	err := search.Walk(context.Background(), search.Options{Root: file}, []byte("func"), func(meta.SearchHit) bool {
		return true
	})
	if err == nil {
		t.Fatal("expected an error for non-directory root")
	}
}
