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

package relayside_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/wirebridge/wire/meta"
	"github.com/nabbar/wirebridge/wireerr"
)

// codeOf extracts the wireerr.Code from err, failing the spec if err is not
// a *wireerr.Error (every error relayside.Client returns from a stream's
// Error/Cancel event is one).
func codeOf(err error) wireerr.Code {
	var we *wireerr.Error
	Expect(errors.As(err, &we)).To(BeTrue(), "expected a *wireerr.Error, got %T: %v", err, err)
	return we.Code
}

var _ = Describe("Client", func() {
	var (
		root string
		ctx  context.Context
	)

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		ctx = context.Background()
	})

	It("round-trips a file through WriteFile and ReadFile", func() {
		c := newClient(root)

		Expect(c.WriteFile(ctx, "/greeting.txt", 0o644, []byte("hello relay"))).To(Succeed())

		got, err := c.ReadFile(ctx, "/greeting.txt")
		Expect(err).NotTo(HaveOccurred())
		Expect(string(got)).To(Equal("hello relay"))
	})

	It("returns a wireerr.NotFound reading a missing file", func() {
		c := newClient(root)

		_, err := c.ReadFile(ctx, "/nope.txt")
		Expect(err).To(HaveOccurred())
		Expect(codeOf(err)).To(Equal(wireerr.NotFound))
	})

	It("stats a file it just wrote", func() {
		c := newClient(root)
		Expect(c.WriteFile(ctx, "/f", 0o644, []byte("1234"))).To(Succeed())

		reply, err := c.Stat(ctx, "/f")
		Expect(err).NotTo(HaveOccurred())
		Expect(reply.Exists).To(BeTrue())
		Expect(reply.Size).To(Equal(int64(4)))
	})

	It("reports exists=false without error for a missing path", func() {
		c := newClient(root)

		ok, err := c.Exists(ctx, "/missing")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("creates nested directories, then lists and removes within them", func() {
		c := newClient(root)

		Expect(c.MakeDir(ctx, "/a/b")).To(Succeed())
		Expect(c.WriteFile(ctx, "/a/b/leaf.txt", 0o644, []byte("x"))).To(Succeed())

		entries, err := c.ListDir(ctx, "/a/b")
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
		Expect(string(entries[0].Name)).To(Equal("leaf.txt"))

		Expect(c.Remove(ctx, "/a/b/leaf.txt")).To(Succeed())
		entries, err = c.ListDir(ctx, "/a/b")
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(BeEmpty())
	})

	It("moves a file to a new path", func() {
		c := newClient(root)
		Expect(c.WriteFile(ctx, "/src", 0o644, []byte("x"))).To(Succeed())

		Expect(c.Move(ctx, "/src", "/dst")).To(Succeed())

		_, err := os.Stat(filepath.Join(root, "dst"))
		Expect(err).NotTo(HaveOccurred())
	})

	It("resolves a symlink to its target's absolute path", func() {
		Expect(os.WriteFile(filepath.Join(root, "real"), []byte("x"), 0o644)).To(Succeed())
		Expect(os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link"))).To(Succeed())

		c := newClient(root)
		resolved, err := c.Resolve(ctx, "/link")
		Expect(err).NotTo(HaveOccurred())
		Expect(resolved).To(Equal(filepath.Join(root, "real")))
	})

	It("finds files by glob pattern", func() {
		Expect(os.MkdirAll(filepath.Join(root, "pkg"), 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(root, "pkg", "a.go"), []byte("x"), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(root, "pkg", "a.txt"), []byte("x"), 0o644)).To(Succeed())

		c := newClient(root)
		paths, err := c.GlobFind(ctx, "/", "*.go")
		Expect(err).NotTo(HaveOccurred())
		Expect(paths).To(ConsistOf(filepath.Join(root, "pkg", "a.go")))
	})

	It("finds a substring match through content search", func() {
		Expect(os.WriteFile(filepath.Join(root, "a.go"), []byte("package a\nfunc A() {}\n"), 0o644)).To(Succeed())

		c := newClient(root)
		hits, err := c.Search(ctx, "/", "func", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(hits).To(HaveLen(1))
		Expect(hits[0].Line).To(Equal(int64(2)))
	})

	It("executes a command and collects its merged output", func() {
		c := newClient(root)

		var out []byte
		trailer, err := c.Exec(ctx, "echo hi", 0, func(_ meta.ExecChannel, data []byte) {
			out = append(out, data...)
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(Equal("hi\n"))
		Expect(trailer.Outcome).To(Equal(meta.ExecNormalExit))
		Expect(trailer.Detail).To(Equal(int32(0)))
	})

	It("reports a non-zero exit code without treating it as an error", func() {
		c := newClient(root)

		trailer, err := c.Exec(ctx, "exit 7", 0, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(trailer.Outcome).To(Equal(meta.ExecNormalExit))
		Expect(trailer.Detail).To(Equal(int32(7)))
	})

	It("cancels a long-running command and reports it as cancelled", func() {
		c := newClient(root)
		cctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		_, err := c.Exec(cctx, "sleep 30", 0, nil)
		Expect(err).To(HaveOccurred())
		Expect(codeOf(err)).To(Equal(wireerr.Cancelled))
	})

	It("releases every stream slot across many sequential one-shot ops", func() {
		Expect(os.WriteFile(filepath.Join(root, "f"), []byte("x"), 0o644)).To(Succeed())

		c := newClient(root)
		for i := 0; i < 300; i++ {
			_, err := c.Stat(ctx, "/f")
			Expect(err).NotTo(HaveOccurred())
		}
	})
})
