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

package legacyside_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/wirebridge/muxstream"
	"github.com/nabbar/wirebridge/wire"
	"github.com/nabbar/wirebridge/wire/meta"
	"github.com/nabbar/wirebridge/wireerr"
)

func drainToEnd(s *muxstream.Stream) ([][]byte, meta.EndBody) {
	var chunks [][]byte
	for {
		var ev muxstream.Event
		Eventually(s.Events(), 2*time.Second).Should(Receive(&ev))
		switch ev.Kind {
		case muxstream.EventData:
			chunks = append(chunks, ev.Data)
		case muxstream.EventEnd:
			return chunks, ev.End
		case muxstream.EventError:
			Fail("unexpected stream error: " + ev.Err.Message)
		case muxstream.EventCancel:
			Fail("unexpected stream cancel")
		}
	}
}

var _ = Describe("Dispatcher", func() {
	var root string

	BeforeEach(func() {
		root = GinkgoT().TempDir()
	})

	It("reads a file back in chunks and ends OK", func() {
		content := []byte("hello, legacy endpoint\n")
		Expect(os.WriteFile(filepath.Join(root, "greeting.txt"), content, 0o644)).To(Succeed())

		client, _ := newLinkedTables(newDispatcher(root))
		s, err := client.Open(context.Background(), meta.OpFileRead, meta.FileReadMeta{Path: []byte("/greeting.txt")})
		Expect(err).NotTo(HaveOccurred())

		chunks, end := drainToEnd(s)
		Expect(end.Status).To(Equal(meta.EndOK))

		var got []byte
		for _, c := range chunks {
			got = append(got, c...)
		}
		Expect(got).To(Equal(content))
	})

	It("reports NotFound reading a missing file", func() {
		client, _ := newLinkedTables(newDispatcher(root))
		s, err := client.Open(context.Background(), meta.OpFileRead, meta.FileReadMeta{Path: []byte("/nope.txt")})
		Expect(err).NotTo(HaveOccurred())

		var ev muxstream.Event
		Eventually(s.Events(), 2*time.Second).Should(Receive(&ev))
		Expect(ev.Kind).To(Equal(muxstream.EventError))
		Expect(ev.Err.Code).To(Equal(uint8(1))) // wireerr.NotFound
	})

	It("rejects a path over the maximum length as Invalid", func() {
		client, _ := newLinkedTables(newDispatcher(root))
		tooLong := make([]byte, wire.MaxPathLength+1)
		for i := range tooLong {
			tooLong[i] = 'a'
		}
		s, err := client.Open(context.Background(), meta.OpStat, meta.PathMeta{Path: tooLong})
		Expect(err).NotTo(HaveOccurred())

		var ev muxstream.Event
		Eventually(s.Events(), 2*time.Second).Should(Receive(&ev))
		Expect(ev.Kind).To(Equal(muxstream.EventError))
		Expect(ev.Err.Code).To(Equal(uint8(wireerr.Invalid)))
	})

	It("rejects a path containing an embedded null byte as Invalid", func() {
		client, _ := newLinkedTables(newDispatcher(root))
		s, err := client.Open(context.Background(), meta.OpStat, meta.PathMeta{Path: []byte("/a\x00b")})
		Expect(err).NotTo(HaveOccurred())

		var ev muxstream.Event
		Eventually(s.Events(), 2*time.Second).Should(Receive(&ev))
		Expect(ev.Kind).To(Equal(muxstream.EventError))
		Expect(ev.Err.Code).To(Equal(uint8(wireerr.Invalid)))
	})

	It("writes a file from streamed Data and End", func() {
		client, _ := newLinkedTables(newDispatcher(root))
		s, err := client.Open(context.Background(), meta.OpFileWrite, meta.FileWriteMeta{Path: []byte("/out.txt")})
		Expect(err).NotTo(HaveOccurred())

		Expect(s.WriteData(context.Background(), []byte("part one "))).To(Succeed())
		Expect(s.WriteData(context.Background(), []byte("part two"))).To(Succeed())
		Expect(s.WriteEnd(meta.EndOK, nil)).To(Succeed())

		var ev muxstream.Event
		Eventually(s.Events(), 2*time.Second).Should(Receive(&ev))
		Expect(ev.Kind).To(Equal(muxstream.EventEnd))
		Expect(ev.End.Status).To(Equal(meta.EndOK))

		got, err := os.ReadFile(filepath.Join(root, "out.txt"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(got)).To(Equal("part one part two"))
	})

	It("stats an existing file", func() {
		Expect(os.WriteFile(filepath.Join(root, "f"), []byte("1234"), 0o644)).To(Succeed())

		client, _ := newLinkedTables(newDispatcher(root))
		s, err := client.Open(context.Background(), meta.OpStat, meta.PathMeta{Path: []byte("/f")})
		Expect(err).NotTo(HaveOccurred())

		chunks, end := drainToEnd(s)
		Expect(end.Status).To(Equal(meta.EndOK))
		Expect(chunks).To(HaveLen(1))

		reply, err := meta.DecodeStatReply(chunks[0])
		Expect(err).NotTo(HaveOccurred())
		Expect(reply.Exists).To(BeTrue())
		Expect(reply.Size).To(Equal(int64(4)))
		Expect(reply.Kind).To(Equal(meta.EntryFile))
	})

	It("reports exists=false for a missing path without erroring", func() {
		client, _ := newLinkedTables(newDispatcher(root))
		s, err := client.Open(context.Background(), meta.OpExists, meta.PathMeta{Path: []byte("/missing")})
		Expect(err).NotTo(HaveOccurred())

		chunks, end := drainToEnd(s)
		Expect(end.Status).To(Equal(meta.EndOK))
		reply, err := meta.DecodeExistsReply(chunks[0])
		Expect(err).NotTo(HaveOccurred())
		Expect(reply.Exists).To(BeFalse())
	})

	It("creates nested directories with make-dir", func() {
		client, _ := newLinkedTables(newDispatcher(root))
		s, err := client.Open(context.Background(), meta.OpMakeDir, meta.PathMeta{Path: []byte("/a/b/c")})
		Expect(err).NotTo(HaveOccurred())

		_, end := drainToEnd(s)
		Expect(end.Status).To(Equal(meta.EndOK))

		info, err := os.Stat(filepath.Join(root, "a", "b", "c"))
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsDir()).To(BeTrue())
	})

	It("removes a single file", func() {
		p := filepath.Join(root, "doomed")
		Expect(os.WriteFile(p, []byte("x"), 0o644)).To(Succeed())

		client, _ := newLinkedTables(newDispatcher(root))
		s, err := client.Open(context.Background(), meta.OpRemove, meta.PathMeta{Path: []byte("/doomed")})
		Expect(err).NotTo(HaveOccurred())

		_, end := drainToEnd(s)
		Expect(end.Status).To(Equal(meta.EndOK))
		_, statErr := os.Stat(p)
		Expect(os.IsNotExist(statErr)).To(BeTrue())
	})

	It("moves a file within the same root", func() {
		Expect(os.WriteFile(filepath.Join(root, "src"), []byte("x"), 0o644)).To(Succeed())

		client, _ := newLinkedTables(newDispatcher(root))
		s, err := client.Open(context.Background(), meta.OpMove, meta.MoveMeta{Src: []byte("/src"), Dst: []byte("/dst")})
		Expect(err).NotTo(HaveOccurred())

		_, end := drainToEnd(s)
		Expect(end.Status).To(Equal(meta.EndOK))
		_, err = os.Stat(filepath.Join(root, "dst"))
		Expect(err).NotTo(HaveOccurred())
	})

	It("resolves a path through a symlink", func() {
		Expect(os.WriteFile(filepath.Join(root, "real"), []byte("x"), 0o644)).To(Succeed())
		Expect(os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link"))).To(Succeed())

		client, _ := newLinkedTables(newDispatcher(root))
		s, err := client.Open(context.Background(), meta.OpResolve, meta.PathMeta{Path: []byte("/link")})
		Expect(err).NotTo(HaveOccurred())

		chunks, end := drainToEnd(s)
		Expect(end.Status).To(Equal(meta.EndOK))
		reply, err := meta.DecodeResolveReply(chunks[0])
		Expect(err).NotTo(HaveOccurred())
		Expect(reply.Path).To(Equal([]byte(filepath.Join(root, "real"))))
	})

	It("lists directory entries excluding . and ..", func() {
		Expect(os.WriteFile(filepath.Join(root, "one.txt"), []byte("1"), 0o644)).To(Succeed())
		Expect(os.Mkdir(filepath.Join(root, "sub"), 0o755)).To(Succeed())

		client, _ := newLinkedTables(newDispatcher(root))
		s, err := client.Open(context.Background(), meta.OpListDir, meta.PathMeta{Path: []byte("/")})
		Expect(err).NotTo(HaveOccurred())

		chunks, end := drainToEnd(s)
		Expect(end.Status).To(Equal(meta.EndOK))
		Expect(chunks).To(HaveLen(2))

		names := map[string]meta.EntryKind{}
		for _, c := range chunks {
			entry, derr := meta.DecodeDirEntry(c)
			Expect(derr).NotTo(HaveOccurred())
			names[string(entry.Name)] = entry.Kind
		}
		Expect(names).To(HaveKeyWithValue("one.txt", meta.EntryFile))
		Expect(names).To(HaveKeyWithValue("sub", meta.EntryDirectory))
	})

	It("finds files matching a glob pattern", func() {
		Expect(os.MkdirAll(filepath.Join(root, "pkg"), 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(root, "pkg", "a.go"), []byte("x"), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(root, "pkg", "a.txt"), []byte("x"), 0o644)).To(Succeed())

		client, _ := newLinkedTables(newDispatcher(root))
		s, err := client.Open(context.Background(), meta.OpGlobFind, meta.GlobMeta{Base: []byte("/"), Pattern: []byte("*.go")})
		Expect(err).NotTo(HaveOccurred())

		chunks, end := drainToEnd(s)
		Expect(end.Status).To(Equal(meta.EndOK))
		Expect(chunks).To(HaveLen(1))
		Expect(string(chunks[0])).To(Equal(filepath.Join(root, "pkg", "a.go")))
	})

	It("finds substring matches with content search", func() {
		Expect(os.WriteFile(filepath.Join(root, "a.go"), []byte("package a\nfunc A() {}\n"), 0o644)).To(Succeed())

		client, _ := newLinkedTables(newDispatcher(root))
		s, err := client.Open(context.Background(), meta.OpSearch, meta.SearchMeta{Base: []byte("/"), Pattern: []byte("func")})
		Expect(err).NotTo(HaveOccurred())

		chunks, end := drainToEnd(s)
		Expect(end.Status).To(Equal(meta.EndOK))
		Expect(chunks).To(HaveLen(1))

		hit, err := meta.DecodeSearchHit(chunks[0])
		Expect(err).NotTo(HaveOccurred())
		Expect(hit.Line).To(Equal(int64(2)))
		Expect(string(hit.Text)).To(Equal("func A() {}"))
	})

	It("executes a command and reports normal exit", func() {
		client, _ := newLinkedTables(newDispatcher(root))
		s, err := client.Open(context.Background(), meta.OpExec, meta.ExecMeta{Command: []byte("echo hi")})
		Expect(err).NotTo(HaveOccurred())

		chunks, end := drainToEnd(s)
		Expect(end.Status).To(Equal(meta.EndOK))

		var out []byte
		for _, c := range chunks {
			_, data, ok := meta.SplitExecChunk(c)
			Expect(ok).To(BeTrue())
			out = append(out, data...)
		}
		Expect(string(out)).To(Equal("hi\n"))

		trailer, err := meta.DecodeExecTrailer(end.Trailer)
		Expect(err).NotTo(HaveOccurred())
		Expect(trailer.Outcome).To(Equal(meta.ExecNormalExit))
		Expect(trailer.Detail).To(Equal(int32(0)))
	})

	It("accepts a Cancel on a running exec stream", func() {
		client, _ := newLinkedTables(newDispatcher(root))
		s, err := client.Open(context.Background(), meta.OpExec, meta.ExecMeta{Command: []byte("sleep 30")})
		Expect(err).NotTo(HaveOccurred())

		Expect(s.Cancel()).To(Succeed())
	})
})
