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

package muxstream_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/wirebridge/flowctl"
	"github.com/nabbar/wirebridge/muxstream"
	"github.com/nabbar/wirebridge/wire"
	"github.com/nabbar/wirebridge/wire/meta"
	"github.com/nabbar/wirebridge/wireerr"
)

type recordingHandler struct {
	opened chan *muxstream.Stream
}

func (h *recordingHandler) HandleStream(s *muxstream.Stream, body meta.OpenBody) {
	h.opened <- s
}

func newTable(role muxstream.Role, tr muxstream.Transport, h muxstream.Handler) *muxstream.Table {
	send := flowctl.NewSendWindow(flowctl.MaxWindow)
	recv := flowctl.NewRecvWindow(flowctl.DefaultUpdateThreshold)
	return muxstream.NewTable(role, tr, send, recv, h, nil)
}

var _ = Describe("Table", func() {
	It("allocates ids of the correct parity per role", func() {
		relay := newTable(muxstream.RoleRelay, &fakeTransport{}, nil)
		legacy := newTable(muxstream.RoleLegacy, &fakeTransport{}, nil)

		s1, err := relay.Open(context.Background(), meta.OpStat, meta.PathMeta{Path: []byte("/a")})
		Expect(err).NotTo(HaveOccurred())
		Expect(s1.ID() % 2).To(Equal(uint32(0)))

		s2, err := legacy.Open(context.Background(), meta.OpStat, meta.PathMeta{Path: []byte("/a")})
		Expect(err).NotTo(HaveOccurred())
		Expect(s2.ID() % 2).To(Equal(uint32(1)))
	})

	It("refuses to open past the concurrent stream cap", func() {
		tr := &fakeTransport{}
		tbl := newTable(muxstream.RoleRelay, tr, nil)

		for i := 0; i < muxstream.MaxConcurrentStreams; i++ {
			_, err := tbl.Open(context.Background(), meta.OpExists, meta.PathMeta{Path: []byte("/x")})
			Expect(err).NotTo(HaveOccurred())
		}

		_, err := tbl.Open(context.Background(), meta.OpExists, meta.PathMeta{Path: []byte("/x")})
		Expect(err).To(HaveOccurred())
	})

	It("dispatches a remote StreamOpen to the handler and rejects duplicates", func() {
		h := &recordingHandler{opened: make(chan *muxstream.Stream, 1)}
		tbl := newTable(muxstream.RoleRelay, &fakeTransport{}, h)

		body, err := meta.EncodeOpenBody(meta.OpFileRead, meta.FileReadMeta{Path: []byte("/etc/hosts")})
		Expect(err).NotTo(HaveOccurred())
		payload := wire.EncodeStreamData(1, body) // odd id: legacy-initiated, valid from relay's perspective

		Expect(tbl.HandleOpen(payload)).To(Succeed())

		var opened *muxstream.Stream
		Eventually(h.opened).Should(Receive(&opened))
		Expect(opened.ID()).To(Equal(uint32(1)))
		Expect(opened.Kind()).To(Equal(meta.OpFileRead))

		Expect(tbl.HandleOpen(payload)).To(HaveOccurred())
	})

	It("rejects a remote Open using our own allocation parity", func() {
		tbl := newTable(muxstream.RoleRelay, &fakeTransport{}, nil)
		body, _ := meta.EncodeOpenBody(meta.OpExists, meta.PathMeta{Path: []byte("/x")})
		payload := wire.EncodeStreamData(2, body) // even: relay's own parity

		Expect(tbl.HandleOpen(payload)).To(HaveOccurred())
	})

	It("runs a locally-opened stream through Data/End and releases it", func() {
		tr := &fakeTransport{}
		tbl := newTable(muxstream.RoleRelay, tr, nil)

		s, err := tbl.Open(context.Background(), meta.OpFileRead, meta.FileReadMeta{Path: []byte("/tmp/f")})
		Expect(err).NotTo(HaveOccurred())
		Expect(tbl.Count()).To(Equal(1))

		Expect(s.WriteData(context.Background(), []byte("hello"))).To(Succeed())
		Expect(s.WriteEnd(meta.EndOK, nil)).To(Succeed())

		Expect(s.State()).To(Equal(muxstream.StateHalfClosedLocal))
		Expect(tbl.Count()).To(Equal(1)) // not yet released: remote half still open

		endPayload := wire.EncodeStreamData(s.ID(), mustEndBody(meta.EndOK))
		Expect(tbl.HandleEnd(endPayload)).To(Succeed())

		Eventually(func() muxstream.State { return s.State() }).Should(Equal(muxstream.StateClosed))
		Eventually(tbl.Count).Should(Equal(0))
	})

	It("closes a stream immediately on a remote StreamError", func() {
		tbl := newTable(muxstream.RoleRelay, &fakeTransport{}, nil)
		s, err := tbl.Open(context.Background(), meta.OpStat, meta.PathMeta{Path: []byte("/x")})
		Expect(err).NotTo(HaveOccurred())

		errBody, _ := meta.ErrorBody{Code: 1, Message: "not found"}.Marshal()
		payload := wire.EncodeStreamData(s.ID(), errBody)
		Expect(tbl.HandleError(payload)).To(Succeed())

		var ev muxstream.Event
		Eventually(s.Events()).Should(Receive(&ev))
		Expect(ev.Kind).To(Equal(muxstream.EventError))

		select {
		case <-s.Done():
		case <-time.After(time.Second):
			Fail("stream did not close after Error")
		}
		Eventually(tbl.Count).Should(Equal(0))
	})

	It("closes Done on a purely local WriteError, with no remote event at all", func() {
		tbl := newTable(muxstream.RoleRelay, &fakeTransport{}, nil)
		s, err := tbl.Open(context.Background(), meta.OpStat, meta.PathMeta{Path: []byte("/x")})
		Expect(err).NotTo(HaveOccurred())

		Expect(s.WriteError(wireerr.Invalid, "bad metadata")).To(Succeed())

		select {
		case <-s.Done():
		case <-time.After(time.Second):
			Fail("stream did not close after a local WriteError")
		}
		Eventually(tbl.Count).Should(Equal(0))
	})

	It("closes both sides of a one-directional one-shot op once the local half finalizes", func() {
		tbl := newTable(muxstream.RoleRelay, &fakeTransport{}, nil)
		s, err := tbl.Open(context.Background(), meta.OpStat, meta.PathMeta{Path: []byte("/x")})
		Expect(err).NotTo(HaveOccurred())

		// The peer (legacy side) is the only one that ever writes data here,
		// so the first local-driving call our own side makes is the
		// finalizing WriteEnd a one-shot op's caller issues after draining -
		// exactly what relayside.Client.drain now does.
		endPayload := wire.EncodeStreamData(s.ID(), mustEndBody(meta.EndOK))
		Expect(tbl.HandleEnd(endPayload)).To(Succeed())
		Expect(s.State()).To(Equal(muxstream.StateHalfClosedRemote))
		Expect(tbl.Count()).To(Equal(1))

		Expect(s.WriteEnd(meta.EndOK, nil)).To(Succeed())
		Expect(s.State()).To(Equal(muxstream.StateClosed))

		select {
		case <-s.Done():
		case <-time.After(time.Second):
			Fail("stream did not close after finalizing the local half")
		}
		Eventually(tbl.Count).Should(Equal(0))
	})

	It("emits a WindowUpdate once accumulated data crosses the threshold", func() {
		tr := &fakeTransport{}
		send := flowctl.NewSendWindow(flowctl.MaxWindow)
		recv := flowctl.NewRecvWindow(10)
		tbl := muxstream.NewTable(muxstream.RoleRelay, tr, send, recv, nil, nil)

		body, _ := meta.EncodeOpenBody(meta.OpFileRead, meta.FileReadMeta{Path: []byte("/x")})
		openPayload := wire.EncodeStreamData(1, body)
		Expect(tbl.HandleOpen(openPayload)).To(Succeed())

		dataPayload := wire.EncodeStreamData(1, make([]byte, 20))
		Expect(tbl.HandleData(dataPayload)).To(Succeed())

		found := false
		for _, p := range tr.Sent() {
			if p.Type == wire.TypeWindowUpdate {
				found = true
			}
		}
		Expect(found).To(BeTrue())
	})
})

func mustEndBody(status meta.EndStatus) []byte {
	b, err := meta.EndBody{Status: status}.Marshal()
	if err != nil {
		panic(err)
	}
	return b
}
