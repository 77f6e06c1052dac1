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

package session_test

import (
	"context"
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/wirebridge/muxstream"
	"github.com/nabbar/wirebridge/session"
	"github.com/nabbar/wirebridge/wire/meta"
)

type noopStreamHandler struct{}

func (noopStreamHandler) HandleStream(*muxstream.Stream, meta.OpenBody) {}

type recordingTermHandler struct {
	input chan []byte
}

func (h *recordingTermHandler) HandleInput(data []byte) {
	cp := append([]byte(nil), data...)
	h.input <- cp
}
func (h *recordingTermHandler) HandleOutput([]byte)      {}
func (h *recordingTermHandler) HandleResize(_, _ uint16) {}

var _ = Describe("Session handshake and terminal relay", func() {
	It("negotiates version/window and relays terminal input end to end", func() {
		clientConn, serverConn := net.Pipe()

		termHandler := &recordingTermHandler{input: make(chan []byte, 1)}

		initiator := session.New(clientConn, session.Config{
			Role:             session.RoleInitiator,
			MuxRole:          muxstream.RoleLegacy,
			Window:           64 * 1024,
			Cwd:              "/home/user",
			PingInterval:     50 * time.Millisecond,
			PongDeadline:     200 * time.Millisecond,
			HandshakeTimeout: time.Second,
			StreamHandler:    noopStreamHandler{},
		})
		acceptor := session.New(serverConn, session.Config{
			Role:             session.RoleAcceptor,
			MuxRole:          muxstream.RoleRelay,
			Window:           64 * 1024,
			PingInterval:     50 * time.Millisecond,
			PongDeadline:     200 * time.Millisecond,
			HandshakeTimeout: time.Second,
			StreamHandler:    noopStreamHandler{},
			TerminalHandler:  termHandler,
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		initiatorDone := make(chan error, 1)
		acceptorDone := make(chan error, 1)
		go func() { initiatorDone <- initiator.Run(ctx) }()
		go func() { acceptorDone <- acceptor.Run(ctx) }()

		// Give the handshake a moment to complete before driving traffic.
		time.Sleep(100 * time.Millisecond)

		Expect(initiator.Terminal).NotTo(BeNil())
		Expect(initiator.Terminal.WriteInput(context.Background(), []byte("ls\n"))).To(Succeed())

		Eventually(termHandler.input, time.Second).Should(Receive(Equal([]byte("ls\n"))))

		Expect(acceptor.PeerCwd()).To(Equal([]byte("/home/user")))

		cancel()
		Eventually(initiatorDone, time.Second).Should(Receive())
		Eventually(acceptorDone, time.Second).Should(Receive())
	})
})
