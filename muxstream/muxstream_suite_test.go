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
	"sync"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/wirebridge/wire"
)

func TestMuxstream(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Muxstream Suite")
}

// fakeTransport records every packet handed to Send, for assertions, and
// optionally forwards it straight to a peer Table to simulate a connection.
type fakeTransport struct {
	mu   sync.Mutex
	sent []sentPacket
	peer func(t wire.Type, payload []byte) error
}

type sentPacket struct {
	Type    wire.Type
	Payload []byte
}

func (f *fakeTransport) Send(t wire.Type, payload []byte) error {
	f.mu.Lock()
	f.sent = append(f.sent, sentPacket{Type: t, Payload: payload})
	peer := f.peer
	f.mu.Unlock()
	if peer != nil {
		return peer(t, payload)
	}
	return nil
}

func (f *fakeTransport) Sent() []sentPacket {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentPacket, len(f.sent))
	copy(out, f.sent)
	return out
}
