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
	"sync"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/wirebridge/flowctl"
	"github.com/nabbar/wirebridge/legacyside"
	"github.com/nabbar/wirebridge/muxstream"
	"github.com/nabbar/wirebridge/wire"
)

func TestLegacyside(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Legacyside Suite")
}

// wireTransport forwards every packet it is asked to Send straight into a
// peer Table's matching Handle* method, the same dispatch a *session would
// perform, so these tests exercise the real StreamOpen/Data/End/Error wire
// path instead of calling Dispatcher methods directly.
type wireTransport struct {
	mu   sync.Mutex
	peer *muxstream.Table
}

func (w *wireTransport) Send(t wire.Type, payload []byte) error {
	w.mu.Lock()
	peer := w.peer
	w.mu.Unlock()
	if peer == nil {
		return nil
	}
	switch t {
	case wire.TypeStreamOpen:
		return peer.HandleOpen(payload)
	case wire.TypeStreamData:
		return peer.HandleData(payload)
	case wire.TypeStreamEnd:
		return peer.HandleEnd(payload)
	case wire.TypeStreamError:
		return peer.HandleError(payload)
	case wire.TypeStreamCancel:
		return peer.HandleCancel(payload)
	case wire.TypeWindowUpdate:
		return nil
	}
	return nil
}

// newLinkedTables builds a client Table (RoleRelay, no handler — the test
// drives it directly via Open) wired bidirectionally to a legacy Table whose
// Handler is d.
func newLinkedTables(d muxstream.Handler) (client *muxstream.Table, legacyTr *wireTransport) {
	clientTr := &wireTransport{}
	legacyTr = &wireTransport{}

	client = muxstream.NewTable(muxstream.RoleRelay, clientTr, flowctl.NewSendWindow(flowctl.MaxWindow), flowctl.NewRecvWindow(flowctl.DefaultUpdateThreshold), nil, nil)
	legacy := muxstream.NewTable(muxstream.RoleLegacy, legacyTr, flowctl.NewSendWindow(flowctl.MaxWindow), flowctl.NewRecvWindow(flowctl.DefaultUpdateThreshold), d, nil)

	clientTr.peer = legacy
	legacyTr.peer = client
	return client, legacyTr
}

func newDispatcher(root string) *legacyside.Dispatcher {
	return &legacyside.Dispatcher{Root: root}
}
