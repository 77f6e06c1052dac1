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

package flowctl

import (
	"context"
	"fmt"
	"math"
	"sync"
)

// ErrWindowOverflow is returned by Credit when the increment would overflow
// the sender's window tracking integer — a protocol error per §4.2.
type ErrWindowOverflow struct {
	Current   uint64
	Increment uint32
}

func (e *ErrWindowOverflow) Error() string {
	return fmt.Sprintf("flowctl: window credit overflow: current=%d increment=%d", e.Current, e.Increment)
}

// SendWindow gates outbound payload bytes against the peer's advertised
// window. Reserve blocks until enough credit is available or ctx is done;
// Credit is called whenever a WindowUpdate arrives from the peer.
//
// Invariant (§8.2): 0 <= InFlight() <= peer advertised window, at all times.
type SendWindow struct {
	mu       sync.Mutex
	window   uint64 // cumulative credit: the peer's initial advertisement plus every WindowUpdate increment
	inFlight uint64 // cumulative bytes reserved, less any bytes retired by Release
	waiters  []chan struct{}
	closed   bool
}

// NewSendWindow creates a SendWindow with the given initial advertised
// window (the value the peer sent in Hello/HelloAck).
func NewSendWindow(initial uint32) *SendWindow {
	return &SendWindow{window: uint64(initial)}
}

// Reserve blocks until n bytes of outbound credit are available, then
// subtracts them, or returns ctx.Err() if ctx is cancelled first. n itself may
// exceed the total window (e.g. a single chunk larger than the window never
// fits) — callers MUST chunk their writes to at most the window size; Reserve
// does not fragment on their behalf.
func (w *SendWindow) Reserve(ctx context.Context, n uint32) error {
	for {
		w.mu.Lock()
		if w.closed {
			w.mu.Unlock()
			return fmt.Errorf("flowctl: send window closed")
		}
		if w.inFlight+uint64(n) <= w.window {
			w.inFlight += uint64(n)
			w.mu.Unlock()
			return nil
		}
		ch := make(chan struct{})
		w.waiters = append(w.waiters, ch)
		w.mu.Unlock()

		select {
		case <-ch:
			// retry
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Credit applies an inbound WindowUpdate increment, growing the peer's
// advertised budget and waking any blocked Reserve calls.
func (w *SendWindow) Credit(increment uint32) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if uint64(increment) > math.MaxUint64-w.window {
		return &ErrWindowOverflow{Current: w.window, Increment: increment}
	}
	w.window += uint64(increment)
	w.release(w.inFlight)
	return nil
}

// Release retires n bytes from in-flight accounting directly, without
// changing the window itself — used when a stream closes with buffered bytes
// that will never be acknowledged (the peer stopped caring), so they must not
// permanently consume budget from sibling streams.
func (w *SendWindow) Release(n uint32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if uint64(n) > w.inFlight {
		w.inFlight = 0
	} else {
		w.inFlight -= uint64(n)
	}
	w.release(w.inFlight)
}

// release wakes every waiter; each re-checks the condition itself, so a
// spurious wake costs a loop iteration, never correctness.
func (w *SendWindow) release(_ uint64) {
	for _, ch := range w.waiters {
		close(ch)
	}
	w.waiters = nil
}

// InFlight returns the cumulative reserved byte count (less any Release), for
// tests and metrics. Credit raises the window rather than lowering this count.
func (w *SendWindow) InFlight() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight
}

// Close unblocks every pending Reserve with an error; used on connection
// teardown so stream goroutines don't leak waiting for credit that will never
// come.
func (w *SendWindow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	for _, ch := range w.waiters {
		close(ch)
	}
	w.waiters = nil
}
