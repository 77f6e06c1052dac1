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

import "sync"

// RecvWindow tracks bytes received but not yet acknowledged to the peer, and
// decides when to emit a WindowUpdate. It never blocks: accumulation always
// succeeds, since refusing to account for already-received bytes would just
// move the problem, not solve it.
type RecvWindow struct {
	mu        sync.Mutex
	threshold uint32
	pending   uint32
}

// NewRecvWindow creates a RecvWindow that signals a flush once pending bytes
// cross threshold. A threshold of 0 uses DefaultUpdateThreshold.
func NewRecvWindow(threshold uint32) *RecvWindow {
	if threshold == 0 {
		threshold = DefaultUpdateThreshold
	}
	return &RecvWindow{threshold: threshold}
}

// Accumulate records n freshly received payload bytes and reports the
// increment to advertise via WindowUpdate if the threshold was crossed (0
// means "not yet, keep accumulating").
func (r *RecvWindow) Accumulate(n uint32) (increment uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending += n
	if r.pending >= r.threshold {
		increment = r.pending
		r.pending = 0
	}
	return increment
}

// Flush forces any accumulated-but-not-yet-advertised bytes to be reported,
// used on stream completion per §3 ("... or on stream completion").
func (r *RecvWindow) Flush() (increment uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	increment = r.pending
	r.pending = 0
	return increment
}
