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

package relayside

import (
	"context"
	"time"

	"github.com/nabbar/wirebridge/wire/meta"
	"github.com/nabbar/wirebridge/wireerr"
)

// Exec implements §4.4.12. onOutput, when non-nil, is invoked once per Data
// packet in arrival order with the channel it was written on (merged
// stdout/stderr, so ch is almost always meta.ExecStdout); a nil onOutput
// discards output and only the final ExecTrailer is returned.
//
// Cancelling ctx mid-run sends StreamCancel, which the legacy endpoint turns
// into SIGTERM-then-reap, but the call does not wait around for that to
// finish: the stream is released from this side's table the instant Cancel
// is sent, so any terminal packet the peer later emits arrives at an id this
// side no longer recognizes and is silently dropped. Exec therefore returns
// a synthetic ExecKilledBySignal/Cancelled the moment ctx fires rather than
// the real trailer from the child process.
func (c *Client) Exec(ctx context.Context, command string, timeout time.Duration, onOutput func(ch meta.ExecChannel, data []byte)) (meta.ExecTrailer, error) {
	var timeoutSec uint32
	if timeout > 0 {
		timeoutSec = uint32(timeout / time.Second)
	}

	s, err := c.open(ctx, meta.OpExec, meta.ExecMeta{Command: []byte(command), TimeoutSec: timeoutSec})
	if err != nil {
		return meta.ExecTrailer{}, err
	}

	end, err := c.drain(ctx, s, func(b []byte) {
		if onOutput == nil {
			return
		}
		ch, data, ok := meta.SplitExecChunk(b)
		if ok {
			onOutput(ch, data)
		}
	})
	if err != nil {
		return meta.ExecTrailer{}, err
	}
	if end.Status == meta.EndCancelled {
		return meta.ExecTrailer{Outcome: meta.ExecKilledBySignal}, wireerr.New(wireerr.Cancelled)
	}
	return meta.DecodeExecTrailer(end.Trailer)
}
