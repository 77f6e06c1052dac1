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

package legacyside

import (
	"context"
	"os"
	"time"

	"github.com/nabbar/wirebridge/muxstream"
	"github.com/nabbar/wirebridge/wire/meta"
	"github.com/nabbar/wirebridge/wireerr"
)

type execChunk struct {
	data []byte
	err  error
}

// handleExec implements §4.4.12: spawn the command through the platform
// shell, merge stdout/stderr into one byte stream, forward output as soon as
// it is available (never batching to fill a chunk), and react to Cancel with
// SIGTERM-then-reap.
func (d *Dispatcher) handleExec(ctx context.Context, s *muxstream.Stream, raw []byte) error {
	m, err := meta.DecodeExecMeta(raw)
	if err != nil {
		return wireerr.Wrap(err)
	}

	cmd := shellCommand(string(m.Command))
	pr, pw, err := os.Pipe()
	if err != nil {
		return wireerr.Wrap(err)
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		return wireerr.Wrap(err)
	}
	_ = pw.Close()

	chunks := make(chan execChunk, 4)
	go func() {
		buf := make([]byte, dataChunkSize)
		for {
			n, rerr := pr.Read(buf)
			if n > 0 {
				cp := make([]byte, n)
				copy(cp, buf[:n])
				chunks <- execChunk{data: cp}
			}
			if rerr != nil {
				chunks <- execChunk{err: rerr}
				return
			}
		}
	}()

	waitDone := make(chan error, 1)
	go func() { waitDone <- cmd.Wait() }()

	var timeoutC <-chan time.Time
	if m.TimeoutSec > 0 {
		timer := time.NewTimer(time.Duration(m.TimeoutSec) * time.Second)
		defer timer.Stop()
		timeoutC = timer.C
	}

	cancelled := false
	var waitErr error
	waited := false

loop:
	for {
		select {
		case c := <-chunks:
			if len(c.data) > 0 {
				if werr := s.WriteData(ctx, meta.EncodeExecChunk(meta.ExecStdout, c.data)); werr != nil {
					_ = pr.Close()
					return werr
				}
			}
			if c.err != nil {
				// reader side of the pipe is done (process closed its fds);
				// the exit status is still pending on waitDone.
			}
		case waitErr = <-waitDone:
			waited = true
			break loop
		case <-ctx.Done():
			cancelled = true
			sendTerminate(cmd)
		case <-timeoutC:
			cancelled = true
			sendTerminate(cmd)
		}
	}
	_ = pr.Close()
	if !waited {
		waitErr = <-waitDone
	}
	drainExecChunks(chunks, func(b []byte) { _ = s.WriteData(ctx, meta.EncodeExecChunk(meta.ExecStdout, b)) })

	if cancelled {
		trailer, _ := meta.EncodeExecTrailer(meta.ExecTrailer{Outcome: meta.ExecKilledBySignal})
		return s.WriteEnd(meta.EndCancelled, trailer)
	}

	outcome, detail := classifyWaitErr(waitErr)
	trailer, terr := meta.EncodeExecTrailer(meta.ExecTrailer{Outcome: outcome, Detail: detail})
	if terr != nil {
		return wireerr.Wrap(terr)
	}
	return s.WriteEnd(meta.EndOK, trailer)
}

// drainExecChunks flushes any output already buffered on chunks without
// blocking, so a process that wrote its last bytes right before exiting
// isn't truncated.
func drainExecChunks(chunks chan execChunk, emit func([]byte)) {
	for {
		select {
		case c := <-chunks:
			if len(c.data) > 0 {
				emit(c.data)
			}
			if c.err != nil {
				return
			}
		default:
			return
		}
	}
}
