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

//go:build !windows

package legacyside

import (
	"os/exec"
	"syscall"

	"github.com/nabbar/wirebridge/wire/meta"
)

// shellCommand interprets cmdline through the POSIX shell, matching how an
// interactive legacy session would run it.
func shellCommand(cmdline string) *exec.Cmd {
	return exec.Command("/bin/sh", "-c", cmdline)
}

// sendTerminate asks the child to exit via SIGTERM; the caller still reaps
// it through cmd.Wait.
func sendTerminate(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Signal(syscall.SIGTERM)
}

// classifyWaitErr maps the result of cmd.Wait into the closed ExecOutcome
// vocabulary of §4.4.12.
func classifyWaitErr(waitErr error) (meta.ExecOutcome, int32) {
	if waitErr == nil {
		return meta.ExecNormalExit, 0
	}
	exitErr, ok := waitErr.(*exec.ExitError)
	if !ok {
		return meta.ExecUnknown, 0
	}
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok {
		return meta.ExecUnknown, 0
	}
	if status.Signaled() {
		return meta.ExecKilledBySignal, int32(status.Signal())
	}
	return meta.ExecNormalExit, int32(status.ExitStatus())
}
