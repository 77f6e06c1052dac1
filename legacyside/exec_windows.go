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

//go:build windows

package legacyside

import (
	"os/exec"

	"github.com/nabbar/wirebridge/wire/meta"
)

// shellCommand interprets cmdline through cmd.exe, the nearest Windows
// equivalent of the POSIX shell invocation used elsewhere.
func shellCommand(cmdline string) *exec.Cmd {
	return exec.Command("cmd", "/C", cmdline)
}

// sendTerminate has no SIGTERM equivalent on Windows; Kill is the closest
// available primitive, so cancellation is immediate rather than graceful.
func sendTerminate(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Kill()
}

// classifyWaitErr maps the result of cmd.Wait into the closed ExecOutcome
// vocabulary of §4.4.12. Windows has no signal concept, so KilledBySignal is
// never produced here.
func classifyWaitErr(waitErr error) (meta.ExecOutcome, int32) {
	if waitErr == nil {
		return meta.ExecNormalExit, 0
	}
	exitErr, ok := waitErr.(*exec.ExitError)
	if !ok {
		return meta.ExecUnknown, 0
	}
	return meta.ExecNormalExit, int32(exitErr.ExitCode())
}
