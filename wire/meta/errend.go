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

package meta

// ErrorBody is the CBOR payload of a StreamError packet (after the stream-id
// prefix). Code is the §7 structured taxonomy; Message is a human-readable
// string for display to the caller, never parsed by either endpoint.
type ErrorBody struct {
	Code    uint8  `cbor:"1,keyasint"`
	Message string `cbor:"2,keyasint"`
}

func (e ErrorBody) Marshal() ([]byte, error) { return marshal(e) }

func DecodeErrorBody(b []byte) (ErrorBody, error) {
	var e ErrorBody
	err := unmarshal(b, &e)
	return e, err
}

// EndStatus is the outcome carried by a StreamEnd packet.
type EndStatus uint8

const (
	EndOK EndStatus = iota
	EndCancelled
	EndTimeout
)

// ExecOutcome classifies how a §4.4.12 child process terminated. Carried in
// EndBody.Trailer for exec streams only.
type ExecOutcome uint8

const (
	ExecNormalExit ExecOutcome = iota
	ExecKilledBySignal
	ExecTimedOut
	ExecUnknown
)

// ExecTrailer is the EndBody.Trailer payload for an exec stream's terminal End.
type ExecTrailer struct {
	Outcome ExecOutcome `cbor:"1,keyasint"`
	Detail  int32       `cbor:"2,keyasint"` // exit code, or signal number, depending on Outcome
}

// EndBody is the CBOR payload of a StreamEnd packet (after the stream-id
// prefix). Trailer is operation-specific and empty for most kinds; it carries
// an ExecTrailer for exec streams.
type EndBody struct {
	Status  EndStatus `cbor:"1,keyasint"`
	Trailer []byte    `cbor:"2,keyasint"`
}

func (e EndBody) Marshal() ([]byte, error) { return marshal(e) }

func DecodeEndBody(b []byte) (EndBody, error) {
	var e EndBody
	err := unmarshal(b, &e)
	return e, err
}

func EncodeExecTrailer(t ExecTrailer) ([]byte, error) { return marshal(t) }

func DecodeExecTrailer(b []byte) (ExecTrailer, error) {
	var t ExecTrailer
	err := unmarshal(b, &t)
	return t, err
}

// ExecChannel discriminates stdout from stderr in an exec stream's Data
// packets. Exec output is never CBOR-wrapped: it is latency-sensitive and the
// spec requires eager, un-batched forwarding (§4.4.12), so the encoding here is
// a single leading byte, not a structured record.
type ExecChannel uint8

const (
	ExecStdout ExecChannel = iota
	ExecStderr
)

// EncodeExecChunk prepends the channel discriminant to raw output bytes.
func EncodeExecChunk(ch ExecChannel, data []byte) []byte {
	out := make([]byte, 1+len(data))
	out[0] = byte(ch)
	copy(out[1:], data)
	return out
}

// SplitExecChunk reverses EncodeExecChunk.
func SplitExecChunk(body []byte) (ch ExecChannel, data []byte, ok bool) {
	if len(body) < 1 {
		return 0, nil, false
	}
	return ExecChannel(body[0]), body[1:], true
}
