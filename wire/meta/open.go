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

import "fmt"

// OpenBody is the payload of a StreamOpen packet, after the 4-byte stream id
// has been split off by wire.SplitStreamPayload: one byte of OpKind followed by
// the kind-specific CBOR metadata record.
type OpenBody struct {
	Kind OpKind
	Raw  []byte
}

func EncodeOpenBody(kind OpKind, metadata interface{}) ([]byte, error) {
	enc, err := marshal(metadata)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 1+len(enc))
	out[0] = byte(kind)
	copy(out[1:], enc)
	return out, nil
}

func DecodeOpenBody(b []byte) (OpenBody, error) {
	if len(b) < 1 {
		return OpenBody{}, fmt.Errorf("meta: empty StreamOpen body")
	}
	return OpenBody{Kind: OpKind(b[0]), Raw: b[1:]}, nil
}

// FileReadMeta is the StreamOpen metadata for §4.4.1.
type FileReadMeta struct {
	Path []byte `cbor:"1,keyasint"`
}

// FileWriteMeta is the StreamOpen metadata for §4.4.2. Mode 0 means "use the
// implementation default" (0644).
type FileWriteMeta struct {
	Path []byte `cbor:"1,keyasint"`
	Mode uint32 `cbor:"2,keyasint"`
}

// PathMeta is shared by the single-path operations: stat/lstat, exists,
// make-dir, remove, resolve-path, list-dir.
type PathMeta struct {
	Path []byte `cbor:"1,keyasint"`
}

// MoveMeta is the StreamOpen metadata for §4.4.7.
type MoveMeta struct {
	Src []byte `cbor:"1,keyasint"`
	Dst []byte `cbor:"2,keyasint"`
}

// GlobMeta is the StreamOpen metadata for §4.4.10.
type GlobMeta struct {
	Base    []byte `cbor:"1,keyasint"`
	Pattern []byte `cbor:"2,keyasint"`
}

// SearchMeta is the StreamOpen metadata for §4.4.11. FilePattern is optional
// (empty means "all files").
type SearchMeta struct {
	Base        []byte `cbor:"1,keyasint"`
	Pattern     []byte `cbor:"2,keyasint"`
	FilePattern []byte `cbor:"3,keyasint"`
}

// ExecMeta is the StreamOpen metadata for §4.4.12.
type ExecMeta struct {
	Command    []byte `cbor:"1,keyasint"`
	TimeoutSec uint32 `cbor:"2,keyasint"` // 0 means no timeout
}

func DecodeFileReadMeta(b []byte) (FileReadMeta, error) {
	var m FileReadMeta
	err := unmarshal(b, &m)
	return m, err
}

func DecodeFileWriteMeta(b []byte) (FileWriteMeta, error) {
	var m FileWriteMeta
	err := unmarshal(b, &m)
	return m, err
}

func DecodePathMeta(b []byte) (PathMeta, error) {
	var m PathMeta
	err := unmarshal(b, &m)
	return m, err
}

func DecodeMoveMeta(b []byte) (MoveMeta, error) {
	var m MoveMeta
	err := unmarshal(b, &m)
	return m, err
}

func DecodeGlobMeta(b []byte) (GlobMeta, error) {
	var m GlobMeta
	err := unmarshal(b, &m)
	return m, err
}

func DecodeSearchMeta(b []byte) (SearchMeta, error) {
	var m SearchMeta
	err := unmarshal(b, &m)
	return m, err
}

func DecodeExecMeta(b []byte) (ExecMeta, error) {
	var m ExecMeta
	err := unmarshal(b, &m)
	return m, err
}
