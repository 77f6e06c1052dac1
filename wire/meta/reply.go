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

// EntryKind discriminates the kind of a filesystem entry, shared by Stat
// replies and directory-enumeration entries.
type EntryKind uint8

const (
	EntryOther EntryKind = iota
	EntryFile
	EntryDirectory
	EntrySymlink
)

// StatReply is the single Data packet emitted by §4.4.3. This is the wire
// layout picked to resolve the spec's open question about two competing
// historical layouts: exists flag, kind, mode, size, mtime, in that order.
type StatReply struct {
	Exists bool      `cbor:"1,keyasint"`
	Kind   EntryKind `cbor:"2,keyasint"`
	Mode   uint32    `cbor:"3,keyasint"`
	Size   int64     `cbor:"4,keyasint"`
	MTime  int64     `cbor:"5,keyasint"` // Unix seconds
}

func (s StatReply) Marshal() ([]byte, error) { return marshal(s) }

func DecodeStatReply(b []byte) (StatReply, error) {
	var s StatReply
	err := unmarshal(b, &s)
	return s, err
}

// ExistsReply is the single Data packet emitted by §4.4.4.
type ExistsReply struct {
	Exists bool `cbor:"1,keyasint"`
}

func (e ExistsReply) Marshal() ([]byte, error) { return marshal(e) }

func DecodeExistsReply(b []byte) (ExistsReply, error) {
	var e ExistsReply
	err := unmarshal(b, &e)
	return e, err
}

// ResolveReply is the single Data packet emitted by §4.4.8.
type ResolveReply struct {
	Path []byte `cbor:"1,keyasint"`
}

func (r ResolveReply) Marshal() ([]byte, error) { return marshal(r) }

func DecodeResolveReply(b []byte) (ResolveReply, error) {
	var r ResolveReply
	err := unmarshal(b, &r)
	return r, err
}

// DirEntry is one Data packet of §4.4.9's directory enumeration. A stat
// failure on an individual entry is represented by Kind=EntryOther with the
// remaining numeric fields zeroed, never by failing the whole stream.
type DirEntry struct {
	Kind EntryKind `cbor:"1,keyasint"`
	Size int64     `cbor:"2,keyasint"`
	MTime int64    `cbor:"3,keyasint"`
	Name []byte    `cbor:"4,keyasint"`
}

func (d DirEntry) Marshal() ([]byte, error) { return marshal(d) }

func DecodeDirEntry(b []byte) (DirEntry, error) {
	var d DirEntry
	err := unmarshal(b, &d)
	return d, err
}

// SearchHit is one Data packet of §4.4.11's content search.
type SearchHit struct {
	Line int64  `cbor:"1,keyasint"`
	Path []byte `cbor:"2,keyasint"`
	Text []byte `cbor:"3,keyasint"`
}

func (s SearchHit) Marshal() ([]byte, error) { return marshal(s) }

func DecodeSearchHit(b []byte) (SearchHit, error) {
	var s SearchHit
	err := unmarshal(b, &s)
	return s, err
}
