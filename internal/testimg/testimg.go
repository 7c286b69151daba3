// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package testimg builds small in-memory disk images for tests: an MBR
// sector with chosen partition entries. It writes no F7h header; tests
// write one with f7h.WriteF7Header.
package testimg

import (
	"encoding/binary"
	"io"

	"github.com/ostafen/f7h/internal/mbr"
)

// Buffer is a byte slice addressable via ReadAt/WriteAt, standing in for
// a block device in tests.
type Buffer struct {
	data []byte
}

// NewBuffer allocates a zeroed Buffer of sectors sectors.
func NewBuffer(sectors uint64) *Buffer {
	return &Buffer{data: make([]byte, sectors*mbr.Size)}
}

// ReadAt follows the io.ReaderAt convention used by bytes.Reader: a read
// that runs past the end of the backing slice returns io.EOF alongside
// the bytes actually copied.
func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || int(off) > len(b.data) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *Buffer) WriteAt(p []byte, off int64) (int, error) {
	need := int(off) + len(p)
	if need > len(b.data) {
		grown := make([]byte, need)
		copy(grown, b.data)
		b.data = grown
	}
	n := copy(b.data[off:], p)
	return n, nil
}

// Bytes exposes the backing slice, for assertions against raw bytes.
func (b *Buffer) Bytes() []byte { return b.data }

// WriteMBR encodes entries into an otherwise-zeroed MBR sector at the
// front of b, setting the 0x55AA signature.
func WriteMBR(b *Buffer, entries [mbr.NumEntries]mbr.PartEntry) {
	if len(b.data) < mbr.Size {
		grown := make([]byte, mbr.Size)
		copy(grown, b.data)
		b.data = grown
	}
	for i, e := range entries {
		off := mbr.EntriesOffset + i*mbr.EntrySize
		row := b.data[off : off+mbr.EntrySize]
		row[0x00] = e.Boot
		row[0x04] = e.Type
		binary.LittleEndian.PutUint32(row[0x08:0x0C], e.Start)
		binary.LittleEndian.PutUint32(row[0x0C:0x10], e.Size)
	}
	b.data[mbr.SignatureOffset] = 0x55
	b.data[mbr.SignatureOffset+1] = 0xAA
}

// SingleF7hEntry returns an MBR entry table with entry 0 typed 0xF7,
// spanning [start, start+size), and the rest disabled.
func SingleF7hEntry(start, size uint32) [mbr.NumEntries]mbr.PartEntry {
	var entries [mbr.NumEntries]mbr.PartEntry
	entries[0] = mbr.PartEntry{Type: mbr.TypeF7h, Start: start, Size: size}
	return entries
}
