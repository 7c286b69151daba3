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

// Package mbr decodes, validates, and partially rewrites a classic
// 512-byte Master Boot Record: its four partition entries, boot code
// area, and 0x55AA signature.
package mbr

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ostafen/f7h/internal/f7herr"
)

const (
	// Size is the fixed length of an MBR sector.
	Size = 512

	// EntriesOffset is the byte offset of the first of the four
	// partition entries.
	EntriesOffset = 0x1BE
	// EntrySize is the byte length of one partition entry.
	EntrySize = 16
	// NumEntries is the number of partition entries an MBR carries.
	NumEntries = 4

	// BootCodeEnd is the exclusive end of the boot code area, i.e. the
	// byte range written/preserved by cpboot is [0, BootCodeEnd).
	BootCodeEnd = 0x1B8

	// SignatureOffset is the byte offset of the 2-byte 0x55AA magic.
	SignatureOffset = 0x1FE

	// TypeDisabled marks an unused partition entry.
	TypeDisabled = 0x00
	// TypeGPTProtective marks a GPT protective MBR entry.
	TypeGPTProtective = 0xEE
	// TypeF7h marks an F7h container partition.
	TypeF7h = 0xF7
)

var signature = [2]byte{0x55, 0xAA}

// PartEntry is one of the four 16-byte MBR partition table entries.
// CHS fields are not retained: spec.md requires they be read and ignored
// on input and written as zero on output, so there is nothing useful to
// carry between a read and a write.
type PartEntry struct {
	Boot  byte   // 0x80 active, 0x00 inactive, stored verbatim
	Type  byte   // partition type code
	Start uint32 // starting LBA, sectors from disk start
	Size  uint32 // sector count
}

// Eligible reports whether an entry participates in overlap/bounds
// validation and may be targeted by F7h commands: disabled (0x00) and
// GPT-protective (0xEE) entries are excluded.
func (p PartEntry) Eligible() bool {
	return p.Type != TypeDisabled && p.Type != TypeGPTProtective
}

// End returns the exclusive end LBA of the entry (Start + Size).
func (p PartEntry) End() uint64 {
	return uint64(p.Start) + uint64(p.Size)
}

// ReadMBR reads and decodes the 512-byte MBR from dev, failing with
// f7herr.ErrMBRTruncated or f7herr.ErrMBRBadMagic. It does not perform
// partition-table validation; call ValidatePartitions separately once the
// disk's sector count is known.
func ReadMBR(dev io.ReaderAt) ([NumEntries]PartEntry, error) {
	var entries [NumEntries]PartEntry

	var buf [Size]byte
	n, err := dev.ReadAt(buf[:], 0)
	if err != nil && err != io.EOF {
		return entries, fmt.Errorf("read MBR: %w", err)
	}
	if n != Size {
		return entries, fmt.Errorf("%w: got %d of %d bytes", f7herr.ErrMBRTruncated, n, Size)
	}

	if buf[SignatureOffset] != signature[0] || buf[SignatureOffset+1] != signature[1] {
		return entries, fmt.Errorf("%w: got %02X%02X", f7herr.ErrMBRBadMagic, buf[SignatureOffset+1], buf[SignatureOffset])
	}

	for i := 0; i < NumEntries; i++ {
		off := EntriesOffset + i*EntrySize
		e := buf[off : off+EntrySize]

		entries[i] = PartEntry{
			Boot:  e[0x00],
			Type:  e[0x04],
			Start: binary.LittleEndian.Uint32(e[0x08:0x0C]),
			Size:  binary.LittleEndian.Uint32(e[0x0C:0x10]),
		}
	}
	return entries, nil
}

// ValidatePartitions cross-checks every eligible entry against disk
// bounds and against every other eligible entry for overlap, per
// spec.md §3/§4.2.
func ValidatePartitions(entries [NumEntries]PartEntry, diskSectors uint64) error {
	for i, e := range entries {
		if !e.Eligible() {
			continue
		}
		if e.Start < 1 {
			return fmt.Errorf("%w: entry %d starts at sector %d", f7herr.ErrPartitionBeyondDisk, i, e.Start)
		}
		if e.End() > diskSectors {
			return fmt.Errorf("%w: entry %d ends at sector %d, disk has %d sectors", f7herr.ErrPartitionBeyondDisk, i, e.End(), diskSectors)
		}
	}

	for i := 0; i < NumEntries; i++ {
		a := entries[i]
		if !a.Eligible() {
			continue
		}
		for j := i + 1; j < NumEntries; j++ {
			b := entries[j]
			if !b.Eligible() {
				continue
			}
			if overlaps(a, b) {
				return fmt.Errorf("%w: entries %d and %d", f7herr.ErrPartitionsOverlap, i, j)
			}
		}
	}
	return nil
}

func overlaps(a, b PartEntry) bool {
	aStart, aEnd := uint64(a.Start), a.End()
	bStart, bEnd := uint64(b.Start), b.End()
	return aStart < bEnd && bStart < aEnd
}

// WriteTypeByte rewrites only the single type byte of entry idx, the
// partial write override performs when committing a new F7h partition.
func WriteTypeByte(dev io.WriterAt, idx int, typ byte) error {
	if idx < 0 || idx >= NumEntries {
		return fmt.Errorf("%w: entry index %d out of range", f7herr.ErrBug, idx)
	}
	off := int64(EntriesOffset + idx*EntrySize + 0x04)
	n, err := dev.WriteAt([]byte{typ}, off)
	if err != nil {
		return fmt.Errorf("write partition type byte: %w", err)
	}
	if n != 1 {
		return &f7herr.ShortIO{Op: "write", Requested: 1, Copied: int64(n)}
	}
	return nil
}

// TypeName returns a short human-readable name for a partition type
// byte, used by tablebrief.
func TypeName(t byte) string {
	switch t {
	case TypeDisabled:
		return "Empty"
	case 0x01:
		return "FAT12"
	case 0x04:
		return "FAT16 (<32MB)"
	case 0x05:
		return "Extended (CHS)"
	case 0x06:
		return "FAT16 (>32MB)"
	case 0x07:
		return "NTFS/HPFS/exFAT"
	case 0x0B:
		return "FAT32 (CHS)"
	case 0x0C:
		return "FAT32 (LBA)"
	case 0x0E:
		return "FAT16 (LBA)"
	case 0x0F:
		return "Extended (LBA)"
	case 0x82:
		return "Linux swap"
	case 0x83:
		return "Linux filesystem"
	case TypeGPTProtective:
		return "GPT protective MBR"
	case 0xEF:
		return "EFI System Partition"
	case TypeF7h:
		return "F7h system image"
	default:
		return fmt.Sprintf("Unknown (0x%02X)", t)
	}
}
