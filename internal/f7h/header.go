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

// Package f7h implements the F7h container format: its 24-byte header,
// the slot-geometry planner behind the override command, and the slot
// state machine behind load/clear/reset.
package f7h

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ostafen/f7h/internal/f7herr"
	"github.com/ostafen/f7h/internal/logger"
	"github.com/ostafen/f7h/internal/mbr"
	"github.com/ostafen/f7h/internal/sio"
)

const (
	// HeaderSize is the fixed length of the F7h header.
	HeaderSize = 24

	// MaxSlots is the largest slot_count an F7h partition can declare.
	MaxSlots = 16

	subtype = "SYSIMG"

	offType    = 0
	offVersion = 1
	offSubtype = 2
	offFirst   = 8
	offSize    = 12
	offPadding = 16
	offReserved1 = 18
	offCountM1 = 19
	offReserved2 = 20
	offBitmap  = 22
)

// Meta is the runtime projection of an F7h header, per spec.md §3.
type Meta struct {
	Count  int    // 1..16
	Bitmap uint16 // bit i set = slot i occupied
	First  uint32 // slot-0 start offset relative to partition start, sectors
	Size   uint32 // sectors per slot payload
	Every  uint32 // Size + padding; sectors between consecutive slot starts
}

// Padding returns the header's padding field (Every - Size).
func (m Meta) Padding() uint16 {
	return uint16(m.Every - m.Size)
}

// headerOffset returns the byte offset of the F7h header: the first
// sector of the partition.
func headerOffset(entry mbr.PartEntry) int64 {
	return int64(entry.Start) * sio.SectorSize
}

// ReadF7Header decodes the F7h header of entries[idx], failing with
// f7herr.ErrPartitionDisabled, f7herr.ErrNotF7h, or one of the header
// parse errors from spec.md §4.3. Bits set at position >= Count produce
// one Warnf call per bit through log, which may be nil to suppress
// warnings.
func ReadF7Header(dev io.ReaderAt, entries [mbr.NumEntries]mbr.PartEntry, idx int, log *logger.Logger) (Meta, error) {
	var meta Meta

	if idx < 0 || idx >= mbr.NumEntries {
		return meta, fmt.Errorf("%w: partition index %d out of range", f7herr.ErrUsage, idx)
	}
	entry := entries[idx]
	if !entry.Eligible() {
		return meta, fmt.Errorf("%w: partition %d", f7herr.ErrPartitionDisabled, idx)
	}
	if entry.Type != mbr.TypeF7h {
		return meta, fmt.Errorf("%w: partition %d has type 0x%02X", f7herr.ErrNotF7h, idx, entry.Type)
	}

	var buf [HeaderSize]byte
	n, err := dev.ReadAt(buf[:], headerOffset(entry))
	if err != nil && err != io.EOF {
		return meta, fmt.Errorf("read F7h header: %w", err)
	}
	if n != HeaderSize {
		return meta, fmt.Errorf("%w: got %d of %d bytes", f7herr.ErrHeaderTruncated, n, HeaderSize)
	}

	if buf[offType] != mbr.TypeF7h {
		return meta, fmt.Errorf("%w: got 0x%02X", f7herr.ErrBadMagic, buf[offType])
	}
	if buf[offVersion] != 0x00 {
		return meta, fmt.Errorf("%w: got 0x%02X", f7herr.ErrBadVersion, buf[offVersion])
	}
	if string(buf[offSubtype:offSubtype+6]) != subtype {
		return meta, fmt.Errorf("%w: got %q", f7herr.ErrBadSubtype, buf[offSubtype:offSubtype+6])
	}

	first := binary.LittleEndian.Uint32(buf[offFirst : offFirst+4])
	size := binary.LittleEndian.Uint32(buf[offSize : offSize+4])
	padding := binary.LittleEndian.Uint16(buf[offPadding : offPadding+2])
	count := int(buf[offCountM1]&0x0F) + 1
	bitmap := binary.LittleEndian.Uint16(buf[offBitmap : offBitmap+2])

	meta = Meta{
		Count:  count,
		Bitmap: bitmap,
		First:  first,
		Size:   size,
		Every:  size + uint32(padding),
	}

	if log != nil {
		for i := count; i < MaxSlots; i++ {
			if bitmap&(1<<uint(i)) != 0 {
				log.Warnf("bitmap bit %d is set but only %d slots exist", i, count)
			}
		}
	}
	return meta, nil
}

// WriteF7Header performs the full 24-byte write that override uses to
// commit a freshly planned geometry. All reserved bytes are zeroed.
func WriteF7Header(dev io.WriterAt, entries [mbr.NumEntries]mbr.PartEntry, idx int, meta Meta) error {
	if idx < 0 || idx >= mbr.NumEntries {
		return fmt.Errorf("%w: partition index %d out of range", f7herr.ErrUsage, idx)
	}
	if meta.Count < 1 || meta.Count > MaxSlots {
		return fmt.Errorf("%w: BUG: count %d out of range", f7herr.ErrBug, meta.Count)
	}

	var buf [HeaderSize]byte
	buf[offType] = mbr.TypeF7h
	buf[offVersion] = 0x00
	copy(buf[offSubtype:offSubtype+6], subtype)
	binary.LittleEndian.PutUint32(buf[offFirst:offFirst+4], meta.First)
	binary.LittleEndian.PutUint32(buf[offSize:offSize+4], meta.Size)
	binary.LittleEndian.PutUint16(buf[offPadding:offPadding+2], meta.Padding())
	buf[offReserved1] = 0
	buf[offCountM1] = byte(meta.Count - 1)
	binary.LittleEndian.PutUint16(buf[offReserved2:offReserved2+2], 0)
	binary.LittleEndian.PutUint16(buf[offBitmap:offBitmap+2], meta.Bitmap)

	return sio.PositionedWrite(dev, headerOffset(entries[idx]), buf[:])
}

// ReaderWriterAt composes read and write access for the bitmap
// re-check-then-write sequence used by WriteBitmap.
type ReaderWriterAt interface {
	io.ReaderAt
	io.WriterAt
}

// WriteBitmap writes exactly the 2 bitmap bytes at header offset 22,
// re-checking that entries[idx]'s type byte is still 0xF7 on dev
// immediately beforehand, per spec.md §4.3/§4.6: another process could in
// principle have altered the MBR between the original MBR read and this
// write.
func WriteBitmap(dev ReaderWriterAt, entries [mbr.NumEntries]mbr.PartEntry, idx int, bitmap uint16) error {
	if idx < 0 || idx >= mbr.NumEntries {
		return fmt.Errorf("%w: partition index %d out of range", f7herr.ErrUsage, idx)
	}

	var typeByte [1]byte
	typeOff := int64(mbr.EntriesOffset + idx*mbr.EntrySize + 0x04)
	if err := sio.PositionedRead(dev, typeOff, typeByte[:]); err != nil {
		return fmt.Errorf("re-read partition type: %w", err)
	}
	if typeByte[0] != mbr.TypeF7h {
		return fmt.Errorf("%w: partition %d now has type 0x%02X", f7herr.ErrNotF7h, idx, typeByte[0])
	}

	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], bitmap)
	return sio.PositionedWrite(dev, headerOffset(entries[idx])+offBitmap, buf[:])
}
