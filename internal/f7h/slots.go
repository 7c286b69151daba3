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
package f7h

import (
	"fmt"
	"io"

	"github.com/ostafen/f7h/internal/f7herr"
	"github.com/ostafen/f7h/internal/mbr"
	"github.com/ostafen/f7h/internal/sio"
)

// SlotOffset returns the absolute byte offset of slot s inside entry,
// given the partition's geometry. All arithmetic is 64-bit per spec.md's
// integer width discipline.
func SlotOffset(entry mbr.PartEntry, meta Meta, s int) int64 {
	sector := uint64(entry.Start) + uint64(meta.First) + uint64(s)*uint64(meta.Every)
	return int64(sector * sio.SectorSize)
}

// SlotByteLen returns the byte length of a slot's payload region.
func SlotByteLen(meta Meta) int64 {
	return int64(meta.Size) * sio.SectorSize
}

// Load copies imgBytes bytes from img into slot s of entry and marks the
// slot occupied, per spec.md §4.6. The bitmap write happens only after
// the payload copy has fully succeeded, so a crash mid-copy leaves the
// slot's bit clear but its on-disk bytes dirty — a future load overwrites
// them.
func Load(dev ReaderWriterAt, entries [mbr.NumEntries]mbr.PartEntry, idx int, meta Meta, s int, img io.ReaderAt, imgBytes int64, blockSize int) error {
	if s < 0 || s >= meta.Count {
		return fmt.Errorf("%w: slot %d, count %d", f7herr.ErrSlotOutOfRange, s, meta.Count)
	}
	if meta.Bitmap&(1<<uint(s)) != 0 {
		return fmt.Errorf("%w: slot %d", f7herr.ErrSlotAlreadyActive, s)
	}

	reqSectors := uint64(imgBytes+sio.SectorSize-1) / sio.SectorSize
	if reqSectors > uint64(meta.Size) {
		return fmt.Errorf("%w: image needs %d sectors, slot holds %d", f7herr.ErrPayloadTooLarge, reqSectors, meta.Size)
	}

	off := SlotOffset(entries[idx], meta, s)
	if _, err := sio.CopyAt(dev, off, img, 0, imgBytes, blockSize); err != nil {
		return fmt.Errorf("copy payload into slot %d: %w", s, err)
	}

	newBitmap := meta.Bitmap | (1 << uint(s))
	if err := WriteBitmap(dev, entries, idx, newBitmap); err != nil {
		return fmt.Errorf("mark slot %d occupied: %w", s, err)
	}
	return nil
}

// Clear marks slot s unused without touching its payload bytes. It
// re-verifies the partition is still typed 0xF7 immediately before the
// bitmap write, per spec.md §4.6.
func Clear(dev ReaderWriterAt, entries [mbr.NumEntries]mbr.PartEntry, idx int, meta Meta, s int) error {
	if s < 0 || s >= meta.Count {
		return fmt.Errorf("%w: slot %d, count %d", f7herr.ErrSlotOutOfRange, s, meta.Count)
	}
	if meta.Bitmap&(1<<uint(s)) == 0 {
		return fmt.Errorf("%w: slot %d", f7herr.ErrSlotAlreadyCleared, s)
	}

	newBitmap := meta.Bitmap &^ (1 << uint(s))
	return WriteBitmap(dev, entries, idx, newBitmap)
}

// Reset zeroes every slot's occupancy bit. Its precondition per spec.md
// §4.6 is "header parses" — callers must call ReadF7Header first (as
// Clear and Load's callers do) so a partition typed 0xF7 but carrying a
// corrupt, wrong-subtype, or wrong-version header fails instead of
// silently having its bitmap zeroed.
func Reset(dev ReaderWriterAt, entries [mbr.NumEntries]mbr.PartEntry, idx int) error {
	return WriteBitmap(dev, entries, idx, 0x0000)
}
