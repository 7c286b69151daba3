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
package mbr

import (
	"fmt"
	"io"

	"github.com/ostafen/f7h/internal/f7herr"
	"github.com/ostafen/f7h/internal/sio"
)

// CopyBoot installs the boot code and signature from source into target,
// preserving target's bytes [BootCodeEnd, SignatureOffset), which hold
// the partition table, verbatim, per spec.md §4.7.
//
// entries must be target's already-validated partition table; targetSectors
// is the target device's total sector count; blockSize sizes the copy
// loop used for the remainder of source beyond its first 512 bytes.
func CopyBoot(target io.WriterAt, source io.ReaderAt, sourceBytes int64, targetSectors uint64, entries [NumEntries]PartEntry, blockSize int) error {
	if sourceBytes < Size {
		return fmt.Errorf("bootloader source is %d bytes, need at least %d", sourceBytes, Size)
	}

	var first [Size]byte
	if err := sio.PositionedRead(source, 0, first[:]); err != nil {
		return fmt.Errorf("read bootloader source: %w", err)
	}
	if first[SignatureOffset] != signature[0] || first[SignatureOffset+1] != signature[1] {
		return fmt.Errorf("%w: bootloader source", f7herr.ErrMBRBadMagic)
	}

	reqSectors := uint64(sourceBytes+int64(sio.SectorSize)-1) / sio.SectorSize
	if targetSectors < reqSectors {
		return fmt.Errorf("target has %d sectors, bootloader needs %d", targetSectors, reqSectors)
	}

	if start, ok := earliestEligibleStart(entries); ok && uint64(start) < reqSectors {
		return fmt.Errorf("%w: earliest partition starts at sector %d, bootloader occupies the first %d sectors", f7herr.ErrPartitionBeyondDisk, start, reqSectors)
	}

	if err := sio.PositionedWrite(target, 0, first[:BootCodeEnd]); err != nil {
		return fmt.Errorf("write boot code: %w", err)
	}
	if err := sio.PositionedWrite(target, SignatureOffset, first[SignatureOffset:Size]); err != nil {
		return fmt.Errorf("write MBR signature: %w", err)
	}

	remaining := sourceBytes - Size
	if remaining > 0 {
		if _, err := sio.CopyAt(target, Size, source, Size, remaining, blockSize); err != nil {
			return fmt.Errorf("copy bootloader body: %w", err)
		}
	}
	return nil
}

// earliestEligibleStart returns the start LBA of the eligible entry with
// the smallest Start, scanning all four entries (they are not assumed
// sorted). ok is false if no entry is eligible.
func earliestEligibleStart(entries [NumEntries]PartEntry) (start uint32, ok bool) {
	for _, e := range entries {
		if !e.Eligible() {
			continue
		}
		if !ok || e.Start < start {
			start = e.Start
			ok = true
		}
	}
	return start, ok
}
