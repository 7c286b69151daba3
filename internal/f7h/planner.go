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

	"github.com/ostafen/f7h/internal/f7herr"
	"github.com/ostafen/f7h/internal/mbr"
)

// PlanInput is the partially specified geometry an operator gives to
// override: Size and Every are pointers so the planner can distinguish
// "not given" from "given as zero".
type PlanInput struct {
	Slots int
	First uint32
	Size  *uint32
	Every *uint32
}

// Plan derives the full slot geometry from input and the target
// partition, validating it against spec.md §4.5's rules. It does not
// write anything.
func Plan(entry mbr.PartEntry, in PlanInput) (Meta, error) {
	if in.Slots < 1 || in.Slots > MaxSlots {
		return Meta{}, fmt.Errorf("%w: got %d", f7herr.ErrSlotsOutOfRange, in.Slots)
	}

	// Step 1: partition eligibility pre-checks.
	if !entry.Eligible() {
		return Meta{}, fmt.Errorf("%w: target partition", f7herr.ErrPartitionDisabled)
	}
	if entry.Start < 1 {
		return Meta{}, fmt.Errorf("%w: partition start %d", f7herr.ErrPartitionBeyondDisk, entry.Start)
	}
	if uint64(entry.Start)+uint64(entry.Size) > LBAMax+1 {
		return Meta{}, fmt.Errorf("%w: partition end exceeds addressable range", f7herr.ErrPartitionBeyondDisk)
	}
	if entry.Size < 1 {
		return Meta{}, fmt.Errorf("%w: partition has zero sectors", f7herr.ErrPartitionTooSmall)
	}
	if uint64(entry.Size) < uint64(in.First) {
		return Meta{}, fmt.Errorf("%w: first %d exceeds partition size %d", f7herr.ErrFirstBeyondPart, in.First, entry.Size)
	}

	// Step 2: sectors available for slots.
	partsize := uint64(entry.Size) - uint64(in.First)

	// Step 3: defaulting.
	var size, every uint64
	switch {
	case in.Size == nil && in.Every == nil:
		size = partsize / uint64(in.Slots)
		every = size
	case in.Size != nil && in.Every == nil:
		size = uint64(*in.Size)
		every = size
	case in.Size == nil && in.Every != nil:
		every = uint64(*in.Every)
		size = every
	default:
		size = uint64(*in.Size)
		every = uint64(*in.Every)
	}

	// Step 4: validation.
	if every < size {
		return Meta{}, fmt.Errorf("%w: every=%d size=%d", f7herr.ErrEveryLessThanSize, every, size)
	}
	if size < LBAMax-DistMax {
		if every-size > DistMax {
			return Meta{}, fmt.Errorf("%w: padding %d exceeds %d", f7herr.ErrPaddingTooLarge, every-size, DistMax)
		}
	}
	if uint64(in.Slots-1)*every+size > partsize {
		return Meta{}, fmt.Errorf("%w: need %d sectors, partition has %d available", f7herr.ErrPartitionTooSmall, uint64(in.Slots-1)*every+size, partsize)
	}

	return Meta{
		Count:  in.Slots,
		Bitmap: 0x0000,
		First:  in.First,
		Size:   uint32(size),
		Every:  uint32(every),
	}, nil
}

// Commit writes the planned geometry to disk: the full 24-byte F7h
// header first, then the MBR partition-type byte, per the Open Question
// decision recorded in DESIGN.md (the spec's own recommended ordering,
// safer against a crash between the two writes than the literal
// type-then-header prose order).
func Commit(dev ReaderWriterAt, entries [mbr.NumEntries]mbr.PartEntry, idx int, meta Meta) error {
	if err := WriteF7Header(dev, entries, idx, meta); err != nil {
		return fmt.Errorf("write F7h header: %w", err)
	}
	if err := mbr.WriteTypeByte(dev, idx, mbr.TypeF7h); err != nil {
		return fmt.Errorf("write partition type: %w", err)
	}
	return nil
}
