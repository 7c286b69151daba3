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

// Package f7herr defines the exhaustive, distinguishable error kinds the
// tool must report, grouped by the layer that raises them. Call sites wrap
// these with fmt.Errorf("...: %w", ...) for context; callers inspect with
// errors.Is.
package f7herr

import (
	"errors"
	"fmt"
)

// Usage errors: wrong arg count, bad flag, duplicate flag, out-of-range value.
var (
	ErrUsage          = errors.New("usage error")
	ErrDuplicateFlag  = errors.New("flag specified more than once")
	ErrMissingFlag    = errors.New("required flag missing")
	ErrBadNumber      = errors.New("invalid numeric value")
	ErrAddressTooSmall = errors.New("address must be >= 1")
)

// IO errors.
var (
	ErrIO = errors.New("io error")
)

// ShortIO carries the partial-copy diagnostic from spec.md §4.1/§7.
type ShortIO struct {
	Op       string
	Requested int64
	Copied    int64
}

func (e *ShortIO) Error() string {
	return fmt.Sprintf("%d/%d bytes were actually copied", e.Copied, e.Requested)
}

// MBR parse errors.
var (
	ErrMBRTruncated       = errors.New("MBR truncated")
	ErrMBRBadMagic        = errors.New("MBR bad magic")
	ErrPartitionsOverlap  = errors.New("partitions overlap")
	ErrPartitionBeyondDisk = errors.New("partition extends beyond disk")
)

// F7h parse errors.
var (
	ErrNotF7h           = errors.New("not an F7h partition")
	ErrPartitionDisabled = errors.New("partition is disabled or a GPT protective entry")
	ErrHeaderTruncated  = errors.New("F7h header truncated")
	ErrBadMagic         = errors.New("F7h header bad magic")
	ErrBadSubtype       = errors.New("F7h header bad subtype")
	ErrBadVersion       = errors.New("F7h header bad version")
)

// Geometry errors.
var (
	ErrPartitionTooSmall = errors.New("partition too small for requested geometry")
	ErrEveryLessThanSize = errors.New("every must be >= size")
	ErrPaddingTooLarge   = errors.New("padding exceeds 16-bit field")
	ErrFirstBeyondPart   = errors.New("first is beyond the partition")
	ErrSlotsOutOfRange   = errors.New("slots must be in [1, 16]")
)

// Slot errors.
var (
	ErrSlotOutOfRange    = errors.New("slot index out of range")
	ErrSlotAlreadyActive  = errors.New("slot already active")
	ErrSlotAlreadyCleared = errors.New("slot already cleared")
	ErrPayloadTooLarge    = errors.New("payload too large for slot")
)

// ErrBug marks an internal invariant violation; messages are prefixed "BUG:".
var ErrBug = errors.New("BUG")
