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
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ostafen/f7h/internal/f7herr"
	"github.com/ostafen/f7h/internal/fs"
	"github.com/ostafen/f7h/internal/mbr"
	"github.com/ostafen/f7h/internal/sio"
)

// FormatError renders an error for stderr, prefixing internal-bug errors
// with "BUG:" per spec.md §7.
func FormatError(err error) string {
	if errors.Is(err, f7herr.ErrBug) {
		return "BUG: " + err.Error()
	}
	return err.Error()
}

// openValidated opens path (read-write unless readOnly) and reads and
// validates its MBR against the disk's sector count, returning the file
// handle and its partition entries. Callers must close the returned file.
func openValidated(path string, readOnly bool) (*os.File, [mbr.NumEntries]mbr.PartEntry, error) {
	var (
		f   *os.File
		err error
	)
	if readOnly {
		f, err = fs.OpenReadOnly(path)
	} else {
		f, err = fs.Open(path)
	}
	if err != nil {
		return nil, [mbr.NumEntries]mbr.PartEntry{}, fmt.Errorf("open %s: %w", path, err)
	}

	entries, err := mbr.ReadMBR(f)
	if err != nil {
		f.Close()
		return nil, entries, err
	}

	diskSectors, err := diskSectorCount(f)
	if err != nil {
		f.Close()
		return nil, entries, err
	}

	if err := mbr.ValidatePartitions(entries, diskSectors); err != nil {
		f.Close()
		return nil, entries, err
	}
	return f, entries, nil
}

// diskSectorCount returns the total sector count of f: the device's
// reported size for a block device, or the file size for a regular
// image file.
func diskSectorCount(f *os.File) (uint64, error) {
	if n, ok := sio.DeviceSectors(f); ok {
		return uint64(n), nil
	}

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("determine disk size: %w", err)
	}
	return uint64(size) / sio.SectorSize, nil
}

// parsePartitionIndex parses a "0".."3" positional argument into an MBR
// entry index.
func parsePartitionIndex(s string) (int, error) {
	n, err := parseSmallInt(s)
	if err != nil {
		return 0, err
	}
	if n < 0 || n >= mbr.NumEntries {
		return 0, fmt.Errorf("%w: partition index must be 0-%d, got %d", f7herr.ErrUsage, mbr.NumEntries-1, n)
	}
	return n, nil
}

// parseSlotIndex parses a "0".."15" positional argument into a slot
// index.
func parseSlotIndex(s string) (int, error) {
	n, err := parseSmallInt(s)
	if err != nil {
		return 0, err
	}
	if n < 0 || n >= 16 {
		return 0, fmt.Errorf("%w: slot index must be 0-15, got %d", f7herr.ErrUsage, n)
	}
	return n, nil
}

func parseSmallInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", f7herr.ErrUsage, s)
	}
	return n, nil
}
