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

// Package sio provides positioned reads/writes against a target device or
// image file, plus the block-sized copy loop shared by the load and cpboot
// operations.
package sio

import (
	"fmt"
	"io"

	"github.com/ostafen/f7h/internal/f7herr"
)

// SectorSize is the fixed sector size assumed across the tool.
const SectorSize = 512

// DefaultBlockSize is used when the underlying filesystem's preferred
// block size cannot be determined.
const DefaultBlockSize = 4096

// ReaderWriterAt is satisfied by *os.File and any other handle exposing
// positioned IO, matching the teacher's DiskInfo.ReadAt/WriteAt contract.
type ReaderWriterAt interface {
	io.ReaderAt
	io.WriterAt
}

// PositionedRead reads exactly len(buf) bytes at off, or fails with a
// *f7herr.ShortIO diagnostic naming the requested and copied byte counts.
func PositionedRead(r io.ReaderAt, off int64, buf []byte) error {
	n, err := r.ReadAt(buf, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("read at offset %d: %w", off, err)
	}
	if n != len(buf) {
		return &f7herr.ShortIO{Op: "read", Requested: int64(len(buf)), Copied: int64(n)}
	}
	return nil
}

// PositionedWrite writes exactly buf to off, or fails with a
// *f7herr.ShortIO diagnostic.
func PositionedWrite(w io.WriterAt, off int64, buf []byte) error {
	n, err := w.WriteAt(buf, off)
	if err != nil {
		return fmt.Errorf("write at offset %d: %w", off, err)
	}
	if n != len(buf) {
		return &f7herr.ShortIO{Op: "write", Requested: int64(len(buf)), Copied: int64(n)}
	}
	return nil
}

// CopyAt streams n bytes from srcOff in src to dstOff in dst, using one
// reusable buffer of blockSize bytes (or DefaultBlockSize if blockSize is
// 0), transferring min(blockSize, remaining) bytes per iteration. On a
// short read or write, it fails with the *f7herr.ShortIO diagnostic naming
// the total bytes requested and actually copied so far.
func CopyAt(dst io.WriterAt, dstOff int64, src io.ReaderAt, srcOff int64, n int64, blockSize int) (int64, error) {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	buf := make([]byte, blockSize)

	var copied int64
	for copied < n {
		chunk := int64(blockSize)
		if rem := n - copied; rem < chunk {
			chunk = rem
		}

		nr, err := src.ReadAt(buf[:chunk], srcOff+copied)
		if err != nil && err != io.EOF {
			return copied, fmt.Errorf("read at offset %d: %w", srcOff+copied, err)
		}
		if int64(nr) != chunk {
			return copied, &f7herr.ShortIO{Op: "read", Requested: n, Copied: copied + int64(nr)}
		}

		nw, err := dst.WriteAt(buf[:chunk], dstOff+copied)
		if err != nil {
			return copied, fmt.Errorf("write at offset %d: %w", dstOff+copied, err)
		}
		if int64(nw) != chunk {
			return copied, &f7herr.ShortIO{Op: "write", Requested: n, Copied: copied + int64(nw)}
		}

		copied += chunk
	}
	return copied, nil
}
