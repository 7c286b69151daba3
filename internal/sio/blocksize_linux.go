//go:build linux
// +build linux

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
package sio

import (
	"os"

	"golang.org/x/sys/unix"
)

// PreferredBlockSize returns the copy-loop chunk size for f: for a raw
// block device, the device's logical sector size via the BLKSSZGET
// ioctl; for a regular file, the filesystem's preferred IO block size via
// fstatfs. DefaultBlockSize is returned if neither can be determined.
func PreferredBlockSize(f *os.File) int {
	if info, err := f.Stat(); err == nil && info.Mode()&os.ModeDevice != 0 {
		if sz, err := unix.IoctlGetInt(int(f.Fd()), unix.BLKSSZGET); err == nil && sz > 0 {
			return sz
		}
	}

	var stat unix.Statfs_t
	if err := unix.Fstatfs(int(f.Fd()), &stat); err == nil && stat.Bsize > 0 {
		return int(stat.Bsize)
	}
	return DefaultBlockSize
}

// DeviceSectors returns the device's total sector count via BLKGETSIZE64,
// or false if f is not a block device or the ioctl fails.
func DeviceSectors(f *os.File) (int64, bool) {
	info, err := f.Stat()
	if err != nil || info.Mode()&os.ModeDevice == 0 {
		return 0, false
	}
	size, err := unix.IoctlGetUint64(int(f.Fd()), unix.BLKGETSIZE64)
	if err != nil {
		return 0, false
	}
	return int64(size) / SectorSize, true
}
