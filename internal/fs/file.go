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

// Package fs opens the target device or image file the tool operates on,
// normalizing platform-specific volume path conventions.
package fs

import (
	"io"
	"os"
)

// Device is the handle every command operates through: positioned IO plus
// Stat/Close, satisfied by *os.File on every supported platform.
type Device interface {
	io.ReaderAt
	io.WriterAt
	io.Closer
	Stat() (os.FileInfo, error)
}

// Open opens path for read-write access, used by every command that
// mutates the MBR or an F7h header.
func Open(path string) (*os.File, error) {
	return os.OpenFile(NormalizeVolumePath(path), os.O_RDWR, 0)
}

// OpenReadOnly opens path for read-only access, used by inspection
// commands (tablebrief, brief).
func OpenReadOnly(path string) (*os.File, error) {
	return os.Open(NormalizeVolumePath(path))
}
