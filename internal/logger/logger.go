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

// Package logger is a minimal writer-backed logger for the one warning
// path this tool has: ReadF7Header's stale-bitmap-bit notice (spec.md
// §4.3/§7). It is trimmed from the teacher's multi-level logger down to
// the surface that warning path actually calls.
package logger

import (
	"fmt"
	"io"
	"sync"
)

// Logger writes warning lines to out, guarded by a mutex since a future
// caller could share one across goroutines the way the teacher's did.
type Logger struct {
	mu  sync.Mutex
	out io.Writer
}

// New creates a Logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{out: w}
}

// Warnf writes one "[WARN] ..." line.
func (l *Logger) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[WARN] %s\n", fmt.Sprintf(format, args...))
}
