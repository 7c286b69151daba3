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

// Package cli holds small helpers shared by the cobra command
// definitions in cmd/, in particular duplicate-flag detection: pflag
// silently keeps the last value of a repeated flag, but spec.md requires
// a UsageError on a flag given twice.
package cli

import (
	"fmt"
	"strings"

	"github.com/ostafen/f7h/internal/f7herr"
)

// RejectDuplicateFlags scans argv for a long flag name (e.g. "--slots")
// appearing more than once, either as "--name=value" or as a standalone
// "--name" token followed by its value. It returns a UsageError naming
// the first flag found more than once.
func RejectDuplicateFlags(argv []string, names ...string) error {
	counts := make(map[string]int, len(names))
	for _, n := range names {
		counts[n] = 0
	}

	for _, arg := range argv {
		flag := arg
		if idx := strings.IndexByte(arg, '='); idx >= 0 {
			flag = arg[:idx]
		}
		if !strings.HasPrefix(flag, "--") {
			continue
		}
		name := flag[2:]
		if _, tracked := counts[name]; tracked {
			counts[name]++
		}
	}

	for _, n := range names {
		if counts[n] > 1 {
			return fmt.Errorf("%w: %w: --%s given more than once", f7herr.ErrUsage, f7herr.ErrDuplicateFlag, n)
		}
	}
	return nil
}
