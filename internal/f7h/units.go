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
	"strconv"
	"strings"

	"github.com/ostafen/f7h/internal/f7herr"
)

const (
	// LBAMax is the highest addressable sector: 2 TiB at 512 bytes/sector.
	LBAMax uint64 = 1<<32 - 1
	// DistMax is the largest representable padding value (16-bit field).
	DistMax uint64 = 1<<16 - 1
)

// unitSuffixes maps a suffix to its shift k in bytes = n * 2^(10k).
var unitSuffixes = []struct {
	suffix string
	k      uint
}{
	{"TiB", 4},
	{"GiB", 3},
	{"MiB", 2},
	{"KiB", 1},
}

// ParseLBA parses a plain decimal sector count or a decimal value
// suffixed with KiB/MiB/GiB/TiB into a sector count, per spec.md §4.4.
// Zero always fails with f7herr.ErrAddressTooSmall rather than a generic
// parse error, per the spec's explicit guidance on distinguishing zero
// from malformed input.
func ParseLBA(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", f7herr.ErrBadNumber)
	}

	for _, u := range unitSuffixes {
		if strings.HasSuffix(s, u.suffix) {
			numPart := strings.TrimSuffix(s, u.suffix)
			n, err := strconv.ParseUint(numPart, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("%w: %q", f7herr.ErrBadNumber, s)
			}
			maxUnit := uint64(1) << (10 * (4 - u.k) + 1) // 2 * 1024^(4-k)
			if n == 0 {
				return 0, f7herr.ErrAddressTooSmall
			}
			if n > maxUnit {
				return 0, fmt.Errorf("%w: %q exceeds the addressable range for %s", f7herr.ErrBadNumber, s, u.suffix)
			}
			// bytes = n * 2^(10k); sectors = bytes / 512 = n * 2^(10k-9)
			// = n * 1024^(k-1) * 2
			return n * pow1024(u.k-1) * 2, nil
		}
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", f7herr.ErrBadNumber, s)
	}
	if n == 0 {
		return 0, f7herr.ErrAddressTooSmall
	}
	return n, nil
}

// ParsePlainInt parses a bare decimal integer, rejecting empty input,
// trailing garbage, and overflow, per spec.md §4.4's "plain integer"
// parser (used for --slots, which is never unit-suffixed).
func ParsePlainInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", f7herr.ErrBadNumber)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", f7herr.ErrBadNumber, s)
	}
	return n, nil
}

func pow1024(k uint) uint64 {
	v := uint64(1)
	for i := uint(0); i < k; i++ {
		v *= 1024
	}
	return v
}

// ShortenSectors formats a sector count using the coarsest exact unit:
// it halves once if even (reaching KiB if possible), then divides by
// 1024 up to three more times while exactly divisible. This is the
// inverse of ParseLBA and is used to render geometry in dry-run/brief
// output, generalizing the teacher's byte-oriented FormatBytes into a
// sector-exact, round-trippable formatter.
func ShortenSectors(sectors uint64) string {
	if sectors == 0 {
		return "0"
	}

	n := sectors
	suffixIdx := -1 // -1 = sectors, 0 = KiB, 1 = MiB, 2 = GiB, 3 = TiB

	if n%2 == 0 {
		n /= 2
		suffixIdx = 0
		for suffixIdx < 3 && n%1024 == 0 {
			n /= 1024
			suffixIdx++
		}
	}

	if suffixIdx < 0 {
		return strconv.FormatUint(n, 10)
	}
	names := []string{"KiB", "MiB", "GiB", "TiB"}
	return strconv.FormatUint(n, 10) + names[suffixIdx]
}
