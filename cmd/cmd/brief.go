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
	"fmt"
	"os"

	"github.com/ostafen/f7h/internal/f7h"
	"github.com/ostafen/f7h/internal/logger"
	"github.com/spf13/cobra"
)

// DefineBriefCommand defines the brief command: print an F7h
// partition's slot geometry and occupancy summary.
func DefineBriefCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "brief <file> <0-3>",
		Short:        "Print an F7h partition's slot summary",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         runBrief,
	}
}

func runBrief(cmd *cobra.Command, args []string) error {
	idx, err := parsePartitionIndex(args[1])
	if err != nil {
		return err
	}

	f, entries, err := openValidated(args[0], true)
	if err != nil {
		return err
	}
	defer f.Close()

	log := logger.New(os.Stderr)
	meta, err := f7h.ReadF7Header(f, entries, idx, log)
	if err != nil {
		return err
	}

	fmt.Printf("Slots = %d\n", meta.Count)
	fmt.Printf("First = +%s\n", f7h.ShortenSectors(uint64(meta.First)))
	fmt.Printf("Size = %s\n", f7h.ShortenSectors(uint64(meta.Size)))
	fmt.Printf("Every = %s\n", f7h.ShortenSectors(uint64(meta.Every)))
	fmt.Printf("Bitmap = %04X\n", meta.Bitmap)
	fmt.Printf("Occupancy = [%s]\n", occupancyString(meta))

	entry := entries[idx]
	for s := 0; s < meta.Count; s++ {
		off := f7h.SlotOffset(entry, meta, s)
		fmt.Printf("  slot %2d: offset=%d length=%d\n", s, off, f7h.SlotByteLen(meta))
	}
	return nil
}

func occupancyString(meta f7h.Meta) string {
	b := make([]byte, meta.Count)
	for i := range b {
		if meta.Bitmap&(1<<uint(i)) != 0 {
			b[i] = 'x'
		} else {
			b[i] = '.'
		}
	}
	return string(b)
}
