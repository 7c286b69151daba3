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

	"github.com/ostafen/f7h/internal/cli"
	"github.com/ostafen/f7h/internal/f7herr"
	"github.com/ostafen/f7h/internal/f7h"
	"github.com/spf13/cobra"
)

// DefineOverrideCommand defines the override command: format an MBR
// entry as an F7h container with a chosen slot geometry, per spec.md §4.5.
func DefineOverrideCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "override <file> <0-3> [flags]",
		Short:        "Format a partition as an F7h container",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         runOverride,
	}

	cmd.Flags().String("slots", "", "number of slots, 1-16 (required)")
	cmd.Flags().String("first", "1", "sectors from partition start to slot 0")
	cmd.Flags().String("size", "", "sectors per slot")
	cmd.Flags().String("every", "", "sectors between consecutive slot starts")
	cmd.Flags().Bool("dry-run", false, "compute and print geometry without writing")
	return cmd
}

func runOverride(cmd *cobra.Command, args []string) error {
	if err := cli.RejectDuplicateFlags(os.Args[1:], "slots", "first", "size", "every", "dry-run"); err != nil {
		return err
	}

	idx, err := parsePartitionIndex(args[1])
	if err != nil {
		return err
	}

	slotsStr, _ := cmd.Flags().GetString("slots")
	if slotsStr == "" {
		return fmt.Errorf("%w: --slots is required", f7herr.ErrMissingFlag)
	}
	slots, err := f7h.ParsePlainInt(slotsStr)
	if err != nil {
		return err
	}

	firstStr, _ := cmd.Flags().GetString("first")
	first, err := f7h.ParseLBA(firstStr)
	if err != nil {
		return err
	}

	in := f7h.PlanInput{Slots: int(slots), First: uint32(first)}

	if sizeStr, _ := cmd.Flags().GetString("size"); sizeStr != "" {
		size, err := f7h.ParseLBA(sizeStr)
		if err != nil {
			return err
		}
		size32 := uint32(size)
		in.Size = &size32
	}
	if everyStr, _ := cmd.Flags().GetString("every"); everyStr != "" {
		every, err := f7h.ParseLBA(everyStr)
		if err != nil {
			return err
		}
		every32 := uint32(every)
		in.Every = &every32
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	f, entries, err := openValidated(args[0], dryRun)
	if err != nil {
		return err
	}
	defer f.Close()

	meta, err := f7h.Plan(entries[idx], in)
	if err != nil {
		return err
	}

	if dryRun {
		printGeometry(meta)
		return nil
	}

	if err := f7h.Commit(f, entries, idx, meta); err != nil {
		return err
	}
	printGeometry(meta)
	return nil
}

func printGeometry(meta f7h.Meta) {
	fmt.Printf("Slots = %d\n", meta.Count)
	fmt.Printf("First = +%s\n", f7h.ShortenSectors(uint64(meta.First)))
	fmt.Printf("Size = %s\n", f7h.ShortenSectors(uint64(meta.Size)))
	fmt.Printf("Every = %s\n", f7h.ShortenSectors(uint64(meta.Every)))
}
