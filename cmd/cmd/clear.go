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
	"os"

	"github.com/ostafen/f7h/internal/f7h"
	"github.com/ostafen/f7h/internal/logger"
	"github.com/spf13/cobra"
)

// DefineClearCommand defines the clear command: clear one slot's
// occupancy bit without touching its payload.
func DefineClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "clear <file> <0-3> <0-15>",
		Short:        "Clear one slot's occupancy bit",
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE:         runClear,
	}
}

func runClear(cmd *cobra.Command, args []string) error {
	idx, err := parsePartitionIndex(args[1])
	if err != nil {
		return err
	}
	slot, err := parseSlotIndex(args[2])
	if err != nil {
		return err
	}

	f, entries, err := openValidated(args[0], false)
	if err != nil {
		return err
	}
	defer f.Close()

	log := logger.New(os.Stderr)
	meta, err := f7h.ReadF7Header(f, entries, idx, log)
	if err != nil {
		return err
	}

	return f7h.Clear(f, entries, idx, meta, slot)
}
