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

	"github.com/spf13/cobra"
)

const usageText = `Usage: ` + AppName + ` <command> [args...]

Commands:
  help                                print this message
  version                              print the version
  tablebrief <file>                    print the MBR partition table
  brief <file> <0-3>                   print an F7h partition's slot summary
  override <file> <0-3> --slots N ...  format a partition as an F7h container
  reset <file> <0-3>                   clear every slot's occupancy bit
  clear <file> <0-3> <0-15>            clear one slot
  load <file> <0-3> <0-15> <image>     copy an image into a free slot
  cpboot <file> <bootloader>           install boot code, preserving the partition table

override flags:
  --slots N      number of slots, 1-16 (required)
  --first V      sectors from partition start to slot 0 (default 1)
  --size V       sectors per slot
  --every V      sectors between consecutive slot starts
  --dry-run      compute and print geometry without writing

V accepts a bare sector count or a value suffixed with KiB, MiB, GiB, or TiB.
`

// DefineHelpCommand defines the help command: it prints usage to stderr
// and exits 0, per spec.md §6.
func DefineHelpCommand() *cobra.Command {
	return &cobra.Command{
		Use:                   "help",
		Short:                 "Print usage information",
		Args:                  cobra.NoArgs,
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(os.Stderr, usageText)
			return nil
		},
	}
}
