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
	"text/tabwriter"

	"github.com/ostafen/f7h/internal/f7h"
	"github.com/ostafen/f7h/internal/mbr"
	"github.com/spf13/cobra"
)

// DefineTableBriefCommand defines the tablebrief command: print the
// MBR's 4 partition entries as a table.
func DefineTableBriefCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "tablebrief <file>",
		Short:        "Print the MBR partition table",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runTableBrief,
	}
}

func runTableBrief(cmd *cobra.Command, args []string) error {
	f, entries, err := openValidated(args[0], true)
	if err != nil {
		return err
	}
	defer f.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ENTRY\tBOOT\tTYPE\tSTART\tSECTORS\tSIZE")
	for i, e := range entries {
		boot := "no"
		if e.Boot == 0x80 {
			boot = "yes"
		}
		size := "0"
		if e.Eligible() {
			size = f7h.ShortenSectors(uint64(e.Size))
		}
		fmt.Fprintf(w, "%d\t%s\t0x%02X (%s)\t%d\t%d\t%s\n",
			i, boot, e.Type, mbr.TypeName(e.Type), e.Start, e.Size, size)
	}
	return w.Flush()
}
