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
	"github.com/ostafen/f7h/internal/fs"
	"github.com/ostafen/f7h/internal/mbr"
	"github.com/ostafen/f7h/internal/sio"
	"github.com/spf13/cobra"
)

// DefineCpbootCommand defines the cpboot command: install a bootloader's
// boot code and signature while leaving the partition table untouched.
func DefineCpbootCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "cpboot <file> <bootloader>",
		Short:        "Install boot code, preserving the partition table",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         runCpboot,
	}
}

func runCpboot(cmd *cobra.Command, args []string) error {
	f, entries, err := openValidated(args[0], false)
	if err != nil {
		return err
	}
	defer f.Close()

	targetSectors, err := diskSectorCount(f)
	if err != nil {
		return err
	}

	src, err := fs.OpenReadOnly(args[1])
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}

	return mbr.CopyBoot(f, src, info.Size(), targetSectors, entries, sio.PreferredBlockSize(f))
}
