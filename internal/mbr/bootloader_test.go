package mbr_test

import (
	"testing"

	"github.com/ostafen/f7h/internal/f7herr"
	"github.com/ostafen/f7h/internal/mbr"
	"github.com/ostafen/f7h/internal/testimg"
	"github.com/stretchr/testify/require"
)

func bootSource(t *testing.T, bootByte byte, extra int) *testimg.Buffer {
	t.Helper()
	src := testimg.NewBuffer(1)
	testimg.WriteMBR(src, [mbr.NumEntries]mbr.PartEntry{})
	b := src.Bytes()
	b[0] = bootByte
	if extra > 0 {
		var p [1]byte
		p[0] = 0xAA
		src.WriteAt(p[:], int64(len(b)+extra-1))
	}
	return src
}

func TestCopyBootPreservesPartitionTable(t *testing.T) {
	entries := [mbr.NumEntries]mbr.PartEntry{
		{Boot: 0x80, Type: 0x83, Start: 2048, Size: 204800},
		{},
		{},
		{},
	}
	target := testimg.NewBuffer(300000)
	testimg.WriteMBR(target, entries)
	tableBefore := append([]byte(nil), target.Bytes()[mbr.EntriesOffset:mbr.SignatureOffset]...)

	src := bootSource(t, 0xEB, 0)

	err := mbr.CopyBoot(target, src, mbr.Size, 300000, entries, 4096)
	require.NoError(t, err)

	require.Equal(t, tableBefore, target.Bytes()[mbr.EntriesOffset:mbr.SignatureOffset])
	require.Equal(t, byte(0xEB), target.Bytes()[0])
	require.Equal(t, byte(0x55), target.Bytes()[mbr.SignatureOffset])
	require.Equal(t, byte(0xAA), target.Bytes()[mbr.SignatureOffset+1])
}

func TestCopyBootRejectsTooShortSource(t *testing.T) {
	entries := [mbr.NumEntries]mbr.PartEntry{{Type: 0x83, Start: 2048, Size: 1000}, {}, {}, {}}
	target := testimg.NewBuffer(4000)
	testimg.WriteMBR(target, entries)
	src := testimg.NewBuffer(1)

	err := mbr.CopyBoot(target, src, 100, 4000, entries, 4096)
	require.Error(t, err)
}

func TestCopyBootRejectsOverlapWithFirstPartition(t *testing.T) {
	entries := [mbr.NumEntries]mbr.PartEntry{{Type: 0x83, Start: 1, Size: 1000}, {}, {}, {}}
	target := testimg.NewBuffer(4000)
	testimg.WriteMBR(target, entries)
	src := bootSource(t, 0xEB, 2048)

	err := mbr.CopyBoot(target, src, mbr.Size+2048, 4000, entries, 4096)
	require.ErrorIs(t, err, f7herr.ErrPartitionBeyondDisk)
}
