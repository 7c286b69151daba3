package mbr_test

import (
	"testing"

	"github.com/ostafen/f7h/internal/f7herr"
	"github.com/ostafen/f7h/internal/mbr"
	"github.com/ostafen/f7h/internal/testimg"
	"github.com/stretchr/testify/require"
)

func TestReadMBRRoundTrip(t *testing.T) {
	want := [mbr.NumEntries]mbr.PartEntry{
		{Boot: 0x80, Type: 0x83, Start: 2048, Size: 204800},
		{Type: mbr.TypeF7h, Start: 206848, Size: 8192},
		{},
		{},
	}

	buf := testimg.NewBuffer(256 * 1024)
	testimg.WriteMBR(buf, want)

	got, err := mbr.ReadMBR(buf)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestReadMBRBadMagic(t *testing.T) {
	buf := testimg.NewBuffer(1)
	_, err := mbr.ReadMBR(buf)
	require.ErrorIs(t, err, f7herr.ErrMBRBadMagic)
}

func TestReadMBRTruncated(t *testing.T) {
	buf := testimg.NewBuffer(0)
	_, err := mbr.ReadMBR(buf)
	require.ErrorIs(t, err, f7herr.ErrMBRTruncated)
}

func TestValidatePartitionsRejectsOverlap(t *testing.T) {
	entries := [mbr.NumEntries]mbr.PartEntry{
		{Type: 0x83, Start: 2048, Size: 1000},
		{Type: 0x83, Start: 2500, Size: 1000},
		{},
		{},
	}
	err := mbr.ValidatePartitions(entries, 1_000_000)
	require.ErrorIs(t, err, f7herr.ErrPartitionsOverlap)
}

func TestValidatePartitionsRejectsBeyondDisk(t *testing.T) {
	entries := [mbr.NumEntries]mbr.PartEntry{
		{Type: 0x83, Start: 2048, Size: 1000},
		{},
		{},
		{},
	}
	err := mbr.ValidatePartitions(entries, 2000)
	require.ErrorIs(t, err, f7herr.ErrPartitionBeyondDisk)
}

func TestValidatePartitionsIgnoresDisabledAndGPTProtective(t *testing.T) {
	entries := [mbr.NumEntries]mbr.PartEntry{
		{Type: mbr.TypeDisabled, Start: 0, Size: 0},
		{Type: mbr.TypeGPTProtective, Start: 1, Size: 0xFFFFFFFF},
		{},
		{},
	}
	err := mbr.ValidatePartitions(entries, 100)
	require.NoError(t, err)
}

func TestValidatePartitionsAcceptsAdjacentNonOverlapping(t *testing.T) {
	entries := [mbr.NumEntries]mbr.PartEntry{
		{Type: 0x83, Start: 2048, Size: 1000},
		{Type: 0x83, Start: 3048, Size: 1000},
		{},
		{},
	}
	err := mbr.ValidatePartitions(entries, 1_000_000)
	require.NoError(t, err)
}

func TestWriteTypeByteOnlyTouchesOneByte(t *testing.T) {
	entries := testimg.SingleF7hEntry(2048, 1000)
	buf := testimg.NewBuffer(4000)
	testimg.WriteMBR(buf, entries)

	before := append([]byte(nil), buf.Bytes()...)

	require.NoError(t, mbr.WriteTypeByte(buf, 0, 0x83))

	after := buf.Bytes()
	for i := range before {
		if i == mbr.EntriesOffset+0x04 {
			require.Equal(t, byte(0x83), after[i])
			continue
		}
		require.Equal(t, before[i], after[i], "byte %d changed unexpectedly", i)
	}
}

func TestTypeNameKnownAndUnknown(t *testing.T) {
	require.Equal(t, "F7h system image", mbr.TypeName(mbr.TypeF7h))
	require.Equal(t, "GPT protective MBR", mbr.TypeName(mbr.TypeGPTProtective))
	require.Contains(t, mbr.TypeName(0x7A), "Unknown")
}
