package f7h_test

import (
	"testing"

	"github.com/ostafen/f7h/internal/f7h"
	"github.com/ostafen/f7h/internal/f7herr"
	"github.com/ostafen/f7h/internal/logger"
	"github.com/ostafen/f7h/internal/mbr"
	"github.com/ostafen/f7h/internal/testimg"
	"github.com/stretchr/testify/require"
)

func TestWriteReadF7HeaderRoundTrip(t *testing.T) {
	entries := testimg.SingleF7hEntry(2048, 4096)
	buf := testimg.NewBuffer(8192)
	testimg.WriteMBR(buf, entries)

	meta := f7h.Meta{Count: 4, Bitmap: 0b1010, First: 1, Size: 100, Every: 150}
	require.NoError(t, f7h.WriteF7Header(buf, entries, 0, meta))

	got, err := f7h.ReadF7Header(buf, entries, 0, nil)
	require.NoError(t, err)
	require.Equal(t, meta, got)
	require.EqualValues(t, 50, got.Padding())
}

func TestReadF7HeaderRejectsWrongType(t *testing.T) {
	entries := [mbr.NumEntries]mbr.PartEntry{{Type: 0x83, Start: 1, Size: 100}, {}, {}, {}}
	buf := testimg.NewBuffer(200)
	testimg.WriteMBR(buf, entries)

	_, err := f7h.ReadF7Header(buf, entries, 0, nil)
	require.ErrorIs(t, err, f7herr.ErrNotF7h)
}

func TestReadF7HeaderRejectsDisabledEntry(t *testing.T) {
	entries := [mbr.NumEntries]mbr.PartEntry{{}, {}, {}, {}}
	buf := testimg.NewBuffer(200)
	testimg.WriteMBR(buf, entries)

	_, err := f7h.ReadF7Header(buf, entries, 0, nil)
	require.ErrorIs(t, err, f7herr.ErrPartitionDisabled)
}

func TestReadF7HeaderWarnsOnStaleBitmapBits(t *testing.T) {
	entries := testimg.SingleF7hEntry(2048, 4096)
	buf := testimg.NewBuffer(8192)
	testimg.WriteMBR(buf, entries)

	meta := f7h.Meta{Count: 2, Bitmap: 0b1100, First: 1, Size: 10, Every: 10}
	require.NoError(t, f7h.WriteF7Header(buf, entries, 0, meta))

	out := &captureWriter{}
	log := logger.New(out)
	got, err := f7h.ReadF7Header(buf, entries, 0, log)
	require.NoError(t, err)
	require.Equal(t, uint16(0b1100), got.Bitmap)
	require.Contains(t, out.String(), "bitmap bit 2 is set")
	require.Contains(t, out.String(), "bitmap bit 3 is set")
}

func TestWriteBitmapRecheckRejectsRetypedPartition(t *testing.T) {
	entries := testimg.SingleF7hEntry(2048, 4096)
	buf := testimg.NewBuffer(8192)
	testimg.WriteMBR(buf, entries)

	meta := f7h.Meta{Count: 1, Bitmap: 0, First: 1, Size: 10, Every: 10}
	require.NoError(t, f7h.WriteF7Header(buf, entries, 0, meta))
	require.NoError(t, mbr.WriteTypeByte(buf, 0, 0x83))

	err := f7h.WriteBitmap(buf, entries, 0, 0x0001)
	require.ErrorIs(t, err, f7herr.ErrNotF7h)
}

type captureWriter struct{ data []byte }

func (c *captureWriter) Write(p []byte) (int, error) {
	c.data = append(c.data, p...)
	return len(p), nil
}

func (c *captureWriter) String() string { return string(c.data) }
