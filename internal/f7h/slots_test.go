package f7h_test

import (
	"bytes"
	"testing"

	"github.com/ostafen/f7h/internal/f7h"
	"github.com/ostafen/f7h/internal/f7herr"
	"github.com/ostafen/f7h/internal/mbr"
	"github.com/ostafen/f7h/internal/testimg"
	"github.com/stretchr/testify/require"
)

func setupSlotted(t *testing.T) (*testimg.Buffer, [mbr.NumEntries]mbr.PartEntry, f7h.Meta) {
	t.Helper()
	entries := testimg.SingleF7hEntry(2048, 1000)
	buf := testimg.NewBuffer(4000)
	testimg.WriteMBR(buf, entries)

	meta := f7h.Meta{Count: 4, Bitmap: 0, First: 1, Size: 100, Every: 100}
	require.NoError(t, f7h.WriteF7Header(buf, entries, 0, meta))
	return buf, entries, meta
}

func TestLoadMarksSlotOccupiedAndWritesPayload(t *testing.T) {
	buf, entries, meta := setupSlotted(t)

	payload := bytes.Repeat([]byte{0x42}, 300)
	img := bytes.NewReader(payload)

	require.NoError(t, f7h.Load(buf, entries, 0, meta, 1, img, int64(len(payload)), 4096))

	got, err := f7h.ReadF7Header(buf, entries, 0, nil)
	require.NoError(t, err)
	require.Equal(t, uint16(0b0010), got.Bitmap)

	off := f7h.SlotOffset(entries[0], meta, 1)
	written := make([]byte, len(payload))
	n, err := buf.ReadAt(written, off)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)
	require.Equal(t, payload, written)
}

func TestLoadRejectsAlreadyActiveSlot(t *testing.T) {
	buf, entries, meta := setupSlotted(t)
	img := bytes.NewReader([]byte{1, 2, 3})
	require.NoError(t, f7h.Load(buf, entries, 0, meta, 0, img, 3, 4096))

	got, err := f7h.ReadF7Header(buf, entries, 0, nil)
	require.NoError(t, err)

	err = f7h.Load(buf, entries, 0, got, 0, bytes.NewReader([]byte{9}), 1, 4096)
	require.ErrorIs(t, err, f7herr.ErrSlotAlreadyActive)
}

func TestLoadRejectsOversizedPayload(t *testing.T) {
	buf, entries, meta := setupSlotted(t)
	big := bytes.Repeat([]byte{0xFF}, int(meta.Size)*512+1)
	err := f7h.Load(buf, entries, 0, meta, 0, bytes.NewReader(big), int64(len(big)), 4096)
	require.ErrorIs(t, err, f7herr.ErrPayloadTooLarge)
}

func TestLoadRejectsSlotOutOfRange(t *testing.T) {
	buf, entries, meta := setupSlotted(t)
	err := f7h.Load(buf, entries, 0, meta, 4, bytes.NewReader(nil), 0, 4096)
	require.ErrorIs(t, err, f7herr.ErrSlotOutOfRange)
}

func TestClearAndReclaim(t *testing.T) {
	buf, entries, meta := setupSlotted(t)
	require.NoError(t, f7h.Load(buf, entries, 0, meta, 2, bytes.NewReader([]byte{1}), 1, 4096))

	got, err := f7h.ReadF7Header(buf, entries, 0, nil)
	require.NoError(t, err)
	require.Equal(t, uint16(0b0100), got.Bitmap)

	require.NoError(t, f7h.Clear(buf, entries, 0, got, 2))

	got2, err := f7h.ReadF7Header(buf, entries, 0, nil)
	require.NoError(t, err)
	require.EqualValues(t, 0, got2.Bitmap)

	require.NoError(t, f7h.Load(buf, entries, 0, got2, 2, bytes.NewReader([]byte{2}), 1, 4096))
}

func TestClearRejectsAlreadyClearedSlot(t *testing.T) {
	buf, entries, meta := setupSlotted(t)
	err := f7h.Clear(buf, entries, 0, meta, 0)
	require.ErrorIs(t, err, f7herr.ErrSlotAlreadyCleared)
}

func TestResetClearsEveryBit(t *testing.T) {
	buf, entries, meta := setupSlotted(t)
	require.NoError(t, f7h.Load(buf, entries, 0, meta, 0, bytes.NewReader([]byte{1}), 1, 4096))
	require.NoError(t, f7h.Load(buf, entries, 0, meta, 3, bytes.NewReader([]byte{1}), 1, 4096))

	require.NoError(t, f7h.Reset(buf, entries, 0))

	got, err := f7h.ReadF7Header(buf, entries, 0, nil)
	require.NoError(t, err)
	require.EqualValues(t, 0, got.Bitmap)
}

func TestSlotOffsetAndLen(t *testing.T) {
	entry := mbr.PartEntry{Start: 2048, Size: 1000}
	meta := f7h.Meta{Count: 4, First: 1, Size: 100, Every: 100}

	require.EqualValues(t, (2048+1)*512, f7h.SlotOffset(entry, meta, 0))
	require.EqualValues(t, (2048+1+100)*512, f7h.SlotOffset(entry, meta, 1))
	require.EqualValues(t, 100*512, f7h.SlotByteLen(meta))
}
