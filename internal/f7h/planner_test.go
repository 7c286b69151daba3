package f7h_test

import (
	"testing"

	"github.com/ostafen/f7h/internal/f7h"
	"github.com/ostafen/f7h/internal/f7herr"
	"github.com/ostafen/f7h/internal/mbr"
	"github.com/ostafen/f7h/internal/testimg"
	"github.com/stretchr/testify/require"
)

func TestPlanDefaultsSizeAndEveryFromSlots(t *testing.T) {
	entry := mbr.PartEntry{Type: 0x83, Start: 2048, Size: 1000}
	meta, err := f7h.Plan(entry, f7h.PlanInput{Slots: 4, First: 0})
	require.NoError(t, err)
	require.EqualValues(t, 250, meta.Size)
	require.EqualValues(t, 250, meta.Every)
	require.EqualValues(t, 0, meta.Padding())
	require.EqualValues(t, 0, meta.Bitmap)
}

func TestPlanSizeOnlyImpliesEveryEqualsSize(t *testing.T) {
	entry := mbr.PartEntry{Type: 0x83, Start: 2048, Size: 1000}
	size := uint32(100)
	meta, err := f7h.Plan(entry, f7h.PlanInput{Slots: 4, Size: &size})
	require.NoError(t, err)
	require.EqualValues(t, 100, meta.Size)
	require.EqualValues(t, 100, meta.Every)
}

func TestPlanEveryOnlyImpliesSizeEqualsEvery(t *testing.T) {
	entry := mbr.PartEntry{Type: 0x83, Start: 2048, Size: 1000}
	every := uint32(200)
	meta, err := f7h.Plan(entry, f7h.PlanInput{Slots: 4, Every: &every})
	require.NoError(t, err)
	require.EqualValues(t, 200, meta.Size)
	require.EqualValues(t, 200, meta.Every)
}

func TestPlanBothSizeAndEvery(t *testing.T) {
	entry := mbr.PartEntry{Type: 0x83, Start: 2048, Size: 1000}
	size, every := uint32(80), uint32(100)
	meta, err := f7h.Plan(entry, f7h.PlanInput{Slots: 4, Size: &size, Every: &every})
	require.NoError(t, err)
	require.EqualValues(t, 80, meta.Size)
	require.EqualValues(t, 100, meta.Every)
	require.EqualValues(t, 20, meta.Padding())
}

func TestPlanRejectsEveryLessThanSize(t *testing.T) {
	entry := mbr.PartEntry{Type: 0x83, Start: 2048, Size: 1000}
	size, every := uint32(100), uint32(80)
	_, err := f7h.Plan(entry, f7h.PlanInput{Slots: 4, Size: &size, Every: &every})
	require.ErrorIs(t, err, f7herr.ErrEveryLessThanSize)
}

func TestPlanRejectsGeometryExceedingPartition(t *testing.T) {
	entry := mbr.PartEntry{Type: 0x83, Start: 2048, Size: 100}
	size := uint32(50)
	_, err := f7h.Plan(entry, f7h.PlanInput{Slots: 4, Size: &size})
	require.ErrorIs(t, err, f7herr.ErrPartitionTooSmall)
}

func TestPlanRejectsTooManySlots(t *testing.T) {
	entry := mbr.PartEntry{Type: 0x83, Start: 2048, Size: 1000}
	_, err := f7h.Plan(entry, f7h.PlanInput{Slots: 17})
	require.ErrorIs(t, err, f7herr.ErrSlotsOutOfRange)
}

func TestPlanRejectsDisabledPartition(t *testing.T) {
	entry := mbr.PartEntry{Type: mbr.TypeDisabled}
	_, err := f7h.Plan(entry, f7h.PlanInput{Slots: 4})
	require.ErrorIs(t, err, f7herr.ErrPartitionDisabled)
}

func TestPlanRejectsFirstBeyondPartition(t *testing.T) {
	entry := mbr.PartEntry{Type: 0x83, Start: 2048, Size: 100}
	_, err := f7h.Plan(entry, f7h.PlanInput{Slots: 4, First: 500})
	require.ErrorIs(t, err, f7herr.ErrFirstBeyondPart)
}

func TestCommitWritesHeaderBeforeTypeByte(t *testing.T) {
	entries := [mbr.NumEntries]mbr.PartEntry{{Type: 0x83, Start: 2048, Size: 1000}, {}, {}, {}}
	buf := testimg.NewBuffer(4000)
	testimg.WriteMBR(buf, entries)

	meta, err := f7h.Plan(entries[0], f7h.PlanInput{Slots: 4})
	require.NoError(t, err)

	rec := &writeRecorder{Buffer: buf}
	require.NoError(t, f7h.Commit(rec, entries, 0, meta))

	typeOff := int64(mbr.EntriesOffset + 0x04)
	require.Equal(t, []int64{2048 * 512, typeOff}, rec.offsets)
	require.Equal(t, byte(mbr.TypeF7h), buf.Bytes()[typeOff])

	readEntries := entries
	readEntries[0].Type = mbr.TypeF7h
	got, err := f7h.ReadF7Header(buf, readEntries, 0, nil)
	require.NoError(t, err)
	require.Equal(t, meta, got)
}

// writeRecorder records the offset of every WriteAt call, in order.
type writeRecorder struct {
	*testimg.Buffer
	offsets []int64
}

func (w *writeRecorder) WriteAt(p []byte, off int64) (int, error) {
	w.offsets = append(w.offsets, off)
	return w.Buffer.WriteAt(p, off)
}
