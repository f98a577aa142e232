package trkhits

import (
	"path/filepath"
	"testing"

	"github.com/proio-org/go-proio"
	model "github.com/proio-org/go-proio-pb/model/lcio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeProio writes one event per element of events. Every cell ID becomes a
// SimTrackerHit tagged VXDCollection; calo adds that many calorimeter hits
// tagged SITCollection to each event.
func writeProio(t *testing.T, fname string, events [][]int32, calo int) {
	t.Helper()
	w, err := proio.Create(fname)
	require.NoError(t, err)

	for _, cellIDs := range events {
		evt := proio.NewEvent()
		for _, id := range cellIDs {
			evt.AddEntry("VXDCollection", &model.SimTrackerHit{CellID0: id})
		}
		for i := 0; i < calo; i++ {
			evt.AddEntry("SITCollection", &model.SimCalorimeterHit{CellID0: cellID(1, 0)})
		}
		require.NoError(t, w.Push(evt))
	}
	w.Close()
}

func TestProioSource(t *testing.T) {
	dir := t.TempDir()
	f1 := filepath.Join(dir, "a.proio")
	f2 := filepath.Join(dir, "b.proio")
	writeProio(t, f1, [][]int32{{cellID(1, 0)}, {cellID(1, 0), cellID(1, 1)}}, 0)
	writeProio(t, f2, [][]int32{{cellID(3, 0), cellID(4, 2)}}, 2)

	src := NewProioSource([]string{f1, f2}, []string{"VXDCollection", "SITCollection", "FTDCollection"}, 10)
	defer src.Close()

	var runs, numbers []int64
	var nHits []int
	var sit []*Collection
	for src.Next() {
		evt := src.Event()
		assert.Equal(t, evt.Run, src.RunHeader().Number)
		runs = append(runs, evt.Run)
		numbers = append(numbers, evt.Number)

		vxd := evt.Collections["VXDCollection"]
		require.NotNil(t, vxd)
		assert.Zero(t, vxd.Foreign)
		nHits = append(nHits, len(vxd.Hits))

		sit = append(sit, evt.Collections["SITCollection"])
		_, ok := evt.Collections["FTDCollection"]
		assert.False(t, ok)
	}
	require.NoError(t, src.Err())

	assert.Equal(t, []int64{10, 10, 11}, runs)
	assert.Equal(t, []int64{0, 1, 0}, numbers)
	assert.Equal(t, []int{1, 2, 2}, nHits)

	require.Len(t, sit, 3)
	assert.Nil(t, sit[0])
	assert.Nil(t, sit[1])
	require.NotNil(t, sit[2])
	assert.Equal(t, 2, sit[2].Foreign)
	assert.Empty(t, sit[2].Hits)
}

func TestProioSourceCounts(t *testing.T) {
	dir := t.TempDir()
	f1 := filepath.Join(dir, "a.proio")
	f2 := filepath.Join(dir, "b.proio")
	writeProio(t, f1, [][]int32{{cellID(1, 0)}, {cellID(1, 0), cellID(1, 1)}}, 0)
	writeProio(t, f2, [][]int32{{cellID(3, 0), cellID(4, 2)}}, 1)

	src := NewProioSource([]string{f1, f2}, DefaultCollections, 0)
	defer src.Close()

	hc, _ := newTestCounter(t, Config{})
	require.NoError(t, Process(src, hc))
	report := hc.End()

	assert.EqualValues(t, 3, report.Events)
	assert.Equal(t, 2, report.Runs)
	assert.EqualValues(t, 1, report.Skipped.ForeignCollections)

	vxd, _ := report.System("VXD")
	assert.EqualValues(t, 2, vxd.Layers[0].NHits)
	assert.EqualValues(t, 1, vxd.Layers[1].NHits)
	require.Len(t, vxd.Layers[0].Runs, 2)
	assert.EqualValues(t, 0, vxd.Layers[0].Runs[0].Run)
	assert.EqualValues(t, 1, vxd.Layers[0].Runs[1].Run)

	ftd, _ := report.System("FTD")
	assert.EqualValues(t, 1, ftd.NHits)
	tpc, _ := report.System("TPC")
	assert.EqualValues(t, 1, tpc.NHits)
}

func TestProioSourceMissingFile(t *testing.T) {
	src := NewProioSource([]string{filepath.Join(t.TempDir(), "nope.proio")}, DefaultCollections, 0)
	assert.False(t, src.Next())
	assert.Error(t, src.Err())
	assert.NoError(t, src.Close())
}
