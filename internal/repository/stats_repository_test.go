package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joaofig/evedb-go/internal/models"
)

func TestStatsRepository_EmptyDatabase(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatsRepository(db)

	// No tables exist before a build; the summary is all zeros.
	stats, err := repo.GetDatasetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.VehicleCount)
	assert.Equal(t, int64(0), stats.TrajectoryCount)
	assert.Equal(t, 0.0, stats.Length.Mean)
}

func TestStatsRepository_BuiltDatabase(t *testing.T) {
	db := newTestDB(t)

	vehicles := NewVehicleRepository(db)
	require.NoError(t, vehicles.CreateTable())
	require.NoError(t, vehicles.BulkInsert([]models.Vehicle{{VehicleID: 1}, {VehicleID: 2}}))

	signals := NewSignalRepository(db)
	require.NoError(t, signals.CreateTable())
	require.NoError(t, signals.BulkInsert([]models.Signal{
		makeSignal(1, 1, 0, 42.281, -83.743),
		makeSignal(1, 1, 10000, 42.285, -83.747),
		makeSignal(2, 1, 0, 42.290, -83.750),
	}))

	trajectories := NewTrajectoryRepository(db)
	require.NoError(t, trajectories.CreateTable())
	require.NoError(t, trajectories.SeedFromSignals())
	ids, err := trajectories.IDs()
	require.NoError(t, err)
	require.Len(t, ids, 2)

	require.NoError(t, trajectories.UpdateSummaries([]models.TrajectoryUpdate{{
		TrajID:    ids[0],
		LengthM:   100.0,
		DtIni:     "2017-11-02T00:00:00-04:00",
		DtEnd:     "2017-11-02T00:00:10-04:00",
		DurationS: 10.0,
		H3Ini:     1,
		H3End:     2,
	}}))

	nodes := NewNodeRepository(db)
	require.NoError(t, nodes.CreateTable())
	require.NoError(t, nodes.InsertNodes([]models.Node{
		{TrajID: ids[0], Latitude: 42.281, Longitude: -83.743, H3Cell: 1},
		{TrajID: ids[0], Latitude: 42.285, Longitude: -83.747, H3Cell: 2},
	}))
	require.NoError(t, nodes.InsertMatchError(ids[1], "no match found"))

	stats, err := NewStatsRepository(db).GetDatasetStats()
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.VehicleCount)
	assert.Equal(t, int64(3), stats.SignalCount)
	assert.Equal(t, int64(2), stats.TrajectoryCount)
	assert.Equal(t, int64(1), stats.SummarizedCount)
	assert.Equal(t, int64(2), stats.NodeCount)
	assert.Equal(t, int64(1), stats.FailedMatchCount)

	assert.InDelta(t, 100.0, stats.Length.Mean, 1e-9)
	assert.InDelta(t, 100.0, stats.Length.P50, 1e-9)
	assert.InDelta(t, 100.0, stats.Length.Total, 1e-9)
	assert.InDelta(t, 10.0, stats.Duration.Max, 1e-9)
}
