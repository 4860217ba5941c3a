package repository

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joaofig/evedb-go/internal/database"
	"github.com/joaofig/evedb-go/internal/models"
	"github.com/joaofig/evedb-go/internal/spatial"
)

// newTestDB opens a throwaway SQLite database in a temp directory.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.Config{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func makeSignal(vehicleID, tripID, timeStamp int64, lat, lon float64) models.Signal {
	return models.Signal{
		DayNum:         1.5,
		VehicleID:      vehicleID,
		TripID:         tripID,
		TimeStamp:      timeStamp,
		Latitude:       lat + 0.0001, // raw fix is slightly off the road
		Longitude:      lon - 0.0001,
		MatchLatitude:  lat,
		MatchLongitude: lon,
		MatchType:      1,
		H3Cell:         spatial.CellAt(lat, lon),
	}
}

func TestVehicleRepository_CreateTableIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewVehicleRepository(db)

	require.NoError(t, repo.CreateTable())
	require.NoError(t, repo.BulkInsert([]models.Vehicle{{VehicleID: 1}}))

	// Recreating rebuilds the table from empty with the same schema.
	require.NoError(t, repo.CreateTable())
	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, repo.BulkInsert([]models.Vehicle{{VehicleID: 1}}))
}

func TestVehicleRepository_BulkInsertRollsBackWholeBatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewVehicleRepository(db)
	require.NoError(t, repo.CreateTable())

	batch := []models.Vehicle{
		{VehicleID: 1, VehicleType: strPtr("ICE")},
		{VehicleID: 2},
		{VehicleID: 1}, // duplicate primary key
	}
	err := repo.BulkInsert(batch)
	require.Error(t, err)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestVehicleRepository_OptionalFieldsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewVehicleRepository(db)
	require.NoError(t, repo.CreateTable())

	weight := int64(1810)
	require.NoError(t, repo.BulkInsert([]models.Vehicle{
		{VehicleID: 10, VehicleType: strPtr("HEV"), Weight: &weight},
		{VehicleID: 11},
	}))

	v, err := repo.GetVehicleByID(10)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "HEV", *v.VehicleType)
	assert.Equal(t, int64(1810), *v.Weight)
	assert.Nil(t, v.Engine)

	v, err = repo.GetVehicleByID(11)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Nil(t, v.VehicleType)
	assert.Nil(t, v.Weight)

	missing, err := repo.GetVehicleByID(999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := repo.GetVehicles()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSignalRepository_BulkInsertAndIndexes(t *testing.T) {
	db := newTestDB(t)
	repo := NewSignalRepository(db)
	require.NoError(t, repo.CreateTable())

	speed := 42.5
	s := makeSignal(8, 704, 0, 42.281, -83.743)
	s.Speed = &speed
	require.NoError(t, repo.BulkInsert([]models.Signal{
		s,
		makeSignal(8, 704, 1000, 42.282, -83.744),
	}))
	require.NoError(t, repo.CreateIndexes())
	// Index creation is idempotent across partial re-runs.
	require.NoError(t, repo.CreateIndexes())

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestTrajectoryRepository_SeedAndPoints(t *testing.T) {
	db := newTestDB(t)
	signals := NewSignalRepository(db)
	trajectories := NewTrajectoryRepository(db)
	require.NoError(t, signals.CreateTable())
	require.NoError(t, trajectories.CreateTable())

	// Insert the second sample first: point order must come from
	// time_stamp, not source row order.
	require.NoError(t, signals.BulkInsert([]models.Signal{
		makeSignal(1, 1, 5000, 42.285, -83.747),
		makeSignal(1, 1, 0, 42.281, -83.743),
		makeSignal(1, 2, 0, 42.290, -83.750),
	}))

	require.NoError(t, trajectories.SeedFromSignals())
	ids, err := trajectories.IDs()
	require.NoError(t, err)
	require.Len(t, ids, 2)

	var trajOfTrip1 int64
	for _, id := range ids {
		traj, err := trajectories.GetTrajectoryByID(id)
		require.NoError(t, err)
		require.NotNil(t, traj)
		assert.Nil(t, traj.LengthM)
		assert.Nil(t, traj.DtIni)
		if traj.TripID == 1 {
			trajOfTrip1 = id
		}
	}
	require.NotZero(t, trajOfTrip1)

	points, err := trajectories.Points(trajOfTrip1)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, int64(0), points[0].TimeStamp)
	assert.Equal(t, int64(5000), points[1].TimeStamp)
	assert.Equal(t, 42.281, points[0].Latitude) // matched coordinate

	wayPoints, err := trajectories.WayPoints(trajOfTrip1)
	require.NoError(t, err)
	require.Len(t, wayPoints, 2)
	assert.InDelta(t, 42.2811, wayPoints[0].Latitude, 1e-9) // raw coordinate
}

func TestTrajectoryRepository_UpdateSummaries(t *testing.T) {
	db := newTestDB(t)
	signals := NewSignalRepository(db)
	trajectories := NewTrajectoryRepository(db)
	require.NoError(t, signals.CreateTable())
	require.NoError(t, trajectories.CreateTable())

	require.NoError(t, signals.BulkInsert([]models.Signal{
		makeSignal(1, 1, 0, 42.281, -83.743),
		makeSignal(1, 1, 10000, 42.285, -83.747),
	}))
	require.NoError(t, trajectories.SeedFromSignals())

	ids, err := trajectories.IDs()
	require.NoError(t, err)
	require.Len(t, ids, 1)

	update := models.TrajectoryUpdate{
		TrajID:    ids[0],
		LengthM:   512.3,
		DtIni:     "2017-11-01T00:00:00-04:00",
		DtEnd:     "2017-11-01T00:00:10-04:00",
		DurationS: 10,
		H3Ini:     spatial.CellAt(42.281, -83.743),
		H3End:     spatial.CellAt(42.285, -83.747),
	}
	require.NoError(t, trajectories.UpdateSummaries([]models.TrajectoryUpdate{update}))

	traj, err := trajectories.GetTrajectoryByID(ids[0])
	require.NoError(t, err)
	require.NotNil(t, traj)
	require.NotNil(t, traj.LengthM)
	assert.Equal(t, 512.3, *traj.LengthM)
	assert.Equal(t, "2017-11-01T00:00:00-04:00", *traj.DtIni)
	assert.Equal(t, 10.0, *traj.DurationS)
	assert.Equal(t, update.H3Ini, *traj.H3Ini)

	list, total, err := trajectories.GetTrajectories(models.TrajectoryFilter{VehicleID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

func TestNodeRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewNodeRepository(db)
	require.NoError(t, repo.CreateTable())

	nodes := []models.Node{
		{TrajID: 1, Latitude: 42.281, Longitude: -83.743, H3Cell: spatial.CellAt(42.281, -83.743)},
		{TrajID: 1, Latitude: 42.282, Longitude: -83.744, H3Cell: spatial.CellAt(42.282, -83.744)},
	}
	require.NoError(t, repo.InsertNodes(nodes))
	require.NoError(t, repo.InsertMatchError(2, "map matching timed out"))

	matched, err := repo.GetNodesByTrajectory(1)
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, 42.281, matched[0].Latitude)
	assert.Equal(t, 42.282, matched[1].Latitude)
	assert.Nil(t, matched[0].MatchError)

	failed, err := repo.GetNodesByTrajectory(2)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	require.NotNil(t, failed[0].MatchError)
	assert.Equal(t, "map matching timed out", *failed[0].MatchError)
	assert.Zero(t, failed[0].Latitude)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
