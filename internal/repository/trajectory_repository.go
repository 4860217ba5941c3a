package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/joaofig/evedb-go/internal/database"
	"github.com/joaofig/evedb-go/internal/models"
)

// TrajectoryRepository handles database operations for trajectories
type TrajectoryRepository struct {
	db *sql.DB
}

// NewTrajectoryRepository creates a new trajectory repository
func NewTrajectoryRepository(db *sql.DB) *TrajectoryRepository {
	return &TrajectoryRepository{db: db}
}

// CreateTable drops and recreates the trajectory table
func (r *TrajectoryRepository) CreateTable() error {
	if _, err := r.db.Exec(`DROP TABLE IF EXISTS trajectory`); err != nil {
		return fmt.Errorf("failed to drop trajectory table: %w", err)
	}

	query := `CREATE TABLE trajectory (
		traj_id    INTEGER PRIMARY KEY AUTOINCREMENT,
		vehicle_id INTEGER NOT NULL,
		trip_id    INTEGER NOT NULL,
		length_m   REAL,
		dt_ini     TEXT,
		dt_end     TEXT,
		duration_s REAL,
		h3_12_ini  INTEGER,
		h3_12_end  INTEGER
	)`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create trajectory table: %w", err)
	}
	return nil
}

// SeedFromSignals inserts one trajectory per distinct (vehicle_id, trip_id)
// pair observed in the signal table. Only the foreign keys are populated;
// summary fields stay null until the update pass. Trajectory ids carry no
// cross-trajectory time ordering.
func (r *TrajectoryRepository) SeedFromSignals() error {
	query := `INSERT INTO trajectory (vehicle_id, trip_id)
		SELECT DISTINCT vehicle_id, trip_id FROM signal`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to seed trajectories from signals: %w", err)
	}
	return nil
}

// IDs returns all trajectory ids ordered by traj_id
func (r *TrajectoryRepository) IDs() ([]int64, error) {
	rows, err := r.db.Query(`SELECT traj_id FROM trajectory ORDER BY traj_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trajectory ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan trajectory id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Points returns the trajectory's signals projected to their map-matched
// coordinates, ordered by time_stamp. The aggregation stage computes path
// length and endpoint cells from these.
func (r *TrajectoryRepository) Points(trajID int64) ([]models.TrajectoryPoint, error) {
	query := `SELECT s.signal_id, s.day_num, s.time_stamp, s.match_latitude, s.match_longitude
		FROM signal s
		JOIN trajectory t ON s.vehicle_id = t.vehicle_id AND s.trip_id = t.trip_id
		WHERE t.traj_id = ?
		ORDER BY s.time_stamp`
	return r.queryPoints(query, trajID)
}

// WayPoints returns the trajectory's signals at their raw GPS coordinates,
// ordered by time_stamp. The map-matching stage submits these to the
// routing service.
func (r *TrajectoryRepository) WayPoints(trajID int64) ([]models.TrajectoryPoint, error) {
	query := `SELECT s.signal_id, s.day_num, s.time_stamp, s.latitude, s.longitude
		FROM signal s
		JOIN trajectory t ON s.vehicle_id = t.vehicle_id AND s.trip_id = t.trip_id
		WHERE t.traj_id = ?
		ORDER BY s.time_stamp`
	return r.queryPoints(query, trajID)
}

func (r *TrajectoryRepository) queryPoints(query string, trajID int64) ([]models.TrajectoryPoint, error) {
	rows, err := r.db.Query(query, trajID)
	if err != nil {
		return nil, fmt.Errorf("failed to query points of trajectory %d: %w", trajID, err)
	}
	defer rows.Close()

	var points []models.TrajectoryPoint
	for rows.Next() {
		var p models.TrajectoryPoint
		if err := rows.Scan(&p.SignalID, &p.DayNum, &p.TimeStamp, &p.Latitude, &p.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan point of trajectory %d: %w", trajID, err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// UpdateSummaries writes the computed summary fields for a batch of
// trajectories in one transaction.
func (r *TrajectoryRepository) UpdateSummaries(updates []models.TrajectoryUpdate) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`UPDATE trajectory
			SET length_m = ?, dt_ini = ?, dt_end = ?, duration_s = ?, h3_12_ini = ?, h3_12_end = ?
			WHERE traj_id = ?`)
		if err != nil {
			return fmt.Errorf("failed to prepare trajectory update: %w", err)
		}
		defer stmt.Close()

		for _, u := range updates {
			_, err := stmt.Exec(u.LengthM, u.DtIni, u.DtEnd, u.DurationS, u.H3Ini, u.H3End, u.TrajID)
			if err != nil {
				return fmt.Errorf("failed to update trajectory %d: %w", u.TrajID, err)
			}
		}
		return nil
	})
}

// GetTrajectories retrieves trajectories with filtering and pagination
func (r *TrajectoryRepository) GetTrajectories(filter models.TrajectoryFilter) ([]models.Trajectory, int64, error) {
	query := `SELECT traj_id, vehicle_id, trip_id, length_m, dt_ini, dt_end,
		duration_s, h3_12_ini, h3_12_end
		FROM trajectory`

	var conditions []string
	var args []interface{}

	if filter.VehicleID > 0 {
		conditions = append(conditions, "vehicle_id = ?")
		args = append(args, filter.VehicleID)
	}
	if filter.MinLength > 0 {
		conditions = append(conditions, "length_m >= ?")
		args = append(args, filter.MinLength)
	}
	if filter.MaxLength > 0 {
		conditions = append(conditions, "length_m <= ?")
		args = append(args, filter.MaxLength)
	}
	if filter.MinDuration > 0 {
		conditions = append(conditions, "duration_s >= ?")
		args = append(args, filter.MinDuration)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM trajectory"
	if len(conditions) > 0 {
		countQuery += " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trajectories: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	offset := (filter.Page - 1) * filter.PageSize
	query += " ORDER BY traj_id LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query trajectories: %w", err)
	}
	defer rows.Close()

	var trajectories []models.Trajectory
	for rows.Next() {
		var t models.Trajectory
		err := rows.Scan(
			&t.TrajID, &t.VehicleID, &t.TripID, &t.LengthM,
			&t.DtIni, &t.DtEnd, &t.DurationS, &t.H3Ini, &t.H3End,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan trajectory: %w", err)
		}
		trajectories = append(trajectories, t)
	}
	return trajectories, total, rows.Err()
}

// GetTrajectoryByID retrieves a single trajectory by id
func (r *TrajectoryRepository) GetTrajectoryByID(id int64) (*models.Trajectory, error) {
	var t models.Trajectory
	err := r.db.QueryRow(`SELECT traj_id, vehicle_id, trip_id, length_m, dt_ini, dt_end,
		duration_s, h3_12_ini, h3_12_end
		FROM trajectory WHERE traj_id = ?`, id).Scan(
		&t.TrajID, &t.VehicleID, &t.TripID, &t.LengthM,
		&t.DtIni, &t.DtEnd, &t.DurationS, &t.H3Ini, &t.H3End,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query trajectory %d: %w", id, err)
	}
	return &t, nil
}
