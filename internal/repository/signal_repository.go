package repository

import (
	"database/sql"
	"fmt"

	"github.com/joaofig/evedb-go/internal/database"
	"github.com/joaofig/evedb-go/internal/models"
)

// SignalRepository handles database operations for raw telemetry signals
type SignalRepository struct {
	db *sql.DB
}

// NewSignalRepository creates a new signal repository
func NewSignalRepository(db *sql.DB) *SignalRepository {
	return &SignalRepository{db: db}
}

// CreateTable drops and recreates the signal table
func (r *SignalRepository) CreateTable() error {
	if _, err := r.db.Exec(`DROP TABLE IF EXISTS signal`); err != nil {
		return fmt.Errorf("failed to drop signal table: %w", err)
	}

	query := `CREATE TABLE signal (
		signal_id          INTEGER PRIMARY KEY AUTOINCREMENT,
		day_num            REAL NOT NULL,
		vehicle_id         INTEGER NOT NULL,
		trip_id            INTEGER NOT NULL,
		time_stamp         INTEGER NOT NULL,
		latitude           REAL NOT NULL,
		longitude          REAL NOT NULL,
		speed              REAL,
		maf                REAL,
		rpm                REAL,
		abs_load           REAL,
		oat                REAL,
		fuel_rate          REAL,
		ac_power_kw        REAL,
		ac_power_w         REAL,
		heater_power_w     REAL,
		hv_bat_current     REAL,
		hv_bat_soc         REAL,
		hv_bat_volt        REAL,
		st_ftb_1           REAL,
		st_ftb_2           REAL,
		lt_ftb_1           REAL,
		lt_ftb_2           REAL,
		elevation          REAL,
		elevation_smooth   REAL,
		gradient           REAL,
		energy_consumption REAL,
		match_latitude     REAL NOT NULL,
		match_longitude    REAL NOT NULL,
		match_type         REAL NOT NULL,
		speed_limit_type   REAL,
		speed_limit        TEXT,
		speed_limit_direct INTEGER,
		intersection       INTEGER,
		bus_stop           INTEGER,
		focus_points       TEXT,
		h3_12              INTEGER NOT NULL
	)`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create signal table: %w", err)
	}
	return nil
}

// CreateIndexes builds the trip and spatial-cell indexes. Called once after
// the bulk load so inserts do not pay index maintenance.
func (r *SignalRepository) CreateIndexes() error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS ix_signal_vehicle_trip_time
			ON signal (vehicle_id, trip_id, time_stamp)`,
		`CREATE INDEX IF NOT EXISTS ix_signal_h3_12
			ON signal (h3_12)`,
	}
	for _, query := range indexes {
		if _, err := r.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create signal index: %w", err)
		}
	}
	return nil
}

// BulkInsert inserts a batch of signals in one transaction. Any row failure
// rolls back the entire batch.
func (r *SignalRepository) BulkInsert(signals []models.Signal) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO signal (
			day_num, vehicle_id, trip_id, time_stamp, latitude, longitude,
			speed, maf, rpm, abs_load, oat, fuel_rate,
			ac_power_kw, ac_power_w, heater_power_w,
			hv_bat_current, hv_bat_soc, hv_bat_volt,
			st_ftb_1, st_ftb_2, lt_ftb_1, lt_ftb_2,
			elevation, elevation_smooth, gradient, energy_consumption,
			match_latitude, match_longitude, match_type,
			speed_limit_type, speed_limit, speed_limit_direct,
			intersection, bus_stop, focus_points, h3_12
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare signal insert: %w", err)
		}
		defer stmt.Close()

		for _, s := range signals {
			_, err := stmt.Exec(
				s.DayNum, s.VehicleID, s.TripID, s.TimeStamp, s.Latitude, s.Longitude,
				s.Speed, s.MAF, s.RPM, s.AbsLoad, s.OAT, s.FuelRate,
				s.ACPowerKW, s.ACPowerW, s.HeaterPowerW,
				s.HVBatteryCurrent, s.HVBatterySOC, s.HVBatteryVoltage,
				s.ShortFuelTrimB1, s.ShortFuelTrimB2, s.LongFuelTrimB1, s.LongFuelTrimB2,
				s.Elevation, s.ElevationSmooth, s.Gradient, s.EnergyConsumption,
				s.MatchLatitude, s.MatchLongitude, s.MatchType,
				s.SpeedLimitClass, s.SpeedLimit, s.SpeedLimitDirection,
				s.Intersection, s.BusStop, s.FocusPoints, s.H3Cell,
			)
			if err != nil {
				return fmt.Errorf("failed to insert signal for vehicle %d trip %d: %w",
					s.VehicleID, s.TripID, err)
			}
		}
		return nil
	})
}

// Count returns the number of signal rows
func (r *SignalRepository) Count() (int64, error) {
	var n int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM signal`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count signals: %w", err)
	}
	return n, nil
}
