// Package repository owns the table lifecycle and all read/write access to
// the trajectory database.
package repository

import (
	"database/sql"
	"fmt"

	"github.com/joaofig/evedb-go/internal/database"
	"github.com/joaofig/evedb-go/internal/models"
)

// VehicleRepository handles database operations for vehicles
type VehicleRepository struct {
	db *sql.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// CreateTable drops and recreates the vehicle table. Every pipeline run
// rebuilds tables from empty.
func (r *VehicleRepository) CreateTable() error {
	if _, err := r.db.Exec(`DROP TABLE IF EXISTS vehicle`); err != nil {
		return fmt.Errorf("failed to drop vehicle table: %w", err)
	}

	query := `CREATE TABLE vehicle (
		vehicle_id    INTEGER PRIMARY KEY,
		vehicle_type  TEXT,
		vehicle_class TEXT,
		engine        TEXT,
		transmission  TEXT,
		drive_wheels  TEXT,
		weight        INTEGER
	)`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create vehicle table: %w", err)
	}
	return nil
}

// BulkInsert inserts a batch of vehicles in one transaction. Any row
// failure rolls back the entire batch.
func (r *VehicleRepository) BulkInsert(vehicles []models.Vehicle) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO vehicle
			(vehicle_id, vehicle_type, vehicle_class, engine, transmission, drive_wheels, weight)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare vehicle insert: %w", err)
		}
		defer stmt.Close()

		for _, v := range vehicles {
			_, err := stmt.Exec(
				v.VehicleID, v.VehicleType, v.VehicleClass,
				v.Engine, v.Transmission, v.DriveWheels, v.Weight,
			)
			if err != nil {
				return fmt.Errorf("failed to insert vehicle %d: %w", v.VehicleID, err)
			}
		}
		return nil
	})
}

// GetVehicles retrieves all vehicles ordered by id
func (r *VehicleRepository) GetVehicles() ([]models.Vehicle, error) {
	rows, err := r.db.Query(`SELECT vehicle_id, vehicle_type, vehicle_class,
		engine, transmission, drive_wheels, weight
		FROM vehicle ORDER BY vehicle_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		err := rows.Scan(
			&v.VehicleID, &v.VehicleType, &v.VehicleClass,
			&v.Engine, &v.Transmission, &v.DriveWheels, &v.Weight,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// GetVehicleByID retrieves a single vehicle by id
func (r *VehicleRepository) GetVehicleByID(id int64) (*models.Vehicle, error) {
	var v models.Vehicle
	err := r.db.QueryRow(`SELECT vehicle_id, vehicle_type, vehicle_class,
		engine, transmission, drive_wheels, weight
		FROM vehicle WHERE vehicle_id = ?`, id).Scan(
		&v.VehicleID, &v.VehicleType, &v.VehicleClass,
		&v.Engine, &v.Transmission, &v.DriveWheels, &v.Weight,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicle %d: %w", id, err)
	}
	return &v, nil
}

// Count returns the number of vehicle rows
func (r *VehicleRepository) Count() (int64, error) {
	var n int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM vehicle`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}
	return n, nil
}
