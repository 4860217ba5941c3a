package repository

import (
	"database/sql"
	"fmt"

	"github.com/joaofig/evedb-go/internal/database"
	"github.com/joaofig/evedb-go/internal/models"
)

// NodeRepository handles database operations for map-matched nodes
type NodeRepository struct {
	db *sql.DB
}

// NewNodeRepository creates a new node repository
func NewNodeRepository(db *sql.DB) *NodeRepository {
	return &NodeRepository{db: db}
}

// CreateTable drops and recreates the node table
func (r *NodeRepository) CreateTable() error {
	if _, err := r.db.Exec(`DROP TABLE IF EXISTS node`); err != nil {
		return fmt.Errorf("failed to drop node table: %w", err)
	}

	query := `CREATE TABLE node (
		node_id     INTEGER PRIMARY KEY AUTOINCREMENT,
		traj_id     INTEGER NOT NULL,
		latitude    REAL,
		longitude   REAL,
		h3_12       INTEGER,
		match_error TEXT
	)`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create node table: %w", err)
	}
	return nil
}

// InsertNodes inserts the matched points of one trajectory in a single
// transaction. Any row failure rolls back the trajectory's whole batch.
func (r *NodeRepository) InsertNodes(nodes []models.Node) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO node (traj_id, latitude, longitude, h3_12)
			VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare node insert: %w", err)
		}
		defer stmt.Close()

		for _, n := range nodes {
			if _, err := stmt.Exec(n.TrajID, n.Latitude, n.Longitude, n.H3Cell); err != nil {
				return fmt.Errorf("failed to insert node for trajectory %d: %w", n.TrajID, err)
			}
		}
		return nil
	})
}

// InsertMatchError records a map-matching failure for a trajectory as a
// single marker row carrying the diagnostic message.
func (r *NodeRepository) InsertMatchError(trajID int64, message string) error {
	_, err := r.db.Exec(`INSERT INTO node (traj_id, match_error) VALUES (?, ?)`,
		trajID, message)
	if err != nil {
		return fmt.Errorf("failed to record match error for trajectory %d: %w", trajID, err)
	}
	return nil
}

// GetNodesByTrajectory returns the nodes of one trajectory in insertion
// order, which preserves leg order.
func (r *NodeRepository) GetNodesByTrajectory(trajID int64) ([]models.Node, error) {
	rows, err := r.db.Query(`SELECT node_id, traj_id, latitude, longitude, h3_12, match_error
		FROM node WHERE traj_id = ? ORDER BY node_id`, trajID)
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes of trajectory %d: %w", trajID, err)
	}
	defer rows.Close()

	var nodes []models.Node
	for rows.Next() {
		var n models.Node
		var lat, lon sql.NullFloat64
		var cell sql.NullInt64
		if err := rows.Scan(&n.NodeID, &n.TrajID, &lat, &lon, &cell, &n.MatchError); err != nil {
			return nil, fmt.Errorf("failed to scan node of trajectory %d: %w", trajID, err)
		}
		n.Latitude = lat.Float64
		n.Longitude = lon.Float64
		n.H3Cell = cell.Int64
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// Count returns the number of node rows
func (r *NodeRepository) Count() (int64, error) {
	var n int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM node`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count nodes: %w", err)
	}
	return n, nil
}
