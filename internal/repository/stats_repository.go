package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/joaofig/evedb-go/internal/models"
	"github.com/joaofig/evedb-go/internal/stats"
)

// isMissingTable reports whether err is SQLite's "no such table" error.
// The driver exposes it only through the message text.
func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}

// StatsRepository computes summary statistics over the built database
type StatsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetDatasetStats aggregates row counts and summary-metric distributions
// across all built tables. Tables that were not built yet count as empty.
func (r *StatsRepository) GetDatasetStats() (*models.DatasetStats, error) {
	s := &models.DatasetStats{}

	counts := []struct {
		query string
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM vehicle`, &s.VehicleCount},
		{`SELECT COUNT(*) FROM signal`, &s.SignalCount},
		{`SELECT COUNT(*) FROM trajectory`, &s.TrajectoryCount},
		{`SELECT COUNT(*) FROM trajectory WHERE length_m IS NOT NULL`, &s.SummarizedCount},
		{`SELECT COUNT(*) FROM node WHERE match_error IS NULL`, &s.NodeCount},
		{`SELECT COUNT(*) FROM node WHERE match_error IS NOT NULL`, &s.FailedMatchCount},
	}
	for _, c := range counts {
		if err := r.db.QueryRow(c.query).Scan(c.dest); err != nil {
			if isMissingTable(err) {
				continue
			}
			return nil, fmt.Errorf("failed to count rows: %w", err)
		}
	}

	lengths, durations, err := r.summaryMetrics()
	if err != nil {
		return nil, err
	}
	s.Length = describe(lengths)
	s.Duration = describe(durations)

	return s, nil
}

// summaryMetrics loads the length and duration columns of all summarized
// trajectories.
func (r *StatsRepository) summaryMetrics() ([]float64, []float64, error) {
	query := `SELECT length_m, duration_s FROM trajectory
		WHERE length_m IS NOT NULL AND duration_s IS NOT NULL`
	rows, err := r.db.Query(query)
	if err != nil {
		if isMissingTable(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to query trajectory summaries: %w", err)
	}
	defer rows.Close()

	var lengths, durations []float64
	for rows.Next() {
		var length, duration float64
		if err := rows.Scan(&length, &duration); err != nil {
			return nil, nil, fmt.Errorf("failed to scan trajectory summary: %w", err)
		}
		lengths = append(lengths, length)
		durations = append(durations, duration)
	}
	return lengths, durations, rows.Err()
}

func describe(values []float64) models.DistributionStats {
	return models.DistributionStats{
		Min:    stats.Min(values),
		Max:    stats.Max(values),
		Mean:   stats.Mean(values),
		StdDev: stats.StdDev(values),
		P50:    stats.Percentile(values, 50),
		P90:    stats.Percentile(values, 90),
		Total:  stats.Sum(values),
	}
}
