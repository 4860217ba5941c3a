package pipeline

import (
	"context"
	"time"

	"github.com/joaofig/evedb-go/internal/models"
	"github.com/joaofig/evedb-go/internal/repository"
	"github.com/joaofig/evedb-go/internal/spatial"
)

// BuildTrajectories rebuilds the trajectory table: one row per distinct
// (vehicle_id, trip_id) pair in signal, then a summary update computing
// path length, time span and endpoint cells for every trip with at least
// two points.
func (b *Builder) BuildTrajectories(ctx context.Context) error {
	b.log.Info().Msg("creating the trajectory table")
	repo := repository.NewTrajectoryRepository(b.db)
	if err := repo.CreateTable(); err != nil {
		return err
	}

	b.log.Info().Msg("seeding trajectory records")
	if err := repo.SeedFromSignals(); err != nil {
		return err
	}

	updates, err := b.trajectoryUpdates(ctx, repo)
	if err != nil {
		return err
	}

	b.log.Info().Int("trajectories", len(updates)).Msg("updating trajectory summaries")
	return repo.UpdateSummaries(updates)
}

// trajectoryUpdates computes the summary fields of every trajectory with
// two or more points. A trajectory whose point fetch fails is treated as
// having no points and skipped.
func (b *Builder) trajectoryUpdates(ctx context.Context, repo *repository.TrajectoryRepository) ([]models.TrajectoryUpdate, error) {
	epoch, err := b.cfg.Time.EpochTime()
	if err != nil {
		return nil, err
	}

	ids, err := repo.IDs()
	if err != nil {
		return nil, err
	}

	updates := make([]models.TrajectoryUpdate, 0, len(ids))
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		points, err := repo.Points(id)
		if err != nil {
			b.log.Warn().Err(err).Int64("traj_id", id).Msg("failed to fetch trajectory points, skipping")
			continue
		}
		if len(points) < 2 {
			continue
		}

		updates = append(updates, summarize(id, points, epoch))

		if (i+1)%1000 == 0 {
			b.log.Info().Int("done", i+1).Int("total", len(ids)).Msg("trajectories summarized")
		}
	}
	return updates, nil
}

// summarize computes one trajectory's summary from its time-ordered
// matched points. Timestamps resolve against the dataset epoch: day_num
// counts days from the epoch starting at 1, and time_stamp adds
// milliseconds within the day. Day offsets are exact 24-hour durations.
func summarize(trajID int64, points []models.TrajectoryPoint, epoch time.Time) models.TrajectoryUpdate {
	polyline := make([]spatial.Point, len(points))
	for i, p := range points {
		polyline[i] = spatial.Point{Lat: p.Latitude, Lon: p.Longitude}
	}

	first := points[0]
	last := points[len(points)-1]

	dayOffset := time.Duration(int64(first.DayNum)-1) * 24 * time.Hour
	dtIni := epoch.Add(dayOffset + time.Duration(first.TimeStamp)*time.Millisecond)
	dtEnd := epoch.Add(dayOffset + time.Duration(last.TimeStamp)*time.Millisecond)

	return models.TrajectoryUpdate{
		TrajID:    trajID,
		LengthM:   spatial.PathLength(polyline),
		DtIni:     dtIni.Format(time.RFC3339),
		DtEnd:     dtEnd.Format(time.RFC3339),
		DurationS: float64(last.TimeStamp-first.TimeStamp) / 1000.0,
		H3Ini:     spatial.CellAt(first.Latitude, first.Longitude),
		H3End:     spatial.CellAt(last.Latitude, last.Longitude),
	}
}
