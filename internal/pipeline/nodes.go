package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/joaofig/evedb-go/internal/models"
	"github.com/joaofig/evedb-go/internal/repository"
	"github.com/joaofig/evedb-go/internal/spatial"
	"github.com/joaofig/evedb-go/internal/valhalla"
)

// Matcher submits an ordered coordinate sequence for snap-to-road matching.
type Matcher interface {
	Match(ctx context.Context, points []spatial.Point) (*valhalla.Trip, error)
}

// BuildNodes rebuilds the node table by map-matching every trajectory.
// Trajectories are matched with bounded concurrency; each one's outcome is
// committed in its own transaction. A failed match never aborts the stage:
// it is recorded as an error-marker row and the loop moves on.
func (b *Builder) BuildNodes(ctx context.Context) error {
	b.log.Info().Msg("creating the node table")
	nodes := repository.NewNodeRepository(b.db)
	if err := nodes.CreateTable(); err != nil {
		return err
	}

	trajectories := repository.NewTrajectoryRepository(b.db)
	ids, err := trajectories.IDs()
	if err != nil {
		return err
	}

	b.log.Info().Int("trajectories", len(ids)).Int("workers", b.cfg.Matching.Concurrency).
		Msg("populating the node table")

	var done, failed atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Matching.Concurrency)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !b.matchTrajectory(ctx, trajectories, nodes, id) {
				failed.Add(1)
			}
			if n := done.Add(1); n%500 == 0 || n == int64(len(ids)) {
				b.log.Info().Int64("done", n).Int("total", len(ids)).Msg("trajectories matched")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	b.log.Info().Int64("failed", failed.Load()).Msg("node table populated")
	return nil
}

// matchTrajectory matches one trajectory and persists the outcome. It
// reports whether the trajectory yielded coordinate-bearing nodes.
func (b *Builder) matchTrajectory(ctx context.Context, trajectories *repository.TrajectoryRepository, nodes *repository.NodeRepository, trajID int64) bool {
	wayPoints, err := trajectories.WayPoints(trajID)
	if err != nil {
		b.recordMatchError(nodes, trajID,
			fmt.Sprintf("failed to fetch way points for trajectory %d: %v", trajID, err))
		return false
	}

	shape := make([]spatial.Point, len(wayPoints))
	for i, p := range wayPoints {
		shape[i] = spatial.Point{Lat: p.Latitude, Lon: p.Longitude}
	}

	trip, err := b.matcher.Match(ctx, shape)
	if err != nil {
		b.recordMatchError(nodes, trajID,
			fmt.Sprintf("failed to map match trajectory %d: %v", trajID, err))
		return false
	}

	// A match the service itself flags as ambiguous is a soft failure:
	// no nodes, one marker row with the warning text.
	if len(trip.Warnings) > 0 {
		b.recordMatchError(nodes, trajID, fmt.Sprintf("%v", trip.Warnings))
		return false
	}

	var batch []models.Node
	for _, leg := range trip.Legs {
		for _, pt := range leg.Points {
			batch = append(batch, models.Node{
				TrajID:    trajID,
				Latitude:  pt.Lat,
				Longitude: pt.Lon,
				H3Cell:    spatial.CellAt(pt.Lat, pt.Lon),
			})
		}
	}

	if err := nodes.InsertNodes(batch); err != nil {
		b.recordMatchError(nodes, trajID,
			fmt.Sprintf("failed to insert nodes for trajectory %d: %v", trajID, err))
		return false
	}
	return true
}

func (b *Builder) recordMatchError(nodes *repository.NodeRepository, trajID int64, message string) {
	if err := nodes.InsertMatchError(trajID, message); err != nil {
		b.log.Error().Err(err).Int64("traj_id", trajID).Str("cause", message).
			Msg("failed to record match error")
	}
}
