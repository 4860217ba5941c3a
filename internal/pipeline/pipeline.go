// Package pipeline sequences the stages that turn the raw eVED/VED exports
// into the trajectory database: clone, vehicles, signals, trajectories,
// nodes, clean.
package pipeline

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/joaofig/evedb-go/internal/config"
	"github.com/joaofig/evedb-go/internal/valhalla"
)

// Builder runs the database build pipeline. It is the only component aware
// of the ordering dependencies between tables.
type Builder struct {
	cfg     *config.Config
	db      *sql.DB
	log     zerolog.Logger
	matcher Matcher
}

// Options toggles the skippable stages of a full build.
type Options struct {
	SkipClone bool
	SkipClean bool
}

// New creates a pipeline builder using the Valhalla trace_route client as
// the map matcher.
func New(cfg *config.Config, db *sql.DB, log zerolog.Logger) *Builder {
	matcher := valhalla.NewClient(valhalla.Config{
		URL:          cfg.Matching.URL,
		SearchRadius: cfg.Matching.SearchRadius,
		GPSAccuracy:  cfg.Matching.GPSAccuracy,
		Costing:      cfg.Matching.Costing,
		Timeout:      cfg.Matching.Timeout,
	})
	return &Builder{cfg: cfg, db: db, log: log, matcher: matcher}
}

// WithMatcher overrides the map matcher. Used by tests.
func (b *Builder) WithMatcher(m Matcher) *Builder {
	b.matcher = m
	return b
}

// Run executes the full pipeline. A stage failure aborts the run; later
// stages rely on the tables the earlier ones committed.
func (b *Builder) Run(ctx context.Context, opts Options) error {
	if !opts.SkipClone {
		if err := b.Clone(ctx); err != nil {
			return fmt.Errorf("clone stage failed: %w", err)
		}
	}

	if err := b.BuildVehicles(ctx); err != nil {
		return fmt.Errorf("vehicle stage failed: %w", err)
	}
	if err := b.BuildSignals(ctx); err != nil {
		return fmt.Errorf("signal stage failed: %w", err)
	}
	if err := b.BuildTrajectories(ctx); err != nil {
		return fmt.Errorf("trajectory stage failed: %w", err)
	}
	if err := b.BuildNodes(ctx); err != nil {
		return fmt.Errorf("node stage failed: %w", err)
	}

	if !opts.SkipClean {
		if err := b.Clean(); err != nil {
			return fmt.Errorf("clean stage failed: %w", err)
		}
	}
	return nil
}
