package pipeline

import (
	"context"
	"fmt"

	"github.com/joaofig/evedb-go/internal/etl"
	"github.com/joaofig/evedb-go/internal/repository"
)

// BuildSignals rebuilds the signal table from the eVED archive. Each
// archive member is decoded and inserted as one transaction; a member that
// fails to decode or insert is logged and skipped, not fatal. Indexes are
// created after the bulk load.
func (b *Builder) BuildSignals(ctx context.Context) error {
	b.log.Info().Msg("creating the signal table")
	repo := repository.NewSignalRepository(b.db)
	if err := repo.CreateTable(); err != nil {
		return err
	}

	archive := etl.NewSignalArchive(b.cfg.Repo.Path)
	names, err := archive.FileNames()
	if err != nil {
		return fmt.Errorf("failed to list signal files: %w", err)
	}

	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.loadSignalFile(archive, repo, name); err != nil {
			b.log.Warn().Err(err).Str("file", name).Msg("skipping signal file")
			continue
		}
		if (i+1)%50 == 0 || i+1 == len(names) {
			b.log.Info().Int("done", i+1).Int("total", len(names)).Msg("signal files loaded")
		}
	}

	b.log.Info().Msg("creating the signal indexes")
	return repo.CreateIndexes()
}

func (b *Builder) loadSignalFile(archive *etl.SignalArchive, repo *repository.SignalRepository, name string) error {
	text, err := archive.ReadFile(name)
	if err != nil {
		return err
	}

	signals, skipped, err := etl.ParseSignals(text)
	if err != nil {
		return err
	}
	if skipped > 0 {
		b.log.Warn().Int("rows", skipped).Str("file", name).Msg("skipped malformed signal rows")
	}

	return repo.BulkInsert(signals)
}
