package pipeline

import (
	"context"
	"fmt"

	"github.com/joaofig/evedb-go/internal/etl"
	"github.com/joaofig/evedb-go/internal/repository"
)

// BuildVehicles rebuilds the vehicle table from the VED static workbooks.
// A missing or unparsable workbook is fatal: the table is small and there
// is no meaningful partial result.
func (b *Builder) BuildVehicles(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.log.Info().Msg("creating the vehicle table")
	repo := repository.NewVehicleRepository(b.db)
	if err := repo.CreateTable(); err != nil {
		return err
	}

	vehicles, err := etl.ReadVehicles(b.cfg.Repo.Path)
	if err != nil {
		return fmt.Errorf("failed to read vehicle workbooks: %w", err)
	}

	if err := repo.BulkInsert(vehicles); err != nil {
		return err
	}
	b.log.Info().Int("vehicles", len(vehicles)).Msg("vehicle table populated")
	return nil
}
