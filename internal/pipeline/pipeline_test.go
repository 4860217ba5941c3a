package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_MissingSourcesIsFatal(t *testing.T) {
	b, _ := testBuilder(t)

	// Skipping clone against an empty data folder: the vehicle stage hits
	// the missing workbooks and aborts the run.
	err := b.Run(context.Background(), Options{SkipClone: true, SkipClean: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vehicle stage failed")
}

func TestClean(t *testing.T) {
	b, _ := testBuilder(t)

	nested := filepath.Join(b.cfg.Repo.Path, "eved", "data")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	require.NoError(t, b.Clean())
	_, err := os.Stat(b.cfg.Repo.Path)
	assert.True(t, os.IsNotExist(err))

	// Cleaning an already-clean folder is a no-op.
	require.NoError(t, b.Clean())
}

func TestBuildVehicles_CancelledContext(t *testing.T) {
	b, _ := testBuilder(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.BuildVehicles(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
