package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./data", cfg.Repo.Path)
	assert.Equal(t, "./data/eved.db", cfg.Database.Path)
	assert.Equal(t, "http://localhost:8002", cfg.Matching.URL)
	assert.Equal(t, 100.0, cfg.Matching.SearchRadius)
	assert.Equal(t, 10.0, cfg.Matching.GPSAccuracy)
	assert.Equal(t, "auto", cfg.Matching.Costing)
	assert.Equal(t, 4, cfg.Matching.Concurrency)
	assert.Equal(t, "2017-11-01", cfg.Time.Epoch)
	assert.Equal(t, "America/Detroit", cfg.Time.Zone)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("EVEDB_DATABASE_PATH", "/tmp/other.db")
	t.Setenv("EVEDB_MATCHING_SEARCH_RADIUS", "50")
	t.Setenv("EVEDB_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, 50.0, cfg.Matching.SearchRadius)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_InvalidEpoch(t *testing.T) {
	t.Setenv("EVEDB_TIME_EPOCH", "not-a-date")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time.epoch")
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"EVEDB_REPO_PATH", "repo.path"},
		{"EVEDB_MATCHING_SEARCH_RADIUS", "matching.search_radius"},
		{"EVEDB_TIME_ZONE", "time.zone"},
		{"EVEDB_LOGGING_FORMAT", "logging.format"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, envTransform(tt.in))
	}
}

func TestEpochTime(t *testing.T) {
	tc := TimeConfig{Epoch: "2017-11-01", Zone: "America/Detroit"}
	epoch, err := tc.EpochTime()
	require.NoError(t, err)

	assert.Equal(t, 2017, epoch.Year())
	assert.Equal(t, time.November, epoch.Month())
	assert.Equal(t, 1, epoch.Day())
	assert.Equal(t, 0, epoch.Hour())

	zone, _ := epoch.Zone()
	assert.Equal(t, "EDT", zone)
}
