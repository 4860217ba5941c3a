// Package config loads the evedb configuration from layered sources:
// built-in defaults, an optional YAML file, then environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for all evedb environment variables,
// e.g. EVEDB_DATABASE_PATH or EVEDB_MATCHING_SEARCH_RADIUS.
const EnvPrefix = "EVEDB_"

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "EVEDB_CONFIG"

// DefaultConfigPaths lists where config files are searched, in order.
var DefaultConfigPaths = []string{
	"evedb.yaml",
	"evedb.yml",
}

// Config holds the full evedb configuration.
type Config struct {
	Repo     RepoConfig     `koanf:"repo"`
	Database DatabaseConfig `koanf:"database"`
	Matching MatchingConfig `koanf:"matching"`
	Time     TimeConfig     `koanf:"time"`
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// RepoConfig holds the source data repository settings.
type RepoConfig struct {
	// Path is the local folder the source repositories are cloned into.
	Path string `koanf:"path"`
	// EvedURL is the git URL of the eVED signal data repository.
	EvedURL string `koanf:"eved_url"`
	// VedURL is the git URL of the VED static data repository.
	VedURL string `koanf:"ved_url"`
}

// DatabaseConfig holds the SQLite database settings.
type DatabaseConfig struct {
	Path string `koanf:"path"`
}

// MatchingConfig holds the Valhalla map-matching settings.
type MatchingConfig struct {
	URL          string        `koanf:"url"`
	SearchRadius float64       `koanf:"search_radius"` // meters
	GPSAccuracy  float64       `koanf:"gps_accuracy"`  // meters
	Costing      string        `koanf:"costing"`
	Concurrency  int           `koanf:"concurrency"`
	Timeout      time.Duration `koanf:"timeout"`
}

// TimeConfig pins the dataset epoch used to resolve day_num/time_stamp
// clocks into absolute timestamps. The eVED collection started on
// 2017-11-01 in Ann Arbor, Michigan.
type TimeConfig struct {
	Epoch string `koanf:"epoch"` // YYYY-MM-DD
	Zone  string `koanf:"zone"`  // IANA time zone name
}

// ServerConfig holds the query API settings.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Repo: RepoConfig{
			Path:    "./data",
			EvedURL: "https://bitbucket.org/datarepo/eved_dataset.git",
			VedURL:  "https://github.com/gsoh/VED.git",
		},
		Database: DatabaseConfig{
			Path: "./data/eved.db",
		},
		Matching: MatchingConfig{
			URL:          "http://localhost:8002",
			SearchRadius: 100.0,
			GPSAccuracy:  10.0,
			Costing:      "auto",
			Concurrency:  4,
			Timeout:      30 * time.Second,
		},
		Time: TimeConfig{
			Epoch: "2017-11-01",
			Zone:  "America/Detroit",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration with precedence ENV > file > defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// envTransform maps environment variable names to koanf paths:
// EVEDB_MATCHING_SEARCH_RADIUS -> matching.search_radius. The first
// underscore separates the section from the key.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(s, "_", ".", 1)
}

// findConfigFile returns the first config file found, or empty string.
func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.Repo.Path == "" {
		return fmt.Errorf("repo.path must not be empty")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if _, err := url.Parse(c.Matching.URL); err != nil {
		return fmt.Errorf("matching.url is not a valid URL: %w", err)
	}
	if c.Matching.Concurrency < 1 {
		return fmt.Errorf("matching.concurrency must be at least 1")
	}
	if _, err := time.Parse("2006-01-02", c.Time.Epoch); err != nil {
		return fmt.Errorf("time.epoch must be a YYYY-MM-DD date: %w", err)
	}
	if _, err := time.LoadLocation(c.Time.Zone); err != nil {
		return fmt.Errorf("time.zone is not a valid IANA zone: %w", err)
	}
	return nil
}

// EpochTime resolves the configured epoch date at midnight in the
// configured zone.
func (c *TimeConfig) EpochTime() (time.Time, error) {
	loc, err := time.LoadLocation(c.Zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load time zone %s: %w", c.Zone, err)
	}
	day, err := time.ParseInLocation("2006-01-02", c.Epoch, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse epoch %s: %w", c.Epoch, err)
	}
	return day, nil
}
