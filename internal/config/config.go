package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/homelab/territoire/internal/datastore"
	"github.com/jbweber/homelab/territoire/internal/geoapi"
	"github.com/jbweber/homelab/territoire/internal/migrations"
)

// Config holds all configuration for the territoire service
type Config struct {
	DBDriver      string        `yaml:"db_driver"`
	DBPath        string        `yaml:"db_path"`
	DatabaseURL   string        `yaml:"database_url"`
	Port          string        `yaml:"port"`
	LogMode       string        `yaml:"log_mode"`
	RedisAddr     string        `yaml:"redis_addr"` // empty disables the stats cache
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	GeoAPIURL     string        `yaml:"geo_api_url"`
	GeoAPITimeout time.Duration `yaml:"geo_api_timeout"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		DBDriver:      string(datastore.SQLite),
		DBPath:        "~/territoire/data/territoire.db",
		Port:          "8080",
		LogMode:       "development",
		CacheTTL:      5 * time.Minute,
		GeoAPIURL:     geoapi.DefaultURL,
		GeoAPITimeout: 30 * time.Second,
	}
}

// Load returns the defaults overlaid with the YAML file at path, when path
// is not empty, and then with the environment.
func Load(path string) (*Config, error) {
	cfg := NewConfig()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"TERRITOIRE_DB_DRIVER": &c.DBDriver,
		"TERRITOIRE_DB_PATH":   &c.DBPath,
		"DATABASE_URL":         &c.DatabaseURL,
		"PORT":                 &c.Port,
		"LOG_MODE":             &c.LogMode,
		"REDIS_ADDR":           &c.RedisAddr,
		"GEO_API_URL":          &c.GeoAPIURL,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	seconds := map[string]*time.Duration{
		"TERRITOIRE_CACHE_TTL_SECONDS": &c.CacheTTL,
		"GEO_API_TIMEOUT_SECONDS":      &c.GeoAPITimeout,
	}
	for name, dst := range seconds {
		v, ok := lookup(name)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return fmt.Errorf("invalid %s: %q", name, v)
		}
		*dst = time.Duration(n) * time.Second
	}
	return nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// InitializeDatastore opens the configured store and runs the pending
// migrations.
func (c *Config) InitializeDatastore(ctx context.Context) (*datastore.Datastore, error) {
	ds, err := c.OpenDatastore(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := migrations.Run(ctx, ds); err != nil {
		_ = ds.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return ds, nil
}

// OpenDatastore opens and tunes the configured store without migrating it.
func (c *Config) OpenDatastore(ctx context.Context) (*datastore.Datastore, error) {
	dialect, err := datastore.ParseDialect(c.DBDriver)
	if err != nil {
		return nil, err
	}

	var dsn string
	switch dialect {
	case datastore.SQLite:
		dbPath := c.expandPath(c.DBPath)
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath
	case datastore.Postgres:
		if c.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required for the postgres driver")
		}
		dsn = c.DatabaseURL
	}

	ds, err := datastore.Open(dialect, dsn)
	if err != nil {
		return nil, err
	}

	OptimizeDatabaseConnection(ds.DB)
	if dialect == datastore.SQLite {
		if err := ApplyPragmaOptimizations(ctx, ds.DB); err != nil {
			_ = ds.Close()
			return nil, fmt.Errorf("failed to apply performance optimizations: %w", err)
		}
	}
	return ds, nil
}

// expandPath expands ~ to home directory
func (c *Config) expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(homeDir, path[2:])
}
