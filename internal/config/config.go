// Package config loads host settings for the galaxy tools from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/talgya/hexgalaxy/internal/errors"
	"github.com/talgya/hexgalaxy/internal/generation"
	"github.com/talgya/hexgalaxy/internal/hex"
)

type Config struct {
	Galaxy   GalaxyConfig
	Engine   EngineConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

type GalaxyConfig struct {
	Seed           uint64
	Radius         int
	ClusterDensity float64
	ClusterSizeMin int
	ClusterSizeMax int
	Layout         hex.Orientation
	HexSize        float64
}

type EngineConfig struct {
	StepsPerSecond float64
	ProgressEvery  int
}

type DatabaseConfig struct {
	Path string // SQLite file or postgres:// URL; empty disables archiving
}

type LoggingConfig struct {
	Level  string
	Format string // json, text or auto
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, using system environment variables")
	}

	cfg, err := load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// GetEnv returns the value of key, or fallback when it is unset or empty.
func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func load() (*Config, error) {
	galaxy, err := loadGalaxyConfig()
	if err != nil {
		return nil, err
	}
	engine, err := loadEngineConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Galaxy:   galaxy,
		Engine:   engine,
		Database: DatabaseConfig{Path: GetEnv("DB_PATH", "")},
		Logging:  loadLoggingConfig(),
	}, nil
}

func loadGalaxyConfig() (GalaxyConfig, error) {
	def := generation.DefaultConfig()
	var (
		g   GalaxyConfig
		err error
	)

	if g.Seed, err = strconv.ParseUint(GetEnv("GALAXY_SEED", strconv.FormatUint(def.Seed, 10)), 10, 64); err != nil {
		return g, errors.Configurationf("GALAXY_SEED: %v", err)
	}
	if g.Radius, err = strconv.Atoi(GetEnv("GALAXY_RADIUS", strconv.Itoa(def.UniverseRadius))); err != nil {
		return g, errors.Configurationf("GALAXY_RADIUS: %v", err)
	}
	if g.ClusterDensity, err = strconv.ParseFloat(GetEnv("GALAXY_CLUSTER_DENSITY", strconv.FormatFloat(def.ClusterDensity, 'g', -1, 64)), 64); err != nil {
		return g, errors.Configurationf("GALAXY_CLUSTER_DENSITY: %v", err)
	}
	if g.ClusterSizeMin, err = strconv.Atoi(GetEnv("GALAXY_CLUSTER_SIZE_MIN", strconv.Itoa(def.ClusterSize.Min))); err != nil {
		return g, errors.Configurationf("GALAXY_CLUSTER_SIZE_MIN: %v", err)
	}
	if g.ClusterSizeMax, err = strconv.Atoi(GetEnv("GALAXY_CLUSTER_SIZE_MAX", strconv.Itoa(def.ClusterSize.Max))); err != nil {
		return g, errors.Configurationf("GALAXY_CLUSTER_SIZE_MAX: %v", err)
	}
	if g.Layout, err = hex.ParseOrientation(GetEnv("GALAXY_LAYOUT", "pointy")); err != nil {
		return g, errors.Configurationf("GALAXY_LAYOUT: %v", err)
	}
	if g.HexSize, err = strconv.ParseFloat(GetEnv("GALAXY_HEX_SIZE", "1"), 64); err != nil {
		return g, errors.Configurationf("GALAXY_HEX_SIZE: %v", err)
	}
	return g, nil
}

func loadEngineConfig() (EngineConfig, error) {
	var (
		e   EngineConfig
		err error
	)
	if e.StepsPerSecond, err = strconv.ParseFloat(GetEnv("ENGINE_STEPS_PER_SECOND", "0"), 64); err != nil {
		return e, errors.Configurationf("ENGINE_STEPS_PER_SECOND: %v", err)
	}
	if e.ProgressEvery, err = strconv.Atoi(GetEnv("ENGINE_PROGRESS_EVERY", "1000")); err != nil {
		return e, errors.Configurationf("ENGINE_PROGRESS_EVERY: %v", err)
	}
	return e, nil
}

func loadLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:  GetEnv("LOG_LEVEL", "info"),
		Format: GetEnv("LOG_FORMAT", "auto"),
	}
}

func (c *Config) validate() error {
	if err := c.Generation().Validate(); err != nil {
		return err
	}
	if !(c.Galaxy.HexSize > 0) {
		return errors.Configurationf("GALAXY_HEX_SIZE must be positive, got %v", c.Galaxy.HexSize)
	}
	if c.Engine.StepsPerSecond < 0 {
		return errors.Configurationf("ENGINE_STEPS_PER_SECOND must not be negative")
	}
	if c.Engine.ProgressEvery < 0 {
		return errors.Configurationf("ENGINE_PROGRESS_EVERY must not be negative")
	}
	switch c.Logging.Format {
	case "json", "text", "auto":
	default:
		return errors.Configurationf("LOG_FORMAT must be json, text or auto, got %q", c.Logging.Format)
	}
	return nil
}

// Generation returns the generator configuration described by c.
func (c *Config) Generation() generation.Config {
	return generation.Config{
		Seed:           c.Galaxy.Seed,
		UniverseRadius: c.Galaxy.Radius,
		ClusterDensity: c.Galaxy.ClusterDensity,
		ClusterSize: generation.SizeRange{
			Min: c.Galaxy.ClusterSizeMin,
			Max: c.Galaxy.ClusterSizeMax,
		},
	}
}

// Layout returns the hex layout centered on the plane's origin.
func (c *Config) Layout() hex.Layout {
	return hex.Layout{
		Orientation: c.Galaxy.Layout,
		Size:        hex.Point{X: c.Galaxy.HexSize, Y: c.Galaxy.HexSize},
	}
}
