package config

import (
	"testing"

	"github.com/talgya/hexgalaxy/internal/errors"
	"github.com/talgya/hexgalaxy/internal/generation"
	"github.com/talgya/hexgalaxy/internal/hex"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := cfg.Generation(); got != generation.DefaultConfig() {
		t.Errorf("Expected default generation config, got %+v", got)
	}
	if cfg.Layout() != hex.DefaultLayout() {
		t.Errorf("Expected default layout, got %+v", cfg.Layout())
	}
	if cfg.Engine.ProgressEvery != 1000 || cfg.Engine.StepsPerSecond != 0 {
		t.Errorf("Unexpected engine defaults %+v", cfg.Engine)
	}
	if cfg.Database.Path != "" {
		t.Errorf("Expected archiving disabled by default, got %q", cfg.Database.Path)
	}
	if cfg.Logging.Format != "auto" {
		t.Errorf("Expected auto log format, got %q", cfg.Logging.Format)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GALAXY_SEED", "18446744073709551615")
	t.Setenv("GALAXY_RADIUS", "12")
	t.Setenv("GALAXY_CLUSTER_DENSITY", "0.25")
	t.Setenv("GALAXY_CLUSTER_SIZE_MIN", "2")
	t.Setenv("GALAXY_CLUSTER_SIZE_MAX", "9")
	t.Setenv("GALAXY_LAYOUT", "flat")
	t.Setenv("GALAXY_HEX_SIZE", "3.5")
	t.Setenv("ENGINE_STEPS_PER_SECOND", "60")
	t.Setenv("DB_PATH", "/tmp/galaxy.db")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := generation.Config{
		Seed:           ^uint64(0),
		UniverseRadius: 12,
		ClusterDensity: 0.25,
		ClusterSize:    generation.SizeRange{Min: 2, Max: 9},
	}
	if got := cfg.Generation(); got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
	l := cfg.Layout()
	if l.Orientation != hex.Flat || l.Size != (hex.Point{X: 3.5, Y: 3.5}) {
		t.Errorf("Unexpected layout %+v", l)
	}
	if cfg.Engine.StepsPerSecond != 60 {
		t.Errorf("Expected 60 steps per second, got %v", cfg.Engine.StepsPerSecond)
	}
	if cfg.Database.Path != "/tmp/galaxy.db" || cfg.Logging.Format != "json" {
		t.Errorf("Unexpected database or logging config %+v %+v", cfg.Database, cfg.Logging)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"unparsable seed":   {"GALAXY_SEED", "-1"},
		"unparsable radius": {"GALAXY_RADIUS", "wide"},
		"negative radius":   {"GALAXY_RADIUS", "-3"},
		"density above one": {"GALAXY_CLUSTER_DENSITY", "1.5"},
		"unknown layout":    {"GALAXY_LAYOUT", "square"},
		"zero hex size":     {"GALAXY_HEX_SIZE", "0"},
		"negative pace":     {"ENGINE_STEPS_PER_SECOND", "-1"},
		"unknown format":    {"LOG_FORMAT", "xml"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			if !errors.Is(err, errors.KindConfiguration) {
				t.Errorf("Expected configuration error for %s=%s, got %v", kv[0], kv[1], err)
			}
		})
	}
}

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("HEXGALAXY_TEST_EMPTY", "")
	if got := GetEnv("HEXGALAXY_TEST_EMPTY", "x"); got != "x" {
		t.Errorf("Expected fallback for empty value, got %q", got)
	}
	t.Setenv("HEXGALAXY_TEST_SET", "y")
	if got := GetEnv("HEXGALAXY_TEST_SET", "x"); got != "y" {
		t.Errorf("Expected y, got %q", got)
	}
}
