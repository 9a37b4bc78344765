package generation

import (
	"math"

	"github.com/talgya/hexgalaxy/internal/errors"
)

// SizeRange is a half-open range [Min, Max).
type SizeRange struct {
	Min int
	Max int
}

// Mean returns the midpoint of the range.
func (s SizeRange) Mean() float64 {
	return float64(s.Min+s.Max-1) / 2
}

// Config holds universe generation parameters. It is immutable once handed to New.
type Config struct {
	Seed           uint64    // Seed for every random draw
	UniverseRadius int       // Hex radius of the galaxy around the origin
	ClusterDensity float64   // 0.0–1.0, fraction of cells covered by clusters
	ClusterSize    SizeRange // Sectors per cluster, [Min, Max)
}

// DefaultConfig returns the full-size galaxy configuration.
func DefaultConfig() Config {
	return Config{
		Seed:           0,
		UniverseRadius: 100,
		ClusterDensity: 1.0,
		ClusterSize:    SizeRange{Min: 5, Max: 15},
	}
}

// SmallTestConfig returns a tiny galaxy for rapid iteration.
func SmallTestConfig() Config {
	return Config{
		Seed:           42,
		UniverseRadius: 6,
		ClusterDensity: 0.5,
		ClusterSize:    SizeRange{Min: 3, Max: 8},
	}
}

// MaxUniverseRadius is the largest radius whose full step count still fits in an int.
var MaxUniverseRadius = maxRadius()

// maxRadius solves 3r(r+1) + 1 + setupSteps <= math.MaxInt for r.
func maxRadius() int {
	limit := (math.MaxInt - 1 - setupSteps) / 3
	r := int(math.Sqrt(float64(limit)))
	for r > 0 && r > limit/(r+1) {
		r--
	}
	for r+1 <= limit/(r+2) {
		r++
	}
	return r
}

// Validate rejects parameters the generator cannot honor.
func (c Config) Validate() error {
	if c.UniverseRadius < 0 {
		return errors.Configurationf("universe radius %d is negative", c.UniverseRadius)
	}
	if c.UniverseRadius > MaxUniverseRadius {
		return errors.Configurationf("universe radius %d exceeds the maximum %d", c.UniverseRadius, MaxUniverseRadius)
	}
	if math.IsNaN(c.ClusterDensity) || c.ClusterDensity < 0 || c.ClusterDensity > 1 {
		return errors.Configurationf("cluster density %g outside [0, 1]", c.ClusterDensity)
	}
	if c.ClusterSize.Min < 1 {
		return errors.Configurationf("cluster size minimum %d must be at least 1", c.ClusterSize.Min)
	}
	if c.ClusterSize.Max <= c.ClusterSize.Min {
		return errors.Configurationf("cluster size range [%d, %d) is empty", c.ClusterSize.Min, c.ClusterSize.Max)
	}
	return nil
}
