package generation

import (
	"fmt"
	"math"

	"github.com/talgya/hexgalaxy/internal/faction"
	"github.com/talgya/hexgalaxy/internal/hex"
)

// clusterGap is how far apart, beyond touching, two clusters may sit and still
// have their governments know each other.
const clusterGap = 2

// clusterCount returns how many clusters a configuration asks for.
func clusterCount(cfg Config) int {
	if cfg.ClusterDensity <= 0 {
		return 0
	}
	cells := float64(hex.CellCount(cfg.UniverseRadius))
	n := int(math.Round(cfg.ClusterDensity * cells / cfg.ClusterSize.Mean()))
	return max(1, n)
}

// clusterRadius returns the smallest hex radius whose area holds size cells.
func clusterRadius(size int) int {
	r := 0
	for hex.CellCount(r) < size {
		r++
	}
	return r
}

// generateClusters places every cluster and founds its government.
func (c *Context) generateClusters() error {
	count := clusterCount(c.config)
	clusters := make([]ProtoCluster, 0, count)

	for i := 0; i < count; i++ {
		name := c.names.Next()
		size := c.rng.Uniform(c.config.ClusterSize.Min, c.config.ClusterSize.Max)
		cluster := ProtoCluster{
			ID:     ClusterID(i),
			Name:   name,
			Center: c.randomCell(),
			Radius: clusterRadius(size),
			Size:   size,
		}

		politics := faction.PoliticalAxis{
			Economic:   c.rng.UniformFloat(-1, 1),
			Civil:      c.rng.UniformFloat(-1, 1),
			Social:     c.rng.UniformFloat(-1, 1),
			Diplomatic: c.rng.UniformFloat(-1, 1),
		}
		gov, err := c.factions.Create(faction.GovernmentName(c.rng, name), faction.KindGovernment, politics)
		if err != nil {
			return fmt.Errorf("founding government of cluster %d: %w", i, err)
		}
		cluster.Government = gov
		clusters = append(clusters, cluster)
	}

	// Neighboring governments start with an opinion of each other based on how
	// close their politics are.
	for i := range clusters {
		for j := i + 1; j < len(clusters); j++ {
			a, b := &clusters[i], &clusters[j]
			if hex.Distance(a.Center, b.Center) > a.Radius+b.Radius+clusterGap {
				continue
			}
			fa, _ := c.factions.ByID(a.Government)
			fb, _ := c.factions.ByID(b.Government)
			affinity := 1 - fa.Politics.Distance(fb.Politics)/2
			if err := c.factions.SetRelation(a.Government, b.Government, affinity); err != nil {
				return fmt.Errorf("relating clusters %d and %d: %w", i, j, err)
			}
		}
	}

	// Overlapping cells belong to the lowest id, which claims them first.
	coverage := hex.NewMap[ClusterID](c.config.UniverseRadius)
	for i := range clusters {
		for loc := range hex.NewArea(clusters[i].Center, clusters[i].Radius).All() {
			if _, taken := coverage.Get(loc); !taken {
				coverage.Set(loc, clusters[i].ID)
			}
		}
	}

	c.clusters = clusters
	c.coverage = coverage
	c.log.Debug("clusters generated", "count", len(clusters))
	return nil
}

// randomCell picks a coordinate uniformly from the galaxy's hexagon.
func (c *Context) randomCell() hex.Coord {
	radius := c.config.UniverseRadius
	for {
		h := hex.Axial(c.rng.Uniform(-radius, radius+1), c.rng.Uniform(-radius, radius+1))
		if h.Length() <= radius {
			return h
		}
	}
}

// clusterAt returns the lowest-id cluster covering loc, or nil.
func (c *Context) clusterAt(loc hex.Coord) *ClusterID {
	id, ok := c.coverage.Get(loc)
	if !ok {
		return nil
	}
	return &id
}
