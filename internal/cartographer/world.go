// Package cartographer holds the finished, read-only universe and answers
// queries about it. A World never changes after construction, so any number of
// goroutines may query it at once.
package cartographer

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/talgya/hexgalaxy/internal/errors"
	"github.com/talgya/hexgalaxy/internal/faction"
	"github.com/talgya/hexgalaxy/internal/generation"
	"github.com/talgya/hexgalaxy/internal/hex"
)

// Input is everything a World is built from.
type Input struct {
	Config   generation.Config
	Layout   hex.Layout
	Factions *faction.Registry
	Clusters []generation.ProtoCluster
	Sectors  []generation.ProtoSector
	Orbitals []generation.ProtoOrbital
}

// World is the queryable universe.
type World struct {
	config   generation.Config
	layout   hex.Layout
	factions *faction.Registry
	clusters []generation.ProtoCluster
	sectors  []generation.ProtoSector
	orbitals []generation.ProtoOrbital

	byCoord  *hex.Map[generation.SectorID]
	bySector [][]generation.OrbitalID
	children [][]generation.OrbitalID
	index    *spatialIndex
}

// New validates the collections and builds the spatial index once.
func New(in Input) (*World, error) {
	if in.Layout.Size.X == 0 || in.Layout.Size.Y == 0 {
		return nil, errors.Configurationf("layout size %v has a zero axis", in.Layout.Size)
	}
	factions := in.Factions
	if factions == nil {
		factions = faction.DefaultRegistry()
	}

	w := &World{
		config:   in.Config,
		layout:   in.Layout,
		factions: factions,
		clusters: in.Clusters,
		sectors:  in.Sectors,
		orbitals: in.Orbitals,
		byCoord:  hex.NewMap[generation.SectorID](in.Config.UniverseRadius),
		bySector: make([][]generation.OrbitalID, len(in.Sectors)),
		children: make([][]generation.OrbitalID, len(in.Orbitals)),
	}

	for i := range w.clusters {
		c := &w.clusters[i]
		if c.ID != generation.ClusterID(i) {
			return nil, errors.Invariantf("cluster at index %d has id %d", i, c.ID)
		}
		if _, ok := factions.ByID(c.Government); !ok {
			return nil, errors.Invariantf("cluster %d references unknown faction %d", i, c.Government)
		}
	}

	for i := range w.sectors {
		s := &w.sectors[i]
		if s.ID != generation.SectorID(i) {
			return nil, errors.Invariantf("sector at index %d has id %d", i, s.ID)
		}
		if s.Cluster != nil && (*s.Cluster < 0 || int(*s.Cluster) >= len(w.clusters)) {
			return nil, errors.Invariantf("sector %d references unknown cluster %d", i, *s.Cluster)
		}
		if s.Anchor != nil && (*s.Anchor < 0 || int(*s.Anchor) >= len(w.orbitals)) {
			return nil, errors.Invariantf("sector %d anchored to unknown orbital %d", i, *s.Anchor)
		}
		if _, taken := w.byCoord.Get(s.Location); taken {
			return nil, errors.Invariantf("sector %d duplicates location %v", i, s.Location)
		}
		if !w.byCoord.Set(s.Location, s.ID) {
			return nil, errors.Invariantf("sector %d at %v lies outside radius %d", i, s.Location, in.Config.UniverseRadius)
		}
	}

	for i := range w.orbitals {
		o := &w.orbitals[i]
		if o.ID != generation.OrbitalID(i) {
			return nil, errors.Invariantf("orbital at index %d has id %d", i, o.ID)
		}
		if o.Sector < 0 || int(o.Sector) >= len(w.sectors) {
			return nil, errors.Invariantf("orbital %d in unknown sector %d", i, o.Sector)
		}
		w.bySector[o.Sector] = append(w.bySector[o.Sector], o.ID)
		if o.Parent == nil {
			continue
		}
		if *o.Parent < 0 || int(*o.Parent) >= len(w.orbitals) {
			return nil, errors.Invariantf("orbital %d has unknown parent %d", i, *o.Parent)
		}
		w.children[*o.Parent] = append(w.children[*o.Parent], o.ID)
	}

	w.index = newSpatialIndex(w.layout, w.sectors)
	slog.Debug("world built",
		"component", "cartographer",
		"sectors", w.index.size(),
		"orbitals", len(w.orbitals),
		"factions", factions.Len(),
	)
	return w, nil
}

// FromResult builds a World from a finished generation result.
func FromResult(res *generation.Result, layout hex.Layout) (*World, error) {
	return New(Input{
		Config:   res.Config,
		Layout:   layout,
		Factions: res.Factions,
		Clusters: res.Clusters,
		Sectors:  res.Sectors,
		Orbitals: res.Orbitals,
	})
}

// Build consumes a complete generation context.
func Build(gen *generation.Context, layout hex.Layout) (*World, error) {
	res, err := gen.Finish()
	if err != nil {
		return nil, fmt.Errorf("finishing generation: %w", err)
	}
	return FromResult(res, layout)
}

// Config returns the configuration the universe was generated with.
func (w *World) Config() generation.Config { return w.config }

// Layout returns the projection from hex to Cartesian space.
func (w *World) Layout() hex.Layout { return w.layout }

// Sectors returns every sector in id order. The slice must not be modified.
func (w *World) Sectors() []generation.ProtoSector { return w.sectors }

// Orbitals returns every orbital in id order. The slice must not be modified.
func (w *World) Orbitals() []generation.ProtoOrbital { return w.orbitals }

// Clusters returns every cluster in id order. The slice must not be modified.
func (w *World) Clusters() []generation.ProtoCluster { return w.clusters }

// Factions returns copies of every faction in id order.
func (w *World) Factions() []*faction.Faction {
	all := w.factions.All()
	out := make([]*faction.Faction, len(all))
	for i, f := range all {
		out[i] = f.Clone()
	}
	return out
}

// Sector returns the sector with the given id.
func (w *World) Sector(id generation.SectorID) (*generation.ProtoSector, error) {
	if id < 0 || int(id) >= len(w.sectors) {
		return nil, errors.NotFoundf("sector %d", id)
	}
	return &w.sectors[id], nil
}

// Orbital returns the orbital with the given id.
func (w *World) Orbital(id generation.OrbitalID) (*generation.ProtoOrbital, error) {
	if id < 0 || int(id) >= len(w.orbitals) {
		return nil, errors.NotFoundf("orbital %d", id)
	}
	return &w.orbitals[id], nil
}

// Cluster returns the cluster with the given id.
func (w *World) Cluster(id generation.ClusterID) (*generation.ProtoCluster, error) {
	if id < 0 || int(id) >= len(w.clusters) {
		return nil, errors.NotFoundf("cluster %d", id)
	}
	return &w.clusters[id], nil
}

// Faction returns a copy of the faction with the given id.
func (w *World) Faction(id faction.FactionID) (*faction.Faction, error) {
	f, ok := w.factions.ByID(id)
	if !ok {
		return nil, errors.NotFoundf("faction %d", id)
	}
	return f.Clone(), nil
}

// FactionByLabel looks a faction up by name and returns a copy.
func (w *World) FactionByLabel(name string) (*faction.Faction, bool) {
	f, ok := w.factions.ByLabel(name)
	if !ok {
		return nil, false
	}
	return f.Clone(), true
}

// Relation returns the recorded affinity between two factions.
func (w *World) Relation(a, b faction.FactionID) (float64, bool) {
	return w.factions.Relation(a, b)
}

// OrbitalsIn returns the bodies of a sector in id order.
func (w *World) OrbitalsIn(id generation.SectorID) ([]generation.OrbitalID, error) {
	if id < 0 || int(id) >= len(w.sectors) {
		return nil, errors.NotFoundf("sector %d", id)
	}
	return w.bySector[id], nil
}

// Children returns the bodies directly orbiting an orbital.
func (w *World) Children(id generation.OrbitalID) ([]generation.OrbitalID, error) {
	if id < 0 || int(id) >= len(w.orbitals) {
		return nil, errors.NotFoundf("orbital %d", id)
	}
	return w.children[id], nil
}

// SectorAt returns the sector at a hex coordinate.
func (w *World) SectorAt(loc hex.Coord) (*generation.ProtoSector, bool) {
	id, ok := w.byCoord.Get(loc)
	if !ok {
		return nil, false
	}
	return &w.sectors[id], true
}

// SectorAtPoint returns the sector whose hex contains a Cartesian point.
func (w *World) SectorAtPoint(pt hex.Point) (*generation.ProtoSector, bool) {
	return w.SectorAt(w.layout.FromCartesian(pt).Round())
}

// SectorPosition returns the Cartesian center of a sector.
func (w *World) SectorPosition(id generation.SectorID) (hex.Point, error) {
	s, err := w.Sector(id)
	if err != nil {
		return hex.Point{}, err
	}
	return w.layout.CoordToCartesian(s.Location), nil
}

// SectorsNear returns the sectors whose centers fall in the square envelope of
// half-width radius around point, in ascending id order.
func (w *World) SectorsNear(point hex.Point, radius float64) ([]generation.SectorID, error) {
	if radius < 0 || math.IsNaN(radius) {
		return nil, errors.Configurationf("search radius %g must be non-negative", radius)
	}
	ids, err := w.index.within(point, radius)
	if err != nil {
		return nil, fmt.Errorf("searching sectors near %v: %w", point, err)
	}
	return ids, nil
}

// NearestSectors returns up to k sectors closest to point, nearest first.
func (w *World) NearestSectors(point hex.Point, k int) []generation.SectorID {
	return w.index.nearest(point, k)
}
