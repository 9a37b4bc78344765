package generation

import (
	"github.com/talgya/hexgalaxy/internal/faction"
	"github.com/talgya/hexgalaxy/internal/hex"
)

// Identifiers are dense indexes into their owning collection, assigned in
// creation order.
type (
	ClusterID int
	SectorID  int
	OrbitalID int
)

// ProtoCluster is a group of neighboring sectors under one government.
type ProtoCluster struct {
	ID         ClusterID         `json:"id"`
	Name       string            `json:"name"`
	Center     hex.Coord         `json:"center"`
	Radius     int               `json:"radius"` // Hex radius covering Size cells
	Size       int               `json:"size"`
	Government faction.FactionID `json:"government"`
}

// Contains reports whether a coordinate lies inside the cluster.
func (c *ProtoCluster) Contains(loc hex.Coord) bool {
	return hex.Distance(c.Center, loc) <= c.Radius
}

// ProtoSector is one hex of the galaxy.
type ProtoSector struct {
	ID       SectorID   `json:"id"`
	Name     string     `json:"name"`
	Location hex.Coord  `json:"location"`
	Cluster  *ClusterID `json:"cluster,omitempty"`
	Anchor   *OrbitalID `json:"anchor,omitempty"` // Primary star; nil for empty space
	Density  float64    `json:"density"`          // 0.0–1.0 stellar density
}

// IsEmpty reports whether the sector holds no bodies.
func (s *ProtoSector) IsEmpty() bool {
	return s.Anchor == nil
}

// OrbitalKind categorizes a body.
type OrbitalKind uint8

const (
	KindStar OrbitalKind = iota
	KindPlanet
	KindMoon
	KindBelt
)

func (k OrbitalKind) String() string {
	switch k {
	case KindStar:
		return "Star"
	case KindPlanet:
		return "Planet"
	case KindMoon:
		return "Moon"
	case KindBelt:
		return "Belt"
	default:
		return "Unknown"
	}
}

// ProtoOrbital is a body in a sector's orbit forest. Stars measure mass in solar
// masses, everything else in earth masses. Distances are in AU, periods in years,
// radii in solar or earth radii following mass.
type ProtoOrbital struct {
	ID               OrbitalID   `json:"id"`
	Sector           SectorID    `json:"sector"`
	Name             string      `json:"name"`
	Kind             OrbitalKind `json:"kind"`
	Class            string      `json:"class"` // Spectral class for stars, world type otherwise
	Mass             float64     `json:"mass"`
	Radius           float64     `json:"radius"`
	RotationalPeriod float64     `json:"rotational_period"` // Hours
	OrbitalDistance  float64     `json:"orbital_distance"`
	OrbitalPeriod    float64     `json:"orbital_period"`
	Parent           *OrbitalID  `json:"parent,omitempty"`
}

// Stats summarizes a finished generation run.
type Stats struct {
	Clusters     int `json:"clusters"`
	Sectors      int `json:"sectors"`
	EmptySectors int `json:"empty_sectors"`
	Orbitals     int `json:"orbitals"`
	Stars        int `json:"stars"`
	Planets      int `json:"planets"`
	Moons        int `json:"moons"`
	Belts        int `json:"belts"`
	Factions     int `json:"factions"`
}

// Result is the output of a completed context.
type Result struct {
	Config   Config
	Factions *faction.Registry
	Clusters []ProtoCluster
	Sectors  []ProtoSector
	Orbitals []ProtoOrbital
	Stats    Stats
}
