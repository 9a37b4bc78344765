// Package generation builds a galaxy one unit of work at a time.
// A host calls Step once per tick until the context reports completion, then
// takes the accumulated collections with Finish.
package generation

import (
	"log/slog"

	"github.com/talgya/hexgalaxy/internal/entropy"
	"github.com/talgya/hexgalaxy/internal/errors"
	"github.com/talgya/hexgalaxy/internal/faction"
	"github.com/talgya/hexgalaxy/internal/hex"
)

// Phase is the state of a generation run.
type Phase uint8

const (
	PhaseConfiguration Phase = iota
	PhaseInitialization
	PhaseClusterGeneration
	PhaseSectorGeneration
	PhaseFinalization
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseConfiguration:
		return "Configuration"
	case PhaseInitialization:
		return "Initialization"
	case PhaseClusterGeneration:
		return "ClusterGeneration"
	case PhaseSectorGeneration:
		return "SectorGeneration"
	case PhaseFinalization:
		return "Finalization"
	case PhaseComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// setupSteps counts the steps that generate no sector: three setup transitions,
// the exhausted spiral pull and finalization.
const setupSteps = 5

// Context is a resumable generation run. It is not safe for concurrent use.
type Context struct {
	phase  Phase
	config Config
	log    *slog.Logger

	rng     *entropy.Random
	density *densityField
	names   *nameGenerator
	tables  *tables

	// Live cursor while in PhaseSectorGeneration.
	spiral *hex.Spiral

	clusters []ProtoCluster
	coverage *hex.Map[ClusterID]
	sectors  []ProtoSector
	orbitals []ProtoOrbital
	factions *faction.Registry
	stats    Stats

	steps    int
	consumed bool
}

// New creates a context in the Configuration phase. Invalid parameters are
// rejected here, never mid-run.
func New(cfg Config) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Context{
		phase:    PhaseConfiguration,
		config:   cfg,
		log:      slog.With("component", "generation", "seed", cfg.Seed),
		factions: faction.DefaultRegistry(),
	}, nil
}

// Step performs exactly one unit of work. Stepping a complete context fails
// with an invalid_state error and changes nothing.
func (c *Context) Step() error {
	switch c.phase {
	case PhaseConfiguration:
		c.transition(PhaseInitialization)

	case PhaseInitialization:
		t, err := newTables()
		if err != nil {
			return err
		}
		c.rng = entropy.NewSeeded(c.config.Seed)
		c.density = newDensityField(c.config.Seed)
		c.names = newNameGenerator(c.rng)
		c.tables = t
		c.transition(PhaseClusterGeneration)

	case PhaseClusterGeneration:
		if err := c.generateClusters(); err != nil {
			return err
		}
		c.spiral = hex.NewSpiral(hex.Coord{}, c.config.UniverseRadius, hex.Clockwise, 0)
		c.transition(PhaseSectorGeneration)

	case PhaseSectorGeneration:
		loc, ok := c.spiral.Next()
		if !ok {
			c.spiral = nil
			c.transition(PhaseFinalization)
			break
		}
		s := c.generateSector(loc)
		c.log.Debug("sector generated",
			"sector", s.ID,
			"location", loc.String(),
			"ring", c.spiral.Ring(),
			"name", s.Name,
		)

	case PhaseFinalization:
		c.stats = c.computeStats()
		c.log.Info("generation complete",
			"clusters", c.stats.Clusters,
			"sectors", c.stats.Sectors,
			"empty", c.stats.EmptySectors,
			"orbitals", c.stats.Orbitals,
			"factions", c.stats.Factions,
		)
		c.transition(PhaseComplete)

	case PhaseComplete:
		return errors.InvalidStatef("generation already complete")

	default:
		return errors.InvalidStatef("unknown generation phase %d", c.phase)
	}

	c.steps++
	return nil
}

func (c *Context) transition(next Phase) {
	c.log.Debug("generation phase", "from", c.phase.String(), "to", next.String())
	c.phase = next
}

// Phase returns the current phase.
func (c *Context) Phase() Phase { return c.phase }

// IsComplete reports whether the context has reached PhaseComplete.
func (c *Context) IsComplete() bool { return c.phase == PhaseComplete }

// Progress returns the number of successful steps taken and the number a full
// run takes for this configuration.
func (c *Context) Progress() (done, total int) {
	return c.steps, hex.CellCount(c.config.UniverseRadius) + setupSteps
}

// Config returns the configuration the context was created with.
func (c *Context) Config() Config { return c.config }

// Clusters returns the clusters generated so far. The slice must not be modified.
func (c *Context) Clusters() []ProtoCluster { return c.clusters }

// Sectors returns the sectors generated so far. The slice must not be modified.
func (c *Context) Sectors() []ProtoSector { return c.sectors }

// Orbitals returns the orbitals generated so far. The slice must not be modified.
func (c *Context) Orbitals() []ProtoOrbital { return c.orbitals }

// Factions returns the faction registry.
func (c *Context) Factions() *faction.Registry { return c.factions }

// Stats returns the run summary; zero until finalization.
func (c *Context) Stats() Stats { return c.stats }

// Finish hands over the generated collections. It succeeds once, and only on a
// complete context.
func (c *Context) Finish() (*Result, error) {
	if c.phase != PhaseComplete {
		return nil, errors.InvalidStatef("generation is in phase %s, not complete", c.phase)
	}
	if c.consumed {
		return nil, errors.InvalidStatef("generation result already taken")
	}
	res := &Result{
		Config:   c.config,
		Factions: c.factions,
		Clusters: c.clusters,
		Sectors:  c.sectors,
		Orbitals: c.orbitals,
		Stats:    c.stats,
	}
	c.factions = nil
	c.clusters = nil
	c.sectors = nil
	c.orbitals = nil
	c.consumed = true
	return res, nil
}

// Run steps a fresh context to completion and returns its result.
func Run(cfg Config) (*Result, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	for !c.IsComplete() {
		if err := c.Step(); err != nil {
			return nil, err
		}
	}
	return c.Finish()
}

func (c *Context) computeStats() Stats {
	s := Stats{
		Clusters: len(c.clusters),
		Sectors:  len(c.sectors),
		Orbitals: len(c.orbitals),
		Factions: c.factions.Len(),
	}
	for i := range c.sectors {
		if c.sectors[i].IsEmpty() {
			s.EmptySectors++
		}
	}
	for i := range c.orbitals {
		switch c.orbitals[i].Kind {
		case KindStar:
			s.Stars++
		case KindPlanet:
			s.Planets++
		case KindMoon:
			s.Moons++
		case KindBelt:
			s.Belts++
		}
	}
	return s
}
