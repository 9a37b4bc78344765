// Package faction tracks the organizations that claim sectors and their standing with each other.
// Only the data model lives here; no diplomacy is simulated.
package faction

import (
	"maps"
	"math"

	"github.com/talgya/hexgalaxy/internal/errors"
)

// FactionID is a dense identifier, assigned in creation order and never reused
// within a Registry.
type FactionID int

// Kind categorizes the nature of a faction.
type Kind uint8

const (
	KindCorporate  Kind = iota // Pursue specific goals for profit
	KindCriminal               // Corporate in shape, but ignore laws
	KindGovernment             // Population management and civil services
	KindHouse                  // Hereditary noble lineages
	KindGuild                  // Cross-cutting groups with a shared goal
	KindPlayer                 // The player's own faction
	KindRebellion              // Organized against a government
	KindPirate                 // Outlaws loyal to no one
	KindReligious              // Spiritual bodies, often a shadow government
)

var kindNames = [...]string{
	KindCorporate:  "Corporate",
	KindCriminal:   "Criminal",
	KindGovernment: "Government",
	KindHouse:      "House",
	KindGuild:      "Guild",
	KindPlayer:     "Player",
	KindRebellion:  "Rebellion",
	KindPirate:     "Pirate",
	KindReligious:  "Religious",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// PoliticalAxis places a faction on four axes, each in [-1, 1] with 0 as centrist.
type PoliticalAxis struct {
	Economic   float64 `json:"economic"`   // -1 socialism, +1 capitalism
	Civil      float64 `json:"civil"`      // -1 libertarian, +1 authoritarian
	Social     float64 `json:"social"`     // -1 traditional, +1 progressive
	Diplomatic float64 `json:"diplomatic"` // -1 globalist, +1 nationalist
}

// Clamp returns the axis with every component limited to [-1, 1].
func (p PoliticalAxis) Clamp() PoliticalAxis {
	return PoliticalAxis{
		Economic:   clampUnit(p.Economic),
		Civil:      clampUnit(p.Civil),
		Social:     clampUnit(p.Social),
		Diplomatic: clampUnit(p.Diplomatic),
	}
}

// Distance returns the Euclidean distance between two political positions (0..4).
func (p PoliticalAxis) Distance(o PoliticalAxis) float64 {
	de := p.Economic - o.Economic
	dc := p.Civil - o.Civil
	ds := p.Social - o.Social
	dd := p.Diplomatic - o.Diplomatic
	return math.Sqrt(de*de + dc*dc + ds*ds + dd*dd)
}

// Faction is one organization.
type Faction struct {
	ID   FactionID `json:"id"`
	Name string    `json:"name"`
	Kind Kind      `json:"kind"`

	// Relations with other factions (faction ID → -1 to +1). Entries are created
	// lazily; a missing entry means no relation has been recorded.
	Relations map[FactionID]float64 `json:"relations"`

	Politics PoliticalAxis `json:"politics"`
}

// Relation returns the recorded affinity toward another faction.
func (f *Faction) Relation(other FactionID) (float64, bool) {
	v, ok := f.Relations[other]
	return v, ok
}

// Clone returns a copy of f that shares no state with it.
func (f *Faction) Clone() *Faction {
	c := *f
	c.Relations = maps.Clone(f.Relations)
	return &c
}

// PlayerLabel is the name of the bootstrap faction present in every default registry.
const PlayerLabel = "Player"

// Registry holds factions indexed by id and by label.
type Registry struct {
	byLabel  map[string]FactionID
	factions []*Faction
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byLabel: make(map[string]FactionID)}
}

// DefaultRegistry creates a registry holding only the centrist Player faction.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	if _, err := r.Create(PlayerLabel, KindPlayer, PoliticalAxis{}); err != nil {
		panic(err)
	}
	return r
}

// Create adds a faction and returns its id. Labels must be unique.
func (r *Registry) Create(name string, kind Kind, politics PoliticalAxis) (FactionID, error) {
	if name == "" {
		return 0, errors.Configurationf("faction name is empty")
	}
	if _, exists := r.byLabel[name]; exists {
		return 0, errors.Configurationf("faction %q already exists", name)
	}
	id := FactionID(len(r.factions))
	r.factions = append(r.factions, &Faction{
		ID:        id,
		Name:      name,
		Kind:      kind,
		Relations: make(map[FactionID]float64),
		Politics:  politics.Clamp(),
	})
	r.byLabel[name] = id
	return id, nil
}

// ByID returns the faction with the given id.
func (r *Registry) ByID(id FactionID) (*Faction, bool) {
	if id < 0 || int(id) >= len(r.factions) {
		return nil, false
	}
	return r.factions[id], true
}

// ByLabel returns the faction with the given name.
func (r *Registry) ByLabel(name string) (*Faction, bool) {
	id, ok := r.byLabel[name]
	if !ok {
		return nil, false
	}
	return r.factions[id], true
}

// All returns the factions in id order.
func (r *Registry) All() []*Faction {
	return r.factions
}

// Len returns the number of factions.
func (r *Registry) Len() int {
	return len(r.factions)
}

// SetRelation records a symmetric affinity between two factions, clamped to [-1, 1].
func (r *Registry) SetRelation(a, b FactionID, value float64) error {
	fa, ok := r.ByID(a)
	if !ok {
		return errors.NotFoundf("faction %d", a)
	}
	fb, ok := r.ByID(b)
	if !ok {
		return errors.NotFoundf("faction %d", b)
	}
	if a == b {
		return errors.Configurationf("faction %d cannot relate to itself", a)
	}
	v := clampUnit(value)
	fa.Relations[b] = v
	fb.Relations[a] = v
	return nil
}

// Relation returns the recorded affinity between two factions.
func (r *Registry) Relation(a, b FactionID) (float64, bool) {
	fa, ok := r.ByID(a)
	if !ok {
		return 0, false
	}
	return fa.Relation(b)
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
