package generation

import "github.com/talgya/hexgalaxy/internal/entropy"

// span is an inclusive-exclusive float range sampled uniformly.
type span struct {
	Min, Max float64
}

func (s span) sample(r *entropy.Random) float64 {
	return r.UniformFloat(s.Min, s.Max)
}

// starClass describes one spectral class. Mass in solar masses, radius in solar radii.
type starClass struct {
	Name   string
	Mass   span
	Radius span
}

var starClasses = []starClass{
	{"O", span{16, 60}, span{6.6, 15}},
	{"B", span{2.1, 16}, span{1.8, 6.6}},
	{"A", span{1.4, 2.1}, span{1.4, 1.8}},
	{"F", span{1.04, 1.4}, span{1.15, 1.4}},
	{"G", span{0.8, 1.04}, span{0.96, 1.15}},
	{"K", span{0.45, 0.8}, span{0.7, 0.96}},
	{"M", span{0.08, 0.45}, span{0.1, 0.7}},
}

// Relative frequency of each class, tilted toward bright stars for playability.
var starClassWeights = []float64{0.1, 1, 3, 6, 10, 20, 60}

// classForMass returns the spectral class whose mass span holds mass.
func classForMass(mass float64) starClass {
	for _, c := range starClasses {
		if mass >= c.Mass.Min {
			return c
		}
	}
	return starClasses[len(starClasses)-1]
}

// planetClass describes one world type. Mass in earth masses, radius in earth radii.
type planetClass struct {
	Name     string
	Mass     span
	Radius   span
	Rotation span // Hours
	Giant    bool
}

var planetClasses = []planetClass{
	{Name: "Rocky", Mass: span{0.05, 2}, Radius: span{0.3, 1.3}, Rotation: span{10, 60}},
	{Name: "Desert", Mass: span{0.1, 3}, Radius: span{0.5, 1.5}, Rotation: span{10, 60}},
	{Name: "Ocean", Mass: span{0.5, 5}, Radius: span{0.8, 1.8}, Rotation: span{12, 40}},
	{Name: "Ice", Mass: span{0.05, 1.5}, Radius: span{0.3, 1.2}, Rotation: span{10, 80}},
	{Name: "IceGiant", Mass: span{10, 30}, Radius: span{3, 4.5}, Rotation: span{14, 20}, Giant: true},
	{Name: "GasGiant", Mass: span{30, 800}, Radius: span{6, 12}, Rotation: span{8, 14}, Giant: true},
}

var planetClassWeights = []float64{30, 15, 8, 20, 12, 15}

// Moons per planet before the giant bonus.
var moonCountWeights = []entropy.Weighted[int]{
	entropy.W(0, 35), entropy.W(1, 25), entropy.W(2, 15), entropy.W(3, 10),
	entropy.W(4, 8), entropy.W(5, 4), entropy.W(6, 3),
}

// tables holds the weighted tables built during initialization.
type tables struct {
	stars   *entropy.WeightedTable[starClass]
	planets *entropy.WeightedTable[planetClass]
	moons   *entropy.WeightedTable[int]
}

func newTables() (*tables, error) {
	starEntries := make([]entropy.Weighted[starClass], len(starClasses))
	for i, c := range starClasses {
		starEntries[i] = entropy.W(c, starClassWeights[i])
	}
	stars, err := entropy.NewWeightedTable(starEntries...)
	if err != nil {
		return nil, err
	}

	planetEntries := make([]entropy.Weighted[planetClass], len(planetClasses))
	for i, c := range planetClasses {
		planetEntries[i] = entropy.W(c, planetClassWeights[i])
	}
	planets, err := entropy.NewWeightedTable(planetEntries...)
	if err != nil {
		return nil, err
	}

	moons, err := entropy.NewWeightedTable(moonCountWeights...)
	if err != nil {
		return nil, err
	}

	return &tables{stars: stars, planets: planets, moons: moons}, nil
}
