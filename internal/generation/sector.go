package generation

import (
	"math"

	"github.com/talgya/hexgalaxy/internal/hex"
)

const (
	// Earth masses per solar mass.
	earthMassesPerSun = 333000.0
	// AU per earth radius.
	auPerEarthRadius = 4.26e-5

	maxPlanets = 12
	beltChance = 0.1
)

// generateSector allocates the sector at loc and its orbit forest.
func (c *Context) generateSector(loc hex.Coord) *ProtoSector {
	cluster := c.clusterAt(loc)
	c.sectors = append(c.sectors, ProtoSector{
		ID:       SectorID(len(c.sectors)),
		Name:     c.names.Next(),
		Location: loc,
		Cluster:  cluster,
		Density:  c.density.At(loc, cluster != nil),
	})
	s := &c.sectors[len(c.sectors)-1]

	// Sparse regions are mostly empty space.
	if !c.rng.Chance(0.1 + 0.8*s.Density) {
		return s
	}

	primary := c.generatePrimary(s)
	s.Anchor = ref(primary)

	for i := 1; i < c.multiplicity(); i++ {
		c.generateCompanion(s, primary, i)
	}
	c.generatePlanets(s, primary)
	return s
}

// multiplicity rolls 3d6 for the number of stars in a system.
func (c *Context) multiplicity() int {
	switch roll := c.rng.SumOf(3, 6); {
	case roll <= 10:
		return 1
	case roll <= 15:
		return 2
	default:
		return 3
	}
}

func (c *Context) addOrbital(o ProtoOrbital) OrbitalID {
	o.ID = OrbitalID(len(c.orbitals))
	c.orbitals = append(c.orbitals, o)
	return o.ID
}

func (c *Context) generatePrimary(s *ProtoSector) OrbitalID {
	class := c.tables.stars.Sample(c.rng)
	return c.addOrbital(ProtoOrbital{
		Sector:           s.ID,
		Name:             s.Name,
		Kind:             KindStar,
		Class:            class.Name,
		Mass:             class.Mass.sample(c.rng),
		Radius:           class.Radius.sample(c.rng),
		RotationalPeriod: c.rng.UniformFloat(200, 800),
	})
}

// generateCompanion adds a lighter star orbiting the primary.
func (c *Context) generateCompanion(s *ProtoSector, primary OrbitalID, ordinal int) {
	p := c.orbitals[primary]
	mass := math.Max(p.Mass-float64(c.rng.SumOf(c.rng.Roll(6), 6))*0.1, 0.1)
	class := classForMass(mass)
	distance := c.rng.UniformFloat(10, 200) * float64(ordinal)
	c.addOrbital(ProtoOrbital{
		Sector:           s.ID,
		Name:             s.Name + " " + string(rune('A'+ordinal)),
		Kind:             KindStar,
		Class:            class.Name,
		Mass:             mass,
		Radius:           class.Radius.sample(c.rng),
		RotationalPeriod: c.rng.UniformFloat(200, 800),
		OrbitalDistance:  distance,
		OrbitalPeriod:    keplerPeriod(distance, p.Mass+mass),
		Parent:           ref(primary),
	})
}

// generatePlanets fills orbital slots around the primary outward, with at most
// one slot given over to an asteroid belt.
func (c *Context) generatePlanets(s *ProtoSector, primary OrbitalID) {
	star := c.orbitals[primary]
	count := int(math.Round(float64(c.rng.SumOf(2, 6)-2) * (0.5 + s.Density)))
	count = min(count, maxPlanets)

	inner := c.rng.UniformFloat(0.2, 0.5) * math.Sqrt(star.Mass)
	spacing := c.rng.UniformFloat(1.4, 2.0)
	hasBelt := false

	for i := 0; i < count; i++ {
		distance := inner * math.Pow(spacing, float64(i))
		name := s.Name + " " + numeral(i+1)

		if !hasBelt && c.rng.Chance(beltChance) {
			hasBelt = true
			c.addOrbital(ProtoOrbital{
				Sector:          s.ID,
				Name:            name + " Belt",
				Kind:            KindBelt,
				Class:           "Belt",
				Mass:            c.rng.UniformFloat(0.0001, 0.01),
				OrbitalDistance: distance,
				OrbitalPeriod:   keplerPeriod(distance, star.Mass),
				Parent:          ref(primary),
			})
			continue
		}

		class := c.tables.planets.Sample(c.rng)
		mass := class.Mass.sample(c.rng)
		planet := c.addOrbital(ProtoOrbital{
			Sector:           s.ID,
			Name:             name,
			Kind:             KindPlanet,
			Class:            class.Name,
			Mass:             mass,
			Radius:           class.Radius.sample(c.rng),
			RotationalPeriod: class.Rotation.sample(c.rng),
			OrbitalDistance:  distance,
			OrbitalPeriod:    keplerPeriod(distance, star.Mass),
			Parent:           ref(primary),
		})
		c.generateMoons(s, planet, class)
	}
}

func (c *Context) generateMoons(s *ProtoSector, planet OrbitalID, class planetClass) {
	p := c.orbitals[planet]
	count := c.tables.moons.Sample(c.rng)
	if class.Giant {
		count += c.rng.Roll(6) - 1
	}

	parentMass := p.Mass / earthMassesPerSun
	for i := 0; i < count; i++ {
		mass := p.Mass * c.rng.UniformFloat(0.0001, 0.02)
		distance := p.Radius * auPerEarthRadius * c.rng.UniformFloat(3, 60) * float64(i+1)
		moonClass := "Rocky"
		if c.rng.Chance(0.4) {
			moonClass = "Ice"
		}
		c.addOrbital(ProtoOrbital{
			Sector:           s.ID,
			Name:             p.Name + string(rune('a'+i)),
			Kind:             KindMoon,
			Class:            moonClass,
			Mass:             mass,
			Radius:           math.Cbrt(mass),
			RotationalPeriod: c.rng.UniformFloat(10, 700),
			OrbitalDistance:  distance,
			OrbitalPeriod:    keplerPeriod(distance, parentMass),
			Parent:           ref(planet),
		})
	}
}

// ref gives each record its own copy of an id.
func ref[T any](v T) *T { return &v }

// keplerPeriod returns the period in years of an orbit of a AU around mass
// solar masses.
func keplerPeriod(a, mass float64) float64 {
	if a <= 0 || mass <= 0 {
		return 0
	}
	return math.Sqrt(a * a * a / mass)
}
