package cartographer

import (
	"math"

	"github.com/talgya/hexgalaxy/internal/errors"
	"github.com/talgya/hexgalaxy/internal/generation"
	"github.com/talgya/hexgalaxy/internal/hex"
)

// orbitOffset is a body's circular-orbit displacement from its parent.
func orbitOffset(o *generation.ProtoOrbital, time float64) hex.Point {
	theta := 0.0
	if o.OrbitalPeriod != 0 {
		theta = time / o.OrbitalPeriod
	}
	return hex.Point{
		X: o.OrbitalDistance * math.Cos(theta),
		Y: o.OrbitalDistance * math.Sin(theta),
	}
}

// OrbitalPosition resolves a body's position at time by summing the orbit
// offsets up its parent chain. Roots are placed at their own offset from the
// galactic origin.
func (w *World) OrbitalPosition(id generation.OrbitalID, time float64) (hex.Point, error) {
	if id < 0 || int(id) >= len(w.orbitals) {
		return hex.Point{}, errors.NotFoundf("orbital %d", id)
	}

	var pos hex.Point
	visited := make(map[generation.OrbitalID]struct{})
	cur := id
	for {
		if _, seen := visited[cur]; seen {
			return hex.Point{}, errors.CyclicReferencef("orbital %d revisited resolving %d", cur, id)
		}
		visited[cur] = struct{}{}

		o := &w.orbitals[cur]
		pos = pos.Add(orbitOffset(o, time))
		if o.Parent == nil {
			return pos, nil
		}
		cur = *o.Parent
	}
}
