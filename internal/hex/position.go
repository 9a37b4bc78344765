package hex

import (
	"fmt"
	"math"

	"github.com/talgya/hexgalaxy/internal/errors"
)

// cubicEpsilon bounds the floating error accepted by FractionalCubic.
const cubicEpsilon = 1e-9

// Position is a fractional hex coordinate, e.g. a ship or camera between cells.
type Position struct {
	Q float64 `json:"q"`
	R float64 `json:"r"`
}

// FractionalAxial creates a position from axial components.
func FractionalAxial(q, r float64) Position {
	return Position{Q: q, R: r}
}

// FractionalCubic creates a position from cube components, which must sum to zero
// within a small epsilon.
func FractionalCubic(x, y, z float64) (Position, error) {
	sum := x + y + z
	if math.IsNaN(sum) || math.Abs(sum) > cubicEpsilon {
		return Position{}, errors.Invariantf("cubic position (%g, %g, %g) sums to %g", x, y, z, sum)
	}
	return Position{Q: x, R: z}, nil
}

func (p Position) X() float64 { return p.Q }
func (p Position) Y() float64 { return -p.Q - p.R }
func (p Position) Z() float64 { return p.R }

// Add returns the component-wise sum.
func (p Position) Add(o Position) Position {
	return Position{Q: p.Q + o.Q, R: p.R + o.R}
}

// Sub returns the component-wise difference.
func (p Position) Sub(o Position) Position {
	return Position{Q: p.Q - o.Q, R: p.R - o.R}
}

// Scale multiplies both components by k.
func (p Position) Scale(k float64) Position {
	return Position{Q: p.Q * k, R: p.R * k}
}

// Length returns the distance from the origin.
func (p Position) Length() float64 {
	return (math.Abs(p.X()) + math.Abs(p.Y()) + math.Abs(p.Z())) / 2
}

// Distance returns the fractional hex distance between two positions.
func (p Position) Distance(o Position) float64 {
	return p.Sub(o).Length()
}

// Round snaps the position to the containing lattice coordinate. Each cube axis is
// rounded on its own; the axis that moved furthest is then rebuilt from the other
// two so the result sums to zero.
func (p Position) Round() Coord {
	x := math.Round(p.X())
	y := math.Round(p.Y())
	z := math.Round(p.Z())

	dx := math.Abs(x - p.X())
	dy := math.Abs(y - p.Y())
	dz := math.Abs(z - p.Z())

	switch {
	case dx > dy && dx > dz:
		x = -y - z
	case dy > dz:
		// y is implicit in axial form; x and z stand as rounded.
	default:
		z = -x - y
	}
	return Coord{Q: int(x), R: int(z)}
}

func (p Position) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", p.Q, p.R)
}

// Lerp interpolates between two positions; t = 0 yields a, t = 1 yields b.
func Lerp(a, b Position, t float64) Position {
	return Position{
		Q: a.Q + (b.Q-a.Q)*t,
		R: a.R + (b.R-a.R)*t,
	}
}
