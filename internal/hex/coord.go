// Package hex provides the hex grid geometry used by the galaxy generator.
// Uses axial coordinates (q, r); the cube form is x = q, y = -q - r, z = r.
package hex

import (
	"fmt"

	"github.com/talgya/hexgalaxy/internal/errors"
)

// Coord represents a lattice position on the hex grid using axial coordinates.
// The third cube coordinate is derived, so x + y + z = 0 holds by construction.
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Axial creates a coordinate from axial components.
func Axial(q, r int) Coord {
	return Coord{Q: q, R: r}
}

// Cubic creates a coordinate from cube components. The components must sum to zero.
func Cubic(x, y, z int) (Coord, error) {
	if x+y+z != 0 {
		return Coord{}, errors.Invariantf("cubic coordinate (%d, %d, %d) sums to %d", x, y, z, x+y+z)
	}
	return Coord{Q: x, R: z}, nil
}

// X returns the first cube coordinate.
func (h Coord) X() int { return h.Q }

// Y returns the implicit second cube coordinate.
func (h Coord) Y() int { return -h.Q - h.R }

// Z returns the third cube coordinate.
func (h Coord) Z() int { return h.R }

// S returns the implicit cube coordinate (same as Y).
func (h Coord) S() int { return -h.Q - h.R }

// Add returns the component-wise sum.
func (h Coord) Add(o Coord) Coord {
	return Coord{Q: h.Q + o.Q, R: h.R + o.R}
}

// Sub returns the component-wise difference.
func (h Coord) Sub(o Coord) Coord {
	return Coord{Q: h.Q - o.Q, R: h.R - o.R}
}

// Scale multiplies both components by k.
func (h Coord) Scale(k int) Coord {
	return Coord{Q: h.Q * k, R: h.R * k}
}

// Length returns the distance from the origin.
func (h Coord) Length() int {
	return (abs(h.X()) + abs(h.Y()) + abs(h.Z())) / 2
}

// Position lifts the coordinate into fractional space without loss.
func (h Coord) Position() Position {
	return Position{Q: float64(h.Q), R: float64(h.R)}
}

func (h Coord) String() string {
	return fmt.Sprintf("(%d, %d)", h.Q, h.R)
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b Coord) int {
	return a.Sub(b).Length()
}

// Direction indexes one of the six neighbor offsets.
type Direction int

// directions defines the six neighbor offsets in axial coordinates.
// Direction d and d+3 are opposite.
var directions = [6]Coord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

var diagonals = [6]Coord{
	{Q: 2, R: -1},
	{Q: 1, R: -2},
	{Q: -1, R: -1},
	{Q: -2, R: 1},
	{Q: -1, R: 2},
	{Q: 1, R: 1},
}

// normalize maps any integer onto 0..5, including negatives.
func (d Direction) normalize() int {
	return (6 + int(d)%6) % 6
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return Direction((d.normalize() + 3) % 6)
}

// Offset returns the unit vector for the direction.
func (d Direction) Offset() Coord {
	return directions[d.normalize()]
}

// Neighbor returns the adjacent coordinate in the given direction.
func (h Coord) Neighbor(d Direction) Coord {
	return h.Add(directions[d.normalize()])
}

// DiagonalNeighbor returns the coordinate two steps away between two neighbor directions.
func (h Coord) DiagonalNeighbor(d Direction) Coord {
	return h.Add(diagonals[d.normalize()])
}

// Neighbors returns the six adjacent hex coordinates.
func (h Coord) Neighbors() [6]Coord {
	var result [6]Coord
	for i, dir := range directions {
		result[i] = h.Add(dir)
	}
	return result
}

// Ring returns the coordinates exactly radius steps from center.
func Ring(center Coord, radius int) []Coord {
	if radius < 0 {
		return nil
	}
	if radius == 0 {
		return []Coord{center}
	}
	result := make([]Coord, 0, 6*radius)
	cur := center.Add(directions[4].Scale(radius))
	for side := 0; side < 6; side++ {
		for step := 0; step < radius; step++ {
			result = append(result, cur)
			cur = cur.Add(directions[side])
		}
	}
	return result
}

// Line returns the coordinates on a straight line from a to b inclusive.
func Line(a, b Coord) []Coord {
	n := Distance(a, b)
	result := make([]Coord, 0, n+1)
	if n == 0 {
		return append(result, a)
	}
	// Nudge off exact midpoints so ties resolve consistently.
	pa := a.Position().Add(Position{Q: 1e-6, R: 2e-6})
	pb := b.Position().Add(Position{Q: 1e-6, R: 2e-6})
	for i := 0; i <= n; i++ {
		result = append(result, Lerp(pa, pb, float64(i)/float64(n)).Round())
	}
	return result
}

// CellCount returns the number of hexes within radius of a center: 3R(R+1)+1.
func CellCount(radius int) int {
	if radius < 0 {
		return 0
	}
	return 3*radius*(radius+1) + 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
