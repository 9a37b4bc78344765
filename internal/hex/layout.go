package hex

import (
	"fmt"
	"math"
)

// Point is a Cartesian position in the galactic plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the component-wise sum.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the component-wise difference.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point) DistanceTo(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y)
}

// Orientation selects pointy-top or flat-top hexes.
type Orientation uint8

const (
	Pointy Orientation = iota
	Flat
)

func (o Orientation) String() string {
	if o == Flat {
		return "flat"
	}
	return "pointy"
}

// ParseOrientation converts "pointy" or "flat" to an Orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "pointy", "":
		return Pointy, nil
	case "flat":
		return Flat, nil
	default:
		return Pointy, fmt.Errorf("unknown hex orientation %q", s)
	}
}

// Layout maps hex positions to the Cartesian plane.
type Layout struct {
	Orientation Orientation
	Origin      Point
	Size        Point // hex radius along each axis
}

// DefaultLayout returns a pointy-top layout of unit hexes centered on the origin.
func DefaultLayout() Layout {
	return Layout{Orientation: Pointy, Size: Point{X: 1, Y: 1}}
}

var sqrt3 = math.Sqrt(3)

// ToCartesian returns the center of a hex position in the plane.
func (l Layout) ToCartesian(p Position) Point {
	var x, y float64
	switch l.Orientation {
	case Flat:
		x = l.Size.X * (1.5 * p.Q)
		y = l.Size.Y * (sqrt3/2*p.Q + sqrt3*p.R)
	default:
		x = l.Size.X * (sqrt3*p.Q + sqrt3/2*p.R)
		y = l.Size.Y * (1.5 * p.R)
	}
	return Point{X: l.Origin.X + x, Y: l.Origin.Y + y}
}

// CoordToCartesian returns the center of a lattice coordinate in the plane.
func (l Layout) CoordToCartesian(c Coord) Point {
	return l.ToCartesian(c.Position())
}

// FromCartesian is the inverse of ToCartesian.
func (l Layout) FromCartesian(pt Point) Position {
	x := (pt.X - l.Origin.X) / l.Size.X
	y := (pt.Y - l.Origin.Y) / l.Size.Y
	switch l.Orientation {
	case Flat:
		return Position{
			Q: 2.0 / 3.0 * x,
			R: -1.0/3.0*x + sqrt3/3*y,
		}
	default:
		return Position{
			Q: sqrt3/3*x - 1.0/3.0*y,
			R: 2.0 / 3.0 * y,
		}
	}
}
