package hex

import "fmt"

// Map holds values keyed by coordinate within a hexagon of the given radius.
type Map[T any] struct {
	cells  map[Coord]T
	radius int
}

// NewMap creates an empty map with the given radius.
// A hex grid of radius R contains coordinates where max(|q|, |r|, |s|) <= R.
func NewMap[T any](radius int) *Map[T] {
	return &Map[T]{
		cells:  make(map[Coord]T),
		radius: radius,
	}
}

// Get returns the value at the given coordinate, if any.
func (m *Map[T]) Get(c Coord) (T, bool) {
	v, ok := m.cells[c]
	return v, ok
}

// Set places a value at the given coordinate. Coordinates outside the radius are rejected.
func (m *Map[T]) Set(c Coord, v T) bool {
	if !m.InBounds(c) {
		return false
	}
	m.cells[c] = v
	return true
}

// InBounds returns true if the coordinate is within the map radius.
func (m *Map[T]) InBounds(c Coord) bool {
	return c.Length() <= m.radius
}

// Radius returns the map radius.
func (m *Map[T]) Radius() int {
	return m.radius
}

// Len returns the number of occupied coordinates.
func (m *Map[T]) Len() int {
	return len(m.cells)
}

func (m *Map[T]) String() string {
	return fmt.Sprintf("Map(radius=%d, cells=%d)", m.radius, m.Len())
}
