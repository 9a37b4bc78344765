package hex

import "iter"

// Spin selects the walking order within each ring of a Spiral.
type Spin uint8

const (
	// Clockwise walks each ring in decreasing direction index.
	Clockwise Spin = iota
	// CounterClockwise walks each ring in increasing direction index.
	CounterClockwise
)

func (s Spin) String() string {
	if s == CounterClockwise {
		return "ccw"
	}
	return "cw"
}

// Spiral lazily enumerates every coordinate within radius of a center, ring by ring
// outward. Within a ring the order follows the spin, starting at the corner in the
// start direction. A Spiral is consumed as it is read; build a new one to restart.
type Spiral struct {
	center Coord
	radius int
	spin   Spin
	start  Direction

	ring    int // ring of the coordinate in cur
	side    int
	step    int
	cur     Coord
	layer   int // ring of the coordinate most recently returned
	emitted int
	done    bool
}

// NewSpiral creates a spiral iterator. A negative radius yields nothing.
func NewSpiral(center Coord, radius int, spin Spin, start Direction) *Spiral {
	return &Spiral{
		center: center,
		radius: radius,
		spin:   spin,
		start:  start,
		cur:    center,
		done:   radius < 0,
	}
}

// Next returns the next coordinate, or false once every ring has been produced.
func (s *Spiral) Next() (Coord, bool) {
	if s.done {
		return Coord{}, false
	}
	out := s.cur
	s.layer = s.ring
	s.emitted++
	s.advance()
	return out, true
}

// Ring returns the ring of the coordinate most recently returned by Next.
func (s *Spiral) Ring() int {
	return s.layer
}

// Radius returns the outermost ring the spiral produces.
func (s *Spiral) Radius() int {
	return s.radius
}

// Remaining returns how many coordinates are still to come.
func (s *Spiral) Remaining() int {
	return CellCount(s.radius) - s.emitted
}

// All adapts the spiral to a range-over-func sequence. It shares state with Next.
func (s *Spiral) All() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for {
			c, ok := s.Next()
			if !ok || !yield(c) {
				return
			}
		}
	}
}

func (s *Spiral) advance() {
	if s.ring == 0 {
		s.beginRing(1)
		return
	}
	s.cur = s.cur.Add(s.walk(s.side))
	s.step++
	if s.step == s.ring {
		s.step = 0
		s.side++
		if s.side == 6 {
			s.beginRing(s.ring + 1)
		}
	}
}

func (s *Spiral) beginRing(k int) {
	if k > s.radius {
		s.done = true
		return
	}
	s.ring = k
	s.side = 0
	s.step = 0
	s.cur = s.center.Add(s.start.Offset().Scale(k))
}

// walk returns the travel direction along the given side of the current ring.
func (s *Spiral) walk(side int) Coord {
	if s.spin == CounterClockwise {
		return Direction(int(s.start) + 2 + side).Offset()
	}
	return Direction(int(s.start) - 2 - side).Offset()
}

// Area enumerates the same hexagon as a Spiral in row order: q ascending, and r
// ascending within each q column.
type Area struct {
	origin Coord
	radius int
	q      int
	rLo    int
	rHi    int
	r      int
}

// NewArea creates a row-order iterator over the hexagon of the given radius.
func NewArea(origin Coord, radius int) *Area {
	q := -radius
	lo, hi := columnBounds(q, radius)
	return &Area{origin: origin, radius: radius, q: q, rLo: lo, rHi: hi, r: lo}
}

// Next returns the next coordinate, or false once the hexagon is exhausted.
func (a *Area) Next() (Coord, bool) {
	if a.r > a.rHi {
		a.q++
		a.rLo, a.rHi = columnBounds(a.q, a.radius)
		a.r = a.rLo
	}
	if a.q > a.radius {
		return Coord{}, false
	}
	c := a.origin.Add(Coord{Q: a.q, R: a.r})
	a.r++
	return c, true
}

// All adapts the area to a range-over-func sequence. It shares state with Next.
func (a *Area) All() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for {
			c, ok := a.Next()
			if !ok || !yield(c) {
				return
			}
		}
	}
}

func columnBounds(q, radius int) (int, int) {
	return max(-radius, -q-radius), min(radius, -q+radius)
}
