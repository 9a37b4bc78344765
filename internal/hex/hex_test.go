package hex

import (
	"math"
	"testing"

	"github.com/talgya/hexgalaxy/internal/errors"
)

func sampleCoords() []Coord {
	var coords []Coord
	for q := -4; q <= 4; q++ {
		for r := -4; r <= 4; r++ {
			coords = append(coords, Axial(q, r))
		}
	}
	return coords
}

func TestCubicRejectsNonZeroSum(t *testing.T) {
	c, err := Cubic(1, -3, 2)
	if err != nil {
		t.Fatalf("Expected valid cubic coordinate, got %v", err)
	}
	if c != Axial(1, 2) {
		t.Errorf("Expected (1, 2), got %v", c)
	}
	if c.X()+c.Y()+c.Z() != 0 {
		t.Errorf("Expected cube components to sum to zero")
	}

	_, err = Cubic(1, 1, 1)
	if !errors.Is(err, errors.KindInvariantViolation) {
		t.Errorf("Expected invariant violation, got %v", err)
	}

	if _, err := FractionalCubic(0.5, -0.25, -0.25); err != nil {
		t.Errorf("Expected valid fractional cubic, got %v", err)
	}
	if _, err := FractionalCubic(0.5, 0.5, 0); !errors.Is(err, errors.KindInvariantViolation) {
		t.Errorf("Expected invariant violation for fractional cubic, got %v", err)
	}
}

func TestArithmetic(t *testing.T) {
	a := Axial(2, -1)
	b := Axial(-3, 4)
	if got := a.Add(b); got != Axial(-1, 3) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Sub(b); got != Axial(5, -5) {
		t.Errorf("Sub: got %v", got)
	}
	if got := a.Scale(3); got != Axial(6, -3) {
		t.Errorf("Scale: got %v", got)
	}
	if got := Axial(3, -1).Length(); got != 3 {
		t.Errorf("Length: expected 3, got %d", got)
	}
}

func TestRoundTripsLatticePoints(t *testing.T) {
	for _, c := range sampleCoords() {
		if got := c.Position().Round(); got != c {
			t.Errorf("Round(%v) = %v", c, got)
		}
	}
}

func TestRoundLargestErrorAxis(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want Coord
	}{
		{"near origin", FractionalAxial(0.2, 0.2), Axial(0, 0)},
		{"x has largest error", FractionalAxial(0.6, 0.3), Axial(1, 0)},
		{"z has largest error", FractionalAxial(0.1, 0.55), Axial(0, 1)},
		{"y has largest error", FractionalAxial(0.3, 0.3), Axial(0, 0)},
		{"x and z tie falls to z", FractionalAxial(0.45, 0.45), Axial(0, 1)},
		{"negative side", FractionalAxial(-1.4, 0.3), Axial(-1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.pos.Round()
			if got != tt.want {
				t.Errorf("Round(%v) = %v, want %v", tt.pos, got, tt.want)
			}
			if got.X()+got.Y()+got.Z() != 0 {
				t.Errorf("Rounded coordinate breaks zero sum: %v", got)
			}
		})
	}
}

func TestDistanceSymmetry(t *testing.T) {
	coords := sampleCoords()
	for _, a := range coords {
		if Distance(a, a) != 0 {
			t.Fatalf("Distance(%v, %v) != 0", a, a)
		}
		for _, b := range coords {
			if Distance(a, b) != Distance(b, a) {
				t.Fatalf("Distance not symmetric for %v, %v", a, b)
			}
		}
	}
	if got := Distance(Axial(0, 0), Axial(3, -3)); got != 3 {
		t.Errorf("Expected distance 3, got %d", got)
	}
}

func TestNeighborOppositeRoundTrip(t *testing.T) {
	for _, c := range sampleCoords() {
		for d := Direction(-6); d < 12; d++ {
			n := c.Neighbor(d)
			if Distance(c, n) != 1 {
				t.Fatalf("Neighbor(%v, %d) = %v is not adjacent", c, d, n)
			}
			if back := n.Neighbor(d + 3); back != c {
				t.Fatalf("Neighbor(Neighbor(%v, %d), %d) = %v", c, d, d+3, back)
			}
			if back := n.Neighbor(d.Opposite()); back != c {
				t.Fatalf("Opposite round trip failed for %v, %d", c, d)
			}
		}
	}
	if Axial(0, 0).Neighbor(-1) != Axial(0, 0).Neighbor(5) {
		t.Errorf("Expected direction -1 to wrap to 5")
	}
}

func TestDiagonalNeighborsAreTwoAway(t *testing.T) {
	c := Axial(1, -2)
	for d := Direction(0); d < 6; d++ {
		if got := Distance(c, c.DiagonalNeighbor(d)); got != 2 {
			t.Errorf("Diagonal %d at distance %d", d, got)
		}
	}
}

func TestSpiralCoversRadius(t *testing.T) {
	for _, spin := range []Spin{Clockwise, CounterClockwise} {
		for start := Direction(0); start < 6; start++ {
			for radius := 0; radius <= 6; radius++ {
				s := NewSpiral(Axial(0, 0), radius, spin, start)
				seen := make(map[Coord]bool)
				last := 0
				count := 0
				for c := range s.All() {
					d := c.Length()
					if d < last {
						t.Fatalf("spin=%v start=%d radius=%d: ring order broke at %v", spin, start, radius, c)
					}
					if d > radius {
						t.Fatalf("coordinate %v outside radius %d", c, radius)
					}
					if s.Ring() != d {
						t.Fatalf("Ring() = %d for coordinate at distance %d", s.Ring(), d)
					}
					if seen[c] {
						t.Fatalf("duplicate coordinate %v", c)
					}
					seen[c] = true
					last = d
					count++
				}
				want := 3*radius*(radius+1) + 1
				if count != want {
					t.Errorf("spin=%v start=%d radius=%d: got %d coordinates, want %d", spin, start, radius, count, want)
				}
				if s.Remaining() != 0 {
					t.Errorf("Expected nothing remaining, got %d", s.Remaining())
				}
			}
		}
	}
}

func TestSpiralIsNotRestartable(t *testing.T) {
	s := NewSpiral(Axial(2, 2), 1, Clockwise, 0)
	for range s.All() {
	}
	if _, ok := s.Next(); ok {
		t.Errorf("Expected exhausted spiral to stay exhausted")
	}

	empty := NewSpiral(Axial(0, 0), -1, Clockwise, 0)
	if _, ok := empty.Next(); ok {
		t.Errorf("Expected negative radius to yield nothing")
	}
}

func TestSpiralWalksRingContiguously(t *testing.T) {
	s := NewSpiral(Axial(0, 0), 3, Clockwise, 0)
	var prev Coord
	for c := range s.All() {
		if c.Length() == 3 && prev.Length() == 3 && Distance(c, prev) != 1 {
			t.Fatalf("Expected consecutive ring cells to be adjacent: %v -> %v", prev, c)
		}
		prev = c
	}
}

func TestAreaMatchesSpiral(t *testing.T) {
	origin := Axial(-2, 5)
	for radius := 0; radius <= 5; radius++ {
		fromSpiral := make(map[Coord]bool)
		for c := range NewSpiral(origin, radius, CounterClockwise, 2).All() {
			fromSpiral[c] = true
		}
		count := 0
		for c := range NewArea(origin, radius).All() {
			if !fromSpiral[c] {
				t.Fatalf("Area produced %v outside spiral set", c)
			}
			count++
		}
		if count != len(fromSpiral) {
			t.Errorf("radius %d: Area produced %d, spiral %d", radius, count, len(fromSpiral))
		}
	}
}

func TestRing(t *testing.T) {
	if got := Ring(Axial(1, 1), 0); len(got) != 1 || got[0] != Axial(1, 1) {
		t.Errorf("Ring radius 0: %v", got)
	}
	ring := Ring(Axial(1, 1), 2)
	if len(ring) != 12 {
		t.Fatalf("Expected 12 cells, got %d", len(ring))
	}
	for _, c := range ring {
		if Distance(c, Axial(1, 1)) != 2 {
			t.Errorf("Ring cell %v not at distance 2", c)
		}
	}
}

func TestLine(t *testing.T) {
	line := Line(Axial(0, 0), Axial(3, -3))
	if len(line) != 4 {
		t.Fatalf("Expected 4 cells, got %d", len(line))
	}
	for i := 1; i < len(line); i++ {
		if Distance(line[i-1], line[i]) != 1 {
			t.Errorf("Line not contiguous at %d: %v", i, line)
		}
	}
	if line[0] != Axial(0, 0) || line[3] != Axial(3, -3) {
		t.Errorf("Line endpoints wrong: %v", line)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	layouts := []Layout{
		DefaultLayout(),
		{Orientation: Flat, Origin: Point{X: 10, Y: -4}, Size: Point{X: 2, Y: 3}},
		{Orientation: Pointy, Origin: Point{X: -7, Y: 2}, Size: Point{X: 20, Y: 20}},
	}
	for _, l := range layouts {
		for _, c := range sampleCoords() {
			p := c.Position().Add(FractionalAxial(0.25, -0.125))
			back := l.FromCartesian(l.ToCartesian(p))
			if math.Abs(back.Q-p.Q) > 1e-9 || math.Abs(back.R-p.R) > 1e-9 {
				t.Fatalf("%v layout: %v -> %v", l.Orientation, p, back)
			}
			if got := l.FromCartesian(l.CoordToCartesian(c)).Round(); got != c {
				t.Fatalf("%v layout: center of %v rounds to %v", l.Orientation, c, got)
			}
		}
	}
}

func TestLayoutNeighborSpacing(t *testing.T) {
	l := DefaultLayout()
	origin := l.CoordToCartesian(Axial(0, 0))
	for d := Direction(0); d < 6; d++ {
		got := origin.DistanceTo(l.CoordToCartesian(Axial(0, 0).Neighbor(d)))
		if math.Abs(got-math.Sqrt(3)) > 1e-9 {
			t.Errorf("Direction %d: spacing %f, want sqrt(3)", d, got)
		}
	}
}

func TestMapBounds(t *testing.T) {
	m := NewMap[string](2)
	if !m.Set(Axial(2, -2), "edge") {
		t.Errorf("Expected edge coordinate to be in bounds")
	}
	if m.Set(Axial(3, 0), "outside") {
		t.Errorf("Expected out of bounds coordinate to be rejected")
	}
	if v, ok := m.Get(Axial(2, -2)); !ok || v != "edge" {
		t.Errorf("Get returned %q, %v", v, ok)
	}
	if m.Len() != 1 {
		t.Errorf("Expected 1 cell, got %d", m.Len())
	}
}

func TestParseOrientation(t *testing.T) {
	if o, err := ParseOrientation("flat"); err != nil || o != Flat {
		t.Errorf("Expected flat, got %v, %v", o, err)
	}
	if _, err := ParseOrientation("round"); err == nil {
		t.Errorf("Expected error for unknown orientation")
	}
}
