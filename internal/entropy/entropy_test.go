package entropy

import (
	"math"
	"testing"

	"golang.org/x/exp/constraints"

	"github.com/talgya/hexgalaxy/internal/errors"
)

func TestSeededStreamsRepeat(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	for i := 0; i < 1000; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatalf("Streams diverged at draw %d", i)
		}
	}

	c := NewSeeded(43)
	same := 0
	a = NewSeeded(42)
	for i := 0; i < 100; i++ {
		if a.Uint64() == c.Uint64() {
			same++
		}
	}
	if same > 2 {
		t.Errorf("Expected different seeds to diverge, %d of 100 draws matched", same)
	}
}

func TestSplitIsDeterministic(t *testing.T) {
	a := NewSeeded(7).Split()
	b := NewSeeded(7).Split()
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("Split streams diverged at draw %d", i)
		}
	}
}

func TestUniformIsHalfOpen(t *testing.T) {
	r := NewSeeded(1)
	seen := make(map[int]bool)
	for i := 0; i < 10000; i++ {
		v := r.Uniform(1, 6)
		if v < 1 || v >= 6 {
			t.Fatalf("Uniform(1, 6) returned %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 5 {
		t.Errorf("Expected values 1..5, saw %v", seen)
	}
	if got := r.Uniform(4, 4); got != 4 {
		t.Errorf("Expected empty range to return min, got %d", got)
	}
	for i := 0; i < 1000; i++ {
		f := r.UniformFloat(-2, 3)
		if f < -2 || f >= 3 {
			t.Fatalf("UniformFloat(-2, 3) returned %f", f)
		}
	}
}

func TestBetweenGeneric(t *testing.T) {
	r := NewSeeded(9)
	for i := 0; i < 1000; i++ {
		if v := Between(r, int32(-3), int32(3)); v < -3 || v >= 3 {
			t.Fatalf("Between int32 returned %d", v)
		}
		if v := Between(r, 0.5, 1.5); v < 0.5 || v >= 1.5 {
			t.Fatalf("Between float64 returned %f", v)
		}
		if v := Next[float32](r); v < 0 || v >= 1 {
			t.Fatalf("Next float32 returned %f", v)
		}
	}
}

func checkBetween[T constraints.Integer](t *testing.T, r *Random, lo, hi T) {
	t.Helper()
	lowest, highest := hi, lo
	for i := 0; i < 2000; i++ {
		v := Between(r, lo, hi)
		if v < lo || v >= hi {
			t.Fatalf("Between(%v, %v) returned %v", lo, hi, v)
		}
		lowest = min(lowest, v)
		highest = max(highest, v)
	}
	if lowest == highest {
		t.Errorf("Between(%v, %v) only ever returned %v", lo, hi, lowest)
	}
}

func TestBetweenNarrowAndExtremeTypes(t *testing.T) {
	r := NewSeeded(1)
	checkBetween(t, r, int8(-100), int8(100))
	checkBetween(t, r, int8(math.MinInt8), int8(math.MaxInt8))
	checkBetween(t, r, uint8(0), uint8(255))
	checkBetween(t, r, uint8(200), uint8(250))
	checkBetween(t, r, int16(-30000), int16(30000))
	checkBetween(t, r, int64(math.MinInt64), int64(math.MaxInt64))
	checkBetween(t, r, uint64(0), uint64(math.MaxUint64))
	checkBetween(t, r, uint64(math.MaxUint64-10), uint64(math.MaxUint64))

	// Every value of a small signed range shows up.
	seen := make(map[int8]bool)
	for i := 0; i < 2000; i++ {
		seen[Between(r, int8(-4), int8(4))] = true
	}
	if len(seen) != 8 {
		t.Errorf("Expected all of -4..3, saw %v", seen)
	}
}

func TestNewFromEntropy(t *testing.T) {
	a := NewFromEntropy()
	b := NewFromEntropy()
	if a.Seed() == b.Seed() {
		t.Errorf("Two entropy sources share seed %d", a.Seed())
	}

	// The stream is a normal seeded stream: replaying its seed repeats it.
	replay := NewSeeded(a.Seed())
	for i := 0; i < 100; i++ {
		if a.Uint64() != replay.Uint64() {
			t.Fatalf("Entropy stream diverged from its own seed at draw %d", i)
		}
	}
	for i := 0; i < 1000; i++ {
		if v := b.Uniform(0, 10); v < 0 || v >= 10 {
			t.Fatalf("Entropy source Uniform(0, 10) returned %d", v)
		}
	}
}

func TestPickCoversItems(t *testing.T) {
	r := NewSeeded(5)
	items := []string{"Vor", "Kel", "Ash"}
	seen := make(map[string]bool)
	for i := 0; i < 300; i++ {
		seen[Pick(r, items)] = true
	}
	if len(seen) != len(items) {
		t.Errorf("Expected every item picked, saw %v", seen)
	}
}

func TestDiceAreInclusive(t *testing.T) {
	r := NewSeeded(3)
	seen := make(map[int]bool)
	for i := 0; i < 10000; i++ {
		v := r.Roll(6)
		if v < 1 || v > 6 {
			t.Fatalf("Roll(6) returned %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 6 {
		t.Errorf("Expected all six faces, saw %v", seen)
	}

	for i := 0; i < 1000; i++ {
		s := r.SumOf(3, 6)
		if s < 3 || s > 18 {
			t.Fatalf("SumOf(3, 6) returned %d", s)
		}
	}

	if got := r.CountSuccesses(10, 6, 1); got != 10 {
		t.Errorf("Every die meets target 1, got %d successes", got)
	}
	if got := r.CountSuccesses(10, 6, 7); got != 0 {
		t.Errorf("No die meets target 7, got %d successes", got)
	}
	if got := r.SumOf(0, 6); got != 0 {
		t.Errorf("Expected zero dice to sum to 0, got %d", got)
	}
}

func TestWeightedTableRejectsBadWeights(t *testing.T) {
	cases := map[string][]Weighted[string]{
		"empty":    nil,
		"zero":     {W("a", 1), W("b", 0)},
		"negative": {W("a", 1), W("b", -1)},
		"nan":      {W("a", math.NaN())},
		"inf":      {W("a", math.Inf(1))},
	}
	for name, entries := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewWeightedTable(entries...)
			if !errors.Is(err, errors.KindConfiguration) {
				t.Errorf("Expected configuration error, got %v", err)
			}
		})
	}
}

func TestWeightedTableFinalState(t *testing.T) {
	table, err := NewWeightedTable(W(0, 1), W(1, 3))
	if err != nil {
		t.Fatalf("Failed to build table: %v", err)
	}
	prob := table.Probabilities()
	alias := table.Aliases()
	if prob[0] != 0.5 || prob[1] != 1.0 {
		t.Errorf("Expected probabilities [0.5 1], got %v", prob)
	}
	if alias[0] != 1 {
		t.Errorf("Expected cell 0 to alias to 1, got %d", alias[0])
	}
}

func TestWeightedTableEffectiveDistribution(t *testing.T) {
	weights := []float64{2, 5, 1, 8, 4}
	entries := make([]Weighted[int], len(weights))
	total := 0.0
	for i, w := range weights {
		entries[i] = W(i, w)
		total += w
	}
	table := MustWeightedTable(entries...)
	prob := table.Probabilities()
	alias := table.Aliases()
	n := float64(len(weights))

	// Reconstruct each value's exact mass from the final cells.
	mass := make([]float64, len(weights))
	for i := range prob {
		mass[i] += prob[i] / n
		mass[alias[i]] += (1 - prob[i]) / n
	}
	for i, w := range weights {
		if math.Abs(mass[i]-w/total) > 1e-12 {
			t.Errorf("Value %d has mass %f, want %f", i, mass[i], w/total)
		}
	}
}

func sampleCounts(table *WeightedTable[int], draws int, seed uint64) []int {
	r := NewSeeded(seed)
	counts := make([]int, table.Len())
	for i := 0; i < draws; i++ {
		counts[table.Sample(r)]++
	}
	return counts
}

func TestWeightedTableBalancedSix(t *testing.T) {
	var entries []Weighted[int]
	for i := 0; i < 6; i++ {
		entries = append(entries, W(i, 1.0/6.0))
	}
	const total = 1_000_000
	counts := sampleCounts(MustWeightedTable(entries...), total, 0)
	for i, c := range counts {
		pct := float64(c) / total * 100
		if pct < 16.17 || pct > 17.17 {
			t.Errorf("Outcome %d drawn %.3f%% of the time, want ~16.67%%", i, pct)
		}
	}
}

func TestWeightedTableCoinFlip(t *testing.T) {
	const total = 1_000_000
	counts := sampleCounts(MustWeightedTable(W(0, 0.5), W(1, 0.5)), total, 11)
	for i, c := range counts {
		pct := float64(c) / total * 100
		if pct < 49.5 || pct > 50.5 {
			t.Errorf("Outcome %d drawn %.3f%% of the time, want 49.5-50.5%%", i, pct)
		}
	}
}

func TestWeightedTableLoadedSix(t *testing.T) {
	var entries []Weighted[int]
	for i := 0; i < 5; i++ {
		entries = append(entries, W(i, 1.0/6.0))
	}
	entries = append(entries, W(5, 2.0/6.0))

	const total = 1_000_000
	counts := sampleCounts(MustWeightedTable(entries...), total, 0)
	for i := 0; i < 5; i++ {
		ratio := float64(counts[5]) / float64(counts[i])
		if ratio < 1.9 || ratio > 2.1 {
			t.Errorf("Loaded face drawn %.3fx as often as face %d, want ~2x", ratio, i)
		}
	}
}
