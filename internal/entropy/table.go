package entropy

import "github.com/talgya/hexgalaxy/internal/errors"

// Weighted pairs a value with its relative weight.
type Weighted[V any] struct {
	Value  V
	Weight float64
}

// W is shorthand for building a Weighted entry.
func W[V any](value V, weight float64) Weighted[V] {
	return Weighted[V]{Value: value, Weight: weight}
}

// WeightedTable samples values in proportion to their weights in O(1) per draw,
// using the alias method prepared with Vose's algorithm in O(n).
type WeightedTable[V any] struct {
	values      []V
	alias       []int
	probability []float64
}

// NewWeightedTable builds a table. Every weight must be positive and finite.
func NewWeightedTable[V any](entries ...Weighted[V]) (*WeightedTable[V], error) {
	n := len(entries)
	if n == 0 {
		return nil, errors.Configurationf("weighted table needs at least one entry")
	}

	total := 0.0
	for i, e := range entries {
		if !finite(e.Weight) || e.Weight <= 0 {
			return nil, errors.Configurationf("weighted table entry %d has weight %g, must be positive", i, e.Weight)
		}
		total += e.Weight
	}
	if !finite(total) {
		return nil, errors.Configurationf("weighted table total weight overflows")
	}

	t := &WeightedTable[V]{
		values:      make([]V, n),
		alias:       make([]int, n),
		probability: make([]float64, n),
	}

	small := make([]int, 0, n)
	large := make([]int, 0, n)
	for i, e := range entries {
		t.values[i] = e.Value
		t.alias[i] = i
		// Scale so the average cell holds exactly 1.0.
		p := e.Weight / total * float64(n)
		t.probability[i] = p
		if p < 1.0 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		l := small[len(small)-1]
		small = small[:len(small)-1]
		g := large[len(large)-1]
		large = large[:len(large)-1]

		t.alias[l] = g
		t.probability[g] = (t.probability[g] + t.probability[l]) - 1.0
		if t.probability[g] < 1.0 {
			small = append(small, g)
		} else {
			large = append(large, g)
		}
	}

	// Leftovers are full cells; anything short of 1.0 here is rounding error.
	for _, g := range large {
		t.probability[g] = 1.0
	}
	for _, l := range small {
		t.probability[l] = 1.0
	}

	return t, nil
}

// MustWeightedTable is NewWeightedTable for fixed tables known to be valid.
func MustWeightedTable[V any](entries ...Weighted[V]) *WeightedTable[V] {
	t, err := NewWeightedTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Sample draws one value using r.
func (t *WeightedTable[V]) Sample(r *Random) V {
	i := r.IntN(len(t.values))
	if r.Float64() < t.probability[i] {
		return t.values[i]
	}
	return t.values[t.alias[i]]
}

// Len returns the number of entries.
func (t *WeightedTable[V]) Len() int {
	return len(t.values)
}

// Probabilities returns a copy of the per-cell keep probabilities.
func (t *WeightedTable[V]) Probabilities() []float64 {
	return append([]float64(nil), t.probability...)
}

// Aliases returns a copy of the per-cell alias indices.
func (t *WeightedTable[V]) Aliases() []int {
	return append([]int(nil), t.alias...)
}
