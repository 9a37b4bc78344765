package entropy

// Roll returns one die face in 1..sides inclusive. A die with fewer than one side
// always shows 0.
func (r *Random) Roll(sides int) int {
	if sides < 1 {
		return 0
	}
	return 1 + r.rng.IntN(sides)
}

// SumOf rolls count dice of the given sides and sums the faces (classic NdS).
func (r *Random) SumOf(count, sides int) int {
	total := 0
	for i := 0; i < count; i++ {
		total += r.Roll(sides)
	}
	return total
}

// CountSuccesses rolls count dice and counts faces at or above target.
func (r *Random) CountSuccesses(count, sides, target int) int {
	hits := 0
	for i := 0; i < count; i++ {
		if r.Roll(sides) >= target {
			hits++
		}
	}
	return hits
}
