package generation

import (
	"strconv"
	"strings"

	"github.com/talgya/hexgalaxy/internal/entropy"
)

var (
	onsets = []string{
		"", "b", "br", "c", "ch", "d", "dr", "f", "g", "gr", "h", "k", "kr", "l",
		"m", "n", "p", "r", "s", "sh", "st", "t", "th", "tr", "v", "z",
	}
	nuclei = []string{"a", "e", "i", "o", "u", "ae", "ai", "ei", "ou", "y"}
	codas  = []string{"", "", "", "n", "r", "s", "l", "th", "x", "m", "nd", "rk"}
)

// roman numerals for bodies ordered outward from their primary.
var numerals = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII"}

// nameGenerator produces unique syllable-based names from the shared stream.
type nameGenerator struct {
	rng  *entropy.Random
	used map[string]bool
}

func newNameGenerator(rng *entropy.Random) *nameGenerator {
	return &nameGenerator{rng: rng, used: make(map[string]bool)}
}

func (g *nameGenerator) syllable() string {
	return entropy.Pick(g.rng, onsets) + entropy.Pick(g.rng, nuclei) + entropy.Pick(g.rng, codas)
}

func (g *nameGenerator) word() string {
	var b strings.Builder
	count := g.rng.Uniform(2, 4)
	for i := 0; i < count; i++ {
		b.WriteString(g.syllable())
	}
	w := b.String()
	return strings.ToUpper(w[:1]) + w[1:]
}

// Next returns a name not handed out before by this generator.
func (g *nameGenerator) Next() string {
	name := g.word()
	for attempt := 0; g.used[name] && attempt < 8; attempt++ {
		name = g.word()
	}
	if g.used[name] {
		base := name
		for n := 2; g.used[name]; n++ {
			name = base + " " + strconv.Itoa(n)
		}
	}
	g.used[name] = true
	return name
}

// numeral returns the roman numeral for a 1-based ordinal.
func numeral(n int) string {
	if n >= 1 && n <= len(numerals) {
		return numerals[n-1]
	}
	return strconv.Itoa(n)
}
