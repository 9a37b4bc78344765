package faction

import "fmt"

var adjectives = []string{
	"Holy", "Inscrutable", "Free", "United", "Eternal", "Sovereign", "Radiant", "Iron",
}

var polities = []string{
	"Cabal", "Confederation", "Consortium", "Federation", "Syndicate", "Empire", "Kingdom",
}

// Picker supplies indexes in [0, n); *entropy.Random satisfies it.
type Picker interface {
	IntN(n int) int
}

// GovernmentName builds a name like "Holy Federation of Vorsa".
func GovernmentName(p Picker, seat string) string {
	return fmt.Sprintf("%s %s of %s",
		adjectives[p.IntN(len(adjectives))],
		polities[p.IntN(len(polities))],
		seat,
	)
}
