package generation

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/hexgalaxy/internal/hex"
)

// clusterBonus is added to the stellar density of sectors inside a cluster.
const clusterBonus = 0.25

// densityField maps galactic positions to a stellar density in [0, 1].
type densityField struct {
	noise  opensimplex.Noise
	layout hex.Layout
}

func newDensityField(seed uint64) *densityField {
	return &densityField{
		noise:  opensimplex.NewNormalized(int64(seed)),
		layout: hex.DefaultLayout(),
	}
}

// At returns the density for a sector, raised inside clusters.
func (d *densityField) At(loc hex.Coord, inCluster bool) float64 {
	pt := d.layout.CoordToCartesian(loc)
	v := octaveNoise(d.noise, pt.X, pt.Y, 4, 0.04, 0.5)
	if inCluster {
		v += clusterBonus
	}
	return math.Max(0, math.Min(1, v))
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
