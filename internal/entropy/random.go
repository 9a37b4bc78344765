// Package entropy provides the deterministic random source used by generation,
// dice helpers, and alias-method weighted tables.
//
// Ranges follow two conventions: Uniform and friends are half-open [min, max),
// dice are inclusive 1..sides.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	"math"
	mrand "math/rand/v2"
	"time"

	"golang.org/x/exp/constraints"
)

// streamSalt separates the two PCG words so a seed of zero still produces a mixed stream.
const streamSalt = 0x9e3779b97f4a7c15

// Random is a seedable pseudo-random source. It is not safe for concurrent use.
type Random struct {
	seed uint64
	rng  *mrand.Rand
}

// NewSeeded creates a reproducible source: equal seeds produce equal streams.
func NewSeeded(seed uint64) *Random {
	return &Random{
		seed: seed,
		rng:  mrand.New(mrand.NewPCG(seed, seed^streamSalt)),
	}
}

// NewFromEntropy creates a non-reproducible source seeded from crypto/rand.
func NewFromEntropy() *Random {
	return NewSeeded(cryptoSeed())
}

// Seed returns the seed the source was created with.
func (r *Random) Seed() uint64 {
	return r.seed
}

// Split derives an independent child stream. The parent advances by two draws.
func (r *Random) Split() *Random {
	hi, lo := r.rng.Uint64(), r.rng.Uint64()
	return &Random{seed: hi, rng: mrand.New(mrand.NewPCG(hi, lo))}
}

func (r *Random) Uint64() uint64   { return r.rng.Uint64() }
func (r *Random) Float64() float64 { return r.rng.Float64() }

// IntN returns a value in [0, n). It returns 0 when n <= 0.
func (r *Random) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.IntN(n)
}

// Uniform returns an integer in [min, max). It returns min when max <= min.
func (r *Random) Uniform(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rng.IntN(max-min)
}

// UniformFloat returns a float in [min, max). It returns min when max <= min.
func (r *Random) UniformFloat(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.rng.Float64()*(max-min)
}

// Chance returns true with probability p.
func (r *Random) Chance(p float64) bool {
	return r.rng.Float64() < p
}

// Pick returns a uniformly chosen element. The slice must not be empty.
func Pick[T any](r *Random, items []T) T {
	return items[r.IntN(len(items))]
}

// Between returns a value of any numeric type in [min, max).
func Between[T constraints.Integer | constraints.Float](r *Random, min, max T) T {
	if max <= min {
		return min
	}
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return min + T(r.rng.Float64()*float64(max-min))
	default:
		// The span is taken in uint64 two's complement so narrow types cannot
		// overflow; the sum wraps back into range when truncated to T.
		lo := uint64(int64(min))
		span := uint64(int64(max)) - lo
		return T(lo + r.rng.Uint64N(span))
	}
}

// Next returns a value of the requested numeric type: floats in [0, 1), integers
// across their full range.
func Next[T constraints.Integer | constraints.Float](r *Random) T {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return T(r.rng.Float64())
	default:
		return T(r.rng.Uint64())
	}
}

// cryptoSeed reads a seed from crypto/rand, falling back to the clock.
func cryptoSeed() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		slog.Warn("crypto/rand unavailable, seeding from clock", "error", err)
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// finite reports whether f is neither NaN nor infinite.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
