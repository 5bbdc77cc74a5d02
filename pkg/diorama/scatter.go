package diorama

import (
	"math"
	"math/rand/v2"
	"time"
)

// ResolveSeed returns seed, or a clock-derived seed when seed is zero.
func ResolveSeed(seed uint64) uint64 {
	if seed == 0 {
		return uint64(time.Now().UnixNano())
	}
	return seed
}

// NewRand returns a PCG-backed generator. A zero seed picks one from the clock.
func NewRand(seed uint64) *rand.Rand {
	seed = ResolveSeed(seed)
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Scatterer places repeated scenery from an injected random source.
// It is not safe for concurrent use; neither is the *rand.Rand it wraps.
type Scatterer struct {
	rng *rand.Rand
}

// NewScatterer creates a scatterer drawing from rng.
func NewScatterer(rng *rand.Rand) *Scatterer {
	return &Scatterer{rng: rng}
}

// sample draws uniformly from [r.Min, r.Max).
func (s *Scatterer) sample(r Range) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	v := r.Min + s.rng.Float64()*(r.Max-r.Min)
	// Rounding can land exactly on Max for tiny spans.
	if v >= r.Max {
		v = math.Nextafter(r.Max, r.Min)
	}
	return v
}

// Trees lays out the grid row by row, each tree with its own scale.
func (s *Scatterer) Trees(g TreeGrid) []Element {
	out := make([]Element, 0, 2*g.Count())
	i := 0
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			x := g.OriginX + float64(col)*g.StepX
			z := g.OriginZ + float64(row)*g.StepZ
			parts := Tree(i, x, z, s.sample(g.Scale))
			out = append(out, parts[0], parts[1])
			i++
		}
	}
	return out
}

// RiceStalks scatters stalks uniformly over the region.
func (s *Scatterer) RiceStalks(r RiceStalks) []Element {
	out := make([]Element, 0, r.Count)
	for i := 0; i < r.Count; i++ {
		x := s.sample(r.Region.X)
		z := s.sample(r.Region.Z)
		out = append(out, RiceStalk(i, x, r.BaseY, z, s.sample(r.Height)))
	}
	return out
}

// Rocks scatters rocks uniformly over the region.
func (s *Scatterer) Rocks(r Rocks) []Element {
	out := make([]Element, 0, r.Count)
	for i := 0; i < r.Count; i++ {
		z := s.sample(r.Region.Z)
		x := s.sample(r.Region.X)
		out = append(out, Rock(i, x, z, s.sample(r.Scale)))
	}
	return out
}
