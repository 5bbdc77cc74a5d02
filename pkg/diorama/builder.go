package diorama

import (
	"fmt"
	"math/rand/v2"
)

// Builder assembles a Scene from a validated Layout.
type Builder struct {
	layout Layout
	rng    *rand.Rand
	seed   uint64
}

// NewBuilder validates layout and returns a builder drawing scatter samples
// from rng. seed is recorded in the scene metadata only.
func NewBuilder(layout Layout, rng *rand.Rand, seed uint64) (*Builder, error) {
	if rng == nil {
		return nil, fmt.Errorf("diorama: nil random source")
	}
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("diorama: %w", err)
	}
	return &Builder{layout: layout.Clone(), rng: rng, seed: seed}, nil
}

// Build generates the scene. Ground precedes river so the transparent water
// draws over it.
func (b *Builder) Build() *Scene {
	l := b.layout
	sc := NewScatterer(b.rng)

	n := 6 + len(l.Mountains) + 2*l.Trees.Count() + l.Rice.Count + l.Rocks.Count
	elements := make([]Element, 0, n)

	elements = append(elements, Ground(l.GroundSize), RiverPlane(l.River))
	for i, p := range l.Mountains {
		elements = append(elements, Mountain(i, p))
	}
	elements = append(elements, SunSphere(l.Sun))
	elements = append(elements, sc.Trees(l.Trees)...)
	house := HouseParts(l.House)
	elements = append(elements, house[0], house[1])
	elements = append(elements, FieldPlane(l.Field))
	elements = append(elements, sc.RiceStalks(l.Rice)...)
	elements = append(elements, sc.Rocks(l.Rocks)...)

	return newScene(l, elements, b.seed)
}

// Build is a shortcut for NewBuilder(layout, NewRand(seed), seed).Build().
// A zero seed is replaced by a clock-derived one, recorded in the metadata.
func Build(layout Layout, seed uint64) (*Scene, error) {
	seed = ResolveSeed(seed)
	b, err := NewBuilder(layout, NewRand(seed), seed)
	if err != nil {
		return nil, err
	}
	return b.Build(), nil
}
