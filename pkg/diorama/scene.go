package diorama

import (
	"math"
	"time"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Vec3 `json:"min" yaml:"min"`
	Max Vec3 `json:"max" yaml:"max"`
}

// Center returns the midpoint of the box.
func (b Bounds) Center() Vec3 {
	return Vec3{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2, Z: (b.Min.Z + b.Max.Z) / 2}
}

// Metadata describes one generation run.
type Metadata struct {
	Seed        uint64    `json:"seed" yaml:"seed"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Bounds      Bounds    `json:"bounds" yaml:"bounds"`
}

// Scene is the finished, read-only output of a Builder. It is safe for
// concurrent readers.
type Scene struct {
	elements []Element
	groups   map[Category][]int
	layout   Layout
	meta     Metadata
}

func newScene(layout Layout, elements []Element, seed uint64) *Scene {
	s := &Scene{
		elements: elements,
		groups:   make(map[Category][]int),
		layout:   layout.Clone(),
	}
	for i, e := range elements {
		s.groups[e.Category] = append(s.groups[e.Category], i)
	}
	s.meta = Metadata{
		Seed:        seed,
		GeneratedAt: time.Now().UTC(),
		Bounds:      computeBounds(elements),
	}
	return s
}

// Len returns the number of elements.
func (s *Scene) Len() int {
	return len(s.elements)
}

// At returns a copy of element i.
func (s *Scene) At(i int) Element {
	return s.elements[i]
}

// Elements returns a copy of all elements in emission order.
func (s *Scene) Elements() []Element {
	return append([]Element(nil), s.elements...)
}

// ByCategory returns copies of the elements of one category.
func (s *Scene) ByCategory(c Category) []Element {
	idx := s.groups[c]
	out := make([]Element, len(idx))
	for i, j := range idx {
		out[i] = s.elements[j]
	}
	return out
}

// Count returns how many elements belong to c.
func (s *Scene) Count(c Category) int {
	return len(s.groups[c])
}

// Counts returns the element count of every category.
func (s *Scene) Counts() map[Category]int {
	out := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		out[c] = len(s.groups[c])
	}
	return out
}

// Deterministic returns the elements that do not depend on the random source.
func (s *Scene) Deterministic() []Element {
	var out []Element
	for _, e := range s.elements {
		if !e.Category.Scattered() {
			out = append(out, e)
		}
	}
	return out
}

// Layout returns a copy of the layout the scene was built from.
func (s *Scene) Layout() Layout {
	return s.layout.Clone()
}

// Environment returns the sky, lights and camera of the scene.
func (s *Scene) Environment() Environment {
	return s.layout.Environment
}

// Metadata returns generation details.
func (s *Scene) Metadata() Metadata {
	return s.meta
}

// Snapshot is the serializable form of a Scene.
type Snapshot struct {
	Metadata    Metadata              `json:"metadata" yaml:"metadata"`
	Environment Environment           `json:"environment" yaml:"environment"`
	Elements    []Element             `json:"elements" yaml:"elements"`
	Groups      map[Category][]string `json:"groups" yaml:"groups"`
}

// Snapshot copies the scene into a form ready for JSON or YAML encoding.
func (s *Scene) Snapshot() Snapshot {
	groups := make(map[Category][]string, len(s.groups))
	for c, idx := range s.groups {
		ids := make([]string, len(idx))
		for i, j := range idx {
			ids[i] = s.elements[j].ID
		}
		groups[c] = ids
	}
	return Snapshot{
		Metadata:    s.meta,
		Environment: s.layout.Environment,
		Elements:    s.Elements(),
		Groups:      groups,
	}
}

// computeBounds calculates the AABB of all elements, ignoring rotation.
func computeBounds(elements []Element) Bounds {
	if len(elements) == 0 {
		return Bounds{}
	}
	minV := Vec3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
	maxV := Vec3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}

	for _, e := range elements {
		b := e.Bounds()
		minV.X = math.Min(minV.X, b.Min.X)
		minV.Y = math.Min(minV.Y, b.Min.Y)
		minV.Z = math.Min(minV.Z, b.Min.Z)
		maxV.X = math.Max(maxV.X, b.Max.X)
		maxV.Y = math.Max(maxV.Y, b.Max.Y)
		maxV.Z = math.Max(maxV.Z, b.Max.Z)
	}
	return Bounds{Min: minV, Max: maxV}
}
