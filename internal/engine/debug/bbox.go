package debug

import (
	"github.com/Faultbox/diorama/internal/engine/mesh"
	"github.com/Faultbox/diorama/pkg/diorama"
)

// BoundsWireframeVertexCount is the number of vertices of a box wireframe (12 edges × 2).
const BoundsWireframeVertexCount = 24

// DefaultBoundsPadding keeps the wireframe off the ground plane edges.
const DefaultBoundsPadding = 1.0

// BoundsWireframe returns a line mesh outlining b, expanded by padding on
// every side. The mesh is in world space; draw it with an identity model.
func BoundsWireframe(b diorama.Bounds, padding float32) *mesh.Mesh {
	lo := [3]float32{float32(b.Min.X) - padding, float32(b.Min.Y) - padding, float32(b.Min.Z) - padding}
	hi := [3]float32{float32(b.Max.X) + padding, float32(b.Max.Y) + padding, float32(b.Max.Z) + padding}

	corner := func(x, y, z int) [3]float32 {
		pick := func(axis, bit int) float32 {
			if bit == 0 {
				return lo[axis]
			}
			return hi[axis]
		}
		return [3]float32{pick(0, x), pick(1, y), pick(2, z)}
	}

	edges := [12][2][3]int{
		// Bottom face
		{{0, 0, 0}, {1, 0, 0}}, {{1, 0, 0}, {1, 0, 1}}, {{1, 0, 1}, {0, 0, 1}}, {{0, 0, 1}, {0, 0, 0}},
		// Top face
		{{0, 1, 0}, {1, 1, 0}}, {{1, 1, 0}, {1, 1, 1}}, {{1, 1, 1}, {0, 1, 1}}, {{0, 1, 1}, {0, 1, 0}},
		// Vertical edges
		{{0, 0, 0}, {0, 1, 0}}, {{1, 0, 0}, {1, 1, 0}}, {{1, 0, 1}, {1, 1, 1}}, {{0, 0, 1}, {0, 1, 1}},
	}

	up := [3]float32{0, 1, 0}
	m := &mesh.Mesh{Primitive: mesh.Lines, Vertices: make([]mesh.Vertex, 0, BoundsWireframeVertexCount)}
	for _, e := range edges {
		for _, c := range e {
			m.Vertices = append(m.Vertices, mesh.Vertex{Position: corner(c[0], c[1], c[2]), Normal: up})
		}
	}
	m.Bounds = mesh.Bounds{Min: lo, Max: hi}
	return m
}
