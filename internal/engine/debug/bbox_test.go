package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/diorama/internal/engine/mesh"
	"github.com/Faultbox/diorama/pkg/diorama"
)

func TestBoundsWireframe(t *testing.T) {
	b := diorama.Bounds{
		Min: diorama.Vec3{X: -125, Y: 0, Z: -125},
		Max: diorama.Vec3{X: 125, Y: 86, Z: 125},
	}
	m := BoundsWireframe(b, 1)

	require.Len(t, m.Vertices, BoundsWireframeVertexCount)
	assert.Equal(t, mesh.Lines, m.Primitive)
	assert.Equal(t, [3]float32{-126, -1, -126}, m.Bounds.Min)
	assert.Equal(t, [3]float32{126, 87, 126}, m.Bounds.Max)

	for i := 0; i < len(m.Vertices); i += 2 {
		a, c := m.Vertices[i].Position, m.Vertices[i+1].Position
		differ := 0
		for k := 0; k < 3; k++ {
			if a[k] != c[k] {
				differ++
			}
		}
		assert.Equal(t, 1, differ, "edge %d should run along one axis", i/2)
	}
}
