// Package mesh tessellates diorama elements into vertex data for GPU upload.
package mesh

// Vertex is a mesh vertex with position and normal.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Primitive selects how the vertex list is assembled.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
)

// Mesh holds non-indexed vertex data in the element's local space.
type Mesh struct {
	Vertices  []Vertex
	Primitive Primitive
	Bounds    Bounds
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// TriangleCount returns the number of triangles, or 0 for line meshes.
func (m *Mesh) TriangleCount() int {
	if m.Primitive != Triangles {
		return 0
	}
	return len(m.Vertices) / 3
}

// Floats interleaves positions and normals as x,y,z,nx,ny,nz per vertex.
func (m *Mesh) Floats() []float32 {
	out := make([]float32, 0, len(m.Vertices)*6)
	for _, v := range m.Vertices {
		out = append(out, v.Position[0], v.Position[1], v.Position[2], v.Normal[0], v.Normal[1], v.Normal[2])
	}
	return out
}

func computeBounds(vs []Vertex) Bounds {
	b := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	if len(vs) == 0 {
		return Bounds{}
	}
	for _, v := range vs {
		for i := 0; i < 3; i++ {
			if v.Position[i] < b.Min[i] {
				b.Min[i] = v.Position[i]
			}
			if v.Position[i] > b.Max[i] {
				b.Max[i] = v.Position[i]
			}
		}
	}
	return b
}
