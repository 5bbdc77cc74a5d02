package mesh

import "github.com/Faultbox/diorama/pkg/diorama"

// Key identifies the tessellation of an element. Elements with equal keys
// share one mesh and differ only in their model matrix.
type Key struct {
	Shape    diorama.ShapeKind
	Geometry diorama.Geometry
	Flat     bool
}

// KeyOf returns the mesh key of e.
func KeyOf(e diorama.Element) Key {
	return Key{Shape: e.Shape, Geometry: e.Geometry, Flat: e.Material.FlatShading}
}

// Library tessellates every element of a scene once per distinct key.
type Library struct {
	Meshes []*Mesh
	// Index maps a scene element index to its entry in Meshes.
	Index []int
}

// NewLibrary builds the meshes of all scene elements.
func NewLibrary(s *diorama.Scene) (*Library, error) {
	lib := &Library{Index: make([]int, s.Len())}
	seen := make(map[Key]int)
	for i := 0; i < s.Len(); i++ {
		e := s.At(i)
		k := KeyOf(e)
		if j, ok := seen[k]; ok {
			lib.Index[i] = j
			continue
		}
		m, err := Build(e)
		if err != nil {
			return nil, err
		}
		seen[k] = len(lib.Meshes)
		lib.Index[i] = len(lib.Meshes)
		lib.Meshes = append(lib.Meshes, m)
	}
	return lib, nil
}

// For returns the mesh of scene element i.
func (l *Library) For(i int) *Mesh {
	return l.Meshes[l.Index[i]]
}

// VertexCount returns the total vertices held by the library.
func (l *Library) VertexCount() int {
	n := 0
	for _, m := range l.Meshes {
		n += len(m.Vertices)
	}
	return n
}
