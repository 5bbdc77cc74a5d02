package mesh

import "github.com/chewxy/math32"

var (
	phi    = (1 + math32.Sqrt(5)) / 2
	invPhi = 1 / phi

	dodecaVertices = []vec3{
		{-1, -1, -1}, {-1, -1, 1}, {-1, 1, -1}, {-1, 1, 1},
		{1, -1, -1}, {1, -1, 1}, {1, 1, -1}, {1, 1, 1},
		{0, -invPhi, -phi}, {0, -invPhi, phi}, {0, invPhi, -phi}, {0, invPhi, phi},
		{-invPhi, -phi, 0}, {-invPhi, phi, 0}, {invPhi, -phi, 0}, {invPhi, phi, 0},
		{-phi, 0, -invPhi}, {phi, 0, -invPhi}, {-phi, 0, invPhi}, {phi, 0, invPhi},
	}

	// Three triangles per pentagonal face.
	dodecaIndices = []int{
		3, 11, 7, 3, 7, 15, 3, 15, 13,
		7, 19, 17, 7, 17, 6, 7, 6, 15,
		17, 4, 8, 17, 8, 10, 17, 10, 6,
		8, 0, 16, 8, 16, 2, 8, 2, 10,
		0, 12, 1, 0, 1, 18, 0, 18, 16,
		6, 10, 2, 6, 2, 13, 6, 13, 15,
		2, 16, 18, 2, 18, 3, 2, 3, 13,
		18, 1, 9, 18, 9, 11, 18, 11, 3,
		4, 14, 12, 4, 12, 0, 4, 0, 8,
		11, 9, 5, 11, 5, 19, 11, 19, 7,
		19, 5, 14, 19, 14, 4, 19, 4, 17,
		1, 12, 14, 1, 14, 5, 1, 5, 9,
	}
)

// Dodecahedron returns a flat-shaded dodecahedron inscribed in a sphere of
// the given radius.
func Dodecahedron(radius float32) *Mesh {
	var b builder
	for i := 0; i+2 < len(dodecaIndices); i += 3 {
		p0 := scale(normalize(dodecaVertices[dodecaIndices[i]]), radius)
		p1 := scale(normalize(dodecaVertices[dodecaIndices[i+1]]), radius)
		p2 := scale(normalize(dodecaVertices[dodecaIndices[i+2]]), radius)
		// Keep every face wound outwards.
		if dot(faceNormal(p0, p1, p2), add(add(p0, p1), p2)) < 0 {
			p1, p2 = p2, p1
		}
		b.flat(p0, p1, p2)
	}
	return b.mesh(Triangles)
}
