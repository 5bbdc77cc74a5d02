package mesh

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/diorama/pkg/diorama"
)

// builder accumulates triangles.
type builder struct {
	vs []Vertex
}

func (b *builder) tri(p0, p1, p2, n0, n1, n2 vec3) {
	b.vs = append(b.vs, Vertex{p0, n0}, Vertex{p1, n1}, Vertex{p2, n2})
}

func (b *builder) flat(p0, p1, p2 vec3) {
	n := faceNormal(p0, p1, p2)
	b.tri(p0, p1, p2, n, n, n)
}

func (b *builder) mesh(p Primitive) *Mesh {
	return &Mesh{Vertices: b.vs, Primitive: p, Bounds: computeBounds(b.vs)}
}

// Build tessellates an element in its local space. Position, rotation and
// scale are left to the model matrix.
func Build(e diorama.Element) (*Mesh, error) {
	g := e.Geometry
	switch e.Shape {
	case diorama.ShapePlane:
		return Plane(float32(g.Width), float32(g.Depth)), nil
	case diorama.ShapeBox:
		return Box(float32(g.Width), float32(g.Height), float32(g.Depth)), nil
	case diorama.ShapeCone:
		return Cone(float32(g.Radius), float32(g.Height), segments(g.RadialSegments, 32), e.Material.FlatShading), nil
	case diorama.ShapeCylinder:
		return Cylinder(float32(g.RadiusTop), float32(g.RadiusBottom), float32(g.Height), segments(g.RadialSegments, 32), e.Material.FlatShading), nil
	case diorama.ShapeSphere:
		return Sphere(float32(g.Radius), segments(g.RadialSegments, 32), segments(g.HeightSegments, 16)), nil
	case diorama.ShapePolyhedron:
		if g.Faces != 12 {
			return nil, fmt.Errorf("mesh: unsupported polyhedron with %d faces", g.Faces)
		}
		return Dodecahedron(float32(g.Radius)), nil
	case diorama.ShapeLine:
		return Line(float32(g.Height)), nil
	}
	return nil, fmt.Errorf("mesh: unknown shape %q", e.Shape)
}

func segments(n, def int) int {
	if n < 3 {
		return def
	}
	return n
}

// Plane returns a w x h quad in the XY plane facing +Z.
func Plane(w, h float32) *Mesh {
	var b builder
	b.quad(vec3{0, 0, 1}, vec3{1, 0, 0}, vec3{0, 1, 0}, vec3{w / 2, h / 2, 0}, vec3{})
	return b.mesh(Triangles)
}

// quad adds a face with normal n spanned by unit axes u and v (u x v == n).
// half holds the half extents along each world axis and center the face center.
func (b *builder) quad(n, u, v, half, center vec3) {
	du := mul(u, half)
	dv := mul(v, half)
	p0 := sub(sub(center, du), dv)
	p1 := sub(add(center, du), dv)
	p2 := add(add(center, du), dv)
	p3 := add(sub(center, du), dv)
	b.tri(p0, p1, p2, n, n, n)
	b.tri(p0, p2, p3, n, n, n)
}

var boxFaces = [6][3]vec3{
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
}

// Box returns a cuboid centered on the origin.
func Box(w, h, d float32) *Mesh {
	var b builder
	half := vec3{w / 2, h / 2, d / 2}
	for _, f := range boxFaces {
		b.quad(f[0], f[1], f[2], half, mul(f[0], half))
	}
	return b.mesh(Triangles)
}

// Cone returns a closed cone centered on the origin with its apex at +h/2.
func Cone(radius, h float32, segs int, flat bool) *Mesh {
	return Cylinder(0, radius, h, segs, flat)
}

// Cylinder returns a closed frustum centered on the origin. A zero top
// radius makes it a cone.
func Cylinder(rTop, rBottom, h float32, segs int, flat bool) *Mesh {
	var b builder
	hh := h / 2
	slope := (rBottom - rTop) / h
	ring := func(r, y, theta float32) vec3 {
		s, c := math32.Sincos(theta)
		return vec3{r * s, y, r * c}
	}
	side := func(theta float32) vec3 {
		s, c := math32.Sincos(theta)
		return normalize(vec3{s, slope, c})
	}

	step := 2 * math32.Pi / float32(segs)
	for i := 0; i < segs; i++ {
		t0 := float32(i) * step
		t1 := float32(i+1) * step
		bot0, bot1 := ring(rBottom, -hh, t0), ring(rBottom, -hh, t1)
		top0, top1 := ring(rTop, hh, t0), ring(rTop, hh, t1)

		if flat {
			b.flat(bot0, bot1, top1)
			if rTop > 0 {
				b.flat(bot0, top1, top0)
			}
		} else {
			n0, n1 := side(t0), side(t1)
			if rTop > 0 {
				b.tri(bot0, bot1, top1, n0, n1, n1)
				b.tri(bot0, top1, top0, n0, n1, n0)
			} else {
				// Apex normal is averaged across the segment.
				na := side((t0 + t1) / 2)
				b.tri(bot0, bot1, top1, n0, n1, na)
			}
		}

		down := vec3{0, -1, 0}
		b.tri(vec3{0, -hh, 0}, bot1, bot0, down, down, down)
		if rTop > 0 {
			up := vec3{0, 1, 0}
			b.tri(vec3{0, hh, 0}, top0, top1, up, up, up)
		}
	}
	return b.mesh(Triangles)
}

// Sphere returns a UV sphere with smooth normals.
func Sphere(radius float32, widthSegs, heightSegs int) *Mesh {
	var b builder
	point := func(ix, iy int) vec3 {
		phi := float32(ix) / float32(widthSegs) * 2 * math32.Pi
		theta := float32(iy) / float32(heightSegs) * math32.Pi
		sp, cp := math32.Sincos(phi)
		st, ct := math32.Sincos(theta)
		return vec3{-radius * cp * st, radius * ct, radius * sp * st}
	}
	for iy := 0; iy < heightSegs; iy++ {
		for ix := 0; ix < widthSegs; ix++ {
			a := point(ix+1, iy)
			bb := point(ix, iy)
			c := point(ix, iy+1)
			d := point(ix+1, iy+1)
			if iy != 0 {
				b.tri(a, bb, d, normalize(a), normalize(bb), normalize(d))
			}
			if iy != heightSegs-1 {
				b.tri(bb, c, d, normalize(bb), normalize(c), normalize(d))
			}
		}
	}
	return b.mesh(Triangles)
}

// Line returns a single segment from the origin straight up.
func Line(h float32) *Mesh {
	up := vec3{0, 1, 0}
	vs := []Vertex{{vec3{}, up}, {vec3{0, h, 0}, up}}
	return &Mesh{Vertices: vs, Primitive: Lines, Bounds: computeBounds(vs)}
}
