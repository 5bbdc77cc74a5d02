// Package diorama generates the riverside landscape scene as an immutable list
// of placed elements that a renderer can draw.
package diorama

import "math"

// ShapeKind identifies the primitive a renderer must tessellate for an element.
type ShapeKind string

const (
	ShapeCone       ShapeKind = "cone"
	ShapeCylinder   ShapeKind = "cylinder"
	ShapeBox        ShapeKind = "box"
	ShapePlane      ShapeKind = "plane"
	ShapeSphere     ShapeKind = "sphere"
	ShapeLine       ShapeKind = "line"
	ShapePolyhedron ShapeKind = "polyhedron"
)

// Category tags an element with the scenery it belongs to.
type Category string

const (
	CategoryGround      Category = "ground"
	CategoryRiver       Category = "river"
	CategoryMountain    Category = "mountain"
	CategorySun         Category = "sun"
	CategoryTreeTrunk   Category = "tree_trunk"
	CategoryTreeFoliage Category = "tree_foliage"
	CategoryHouseBase   Category = "house_base"
	CategoryHouseRoof   Category = "house_roof"
	CategoryField       Category = "field"
	CategoryRiceStalk   Category = "rice_stalk"
	CategoryRock        Category = "rock"
)

// Categories lists every category in emission order.
var Categories = []Category{
	CategoryGround,
	CategoryRiver,
	CategoryMountain,
	CategorySun,
	CategoryTreeTrunk,
	CategoryTreeFoliage,
	CategoryHouseBase,
	CategoryHouseRoof,
	CategoryField,
	CategoryRiceStalk,
	CategoryRock,
}

// Scattered reports whether elements of the category are placed from random samples.
func (c Category) Scattered() bool {
	switch c {
	case CategoryTreeTrunk, CategoryTreeFoliage, CategoryRiceStalk, CategoryRock:
		return true
	}
	return false
}

// Vec3 is a point or extent in world units.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Length returns the euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Unit is the identity scale.
var Unit = Vec3{X: 1, Y: 1, Z: 1}

// Geometry holds the shape parameters. Only the fields relevant to the
// element's ShapeKind are set.
//
//	plane:      Width (x), Depth (y before rotation)
//	box:        Width, Height, Depth
//	cone:       Radius, Height, RadialSegments
//	cylinder:   RadiusTop, RadiusBottom, Height, RadialSegments
//	sphere:     Radius, RadialSegments (width), HeightSegments
//	polyhedron: Radius, Faces
//	line:       Height (segment from local origin straight up)
type Geometry struct {
	Width          float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height         float64 `json:"height,omitempty" yaml:"height,omitempty"`
	Depth          float64 `json:"depth,omitempty" yaml:"depth,omitempty"`
	Radius         float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
	RadiusTop      float64 `json:"radius_top,omitempty" yaml:"radius_top,omitempty"`
	RadiusBottom   float64 `json:"radius_bottom,omitempty" yaml:"radius_bottom,omitempty"`
	RadialSegments int     `json:"radial_segments,omitempty" yaml:"radial_segments,omitempty"`
	HeightSegments int     `json:"height_segments,omitempty" yaml:"height_segments,omitempty"`
	Faces          int     `json:"faces,omitempty" yaml:"faces,omitempty"`
}

// Element is one drawable shape with its material and world transform.
// Elements are values: a Scene hands out copies, never references.
type Element struct {
	ID       string    `json:"id" yaml:"id"`
	Category Category  `json:"category" yaml:"category"`
	Shape    ShapeKind `json:"shape" yaml:"shape"`
	Geometry Geometry  `json:"geometry" yaml:"geometry"`
	Material Material  `json:"material" yaml:"material"`
	Position Vec3      `json:"position" yaml:"position"`
	Rotation Vec3      `json:"rotation" yaml:"rotation"` // Euler radians, XYZ order
	Scale    Vec3      `json:"scale" yaml:"scale"`
}

// Endpoints returns the world-space start and end of a line element.
// For other shapes both points equal the position.
func (e Element) Endpoints() (Vec3, Vec3) {
	if e.Shape != ShapeLine {
		return e.Position, e.Position
	}
	return e.Position, e.Position.Add(Vec3{Y: e.length()})
}

// length is the scaled height of a line.
func (e Element) length() float64 {
	return e.Geometry.Height * e.Scale.Y
}

// Extent returns the half-size of the element's axis-aligned footprint
// before rotation, used for scene bounds.
func (e Element) Extent() Vec3 {
	g := e.Geometry
	var h Vec3
	switch e.Shape {
	case ShapePlane:
		// Planes are laid flat: local y becomes world z.
		h = Vec3{X: g.Width / 2, Z: g.Depth / 2}
	case ShapeBox:
		h = Vec3{X: g.Width / 2, Y: g.Height / 2, Z: g.Depth / 2}
	case ShapeCone, ShapeCylinder:
		r := math.Max(g.Radius, math.Max(g.RadiusTop, g.RadiusBottom))
		h = Vec3{X: r, Y: g.Height / 2, Z: r}
	case ShapeSphere, ShapePolyhedron:
		h = Vec3{X: g.Radius, Y: g.Radius, Z: g.Radius}
	case ShapeLine:
		h = Vec3{Y: g.Height / 2}
	}
	return Vec3{X: h.X * e.Scale.X, Y: h.Y * e.Scale.Y, Z: h.Z * e.Scale.Z}
}

// Bounds returns the element's world-space box, ignoring rotation.
func (e Element) Bounds() Bounds {
	h := e.Extent()
	c := e.Position
	if e.Shape == ShapeLine {
		c.Y += e.length() / 2
	}
	return Bounds{
		Min: Vec3{X: c.X - h.X, Y: c.Y - h.Y, Z: c.Z - h.Z},
		Max: Vec3{X: c.X + h.X, Y: c.Y + h.Y, Z: c.Z + h.Z},
	}
}
