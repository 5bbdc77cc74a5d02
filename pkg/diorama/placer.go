package diorama

import (
	"fmt"
	"math"
)

// Tessellation used by the fixed shapes.
const (
	mountainSegments = 8
	roofSegments     = 4
	foliageSegments  = 8
	trunkSegments    = 32
	sunSegments      = 16
	dodecahedron     = 12
	mountainAspect   = 1.8 // height / radius
)

// Unit tree: a trunk and a cone of foliage stacked on it. Scaling a tree
// multiplies every dimension and both heights.
const (
	trunkRadiusTop    = 0.4
	trunkRadiusBottom = 0.5
	trunkHeight       = 2.5
	trunkCenterY      = 1.2
	foliageRadius     = 1.4
	foliageHeight     = 3.0
	foliageCenterY    = 2.8
)

// flat lays a plane on the ground: planes are authored in the XY plane.
var flat = Vec3{X: -math.Pi / 2}

// Ground returns the square grass plane at y=0.
func Ground(size float64) Element {
	return Element{
		ID:       "ground",
		Category: CategoryGround,
		Shape:    ShapePlane,
		Geometry: Geometry{Width: size, Depth: size},
		Material: groundMaterial,
		Rotation: flat,
		Scale:    Unit,
	}
}

// RiverPlane returns the semi-transparent water band.
func RiverPlane(r River) Element {
	return Element{
		ID:       "river",
		Category: CategoryRiver,
		Shape:    ShapePlane,
		Geometry: Geometry{Width: r.Width, Depth: r.Depth},
		Material: riverMaterial,
		Position: Vec3{Y: r.Y, Z: r.Z},
		Rotation: flat,
		Scale:    Unit,
	}
}

// Mountain returns the i-th mountain cone. The cone is lifted by its radius,
// so its base sits slightly below ground and the apex reaches 1.9*size.
func Mountain(i int, p Peak) Element {
	return Element{
		ID:       fmt.Sprintf("mountain-%02d", i),
		Category: CategoryMountain,
		Shape:    ShapeCone,
		Geometry: Geometry{Radius: p.Size, Height: p.Size * mountainAspect, RadialSegments: mountainSegments},
		Material: mountainMaterial,
		Position: Vec3{X: p.X, Y: p.Size, Z: p.Z},
		Scale:    Unit,
	}
}

// SunSphere returns the unlit sun.
func SunSphere(s Sun) Element {
	return Element{
		ID:       "sun",
		Category: CategorySun,
		Shape:    ShapeSphere,
		Geometry: Geometry{Radius: s.Radius, RadialSegments: sunSegments, HeightSegments: sunSegments},
		Material: sunMaterial,
		Position: s.Position,
		Scale:    Unit,
	}
}

// HouseParts returns the box base resting on the ground and the pyramidal
// roof sitting on top of it.
func HouseParts(h House) [2]Element {
	base := Element{
		ID:       "house-base",
		Category: CategoryHouseBase,
		Shape:    ShapeBox,
		Geometry: Geometry{Width: h.Base.X, Height: h.Base.Y, Depth: h.Base.Z},
		Material: wallMaterial,
		Position: Vec3{X: h.X, Y: h.Base.Y / 2, Z: h.Z},
		Scale:    Unit,
	}
	roof := Element{
		ID:       "house-roof",
		Category: CategoryHouseRoof,
		Shape:    ShapeCone,
		Geometry: Geometry{Radius: h.RoofRadius, Height: h.RoofHeight, RadialSegments: roofSegments},
		Material: roofMaterial,
		Position: Vec3{X: h.X, Y: h.RoofCenterY(), Z: h.Z},
		Rotation: Vec3{Y: h.Yaw},
		Scale:    Unit,
	}
	return [2]Element{base, roof}
}

// FieldPlane returns the rice paddy lifted just above the ground.
func FieldPlane(f Field) Element {
	return Element{
		ID:       "field",
		Category: CategoryField,
		Shape:    ShapePlane,
		Geometry: Geometry{Width: f.Width, Depth: f.Depth},
		Material: fieldMaterial,
		Position: f.Center,
		Rotation: flat,
		Scale:    Unit,
	}
}

// Tree returns the trunk and foliage of tree i at (x, z) with the given scale.
func Tree(i int, x, z, scale float64) [2]Element {
	s := Vec3{X: scale, Y: scale, Z: scale}
	trunk := Element{
		ID:       fmt.Sprintf("tree-%02d-trunk", i),
		Category: CategoryTreeTrunk,
		Shape:    ShapeCylinder,
		Geometry: Geometry{
			RadiusTop:      trunkRadiusTop,
			RadiusBottom:   trunkRadiusBottom,
			Height:         trunkHeight,
			RadialSegments: trunkSegments,
		},
		Material: trunkMaterial,
		Position: Vec3{X: x, Y: trunkCenterY * scale, Z: z},
		Scale:    s,
	}
	foliage := Element{
		ID:       fmt.Sprintf("tree-%02d-foliage", i),
		Category: CategoryTreeFoliage,
		Shape:    ShapeCone,
		Geometry: Geometry{Radius: foliageRadius, Height: foliageHeight, RadialSegments: foliageSegments},
		Material: foliageMaterial,
		Position: Vec3{X: x, Y: foliageCenterY * scale, Z: z},
		Scale:    s,
	}
	return [2]Element{trunk, foliage}
}

// RiceStalk returns stalk i rising height units from (x, baseY, z). Every
// stalk is a unit line stretched by its scale, so all of them share one mesh.
func RiceStalk(i int, x, baseY, z, height float64) Element {
	return Element{
		ID:       fmt.Sprintf("rice-%03d", i),
		Category: CategoryRiceStalk,
		Shape:    ShapeLine,
		Geometry: Geometry{Height: 1},
		Material: riceMaterial,
		Position: Vec3{X: x, Y: baseY, Z: z},
		Scale:    Vec3{X: 1, Y: height, Z: 1},
	}
}

// Rock returns rock i: a unit dodecahedron scaled by scale whose center sits
// scale units above the ground.
func Rock(i int, x, z, scale float64) Element {
	return Element{
		ID:       fmt.Sprintf("rock-%02d", i),
		Category: CategoryRock,
		Shape:    ShapePolyhedron,
		Geometry: Geometry{Radius: 1, Faces: dodecahedron},
		Material: rockMaterial,
		Position: Vec3{X: x, Y: scale, Z: z},
		Scale:    Vec3{X: scale, Y: scale, Z: scale},
	}
}
