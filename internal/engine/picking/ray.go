// Package picking provides ray casting and element picking utilities.
package picking

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/pkg/diorama"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized direction
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// BoundsAABB converts scene bounds, grown by pad on every side so that flat
// planes and lines have something to hit.
func BoundsAABB(b diorama.Bounds, pad float32) AABB {
	return AABB{
		Min: mgl32.Vec3{float32(b.Min.X) - pad, float32(b.Min.Y) - pad, float32(b.Min.Z) - pad},
		Max: mgl32.Vec3{float32(b.Max.X) + pad, float32(b.Max.Y) + pad, float32(b.Max.Z) + pad},
	}
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj mgl32.Mat4) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // Flip Y

	near := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(invViewProj, mgl32.Vec4{ndcX, ndcY, 1, 1})

	dir := far.Sub(near)
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	return Ray{Origin: near, Direction: dir}
}

func unproject(inv mgl32.Mat4, p mgl32.Vec4) mgl32.Vec3 {
	w := inv.Mul4x1(p)
	if w[3] != 0 {
		return w.Vec3().Mul(1 / w[3])
	}
	return w.Vec3()
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)

	for i := 0; i < 3; i++ {
		if r.Direction[i] == 0 {
			if r.Origin[i] < box.Min[i] || r.Origin[i] > box.Max[i] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[i] - r.Origin[i]) / r.Direction[i]
		t2 := (box.Max[i] - r.Origin[i]) / r.Direction[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Hit is the element a ray struck first.
type Hit struct {
	Index    int
	Element  diorama.Element
	Distance float32
	Point    mgl32.Vec3
}

// DefaultPadding widens element boxes for picking.
const DefaultPadding = 0.05

// Pick returns the nearest element whose padded box the ray crosses.
func Pick(s *diorama.Scene, r Ray, pad float32) (Hit, bool) {
	best := Hit{Index: -1, Distance: math32.Inf(1)}
	for i := 0; i < s.Len(); i++ {
		e := s.At(i)
		t, ok := r.IntersectAABB(BoundsAABB(e.Bounds(), pad))
		if ok && t < best.Distance {
			best = Hit{Index: i, Element: e, Distance: t, Point: r.At(t)}
		}
	}
	return best, best.Index >= 0
}
