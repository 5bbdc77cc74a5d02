// Package camera provides the orbit camera used to look at the diorama.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/pkg/diorama"
)

// OrbitCamera orbits around a target point.
type OrbitCamera struct {
	Target mgl32.Vec3

	// Spherical coordinates around Target
	Distance float32
	Pitch    float32 // elevation above the XZ plane, radians
	Yaw      float32 // rotation around Y, radians; 0 looks down -Z

	// Projection
	FOV    float32 // vertical, degrees
	Near   float32
	Far    float32
	Aspect float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Damping is the fraction of pending motion applied per Update. 1 applies
	// input immediately.
	Damping float32

	// AutoRotate spins the camera around the target; 1 is one turn per minute
	// at 60 updates per second.
	AutoRotate float32

	yawDelta   float32
	pitchDelta float32
	zoomDelta  float32
}

// New creates a camera looking from view.Position at view.Target.
func New(view diorama.CameraView, width, height int) *OrbitCamera {
	c := &OrbitCamera{
		FOV:             float32(view.FOV),
		Near:            float32(view.Near),
		Far:             float32(view.Far),
		Aspect:          1,
		MinDistance:     5,
		MaxDistance:     float32(view.Far) / 2,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		Damping:         0.05,
	}
	c.Resize(width, height)
	c.LookFrom(toVec(view.Position), toVec(view.Target))
	return c
}

// Controls tunes how a camera answers input. Zero distances keep the
// camera's own limits.
type Controls struct {
	Damping         float32
	DragSensitivity float32
	ZoomSensitivity float32
	AutoRotate      float32
	MinDistance     float32
	MaxDistance     float32
}

// Apply copies ctl onto the camera and pulls the distance back inside the
// new limits.
func (c *OrbitCamera) Apply(ctl Controls) {
	c.Damping = ctl.Damping
	c.DragSensitivity = ctl.DragSensitivity
	c.ZoomSensitivity = ctl.ZoomSensitivity
	c.AutoRotate = ctl.AutoRotate
	if ctl.MinDistance > 0 {
		c.MinDistance = ctl.MinDistance
	}
	if ctl.MaxDistance > c.MinDistance {
		c.MaxDistance = ctl.MaxDistance
	}
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

func toVec(v diorama.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// LookFrom places the camera at eye looking at target.
func (c *OrbitCamera) LookFrom(eye, target mgl32.Vec3) {
	c.Target = target
	off := eye.Sub(target)
	c.Distance = off.Len()
	if c.Distance == 0 {
		c.Distance = c.MinDistance
		return
	}
	c.Pitch = math32.Asin(off.Y() / c.Distance)
	c.Yaw = math32.Atan2(off.X(), off.Z())
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	sp, cp := math32.Sincos(c.Pitch)
	sy, cy := math32.Sincos(c.Yaw)
	return c.Target.Add(mgl32.Vec3{
		c.Distance * cp * sy,
		c.Distance * sp,
		c.Distance * cp * cy,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection.
func (c *OrbitCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// Resize recomputes the aspect ratio for a new viewport.
func (c *OrbitCamera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// HandleDrag queues an orbit from a pointer drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.yawDelta -= deltaX * c.DragSensitivity
	c.pitchDelta += deltaY * c.DragSensitivity
}

// HandleZoom queues a dolly from a scroll wheel delta; positive zooms in.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.zoomDelta -= delta * c.ZoomSensitivity
}

// Update applies a damped share of the queued motion and reports whether
// the camera moved.
func (c *OrbitCamera) Update() bool {
	if c.AutoRotate != 0 {
		c.yawDelta -= 2 * math32.Pi / 60 / 60 * c.AutoRotate
	}

	f := c.Damping
	if f <= 0 || f > 1 {
		f = 1
	}
	dy, dp, dz := c.yawDelta*f, c.pitchDelta*f, c.zoomDelta*f
	c.yawDelta -= dy
	c.pitchDelta -= dp
	c.zoomDelta -= dz

	const settle = 1e-6
	if math32.Abs(dy) < settle && math32.Abs(dp) < settle && math32.Abs(dz) < settle {
		c.yawDelta, c.pitchDelta, c.zoomDelta = 0, 0, 0
		return false
	}

	c.Yaw += dy
	c.Pitch = clamp(c.Pitch+dp, c.MinPitch, c.MaxPitch)
	c.Distance = clamp(c.Distance*(1+dz), c.MinDistance, c.MaxDistance)
	return true
}

// FitToBounds centers the camera on b and backs off far enough to see it.
func (c *OrbitCamera) FitToBounds(b diorama.Bounds) {
	center := b.Center()
	c.Target = toVec(center)

	sizeX := float32(b.Max.X - b.Min.X)
	sizeZ := float32(b.Max.Z - b.Min.Z)
	maxSize := math32.Max(sizeX, sizeZ)

	c.Distance = clamp(maxSize*0.6, c.MinDistance, c.MaxDistance)
	c.Pitch = 0.6
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
