package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/pkg/diorama"
)

const eps = 1e-3

func near(a, b float32) bool {
	d := a - b
	return d < eps && d > -eps
}

func TestNewMatchesView(t *testing.T) {
	view := diorama.DefaultEnvironment().Camera
	c := New(view, 1280, 720)

	pos := c.Position()
	if !near(pos.X(), 60) || !near(pos.Y(), 50) || !near(pos.Z(), 100) {
		t.Errorf("expected position (60, 50, 100), got %v", pos)
	}
	if !near(c.Aspect, 1280.0/720.0) {
		t.Errorf("expected aspect 1.777, got %f", c.Aspect)
	}
	if c.FOV != 60 {
		t.Errorf("expected fov 60, got %f", c.FOV)
	}
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	c := New(diorama.DefaultEnvironment().Camera, 800, 600)

	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !near(p.X(), 0) || !near(p.Y(), 0) {
		t.Errorf("target should be centered in view space, got %v", p)
	}
	if !near(p.Z(), -c.Distance) {
		t.Errorf("expected target at z=%f, got %f", -c.Distance, p.Z())
	}
}

func TestResize(t *testing.T) {
	c := New(diorama.DefaultEnvironment().Camera, 800, 600)
	before := c.Position()

	c.Resize(1920, 1080)
	if !near(c.Aspect, 1920.0/1080.0) {
		t.Errorf("expected aspect 1.777, got %f", c.Aspect)
	}
	if c.Position() != before {
		t.Error("resize should not move the camera")
	}

	c.Resize(0, 0)
	if !near(c.Aspect, 1920.0/1080.0) {
		t.Errorf("zero size should keep aspect, got %f", c.Aspect)
	}
}

func TestDragClampsPitch(t *testing.T) {
	c := New(diorama.DefaultEnvironment().Camera, 800, 600)
	c.Damping = 1

	c.HandleDrag(0, 100000)
	c.Update()
	if c.Pitch != c.MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", c.MaxPitch, c.Pitch)
	}

	c.HandleDrag(0, -100000)
	c.Update()
	if c.Pitch != c.MinPitch {
		t.Errorf("expected pitch clamped to %f, got %f", c.MinPitch, c.Pitch)
	}
}

func TestZoomClampsDistance(t *testing.T) {
	c := New(diorama.DefaultEnvironment().Camera, 800, 600)
	c.Damping = 1

	for i := 0; i < 100; i++ {
		c.HandleZoom(5)
		c.Update()
	}
	if c.Distance != c.MinDistance {
		t.Errorf("expected distance %f, got %f", c.MinDistance, c.Distance)
	}

	for i := 0; i < 100; i++ {
		c.HandleZoom(-5)
		c.Update()
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("expected distance %f, got %f", c.MaxDistance, c.Distance)
	}
}

func TestDampingSettles(t *testing.T) {
	c := New(diorama.DefaultEnvironment().Camera, 800, 600)
	start := c.Yaw

	c.HandleDrag(100, 0)
	if !c.Update() {
		t.Fatal("expected first update to move the camera")
	}
	first := start - c.Yaw

	moved := 0
	for c.Update() {
		moved++
		if moved > 10000 {
			t.Fatal("damping never settled")
		}
	}

	total := start - c.Yaw
	if !near(total, 100*c.DragSensitivity) {
		t.Errorf("expected total yaw change %f, got %f", 100*c.DragSensitivity, total)
	}
	if first >= total {
		t.Errorf("damped first step %f should be smaller than total %f", first, total)
	}
}

func TestAutoRotate(t *testing.T) {
	c := New(diorama.DefaultEnvironment().Camera, 800, 600)
	c.AutoRotate = 1
	start := c.Yaw

	for i := 0; i < 60; i++ {
		if !c.Update() {
			t.Fatal("auto-rotating camera should keep moving")
		}
	}
	if c.Yaw >= start {
		t.Errorf("expected yaw to decrease, got %f from %f", c.Yaw, start)
	}
}

func TestFitToBounds(t *testing.T) {
	c := New(diorama.DefaultEnvironment().Camera, 800, 600)
	c.FitToBounds(diorama.Bounds{
		Min: diorama.Vec3{X: -125, Y: 0, Z: -125},
		Max: diorama.Vec3{X: 125, Y: 86, Z: 125},
	})

	if c.Target != (mgl32.Vec3{0, 43, 0}) {
		t.Errorf("expected target (0, 43, 0), got %v", c.Target)
	}
	if !near(c.Distance, 150) {
		t.Errorf("expected distance 150, got %f", c.Distance)
	}
}

func TestApplyControls(t *testing.T) {
	c := New(diorama.DefaultEnvironment().Camera, 800, 600)
	maxDist := c.MaxDistance

	c.Apply(Controls{Damping: 1, DragSensitivity: 0.01, ZoomSensitivity: 0.2, MinDistance: 150})
	if c.Damping != 1 || c.DragSensitivity != 0.01 || c.ZoomSensitivity != 0.2 {
		t.Errorf("sensitivities not applied: %+v", c)
	}
	if c.MaxDistance != maxDist {
		t.Errorf("zero max distance should keep %f, got %f", maxDist, c.MaxDistance)
	}
	if c.Distance != 150 {
		t.Errorf("expected distance pulled out to 150, got %f", c.Distance)
	}

	c.Apply(Controls{Damping: 1, MinDistance: 10, MaxDistance: 20})
	if c.Distance != 20 {
		t.Errorf("expected distance pulled in to 20, got %f", c.Distance)
	}
}
