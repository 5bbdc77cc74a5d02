package viewer

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/diorama/internal/config"
	"github.com/Faultbox/diorama/internal/engine/camera"
	"github.com/Faultbox/diorama/internal/engine/frame"
	"github.com/Faultbox/diorama/internal/engine/input"
	"github.com/Faultbox/diorama/internal/engine/picking"
	"github.com/Faultbox/diorama/pkg/diorama"
)

// Action is a request from input that needs resources the controller does
// not own.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionScreenshot
	ActionReload // scene replaced, GPU meshes must be re-uploaded
	ActionToggleBounds
	ActionInspect // an element was picked, see Picked
)

// Controller owns the scene, the camera and the frame counter. It holds no
// GPU state so it can be driven from tests.
type Controller struct {
	layout   diorama.Layout
	controls config.ControlsConfig

	scene    *diorama.Scene
	camera   *camera.OrbitCamera
	viewport frame.Viewport
	drag     input.Drag
	tick     uint64
	picked   picking.Hit
	hasPick  bool

	// NextSeed picks the seed for a regenerated scene; 0 means time-based.
	NextSeed func() uint64
	// Debug enables right-click element inspection.
	Debug bool
}

// NewController builds the first scene and points the camera at it.
func NewController(layout diorama.Layout, seed uint64, controls config.ControlsConfig, vp frame.Viewport) (*Controller, error) {
	c := &Controller{
		layout:   layout,
		controls: controls,
		viewport: vp,
		NextSeed: func() uint64 { return 0 },
	}
	if err := c.generate(seed); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) generate(seed uint64) error {
	s, err := diorama.Build(c.layout, seed)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	c.scene = s
	c.hasPick = false
	c.resetCamera()
	return nil
}

func (c *Controller) resetCamera() {
	cam := camera.New(c.scene.Environment().Camera, c.viewport.Width, c.viewport.Height)
	cam.Apply(camera.Controls(c.controls))
	c.camera = cam
}

// Scene returns the scene being viewed.
func (c *Controller) Scene() *diorama.Scene {
	return c.scene
}

// Camera returns the orbit camera.
func (c *Controller) Camera() *camera.OrbitCamera {
	return c.camera
}

// Viewport returns the current drawable size.
func (c *Controller) Viewport() frame.Viewport {
	return c.viewport
}

// Handle applies one input event.
func (c *Controller) Handle(ev input.Event) (Action, error) {
	if dx, dy, ok := c.drag.Handle(ev); ok {
		c.camera.HandleDrag(dx, dy)
		return ActionNone, nil
	}

	switch ev.Type {
	case input.EventQuit:
		return ActionQuit, nil
	case input.EventWindowResize:
		c.Resize(ev.Width, ev.Height)
	case input.EventMouseWheel:
		c.camera.HandleZoom(ev.Wheel)
	case input.EventMouseDown:
		if c.Debug && ev.Button == sdl.BUTTON_RIGHT && c.Pick(float32(ev.MouseX), float32(ev.MouseY)) {
			return ActionInspect, nil
		}
	case input.EventKeyDown:
		switch ev.Key {
		case sdl.SCANCODE_ESCAPE:
			return ActionQuit, nil
		case sdl.SCANCODE_F12:
			return ActionScreenshot, nil
		case sdl.SCANCODE_B:
			return ActionToggleBounds, nil
		case sdl.SCANCODE_HOME:
			c.resetCamera()
		case sdl.SCANCODE_F:
			c.camera.FitToBounds(c.scene.Metadata().Bounds)
		case sdl.SCANCODE_SPACE:
			if c.camera.AutoRotate == 0 {
				c.camera.AutoRotate = 1
			} else {
				c.camera.AutoRotate = 0
			}
		case sdl.SCANCODE_R:
			if err := c.generate(c.NextSeed()); err != nil {
				return ActionNone, err
			}
			return ActionReload, nil
		}
	}
	return ActionNone, nil
}

// Pick casts a ray through viewport pixel (x, y) and remembers the nearest
// element it hits.
func (c *Controller) Pick(x, y float32) bool {
	inv := c.camera.ProjectionMatrix().Mul4(c.camera.ViewMatrix()).Inv()
	r := picking.ScreenToRay(x, y, float32(c.viewport.Width), float32(c.viewport.Height), inv)
	c.picked, c.hasPick = picking.Pick(c.scene, r, picking.DefaultPadding)
	return c.hasPick
}

// Picked returns the last element hit by Pick.
func (c *Controller) Picked() (picking.Hit, bool) {
	return c.picked, c.hasPick
}

// Resize updates the viewport and the camera aspect. The scene is untouched.
func (c *Controller) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.viewport = frame.Viewport{Width: width, Height: height}
	c.camera.Resize(width, height)
}

// Frame advances the camera one step and composes the frame to draw.
func (c *Controller) Frame() frame.Frame {
	c.tick++
	c.camera.Update()
	return frame.Compose(c.scene, c.camera, c.viewport, c.tick)
}
