package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/diorama/internal/config"
	"github.com/Faultbox/diorama/internal/engine/frame"
	"github.com/Faultbox/diorama/internal/engine/input"
)

func newController(t *testing.T) *Controller {
	t.Helper()
	cfg := config.Default()
	c, err := NewController(cfg.Scene.Layout, 21, cfg.Controls, frame.Viewport{Width: 800, Height: 600})
	require.NoError(t, err)
	return c
}

func key(code sdl.Scancode) input.Event {
	return input.Event{Type: input.EventKeyDown, Key: code}
}

func TestControllerFrames(t *testing.T) {
	c := newController(t)

	f1 := c.Frame()
	f2 := c.Frame()
	assert.Equal(t, uint64(1), f1.Tick)
	assert.Equal(t, uint64(2), f2.Tick)
	assert.Equal(t, c.Scene().Len(), len(f1.Opaque)+len(f1.Transparent))
	assert.Equal(t, uint64(21), c.Scene().Metadata().Seed)
}

func TestControllerResizeKeepsScene(t *testing.T) {
	c := newController(t)
	before := c.Scene()

	act, err := c.Handle(input.Event{Type: input.EventWindowResize, Width: 1600, Height: 800})
	require.NoError(t, err)
	assert.Equal(t, ActionNone, act)
	assert.Same(t, before, c.Scene())
	assert.Equal(t, frame.Viewport{Width: 1600, Height: 800}, c.Viewport())
	assert.Equal(t, float32(2), c.Camera().Aspect)

	c.Resize(0, 10)
	assert.Equal(t, frame.Viewport{Width: 1600, Height: 800}, c.Viewport())
}

func TestControllerDragOrbits(t *testing.T) {
	c := newController(t)
	c.Camera().Damping = 1
	yaw := c.Camera().Yaw

	_, _ = c.Handle(input.Event{Type: input.EventMouseMove, DeltaX: 50})
	c.Frame()
	assert.Equal(t, yaw, c.Camera().Yaw, "moving without a button must not orbit")

	_, _ = c.Handle(input.Event{Type: input.EventMouseDown, Button: sdl.BUTTON_LEFT})
	_, _ = c.Handle(input.Event{Type: input.EventMouseMove, DeltaX: 50})
	c.Frame()
	assert.Less(t, c.Camera().Yaw, yaw)
}

func TestControllerWheelZooms(t *testing.T) {
	c := newController(t)
	c.Camera().Damping = 1
	d := c.Camera().Distance

	_, _ = c.Handle(input.Event{Type: input.EventMouseWheel, Wheel: 1})
	c.Frame()
	assert.Less(t, c.Camera().Distance, d)
}

func TestControllerKeys(t *testing.T) {
	c := newController(t)

	act, err := c.Handle(key(sdl.SCANCODE_ESCAPE))
	require.NoError(t, err)
	assert.Equal(t, ActionQuit, act)

	act, _ = c.Handle(input.Event{Type: input.EventQuit})
	assert.Equal(t, ActionQuit, act)

	act, _ = c.Handle(key(sdl.SCANCODE_F12))
	assert.Equal(t, ActionScreenshot, act)

	act, _ = c.Handle(key(sdl.SCANCODE_B))
	assert.Equal(t, ActionToggleBounds, act)

	_, _ = c.Handle(key(sdl.SCANCODE_SPACE))
	assert.Equal(t, float32(1), c.Camera().AutoRotate)
	_, _ = c.Handle(key(sdl.SCANCODE_SPACE))
	assert.Zero(t, c.Camera().AutoRotate)
}

func TestControllerRegenerate(t *testing.T) {
	c := newController(t)
	c.NextSeed = func() uint64 { return 99 }
	old := c.Scene()

	act, err := c.Handle(key(sdl.SCANCODE_R))
	require.NoError(t, err)
	assert.Equal(t, ActionReload, act)
	assert.NotSame(t, old, c.Scene())
	assert.Equal(t, uint64(99), c.Scene().Metadata().Seed)
	assert.Equal(t, old.Deterministic(), c.Scene().Deterministic())
}

func TestControllerResetCamera(t *testing.T) {
	c := newController(t)
	c.Camera().Damping = 1
	start := c.Camera().Position()

	_, _ = c.Handle(input.Event{Type: input.EventMouseDown, Button: sdl.BUTTON_LEFT})
	_, _ = c.Handle(input.Event{Type: input.EventMouseMove, DeltaX: 80, DeltaY: 40})
	c.Frame()
	require.NotEqual(t, start, c.Camera().Position())

	_, _ = c.Handle(key(sdl.SCANCODE_HOME))
	assert.Equal(t, start, c.Camera().Position())
}

func TestControllerRightClickPicks(t *testing.T) {
	c := newController(t)
	center := input.Event{Type: input.EventMouseDown, Button: sdl.BUTTON_RIGHT, MouseX: 400, MouseY: 300}

	// Inspection is a debug tool.
	action, err := c.Handle(center)
	require.NoError(t, err)
	assert.Equal(t, ActionNone, action)
	_, ok := c.Picked()
	assert.False(t, ok)

	c.Debug = true

	// The screen center looks at the middle of the ground.
	action, err = c.Handle(center)
	require.NoError(t, err)
	assert.Equal(t, ActionInspect, action)

	hit, ok := c.Picked()
	require.True(t, ok)
	assert.NotEmpty(t, hit.Element.ID)
	assert.Equal(t, c.Scene().At(hit.Index), hit.Element)
	assert.Greater(t, hit.Distance, float32(0))

	// The top edge looks over everything into the sky.
	action, err = c.Handle(input.Event{Type: input.EventMouseDown, Button: sdl.BUTTON_RIGHT, MouseX: 400, MouseY: 0})
	require.NoError(t, err)
	assert.Equal(t, ActionNone, action)

	// Left clicks start a drag instead.
	action, err = c.Handle(input.Event{Type: input.EventMouseDown, Button: sdl.BUTTON_LEFT, MouseX: 400, MouseY: 300})
	require.NoError(t, err)
	assert.Equal(t, ActionNone, action)
}
