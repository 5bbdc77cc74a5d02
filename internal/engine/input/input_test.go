package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func TestDragOnlyWhileLeftButtonHeld(t *testing.T) {
	var d Drag

	_, _, ok := d.Handle(Event{Type: EventMouseMove, DeltaX: 4})
	assert.False(t, ok, "motion without a button is not a drag")

	d.Handle(Event{Type: EventMouseDown, Button: sdl.BUTTON_RIGHT})
	assert.False(t, d.Active)

	d.Handle(Event{Type: EventMouseDown, Button: sdl.BUTTON_LEFT})
	assert.True(t, d.Active)

	dx, dy, ok := d.Handle(Event{Type: EventMouseMove, DeltaX: 4, DeltaY: -2})
	assert.True(t, ok)
	assert.Equal(t, float32(4), dx)
	assert.Equal(t, float32(-2), dy)

	_, _, ok = d.Handle(Event{Type: EventMouseMove})
	assert.False(t, ok, "zero motion is ignored")

	d.Handle(Event{Type: EventMouseUp, Button: sdl.BUTTON_LEFT})
	assert.False(t, d.Active)
}

func TestConvertWheel(t *testing.T) {
	ev, ok := convert(&sdl.MouseWheelEvent{Y: 2})
	assert.True(t, ok)
	assert.Equal(t, EventMouseWheel, ev.Type)
	assert.Equal(t, float32(2), ev.Wheel)

	ev, _ = convert(&sdl.MouseWheelEvent{Y: 2, Direction: sdl.MOUSEWHEEL_FLIPPED})
	assert.Equal(t, float32(-2), ev.Wheel)
}

func TestConvertResize(t *testing.T) {
	ev, ok := convert(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_RESIZED, Data1: 640, Data2: 480})
	assert.True(t, ok)
	assert.Equal(t, Event{Type: EventWindowResize, Width: 640, Height: 480}, ev)

	_, ok = convert(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_MOVED})
	assert.False(t, ok)
}

func TestConvertKeys(t *testing.T) {
	ev, _ := convert(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F12}})
	assert.Equal(t, EventKeyDown, ev.Type)
	assert.Equal(t, sdl.Scancode(sdl.SCANCODE_F12), ev.Key)

	ev, _ = convert(&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_R}})
	assert.Equal(t, EventKeyUp, ev.Type)
}
