package frame

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/diorama/internal/engine/camera"
	"github.com/Faultbox/diorama/pkg/diorama"
)

func newScene(t *testing.T) *diorama.Scene {
	t.Helper()
	s, err := diorama.Build(diorama.DefaultLayout(), 9)
	require.NoError(t, err)
	return s
}

func TestComposeSplitsTransparent(t *testing.T) {
	s := newScene(t)
	cam := camera.New(s.Environment().Camera, 1280, 720)

	f := Compose(s, cam, Viewport{Width: 1280, Height: 720}, 1)
	require.Len(t, f.Transparent, 1)
	assert.Equal(t, diorama.CategoryRiver, s.At(f.Transparent[0].Index).Category)
	assert.Len(t, f.Opaque, s.Len()-1)
	assert.Equal(t, uint64(1), f.Tick)
	assert.InDelta(t, 0.9, f.Transparent[0].Opacity, 1e-6)

	lines := 0
	for _, d := range f.Opaque {
		if d.Lines {
			lines++
		}
	}
	assert.Equal(t, 400, lines)
}

func TestComposeSortsBackToFront(t *testing.T) {
	l := diorama.DefaultLayout()
	s, err := diorama.Build(l, 3)
	require.NoError(t, err)
	cam := camera.New(s.Environment().Camera, 800, 600)

	f := Compose(s, cam, Viewport{Width: 800, Height: 600}, 0)
	for i := 1; i < len(f.Transparent); i++ {
		assert.GreaterOrEqual(t, f.Transparent[i-1].Depth, f.Transparent[i].Depth)
	}
	for _, d := range f.Opaque {
		assert.Equal(t, float32(1), d.Opacity)
	}
}

func TestResizeLeavesSceneUntouched(t *testing.T) {
	s := newScene(t)
	before := s.Elements()
	cam := camera.New(s.Environment().Camera, 800, 600)

	a := Compose(s, cam, Viewport{Width: 800, Height: 600}, 1)
	cam.Resize(1920, 1080)
	b := Compose(s, cam, Viewport{Width: 1920, Height: 1080}, 2)

	assert.Equal(t, before, s.Elements())
	assert.NotEqual(t, a.Projection, b.Projection)
	assert.Equal(t, a.View, b.View)
	require.Equal(t, len(a.Opaque), len(b.Opaque))
	for i := range a.Opaque {
		assert.Equal(t, a.Opaque[i].Model, b.Opaque[i].Model)
	}
}

func TestModelMatrixLaysPlaneFlat(t *testing.T) {
	ground := diorama.Ground(250)
	m := ModelMatrix(ground)

	n := NormalMatrix(m).Mul3x1(mgl32.Vec3{0, 0, 1})
	assert.InDelta(t, 0, n.X(), 1e-6)
	assert.InDelta(t, 1, n.Y(), 1e-6)
	assert.InDelta(t, 0, n.Z(), 1e-6)

	corner := m.Mul4x1(mgl32.Vec4{125, 125, 0, 1})
	assert.InDelta(t, 125, corner.X(), 1e-4)
	assert.InDelta(t, 0, corner.Y(), 1e-4)
	assert.InDelta(t, -125, corner.Z(), 1e-4)
}

func TestModelMatrixScalesAndTranslates(t *testing.T) {
	rock := diorama.Rock(0, 10, -20, 0.5)
	m := ModelMatrix(rock)

	p := m.Mul4x1(mgl32.Vec4{0, 1, 0, 1})
	assert.InDelta(t, 10, p.X(), 1e-6)
	assert.InDelta(t, 1.0, p.Y(), 1e-6)
	assert.InDelta(t, -20, p.Z(), 1e-6)

	roof := diorama.HouseParts(diorama.DefaultLayout().House)[1]
	r := ModelMatrix(roof).Mul4x1(mgl32.Vec4{1, 0, 0, 0})
	assert.InDelta(t, math.Sqrt2/2, r.X(), 1e-6)
	assert.InDelta(t, -math.Sqrt2/2, r.Z(), 1e-6)
}

func TestComposeCameraState(t *testing.T) {
	s := newScene(t)
	cam := camera.New(s.Environment().Camera, 1000, 500)
	f := Compose(s, cam, Viewport{Width: 1000, Height: 500}, 7)

	assert.InDelta(t, 60, f.Camera.Eye[0], 1e-3)
	assert.Equal(t, float32(2), f.Camera.Aspect)
	assert.Equal(t, diorama.ColorSky.Floats(), f.Background)
}

func TestComposeSpecular(t *testing.T) {
	s := newScene(t)
	cam := camera.New(s.Environment().Camera, 800, 600)
	f := Compose(s, cam, Viewport{Width: 800, Height: 600}, 1)

	assert.InDelta(t, 0.49, f.Transparent[0].Specular, 1e-6)
	for _, d := range f.Opaque {
		e := s.At(d.Index)
		switch e.Category {
		case diorama.CategoryField:
			assert.InDelta(t, 0.08, d.Specular, 1e-6)
		case diorama.CategoryGround, diorama.CategorySun, diorama.CategoryRiceStalk:
			assert.Zero(t, d.Specular, e.ID)
		}
	}
}
