// Package frame turns a scene and a camera into the draw list of one frame.
// Compose is pure: it never touches the scene, the camera or the GPU.
package frame

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/diorama/internal/engine/camera"
	"github.com/Faultbox/diorama/internal/engine/lighting"
	"github.com/Faultbox/diorama/pkg/diorama"
)

// Viewport is the drawable size in pixels.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Draw is one element ready to be drawn.
type Draw struct {
	Index   int // position in the scene
	Model   mgl32.Mat4
	Color   [3]float32
	Opacity float32
	Unlit   bool
	Lines   bool
	Depth   float32 // view-space distance of the element origin

	// Specular is the highlight strength; 0 for matte surfaces.
	Specular float32
}

// CameraState is the part of a frame a remote viewer needs.
type CameraState struct {
	Eye    [3]float32 `json:"eye"`
	Target [3]float32 `json:"target"`
	FOV    float32    `json:"fov"`
	Near   float32    `json:"near"`
	Far    float32    `json:"far"`
	Aspect float32    `json:"aspect"`
}

// Frame is everything a renderer needs for one tick.
type Frame struct {
	Tick        uint64
	Viewport    Viewport
	Camera      CameraState
	View        mgl32.Mat4
	Projection  mgl32.Mat4
	Background  [3]float32
	Lights      lighting.Lights
	Opaque      []Draw
	Transparent []Draw // back to front
}

// Compose builds the frame for the current camera. Opaque draws keep scene
// order; transparent draws are sorted farthest first so they blend over
// what is behind them.
func Compose(s *diorama.Scene, cam *camera.OrbitCamera, vp Viewport, tick uint64) Frame {
	env := s.Environment()
	view := cam.ViewMatrix()

	f := Frame{
		Tick:       tick,
		Viewport:   vp,
		Camera:     CameraStateOf(cam),
		View:       view,
		Projection: cam.ProjectionMatrix(),
		Background: env.Background.Floats(),
		Lights:     lighting.FromEnvironment(env),
	}

	for i := 0; i < s.Len(); i++ {
		e := s.At(i)
		d := Draw{
			Index:   i,
			Model:   ModelMatrix(e),
			Color:   e.Material.Color.Floats(),
			Opacity: float32(e.Material.Opacity),
			Unlit:   e.Material.Unlit(),
			Lines:   e.Shape == diorama.ShapeLine,
		}
		if !d.Unlit {
			d.Specular = float32(e.Material.Metalness * (1 - e.Material.Roughness))
		}
		p := view.Mul4x1(mgl32.Vec4{float32(e.Position.X), float32(e.Position.Y), float32(e.Position.Z), 1})
		d.Depth = -p.Z()
		if e.Material.Transparent || e.Material.Opacity < 1 {
			f.Transparent = append(f.Transparent, d)
		} else {
			f.Opaque = append(f.Opaque, d)
		}
	}
	sort.SliceStable(f.Transparent, func(i, j int) bool {
		return f.Transparent[i].Depth > f.Transparent[j].Depth
	})
	return f
}

// CameraStateOf captures the camera as a remote viewer needs it.
func CameraStateOf(cam *camera.OrbitCamera) CameraState {
	return CameraState{
		Eye:    cam.Position(),
		Target: cam.Target,
		FOV:    cam.FOV,
		Near:   cam.Near,
		Far:    cam.Far,
		Aspect: cam.Aspect,
	}
}

// ModelMatrix returns translate * rotate(X, then Y, then Z) * scale.
func ModelMatrix(e diorama.Element) mgl32.Mat4 {
	t := mgl32.Translate3D(float32(e.Position.X), float32(e.Position.Y), float32(e.Position.Z))
	r := mgl32.HomogRotate3DX(float32(e.Rotation.X)).
		Mul4(mgl32.HomogRotate3DY(float32(e.Rotation.Y))).
		Mul4(mgl32.HomogRotate3DZ(float32(e.Rotation.Z)))
	sc := e.Scale
	if sc == (diorama.Vec3{}) {
		sc = diorama.Unit
	}
	s := mgl32.Scale3D(float32(sc.X), float32(sc.Y), float32(sc.Z))
	return t.Mul4(r).Mul4(s)
}

// NormalMatrix returns the inverse transpose of the model's upper 3x3.
func NormalMatrix(model mgl32.Mat4) mgl32.Mat3 {
	m := model.Mat3()
	if math.Abs(float64(m.Det())) < 1e-12 {
		return mgl32.Ident3()
	}
	return m.Inv().Transpose()
}
