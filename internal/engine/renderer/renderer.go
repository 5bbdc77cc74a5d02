// Package renderer draws composed frames with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/diorama/internal/engine/frame"
	"github.com/Faultbox/diorama/internal/engine/mesh"
	"github.com/Faultbox/diorama/internal/engine/shader"
	"github.com/Faultbox/diorama/internal/logger"
	"github.com/Faultbox/diorama/pkg/diorama"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// gpuMesh is one uploaded mesh.
type gpuMesh struct {
	vao, vbo uint32
	count    int32
	mode     uint32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program

	meshes []gpuMesh
	index  []int // scene element -> meshes

	overlay *gpuMesh // world-space debug lines, drawn unlit
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.New(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	logger.Debug("shader program created", zap.Uint32("program", r.program.ID))

	return r, nil
}

// Load uploads the meshes of a scene, replacing any previous scene.
func (r *Renderer) Load(s *diorama.Scene) error {
	lib, err := mesh.NewLibrary(s)
	if err != nil {
		return fmt.Errorf("tessellate scene: %w", err)
	}

	r.release()
	r.meshes = make([]gpuMesh, len(lib.Meshes))
	for i, m := range lib.Meshes {
		r.meshes[i] = upload(m)
	}
	r.index = lib.Index

	logger.Info("scene uploaded",
		zap.Int("elements", s.Len()),
		zap.Int("meshes", len(lib.Meshes)),
		zap.Int("vertices", lib.VertexCount()),
	)
	return nil
}

func upload(m *mesh.Mesh) gpuMesh {
	g := gpuMesh{count: int32(len(m.Vertices)), mode: gl.TRIANGLES}
	if m.Primitive == mesh.Lines {
		g.mode = gl.LINES
	}
	data := m.Floats()

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	}

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return g
}

func (r *Renderer) release() {
	for i := range r.meshes {
		gl.DeleteVertexArrays(1, &r.meshes[i].vao)
		gl.DeleteBuffers(1, &r.meshes[i].vbo)
	}
	r.meshes = nil
	r.index = nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.release()
	r.SetOverlay(nil)
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Draw renders a frame: opaque elements first, then transparent ones back
// to front with blending and without depth writes.
func (r *Renderer) Draw(f frame.Frame) {
	bg := f.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p := r.program
	p.Use()
	p.SetMat4("uView", f.View)
	p.SetMat4("uProjection", f.Projection)
	p.SetVec3("uAmbient", f.Lights.Ambient)
	p.SetVec3("uSunColor", f.Lights.SunColor)
	p.SetVec3("uSunDir", f.Lights.SunDir)
	p.SetVec3("uEye", f.Camera.Eye)

	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	for _, d := range f.Opaque {
		r.draw(d)
	}
	if r.overlay != nil {
		r.drawOverlay()
	}

	gl.Enable(gl.BLEND)
	gl.DepthMask(false)
	for _, d := range f.Transparent {
		r.draw(d)
	}
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)

	gl.BindVertexArray(0)
}

func (r *Renderer) draw(d frame.Draw) {
	if d.Index >= len(r.index) {
		return
	}
	m := r.meshes[r.index[d.Index]]
	if m.count == 0 {
		return
	}

	p := r.program
	p.SetMat4("uModel", d.Model)
	p.SetMat3("uNormalMatrix", frame.NormalMatrix(d.Model))
	p.SetVec3("uColor", d.Color)
	p.SetFloat("uOpacity", d.Opacity)
	p.SetBool("uUnlit", d.Unlit)
	p.SetFloat("uSpecular", d.Specular)

	gl.BindVertexArray(m.vao)
	gl.DrawArrays(m.mode, 0, m.count)
}

// SetOverlay uploads world-space debug lines drawn on top of the scene.
// A nil mesh removes the overlay.
func (r *Renderer) SetOverlay(m *mesh.Mesh) {
	if r.overlay != nil {
		gl.DeleteVertexArrays(1, &r.overlay.vao)
		gl.DeleteBuffers(1, &r.overlay.vbo)
		r.overlay = nil
	}
	if m == nil {
		return
	}
	g := upload(m)
	r.overlay = &g
}

func (r *Renderer) drawOverlay() {
	p := r.program
	p.SetMat4("uModel", mgl32.Ident4())
	p.SetMat3("uNormalMatrix", mgl32.Ident3())
	p.SetVec3("uColor", [3]float32{1, 1, 1})
	p.SetFloat("uOpacity", 1)
	p.SetBool("uUnlit", true)
	p.SetFloat("uSpecular", 0)

	gl.BindVertexArray(r.overlay.vao)
	gl.DrawArrays(r.overlay.mode, 0, r.overlay.count)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;
uniform mat3 uNormalMatrix;

out vec3 vNormal;
out vec3 vWorldPos;

void main() {
	vec4 world = uModel * vec4(aPos, 1.0);
	vWorldPos = world.xyz;
	vNormal = uNormalMatrix * aNormal;
	gl_Position = uProjection * uView * world;
}
`

const fragmentShader = `
#version 410 core

in vec3 vNormal;
in vec3 vWorldPos;

uniform vec3 uColor;
uniform float uOpacity;
uniform bool uUnlit;
uniform float uSpecular;
uniform vec3 uAmbient;
uniform vec3 uSunColor;
uniform vec3 uSunDir;
uniform vec3 uEye;

out vec4 FragColor;

void main() {
	if (uUnlit) {
		FragColor = vec4(uColor, uOpacity);
		return;
	}

	vec3 n = normalize(vNormal);
	if (!gl_FrontFacing) {
		n = -n;
	}
	float diffuse = max(dot(n, uSunDir), 0.0);
	vec3 light = uAmbient + uSunColor * diffuse;

	vec3 spec = vec3(0.0);
	if (uSpecular > 0.0) {
		vec3 v = normalize(uEye - vWorldPos);
		vec3 h = normalize(uSunDir + v);
		spec = uSunColor * uSpecular * pow(max(dot(n, h), 0.0), 30.0);
	}

	FragColor = vec4(uColor * light + spec, uOpacity);
}
`
