// Package renderer draws colored line geometry with OpenGL. It is the
// drawing collaborator of a scene: it receives the camera matrices, the
// model matrix of each frame, and reads back depth for pixel picking.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/internal/engine/shader"
	"github.com/Faultbox/scenekit/internal/logger"
	"github.com/Faultbox/scenekit/pkg/math"
)

// floats per vertex: position then color
const vertexFloats = 6

const vertexShaderSource = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 uMVP;

out vec3 vertexColor;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vertexColor = aColor;
}
`

const fragmentShaderSource = `
#version 410 core

in vec3 vertexColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(vertexColor, 1.0);
}
`

// Config holds renderer configuration. Width and Height are in window
// coordinates; PixelScale converts them to framebuffer pixels.
type Config struct {
	Width      int
	Height     int
	PixelScale float32
}

// Color is an RGB color.
type Color [3]float32

// Common colors.
var (
	Red   = Color{0.9, 0.2, 0.2}
	Green = Color{0.2, 0.8, 0.2}
	Blue  = Color{0.25, 0.4, 0.95}
	Gray  = Color{0.45, 0.45, 0.5}
	White = Color{1, 1, 1}
)

// Vertex is a colored line end point.
type Vertex struct {
	Pos   math.Vec3
	Color Color
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	program *shader.Program
	vao     uint32
	vbo     uint32
	// vbo size in vertices
	capacity int
	scratch  []float32

	projection mgl32.Mat4
	view       mgl32.Mat4
	model      mgl32.Mat4
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if cfg.PixelScale <= 0 {
		cfg.PixelScale = 1
	}
	r := &Renderer{
		config:     cfg,
		projection: mgl32.Ident4(),
		view:       mgl32.Ident4(),
		model:      mgl32.Ident4(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log := logger.Named("renderer")
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	var err error
	r.program, err = shader.Compile(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexFloats*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, vertexFloats*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.Resize(cfg.Width, cfg.Height, cfg.PixelScale)
	log.Debug("line buffers created", zap.Uint32("vao", r.vao), zap.Uint32("vbo", r.vbo))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Named("renderer").Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int, pixelScale float32) {
	r.config.Width = width
	r.config.Height = height
	if pixelScale > 0 {
		r.config.PixelScale = pixelScale
	}
	w, h := r.drawableSize()
	gl.Viewport(0, 0, int32(w), int32(h))
	logger.Named("renderer").Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Float32("pixel_scale", r.config.PixelScale),
	)
}

func (r *Renderer) drawableSize() (int, int) {
	return int(float32(r.config.Width) * r.config.PixelScale), int(float32(r.config.Height) * r.config.PixelScale)
}

// ViewportSize returns the viewport in window coordinates.
func (r *Renderer) ViewportSize() (int, int) {
	return r.config.Width, r.config.Height
}

// SetMatrices sets the camera matrices used by the next draws and resets
// the model matrix.
func (r *Renderer) SetMatrices(projection, view math.Mat4) {
	r.projection = mgl32.Mat4(projection)
	r.view = mgl32.Mat4(view)
	r.model = mgl32.Ident4()
}

// ApplyTransform sets the model matrix used by the next draws.
func (r *Renderer) ApplyTransform(model math.Mat4) {
	r.model = mgl32.Mat4(model)
}

// ResetTransform draws the next geometry in world coordinates.
func (r *Renderer) ResetTransform() {
	r.model = mgl32.Ident4()
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawLines draws pairs of vertices as line segments.
func (r *Renderer) DrawLines(vertices []Vertex) {
	if len(vertices) < 2 {
		return
	}
	r.scratch = r.scratch[:0]
	for _, v := range vertices {
		r.scratch = append(r.scratch, v.Pos.X, v.Pos.Y, v.Pos.Z, v.Color[0], v.Color[1], v.Color[2])
	}

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	size := len(r.scratch) * 4
	if len(vertices) > r.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&r.scratch[0]), gl.DYNAMIC_DRAW)
		r.capacity = len(vertices)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&r.scratch[0]))
	}

	r.program.Use()
	r.program.SetMat4("uMVP", r.projection.Mul4(r.view).Mul4(r.model))
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// DepthAt reads the depth buffer under window pixel (x, y), y pointing
// down. Background pixels report false.
func (r *Renderer) DepthAt(x, y int) (float32, bool) {
	w, h := r.drawableSize()
	px := int(float32(x) * r.config.PixelScale)
	py := h - 1 - int(float32(y)*r.config.PixelScale)
	if px < 0 || py < 0 || px >= w || py >= h {
		return 1, false
	}
	var depth float32
	gl.ReadPixels(int32(px), int32(py), 1, 1, gl.DEPTH_COMPONENT, gl.FLOAT, unsafe.Pointer(&depth))
	return depth, depth < 1
}

// ReadPixels reads the framebuffer as RGBA rows, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.drawableSize()
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}
