// Package renderer provides OpenGL wireframe rendering of the carousel meshes.
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/carousel/internal/engine/shader"
	"github.com/Faultbox/carousel/internal/logger"
	"github.com/Faultbox/carousel/pkg/formats"
	"github.com/Faultbox/carousel/pkg/math"
)

// Uniform names shared with the wireframe shaders.
const (
	uniformProjection = "ProjectionMatrix"
	uniformView       = "ViewMatrix"
	uniformModel      = "ModelMatrix"

	attribPosition = 0
)

// ClearColor is the background color.
var ClearColor = [4]float32{0.1, 0.2, 0.5, 0.0}

// Config holds renderer configuration.
type Config struct {
	Width          int
	Height         int
	VertexShader   string
	FragmentShader string
}

// mesh is one uploaded slot. An empty mesh has no GL objects and is skipped.
type mesh struct {
	vao, vbo, ibo uint32
	count         int32
}

// Renderer draws one wireframe mesh per slot.
type Renderer struct {
	config Config

	program   uint32
	locProj   int32
	locView   int32
	locModel  int32
	meshes    []mesh
	lastCount int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	program, err := shader.CompileProgram(cfg.VertexShader, cfg.FragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.program = program

	for name, dst := range map[string]*int32{
		uniformProjection: &r.locProj,
		uniformView:       &r.locView,
		uniformModel:      &r.locModel,
	} {
		loc, err := shader.RequireUniform(program, name)
		if err != nil {
			gl.DeleteProgram(program)
			return nil, err
		}
		*dst = loc
	}

	logger.Debug("shader program created", zap.Uint32("program", program))
	return r, nil
}

// Upload creates GPU buffers for each slot mesh, in slot order. Nil or
// empty meshes occupy a slot but draw nothing.
func (r *Renderer) Upload(objs []*formats.OBJ) {
	r.deleteMeshes()
	r.meshes = make([]mesh, len(objs))

	for i, obj := range objs {
		if obj == nil || obj.TriangleCount() == 0 {
			continue
		}
		r.meshes[i] = uploadMesh(obj)
		logger.Debug("mesh uploaded",
			zap.Int("slot", i),
			zap.String("name", obj.Name),
			zap.Int("vertices", obj.VertexCount()),
			zap.Int("triangles", obj.TriangleCount()),
		)
	}
}

func uploadMesh(obj *formats.OBJ) mesh {
	vertices := obj.FlatVertices()
	indices := obj.FlatIndices()

	var m mesh
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(attribPosition, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(attribPosition)

	gl.GenBuffers(1, &m.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	// the element buffer binding is VAO state, so unbind the VAO first
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	m.count = int32(len(indices))
	return m
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Draw clears the frame and draws every uploaded mesh as wireframe with its
// model matrix. Matrices are row-major and uploaded transposed.
func (r *Renderer) Draw(projection, view math.Mat4, model func(i int) math.Mat4) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locProj, 1, true, projection.Ptr())
	gl.UniformMatrix4fv(r.locView, 1, true, view.Ptr())

	gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)

	drawn := 0
	for i, m := range r.meshes {
		if m.count == 0 {
			continue
		}
		mat := model(i)
		gl.UniformMatrix4fv(r.locModel, 1, true, mat.Ptr())
		gl.BindVertexArray(m.vao)
		gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
		drawn++
	}
	gl.BindVertexArray(0)

	if drawn != r.lastCount {
		logger.Debug("drawn meshes changed", zap.Int("count", drawn))
		r.lastCount = drawn
	}
}

// ReadPixels returns the framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

func (r *Renderer) deleteMeshes() {
	for _, m := range r.meshes {
		if m.vao != 0 {
			gl.DeleteVertexArrays(1, &m.vao)
		}
		if m.vbo != 0 {
			gl.DeleteBuffers(1, &m.vbo)
		}
		if m.ibo != 0 {
			gl.DeleteBuffers(1, &m.ibo)
		}
	}
	r.meshes = nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.deleteMeshes()
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}
