// Package renderer executes draw commands with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/cubetac/internal/assets"
	"github.com/Faultbox/cubetac/internal/engine/draw"
	"github.com/Faultbox/cubetac/internal/engine/shader"
	"github.com/Faultbox/cubetac/internal/engine/texture"
	"github.com/Faultbox/cubetac/internal/logger"
	"github.com/Faultbox/cubetac/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor draw.Color
}

// Renderer draws queued commands. It implements draw.Backend.
type Renderer struct {
	config Config

	shaders  *assets.Base[*shader.Program]
	textures *assets.Base[*texture.Texture]

	projection math.Mat4
	quad       mesh
	cube       mesh

	log *zap.Logger
}

// InitGL loads the OpenGL function pointers. Call it once after the window
// created its context and before any other GL work.
func InitGL() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Named("renderer").Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)
	return nil
}

// New creates a renderer drawing with the given shaders and textures.
// IMPORTANT: Must be called AFTER InitGL!
func New(cfg Config, shaders *assets.Base[*shader.Program], textures *assets.Base[*texture.Texture]) (*Renderer, error) {
	if shaders == nil || shaders.Len() == 0 {
		return nil, fmt.Errorf("renderer needs at least one shader")
	}
	if textures == nil {
		textures = assets.NewBase[*texture.Texture]("texture")
	}

	r := &Renderer{
		config:     cfg,
		shaders:    shaders,
		textures:   textures,
		projection: math.Identity(),
		log:        logger.Named("renderer"),
	}

	// Commands arrive sorted back to front, so no depth buffer is used.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.FRAMEBUFFER_SRGB)
	c := cfg.ClearColor
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	r.quad = newMesh(quadVertices, quadIndices)
	r.cube = newMesh(cubeVertices, cubeIndices)

	r.log.Debug("meshes created",
		zap.Uint32("quad_vao", r.quad.vao),
		zap.Uint32("cube_vao", r.cube.vao),
	)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.quad.delete()
	r.cube.delete()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetProjection sets the camera projection applied to world commands.
func (r *Renderer) SetProjection(m math.Mat4) {
	r.projection = m
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Draw issues one draw call for cmd.
func (r *Renderer) Draw(cmd *draw.Command) error {
	prog, _ := r.shaders.Get(cmd.Shader)
	prog.Use()

	projection := math.Identity()
	if cmd.ApplyProjection {
		projection = r.projection
	}
	gl.UniformMatrix4fv(prog.Uniform("transform"), 1, false, cmd.Transform.Ptr())
	gl.UniformMatrix4fv(prog.Uniform("projection"), 1, false, projection.Ptr())
	gl.Uniform4fv(prog.Uniform("params"), 2, &cmd.Params[0])
	gl.Uniform1f(prog.Uniform("scale_for_bg"), cmd.ScaleForBg)

	if cmd.Texture != "" {
		tex, ok := r.textures.Get(cmd.Texture)
		if !ok {
			return fmt.Errorf("no texture for %q", cmd.Texture)
		}
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex.ID)
		gl.Uniform1i(prog.Uniform("tex"), 0)
	}

	m := r.quad
	if cmd.Type == draw.Cube {
		m = r.cube
	}
	m.draw()

	if cmd.Texture != "" {
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}

// mesh is an indexed triangle list with position and uv attributes.
type mesh struct {
	vao, vbo, ebo uint32
	count         int32
}

func newMesh(vertices []float32, indices []uint8) mesh {
	var m mesh
	m.count = int32(len(indices))

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices), unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(0)

	// UV attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, vertexStride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m
}

func (m mesh) draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_BYTE, nil)
	gl.BindVertexArray(0)
}

func (m *mesh) delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	*m = mesh{}
}
