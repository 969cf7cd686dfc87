// Package retained is the advanced renderer: stage geometry packed into
// vertex buffers and drawn through a GLSL program. Cached tessellations
// upload once; authored mesh buffers stream through a shared buffer each
// frame.
package retained

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/veldrane/stageview/internal/engine/geom"
	"github.com/veldrane/stageview/internal/engine/lighting"
	"github.com/veldrane/stageview/internal/engine/render"
	"github.com/veldrane/stageview/internal/engine/render/retained/shaders"
	"github.com/veldrane/stageview/internal/engine/scene"
	"github.com/veldrane/stageview/internal/engine/shader"
	"github.com/veldrane/stageview/pkg/math"
	"github.com/veldrane/stageview/pkg/stage"
)

// Interleaved position and flat normal per corner.
const floatsPerVertex = 6

// Renderer implements render.Advanced. It owns its flattener, so cached
// geometry pointers stay stable across frames and key the VBO table.
type Renderer struct {
	program uint32

	attrPosition int32
	attrNormal   int32

	uniModel        int32
	uniView         int32
	uniProj         int32
	uniNormalMatrix int32
	uniColor        int32
	uniLightDir     int32
	uniIntensity    int32
	uniEye          int32
	uniLighting     int32

	flat   *scene.Flattener
	static map[*geom.Buffer]staticVBO
	stream uint32

	view, proj math.Mat4
	eye        math.Vec3
}

type staticVBO struct {
	id    uint32
	count int32
}

var _ render.Advanced = (*Renderer)(nil)

// New compiles the stage program and allocates the stream buffer. The GL
// context must be current.
func New() (*Renderer, error) {
	program, err := shader.CompileProgram(shaders.StageVertexShader, shaders.StageFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("stage program: %w", err)
	}

	r := &Renderer{
		program: program,
		flat:    scene.NewFlattener(),
		static:  make(map[*geom.Buffer]staticVBO),
	}
	r.attrPosition = shader.GetAttrib(program, "position")
	r.attrNormal = shader.GetAttrib(program, "normal")
	r.uniModel = shader.GetUniform(program, "model")
	r.uniView = shader.GetUniform(program, "view")
	r.uniProj = shader.GetUniform(program, "proj")
	r.uniNormalMatrix = shader.GetUniform(program, "normalMatrix")
	r.uniColor = shader.GetUniform(program, "color")
	r.uniLightDir = shader.GetUniform(program, "lightDir")
	r.uniIntensity = shader.GetUniform(program, "lightIntensity")
	r.uniEye = shader.GetUniform(program, "eye")
	r.uniLighting = shader.GetUniform(program, "lighting")

	gl.GenBuffers(1, &r.stream)
	return r, nil
}

// SetViewport sets the pixel viewport.
func (r *Renderer) SetViewport(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

// SetCamera sets the matrices and eye position for the next Render.
func (r *Renderer) SetCamera(view, proj math.Mat4, eye math.Vec3) {
	r.view = view
	r.proj = proj
	r.eye = eye
}

// Render flattens the stage at p.Time and draws every item. It does not
// clear; the frame is already prepared by the surface pass.
func (r *Renderer) Render(st *stage.Stage, p render.Params) error {
	gl.UseProgram(r.program)
	gl.Enable(gl.DEPTH_TEST)
	// Primitive tables mix windings, so culling must stay off.
	gl.Disable(gl.CULL_FACE)
	applyMode(p.Mode)

	gl.UniformMatrix4fv(r.uniView, 1, false, r.view.Ptr())
	gl.UniformMatrix4fv(r.uniProj, 1, false, r.proj.Ptr())
	gl.Uniform3f(r.uniEye, r.eye.X, r.eye.Y, r.eye.Z)

	dir, intensity := lighting.DirectionFromStage(st, p.Time)
	gl.Uniform3f(r.uniLightDir, dir.X, dir.Y, dir.Z)
	gl.Uniform1f(r.uniIntensity, intensity)

	lit := int32(0)
	if p.Lighting && p.Mode == render.Shaded {
		lit = 1
	}
	gl.Uniform1i(r.uniLighting, lit)

	gl.EnableVertexAttribArray(uint32(r.attrPosition))
	gl.EnableVertexAttribArray(uint32(r.attrNormal))

	r.flat.Flatten(st, p.Time, func(it scene.Item) bool {
		r.drawItem(it)
		return true
	})

	gl.DisableVertexAttribArray(uint32(r.attrPosition))
	gl.DisableVertexAttribArray(uint32(r.attrNormal))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.UseProgram(0)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%04x", code)
	}
	return nil
}

func (r *Renderer) drawItem(it scene.Item) {
	if it.Geo == nil || it.Geo.TriangleCount() == 0 {
		return
	}

	var count int32
	if it.Cached {
		v, ok := r.static[it.Geo]
		if !ok {
			v = uploadStatic(it.Geo)
			r.static[it.Geo] = v
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, v.id)
		count = v.count
	} else {
		count = r.uploadStream(it.Geo)
	}

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointer(uint32(r.attrPosition), 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.VertexAttribPointer(uint32(r.attrNormal), 3, gl.FLOAT, false, stride, gl.PtrOffset(12))

	gl.UniformMatrix4fv(r.uniModel, 1, false, it.World.Ptr())
	nm := it.World.Inverse().Transpose()
	gl.UniformMatrix4fv(r.uniNormalMatrix, 1, false, nm.Ptr())
	gl.Uniform3f(r.uniColor, it.Color.X, it.Color.Y, it.Color.Z)

	gl.DrawArrays(gl.TRIANGLES, 0, count)
}

// uploadStatic packs a cached buffer into its own VBO.
func uploadStatic(b *geom.Buffer) staticVBO {
	data := pack(b)
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(gl.ARRAY_BUFFER, id)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	return staticVBO{id: id, count: int32(len(data) / floatsPerVertex)}
}

// uploadStream replaces the shared stream buffer with a per-frame mesh.
func (r *Renderer) uploadStream(b *geom.Buffer) int32 {
	data := pack(b)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.stream)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STREAM_DRAW)
	return int32(len(data) / floatsPerVertex)
}

// pack interleaves triangle corners with their flat normal.
func pack(b *geom.Buffer) []float32 {
	out := make([]float32, 0, b.TriangleCount()*3*floatsPerVertex)
	for i := 0; i < b.TriangleCount(); i++ {
		p0, p1, p2 := b.Triangle(i)
		n := b.Normals[i]
		for _, p := range [3]math.Vec3{p0, p1, p2} {
			out = append(out, p.X, p.Y, p.Z, n.X, n.Y, n.Z)
		}
	}
	return out
}

func applyMode(m render.Mode) {
	switch m {
	case render.Wireframe:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	case render.Points:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.POINT)
		gl.PointSize(3)
	default:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// Destroy releases all resources.
func (r *Renderer) Destroy() {
	for _, v := range r.static {
		gl.DeleteBuffers(1, &v.id)
	}
	r.static = make(map[*geom.Buffer]staticVBO)
	if r.stream != 0 {
		gl.DeleteBuffers(1, &r.stream)
		r.stream = 0
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}
