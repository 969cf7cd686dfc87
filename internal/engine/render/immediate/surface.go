// Package immediate draws with the fixed-function GL 2.1 pipeline. It is
// the fallback backend and also draws the grid and axis overlays for both
// render paths.
package immediate

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
	"go.uber.org/zap"

	"github.com/veldrane/stageview/internal/engine/geom"
	"github.com/veldrane/stageview/internal/engine/render"
	"github.com/veldrane/stageview/internal/logger"
	"github.com/veldrane/stageview/pkg/math"
)

const pointSize = 3

// Surface implements render.Surface on the fixed-function pipeline.
type Surface struct {
	view math.Mat4
	lit  bool
}

var _ render.Surface = (*Surface)(nil)

// New loads the OpenGL functions and returns the surface.
// Must be called after the GL context exists.
func New() (*Surface, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)
	return &Surface{}, nil
}

// Begin clears the frame and fixes viewport, matrices, polygon mode and
// lighting until End.
func (s *Surface) Begin(p render.Params, view, proj math.Mat4, eye math.Vec3, w, h int) {
	s.view = view
	s.lit = p.Lighting && p.Mode == render.Shaded

	gl.Viewport(0, 0, int32(w), int32(h))
	gl.ClearColor(p.ClearColor[0], p.ClearColor[1], p.ClearColor[2], p.ClearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	// Primitive tables mix windings, so culling must stay off.
	gl.Disable(gl.CULL_FACE)

	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixf(proj.Ptr())
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadMatrixf(view.Ptr())

	switch p.Mode {
	case render.Wireframe:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	case render.Points:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.POINT)
		gl.PointSize(pointSize)
	default:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	if !s.lit {
		gl.Disable(gl.LIGHTING)
		return
	}

	gl.Enable(gl.LIGHTING)
	gl.Enable(gl.LIGHT0)
	gl.Enable(gl.COLOR_MATERIAL)
	gl.ColorMaterial(gl.FRONT_AND_BACK, gl.AMBIENT_AND_DIFFUSE)

	// Headlight slightly above the eye, repositioned every frame.
	pos := [4]float32{eye.X, eye.Y + 10, eye.Z, 1}
	diffuse := [4]float32{0.8, 0.8, 0.8, 1}
	ambient := [4]float32{0.3, 0.3, 0.3, 1}
	specular := [4]float32{1, 1, 1, 1}
	gl.Lightfv(gl.LIGHT0, gl.POSITION, &pos[0])
	gl.Lightfv(gl.LIGHT0, gl.DIFFUSE, &diffuse[0])
	gl.Lightfv(gl.LIGHT0, gl.AMBIENT, &ambient[0])
	gl.Lightfv(gl.LIGHT0, gl.SPECULAR, &specular[0])
}

// SetTransform sets the modelview matrix for the next draws.
func (s *Surface) SetTransform(world math.Mat4) {
	mv := s.view.Mul(world)
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadMatrixf(mv.Ptr())
}

// SetColor sets the draw color.
func (s *Surface) SetColor(c math.Vec3) {
	gl.Color3f(c.X, c.Y, c.Z)
}

// DrawBuffer submits one triangle batch with flat per-triangle normals.
func (s *Surface) DrawBuffer(b *geom.Buffer) {
	if b == nil || b.TriangleCount() == 0 {
		return
	}
	gl.Begin(gl.TRIANGLES)
	for i := 0; i < b.TriangleCount(); i++ {
		p0, p1, p2 := b.Triangle(i)
		n := b.Normals[i]
		gl.Normal3f(n.X, n.Y, n.Z)
		gl.Vertex3f(p0.X, p0.Y, p0.Z)
		gl.Vertex3f(p1.X, p1.Y, p1.Z)
		gl.Vertex3f(p2.X, p2.Y, p2.Z)
	}
	gl.End()
}

// DrawLines draws world-space overlay segments with lighting off.
func (s *Surface) DrawLines(l *geom.LineSet) {
	if l == nil || len(l.Positions) < 2 {
		return
	}
	gl.Disable(gl.LIGHTING)
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadMatrixf(s.view.Ptr())

	gl.LineWidth(l.Width)
	gl.Color3f(l.Color.X, l.Color.Y, l.Color.Z)
	gl.Begin(gl.LINES)
	for _, p := range l.Positions {
		gl.Vertex3f(p.X, p.Y, p.Z)
	}
	gl.End()
	gl.LineWidth(1)

	if s.lit {
		gl.Enable(gl.LIGHTING)
	}
}

// End resets the polygon mode.
func (s *Surface) End() {
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}
