// Package render drives a frame. A Dispatcher hands the stage either to an
// advanced renderer or, when none is available or it has failed, to a
// simple draw surface fed from the scene flattener.
package render

import (
	"github.com/veldrane/stageview/internal/engine/geom"
	"github.com/veldrane/stageview/pkg/math"
	"github.com/veldrane/stageview/pkg/stage"
)

// Params are the per-frame render settings.
type Params struct {
	Time       float64
	Mode       Mode
	ClearColor [4]float32
	Lighting   bool
}

// DefaultParams returns settings for a standard shaded frame.
func DefaultParams() Params {
	return Params{
		Mode:       Shaded,
		ClearColor: [4]float32{0.18, 0.18, 0.22, 1.0},
		Lighting:   true,
	}
}

// Surface is the simple draw backend. Begin clears and fixes the frame
// state (viewport, matrices, polygon mode, lighting); draws follow until
// End.
type Surface interface {
	Begin(p Params, view, proj math.Mat4, eye math.Vec3, w, h int)
	SetTransform(world math.Mat4)
	SetColor(c math.Vec3)
	DrawBuffer(b *geom.Buffer)
	DrawLines(l *geom.LineSet)
	End()
}

// Advanced is an optional full-scene renderer. It draws geometry only,
// into the already-cleared frame; a Render error makes the dispatcher fall
// back to the surface.
type Advanced interface {
	SetViewport(w, h int)
	SetCamera(view, proj math.Mat4, eye math.Vec3)
	Render(st *stage.Stage, p Params) error
}
