package render

import (
	"go.uber.org/zap"

	"github.com/veldrane/stageview/internal/engine/camera"
	"github.com/veldrane/stageview/internal/engine/geom"
	"github.com/veldrane/stageview/internal/engine/scene"
	"github.com/veldrane/stageview/internal/logger"
	"github.com/veldrane/stageview/pkg/math"
	"github.com/veldrane/stageview/pkg/stage"
)

// Grid and axis overlay dimensions.
const (
	gridSize      = 10
	gridDivisions = 20
	axisLength    = 1
)

// Dispatcher renders frames. It prefers the advanced renderer when one was
// provided and it has not failed; the grid and axis overlays and the
// fallback geometry path go through the surface.
type Dispatcher struct {
	flattener *scene.Flattener
	surface   Surface
	advanced  Advanced

	ShowGrid bool
	ShowAxes bool

	// failed latches the first advanced render error. Frames stay on the
	// fallback path until RetryAdvanced clears it.
	failed bool

	grid *geom.LineSet
	axes []*geom.LineSet
}

// NewDispatcher creates a dispatcher drawing to surface. advanced may be
// nil when no advanced renderer is available.
func NewDispatcher(surface Surface, advanced Advanced) *Dispatcher {
	return &Dispatcher{
		flattener: scene.NewFlattener(),
		surface:   surface,
		advanced:  advanced,
		ShowGrid:  true,
		ShowAxes:  true,
		grid:      geom.Grid(gridSize, gridDivisions, math.Vec3{0.3, 0.3, 0.35}),
		axes:      geom.Axes(axisLength),
	}
}

// Frame renders one frame of the stage at the params' time code.
func (d *Dispatcher) Frame(st *stage.Stage, cam *camera.OrbitCamera, p Params, w, h int) {
	aspect := float32(1)
	if h > 0 {
		aspect = float32(w) / float32(h)
	}
	view := cam.ViewMatrix()
	proj := cam.ProjMatrix(aspect)
	eye := cam.EyePosition()

	if d.UsingAdvanced() {
		// Clear and draw the overlays first; the advanced renderer puts
		// geometry on top, sharing the depth buffer.
		d.surface.Begin(p, view, proj, eye, w, h)
		d.drawOverlays()
		d.surface.End()

		d.advanced.SetViewport(w, h)
		d.advanced.SetCamera(view, proj, eye)
		err := d.advanced.Render(st, p)
		if err == nil {
			return
		}
		d.failed = true
		logger.Error("advanced renderer failed, switching to fallback", zap.Error(err))
	}

	d.surface.Begin(p, view, proj, eye, w, h)
	d.drawOverlays()
	d.flattener.Flatten(st, p.Time, func(it scene.Item) bool {
		d.surface.SetTransform(it.World)
		d.surface.SetColor(it.Color)
		d.surface.DrawBuffer(it.Geo)
		return true
	})
	d.surface.End()
}

func (d *Dispatcher) drawOverlays() {
	if d.ShowGrid {
		d.surface.DrawLines(d.grid)
	}
	if d.ShowAxes {
		for _, axis := range d.axes {
			d.surface.DrawLines(axis)
		}
	}
}

// Bounds returns the world bounds of the stage at time t, sharing the
// dispatcher's tessellation cache.
func (d *Dispatcher) Bounds(st *stage.Stage, t float64) (min, max math.Vec3, ok bool) {
	return d.flattener.WorldBounds(st, t)
}

// UsingAdvanced reports whether frames go through the advanced renderer.
func (d *Dispatcher) UsingAdvanced() bool {
	return d.advanced != nil && !d.failed
}

// RetryAdvanced clears the failure latch so the next frame tries the
// advanced renderer again.
func (d *Dispatcher) RetryAdvanced() {
	if d.advanced == nil || !d.failed {
		return
	}
	d.failed = false
	logger.Info("retrying advanced renderer")
}
