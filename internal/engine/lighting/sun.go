// Package lighting derives light parameters from a stage for the shading
// backends.
package lighting

import (
	"github.com/veldrane/stageview/internal/engine/scene"
	"github.com/veldrane/stageview/pkg/math"
	"github.com/veldrane/stageview/pkg/stage"
)

// emission is the direction a distant light shines before any transform.
var emission = math.Vec3{0, 0, -1}

// DefaultDirection lights stages that carry no light prim.
var DefaultDirection = math.Vec3{-0.5, -1, -0.3}.Normalize()

// DirectionFromStage returns the world travel direction and intensity of
// the first light prim in traversal order. Stages without one get
// DefaultDirection and intensity 1.
func DirectionFromStage(st *stage.Stage, t float64) (math.Vec3, float32) {
	if st == nil {
		return DefaultDirection, 1
	}

	var light *stage.Prim
	st.Traverse(func(p *stage.Prim) bool {
		if p.Kind() == stage.KindLight {
			light = p
			return false
		}
		return true
	})
	if light == nil {
		return DefaultDirection, 1
	}

	dir := scene.WorldMatrix(light, t).TransformDirection(emission)
	if dir.Length() == 0 {
		dir = DefaultDirection
	}

	intensity := float32(1)
	if v, ok := light.Intensity(t); ok {
		intensity = float32(v)
	}
	return dir.Normalize(), intensity
}
