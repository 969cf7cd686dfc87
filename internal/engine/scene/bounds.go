package scene

import (
	"github.com/veldrane/stageview/pkg/math"
	"github.com/veldrane/stageview/pkg/stage"
)

// WorldBounds returns the union of all renderable geometry bounds at time
// t, in world space. ok is false for a stage with no renderable geometry.
func (f *Flattener) WorldBounds(st *stage.Stage, t float64) (min, max math.Vec3, ok bool) {
	first := true
	f.Flatten(st, t, func(it Item) bool {
		bmin, bmax, bok := it.Geo.Bounds()
		if !bok {
			return true
		}
		// Transform all eight box corners; rotation can move any of them
		// to an extreme.
		for _, c := range [8]math.Vec3{
			{bmin.X, bmin.Y, bmin.Z}, {bmax.X, bmin.Y, bmin.Z},
			{bmin.X, bmax.Y, bmin.Z}, {bmax.X, bmax.Y, bmin.Z},
			{bmin.X, bmin.Y, bmax.Z}, {bmax.X, bmin.Y, bmax.Z},
			{bmin.X, bmax.Y, bmax.Z}, {bmax.X, bmax.Y, bmax.Z},
		} {
			w := it.World.TransformPoint(c)
			if first {
				min, max = w, w
				first = false
			} else {
				min = min.Min(w)
				max = max.Max(w)
			}
		}
		return true
	})
	return min, max, !first
}
