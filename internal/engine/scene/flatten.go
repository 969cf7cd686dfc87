// Package scene flattens a stage into world-space draw items: transform
// resolution, tessellation dispatch, and world bounds. It knows nothing
// about any rendering backend.
package scene

import (
	"github.com/veldrane/stageview/internal/engine/geom"
	"github.com/veldrane/stageview/pkg/math"
	"github.com/veldrane/stageview/pkg/stage"
)

// DefaultColor is used for prims without an authored display color.
var DefaultColor = math.Vec3{0.7, 0.7, 0.8}

// Item is one draw tuple: geometry with its world transform and color.
// Cached marks geometry shared from the primitive cache; cached buffers
// must not be mutated.
type Item struct {
	Prim   *stage.Prim
	World  math.Mat4
	Geo    *geom.Buffer
	Color  math.Vec3
	Cached bool
}

// Flattener resolves transforms and tessellates renderable prims against a
// shared primitive cache.
type Flattener struct {
	Cache *geom.Cache
}

// NewFlattener returns a flattener with its own cache.
func NewFlattener() *Flattener {
	return &Flattener{Cache: geom.NewCache()}
}

// Flatten walks the stage at time t in pre-order, emitting one item per
// renderable prim as it is reached. Xform, light, and unknown prims emit
// nothing, but their children are still visited. emit returning false
// stops the walk.
func (f *Flattener) Flatten(st *stage.Stage, t float64, emit func(Item) bool) {
	if st == nil {
		return
	}
	f.walk(st.Root(), math.Identity(), t, emit)
}

func (f *Flattener) walk(p *stage.Prim, parent math.Mat4, t float64, emit func(Item) bool) bool {
	world := parent.Mul(LocalMatrix(p, t))

	if geo, cached, ok := f.tessellate(p, t); ok {
		it := Item{
			Prim:   p,
			World:  world,
			Geo:    geo,
			Color:  displayColor(p),
			Cached: cached,
		}
		if !emit(it) {
			return false
		}
	}

	for _, c := range p.Children() {
		if !f.walk(c, world, t, emit) {
			return false
		}
	}
	return true
}

// tessellate builds or fetches geometry for a renderable prim. This switch
// is the single kind dispatch of the pipeline; a new prim kind plugs in
// here. Mesh buffers are rebuilt per call since authored data varies per
// prim; parametric primitives come from the cache.
func (f *Flattener) tessellate(p *stage.Prim, t float64) (geo *geom.Buffer, cached, ok bool) {
	switch p.Kind() {
	case stage.KindMesh:
		return geom.Triangulate(p.Points(), p.FaceCounts(), p.FaceIndices()), false, true
	case stage.KindCube:
		return f.Cache.Cube(param(p.Size, t, geom.DefaultSize)), true, true
	case stage.KindSphere:
		return f.Cache.Sphere(
			param(p.Radius, t, geom.DefaultRadius),
			geom.DefaultSlices, geom.DefaultStacks), true, true
	case stage.KindCylinder:
		return f.Cache.Cylinder(
			param(p.Radius, t, geom.DefaultRadius),
			param(p.Height, t, geom.DefaultHeight),
			geom.DefaultSlices), true, true
	case stage.KindCone:
		return f.Cache.Cone(
			param(p.Radius, t, geom.DefaultRadius),
			param(p.Height, t, geom.DefaultHeight),
			geom.DefaultSlices), true, true
	case stage.KindCapsule:
		return f.Cache.Capsule(
			param(p.Radius, t, geom.DefaultCapsuleRadius),
			param(p.Height, t, geom.DefaultHeight),
			geom.DefaultSlices, geom.DefaultBands), true, true
	default:
		return nil, false, false
	}
}

// param evaluates an optional prim attribute, falling back to the
// primitive default.
func param(get func(float64) (float64, bool), t, def float64) float32 {
	if v, ok := get(t); ok {
		return float32(v)
	}
	return float32(def)
}

func displayColor(p *stage.Prim) math.Vec3 {
	if c, ok := p.DisplayColor(); ok {
		return c
	}
	return DefaultColor
}
