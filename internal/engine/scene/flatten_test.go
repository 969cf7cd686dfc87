package scene

import (
	"testing"

	"github.com/veldrane/stageview/pkg/math"
	"github.com/veldrane/stageview/pkg/stage"
)

func collect(f *Flattener, st *stage.Stage, t float64) []Item {
	var items []Item
	f.Flatten(st, t, func(it Item) bool {
		items = append(items, it)
		return true
	})
	return items
}

func TestFlattenPrimitives(t *testing.T) {
	st := stage.New("test")
	cube := st.Define("/World/Box", "Cube")
	cube.SetSize(stage.ConstFloat(2))
	sphere := st.Define("/World/Ball", "Sphere")
	sphere.SetRadius(stage.ConstFloat(1.2))
	st.Define("/World/Sun", "DistantLight")

	items := collect(NewFlattener(), st, 0)

	if len(items) != 2 {
		t.Fatalf("items = %d, want 2 (light emits nothing)", len(items))
	}
	if got := items[0].Geo.TriangleCount(); got != 12 {
		t.Errorf("cube triangles = %d, want 12", got)
	}
	if !items[0].Cached || !items[1].Cached {
		t.Error("primitive geometry should be cached")
	}
	if items[0].Prim != cube || items[1].Prim != sphere {
		t.Error("items out of pre-order")
	}
}

func TestFlattenDefaults(t *testing.T) {
	st := stage.New("test")
	st.Define("/Ball", "Sphere") // no radius, no color

	items := collect(NewFlattener(), st, 0)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].Color != DefaultColor {
		t.Errorf("color = %v, want default %v", items[0].Color, DefaultColor)
	}

	// Default radius 1: every vertex at unit distance.
	for _, p := range items[0].Geo.Positions {
		if d := p.Length(); d < 0.999 || d > 1.001 {
			t.Fatalf("default sphere vertex at distance %f, want 1", d)
		}
	}
}

func TestFlattenAuthoredColor(t *testing.T) {
	st := stage.New("test")
	cube := st.Define("/Box", "Cube")
	cube.SetDisplayColor(math.Vec3{0.2, 0.4, 0.8})

	items := collect(NewFlattener(), st, 0)
	if items[0].Color != (math.Vec3{0.2, 0.4, 0.8}) {
		t.Errorf("color = %v, want authored (0.2 0.4 0.8)", items[0].Color)
	}
}

func TestFlattenHierarchyTransforms(t *testing.T) {
	st := stage.New("test")
	a := st.Define("/A", "Xform")
	a.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{1, 0, 0})))
	b := st.Define("/A/B", "Cube")
	b.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{0, 2, 0})))

	items := collect(NewFlattener(), st, 0)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}

	got := items[0].World.TransformPoint(math.Vec3{})
	want := math.Vec3{1, 2, 0}
	if got != want {
		t.Errorf("world origin = %v, want %v", got, want)
	}
}

func TestFlattenScaleBeforeTranslate(t *testing.T) {
	// Declaration order scale, translate makes the translation scale too.
	st := stage.New("test")
	p := st.Define("/Finger", "Cube")
	p.AddXformOp(stage.Scale(stage.ConstVec3(math.Vec3{1, 3, 0.5})))
	p.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{-0.15, 0.15, 0})))

	items := collect(NewFlattener(), st, 0)
	got := items[0].World.TransformPoint(math.Vec3{})
	want := math.Vec3{-0.15, 0.45, 0}
	if abs(got.X-want.X) > 1e-5 || abs(got.Y-want.Y) > 1e-5 || abs(got.Z-want.Z) > 1e-5 {
		t.Errorf("world origin = %v, want %v", got, want)
	}
}

func TestFlattenAnimated(t *testing.T) {
	st := stage.New("test")
	p := st.Define("/Ball", "Sphere")
	p.AddXformOp(stage.Translate(stage.SampledVec3([]stage.Vec3Sample{
		{Time: 0, Value: math.Vec3{0, 0, 0}},
		{Time: 10, Value: math.Vec3{0, 4, 0}},
	})))

	f := NewFlattener()
	at := func(tc float64) math.Vec3 {
		items := collect(f, st, tc)
		return items[0].World.TransformPoint(math.Vec3{})
	}

	if got := at(5); got != (math.Vec3{0, 2, 0}) {
		t.Errorf("t=5 origin = %v, want (0, 2, 0)", got)
	}
	if got := at(100); got != (math.Vec3{0, 4, 0}) {
		t.Errorf("t=100 origin = %v, want clamped (0, 4, 0)", got)
	}
}

func TestFlattenSharesCachedGeometry(t *testing.T) {
	st := stage.New("test")
	for _, path := range []string{"/A", "/B"} {
		p := st.Define(path, "Sphere")
		p.SetRadius(stage.ConstFloat(1.2))
	}

	items := collect(NewFlattener(), st, 0)
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Geo != items[1].Geo {
		t.Error("identical spheres should share one cached buffer")
	}
}

func TestFlattenMeshNotCached(t *testing.T) {
	st := stage.New("test")
	m := st.Define("/Ground", "Mesh")
	m.SetPoints([]math.Vec3{{-1, 0, -1}, {1, 0, -1}, {1, 0, 1}, {-1, 0, 1}})
	m.SetFaceCounts([]int{4})
	m.SetFaceIndices([]int{0, 1, 2, 3})

	items := collect(NewFlattener(), st, 0)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].Cached {
		t.Error("mesh geometry should not be cached")
	}
	if got := items[0].Geo.TriangleCount(); got != 2 {
		t.Errorf("ground triangles = %d, want 2", got)
	}
}

func TestFlattenEmptyMeshStillEmits(t *testing.T) {
	st := stage.New("test")
	st.Define("/Empty", "Mesh")

	items := collect(NewFlattener(), st, 0)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].Geo.TriangleCount() != 0 {
		t.Errorf("empty mesh triangles = %d, want 0", items[0].Geo.TriangleCount())
	}
}

func TestFlattenEarlyStop(t *testing.T) {
	st := stage.New("test")
	st.Define("/A", "Cube")
	st.Define("/B", "Cube")

	count := 0
	NewFlattener().Flatten(st, 0, func(Item) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("early stop emitted %d items, want 1", count)
	}
}

func TestLocalMatrixOrder(t *testing.T) {
	st := stage.New("test")
	p := st.Define("/P", "Xform")
	p.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{5, 0, 0})))
	p.AddXformOp(stage.RotateZ(stage.ConstFloat(90)))
	p.AddXformOp(stage.Scale(stage.ConstVec3(math.Vec3{2, 2, 2})))

	// Scale first: (1,0,0) -> (2,0,0), rotate 90 about Z -> (0,2,0),
	// then translate -> (5,2,0).
	got := LocalMatrix(p, 0).TransformPoint(math.Vec3{1, 0, 0})
	want := math.Vec3{5, 2, 0}
	if abs(got.X-want.X) > 1e-4 || abs(got.Y-want.Y) > 1e-4 || abs(got.Z-want.Z) > 1e-4 {
		t.Errorf("local transform = %v, want %v", got, want)
	}
}

func TestLocalMatrixNoOps(t *testing.T) {
	st := stage.New("test")
	p := st.Define("/P", "Xform")
	if LocalMatrix(p, 0) != math.Identity() {
		t.Error("prim without operators should have identity local matrix")
	}
}

func TestWorldMatrixMatchesFlatten(t *testing.T) {
	st := stage.New("test")
	a := st.Define("/A", "Xform")
	a.AddXformOp(stage.RotateY(stage.ConstFloat(90)))
	b := st.Define("/A/B", "Cube")
	b.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{1, 0, 0})))

	items := collect(NewFlattener(), st, 0)
	direct := WorldMatrix(b, 0)
	for i := range direct {
		if abs(direct[i]-items[0].World[i]) > 1e-5 {
			t.Fatalf("WorldMatrix disagrees with flatten at element %d", i)
		}
	}
}

func TestWorldBounds(t *testing.T) {
	st := stage.New("test")
	c := st.Define("/Box", "Cube")
	c.SetSize(stage.ConstFloat(2))
	c.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{10, 0, 0})))

	min, max, ok := NewFlattener().WorldBounds(st, 0)
	if !ok {
		t.Fatal("WorldBounds not ok")
	}
	wantMin := math.Vec3{9, -1, -1}
	wantMax := math.Vec3{11, 1, 1}
	if min != wantMin || max != wantMax {
		t.Errorf("bounds = %v..%v, want %v..%v", min, max, wantMin, wantMax)
	}
}

func TestWorldBoundsEmptyStage(t *testing.T) {
	st := stage.New("test")
	st.Define("/World", "Xform")

	if _, _, ok := NewFlattener().WorldBounds(st, 0); ok {
		t.Error("stage without geometry should report no bounds")
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
