package geom

import (
	"testing"

	"github.com/veldrane/stageview/pkg/math"
)

func TestTriangulateQuad(t *testing.T) {
	// Unit quad in the XY plane, counter-clockwise.
	points := []math.Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	}
	buf := Triangulate(points, []int{4}, []int{0, 1, 2, 3})

	if got := buf.TriangleCount(); got != 2 {
		t.Fatalf("TriangleCount = %d, want 2", got)
	}
	wantIndices := []uint32{0, 1, 2, 0, 2, 3}
	for i, w := range wantIndices {
		if buf.Indices[i] != w {
			t.Errorf("Indices[%d] = %d, want %d", i, buf.Indices[i], w)
		}
	}
	for i, n := range buf.Normals {
		if n != (math.Vec3{0, 0, 1}) {
			t.Errorf("Normals[%d] = %v, want (0, 0, 1)", i, n)
		}
	}
}

func TestTriangulateFanOrder(t *testing.T) {
	// A hexagon fans into 4 triangles anchored at vertex 0.
	points := make([]math.Vec3, 6)
	for i := range points {
		points[i] = math.Vec3{X: float32(i)}
	}
	buf := Triangulate(points, []int{6}, []int{0, 1, 2, 3, 4, 5})

	if got := buf.TriangleCount(); got != 4 {
		t.Fatalf("TriangleCount = %d, want 4", got)
	}
	for i := 0; i < 4; i++ {
		a := buf.Indices[i*3]
		b := buf.Indices[i*3+1]
		c := buf.Indices[i*3+2]
		if a != 0 || b != uint32(i+1) || c != uint32(i+2) {
			t.Errorf("triangle %d = (%d,%d,%d), want (0,%d,%d)", i, a, b, c, i+1, i+2)
		}
	}
}

func TestTriangulateSkipsSmallFaces(t *testing.T) {
	points := []math.Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	}
	// A lone edge, then a triangle. The edge consumes its indices but
	// produces nothing.
	buf := Triangulate(points, []int{2, 3}, []int{0, 1, 0, 1, 2})

	if got := buf.TriangleCount(); got != 1 {
		t.Fatalf("TriangleCount = %d, want 1", got)
	}
	if buf.Indices[0] != 0 || buf.Indices[1] != 1 || buf.Indices[2] != 2 {
		t.Errorf("triangle = (%d,%d,%d), want (0,1,2)",
			buf.Indices[0], buf.Indices[1], buf.Indices[2])
	}
}

func TestTriangulateMixedCounts(t *testing.T) {
	// Pyramid base quad plus one triangular side: 2 + 1 triangles.
	points := []math.Vec3{
		{-1, 0, -1}, {1, 0, -1}, {1, 0, 1}, {-1, 0, 1}, {0, 2, 0},
	}
	buf := Triangulate(points, []int{4, 3}, []int{0, 1, 2, 3, 0, 1, 4})

	if got := buf.TriangleCount(); got != 3 {
		t.Fatalf("TriangleCount = %d, want 3", got)
	}
	if len(buf.Normals) != buf.TriangleCount() {
		t.Errorf("normals = %d, want one per triangle (%d)",
			len(buf.Normals), buf.TriangleCount())
	}
}

func TestTriangulateDegenerateNormal(t *testing.T) {
	// Collinear corners give a zero cross product.
	points := []math.Vec3{
		{0, 0, 0}, {1, 0, 0}, {2, 0, 0},
	}
	buf := Triangulate(points, []int{3}, []int{0, 1, 2})

	if got := buf.TriangleCount(); got != 1 {
		t.Fatalf("TriangleCount = %d, want 1", got)
	}
	if buf.Normals[0] != (math.Vec3{0, 1, 0}) {
		t.Errorf("degenerate normal = %v, want (0, 1, 0)", buf.Normals[0])
	}
}

func TestTriangulateEmpty(t *testing.T) {
	buf := Triangulate(nil, nil, nil)
	if buf == nil {
		t.Fatal("Triangulate returned nil for empty input")
	}
	if buf.TriangleCount() != 0 || len(buf.Normals) != 0 {
		t.Errorf("empty input: %d triangles, %d normals, want 0, 0",
			buf.TriangleCount(), len(buf.Normals))
	}
}

func TestTriangulateOutOfRangeIndices(t *testing.T) {
	points := []math.Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0},
	}
	// First face references a missing vertex and is dropped; the second
	// face is intact.
	buf := Triangulate(points, []int{3, 3}, []int{0, 1, 9, 0, 1, 2})

	if got := buf.TriangleCount(); got != 1 {
		t.Fatalf("TriangleCount = %d, want 1", got)
	}
}

func TestTriangulateTruncatedIndices(t *testing.T) {
	points := []math.Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0},
	}
	// The index stream ends before the second face; the walk stops there.
	buf := Triangulate(points, []int{3, 4}, []int{0, 1, 2, 0, 1})

	if got := buf.TriangleCount(); got != 1 {
		t.Fatalf("TriangleCount = %d, want 1", got)
	}
}

func TestNormalsUnitLength(t *testing.T) {
	points := []math.Vec3{
		{0, 0, 0}, {3, 0, 0}, {3, 7, 2}, {0, 5, 1},
	}
	buf := Triangulate(points, []int{4}, []int{0, 1, 2, 3})

	for i, n := range buf.Normals {
		l := n.Length()
		if l < 0.9999 || l > 1.0001 {
			t.Errorf("normal %d length = %f, want 1", i, l)
		}
	}
}
