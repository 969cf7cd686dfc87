// Package geom builds triangle geometry: polygon mesh triangulation,
// procedural primitive tessellation, and the line overlays drawn around a
// scene. All output is object-space float32 with one normal per triangle.
package geom

import "github.com/veldrane/stageview/pkg/math"

// Buffer is one triangle mesh. Indices holds flat triangle triples into
// Positions; Normals holds exactly one unit normal per triangle.
type Buffer struct {
	Positions []math.Vec3
	Indices   []uint32
	Normals   []math.Vec3
}

// TriangleCount returns the number of triangles.
func (b *Buffer) TriangleCount() int {
	return len(b.Indices) / 3
}

// Triangle returns the corner positions of triangle i.
func (b *Buffer) Triangle(i int) (p0, p1, p2 math.Vec3) {
	p0 = b.Positions[b.Indices[i*3]]
	p1 = b.Positions[b.Indices[i*3+1]]
	p2 = b.Positions[b.Indices[i*3+2]]
	return p0, p1, p2
}

// Bounds returns the axis-aligned bounds of the positions. ok is false for
// a buffer with no positions.
func (b *Buffer) Bounds() (min, max math.Vec3, ok bool) {
	if len(b.Positions) == 0 {
		return math.Vec3{}, math.Vec3{}, false
	}
	min, max = b.Positions[0], b.Positions[0]
	for _, p := range b.Positions[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return min, max, true
}

// LineSet is a batch of line segments: positions consumed pairwise, drawn
// in a single color and width.
type LineSet struct {
	Positions []math.Vec3
	Color     math.Vec3
	Width     float32
}

// Grid returns a square grid of lines in the XZ plane at y=0, extending
// size units from the origin on each side.
func Grid(size float32, divisions int, color math.Vec3) *LineSet {
	if divisions < 1 {
		divisions = 1
	}
	step := 2 * size / float32(divisions)

	ls := &LineSet{Color: color, Width: 1}
	for i := 0; i <= divisions; i++ {
		d := -size + float32(i)*step
		ls.Positions = append(ls.Positions,
			math.Vec3{X: d, Z: -size}, math.Vec3{X: d, Z: size},
			math.Vec3{X: -size, Z: d}, math.Vec3{X: size, Z: d},
		)
	}
	return ls
}

// Axes returns the three origin axis lines: +X red, +Y green, +Z blue.
func Axes(length float32) []*LineSet {
	return []*LineSet{
		{Positions: []math.Vec3{{}, {X: length}}, Color: math.Vec3{1, 0.2, 0.2}, Width: 2},
		{Positions: []math.Vec3{{}, {Y: length}}, Color: math.Vec3{0.2, 1, 0.2}, Width: 2},
		{Positions: []math.Vec3{{}, {Z: length}}, Color: math.Vec3{0.2, 0.2, 1}, Width: 2},
	}
}

// BoxLines returns the 12 edges of an axis-aligned box.
func BoxLines(min, max math.Vec3, color math.Vec3) *LineSet {
	c := [8]math.Vec3{
		{min.X, min.Y, min.Z}, {max.X, min.Y, min.Z},
		{max.X, min.Y, max.Z}, {min.X, min.Y, max.Z},
		{min.X, max.Y, min.Z}, {max.X, max.Y, min.Z},
		{max.X, max.Y, max.Z}, {min.X, max.Y, max.Z},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0}, // bottom
		{4, 5}, {5, 6}, {6, 7}, {7, 4}, // top
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // verticals
	}

	ls := &LineSet{Color: color, Width: 1}
	for _, e := range edges {
		ls.Positions = append(ls.Positions, c[e[0]], c[e[1]])
	}
	return ls
}
