package geom

import "github.com/veldrane/stageview/pkg/math"

// Triangulate converts an indexed polygon mesh (per-face vertex counts plus
// a flat index stream) into a triangle buffer. Each face is fanned around
// its first vertex: a face v0..v{c-1} emits (v0,v1,v2), (v0,v2,v3) and so
// on. Faces with fewer than three vertices are skipped, as are faces whose
// indices fall outside points. Concave faces fan like any other; there is
// no ear clipping.
func Triangulate(points []math.Vec3, counts []int, indices []int) *Buffer {
	buf := &Buffer{Positions: points}

	offset := 0
	for _, c := range counts {
		if c < 0 || offset+c > len(indices) {
			break
		}
		face := indices[offset : offset+c]
		offset += c

		if c < 3 || !validFace(face, len(points)) {
			continue
		}
		for i := 1; i < c-1; i++ {
			i0, i1, i2 := face[0], face[i], face[i+1]
			buf.Indices = append(buf.Indices, uint32(i0), uint32(i1), uint32(i2))
			buf.Normals = append(buf.Normals, triangleNormal(points[i0], points[i1], points[i2]))
		}
	}
	return buf
}

func validFace(face []int, numPoints int) bool {
	for _, idx := range face {
		if idx < 0 || idx >= numPoints {
			return false
		}
	}
	return true
}

// triangleNormal returns the unit face normal, or (0,1,0) when the corners
// are degenerate.
func triangleNormal(p0, p1, p2 math.Vec3) math.Vec3 {
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	if n.Length() == 0 {
		return math.Vec3{Y: 1}
	}
	return n.Normalize()
}
