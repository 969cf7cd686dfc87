package geom

import (
	"github.com/chewxy/math32"

	"github.com/veldrane/stageview/pkg/math"
)

// Default tessellation resolutions and primitive parameters. Generators are
// deterministic: the same inputs always produce bit-identical buffers, so
// results can be cached by parameter value.
const (
	DefaultSlices = 24 // longitudinal segments
	DefaultStacks = 16 // sphere latitude rows
	DefaultBands  = 8  // capsule hemisphere latitude bands

	DefaultSize          = 1.0
	DefaultRadius        = 1.0
	DefaultHeight        = 2.0
	DefaultCapsuleRadius = 0.5
)

// Cube returns an axis-aligned cube with the given edge length, centered at
// the origin. Six quad faces, two triangles each, exact axis normals.
func Cube(size float32) *Buffer {
	h := size / 2
	buf := &Buffer{
		Positions: []math.Vec3{
			{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
			{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
		},
	}

	faces := []struct {
		quad [4]uint32
		n    math.Vec3
	}{
		{[4]uint32{0, 1, 2, 3}, math.Vec3{Z: -1}},
		{[4]uint32{4, 7, 6, 5}, math.Vec3{Z: 1}},
		{[4]uint32{0, 3, 7, 4}, math.Vec3{X: -1}},
		{[4]uint32{1, 5, 6, 2}, math.Vec3{X: 1}},
		{[4]uint32{0, 4, 5, 1}, math.Vec3{Y: -1}},
		{[4]uint32{3, 2, 6, 7}, math.Vec3{Y: 1}},
	}
	for _, f := range faces {
		q := f.quad
		buf.Indices = append(buf.Indices, q[0], q[1], q[2], q[0], q[2], q[3])
		buf.Normals = append(buf.Normals, f.n, f.n)
	}
	return buf
}

// Sphere returns a latitude/longitude sphere centered at the origin.
// Latitude sweeps -pi/2..pi/2 over stacks rows, longitude 0..2pi over
// slices columns with the seam column duplicated. Triangle normals are the
// analytic sphere normal at the cell midpoint.
func Sphere(radius float32, slices, stacks int) *Buffer {
	if slices < 3 {
		slices = 3
	}
	if stacks < 2 {
		stacks = 2
	}

	buf := &Buffer{}
	for i := 0; i <= stacks; i++ {
		lat := -math32.Pi/2 + math32.Pi*float32(i)/float32(stacks)
		y := radius * math32.Sin(lat)
		ring := radius * math32.Cos(lat)
		for j := 0; j <= slices; j++ {
			lon := 2 * math32.Pi * float32(j) / float32(slices)
			buf.Positions = append(buf.Positions, math.Vec3{
				X: ring * math32.Cos(lon),
				Y: y,
				Z: ring * math32.Sin(lon),
			})
		}
	}

	cols := slices + 1
	for i := 0; i < stacks; i++ {
		latMid := -math32.Pi/2 + math32.Pi*(float32(i)+0.5)/float32(stacks)
		for j := 0; j < slices; j++ {
			lonMid := 2 * math32.Pi * (float32(j) + 0.5) / float32(slices)
			n := math.Vec3{
				X: math32.Cos(latMid) * math32.Cos(lonMid),
				Y: math32.Sin(latMid),
				Z: math32.Cos(latMid) * math32.Sin(lonMid),
			}
			i0 := uint32(i*cols + j)
			i1 := uint32(i*cols + j + 1)
			i2 := uint32((i+1)*cols + j + 1)
			i3 := uint32((i+1)*cols + j)
			buf.Indices = append(buf.Indices, i0, i1, i2, i0, i2, i3)
			buf.Normals = append(buf.Normals, n, n)
		}
	}
	return buf
}

// Cylinder returns a capped cylinder around the Y axis between y=-height/2
// and y=+height/2. Side normals are radial at the segment mid-angle; cap
// normals are exactly (0,1,0) and (0,-1,0).
func Cylinder(radius, height float32, slices int) *Buffer {
	if slices < 3 {
		slices = 3
	}
	h := height / 2

	buf := &Buffer{}
	for _, y := range [2]float32{-h, h} {
		for j := 0; j <= slices; j++ {
			a := 2 * math32.Pi * float32(j) / float32(slices)
			buf.Positions = append(buf.Positions, math.Vec3{
				X: radius * math32.Cos(a),
				Y: y,
				Z: radius * math32.Sin(a),
			})
		}
	}

	cols := slices + 1
	for j := 0; j < slices; j++ {
		mid := 2 * math32.Pi * (float32(j) + 0.5) / float32(slices)
		n := math.Vec3{X: math32.Cos(mid), Z: math32.Sin(mid)}
		i0 := uint32(j)
		i1 := uint32(j + 1)
		i2 := uint32(cols + j + 1)
		i3 := uint32(cols + j)
		buf.Indices = append(buf.Indices, i0, i1, i2, i0, i2, i3)
		buf.Normals = append(buf.Normals, n, n)
	}

	topCenter := uint32(len(buf.Positions))
	buf.Positions = append(buf.Positions, math.Vec3{Y: h})
	botCenter := uint32(len(buf.Positions))
	buf.Positions = append(buf.Positions, math.Vec3{Y: -h})

	up := math.Vec3{Y: 1}
	down := math.Vec3{Y: -1}
	for j := 0; j < slices; j++ {
		buf.Indices = append(buf.Indices, topCenter, uint32(cols+j), uint32(cols+j+1))
		buf.Normals = append(buf.Normals, up)
		buf.Indices = append(buf.Indices, botCenter, uint32(j+1), uint32(j))
		buf.Normals = append(buf.Normals, down)
	}
	return buf
}

// Cone returns a cone with its apex at (0,+height/2,0) and a base cap at
// y=-height/2. Side normals tilt by radius/height; the base cap normal is
// exactly (0,-1,0).
func Cone(radius, height float32, slices int) *Buffer {
	if slices < 3 {
		slices = 3
	}
	h := height / 2
	slope := float32(0)
	if height != 0 {
		slope = radius / height
	}

	buf := &Buffer{Positions: []math.Vec3{{Y: h}}}
	for j := 0; j <= slices; j++ {
		a := 2 * math32.Pi * float32(j) / float32(slices)
		buf.Positions = append(buf.Positions, math.Vec3{
			X: radius * math32.Cos(a),
			Y: -h,
			Z: radius * math32.Sin(a),
		})
	}

	const apex = uint32(0)
	for j := 0; j < slices; j++ {
		mid := 2 * math32.Pi * (float32(j) + 0.5) / float32(slices)
		n := math.Vec3{X: math32.Cos(mid), Y: slope, Z: math32.Sin(mid)}.Normalize()
		buf.Indices = append(buf.Indices, apex, uint32(1+j), uint32(2+j))
		buf.Normals = append(buf.Normals, n)
	}

	base := uint32(len(buf.Positions))
	buf.Positions = append(buf.Positions, math.Vec3{Y: -h})
	for j := 0; j < slices; j++ {
		buf.Indices = append(buf.Indices, base, uint32(2+j), uint32(1+j))
		buf.Normals = append(buf.Normals, math.Vec3{Y: -1})
	}
	return buf
}

// Capsule returns a cylinder of the given height capped with two
// hemispheres of the given radius. The hemispheres use bands latitude rows
// each; pole cells are emitted even when degenerate so triangle counts
// depend only on the resolution.
func Capsule(radius, height float32, slices, bands int) *Buffer {
	if slices < 3 {
		slices = 3
	}
	if bands < 1 {
		bands = 1
	}
	h := height / 2

	buf := &Buffer{}
	ring := func(y, r float32) uint32 {
		start := uint32(len(buf.Positions))
		for j := 0; j <= slices; j++ {
			a := 2 * math32.Pi * float32(j) / float32(slices)
			buf.Positions = append(buf.Positions, math.Vec3{
				X: r * math32.Cos(a),
				Y: y,
				Z: r * math32.Sin(a),
			})
		}
		return start
	}
	quad := func(r0, r1 uint32, j int, n math.Vec3) {
		i0 := r0 + uint32(j)
		i1 := r0 + uint32(j+1)
		i2 := r1 + uint32(j+1)
		i3 := r1 + uint32(j)
		buf.Indices = append(buf.Indices, i0, i1, i2, i0, i2, i3)
		buf.Normals = append(buf.Normals, n, n)
	}

	bot := ring(-h, radius)
	top := ring(h, radius)
	for j := 0; j < slices; j++ {
		mid := 2 * math32.Pi * (float32(j) + 0.5) / float32(slices)
		quad(bot, top, j, math.Vec3{X: math32.Cos(mid), Z: math32.Sin(mid)})
	}

	for _, sign := range [2]float32{1, -1} {
		prev := ring(sign*h, radius)
		for i := 1; i <= bands; i++ {
			lat := math32.Pi / 2 * float32(i) / float32(bands)
			cur := ring(sign*(h+radius*math32.Sin(lat)), radius*math32.Cos(lat))

			latMid := math32.Pi / 2 * (float32(i) - 0.5) / float32(bands)
			for j := 0; j < slices; j++ {
				lonMid := 2 * math32.Pi * (float32(j) + 0.5) / float32(slices)
				n := math.Vec3{
					X: math32.Cos(latMid) * math32.Cos(lonMid),
					Y: sign * math32.Sin(latMid),
					Z: math32.Cos(latMid) * math32.Sin(lonMid),
				}
				if sign > 0 {
					quad(prev, cur, j, n)
				} else {
					quad(cur, prev, j, n)
				}
			}
			prev = cur
		}
	}
	return buf
}
