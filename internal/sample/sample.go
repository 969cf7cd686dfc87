// Package sample builds the bundled demonstration stages programmatically.
package sample

import (
	gomath "math"

	"github.com/veldrane/stageview/pkg/math"
	"github.com/veldrane/stageview/pkg/stage"
)

// All maps sample names to builders for the stage set written by the
// samples tool. The builtin viewer default is separate.
func All() map[string]func() *stage.Stage {
	return map[string]func() *stage.Stage{
		"simple":    Simple,
		"mesh":      MeshScene,
		"hierarchy": Hierarchy,
		"animated":  Animated,
	}
}

// Builtin is the stage shown when the viewer starts without a file.
func Builtin() *stage.Stage {
	st := stage.New("sample")

	cube := st.Define("/World/Cube", "Cube")
	cube.SetSize(stage.ConstFloat(1))
	cube.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{-1.5, 0.5, 0})))
	cube.SetDisplayColor(math.Vec3{0.2, 0.5, 0.9})

	sphere := st.Define("/World/Sphere", "Sphere")
	sphere.SetRadius(stage.ConstFloat(0.8))
	sphere.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{1.5, 0.8, 0})))
	sphere.SetDisplayColor(math.Vec3{0.9, 0.3, 0.2})

	cylinder := st.Define("/World/Cylinder", "Cylinder")
	cylinder.SetRadius(stage.ConstFloat(0.5))
	cylinder.SetHeight(stage.ConstFloat(2))
	cylinder.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{0, 1, -2})))
	cylinder.SetDisplayColor(math.Vec3{0.3, 0.8, 0.3})

	ground(st, "/World/Ground", 5, math.Vec3{0.4, 0.4, 0.45})

	light := st.Define("/World/Light", "DistantLight")
	light.SetIntensity(stage.ConstFloat(1))
	light.AddXformOp(stage.RotateXYZ(stage.ConstVec3(math.Vec3{-45, 30, 0})))

	return st
}

// Simple is a row of parametric primitives over a ground plane.
func Simple() *stage.Stage {
	st := stage.New("simple_scene")
	st.Define("/World", "Xform")

	cube := st.Define("/World/Cube", "Cube")
	cube.SetSize(stage.ConstFloat(2))
	cube.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{-3, 1, 0})))
	cube.SetDisplayColor(math.Vec3{0.2, 0.4, 0.8})

	sphere := st.Define("/World/Sphere", "Sphere")
	sphere.SetRadius(stage.ConstFloat(1.2))
	sphere.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{0, 1.2, 0})))
	sphere.SetDisplayColor(math.Vec3{0.8, 0.3, 0.2})

	cylinder := st.Define("/World/Cylinder", "Cylinder")
	cylinder.SetRadius(stage.ConstFloat(0.8))
	cylinder.SetHeight(stage.ConstFloat(3))
	cylinder.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{3, 1.5, 0})))
	cylinder.SetDisplayColor(math.Vec3{0.2, 0.7, 0.3})

	cone := st.Define("/World/Cone", "Cone")
	cone.SetRadius(stage.ConstFloat(1))
	cone.SetHeight(stage.ConstFloat(2))
	cone.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{0, 1, 3})))
	cone.SetDisplayColor(math.Vec3{0.9, 0.7, 0.1})

	ground(st, "/World/Ground", 10, math.Vec3{0.4, 0.4, 0.45})

	sun := st.Define("/World/Sun", "DistantLight")
	sun.SetIntensity(stage.ConstFloat(1.5))
	sun.AddXformOp(stage.RotateXYZ(stage.ConstVec3(math.Vec3{-45, 30, 0})))

	return st
}

// MeshScene carries authored meshes: a faceted pyramid and a generated
// torus.
func MeshScene() *stage.Stage {
	st := stage.New("mesh_scene")

	pyramid := st.Define("/World/Pyramid", "Mesh")
	pyramid.SetPoints([]math.Vec3{
		{-1, 0, -1},
		{1, 0, -1},
		{1, 0, 1},
		{-1, 0, 1},
		{0, 2, 0},
	})
	pyramid.SetFaceIndices([]int{
		0, 1, 2, 3, // base
		0, 1, 4,
		1, 2, 4,
		2, 3, 4,
		3, 0, 4,
	})
	pyramid.SetFaceCounts([]int{4, 3, 3, 3, 3})
	pyramid.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{-3, 0, 0})))
	pyramid.SetDisplayColor(math.Vec3{0.9, 0.7, 0.2})

	torus := st.Define("/World/Torus", "Mesh")
	points, counts, indices := torusMesh(1.5, 0.5, 24, 12)
	torus.SetPoints(points)
	torus.SetFaceCounts(counts)
	torus.SetFaceIndices(indices)
	torus.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{3, 1, 0})))
	torus.SetDisplayColor(math.Vec3{0.3, 0.6, 0.9})

	ground(st, "/World/Ground", 8, math.Vec3{0.35, 0.35, 0.4})

	dome := st.Define("/World/DomeLight", "DomeLight")
	dome.SetIntensity(stage.ConstFloat(0.5))

	sun := st.Define("/World/Sun", "DistantLight")
	sun.SetIntensity(stage.ConstFloat(1))
	sun.AddXformOp(stage.RotateXYZ(stage.ConstVec3(math.Vec3{-50, 25, 0})))

	return st
}

// Hierarchy is an articulated arm exercising nested transforms.
func Hierarchy() *stage.Stage {
	st := stage.New("hierarchy_scene")
	st.Define("/World/Robot", "Xform")

	base := st.Define("/World/Robot/Base", "Cylinder")
	base.SetRadius(stage.ConstFloat(1))
	base.SetHeight(stage.ConstFloat(0.5))
	base.SetDisplayColor(math.Vec3{0.3, 0.3, 0.35})

	lower := st.Define("/World/Robot/Base/LowerArm", "Xform")
	lower.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{0, 0.5, 0})))
	lower.AddXformOp(stage.RotateXYZ(stage.ConstVec3(math.Vec3{0, 0, 20})))

	lowerGeom := st.Define("/World/Robot/Base/LowerArm/Geom", "Capsule")
	lowerGeom.SetRadius(stage.ConstFloat(0.2))
	lowerGeom.SetHeight(stage.ConstFloat(2))
	lowerGeom.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{0, 1.2, 0})))
	lowerGeom.SetDisplayColor(math.Vec3{0.8, 0.4, 0.1})

	upper := st.Define("/World/Robot/Base/LowerArm/UpperArm", "Xform")
	upper.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{0, 2.5, 0})))
	upper.AddXformOp(stage.RotateXYZ(stage.ConstVec3(math.Vec3{0, 0, -40})))

	upperGeom := st.Define("/World/Robot/Base/LowerArm/UpperArm/Geom", "Capsule")
	upperGeom.SetRadius(stage.ConstFloat(0.15))
	upperGeom.SetHeight(stage.ConstFloat(1.5))
	upperGeom.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{0, 0.9, 0})))
	upperGeom.SetDisplayColor(math.Vec3{0.8, 0.5, 0.1})

	gripper := st.Define("/World/Robot/Base/LowerArm/UpperArm/Gripper", "Xform")
	gripper.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{0, 1.8, 0})))

	finger(st, "/World/Robot/Base/LowerArm/UpperArm/Gripper/LeftFinger", -0.15)
	finger(st, "/World/Robot/Base/LowerArm/UpperArm/Gripper/RightFinger", 0.15)

	target := st.Define("/World/Target", "Sphere")
	target.SetRadius(stage.ConstFloat(0.3))
	target.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{2, 0.3, 0})))
	target.SetDisplayColor(math.Vec3{0.9, 0.2, 0.2})

	ground(st, "/World/Ground", 5, math.Vec3{0.4, 0.4, 0.45})

	light := st.Define("/World/Light", "DistantLight")
	light.SetIntensity(stage.ConstFloat(1.2))
	light.AddXformOp(stage.RotateXYZ(stage.ConstVec3(math.Vec3{-45, 30, 0})))

	return st
}

// Animated is a 120 frame stage with one sampled operator per prim: an
// orbiting cube, a bouncing sphere and a pulsing cylinder.
func Animated() *stage.Stage {
	st := stage.New("animated_scene")
	st.SetTimeRange(1, 120)
	st.SetTimeCodesPerSecond(24)

	cube := st.Define("/World/RotatingCube", "Cube")
	cube.SetSize(stage.ConstFloat(1.5))
	spin := make([]stage.FloatSample, 0, 120)
	for frame := 1; frame <= 120; frame++ {
		spin = append(spin, stage.FloatSample{Time: float64(frame), Value: float64(frame) * 3})
	}
	cube.AddXformOp(stage.RotateY(stage.SampledFloat(spin)))
	cube.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{-3, 1, 0})))
	cube.SetDisplayColor(math.Vec3{0.2, 0.5, 0.9})

	sphere := st.Define("/World/BouncingSphere", "Sphere")
	sphere.SetRadius(stage.ConstFloat(0.8))
	bounce := make([]stage.Vec3Sample, 0, 120)
	for frame := 1; frame <= 120; frame++ {
		t := float64(frame) / 24
		y := gomath.Abs(gomath.Sin(t*3))*2 + 0.8
		bounce = append(bounce, stage.Vec3Sample{
			Time:  float64(frame),
			Value: math.Vec3{0, float32(y), 0},
		})
	}
	sphere.AddXformOp(stage.Translate(stage.SampledVec3(bounce)))
	sphere.SetDisplayColor(math.Vec3{0.9, 0.3, 0.2})

	cylinder := st.Define("/World/ScalingCylinder", "Cylinder")
	cylinder.SetRadius(stage.ConstFloat(0.5))
	cylinder.SetHeight(stage.ConstFloat(2))
	cylinder.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{3, 1, 0})))
	pulse := make([]stage.Vec3Sample, 0, 120)
	for frame := 1; frame <= 120; frame++ {
		t := float64(frame) / 24
		s := float32(0.5 + 0.5*gomath.Sin(t*2))
		pulse = append(pulse, stage.Vec3Sample{
			Time:  float64(frame),
			Value: math.Vec3{1 + s*0.5, 1, 1 + s*0.5},
		})
	}
	cylinder.AddXformOp(stage.Scale(stage.SampledVec3(pulse)))
	cylinder.SetDisplayColor(math.Vec3{0.2, 0.8, 0.3})

	ground(st, "/World/Ground", 8, math.Vec3{0.4, 0.4, 0.45})

	light := st.Define("/World/Light", "DistantLight")
	light.SetIntensity(stage.ConstFloat(1.2))
	light.AddXformOp(stage.RotateXYZ(stage.ConstVec3(math.Vec3{-45, 30, 0})))

	return st
}

// ground defines a single-quad floor mesh spanning ±half on X and Z.
func ground(st *stage.Stage, path string, half float32, color math.Vec3) {
	g := st.Define(path, "Mesh")
	g.SetPoints([]math.Vec3{
		{-half, 0, -half},
		{half, 0, -half},
		{half, 0, half},
		{-half, 0, half},
	})
	g.SetFaceIndices([]int{0, 1, 2, 3})
	g.SetFaceCounts([]int{4})
	g.SetDisplayColor(color)
}

// finger defines one gripper finger: a small cube scaled long before the
// sideways offset, so the offset lands in scaled space.
func finger(st *stage.Stage, path string, offsetX float32) {
	f := st.Define(path, "Cube")
	f.SetSize(stage.ConstFloat(0.1))
	f.AddXformOp(stage.Scale(stage.ConstVec3(math.Vec3{1, 3, 0.5})))
	f.AddXformOp(stage.Translate(stage.ConstVec3(math.Vec3{offsetX, 0.15, 0})))
	f.SetDisplayColor(math.Vec3{0.2, 0.2, 0.25})
}

// torusMesh generates the quad grid of a torus lying in the XZ plane.
func torusMesh(major, minor float64, majorSegs, minorSegs int) (points []math.Vec3, counts, indices []int) {
	for i := 0; i < majorSegs; i++ {
		theta := 2 * gomath.Pi * float64(i) / float64(majorSegs)
		for j := 0; j < minorSegs; j++ {
			phi := 2 * gomath.Pi * float64(j) / float64(minorSegs)

			x := (major + minor*gomath.Cos(phi)) * gomath.Cos(theta)
			y := minor * gomath.Sin(phi)
			z := (major + minor*gomath.Cos(phi)) * gomath.Sin(theta)
			points = append(points, math.Vec3{float32(x), float32(y), float32(z)})
		}
	}

	for i := 0; i < majorSegs; i++ {
		nextI := (i + 1) % majorSegs
		for j := 0; j < minorSegs; j++ {
			nextJ := (j + 1) % minorSegs

			v0 := i*minorSegs + j
			v1 := i*minorSegs + nextJ
			v2 := nextI*minorSegs + nextJ
			v3 := nextI*minorSegs + j
			indices = append(indices, v0, v1, v2, v3)
			counts = append(counts, 4)
		}
	}
	return points, counts, indices
}
