// Package camera provides the orbit camera used by the viewer.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/veldrane/stageview/pkg/math"
)

const (
	defaultDistance  = 10
	defaultAzimuth   = 45
	defaultElevation = 30

	// Elevation stops short of the poles so the view direction never
	// aligns with world up.
	maxElevation = 89
)

// OrbitCamera orbits a target point. Angles are stored in degrees.
type OrbitCamera struct {
	Target    math.Vec3
	Distance  float32
	Azimuth   float32 // Horizontal angle around Y
	Elevation float32 // Vertical angle above the XZ plane

	// Projection
	FOV  float32 // Vertical field of view, degrees
	Near float32
	Far  float32

	// Constraints
	MinDistance float32
	MaxDistance float32

	// Sensitivity
	RotateSpeed float32 // Degrees per pixel
	PanSpeed    float32 // World units per pixel per unit distance
	ZoomSpeed   float32 // Fraction per wheel step
}

// NewOrbitCamera creates an orbit camera with viewer defaults.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:    defaultDistance,
		Azimuth:     defaultAzimuth,
		Elevation:   defaultElevation,
		FOV:         45,
		Near:        0.1,
		Far:         10000,
		MinDistance: 0.01,
		MaxDistance: 10000,
		RotateSpeed: 0.3,
		PanSpeed:    0.001,
		ZoomSpeed:   0.1,
	}
}

// EyePosition returns the camera position in world space.
func (c *OrbitCamera) EyePosition() math.Vec3 {
	az := math.Radians(c.Azimuth)
	el := math.Radians(c.Elevation)
	cosEl := math32.Cos(el)
	return math.Vec3{
		X: c.Target.X + c.Distance*cosEl*math32.Sin(az),
		Y: c.Target.Y + c.Distance*math32.Sin(el),
		Z: c.Target.Z + c.Distance*cosEl*math32.Cos(az),
	}
}

// ViewMatrix returns the look-at view matrix.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.EyePosition(), c.Target, math.Vec3{Y: 1})
}

// ProjMatrix returns the perspective projection for the given aspect ratio.
func (c *OrbitCamera) ProjMatrix(aspect float32) math.Mat4 {
	return math.Perspective(math.Radians(c.FOV), aspect, c.Near, c.Far)
}

// Rotate updates the orbit angles from a mouse drag delta.
func (c *OrbitCamera) Rotate(dx, dy float32) {
	c.Azimuth -= dx * c.RotateSpeed
	c.Elevation += dy * c.RotateSpeed
	if c.Elevation > maxElevation {
		c.Elevation = maxElevation
	}
	if c.Elevation < -maxElevation {
		c.Elevation = -maxElevation
	}
}

// Pan moves the target in the view plane. Speed scales with distance so
// panning feels the same at any zoom level.
func (c *OrbitCamera) Pan(dx, dy float32) {
	scale := c.Distance * c.PanSpeed
	az := math.Radians(c.Azimuth)
	right := math.Vec3{X: math32.Cos(az), Z: -math32.Sin(az)}
	c.Target = c.Target.Sub(right.Scale(dx * scale))
	c.Target.Y += dy * scale
}

// Zoom moves toward (positive delta) or away from the target.
func (c *OrbitCamera) Zoom(delta float32) {
	c.Distance *= 1 - delta*c.ZoomSpeed
	c.clampDistance()
}

// FrameBounds centers the target on the bounding box and backs off far
// enough to see all of it. Orbit angles are left alone.
func (c *OrbitCamera) FrameBounds(min, max math.Vec3) {
	c.Target = min.Add(max).Scale(0.5)

	extent := max.Sub(min).MaxComponent()
	if extent > 0 && !math32.IsNaN(extent) && !math32.IsInf(extent, 0) {
		c.Distance = extent * 2
	} else {
		c.Distance = defaultDistance
	}
	c.clampDistance()
}

// Reset returns the camera to its home pose, keeping speeds and limits.
func (c *OrbitCamera) Reset() {
	c.Target = math.Vec3{}
	c.Distance = defaultDistance
	c.Azimuth = defaultAzimuth
	c.Elevation = defaultElevation
}

func (c *OrbitCamera) clampDistance() {
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
