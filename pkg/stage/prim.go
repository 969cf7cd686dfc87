package stage

import "github.com/veldrane/stageview/pkg/math"

// Kind classifies a prim for rendering dispatch. The set is closed: every
// authored type name maps onto exactly one of these.
type Kind uint8

const (
	KindOther Kind = iota
	KindXform
	KindMesh
	KindCube
	KindSphere
	KindCylinder
	KindCone
	KindCapsule
	KindLight
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindXform:
		return "Xform"
	case KindMesh:
		return "Mesh"
	case KindCube:
		return "Cube"
	case KindSphere:
		return "Sphere"
	case KindCylinder:
		return "Cylinder"
	case KindCone:
		return "Cone"
	case KindCapsule:
		return "Capsule"
	case KindLight:
		return "Light"
	default:
		return "Other"
	}
}

// ParseKind maps an authored prim type name to its kind. Unknown names
// (including the empty typeless def) map to KindOther.
func ParseKind(typeName string) Kind {
	switch typeName {
	case "Xform":
		return KindXform
	case "Mesh":
		return KindMesh
	case "Cube":
		return KindCube
	case "Sphere":
		return KindSphere
	case "Cylinder":
		return KindCylinder
	case "Cone":
		return KindCone
	case "Capsule":
		return KindCapsule
	case "DistantLight", "DomeLight", "SphereLight", "RectLight", "DiskLight":
		return KindLight
	default:
		return KindOther
	}
}

// Prim is one node of the stage tree.
type Prim struct {
	name     string
	typeName string
	kind     Kind
	parent   *Prim
	children []*Prim

	ops []XformOp

	points      []math.Vec3
	faceCounts  []int
	faceIndices []int

	radius    FloatAttr
	height    FloatAttr
	size      FloatAttr
	intensity FloatAttr

	displayColor    math.Vec3
	hasDisplayColor bool
}

// Name returns the prim's own name ("" for the pseudo-root).
func (p *Prim) Name() string { return p.name }

// TypeName returns the authored type name, e.g. "Cube" or "DistantLight".
func (p *Prim) TypeName() string { return p.typeName }

// Kind returns the prim's kind.
func (p *Prim) Kind() Kind { return p.kind }

// Parent returns the parent prim (nil for the pseudo-root).
func (p *Prim) Parent() *Prim { return p.parent }

// Children returns the child prims in declaration order.
func (p *Prim) Children() []*Prim { return p.children }

// Path returns the absolute prim path.
func (p *Prim) Path() string {
	if p.parent == nil {
		return "/"
	}
	if p.parent.parent == nil {
		return "/" + p.name
	}
	return p.parent.Path() + "/" + p.name
}

func (p *Prim) child(name string) *Prim {
	for _, c := range p.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// XformOps returns the transform operators in declaration order.
func (p *Prim) XformOps() []XformOp { return p.ops }

// AddXformOp appends a transform operator.
func (p *Prim) AddXformOp(op XformOp) { p.ops = append(p.ops, op) }

// SetXformOps replaces the operator list.
func (p *Prim) SetXformOps(ops []XformOp) { p.ops = ops }

// Points returns the mesh vertex positions.
func (p *Prim) Points() []math.Vec3 { return p.points }

// SetPoints sets the mesh vertex positions.
func (p *Prim) SetPoints(points []math.Vec3) { p.points = points }

// FaceCounts returns the per-face vertex counts.
func (p *Prim) FaceCounts() []int { return p.faceCounts }

// SetFaceCounts sets the per-face vertex counts.
func (p *Prim) SetFaceCounts(counts []int) { p.faceCounts = counts }

// FaceIndices returns the flat face vertex index stream.
func (p *Prim) FaceIndices() []int { return p.faceIndices }

// SetFaceIndices sets the flat face vertex index stream.
func (p *Prim) SetFaceIndices(indices []int) { p.faceIndices = indices }

// Radius evaluates the radius attribute at time t. The second result is
// false when no radius was authored.
func (p *Prim) Radius(t float64) (float64, bool) {
	if !p.radius.Authored() {
		return 0, false
	}
	return p.radius.Eval(t), true
}

// SetRadius sets the radius attribute.
func (p *Prim) SetRadius(a FloatAttr) { p.radius = a }

// RadiusAttr returns the raw radius attribute for serialization.
func (p *Prim) RadiusAttr() FloatAttr { return p.radius }

// Height evaluates the height attribute at time t.
func (p *Prim) Height(t float64) (float64, bool) {
	if !p.height.Authored() {
		return 0, false
	}
	return p.height.Eval(t), true
}

// SetHeight sets the height attribute.
func (p *Prim) SetHeight(a FloatAttr) { p.height = a }

// HeightAttr returns the raw height attribute for serialization.
func (p *Prim) HeightAttr() FloatAttr { return p.height }

// Size evaluates the cube size attribute at time t.
func (p *Prim) Size(t float64) (float64, bool) {
	if !p.size.Authored() {
		return 0, false
	}
	return p.size.Eval(t), true
}

// SetSize sets the cube size attribute.
func (p *Prim) SetSize(a FloatAttr) { p.size = a }

// SizeAttr returns the raw size attribute for serialization.
func (p *Prim) SizeAttr() FloatAttr { return p.size }

// Intensity evaluates the light intensity at time t.
func (p *Prim) Intensity(t float64) (float64, bool) {
	if !p.intensity.Authored() {
		return 0, false
	}
	return p.intensity.Eval(t), true
}

// SetIntensity sets the light intensity attribute.
func (p *Prim) SetIntensity(a FloatAttr) { p.intensity = a }

// IntensityAttr returns the raw intensity attribute for serialization.
func (p *Prim) IntensityAttr() FloatAttr { return p.intensity }

// DisplayColor returns the authored display color, if any.
func (p *Prim) DisplayColor() (math.Vec3, bool) {
	return p.displayColor, p.hasDisplayColor
}

// SetDisplayColor sets the display color.
func (p *Prim) SetDisplayColor(c math.Vec3) {
	p.displayColor = c
	p.hasDisplayColor = true
}
