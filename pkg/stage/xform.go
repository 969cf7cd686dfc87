package stage

import "github.com/veldrane/stageview/pkg/math"

// OpKind identifies a transform operator. Rotation angles are degrees.
type OpKind uint8

const (
	OpTranslate OpKind = iota
	OpRotateXYZ
	OpRotateX
	OpRotateY
	OpRotateZ
	OpScale
)

// String returns the operator's attribute suffix, e.g. "rotateXYZ".
func (k OpKind) String() string {
	switch k {
	case OpTranslate:
		return "translate"
	case OpRotateXYZ:
		return "rotateXYZ"
	case OpRotateX:
		return "rotateX"
	case OpRotateY:
		return "rotateY"
	case OpRotateZ:
		return "rotateZ"
	case OpScale:
		return "scale"
	default:
		return "unknown"
	}
}

// ParseOpKind maps an attribute suffix like "rotateXYZ" back to its
// operator kind. The second result is false for unknown suffixes.
func ParseOpKind(s string) (OpKind, bool) {
	switch s {
	case "translate":
		return OpTranslate, true
	case "rotateXYZ":
		return OpRotateXYZ, true
	case "rotateX":
		return OpRotateX, true
	case "rotateY":
		return OpRotateY, true
	case "rotateZ":
		return OpRotateZ, true
	case "scale":
		return OpScale, true
	default:
		return OpTranslate, false
	}
}

// XformOp is one transform operator. Vector ops (translate, rotateXYZ,
// scale) use Vec, single-axis rotates use Angle.
type XformOp struct {
	Kind  OpKind
	Vec   Vec3Attr
	Angle FloatAttr
}

// Translate returns a translate operator.
func Translate(v Vec3Attr) XformOp {
	return XformOp{Kind: OpTranslate, Vec: v}
}

// RotateXYZ returns a three-axis Euler rotation operator (degrees, applied
// to points X first, then Y, then Z).
func RotateXYZ(v Vec3Attr) XformOp {
	return XformOp{Kind: OpRotateXYZ, Vec: v}
}

// RotateX returns a single-axis rotation operator (degrees).
func RotateX(a FloatAttr) XformOp {
	return XformOp{Kind: OpRotateX, Angle: a}
}

// RotateY returns a single-axis rotation operator (degrees).
func RotateY(a FloatAttr) XformOp {
	return XformOp{Kind: OpRotateY, Angle: a}
}

// RotateZ returns a single-axis rotation operator (degrees).
func RotateZ(a FloatAttr) XformOp {
	return XformOp{Kind: OpRotateZ, Angle: a}
}

// Scale returns a scale operator.
func Scale(v Vec3Attr) XformOp {
	return XformOp{Kind: OpScale, Vec: v}
}

// Matrix returns the operator's matrix at time t.
func (op XformOp) Matrix(t float64) math.Mat4 {
	switch op.Kind {
	case OpTranslate:
		v := op.Vec.Eval(t)
		return math.Translate(v.X, v.Y, v.Z)
	case OpRotateXYZ:
		v := op.Vec.Eval(t)
		// X applied first, so with column vectors it sits rightmost.
		rz := math.RotateZ(math.Radians(v.Z))
		ry := math.RotateY(math.Radians(v.Y))
		rx := math.RotateX(math.Radians(v.X))
		return rz.Mul(ry).Mul(rx)
	case OpRotateX:
		return math.RotateX(math.Radians(float32(op.Angle.Eval(t))))
	case OpRotateY:
		return math.RotateY(math.Radians(float32(op.Angle.Eval(t))))
	case OpRotateZ:
		return math.RotateZ(math.Radians(float32(op.Angle.Eval(t))))
	case OpScale:
		v := op.Vec.Eval(t)
		return math.Scale(v.X, v.Y, v.Z)
	default:
		return math.Identity()
	}
}
