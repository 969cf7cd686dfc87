package scene

import (
	"github.com/veldrane/stageview/pkg/math"
	"github.com/veldrane/stageview/pkg/stage"
)

// LocalMatrix returns the prim's local transform at time t: the product of
// its operator matrices in declaration order. With column vectors, the
// conventional translate, rotate, scale listing yields T*R*S, so scale
// applies to points first. A prim with no operators is the identity.
func LocalMatrix(p *stage.Prim, t float64) math.Mat4 {
	m := math.Identity()
	for _, op := range p.XformOps() {
		m = m.Mul(op.Matrix(t))
	}
	return m
}

// WorldMatrix returns the prim's world transform at time t by accumulating
// local transforms from the root down. The flattener carries this product
// through its walk; WorldMatrix recomputes it for a single prim.
func WorldMatrix(p *stage.Prim, t float64) math.Mat4 {
	if p == nil || p.Parent() == nil {
		return math.Identity()
	}
	return WorldMatrix(p.Parent(), t).Mul(LocalMatrix(p, t))
}
