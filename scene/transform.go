package scene

import (
	"github.com/bloeys/gglm/gglm"
)

// Transform is a local pose split into position, rotation and scale.
//
// Mat4 composes it as T*R*S, so the scale and rotation are applied in the node's own
// frame before the result is placed into the parent's frame.
type Transform struct {
	Pos   gglm.Vec3
	Rot   gglm.Quat
	Scale gglm.Vec3
}

func NewTransform() Transform {
	return Transform{
		Pos:   gglm.NewVec3(0, 0, 0),
		Rot:   gglm.NewQuatEuler(0, 0, 0),
		Scale: gglm.NewVec3(1, 1, 1),
	}
}

func NewTransformPos(x, y, z float32) Transform {
	t := NewTransform()
	t.Pos = gglm.NewVec3(x, y, z)
	return t
}

// SetRotEuler sets the rotation from euler angles in radians
func (t *Transform) SetRotEuler(x, y, z float32) {
	t.Rot = gglm.NewQuatEuler(x, y, z)
}

func (t *Transform) Mat4() gglm.Mat4 {

	trMat := gglm.NewTranslationMat(t.Pos.X(), t.Pos.Y(), t.Pos.Z())
	rotMat := gglm.NewRotMatQuat(&t.Rot)
	scaleMat := gglm.NewScaleMat(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return trMat.Mul(rotMat.Mul(&scaleMat)).Mat4
}

func NewIdentity() gglm.Mat4 {
	return gglm.NewMat4Diag(1)
}

func NewTranslation(x, y, z float32) gglm.Mat4 {
	m := gglm.NewMat4Diag(1)
	m.Data[3][0] = x
	m.Data[3][1] = y
	m.Data[3][2] = z
	return m
}

func NewScale(x, y, z float32) gglm.Mat4 {
	m := gglm.NewMat4Diag(1)
	m.Data[0][0] = x
	m.Data[1][1] = y
	m.Data[2][2] = z
	return m
}

// NewRotationEuler returns a rotation matrix from euler angles in radians
func NewRotationEuler(x, y, z float32) gglm.Mat4 {
	q := gglm.NewQuatEuler(x, y, z)
	rotMat := gglm.NewRotMatQuat(&q)
	return rotMat.Mat4
}

// Compose returns a*b, i.e. b is applied first.
func Compose(a, b *gglm.Mat4) gglm.Mat4 {
	out := *a
	out.Mul(b)
	return out
}

// TransformPoint applies the affine matrix m to the point p (w=1).
// Matrices are column major: Data[col][row].
func TransformPoint(m *gglm.Mat4, p *gglm.Vec3) gglm.Vec3 {

	x, y, z := p.X(), p.Y(), p.Z()
	return gglm.NewVec3(
		m.Data[0][0]*x+m.Data[1][0]*y+m.Data[2][0]*z+m.Data[3][0],
		m.Data[0][1]*x+m.Data[1][1]*y+m.Data[2][1]*z+m.Data[3][1],
		m.Data[0][2]*x+m.Data[1][2]*y+m.Data[2][2]*z+m.Data[3][2],
	)
}
