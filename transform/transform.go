// The transform package provides the 2D affine transform used everywhere in
// nmage2d. A Transform is a 3x3 affine matrix stored inside a column-major
// gglm.Mat4 so it can be handed to the GPU directly without conversion.
package transform

import (
	"math"

	"github.com/bloeys/gglm/gglm"
)

// Transform is a 3x3 affine transform. The zero value is NOT valid, use
// Identity or one of the New* constructors.
//
// The 3x3 components a00..a22 live inside the 4x4 column-major matrix as:
//
//	a00 a01  0  a02
//	a10 a11  0  a12
//	 0   0   1   0
//	a20 a21  0  a22
type Transform struct {
	m gglm.Mat4
}

// New builds a transform from the 9 components of a 3x3 matrix,
// given in row-major order
func New(a00, a01, a02, a10, a11, a12, a20, a21, a22 float32) Transform {

	t := Transform{}

	t.m.Data[0] = [4]float32{a00, a10, 0, a20}
	t.m.Data[1] = [4]float32{a01, a11, 0, a21}
	t.m.Data[2] = [4]float32{0, 0, 1, 0}
	t.m.Data[3] = [4]float32{a02, a12, 0, a22}

	return t
}

func Identity() Transform {
	return New(
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	)
}

func NewTranslation(x, y float32) Transform {
	return New(
		1, 0, x,
		0, 1, y,
		0, 0, 1,
	)
}

// NewRotation builds a rotation by angleDeg degrees around the origin
func NewRotation(angleDeg float32) Transform {

	rad := float64(angleDeg) * math.Pi / 180
	cos := float32(math.Cos(rad))
	sin := float32(math.Sin(rad))

	return New(
		cos, -sin, 0,
		sin, cos, 0,
		0, 0, 1,
	)
}

func NewScale(x, y float32) Transform {
	return New(
		x, 0, 0,
		0, y, 0,
		0, 0, 1,
	)
}

// Matrix returns a pointer to the first element of the column-major 4x4
// matrix, in the form expected by gl.LoadMatrixf
func (t *Transform) Matrix() *float32 {
	return &t.m.Data[0][0]
}

// Mat4 returns a copy of the underlying 4x4 matrix
func (t *Transform) Mat4() gglm.Mat4 {
	return t.m
}

func (t *Transform) a00() float32 { return t.m.Data[0][0] }
func (t *Transform) a01() float32 { return t.m.Data[1][0] }
func (t *Transform) a02() float32 { return t.m.Data[3][0] }
func (t *Transform) a10() float32 { return t.m.Data[0][1] }
func (t *Transform) a11() float32 { return t.m.Data[1][1] }
func (t *Transform) a12() float32 { return t.m.Data[3][1] }
func (t *Transform) a20() float32 { return t.m.Data[0][3] }
func (t *Transform) a21() float32 { return t.m.Data[1][3] }
func (t *Transform) a22() float32 { return t.m.Data[3][3] }

// Combine post-multiplies t by other (t = t * other) and returns t
// to allow chaining
func (t *Transform) Combine(other *Transform) *Transform {

	a, b := t, other

	*t = New(
		a.a00()*b.a00()+a.a01()*b.a10()+a.a02()*b.a20(),
		a.a00()*b.a01()+a.a01()*b.a11()+a.a02()*b.a21(),
		a.a00()*b.a02()+a.a01()*b.a12()+a.a02()*b.a22(),

		a.a10()*b.a00()+a.a11()*b.a10()+a.a12()*b.a20(),
		a.a10()*b.a01()+a.a11()*b.a11()+a.a12()*b.a21(),
		a.a10()*b.a02()+a.a11()*b.a12()+a.a12()*b.a22(),

		a.a20()*b.a00()+a.a21()*b.a10()+a.a22()*b.a20(),
		a.a20()*b.a01()+a.a21()*b.a11()+a.a22()*b.a21(),
		a.a20()*b.a02()+a.a21()*b.a12()+a.a22()*b.a22(),
	)

	return t
}

// TransformPoint applies the transform to a 2D point
func (t *Transform) TransformPoint(p gglm.Vec2) gglm.Vec2 {
	return gglm.Vec2{Data: [2]float32{
		t.a00()*p.X() + t.a01()*p.Y() + t.a02(),
		t.a10()*p.X() + t.a11()*p.Y() + t.a12(),
	}}
}

// Inverse returns the inverse transform, or identity if t is not invertible
func (t *Transform) Inverse() Transform {

	det := t.a00()*(t.a22()*t.a11()-t.a21()*t.a12()) -
		t.a10()*(t.a22()*t.a01()-t.a21()*t.a02()) +
		t.a20()*(t.a12()*t.a01()-t.a11()*t.a02())

	if det == 0 {
		return Identity()
	}

	return New(
		(t.a22()*t.a11()-t.a21()*t.a12())/det,
		-(t.a22()*t.a01()-t.a21()*t.a02())/det,
		(t.a12()*t.a01()-t.a11()*t.a02())/det,

		-(t.a22()*t.a10()-t.a20()*t.a12())/det,
		(t.a22()*t.a00()-t.a20()*t.a02())/det,
		-(t.a12()*t.a00()-t.a10()*t.a02())/det,

		(t.a21()*t.a10()-t.a20()*t.a11())/det,
		-(t.a21()*t.a00()-t.a20()*t.a01())/det,
		(t.a11()*t.a00()-t.a10()*t.a01())/det,
	)
}

// Translate combines a translation into t and returns t
func (t *Transform) Translate(x, y float32) *Transform {
	tr := NewTranslation(x, y)
	return t.Combine(&tr)
}

// Rotate combines a rotation of angleDeg degrees into t and returns t
func (t *Transform) Rotate(angleDeg float32) *Transform {
	r := NewRotation(angleDeg)
	return t.Combine(&r)
}

// Scale combines a scale into t and returns t
func (t *Transform) Scale(x, y float32) *Transform {
	s := NewScale(x, y)
	return t.Combine(&s)
}
