package transform

import (
	"math"

	"github.com/bloeys/gglm/gglm"
)

// Transformable holds a decomposed 2D transform (position, rotation, scale
// around an origin) and lazily builds the combined Transform from it.
// Embed it in drawable objects that need to move around.
type Transformable struct {
	position gglm.Vec2
	origin   gglm.Vec2
	scale    gglm.Vec2
	rotation float32

	transform           Transform
	transformNeedUpdate bool
	invTransform        Transform
	invNeedUpdate       bool
}

func NewTransformable() Transformable {
	return Transformable{
		scale:               gglm.Vec2{Data: [2]float32{1, 1}},
		transformNeedUpdate: true,
		invNeedUpdate:       true,
	}
}

func (t *Transformable) markDirty() {
	t.transformNeedUpdate = true
	t.invNeedUpdate = true
}

func (t *Transformable) SetPosition(x, y float32) {
	t.position = gglm.Vec2{Data: [2]float32{x, y}}
	t.markDirty()
}

// SetRotation sets the rotation in degrees, normalized into [0, 360)
func (t *Transformable) SetRotation(angleDeg float32) {

	t.rotation = float32(math.Mod(float64(angleDeg), 360))
	if t.rotation < 0 {
		t.rotation += 360
	}

	t.markDirty()
}

func (t *Transformable) SetScale(x, y float32) {
	t.scale = gglm.Vec2{Data: [2]float32{x, y}}
	t.markDirty()
}

// SetOrigin sets the local point that position/rotation/scale are relative to
func (t *Transformable) SetOrigin(x, y float32) {
	t.origin = gglm.Vec2{Data: [2]float32{x, y}}
	t.markDirty()
}

func (t *Transformable) Position() gglm.Vec2 { return t.position }
func (t *Transformable) Rotation() float32   { return t.rotation }
func (t *Transformable) Scale() gglm.Vec2    { return t.scale }
func (t *Transformable) Origin() gglm.Vec2   { return t.origin }

func (t *Transformable) Move(dx, dy float32) {
	t.SetPosition(t.position.X()+dx, t.position.Y()+dy)
}

func (t *Transformable) Rotate(angleDeg float32) {
	t.SetRotation(t.rotation + angleDeg)
}

// Transform returns the combined transform, rebuilding it if a setter ran
// since the last call
func (t *Transformable) Transform() *Transform {

	if t.transformNeedUpdate {

		rad := -float64(t.rotation) * math.Pi / 180
		cos := float32(math.Cos(rad))
		sin := float32(math.Sin(rad))

		sxc := t.scale.X() * cos
		syc := t.scale.Y() * cos
		sxs := t.scale.X() * sin
		sys := t.scale.Y() * sin
		tx := -t.origin.X()*sxc - t.origin.Y()*sys + t.position.X()
		ty := t.origin.X()*sxs - t.origin.Y()*syc + t.position.Y()

		t.transform = New(
			sxc, sys, tx,
			-sxs, syc, ty,
			0, 0, 1,
		)
		t.transformNeedUpdate = false
	}

	return &t.transform
}

// InverseTransform returns the inverse of Transform, cached the same way
func (t *Transformable) InverseTransform() *Transform {

	if t.invNeedUpdate {
		t.invTransform = t.Transform().Inverse()
		t.invNeedUpdate = false
	}

	return &t.invTransform
}
