package graphics

import (
	"math"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nmage2d/transform"
)

// View is a 2D camera: a rectangle of the world to show, a rotation, and
// the fraction of the target it maps onto. The projection transform and its
// inverse are built lazily because views are mutated far more rarely than
// they are drawn with.
type View struct {
	center   gglm.Vec2
	size     gglm.Vec2
	rotation float32
	viewport FloatRect

	transform      transform.Transform
	transformOk    bool
	invTransform   transform.Transform
	invTransformOk bool
}

// NewView creates a view showing the given world rectangle on the whole target
func NewView(rect FloatRect) View {

	v := View{viewport: FloatRect{0, 0, 1, 1}}
	v.Reset(rect)
	return v
}

// Reset re-targets the view to the given world rectangle, dropping any rotation
func (v *View) Reset(rect FloatRect) {

	v.center = gglm.Vec2{Data: [2]float32{rect.Left + rect.Width/2, rect.Top + rect.Height/2}}
	v.size = gglm.Vec2{Data: [2]float32{rect.Width, rect.Height}}
	v.rotation = 0

	v.transformOk = false
	v.invTransformOk = false
}

func (v *View) SetCenter(x, y float32) {
	v.center = gglm.Vec2{Data: [2]float32{x, y}}
	v.transformOk = false
	v.invTransformOk = false
}

func (v *View) SetSize(width, height float32) {
	v.size = gglm.Vec2{Data: [2]float32{width, height}}
	v.transformOk = false
	v.invTransformOk = false
}

// SetRotation sets the view rotation in degrees, normalized into [0, 360)
func (v *View) SetRotation(angleDeg float32) {

	v.rotation = float32(math.Mod(float64(angleDeg), 360))
	if v.rotation < 0 {
		v.rotation += 360
	}

	v.transformOk = false
	v.invTransformOk = false
}

// SetViewport sets the fraction of the target the view maps onto,
// e.g. {0, 0, 0.5, 1} for the left half
func (v *View) SetViewport(viewport FloatRect) {
	v.viewport = viewport
}

func (v *View) Center() gglm.Vec2   { return v.center }
func (v *View) Size() gglm.Vec2     { return v.size }
func (v *View) Rotation() float32   { return v.rotation }
func (v *View) Viewport() FloatRect { return v.viewport }

func (v *View) Move(dx, dy float32) {
	v.SetCenter(v.center.X()+dx, v.center.Y()+dy)
}

func (v *View) Rotate(angleDeg float32) {
	v.SetRotation(v.rotation + angleDeg)
}

// Zoom scales the visible world rectangle: factors < 1 zoom in, > 1 zoom out
func (v *View) Zoom(factor float32) {
	v.SetSize(v.size.X()*factor, v.size.Y()*factor)
}

// Transform returns the projection transform of the view, rebuilding it if
// the view changed since the last call
func (v *View) Transform() *transform.Transform {

	if !v.transformOk {

		rad := float64(v.rotation) * math.Pi / 180
		cos := float32(math.Cos(rad))
		sin := float32(math.Sin(rad))

		tx := -v.center.X()*cos - v.center.Y()*sin + v.center.X()
		ty := v.center.X()*sin - v.center.Y()*cos + v.center.Y()

		// Projection components
		a := 2 / v.size.X()
		b := -2 / v.size.Y()
		c := -a * v.center.X()
		d := -b * v.center.Y()

		v.transform = transform.New(
			a*cos, a*sin, a*tx+c,
			-b*sin, b*cos, b*ty+d,
			0, 0, 1,
		)
		v.transformOk = true
	}

	return &v.transform
}

// InverseTransform returns the inverse of Transform, cached the same way
func (v *View) InverseTransform() *transform.Transform {

	if !v.invTransformOk {
		v.invTransform = v.Transform().Inverse()
		v.invTransformOk = true
	}

	return &v.invTransform
}
