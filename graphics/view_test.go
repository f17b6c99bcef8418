package graphics

import (
	"math"
	"testing"

	"github.com/bloeys/gglm/gglm"
)

func approxEq(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func vec2(x, y float32) gglm.Vec2 {
	return gglm.Vec2{Data: [2]float32{x, y}}
}

func xy(v gglm.Vec2) (x, y float32) {
	return v.X(), v.Y()
}

func TestViewProjectionCorners(t *testing.T) {

	v := NewView(FloatRect{0, 0, 100, 50})

	tests := []struct {
		name string
		in   gglm.Vec2
		want gglm.Vec2
	}{
		{"center", vec2(50, 25), vec2(0, 0)},
		{"top left", vec2(0, 0), vec2(-1, 1)},
		{"bottom right", vec2(100, 50), vec2(1, -1)},
		{"top right", vec2(100, 0), vec2(1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			got := v.Transform().TransformPoint(tt.in)
			if !approxEq(got.X(), tt.want.X()) || !approxEq(got.Y(), tt.want.Y()) {
				t.Errorf("got (%v, %v), want (%v, %v)", got.X(), got.Y(), tt.want.X(), tt.want.Y())
			}
		})
	}
}

func TestViewInverseRoundTrip(t *testing.T) {

	v := NewView(FloatRect{10, 20, 300, 200})
	v.SetRotation(30)

	points := []gglm.Vec2{vec2(10, 20), vec2(160, 120), vec2(-50, 400)}
	for _, p := range points {

		back := v.InverseTransform().TransformPoint(v.Transform().TransformPoint(p))
		if !approxEq(back.X(), p.X()) || !approxEq(back.Y(), p.Y()) {
			t.Errorf("point (%v, %v) round-tripped to (%v, %v)", p.X(), p.Y(), back.X(), back.Y())
		}
	}
}

func TestViewReset(t *testing.T) {

	v := NewView(FloatRect{0, 0, 100, 100})
	v.SetRotation(45)
	v.Reset(FloatRect{50, 60, 200, 100})

	if v.Rotation() != 0 {
		t.Errorf("reset should drop rotation, got %v", v.Rotation())
	}
	if cx, cy := xy(v.Center()); !approxEq(cx, 150) || !approxEq(cy, 110) {
		t.Errorf("center is (%v, %v), want (150, 110)", cx, cy)
	}
	if sx, sy := xy(v.Size()); !approxEq(sx, 200) || !approxEq(sy, 100) {
		t.Errorf("size is (%v, %v), want (200, 100)", sx, sy)
	}
}

func TestViewRotationNormalized(t *testing.T) {

	v := NewView(FloatRect{0, 0, 100, 100})

	v.SetRotation(-90)
	if v.Rotation() != 270 {
		t.Errorf("got %v, want 270", v.Rotation())
	}

	v.Rotate(100)
	if !approxEq(v.Rotation(), 10) {
		t.Errorf("got %v, want 10", v.Rotation())
	}
}

func TestViewZoomAndMove(t *testing.T) {

	v := NewView(FloatRect{0, 0, 100, 50})

	v.Zoom(2)
	if sx, sy := xy(v.Size()); !approxEq(sx, 200) || !approxEq(sy, 100) {
		t.Errorf("size after zoom is (%v, %v), want (200, 100)", sx, sy)
	}

	v.Move(10, -5)
	if cx, cy := xy(v.Center()); !approxEq(cx, 60) || !approxEq(cy, 20) {
		t.Errorf("center after move is (%v, %v), want (60, 20)", cx, cy)
	}
}

func TestViewTransformRebuiltAfterChange(t *testing.T) {

	v := NewView(FloatRect{0, 0, 100, 100})
	_ = v.Transform()

	v.SetCenter(100, 100)
	got := v.Transform().TransformPoint(vec2(100, 100))
	if !approxEq(got.X(), 0) || !approxEq(got.Y(), 0) {
		t.Errorf("new center maps to (%v, %v), want (0, 0)", got.X(), got.Y())
	}
}

func TestViewDefaultViewport(t *testing.T) {

	v := NewView(FloatRect{0, 0, 100, 100})
	if v.Viewport() != (FloatRect{0, 0, 1, 1}) {
		t.Errorf("default viewport is %+v, want the full target", v.Viewport())
	}
}
