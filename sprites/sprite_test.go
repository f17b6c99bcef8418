package sprites

import (
	"math"
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nmage2d/graphics"
	"github.com/bloeys/nmage2d/textures"
)

func approxEq(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func vec2(x, y float32) gglm.Vec2 {
	return gglm.Vec2{Data: [2]float32{x, y}}
}

func testTexture(width, height int32) *textures.Texture {
	return &textures.Texture{
		Width: width, Height: height,
		ActualWidth: width, ActualHeight: height,
	}
}

func TestNewSpriteCoversWholeTexture(t *testing.T) {

	s := NewSprite(testTexture(64, 32))

	want := graphics.IntRect{Left: 0, Top: 0, Width: 64, Height: 32}
	if s.TextureRect() != want {
		t.Errorf("texture rect is %+v, want %+v", s.TextureRect(), want)
	}

	if b := s.LocalBounds(); b.Width != 64 || b.Height != 32 {
		t.Errorf("local bounds are %+v", b)
	}
}

func TestVertexTransformScalesUnitQuad(t *testing.T) {

	s := NewSprite(testTexture(64, 32))
	s.SetTextureRect(graphics.IntRect{Left: 0, Top: 0, Width: 16, Height: 8})

	got := s.vertexTransform.TransformPoint(vec2(1, 1))
	if !approxEq(got.X(), 16) || !approxEq(got.Y(), 8) {
		t.Errorf("unit quad corner maps to (%v, %v), want (16, 8)", got.X(), got.Y())
	}
}

func TestTextureTransformSelectsSubRect(t *testing.T) {

	s := NewSprite(testTexture(64, 32))
	s.SetTextureRect(graphics.IntRect{Left: 16, Top: 8, Width: 32, Height: 16})

	// Unit quad texcoord (0,0) should sample the rect's top left, (1,1) its
	// bottom right, in normalized texture space
	got := s.textureTransform.TransformPoint(vec2(0, 0))
	if !approxEq(got.X(), 0.25) || !approxEq(got.Y(), 0.25) {
		t.Errorf("(0,0) maps to (%v, %v), want (0.25, 0.25)", got.X(), got.Y())
	}

	got = s.textureTransform.TransformPoint(vec2(1, 1))
	if !approxEq(got.X(), 0.75) || !approxEq(got.Y(), 0.75) {
		t.Errorf("(1,1) maps to (%v, %v), want (0.75, 0.75)", got.X(), got.Y())
	}
}

func TestTextureTransformFlipsFboTextures(t *testing.T) {

	tex := testTexture(64, 32)
	tex.IsFlipped = true
	s := NewSprite(tex)

	// Rows are stored bottom-up, so the quad's top must sample the last row
	got := s.textureTransform.TransformPoint(vec2(0, 0))
	if !approxEq(got.Y(), 1) {
		t.Errorf("top edge samples v=%v, want 1", got.Y())
	}

	got = s.textureTransform.TransformPoint(vec2(0, 1))
	if !approxEq(got.Y(), 0) {
		t.Errorf("bottom edge samples v=%v, want 0", got.Y())
	}
}

func TestNegativeRectWidthMirrors(t *testing.T) {

	s := NewSprite(testTexture(64, 32))
	s.SetTextureRect(graphics.IntRect{Left: 64, Top: 0, Width: -64, Height: 32})

	// Geometry keeps its size, sampling runs right to left
	if b := s.LocalBounds(); b.Width != 64 {
		t.Errorf("local bounds width is %v, want 64", b.Width)
	}

	got := s.textureTransform.TransformPoint(vec2(0, 0))
	if !approxEq(got.X(), 1) {
		t.Errorf("(0,·) samples u=%v, want 1", got.X())
	}

	got = s.textureTransform.TransformPoint(vec2(1, 0))
	if !approxEq(got.X(), 0) {
		t.Errorf("(1,·) samples u=%v, want 0", got.X())
	}
}

func TestSetTextureKeepsRectWhenAsked(t *testing.T) {

	s := NewSprite(testTexture(64, 32))
	s.SetTextureRect(graphics.IntRect{Left: 0, Top: 0, Width: 16, Height: 16})

	s.SetTexture(testTexture(128, 128), false)
	if s.TextureRect().Width != 16 {
		t.Errorf("rect was reset: %+v", s.TextureRect())
	}

	s.SetTexture(testTexture(128, 128), true)
	if s.TextureRect().Width != 128 || s.TextureRect().Height != 128 {
		t.Errorf("rect was not reset: %+v", s.TextureRect())
	}
}

func TestSetTextureNilDetaches(t *testing.T) {

	s := NewSprite(testTexture(64, 32))

	s.SetTexture(nil, true)

	if s.Texture() != nil {
		t.Error("texture must be detached")
	}
	if s.TextureRect() != (graphics.IntRect{}) {
		t.Errorf("rect is %+v, want empty", s.TextureRect())
	}

	// A detached sprite keeps its rect when asked and must not draw
	s.SetTexture(testTexture(64, 32), true)
	s.SetTextureRect(graphics.IntRect{Left: 0, Top: 0, Width: 16, Height: 16})
	s.SetTexture(nil, false)
	if s.TextureRect().Width != 16 {
		t.Errorf("rect was reset: %+v", s.TextureRect())
	}

	rt := graphics.NewRenderTarget(graphics.NewContext(), 100, 100)
	s.Draw(rt, graphics.DefaultRenderStates())
	s.DrawAdvanced(rt, graphics.DefaultRenderStates())
}

func TestGlobalBoundsFollowTransform(t *testing.T) {

	s := NewSprite(testTexture(10, 20))
	s.SetPosition(100, 200)

	b := s.GlobalBounds()
	if !approxEq(b.Left, 100) || !approxEq(b.Top, 200) || !approxEq(b.Width, 10) || !approxEq(b.Height, 20) {
		t.Errorf("bounds are %+v", b)
	}

	// A 90 degree rotation swaps width and height of the aabb
	s.SetRotation(90)
	b = s.GlobalBounds()
	if !approxEq(b.Width, 20) || !approxEq(b.Height, 10) {
		t.Errorf("rotated bounds are %+v, want 20x10", b)
	}
}

func TestFillStatesRoutesThroughQuadBuffers(t *testing.T) {

	s := NewSprite(testTexture(32, 32))
	s.SetPosition(5, 5)

	states := graphics.DefaultRenderStates()
	s.fillStates(&states)

	if !states.UseVBO {
		t.Error("sprites must use the static quad buffers")
	}
	if !states.UseColor {
		t.Error("sprites must push their color")
	}
	if states.Texture != s.texture {
		t.Error("states must carry the sprite's texture")
	}
	if states.TextureTransform == nil {
		t.Error("states must carry the texture transform")
	}

	// Combined transform scales the unit quad to sprite size at position
	corner := states.Transform.TransformPoint(vec2(1, 1))
	if !approxEq(corner.X(), 37) || !approxEq(corner.Y(), 37) {
		t.Errorf("quad corner lands at (%v, %v), want (37, 37)", corner.X(), corner.Y())
	}
}
