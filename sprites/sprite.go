// The sprites package draws textured rectangles. A Sprite is a thin handle
// onto a texture sub-rectangle: geometry is a shared unit quad scaled into
// place by a transform, and the sub-rectangle selection lives entirely in
// the texture matrix, so moving or re-rectangling a sprite never rebuilds
// vertices.
package sprites

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nmage2d/colors"
	"github.com/bloeys/nmage2d/graphics"
	"github.com/bloeys/nmage2d/textures"
	"github.com/bloeys/nmage2d/transform"
)

// unitQuad is the triangle-strip unit square every sprite renders. The draw
// goes through the static quad buffers, so only its length matters here
var unitQuad = [4]graphics.Vertex{
	{Position: gglm.Vec2{Data: [2]float32{0, 0}}, Color: colors.White, TexCoords: gglm.Vec2{Data: [2]float32{0, 0}}},
	{Position: gglm.Vec2{Data: [2]float32{0, 1}}, Color: colors.White, TexCoords: gglm.Vec2{Data: [2]float32{0, 1}}},
	{Position: gglm.Vec2{Data: [2]float32{1, 0}}, Color: colors.White, TexCoords: gglm.Vec2{Data: [2]float32{1, 0}}},
	{Position: gglm.Vec2{Data: [2]float32{1, 1}}, Color: colors.White, TexCoords: gglm.Vec2{Data: [2]float32{1, 1}}},
}

type Sprite struct {
	transform.Transformable

	texture     *textures.Texture
	textureRect graphics.IntRect
	color       colors.Color

	// Scales the unit quad to the size of the texture rect
	vertexTransform transform.Transform
	// Maps the unit quad's texture coordinates onto the texture rect,
	// including row flipping for fbo-attached textures
	textureTransform transform.Transform
}

// NewSprite creates a sprite showing the whole of texture (which may be nil
// and set later)
func NewSprite(texture *textures.Texture) Sprite {

	s := Sprite{
		Transformable:    transform.NewTransformable(),
		color:            colors.White,
		vertexTransform:  transform.Identity(),
		textureTransform: transform.Identity(),
	}

	if texture != nil {
		s.SetTexture(texture, true)
	}

	return s
}

// SetTexture changes the texture. With resetRect the texture rect is reset
// to cover the whole new texture; otherwise the current rect is kept.
// A nil texture detaches the sprite, and it stops drawing until a texture is
// set again
func (s *Sprite) SetTexture(texture *textures.Texture, resetRect bool) {

	s.texture = texture

	if texture == nil {
		if resetRect {
			s.SetTextureRect(graphics.IntRect{})
		} else {
			s.updateTransforms()
		}
		return
	}

	if resetRect || (s.textureRect == graphics.IntRect{}) {
		s.SetTextureRect(graphics.IntRect{Left: 0, Top: 0, Width: texture.Width, Height: texture.Height})
	} else {
		s.updateTransforms()
	}
}

// SetTextureRect selects the sub-rectangle of the texture to show. Negative
// sizes mirror the sprite along that axis
func (s *Sprite) SetTextureRect(rect graphics.IntRect) {
	s.textureRect = rect
	s.updateTransforms()
}

func (s *Sprite) SetColor(color colors.Color) {
	s.color = color
}

func (s *Sprite) Texture() *textures.Texture    { return s.texture }
func (s *Sprite) TextureRect() graphics.IntRect { return s.textureRect }
func (s *Sprite) Color() colors.Color           { return s.color }

// LocalBounds returns the bounds of the sprite before its transform
func (s *Sprite) LocalBounds() graphics.FloatRect {

	width := abs(float32(s.textureRect.Width))
	height := abs(float32(s.textureRect.Height))
	return graphics.FloatRect{Left: 0, Top: 0, Width: width, Height: height}
}

// GlobalBounds returns the axis-aligned bounds of the transformed sprite
func (s *Sprite) GlobalBounds() graphics.FloatRect {

	local := s.LocalBounds()
	t := s.Transform()

	corners := [4]gglm.Vec2{
		t.TransformPoint(gglm.Vec2{Data: [2]float32{local.Left, local.Top}}),
		t.TransformPoint(gglm.Vec2{Data: [2]float32{local.Left + local.Width, local.Top}}),
		t.TransformPoint(gglm.Vec2{Data: [2]float32{local.Left, local.Top + local.Height}}),
		t.TransformPoint(gglm.Vec2{Data: [2]float32{local.Left + local.Width, local.Top + local.Height}}),
	}

	minX, minY := corners[0].X(), corners[0].Y()
	maxX, maxY := minX, minY
	for _, c := range corners[1:] {
		minX = min(minX, c.X())
		minY = min(minY, c.Y())
		maxX = max(maxX, c.X())
		maxY = max(maxY, c.Y())
	}

	return graphics.FloatRect{Left: minX, Top: minY, Width: maxX - minX, Height: maxY - minY}
}

// Draw renders the sprite through the target's minimal dispatch path
func (s *Sprite) Draw(target *graphics.RenderTarget, states graphics.RenderStates) {

	if s.texture == nil {
		return
	}

	s.fillStates(&states)
	target.Draw(unitQuad[:], graphics.TriangleStrip, states)
}

// DrawAdvanced renders the sprite through the advanced dispatch path.
// states.Shader must be set by the caller
func (s *Sprite) DrawAdvanced(target *graphics.RenderTarget, states graphics.RenderStates) {

	if s.texture == nil {
		return
	}

	s.fillStates(&states)
	target.DrawAdvanced(unitQuad[:], graphics.TriangleStrip, states)
}

func (s *Sprite) fillStates(states *graphics.RenderStates) {

	states.Transform.Combine(s.Transform()).Combine(&s.vertexTransform)
	states.Texture = s.texture
	states.TextureTransform = &s.textureTransform
	states.Color = s.color
	states.UseColor = true
	states.UseVBO = true
}

// updateTransforms rebuilds the vertex and texture transforms from the
// current texture and rect
func (s *Sprite) updateTransforms() {

	rectW := float32(s.textureRect.Width)
	rectH := float32(s.textureRect.Height)

	s.vertexTransform = transform.New(
		abs(rectW), 0, 0,
		0, abs(rectH), 0,
		0, 0, 1,
	)

	if s.texture == nil {
		s.textureTransform = transform.Identity()
		return
	}

	actualW := float32(s.texture.ActualWidth)
	actualH := float32(s.texture.ActualHeight)

	xScale := rectW / actualW
	xOrigin := float32(s.textureRect.Left) / actualW

	var yScale, yOrigin float32
	if s.texture.IsFlipped {
		// Rows are stored bottom-up: sample from the far edge backwards
		yScale = -rectH / actualH
		yOrigin = (float32(s.texture.Height) - float32(s.textureRect.Top)) / actualH
	} else {
		yScale = rectH / actualH
		yOrigin = float32(s.textureRect.Top) / actualH
	}

	s.textureTransform = transform.New(
		xScale, 0, xOrigin,
		0, yScale, yOrigin,
		0, 0, 1,
	)
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
