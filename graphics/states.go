package graphics

import (
	"github.com/bloeys/nmage2d/colors"
	"github.com/bloeys/nmage2d/shaders"
	"github.com/bloeys/nmage2d/textures"
	"github.com/bloeys/nmage2d/transform"
)

// RenderStates bundles everything besides the vertices that defines how a
// draw looks: transform, texture, shader, blend mode and color. A fresh
// value is built per draw call; DefaultRenderStates gives the neutral
// configuration.
type RenderStates struct {
	// World transform applied to the vertices
	Transform transform.Transform

	BlendMode BlendMode

	// Texture to draw with, or nil for none
	Texture *textures.Texture

	// TextureTransform overrides the texture matrix when set. Used by
	// drawables that address a sub-rectangle of their texture
	TextureTransform *transform.Transform

	// Shader to draw with. nil selects a built-in default on the minimal
	// draw path; the advanced path requires it to be set
	Shader *shaders.Shader

	// Color pushed to the shader's color uniform when UseColor is set;
	// opaque white otherwise
	Color    colors.Color
	UseColor bool

	// UseVBO routes the draw through the static quad buffers. Only valid
	// for exactly 4 vertices forming a triangle-strip quad
	UseVBO bool
}

func DefaultRenderStates() RenderStates {
	return RenderStates{
		Transform: transform.Identity(),
		BlendMode: BlendAlpha,
	}
}

// Drawable is anything that can submit vertices to a render target
type Drawable interface {
	Draw(target *RenderTarget, states RenderStates)
}

// AdvancedDrawable is implemented by drawables that can also render through
// the advanced dispatch path, which requires an explicit shader
type AdvancedDrawable interface {
	Drawable
	DrawAdvanced(target *RenderTarget, states RenderStates)
}
