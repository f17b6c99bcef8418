package graphics

import (
	"errors"

	"github.com/bloeys/nmage2d/buffers"
	"github.com/bloeys/nmage2d/textures"
	"github.com/go-gl/gl/v2.1/gl"
)

// RenderTexture is an offscreen render target backed by an fbo whose color
// attachment can afterwards be drawn like any other texture. The attachment
// is stored bottom-up, so the texture is marked flipped and the texture
// matrix compensates when it is sampled
type RenderTexture struct {
	RenderTarget

	fbo     buffers.Framebuffer
	texture *textures.Texture
}

// NewRenderTexture creates an offscreen target of the given size sharing ctx
// with the other targets on the same GL context. Requires a current GL
// context supporting EXT_framebuffer_object
func NewRenderTexture(ctx *Context, width, height int32, smooth bool) (*RenderTexture, error) {

	texture, err := textures.NewEmpty(width, height, smooth)
	if err != nil {
		return nil, err
	}
	texture.IsFlipped = true
	texture.IsFBOAttachment = true

	fbo := buffers.NewFramebuffer(uint32(width), uint32(height))
	fbo.AttachColorTexture(texture.Id)
	if !fbo.IsComplete() {
		fbo.Delete()
		texture.Delete()
		return nil, errors.New("framebuffer object is incomplete, render textures are unusable on this device")
	}

	rt := &RenderTexture{fbo: fbo, texture: texture}
	rt.ctx = ctx
	rt.Initialize(width, height)

	return rt, nil
}

// Texture returns the color attachment. Valid until Release
func (rt *RenderTexture) Texture() *textures.Texture {
	return rt.texture
}

// Bind directs subsequent draws into this target. The shared render-state
// cache survives the switch; only the view has to be reapplied because the
// fbo carries its own viewport
func (rt *RenderTexture) Bind() {
	rt.fbo.BindWithViewport()
	rt.ctx.cache.viewChanged = true
}

// UnBind redirects draws back to the window surface of the given size
func (rt *RenderTexture) UnBind(screenWidth, screenHeight int32) {
	rt.fbo.UnBindWithViewport(uint32(screenWidth), uint32(screenHeight))
	rt.ctx.cache.viewChanged = true
}

// Display flushes pending rendering so the texture contents are up to date
// before it is sampled
func (rt *RenderTexture) Display() {
	gl.Flush()
}

// Release frees the fbo, the color attachment and the target's buffers
func (rt *RenderTexture) Release() {
	rt.fbo.Delete()
	rt.texture.Delete()
	rt.RenderTarget.Release()
}
