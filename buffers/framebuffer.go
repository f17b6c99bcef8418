package buffers

import (
	"github.com/bloeys/nmage2d/logging"
	"github.com/go-gl/gl/v2.1/gl"
)

// Framebuffer wraps an EXT_framebuffer_object with a single color texture
// attachment, which is all offscreen 2D render targets need.
// The EXT entry points are used because the core ones only exist in GL 3.0+
type Framebuffer struct {
	Id           uint32
	ColorTexture uint32
	Width        uint32
	Height       uint32
}

func (fbo *Framebuffer) Bind() {
	gl.BindFramebufferEXT(gl.FRAMEBUFFER_EXT, fbo.Id)
}

func (fbo *Framebuffer) BindWithViewport() {
	gl.BindFramebufferEXT(gl.FRAMEBUFFER_EXT, fbo.Id)
	gl.Viewport(0, 0, int32(fbo.Width), int32(fbo.Height))
}

func (fbo *Framebuffer) UnBind() {
	gl.BindFramebufferEXT(gl.FRAMEBUFFER_EXT, 0)
}

func (fbo *Framebuffer) UnBindWithViewport(width, height uint32) {
	gl.BindFramebufferEXT(gl.FRAMEBUFFER_EXT, 0)
	gl.Viewport(0, 0, int32(width), int32(height))
}

// AttachColorTexture attaches texId as color attachment 0.
// The fbo is left bound
func (fbo *Framebuffer) AttachColorTexture(texId uint32) {

	fbo.Bind()
	gl.FramebufferTexture2DEXT(gl.FRAMEBUFFER_EXT, gl.COLOR_ATTACHMENT0_EXT, gl.TEXTURE_2D, texId, 0)
	fbo.ColorTexture = texId
}

// IsComplete returns true if OpenGL reports that the fbo is complete/usable.
// Note that this function binds and then unbinds the fbo
func (fbo *Framebuffer) IsComplete() bool {

	fbo.Bind()
	status := gl.CheckFramebufferStatusEXT(gl.FRAMEBUFFER_EXT)
	fbo.UnBind()

	return status == gl.FRAMEBUFFER_COMPLETE_EXT
}

func (fbo *Framebuffer) Delete() {
	gl.DeleteFramebuffersEXT(1, &fbo.Id)
	fbo.Id = 0
}

func NewFramebuffer(width, height uint32) Framebuffer {

	fbo := Framebuffer{Width: width, Height: height}

	gl.GenFramebuffersEXT(1, &fbo.Id)
	if fbo.Id == 0 {
		logging.Errorf("Failed to create OpenGL framebuffer object")
	}

	return fbo
}
