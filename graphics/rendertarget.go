package graphics

import (
	"unsafe"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nmage2d/assert"
	"github.com/bloeys/nmage2d/buffers"
	"github.com/bloeys/nmage2d/colors"
	"github.com/bloeys/nmage2d/logging"
	"github.com/bloeys/nmage2d/shaders"
	"github.com/bloeys/nmage2d/textures"
	"github.com/bloeys/nmage2d/transform"
	"github.com/go-gl/gl/v2.1/gl"
)

// RenderTarget is a surface that 2D geometry is drawn onto: the inside of a
// window, or an offscreen texture. All targets bound to the same GL context
// must share the same Context so the render-state cache stays in sync with
// the device.
type RenderTarget struct {
	ctx *Context

	width, height int32

	defaultView View
	view        View

	// Static unit-quad geometry for the VBO fast path: 4 vertices and the
	// 4 indices of a triangle strip. Allocated on the first draw
	quadVBO      buffers.VertexBuffer
	quadIBO      buffers.IndexBuffer
	buffersReady bool
}

// drawOpts selects between the minimal and advanced dispatch behaviors.
// Keeping both entry points on one parameterized algorithm stops the two
// paths from drifting apart
type drawOpts struct {
	// The caller must supply a shader; there is no default-shader fallback
	requireExplicitShader bool
	// Push the color uniform every draw instead of only when it changed
	alwaysRefreshColor bool
}

// NewRenderTarget creates a target of the given pixel size sharing ctx with
// every other target on the same GL context
func NewRenderTarget(ctx *Context, width, height int32) *RenderTarget {

	rt := &RenderTarget{ctx: ctx}
	rt.Initialize(width, height)
	return rt
}

// Initialize (re)sizes the target: the default view is reset to the pixel
// dimensions and the baseline GL state is re-synced on the next draw. Called
// at construction and whenever the underlying surface is resized.
// Makes no GL calls, so targets can be created before a context exists
func (rt *RenderTarget) Initialize(width, height int32) {

	rt.width, rt.height = width, height
	rt.defaultView = NewView(FloatRect{0, 0, float32(width), float32(height)})
	rt.view = rt.defaultView

	// Only set GL states on first draw so we don't pollute foreign GL code
	// running before us
	rt.ctx.cache.glStatesSet = false
	rt.ctx.cache.viewChanged = true
}

// Release frees the static quad buffers. The target is unusable afterwards
func (rt *RenderTarget) Release() {

	if !rt.buffersReady {
		return
	}

	rt.quadVBO.Delete()
	rt.quadIBO.Delete()
	rt.forgetQuadBuffers()
}

// forgetQuadBuffers drops the quad-buffer bookkeeping. The freed pair may be
// the one the device currently has bound, so the next VBO draw must rebind
// rather than trust the cached binding
func (rt *RenderTarget) forgetQuadBuffers() {
	rt.buffersReady = false
	rt.ctx.cache.lastUsedVBO = false
}

func (rt *RenderTarget) Size() (width, height int32) {
	return rt.width, rt.height
}

func (rt *RenderTarget) Context() *Context {
	return rt.ctx
}

// Clear fills the whole target with one color
func (rt *RenderTarget) Clear(color colors.Color) {

	// Unbind the texture first: some drivers fail to clear a target whose
	// texture is still bound elsewhere
	rt.applyTexture(nil, nil)

	vec := color.Vec4()
	gl.ClearColor(vec.Data[0], vec.Data[1], vec.Data[2], vec.Data[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// SetView changes the active view. The projection is applied lazily on the
// next draw
func (rt *RenderTarget) SetView(view View) {
	rt.view = view
	rt.ctx.cache.viewChanged = true
}

func (rt *RenderTarget) View() View {
	return rt.view
}

// DefaultView returns the view covering the whole target 1:1 in pixels
func (rt *RenderTarget) DefaultView() View {
	return rt.defaultView
}

// Viewport returns the pixel rectangle the view's fractional viewport maps
// to on this target
func (rt *RenderTarget) Viewport(view *View) IntRect {

	width := float32(rt.width)
	height := float32(rt.height)
	viewport := view.Viewport()

	return IntRect{
		Left:   int32(0.5 + width*viewport.Left),
		Top:    int32(0.5 + height*viewport.Top),
		Width:  int32(0.5 + width*viewport.Width),
		Height: int32(0.5 + height*viewport.Height),
	}
}

// MapPixelToCoords converts a target pixel position into the world
// coordinates of the given view (nil for the active view)
func (rt *RenderTarget) MapPixelToCoords(x, y int32, view *View) gglm.Vec2 {

	if view == nil {
		view = &rt.view
	}

	// First normalize into the -1..1 homogeneous range of the viewport,
	// then run the inverse projection
	viewport := rt.Viewport(view)
	normalized := gglm.Vec2{Data: [2]float32{
		-1 + 2*float32(x-viewport.Left)/float32(viewport.Width),
		1 - 2*float32(y-viewport.Top)/float32(viewport.Height),
	}}

	return view.InverseTransform().TransformPoint(normalized)
}

// MapCoordsToPixel converts world coordinates of the given view (nil for the
// active view) into a pixel position on this target
func (rt *RenderTarget) MapCoordsToPixel(point gglm.Vec2, view *View) (x, y int32) {

	if view == nil {
		view = &rt.view
	}

	normalized := view.Transform().TransformPoint(point)

	viewport := rt.Viewport(view)
	x = int32((normalized.X()+1)/2*float32(viewport.Width)) + viewport.Left
	y = int32((-normalized.Y()+1)/2*float32(viewport.Height)) + viewport.Top

	return x, y
}

// DrawObject renders a drawable with the given states
func (rt *RenderTarget) DrawObject(d Drawable, states RenderStates) {
	d.Draw(rt, states)
}

// DrawObjectAdvanced renders a drawable through the advanced dispatch path
func (rt *RenderTarget) DrawObjectAdvanced(d AdvancedDrawable, states RenderStates) {
	d.DrawAdvanced(rt, states)
}

// Draw renders a batch of vertices. When states supplies no shader a
// built-in default is selected based on whether a texture is present
func (rt *RenderTarget) Draw(vertices []Vertex, primType PrimitiveType, states RenderStates) {
	rt.draw(vertices, primType, states, drawOpts{})
}

// DrawAdvanced renders a batch of vertices with a mandatory explicit shader.
// Calling it without one is a programming error and the draw is skipped.
// The color uniform is refreshed every call
func (rt *RenderTarget) DrawAdvanced(vertices []Vertex, primType PrimitiveType, states RenderStates) {
	rt.draw(vertices, primType, states, drawOpts{requireExplicitShader: true, alwaysRefreshColor: true})
}

// draw is the single dispatch algorithm behind Draw and DrawAdvanced. It
// compares every facet of the requested state against the shared cache and
// only touches the device where they differ. The step order is load-bearing:
// the program must be bound before its color uniform is set, the view must
// be applied before geometry is submitted, and buffer unbinds must precede
// any client-array pointer setup.
func (rt *RenderTarget) draw(vertices []Vertex, primType PrimitiveType, states RenderStates, opts drawOpts) {

	// Nothing to draw?
	if len(vertices) == 0 {
		return
	}

	if primType == Quads && !rt.ctx.Caps.QuadPrimitives {
		logging.Errorf("Quads primitive type is not supported on this device, drawing skipped")
		return
	}

	if opts.requireExplicitShader && states.Shader == nil {
		assert.T(false, "DrawAdvanced requires states.Shader to be set")
		logging.Errorf("DrawAdvanced called without a shader, drawing skipped")
		return
	}

	cache := &rt.ctx.cache

	if !rt.buffersReady {
		rt.createQuadBuffers()
	}

	// First set the persistent GL states if it's the very first draw
	if !cache.glStatesSet {
		rt.ResetGLStates()
	}

	// Small batches get pre-transformed on the host so consecutive small
	// draws share one identity device transform
	useVertexCache := usesVertexCache(len(vertices), states.UseVBO)
	if useVertexCache {

		for i := 0; i < len(vertices); i++ {
			v := &cache.vertexCache[i]
			v.Position = states.Transform.TransformPoint(vertices[i].Position)
			v.Color = vertices[i].Color
			v.TexCoords = vertices[i].TexCoords
		}

		if !cache.useVertexCache {
			identity := transform.Identity()
			rt.applyTransform(&identity)
		}
	} else {
		rt.applyTransform(&states.Transform)
	}

	if cache.viewChanged {
		rt.applyCurrentView()
	}

	if states.BlendMode != cache.lastBlendMode {
		rt.applyBlendMode(states.BlendMode)
	}

	// Resolve the shader, falling back to a built-in default keyed by
	// texture presence on the minimal path
	shader := states.Shader
	if shader == nil {

		kind := shaders.DefaultShader_Untextured
		if states.Texture != nil {
			kind = shaders.DefaultShader_Textured
		}

		var err error
		shader, err = shaders.Default(kind)
		if err != nil {
			logging.Errorf("Failed to set up default shader, drawing skipped. Err: %v", err)
			return
		}

		if kind == shaders.DefaultShader_Textured {
			// The default textured shader samples a single texture from the
			// well-known unit
			shader.SetUnifTextureUnit(shaders.TextureUniformName, shaders.DefaultTextureUnit)
		}
	}

	// Apply the texture. Identity comes from the unique cache id, never the
	// GL handle, so a new texture reusing a destroyed one's handle is still
	// seen as a change
	textureId := uint64(0)
	if states.Texture != nil {
		textureId = states.Texture.CacheId()
	}
	if textureId != cache.lastTextureId || states.TextureTransform != nil {
		rt.applyTexture(states.Texture, states.TextureTransform)
	}

	// Rebind the program if it changed, or if the previous draw ran it
	// without textures bound. Either way the color uniform must be pushed
	// again afterwards
	setColor := false
	if shader.NativeHandle() != cache.lastProgram || !cache.lastProgramBoundTextures {
		setColor = true
		rt.applyShader(shader)
	}
	cache.lastProgramBoundTextures = textureId != 0

	color := colors.White
	if states.UseColor {
		color = states.Color
	}
	if color != cache.lastColor || setColor || opts.alwaysRefreshColor {
		// The program is bound at this point, so set the uniform directly
		// instead of going through Shader to avoid a redundant rebind
		vec := color.Vec4()
		gl.Uniform4f(shader.ColorLocation(), vec.Data[0], vec.Data[1], vec.Data[2], vec.Data[3])
		cache.lastColor = color
	}

	// Select the vertex source. If the pre-transform cache was already the
	// source of the previous draw the device still has valid pointers into
	// it and they are not re-specified
	var src []Vertex
	if useVertexCache {
		if !cache.useVertexCache {
			src = cache.vertexCache[:len(vertices)]
		}
	} else {
		src = vertices
	}

	if cache.lastUsedVBO && !states.UseVBO {
		// Leaving the VBO path: client-array pointers are relative to bound
		// buffers, so they must be unbound first
		rt.quadVBO.UnBind()
		rt.quadIBO.UnBind()
	}

	if states.UseVBO {

		if !cache.lastUsedVBO {
			rt.quadVBO.Bind()
			setClientArrayPointersOffset()
			rt.quadIBO.Bind()
		}

		gl.DrawElements(gl.TRIANGLE_STRIP, 4, gl.UNSIGNED_SHORT, gl.PtrOffset(0))

	} else if src != nil {
		setClientArrayPointers(unsafe.Pointer(&src[0]))
	}

	cache.lastUsedVBO = states.UseVBO

	if !states.UseVBO {
		gl.DrawArrays(primType.ToGL(), 0, int32(len(vertices)))
	}

	// If the texture belongs to an offscreen target, forcibly unbind it:
	// some drivers fail to clear a render target that stays bound as a
	// texture elsewhere
	if states.Texture != nil && states.Texture.IsFBOAttachment {
		rt.applyTexture(nil, nil)
	}

	cache.useVertexCache = useVertexCache
}

// PushGLStates saves the entire raw GL state so foreign GL code can run,
// then resets to this library's defaults. Pair with PopGLStates
func (rt *RenderTarget) PushGLStates() {

	if err := gl.GetError(); err != gl.NO_ERROR {
		logging.Warnf("OpenGL error (%d) detected in user code, you should check for errors with glGetError()", err)
	}

	gl.PushClientAttrib(gl.CLIENT_ALL_ATTRIB_BITS)
	gl.PushAttrib(gl.ALL_ATTRIB_BITS)
	gl.MatrixMode(gl.MODELVIEW)
	gl.PushMatrix()
	gl.MatrixMode(gl.PROJECTION)
	gl.PushMatrix()
	gl.MatrixMode(gl.TEXTURE)
	gl.PushMatrix()

	rt.ResetGLStates()
}

// PopGLStates restores the raw GL state saved by PushGLStates
func (rt *RenderTarget) PopGLStates() {

	gl.MatrixMode(gl.PROJECTION)
	gl.PopMatrix()
	gl.MatrixMode(gl.MODELVIEW)
	gl.PopMatrix()
	gl.MatrixMode(gl.TEXTURE)
	gl.PopMatrix()
	gl.PopClientAttrib()
	gl.PopAttrib()
}

// ResetGLStates establishes the baseline persistent device state this
// library assumes, then reapplies the default render states. Call it after
// running foreign GL code outside PushGLStates/PopGLStates
func (rt *RenderTarget) ResetGLStates() {
	rt.resetGLStates(false)
}

// ReapplyDefaultGLStates reapplies only this library's default render states
// (blend mode, transform, texture, shader) without touching the global GL
// toggles. Use it when the persistent state is known to be intact
func (rt *RenderTarget) ReapplyDefaultGLStates() {
	rt.resetGLStates(true)
}

func (rt *RenderTarget) resetGLStates(applyOnly bool) {

	cache := &rt.ctx.cache

	if !applyOnly {

		// Make sure texture unit 0 is the active one
		gl.ClientActiveTexture(gl.TEXTURE0)
		gl.ActiveTexture(gl.TEXTURE0)

		// Define the baseline persistent states
		gl.Disable(gl.CULL_FACE)
		gl.Disable(gl.LIGHTING)
		gl.Disable(gl.DEPTH_TEST)
		gl.Disable(gl.ALPHA_TEST)
		gl.Enable(gl.TEXTURE_2D)
		gl.Enable(gl.BLEND)
		gl.MatrixMode(gl.MODELVIEW)
		gl.EnableClientState(gl.VERTEX_ARRAY)
		gl.EnableClientState(gl.COLOR_ARRAY)
		gl.EnableClientState(gl.TEXTURE_COORD_ARRAY)
		cache.glStatesSet = true
	}

	// Apply the default render states
	rt.applyBlendMode(BlendAlpha)
	identity := transform.Identity()
	rt.applyTransform(&identity)
	rt.applyTexture(nil, nil)
	rt.applyShader(nil)
	cache.lastProgramBoundTextures = false

	if !applyOnly {

		// Make sure no VBO is bound by default
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

		cache.useVertexCache = false
		cache.lastUsedVBO = false

		rt.SetView(rt.view)
	}
}

// applyCurrentView programs the device viewport and projection from the
// active view and clears the lazy view-changed flag
func (rt *RenderTarget) applyCurrentView() {

	viewport := rt.Viewport(&rt.view)
	top := rt.height - (viewport.Top + viewport.Height)
	gl.Viewport(viewport.Left, top, viewport.Width, viewport.Height)

	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixf(rt.view.Transform().Matrix())

	// Go back to model-view, the mode every other matrix call assumes
	gl.MatrixMode(gl.MODELVIEW)

	rt.ctx.cache.viewChanged = false
}

func (rt *RenderTarget) applyBlendMode(mode BlendMode) {

	caps := &rt.ctx.Caps

	// Factors, falling back to the non-separate call if necessary
	if caps.BlendFuncSeparate {
		gl.BlendFuncSeparate(
			mode.ColorSrcFactor.ToGL(), mode.ColorDstFactor.ToGL(),
			mode.AlphaSrcFactor.ToGL(), mode.AlphaDstFactor.ToGL())
	} else {
		gl.BlendFunc(mode.ColorSrcFactor.ToGL(), mode.ColorDstFactor.ToGL())
	}

	if caps.BlendEquations {
		if caps.BlendEquationSeparate {
			gl.BlendEquationSeparate(mode.ColorEquation.ToGL(), mode.AlphaEquation.ToGL())
		} else {
			gl.BlendEquation(mode.ColorEquation.ToGL())
		}
	} else if mode.ColorEquation != BlendEquation_Add || mode.AlphaEquation != BlendEquation_Add {

		if !rt.ctx.warnedBlendEquations {
			logging.Warnf("OpenGL extension EXT_blend_minmax and/or EXT_blend_subtract unavailable; selecting a blend equation is not possible")
			rt.ctx.warnedBlendEquations = true
		}
	}

	// The requested mode is recorded even when the device couldn't fully
	// apply it, so later equality checks stay consistent across draws
	rt.ctx.cache.lastBlendMode = mode
}

func (rt *RenderTarget) applyTransform(t *transform.Transform) {
	// Model-view is always the current matrix mode between draws
	gl.LoadMatrixf(t.Matrix())
}

func (rt *RenderTarget) applyTexture(texture *textures.Texture, texTransform *transform.Transform) {

	textures.Bind(texture, textures.CoordinateType_Pixels, texTransform)

	if texture != nil {
		rt.ctx.cache.lastTextureId = texture.CacheId()
	} else {
		rt.ctx.cache.lastTextureId = 0
	}
}

func (rt *RenderTarget) applyShader(shader *shaders.Shader) {

	shaders.Bind(shader)

	if shader != nil {
		rt.ctx.cache.lastProgram = shader.NativeHandle()
	} else {
		rt.ctx.cache.lastProgram = 0
	}
}

// createQuadBuffers uploads the static unit-quad geometry used by the VBO
// fast path. Both buffers are left unbound.
//
// Every target owns its own pair, but their contents are identical, so the
// shared cache's lastUsedVBO flag stays valid when draws alternate between
// targets on one context
func (rt *RenderTarget) createQuadBuffers() {

	_, layout := vertexLayout()
	rt.quadVBO = buffers.NewVertexBuffer(layout...)

	quad := [4]Vertex{
		{Position: gglm.Vec2{Data: [2]float32{0, 0}}, Color: colors.White, TexCoords: gglm.Vec2{Data: [2]float32{0, 0}}},
		{Position: gglm.Vec2{Data: [2]float32{0, 1}}, Color: colors.White, TexCoords: gglm.Vec2{Data: [2]float32{0, 1}}},
		{Position: gglm.Vec2{Data: [2]float32{1, 0}}, Color: colors.White, TexCoords: gglm.Vec2{Data: [2]float32{1, 0}}},
		{Position: gglm.Vec2{Data: [2]float32{1, 1}}, Color: colors.White, TexCoords: gglm.Vec2{Data: [2]float32{1, 1}}},
	}
	rt.quadVBO.SetDataPtr(unsafe.Pointer(&quad[0]), len(quad)*vertexStride, buffers.BufUsage_Static_Draw)

	rt.quadIBO = buffers.NewIndexBuffer()
	rt.quadIBO.SetData([]uint16{0, 1, 2, 3})

	rt.quadVBO.UnBind()
	rt.quadIBO.UnBind()

	rt.buffersReady = true
}

// usesVertexCache decides whether a batch is pre-transformed on the host.
// The VBO path is excluded: its geometry is static and already uploaded
func usesVertexCache(vertexCount int, useVBO bool) bool {
	return vertexCount <= vertexCacheSize && !useVBO
}

// setClientArrayPointers points the device's vertex/color/texcoord arrays
// into host memory starting at base, using the packed Vertex layout
func setClientArrayPointers(base unsafe.Pointer) {

	stride, layout := vertexLayout()

	pos, col, tex := layout[0], layout[1], layout[2]
	gl.VertexPointer(pos.CompCount(), pos.GLType(), stride, unsafe.Add(base, pos.Offset))
	gl.ColorPointer(col.CompCount(), col.GLType(), stride, unsafe.Add(base, col.Offset))
	gl.TexCoordPointer(tex.CompCount(), tex.GLType(), stride, unsafe.Add(base, tex.Offset))
}

// setClientArrayPointersOffset is the VBO-relative variant: offsets are
// into the currently bound array buffer
func setClientArrayPointersOffset() {

	stride, layout := vertexLayout()

	pos, col, tex := layout[0], layout[1], layout[2]
	gl.VertexPointer(pos.CompCount(), pos.GLType(), stride, gl.PtrOffset(pos.Offset))
	gl.ColorPointer(col.CompCount(), col.GLType(), stride, gl.PtrOffset(col.Offset))
	gl.TexCoordPointer(tex.CompCount(), tex.GLType(), stride, gl.PtrOffset(tex.Offset))
}
