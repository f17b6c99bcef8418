package graphics

import "github.com/bloeys/nmage2d/colors"

// vertexCacheSize is the capacity of the pre-transform vertex cache.
// Batches up to this size have their world transform applied on the host so
// the device keeps an identity transform across consecutive small draws
const vertexCacheSize = 4

// StatesCache mirrors the last value applied to the device for every piece
// of render state the draw dispatcher touches. The dispatcher only issues a
// driver call when the requested value differs from the cached one, and the
// cache is updated right after the call so it never disagrees with the
// device. A stale entry here is a correctness bug (wrong pixels), not a
// performance bug.
type StatesCache struct {
	// Whether the persistent baseline GL state has been established.
	// Cleared when a target is (re)initialized so the first draw re-syncs
	glStatesSet bool

	// Whether the active view changed since it was last applied. The
	// projection is only recomputed on the next draw
	viewChanged bool

	lastBlendMode BlendMode

	// Identity of the last bound texture; the unique cache id, never the GL
	// handle (handles get recycled). 0 means no texture
	lastTextureId uint64

	// GL handle of the last bound program, and whether that program had
	// textures bound with it
	lastProgram              uint32
	lastProgramBoundTextures bool

	lastColor colors.Color

	// Whether the last draw sourced vertices from the pre-transform cache,
	// and whether it went through the static quad buffers
	useVertexCache bool
	lastUsedVBO    bool

	vertexCache [vertexCacheSize]Vertex
}

// Context owns the mutable state tied to one device context: the render
// state cache and the detected capabilities.
//
// Every surface that renders through the same GL context MUST share one
// Context. The device has a single current state no matter how many logical
// targets exist, so giving targets separate caches desynchronizes the
// caches from the device and draws with stale state. Conversely the cache
// is process-wide only per context: two windows with separate GL contexts
// get two Contexts.
//
// A Context is not safe for concurrent use. Exactly one goroutine may
// render at a time, which mirrors the same constraint on the underlying GL
// context.
type Context struct {
	Caps  Capabilities
	cache StatesCache

	warnedBlendEquations bool
}

// NewContext creates a context assuming desktop-GL capabilities.
// Call DetectCaps once a GL context is current to narrow them
func NewContext() *Context {
	return &Context{Caps: defaultCapabilities()}
}

// DetectCaps queries the current GL context for its capabilities
func (c *Context) DetectCaps() {
	c.Caps = DetectCapabilities()
}
