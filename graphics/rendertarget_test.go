package graphics

import (
	"log/slog"
	"testing"

	"github.com/bloeys/nmage2d/logging"
)

// Target construction, the coordinate mapping helpers and the dispatch
// early exits make no GL calls, so they are testable without a context.
// The GL-issuing dispatch paths are exercised by the demo application.

func newTestTarget(width, height int32) *RenderTarget {
	return NewRenderTarget(NewContext(), width, height)
}

func TestDefaultViewCoversTarget(t *testing.T) {

	rt := newTestTarget(800, 600)

	v := rt.DefaultView()
	if cx, cy := xy(v.Center()); !approxEq(cx, 400) || !approxEq(cy, 300) {
		t.Errorf("default view center is (%v, %v), want (400, 300)", cx, cy)
	}
	if sx, sy := xy(v.Size()); !approxEq(sx, 800) || !approxEq(sy, 600) {
		t.Errorf("default view size is (%v, %v), want (800, 600)", sx, sy)
	}
}

func TestSetViewRoundTrip(t *testing.T) {

	rt := newTestTarget(800, 600)

	v := NewView(FloatRect{0, 0, 100, 100})
	v.SetRotation(15)
	rt.SetView(v)

	got := rt.View()
	sx, _ := xy(got.Size())
	if got.Rotation() != 15 || !approxEq(sx, 100) {
		t.Errorf("view did not round trip: %+v", got)
	}
}

func TestViewportPixelRects(t *testing.T) {

	rt := newTestTarget(800, 600)

	tests := []struct {
		name     string
		viewport FloatRect
		want     IntRect
	}{
		{"full", FloatRect{0, 0, 1, 1}, IntRect{0, 0, 800, 600}},
		{"right half", FloatRect{0.5, 0, 0.5, 1}, IntRect{400, 0, 400, 600}},
		{"bottom quarter", FloatRect{0, 0.75, 1, 0.25}, IntRect{0, 450, 800, 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			v := NewView(FloatRect{0, 0, 100, 100})
			v.SetViewport(tt.viewport)

			if got := rt.Viewport(&v); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestViewportRounding(t *testing.T) {

	// 0.3 of 100 pixels is 30, 0.333 is 33.3 and must round to 33
	rt := newTestTarget(100, 100)

	v := NewView(FloatRect{0, 0, 100, 100})
	v.SetViewport(FloatRect{0, 0, 0.333, 1})

	if got := rt.Viewport(&v); got.Width != 33 {
		t.Errorf("got width %d, want 33", got.Width)
	}
}

func TestMapPixelToCoordsDefaultView(t *testing.T) {

	rt := newTestTarget(800, 600)

	tests := []struct {
		name string
		x, y int32
	}{
		{"origin", 0, 0},
		{"center", 400, 300},
		{"far corner", 800, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			got := rt.MapPixelToCoords(tt.x, tt.y, nil)
			if !approxEq(got.X(), float32(tt.x)) || !approxEq(got.Y(), float32(tt.y)) {
				t.Errorf("got (%v, %v), want (%d, %d)", got.X(), got.Y(), tt.x, tt.y)
			}
		})
	}
}

func TestMapPixelToCoordsZoomedView(t *testing.T) {

	rt := newTestTarget(800, 600)

	// Half-size view centered like the default: world coords cover a
	// quarter of the target
	v := NewView(FloatRect{200, 150, 400, 300})
	rt.SetView(v)

	got := rt.MapPixelToCoords(0, 0, nil)
	if !approxEq(got.X(), 200) || !approxEq(got.Y(), 150) {
		t.Errorf("got (%v, %v), want (200, 150)", got.X(), got.Y())
	}

	got = rt.MapPixelToCoords(400, 300, nil)
	if !approxEq(got.X(), 400) || !approxEq(got.Y(), 300) {
		t.Errorf("got (%v, %v), want (400, 300)", got.X(), got.Y())
	}
}

func TestMapCoordsToPixelRoundTrip(t *testing.T) {

	rt := newTestTarget(800, 600)

	v := NewView(FloatRect{-100, -100, 200, 200})
	v.SetRotation(30)
	rt.SetView(v)

	pixels := []struct{ x, y int32 }{{0, 0}, {400, 300}, {799, 599}, {123, 456}}
	for _, p := range pixels {

		world := rt.MapPixelToCoords(p.x, p.y, nil)
		x, y := rt.MapCoordsToPixel(world, nil)

		// Truncation in the pixel conversion allows 1px of error
		if absInt32(x-p.x) > 1 || absInt32(y-p.y) > 1 {
			t.Errorf("pixel (%d, %d) round-tripped to (%d, %d)", p.x, p.y, x, y)
		}
	}
}

func TestMapPixelToCoordsExplicitView(t *testing.T) {

	rt := newTestTarget(100, 100)

	// The active view should be ignored when one is passed explicitly
	rt.SetView(NewView(FloatRect{1000, 1000, 10, 10}))

	v := NewView(FloatRect{0, 0, 100, 100})
	got := rt.MapPixelToCoords(50, 50, &v)
	if !approxEq(got.X(), 50) || !approxEq(got.Y(), 50) {
		t.Errorf("got (%v, %v), want (50, 50)", got.X(), got.Y())
	}
}

func TestInitializeResetsViewAndBaseline(t *testing.T) {

	ctx := NewContext()
	rt := NewRenderTarget(ctx, 800, 600)

	rt.SetView(NewView(FloatRect{0, 0, 10, 10}))
	ctx.cache.glStatesSet = true

	rt.Initialize(1024, 768)

	if w, h := rt.Size(); w != 1024 || h != 768 {
		t.Errorf("size is (%d, %d), want (1024, 768)", w, h)
	}
	view := rt.View()
	if got := view.Size(); !approxEq(got.X(), 1024) || !approxEq(got.Y(), 768) {
		t.Errorf("view size is (%v, %v), want (1024, 768)", got.X(), got.Y())
	}
	if ctx.cache.glStatesSet {
		t.Error("initialize must force a baseline re-sync on the next draw")
	}
	if !ctx.cache.viewChanged {
		t.Error("initialize must mark the view for reapplication")
	}
}

func TestDefaultRenderStates(t *testing.T) {

	states := DefaultRenderStates()

	if states.BlendMode != BlendAlpha {
		t.Errorf("default blend mode is %+v, want BlendAlpha", states.BlendMode)
	}
	if states.Texture != nil || states.Shader != nil || states.UseColor || states.UseVBO {
		t.Error("default states must be neutral")
	}

	p := states.Transform.TransformPoint(vec2(3, 4))
	if !approxEq(p.X(), 3) || !approxEq(p.Y(), 4) {
		t.Error("default transform must be identity")
	}
}

func TestDrawEmptyInputIsSilentNoOp(t *testing.T) {

	h := &recordHandler{}
	logging.SetLogger(slog.New(h))
	defer logging.SetLogger(nil)

	ctx := NewContext()
	rt := NewRenderTarget(ctx, 800, 600)

	rt.Draw(nil, Triangles, DefaultRenderStates())
	rt.Draw([]Vertex{}, Triangles, DefaultRenderStates())

	if h.count() != 0 {
		t.Errorf("empty input must not emit diagnostics, got %d", h.count())
	}
	if ctx.cache.glStatesSet {
		t.Error("empty input must not mutate the cache")
	}
}

func TestDrawQuadsUnsupportedSkipsWithOneDiagnostic(t *testing.T) {

	h := &recordHandler{}
	logging.SetLogger(slog.New(h))
	defer logging.SetLogger(nil)

	ctx := NewContext()
	ctx.Caps.QuadPrimitives = false
	rt := NewRenderTarget(ctx, 800, 600)

	rt.Draw(make([]Vertex, 4), Quads, DefaultRenderStates())

	if h.count() != 1 {
		t.Errorf("expected exactly 1 diagnostic, got %d", h.count())
	}
	if ctx.cache.glStatesSet {
		t.Error("a skipped draw must not mutate the cache")
	}
	if rt.buffersReady {
		t.Error("a skipped draw must not allocate the quad buffers")
	}
}

func TestDrawAdvancedWithoutShaderSkipsWithDiagnostic(t *testing.T) {

	h := &recordHandler{}
	logging.SetLogger(slog.New(h))
	defer logging.SetLogger(nil)

	ctx := NewContext()
	rt := NewRenderTarget(ctx, 800, 600)

	states := DefaultRenderStates()
	rt.DrawAdvanced(make([]Vertex, 3), Triangles, states)

	if h.count() != 1 {
		t.Errorf("expected exactly 1 diagnostic, got %d", h.count())
	}
	if ctx.cache.glStatesSet {
		t.Error("a skipped draw must not mutate the cache")
	}
}

func TestReleaseInvalidatesQuadBufferBinding(t *testing.T) {

	ctx := NewContext()
	rt := NewRenderTarget(ctx, 800, 600)

	// Pretend a draw allocated the buffers and left them bound
	rt.buffersReady = true
	ctx.cache.lastUsedVBO = true

	rt.forgetQuadBuffers()

	if ctx.cache.lastUsedVBO {
		t.Error("the next VBO draw must rebind after the bound pair is freed")
	}
	if rt.buffersReady {
		t.Error("freed buffers must not be reported ready")
	}
}

func TestPreTransformEligibility(t *testing.T) {

	tests := []struct {
		name   string
		count  int
		useVBO bool
		want   bool
	}{
		{"single vertex", 1, false, true},
		{"at capacity", vertexCacheSize, false, true},
		{"over capacity", vertexCacheSize + 1, false, false},
		{"vbo path excluded", vertexCacheSize, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := usesVertexCache(tt.count, tt.useVBO); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
