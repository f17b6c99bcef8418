package graphics

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/bloeys/nmage2d/logging"
	"github.com/go-gl/gl/v2.1/gl"
)

// recordHandler captures log records so tests can assert on diagnostics
type recordHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *recordHandler) WithAttrs([]slog.Attr) slog.Handler       { return h }
func (h *recordHandler) WithGroup(string) slog.Handler            { return h }

func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *recordHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

func TestBlendFactorToGL(t *testing.T) {

	tests := []struct {
		factor BlendFactor
		want   uint32
	}{
		{BlendFactor_Zero, gl.ZERO},
		{BlendFactor_One, gl.ONE},
		{BlendFactor_SrcColor, gl.SRC_COLOR},
		{BlendFactor_OneMinusSrcColor, gl.ONE_MINUS_SRC_COLOR},
		{BlendFactor_DstColor, gl.DST_COLOR},
		{BlendFactor_OneMinusDstColor, gl.ONE_MINUS_DST_COLOR},
		{BlendFactor_SrcAlpha, gl.SRC_ALPHA},
		{BlendFactor_OneMinusSrcAlpha, gl.ONE_MINUS_SRC_ALPHA},
		{BlendFactor_DstAlpha, gl.DST_ALPHA},
		{BlendFactor_OneMinusDstAlpha, gl.ONE_MINUS_DST_ALPHA},
	}

	for _, tt := range tests {
		if got := tt.factor.ToGL(); got != tt.want {
			t.Errorf("factor %d mapped to %d, want %d", tt.factor, got, tt.want)
		}
	}
}

func TestBlendEquationToGL(t *testing.T) {

	tests := []struct {
		eq   BlendEquation
		want uint32
	}{
		{BlendEquation_Add, gl.FUNC_ADD},
		{BlendEquation_Subtract, gl.FUNC_SUBTRACT},
		{BlendEquation_ReverseSubtract, gl.FUNC_REVERSE_SUBTRACT},
	}

	for _, tt := range tests {
		if got := tt.eq.ToGL(); got != tt.want {
			t.Errorf("equation %d mapped to %d, want %d", tt.eq, got, tt.want)
		}
	}
}

func TestInvalidBlendValuesLogAndFallBack(t *testing.T) {

	h := &recordHandler{}
	logging.SetLogger(slog.New(h))
	defer logging.SetLogger(nil)

	if got := BlendFactor(99).ToGL(); got != gl.ZERO {
		t.Errorf("invalid factor mapped to %d, want gl.ZERO", got)
	}
	if got := BlendEquation(99).ToGL(); got != gl.FUNC_ADD {
		t.Errorf("invalid equation mapped to %d, want gl.FUNC_ADD", got)
	}

	if h.count() != 2 {
		t.Errorf("expected 2 diagnostics, got %d", h.count())
	}
}

func TestBlendModeEquality(t *testing.T) {

	a := NewBlendMode(BlendFactor_SrcAlpha, BlendFactor_OneMinusSrcAlpha, BlendEquation_Add)
	b := NewBlendMode(BlendFactor_SrcAlpha, BlendFactor_OneMinusSrcAlpha, BlendEquation_Add)
	if a != b {
		t.Error("identical blend modes must compare equal")
	}

	b.AlphaEquation = BlendEquation_Subtract
	if a == b {
		t.Error("differing blend modes must compare unequal")
	}
}

func TestBlendPresets(t *testing.T) {

	if BlendAlpha.ColorSrcFactor != BlendFactor_SrcAlpha ||
		BlendAlpha.ColorDstFactor != BlendFactor_OneMinusSrcAlpha ||
		BlendAlpha.AlphaSrcFactor != BlendFactor_One {
		t.Errorf("BlendAlpha is %+v", BlendAlpha)
	}

	if BlendNone != NewBlendMode(BlendFactor_One, BlendFactor_Zero, BlendEquation_Add) {
		t.Errorf("BlendNone is %+v", BlendNone)
	}

	if BlendMultiply != NewBlendMode(BlendFactor_DstColor, BlendFactor_Zero, BlendEquation_Add) {
		t.Errorf("BlendMultiply is %+v", BlendMultiply)
	}
}

func TestPrimitiveTypeToGL(t *testing.T) {

	tests := []struct {
		pt   PrimitiveType
		want uint32
	}{
		{Points, gl.POINTS},
		{Lines, gl.LINES},
		{LineStrip, gl.LINE_STRIP},
		{Triangles, gl.TRIANGLES},
		{TriangleStrip, gl.TRIANGLE_STRIP},
		{TriangleFan, gl.TRIANGLE_FAN},
		{Quads, gl.QUADS},
	}

	for _, tt := range tests {
		if got := tt.pt.ToGL(); got != tt.want {
			t.Errorf("%s mapped to %d, want %d", tt.pt, got, tt.want)
		}
	}
}

func TestInvalidPrimitiveTypeLogsAndFallsBack(t *testing.T) {

	h := &recordHandler{}
	logging.SetLogger(slog.New(h))
	defer logging.SetLogger(nil)

	if got := PrimitiveType(99).ToGL(); got != gl.POINTS {
		t.Errorf("invalid primitive mapped to %d, want gl.POINTS", got)
	}
	if h.count() != 1 {
		t.Errorf("expected 1 diagnostic, got %d", h.count())
	}
}
