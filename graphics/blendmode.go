package graphics

import (
	"github.com/bloeys/nmage2d/assert"
	"github.com/bloeys/nmage2d/logging"
	"github.com/go-gl/gl/v2.1/gl"
)

// BlendFactor is a source or destination blending factor
type BlendFactor int

const (
	BlendFactor_Zero BlendFactor = iota
	BlendFactor_One
	BlendFactor_SrcColor
	BlendFactor_OneMinusSrcColor
	BlendFactor_DstColor
	BlendFactor_OneMinusDstColor
	BlendFactor_SrcAlpha
	BlendFactor_OneMinusSrcAlpha
	BlendFactor_DstAlpha
	BlendFactor_OneMinusDstAlpha
)

// BlendEquation combines the weighted source and destination pixels
type BlendEquation int

const (
	BlendEquation_Add BlendEquation = iota
	BlendEquation_Subtract
	BlendEquation_ReverseSubtract
)

// ToGL maps a factor to its GL constant. An out-of-range value is a
// programming error: it is logged and falls back to Zero rather than
// aborting the render loop
func (f BlendFactor) ToGL() uint32 {

	switch f {
	case BlendFactor_Zero:
		return gl.ZERO
	case BlendFactor_One:
		return gl.ONE
	case BlendFactor_SrcColor:
		return gl.SRC_COLOR
	case BlendFactor_OneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case BlendFactor_DstColor:
		return gl.DST_COLOR
	case BlendFactor_OneMinusDstColor:
		return gl.ONE_MINUS_DST_COLOR
	case BlendFactor_SrcAlpha:
		return gl.SRC_ALPHA
	case BlendFactor_OneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case BlendFactor_DstAlpha:
		return gl.DST_ALPHA
	case BlendFactor_OneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	}

	logging.Errorf("Invalid BlendFactor '%d'. Falling back to Zero", f)
	assert.T(false, "Invalid BlendFactor '%d'", f)
	return gl.ZERO
}

// ToGL maps an equation to its GL constant, falling back to Add on
// out-of-range values the same way BlendFactor.ToGL does
func (e BlendEquation) ToGL() uint32 {

	switch e {
	case BlendEquation_Add:
		return gl.FUNC_ADD
	case BlendEquation_Subtract:
		return gl.FUNC_SUBTRACT
	case BlendEquation_ReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT
	}

	logging.Errorf("Invalid BlendEquation '%d'. Falling back to Add", e)
	assert.T(false, "Invalid BlendEquation '%d'", e)
	return gl.FUNC_ADD
}

// BlendMode fully describes how drawn pixels mix with the framebuffer:
// a factor pair and an equation per channel group. BlendModes compare
// with ==, which is what the render-state cache relies on
type BlendMode struct {
	ColorSrcFactor BlendFactor
	ColorDstFactor BlendFactor
	ColorEquation  BlendEquation
	AlphaSrcFactor BlendFactor
	AlphaDstFactor BlendFactor
	AlphaEquation  BlendEquation
}

// NewBlendMode builds a blend mode using the same factors and equation for
// the color and alpha channel groups
func NewBlendMode(src, dst BlendFactor, eq BlendEquation) BlendMode {
	return BlendMode{
		ColorSrcFactor: src, ColorDstFactor: dst, ColorEquation: eq,
		AlphaSrcFactor: src, AlphaDstFactor: dst, AlphaEquation: eq,
	}
}

var (
	// BlendAlpha is standard alpha blending and the default blend mode
	BlendAlpha = BlendMode{
		ColorSrcFactor: BlendFactor_SrcAlpha, ColorDstFactor: BlendFactor_OneMinusSrcAlpha, ColorEquation: BlendEquation_Add,
		AlphaSrcFactor: BlendFactor_One, AlphaDstFactor: BlendFactor_OneMinusSrcAlpha, AlphaEquation: BlendEquation_Add,
	}

	BlendAdd = BlendMode{
		ColorSrcFactor: BlendFactor_SrcAlpha, ColorDstFactor: BlendFactor_One, ColorEquation: BlendEquation_Add,
		AlphaSrcFactor: BlendFactor_One, AlphaDstFactor: BlendFactor_One, AlphaEquation: BlendEquation_Add,
	}

	BlendMultiply = NewBlendMode(BlendFactor_DstColor, BlendFactor_Zero, BlendEquation_Add)

	// BlendNone overwrites the framebuffer with the source pixel
	BlendNone = NewBlendMode(BlendFactor_One, BlendFactor_Zero, BlendEquation_Add)
)
