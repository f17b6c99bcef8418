package graphics

import (
	"github.com/bloeys/nmage2d/assert"
	"github.com/bloeys/nmage2d/logging"
	"github.com/go-gl/gl/v2.1/gl"
)

// PrimitiveType is the topology of a batch of vertices
type PrimitiveType int

const (
	Points PrimitiveType = iota
	Lines
	LineStrip
	Triangles
	TriangleStrip
	TriangleFan
	// Quads is not available on OpenGL ES devices; draws using it are
	// skipped there with a diagnostic
	Quads
)

func (pt PrimitiveType) ToGL() uint32 {

	switch pt {
	case Points:
		return gl.POINTS
	case Lines:
		return gl.LINES
	case LineStrip:
		return gl.LINE_STRIP
	case Triangles:
		return gl.TRIANGLES
	case TriangleStrip:
		return gl.TRIANGLE_STRIP
	case TriangleFan:
		return gl.TRIANGLE_FAN
	case Quads:
		return gl.QUADS
	}

	assert.T(false, "Unexpected PrimitiveType value '%v'", pt)
	logging.Errorf("Invalid PrimitiveType '%d'. Falling back to Points", pt)
	return gl.POINTS
}

func (pt PrimitiveType) String() string {

	switch pt {
	case Points:
		return "Points"
	case Lines:
		return "Lines"
	case LineStrip:
		return "LineStrip"
	case Triangles:
		return "Triangles"
	case TriangleStrip:
		return "TriangleStrip"
	case TriangleFan:
		return "TriangleFan"
	case Quads:
		return "Quads"
	default:
		return "Unknown"
	}
}
