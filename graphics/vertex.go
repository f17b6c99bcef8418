package graphics

import (
	"unsafe"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nmage2d/buffers"
	"github.com/bloeys/nmage2d/colors"
)

// Vertex is a single point of 2D geometry: position, color and texture
// coordinates.
//
// The field order and packing are a wire-format contract: vertex arrays are
// handed to the GPU as raw memory, with attribute pointers computed from the
// byte offsets below. Position is at offset 0, Color at 8, TexCoords at 12,
// for a total stride of 20 bytes.
type Vertex struct {
	Position  gglm.Vec2
	Color     colors.Color
	TexCoords gglm.Vec2
}

const (
	vertexStride          = 20
	vertexPositionOffset  = 0
	vertexColorOffset     = 8
	vertexTexCoordsOffset = 12
)

// Compile-time checks that Vertex has the exact layout the attribute
// pointers assume. If any of these fail to compile the struct definition
// changed in an incompatible way.
var (
	_ [vertexStride]byte           = [unsafe.Sizeof(Vertex{})]byte{}
	_ [vertexPositionOffset]byte   = [unsafe.Offsetof(Vertex{}.Position)]byte{}
	_ [vertexColorOffset]byte      = [unsafe.Offsetof(Vertex{}.Color)]byte{}
	_ [vertexTexCoordsOffset]byte  = [unsafe.Offsetof(Vertex{}.TexCoords)]byte{}
)

// vertexLayout describes Vertex to the buffers package. Offsets computed
// here must agree with the constants above (checked in tests)
func vertexLayout() (stride int32, layout []buffers.Element) {

	vb := buffers.VertexBuffer{}
	vb.SetLayout(
		buffers.Element{ElementType: buffers.DataTypeVec2},      // Position
		buffers.Element{ElementType: buffers.DataTypeUByteVec4}, // Color
		buffers.Element{ElementType: buffers.DataTypeVec2},      // TexCoords
	)

	return vb.Stride, vb.GetLayout()
}
