// The colors package holds the 8-bit RGBA color type used by vertices and
// render states. The memory layout of Color is a wire-format contract:
// vertex buffers are uploaded to the GPU with colors packed as 4 consecutive
// unsigned bytes.
package colors

import "github.com/bloeys/gglm/gglm"

// Color is a non-premultiplied 8-bit per channel RGBA color
type Color struct {
	R, G, B, A uint8
}

var (
	White       = Color{255, 255, 255, 255}
	Black       = Color{0, 0, 0, 255}
	Red         = Color{255, 0, 0, 255}
	Green       = Color{0, 255, 0, 255}
	Blue        = Color{0, 0, 255, 255}
	Yellow      = Color{255, 255, 0, 255}
	Magenta     = Color{255, 0, 255, 255}
	Cyan        = Color{0, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

func New(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Vec4 converts the 0-255 channels into a 0-1 float vector, which is what
// the GPU expects for clear colors and color uniforms
func (c Color) Vec4() gglm.Vec4 {
	return gglm.Vec4{Data: [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}}
}
