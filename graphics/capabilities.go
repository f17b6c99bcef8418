package graphics

import (
	"strings"

	"github.com/go-gl/gl/v2.1/gl"
)

// Capabilities records what the device supports. The draw dispatcher
// degrades gracefully around missing features instead of failing draws
type Capabilities struct {
	// Separate blend factors per channel group (core since GL 2.0)
	BlendFuncSeparate bool
	// Non-Add blend equations (EXT_blend_minmax / EXT_blend_subtract)
	BlendEquations bool
	// Separate blend equations per channel group (core since GL 2.0)
	BlendEquationSeparate bool
	// GL_QUADS. Absent on OpenGL ES profiles
	QuadPrimitives bool
}

// defaultCapabilities assumes a desktop GL 2.1 context, which is what the
// window package creates. DetectCapabilities narrows this down once a real
// context exists
func defaultCapabilities() Capabilities {
	return Capabilities{
		BlendFuncSeparate:     true,
		BlendEquations:        true,
		BlendEquationSeparate: true,
		QuadPrimitives:        true,
	}
}

// DetectCapabilities queries the current GL context. Requires gl.Init to
// have run
func DetectCapabilities() Capabilities {

	caps := defaultCapabilities()

	version := gl.GoStr(gl.GetString(gl.VERSION))
	if strings.Contains(version, "OpenGL ES") {
		caps.QuadPrimitives = false
	}

	extensions := gl.GoStr(gl.GetString(gl.EXTENSIONS))
	hasExt := func(name string) bool {
		return strings.Contains(extensions, name)
	}

	// All of these are core in GL 2.0+, so only pre-2.0 contexts need the
	// extension checks
	if majorVersion(version) < 2 {
		caps.BlendFuncSeparate = hasExt("GL_EXT_blend_func_separate")
		caps.BlendEquations = hasExt("GL_EXT_blend_minmax") && hasExt("GL_EXT_blend_subtract")
		caps.BlendEquationSeparate = hasExt("GL_EXT_blend_equation_separate")
	}

	return caps
}

// majorVersion extracts the leading major version number from a GL_VERSION
// string. Desktop contexts report "major.minor ..." but ES and SC contexts
// prefix it ("OpenGL ES 2.0 ..."), so the first run of digits is used.
// A string with no digits reports 0, which keeps the extension probes on
func majorVersion(version string) int {

	i := 0
	for i < len(version) && (version[i] < '0' || version[i] > '9') {
		i++
	}

	major := 0
	for i < len(version) && version[i] >= '0' && version[i] <= '9' {
		major = major*10 + int(version[i]-'0')
		i++
	}

	return major
}
