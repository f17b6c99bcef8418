package shaders

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nmage2d/logging"
	"github.com/go-gl/gl/v2.1/gl"
)

// ColorUniformName is the vec4 uniform every shader usable with the draw
// dispatcher must declare. The dispatcher pushes the render-state color
// through it
const ColorUniformName = "u_color"

// TextureUniformName is the sampler uniform of the default textured shader
const TextureUniformName = "u_texture"

// DefaultTextureUnit is the texture unit the dispatcher binds textures to
const DefaultTextureUnit = 0

// Shader is a linked shader program plus a cache of its uniform locations
type Shader struct {
	Name string
	Prog ShaderProgram

	UnifLocs map[string]int32
}

// NativeHandle returns the raw GL program handle
func (s *Shader) NativeHandle() uint32 {
	return s.Prog.Id
}

func (s *Shader) Bind() {
	s.Prog.Bind()
}

func (s *Shader) UnBind() {
	s.Prog.UnBind()
}

func (s *Shader) Delete() {
	gl.DeleteProgram(s.Prog.Id)
	s.Prog.Id = 0
}

// GetUnifLoc returns the location of a uniform, caching lookups.
// A missing uniform returns -1, which GL treats as a no-op when set;
// it is logged once on first lookup
func (s *Shader) GetUnifLoc(uniformName string) int32 {

	loc, ok := s.UnifLocs[uniformName]
	if ok {
		return loc
	}

	name := gl.Str(uniformName + "\x00")
	loc = gl.GetUniformLocation(s.Prog.Id, name)
	if loc == -1 {
		logging.Warnf("Uniform '%s' doesn't exist on shader '%s'", uniformName, s.Name)
	}

	s.UnifLocs[uniformName] = loc
	return loc
}

// ColorLocation returns the location of the ColorUniformName uniform
func (s *Shader) ColorLocation() int32 {
	return s.GetUnifLoc(ColorUniformName)
}

// The SetUnif* helpers require the program to be currently bound:
// GL 2.1 has no direct-state-access uniform calls.

func (s *Shader) SetUnifInt32(uniformName string, val int32) {
	gl.Uniform1i(s.GetUnifLoc(uniformName), val)
}

func (s *Shader) SetUnifFloat32(uniformName string, val float32) {
	gl.Uniform1f(s.GetUnifLoc(uniformName), val)
}

func (s *Shader) SetUnifVec2(uniformName string, vec2 *gglm.Vec2) {
	gl.Uniform2fv(s.GetUnifLoc(uniformName), 1, &vec2.Data[0])
}

func (s *Shader) SetUnifVec4(uniformName string, vec4 *gglm.Vec4) {
	gl.Uniform4fv(s.GetUnifLoc(uniformName), 1, &vec4.Data[0])
}

func (s *Shader) SetUnifMat4(uniformName string, mat4 *gglm.Mat4) {
	gl.UniformMatrix4fv(s.GetUnifLoc(uniformName), 1, false, &mat4.Data[0][0])
}

// SetUnifTextureUnit sets a sampler uniform without disturbing the currently
// bound program: the previous binding is restored afterwards, so the render
// state cache stays valid
func (s *Shader) SetUnifTextureUnit(uniformName string, unit int32) {

	var prevProgram int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &prevProgram)

	gl.UseProgram(s.Prog.Id)
	gl.Uniform1i(s.GetUnifLoc(uniformName), unit)
	gl.UseProgram(uint32(prevProgram))
}

// Bind makes s the active program; a nil shader unbinds any program
func Bind(s *Shader) {

	if s == nil {
		gl.UseProgram(0)
		return
	}

	s.Bind()
}
