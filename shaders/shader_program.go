package shaders

import (
	"github.com/bloeys/nmage2d/logging"
	"github.com/go-gl/gl/v2.1/gl"
)

type ShaderProgram struct {
	Id           uint32
	VertShaderId uint32
	FragShaderId uint32
}

func (sp *ShaderProgram) AttachShader(shader CompiledShader) {

	gl.AttachShader(sp.Id, shader.Id)
	switch shader.Type {
	case ShaderType_Vertex:
		sp.VertShaderId = shader.Id
	case ShaderType_Fragment:
		sp.FragShaderId = shader.Id
	default:
		logging.Errorf("Unknown shader type '%d' for shader id '%d'", shader.Type, shader.Id)
	}
}

func (sp *ShaderProgram) Link() error {

	gl.LinkProgram(sp.Id)

	if sp.VertShaderId != 0 {
		gl.DeleteShader(sp.VertShaderId)
	}

	if sp.FragShaderId != 0 {
		gl.DeleteShader(sp.FragShaderId)
	}

	return getProgramLinkErrors(sp.Id)
}

func (sp *ShaderProgram) Bind() {
	gl.UseProgram(sp.Id)
}

func (sp *ShaderProgram) UnBind() {
	gl.UseProgram(0)
}
