// The shaders package compiles and wraps OpenGL shader programs.
//
// Shader sources use the combined format, where one file holds all stages
// separated by '//shader:vertex' and '//shader:fragment' markers.
package shaders

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/gl/v2.1/gl"
)

// CompiledShader is a single compiled shader stage, before linking
type CompiledShader struct {
	Id   uint32
	Type ShaderType
}

func (s *CompiledShader) Delete() {
	gl.DeleteShader(s.Id)
	s.Id = 0
}

func NewShaderProgram() (ShaderProgram, error) {

	id := gl.CreateProgram()
	if id == 0 {
		return ShaderProgram{}, errors.New("failed to create shader program")
	}

	return ShaderProgram{Id: id}, nil
}

// NewShaderFromFile reads a combined shader file and compiles it into a
// ready-to-use Shader
func NewShaderFromFile(name, shaderPath string) (*Shader, error) {

	combinedSource, err := os.ReadFile(shaderPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read shader file '%s': %w", shaderPath, err)
	}

	return NewShaderFromSrc(name, combinedSource)
}

// NewShaderFromSrc compiles a combined shader source into a ready-to-use Shader
func NewShaderFromSrc(name string, shaderSrc []byte) (*Shader, error) {

	prog, err := loadAndCompileCombinedShaderSrc(shaderSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader '%s': %w", name, err)
	}

	return &Shader{
		Name:     name,
		Prog:     prog,
		UnifLocs: make(map[string]int32),
	}, nil
}

func loadAndCompileCombinedShaderSrc(shaderSrc []byte) (ShaderProgram, error) {

	shaderSources := bytes.Split(shaderSrc, []byte("//shader:"))
	if len(shaderSources) < 2 {
		return ShaderProgram{}, errors.New("failed to read combined shader. The minimum shader types to have are '//shader:vertex' and '//shader:fragment'")
	}

	shdrProg, err := NewShaderProgram()
	if err != nil {
		return ShaderProgram{}, err
	}

	loadedShdrCount := 0
	for i := 0; i < len(shaderSources); i++ {

		src := shaderSources[i]

		//This can happen when the shader type is at the start of the file
		if len(bytes.TrimSpace(src)) == 0 {
			continue
		}

		var shdrType ShaderType
		if bytes.HasPrefix(src, []byte("vertex")) {
			src = src[6:]
			shdrType = ShaderType_Vertex
		} else if bytes.HasPrefix(src, []byte("fragment")) {
			src = src[8:]
			shdrType = ShaderType_Fragment
		} else {
			return ShaderProgram{}, errors.New("unknown shader type. Must be '//shader:vertex' or '//shader:fragment'")
		}

		shdr, err := CompileShaderOfType(src, shdrType)
		if err != nil {
			return ShaderProgram{}, err
		}

		loadedShdrCount++
		shdrProg.AttachShader(shdr)
	}

	if loadedShdrCount == 0 {
		return ShaderProgram{}, errors.New("no valid shaders found. Please put '//shader:vertex' or '//shader:fragment' before your shaders")
	}

	if shdrProg.VertShaderId == 0 {
		return ShaderProgram{}, errors.New("no valid vertex shader found. Please put '//shader:vertex' before your vertex shader")
	}

	if shdrProg.FragShaderId == 0 {
		return ShaderProgram{}, errors.New("no valid fragment shader found. Please put '//shader:fragment' before your fragment shader")
	}

	if err := shdrProg.Link(); err != nil {
		return ShaderProgram{}, err
	}

	return shdrProg, nil
}

func CompileShaderOfType(shaderSource []byte, shaderType ShaderType) (CompiledShader, error) {

	shaderId := gl.CreateShader(shaderType.ToGl())
	if shaderId == 0 {
		return CompiledShader{}, fmt.Errorf("failed to create OpenGl shader. OpenGl Error=%d", gl.GetError())
	}

	//Load shader source and compile
	shaderCStr, shaderFree := gl.Strs(string(shaderSource) + "\x00")
	defer shaderFree()
	gl.ShaderSource(shaderId, 1, shaderCStr, nil)

	gl.CompileShader(shaderId)
	if err := getShaderCompileErrors(shaderId); err != nil {
		gl.DeleteShader(shaderId)
		return CompiledShader{}, err
	}

	return CompiledShader{Id: shaderId, Type: shaderType}, nil
}

func getShaderCompileErrors(shaderId uint32) error {

	var compiledSuccessfully int32
	gl.GetShaderiv(shaderId, gl.COMPILE_STATUS, &compiledSuccessfully)
	if compiledSuccessfully == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetShaderiv(shaderId, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength)+1))
	gl.GetShaderInfoLog(shaderId, logLength, nil, log)

	return errors.New(gl.GoStr(log))
}

func getProgramLinkErrors(programId uint32) error {

	var linkedSuccessfully int32
	gl.GetProgramiv(programId, gl.LINK_STATUS, &linkedSuccessfully)
	if linkedSuccessfully == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetProgramiv(programId, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength)+1))
	gl.GetProgramInfoLog(programId, logLength, nil, log)

	return errors.New(gl.GoStr(log))
}
