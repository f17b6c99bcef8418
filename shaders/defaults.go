package shaders

import "fmt"

// DefaultShaderKind selects which built-in shader the draw dispatcher falls
// back to when a draw supplies none. The split exists because a draw either
// has a texture bound or it doesn't; there is no runtime branching inside
// the shader
type DefaultShaderKind int

const (
	DefaultShader_Untextured DefaultShaderKind = iota
	DefaultShader_Textured

	defaultShaderKindCount
)

// The default shaders reproduce the fixed-function pipeline: position through
// the modelview-projection stack, texcoords through the texture matrix, the
// client color array in gl_Color, all modulated by the u_color uniform.
const defaultUntexturedSrc = `//shader:vertex
#version 110

void main()
{
	gl_Position = gl_ModelViewProjectionMatrix * gl_Vertex;
	gl_FrontColor = gl_Color;
}

//shader:fragment
#version 110

uniform vec4 u_color;

void main()
{
	gl_FragColor = gl_Color * u_color;
}
`

const defaultTexturedSrc = `//shader:vertex
#version 110

void main()
{
	gl_Position = gl_ModelViewProjectionMatrix * gl_Vertex;
	gl_TexCoord[0] = gl_TextureMatrix[0] * gl_MultiTexCoord0;
	gl_FrontColor = gl_Color;
}

//shader:fragment
#version 110

uniform vec4 u_color;
uniform sampler2D u_texture;

void main()
{
	gl_FragColor = texture2D(u_texture, gl_TexCoord[0].st) * gl_Color * u_color;
}
`

var defaultShaders [defaultShaderKindCount]*Shader

// Default returns the built-in shader of the given kind, compiling it on
// first use. Compilation requires a current GL context
func Default(kind DefaultShaderKind) (*Shader, error) {

	if kind < 0 || kind >= defaultShaderKindCount {
		return nil, fmt.Errorf("unknown default shader kind '%d'", kind)
	}

	if defaultShaders[kind] != nil {
		return defaultShaders[kind], nil
	}

	var src string
	var name string
	if kind == DefaultShader_Textured {
		src = defaultTexturedSrc
		name = "default-textured"
	} else {
		src = defaultUntexturedSrc
		name = "default-untextured"
	}

	s, err := NewShaderFromSrc(name, []byte(src))
	if err != nil {
		return nil, err
	}

	defaultShaders[kind] = s
	return s, nil
}
