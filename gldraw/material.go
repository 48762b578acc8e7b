package gldraw

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glgl/v4.6-core/glgl"
)

// Material owns a shader program and uploads all program specific uniforms
// when enabled. Callers never touch the program directly; meshes enable
// their material right before the draw call.
type Material interface {
	Enable(params *RenderParameters)
}

// matrixLocations are the uniform locations of the three transform matrices
// every surface program declares.
type matrixLocations struct {
	projection, view, model int32
}

func locateMatrices(prog glgl.Program) (loc matrixLocations, err error) {
	loc.projection, err = prog.UniformLocation("projection\x00")
	if err != nil {
		return loc, err
	}
	loc.view, err = prog.UniformLocation("view\x00")
	if err != nil {
		return loc, err
	}
	loc.model, err = prog.UniformLocation("model\x00")
	return loc, err
}

func (l matrixLocations) upload(params *RenderParameters) {
	gl.UniformMatrix4fv(l.projection, 1, false, &params.Projection[0])
	gl.UniformMatrix4fv(l.view, 1, false, &params.View[0])
	gl.UniformMatrix4fv(l.model, 1, false, &params.Model[0])
}

func uniform3(loc int32, v ms3.Vec) {
	gl.Uniform3f(loc, v.X, v.Y, v.Z)
}

// SimpleMaterial draws vertex colors without shading.
type SimpleMaterial struct {
	prog glgl.Program
	mats matrixLocations
}

// NewSimpleMaterial compiles the unlit vertex color program.
func NewSimpleMaterial() (*SimpleMaterial, error) {
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   simpleVertex + "\x00",
		Fragment: simpleFragment + "\x00",
	})
	if err != nil {
		return nil, fmt.Errorf("compiling simple material: %w", err)
	}
	m := &SimpleMaterial{prog: prog}
	m.mats, err = locateMatrices(prog)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *SimpleMaterial) Enable(params *RenderParameters) {
	m.prog.Bind()
	m.mats.upload(params)
}

const simpleVertex = `#version 330 core

layout (location = 0) in vec3 Position;
layout (location = 1) in vec3 Color;
layout (location = 2) in vec3 Normal;

uniform mat4 projection;
uniform mat4 view;
uniform mat4 model;

out VS_OUTPUT {
    vec3 Color;
} OUT;

void main()
{
    gl_Position = projection * view * model * vec4(Position, 1.0);
    OUT.Color = Color;
}
`

const simpleFragment = `#version 330 core

in VS_OUTPUT {
    vec3 Color;
} IN;

out vec4 Color;

void main()
{
    Color = vec4(IN.Color, 1.0f);
}
`

// ShadedMaterial draws vertex colors lit by the ambient and directional
// lights of the render parameters.
type ShadedMaterial struct {
	prog                 glgl.Program
	mats                 matrixLocations
	ambient              int32
	directionalIntensity int32
	directionalLight     int32
}

// NewShadedMaterial compiles the diffuse lighting program.
func NewShadedMaterial() (*ShadedMaterial, error) {
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   shadedVertex + "\x00",
		Fragment: shadedFragment + "\x00",
	})
	if err != nil {
		return nil, fmt.Errorf("compiling shaded material: %w", err)
	}
	m := &ShadedMaterial{prog: prog}
	m.mats, err = locateMatrices(prog)
	if err != nil {
		return nil, err
	}
	m.ambient, err = prog.UniformLocation("AmbientIntensity\x00")
	if err != nil {
		return nil, err
	}
	m.directionalIntensity, err = prog.UniformLocation("DirectionalIntensity\x00")
	if err != nil {
		return nil, err
	}
	m.directionalLight, err = prog.UniformLocation("DirectionalLight\x00")
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *ShadedMaterial) Enable(params *RenderParameters) {
	m.prog.Bind()
	m.mats.upload(params)
	uniform3(m.ambient, params.Lighting.AmbientIntensity)
	uniform3(m.directionalIntensity, params.Lighting.DirectionalIntensity)
	uniform3(m.directionalLight, params.Lighting.DirectionalLight)
}

const shadedVertex = `#version 330 core

layout (location = 0) in vec3 Position;
layout (location = 1) in vec3 Color;
layout (location = 2) in vec3 Normal;

uniform mat4 projection;
uniform mat4 view;
uniform mat4 model;

out VS_OUTPUT {
    vec3 Color;
    vec3 Normal;
} OUT;

void main()
{
    gl_Position = projection * view * model * vec4(Position, 1.0);
    OUT.Color = Color;
    OUT.Normal = mat3(model) * Normal;
}
`

const shadedFragment = `#version 330 core

uniform vec3 AmbientIntensity;
uniform vec3 DirectionalIntensity;
uniform vec3 DirectionalLight;

in VS_OUTPUT {
    vec3 Color;
    vec3 Normal;
} IN;

out vec4 Color;

void main()
{
    vec3 ambient = AmbientIntensity;

    float diff = max(dot(normalize(IN.Normal), normalize(DirectionalLight)), 0.0);
    vec3 diffuse = diff * DirectionalIntensity;

    vec3 result = (diffuse + ambient) * IN.Color;

    Color = vec4(result, 1.0f);
}
`

// UniformColorMaterial draws every fragment in a single color, ignoring the
// vertex color channel. The color may be changed between draws.
type UniformColorMaterial struct {
	// Color is the flat output color.
	Color ms3.Vec

	prog  glgl.Program
	mats  matrixLocations
	color int32
}

// NewUniformColorMaterial compiles the flat color program.
func NewUniformColorMaterial(color ms3.Vec) (*UniformColorMaterial, error) {
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   flatVertex + "\x00",
		Fragment: flatFragment + "\x00",
	})
	if err != nil {
		return nil, fmt.Errorf("compiling uniform color material: %w", err)
	}
	m := &UniformColorMaterial{Color: color, prog: prog}
	m.mats, err = locateMatrices(prog)
	if err != nil {
		return nil, err
	}
	m.color, err = prog.UniformLocation("FlatColor\x00")
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *UniformColorMaterial) Enable(params *RenderParameters) {
	m.prog.Bind()
	m.mats.upload(params)
	uniform3(m.color, m.Color)
}

const flatVertex = `#version 330 core

layout (location = 0) in vec3 Position;

uniform mat4 projection;
uniform mat4 view;
uniform mat4 model;

void main()
{
    gl_Position = projection * view * model * vec4(Position, 1.0);
}
`

const flatFragment = `#version 330 core

uniform vec3 FlatColor;

out vec4 Color;

void main()
{
    Color = vec4(FlatColor, 1.0f);
}
`
