package gldraw

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
)

// Lighting holds the light sources applied by shading materials.
type Lighting struct {
	// AmbientIntensity is the omnidirectional base light.
	AmbientIntensity ms3.Vec
	// DirectionalLight is the direction the directional light shines from.
	DirectionalLight ms3.Vec
	// DirectionalIntensity is the color of the directional light.
	DirectionalIntensity ms3.Vec
}

// DefaultLighting returns a soft white ambient term with a white directional
// light shining diagonally from above.
func DefaultLighting() Lighting {
	return Lighting{
		AmbientIntensity:     ms3.Vec{X: 0.4, Y: 0.4, Z: 0.4},
		DirectionalLight:     ms3.Vec{Y: 1, Z: 1},
		DirectionalIntensity: ms3.Vec{X: 0.8, Y: 0.8, Z: 0.8},
	}
}

// RenderParameters carry the camera matrices and lighting for one frame, plus
// a model matrix stack for hierarchical rendering: callers push the current
// model matrix, accumulate local transforms, draw, and pop.
type RenderParameters struct {
	Projection mgl32.Mat4
	View       mgl32.Mat4
	Model      mgl32.Mat4
	Lighting   Lighting

	stack []mgl32.Mat4
}

// NewRenderParameters returns parameters with an identity model matrix and
// default lighting.
func NewRenderParameters(view, projection mgl32.Mat4) *RenderParameters {
	return &RenderParameters{
		Projection: projection,
		View:       view,
		Model:      mgl32.Ident4(),
		Lighting:   DefaultLighting(),
	}
}

// PushMatrix saves the current model matrix for later restoration.
func (p *RenderParameters) PushMatrix() {
	p.stack = append(p.stack, p.Model)
}

// PopMatrix restores the model matrix saved by the matching PushMatrix.
// Popping an empty stack is a programmer error and panics.
func (p *RenderParameters) PopMatrix() {
	if len(p.stack) == 0 {
		panicf("pop on empty matrix stack")
	}
	p.Model = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

// Translate accumulates a translation onto the model matrix.
func (p *RenderParameters) Translate(v ms3.Vec) {
	p.MulMatrix(mgl32.Translate3D(v.X, v.Y, v.Z))
}

// Scale accumulates a uniform scaling onto the model matrix.
func (p *RenderParameters) Scale(f float32) {
	p.MulMatrix(mgl32.Scale3D(f, f, f))
}

// MulMatrix right multiplies the model matrix with m.
func (p *RenderParameters) MulMatrix(m mgl32.Mat4) {
	p.Model = p.Model.Mul4(m)
}
