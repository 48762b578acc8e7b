package scene

import (
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gsurf"
	"github.com/soypat/gsurf/gldraw"
)

// BoundingBox renders the twelve edges of an axis aligned box. Pairing it
// with a gldraw.UniformColorMaterial lets the outline color change between
// frames through the material's Color field.
type BoundingBox struct {
	mesh Mesh
	box  ms3.Box
}

// NewBoundingBox uploads the edge outline of box. A nil build uses BuildMesh.
func NewBoundingBox(box ms3.Box, mat gldraw.Material, build MeshBuilder) (*BoundingBox, error) {
	if mat == nil {
		panicf("bounding box requires a material")
	}
	if build == nil {
		build = BuildMesh
	}
	g := gsurf.NewBoxEdgeGeometry(box, ms3.Vec{X: 1, Y: 1, Z: 1})
	mesh, err := build(gsurf.Lines, g, mat, gldraw.DrawOptions{})
	if err != nil {
		return nil, err
	}
	return &BoundingBox{mesh: mesh, box: box}, nil
}

// Box returns the box the outline was built from.
func (b *BoundingBox) Box() ms3.Box { return b.box }

// Radius returns the radius of the sphere containing the box.
func (b *BoundingBox) Radius() float32 { return b.box.Diagonal() / 2 }

// Render draws the outline.
func (b *BoundingBox) Render(params *gldraw.RenderParameters) {
	b.mesh.Render(params)
}

// Delete releases the outline mesh.
func (b *BoundingBox) Delete() { b.mesh.Delete() }
