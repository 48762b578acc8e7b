package scene

import (
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gsurf"
	"github.com/soypat/gsurf/gldraw"
)

// OriginGizmo visualizes the coordinate system origin and the three cardinal
// axes as colored lines: X red, Y green, Z blue.
type OriginGizmo struct {
	mesh Mesh
}

// NewOriginGizmo builds the axis mesh with the given axis length and line
// thickness. The material must consume per-vertex colors. A nil build uses
// BuildMesh.
func NewOriginGizmo(length, thickness float32, mat gldraw.Material, build MeshBuilder) (*OriginGizmo, error) {
	if mat == nil {
		panicf("origin gizmo requires a material")
	}
	if build == nil {
		build = BuildMesh
	}
	g := gsurf.NewBasicGeometry()
	// Each axis direction doubles as its color.
	for _, axis := range [3]ms3.Vec{{X: 1}, {Y: 1}, {Z: 1}} {
		g.AddVertex(gsurf.Vertex{Color: axis})
		g.AddVertex(gsurf.Vertex{Position: ms3.Scale(length, axis), Color: axis})
	}
	m, err := build(gsurf.Lines, g, mat, gldraw.DrawOptions{LineWidth: thickness})
	if err != nil {
		return nil, err
	}
	return &OriginGizmo{mesh: m}, nil
}

// Render draws the axes.
func (o *OriginGizmo) Render(params *gldraw.RenderParameters) {
	o.mesh.Render(params)
}

// Delete releases the axis mesh.
func (o *OriginGizmo) Delete() {
	o.mesh.Delete()
}
