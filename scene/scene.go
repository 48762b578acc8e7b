// Package scene assembles renderable views on top of gsurf geometry: the
// line and polygon output of an interpreted rewriting system, Bézier patch
// meshes keyed by model symbol, and the interactive patch editor.
//
// Views never call OpenGL directly. Geometry construction is CPU-pure and
// mesh upload goes through a MeshBuilder, so every view can be exercised
// headless by substituting the builder and materials.
package scene

import (
	"fmt"

	"github.com/soypat/gsurf"
	"github.com/soypat/gsurf/gldraw"
)

func panicf(format string, args ...any) {
	panic(fmt.Sprintf("scene: "+format, args...))
}

// Mesh is the GPU half of a scene object. *gldraw.Mesh implements it.
type Mesh interface {
	Render(params *gldraw.RenderParameters)
	Delete()
}

var _ Mesh = (*gldraw.Mesh)(nil)

// MeshBuilder uploads one geometry with a material and draw options.
// Views take a builder instead of calling gldraw directly so their logic
// runs without a GL context under test.
type MeshBuilder func(topology gsurf.PrimitiveType, g gsurf.Geometry, mat gldraw.Material, opts gldraw.DrawOptions) (Mesh, error)

// BuildMesh is the MeshBuilder used when none is injected. It uploads
// through gldraw.NewMesh on the current GL context.
func BuildMesh(topology gsurf.PrimitiveType, g gsurf.Geometry, mat gldraw.Material, opts gldraw.DrawOptions) (Mesh, error) {
	m, err := gldraw.NewMesh(topology, g, mat)
	if err != nil {
		return nil, err
	}
	m.Options = opts
	return m, nil
}

func deleteAll(meshes []Mesh) {
	for _, m := range meshes {
		m.Delete()
	}
}
