package scene

import (
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gsurf"
	"github.com/soypat/gsurf/gldraw"
)

// DefaultPatchResolution is the tessellation resolution per patch axis used
// by NewShadedPatchBuilder.
const DefaultPatchResolution = 30

// PatchBuilder tessellates one Bézier patch into a renderable mesh.
type PatchBuilder func(patch gsurf.PatchParams) (Mesh, error)

// NewShadedPatchBuilder returns the patch builder of the editor
// application: DefaultPatchResolution² triangle strip tessellation carrying
// color, uploaded through BuildMesh with mat.
func NewShadedPatchBuilder(mat gldraw.Material, color ms3.Vec) PatchBuilder {
	return func(patch gsurf.PatchParams) (Mesh, error) {
		g := gsurf.NewBezierGeometry(patch, DefaultPatchResolution, DefaultPatchResolution, color)
		return BuildMesh(gsurf.TriangleStrip, g, mat, gldraw.DrawOptions{})
	}
}

// PatchSet is a registry of tessellated Bézier model meshes keyed by the
// model's symbol, letting several instantiations of the same model share
// one mesh set.
type PatchSet struct {
	build  PatchBuilder
	meshes map[rune][]Mesh
}

// NewPatchSet returns an empty set building meshes through build.
func NewPatchSet(build PatchBuilder) *PatchSet {
	if build == nil {
		panicf("patch set requires a builder")
	}
	return &PatchSet{build: build, meshes: make(map[rune][]Mesh)}
}

// Update rebuilds the mesh set of each model, creating entries for symbols
// not seen before. Models without a symbol are skipped. On error the
// already stored sets keep their previous meshes.
func (s *PatchSet) Update(models ...*gsurf.ModelParams) error {
	for _, m := range models {
		if m.Symbol == 0 {
			continue
		}
		built := make([]Mesh, 0, len(m.Patches))
		for _, patch := range m.Patches {
			mesh, err := s.build(patch)
			if err != nil {
				deleteAll(built)
				return err
			}
			built = append(built, mesh)
		}
		s.replace(m.Symbol, built)
	}
	return nil
}

// Remove deletes the meshes stored for symbol, if any.
func (s *PatchSet) Remove(symbol rune) {
	s.replace(symbol, nil)
}

// Rename moves the meshes of old to new without rebuilding them. Meshes
// already stored under new are released.
func (s *PatchSet) Rename(old, new rune) {
	meshes, ok := s.meshes[old]
	if !ok {
		return
	}
	delete(s.meshes, old)
	s.replace(new, meshes)
}

// Has reports whether meshes are stored for symbol.
func (s *PatchSet) Has(symbol rune) bool {
	_, ok := s.meshes[symbol]
	return ok
}

// Meshes returns the meshes stored for symbol, nil if there are none.
func (s *PatchSet) Meshes(symbol rune) []Mesh {
	return s.meshes[symbol]
}

// Delete releases every mesh and empties the set.
func (s *PatchSet) Delete() {
	for symbol := range s.meshes {
		s.replace(symbol, nil)
	}
}

// replace deletes the current meshes of symbol and stores meshes in their
// place. A nil meshes removes the entry.
func (s *PatchSet) replace(symbol rune, meshes []Mesh) {
	if old, ok := s.meshes[symbol]; ok {
		deleteAll(old)
	}
	if meshes == nil {
		delete(s.meshes, symbol)
		return
	}
	s.meshes[symbol] = meshes
}
