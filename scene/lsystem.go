package scene

import (
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gsurf"
	"github.com/soypat/gsurf/gldraw"
)

// LineSegment is one colored straight stroke produced by interpreting a
// rewriting system.
type LineSegment struct {
	Begin, End ms3.Vec
	Color      int
}

// SurfacePolygon is a filled polygon produced by interpreting a rewriting
// system. Vertices are listed in fan order around the first vertex.
type SurfacePolygon struct {
	Vertices []ms3.Vec
	Color    int
}

// Interpretation is the drawable output of one interpretation pass of a
// rewriting system. The rewriting engine itself is opaque to this package.
type Interpretation interface {
	LineSegments() []LineSegment
	Polygons() []SurfacePolygon
	// PaletteSize is the number of colors the system was configured with.
	// Color indices at or above it clamp to the last palette entry.
	PaletteSize() int
}

// PaletteColor resolves a color index against palette. Out of range indices
// clamp into the palette and an empty palette yields white.
func PaletteColor(palette []ms3.Vec, index int) ms3.Vec {
	if len(palette) == 0 {
		return ms3.Vec{X: 1, Y: 1, Z: 1}
	}
	if index >= len(palette) {
		index = len(palette) - 1
	}
	if index < 0 {
		index = 0
	}
	return palette[index]
}

func clampIndex(index, size int) int {
	if size > 0 && index >= size {
		return size - 1
	}
	return index
}

// BuildLineGeometry flattens segments into a Lines geometry with the
// resolved palette color repeated on both endpoints of each stroke.
// Strokes are unlit so the normal channel stays zero.
func BuildLineGeometry(segments []LineSegment, palette []ms3.Vec) *gsurf.BasicGeometry {
	g := gsurf.NewBasicGeometry()
	for _, seg := range segments {
		color := PaletteColor(palette, seg.Color)
		g.AddVertex(gsurf.Vertex{Position: seg.Begin, Color: color})
		g.AddVertex(gsurf.Vertex{Position: seg.End, Color: color})
	}
	return g
}

// BuildPolygonGeometry converts one polygon into a triangle fan geometry
// with generated normals. Fewer than three vertices panics, as fan normal
// generation requires at least one face.
func BuildPolygonGeometry(poly SurfacePolygon, palette []ms3.Vec) *gsurf.BasicGeometry {
	color := PaletteColor(palette, poly.Color)
	vertices := make([]gsurf.Vertex, len(poly.Vertices))
	for i, p := range poly.Vertices {
		vertices[i] = gsurf.Vertex{Position: p, Color: color}
	}
	return gsurf.BasicGeometryWithNormals(gsurf.TriangleFan, vertices)
}

// BuildNormalOverlay returns a Lines geometry with one segment per vertex,
// from the vertex position along its normal scaled by length. It is the
// normal visualization for geometries whose normal channel is generated.
func BuildNormalOverlay(positions, normals []ms3.Vec, length float32, color ms3.Vec) *gsurf.BasicGeometry {
	g := gsurf.NewBasicGeometry()
	for i, p := range positions {
		tip := ms3.Add(p, ms3.Scale(length, normals[i]))
		g.AddVertex(gsurf.Vertex{Position: p, Color: color})
		g.AddVertex(gsurf.Vertex{Position: tip, Color: color})
	}
	return g
}

// CollectBounds returns the axis aligned box over all segment endpoints and
// polygon vertices. With no points at all it returns the zero box.
func CollectBounds(segments []LineSegment, polys []SurfacePolygon) ms3.Box {
	var bb ms3.Box
	first := true
	grow := func(p ms3.Vec) {
		if first {
			bb = ms3.Box{Min: p, Max: p}
			first = false
			return
		}
		bb.Min = ms3.MinElem(bb.Min, p)
		bb.Max = ms3.MaxElem(bb.Max, p)
	}
	for _, seg := range segments {
		grow(seg.Begin)
		grow(seg.End)
	}
	for _, poly := range polys {
		for _, p := range poly.Vertices {
			grow(p)
		}
	}
	return bb
}

// DefaultNormalLength is the world space length of normal overlay segments
// when the view config leaves it zero.
const DefaultNormalLength = 0.1

// SystemViewConfig configures a SystemView. Material must be set; it
// renders strokes, polygons and overlays alike from the per vertex color
// channel.
type SystemViewConfig struct {
	// Palette maps color indices of the interpretation to RGB colors.
	// May be empty, in which case everything renders white.
	Palette []ms3.Vec
	// Material renders all meshes of the view.
	Material gldraw.Material
	// Build uploads meshes. Nil uses BuildMesh.
	Build MeshBuilder
	// Wireframe draws polygons as outlines.
	Wireframe bool
	// ShowNormals adds a normal visualization overlay to each polygon.
	ShowNormals bool
	// NormalLength is the overlay segment length. Zero means
	// DefaultNormalLength.
	NormalLength float32
	// NormalColor is the overlay color. The zero value means yellow.
	NormalColor ms3.Vec
}

// SystemView renders the interpreted output of a rewriting system: one
// Lines mesh holding all strokes and one triangle fan mesh per polygon,
// optionally overlaid with normal visualizations.
type SystemView struct {
	palette      []ms3.Vec
	mat          gldraw.Material
	build        MeshBuilder
	wireframe    bool
	showNormals  bool
	normalLength float32
	normalColor  ms3.Vec

	last     Interpretation
	lines    Mesh
	polygons []Mesh
	overlays []Mesh
	bounds   ms3.Box
}

// NewSystemView returns an empty view. Call Refresh to populate it.
func NewSystemView(cfg SystemViewConfig) *SystemView {
	if cfg.Material == nil {
		panicf("system view requires a material")
	}
	if cfg.Build == nil {
		cfg.Build = BuildMesh
	}
	if cfg.NormalLength == 0 {
		cfg.NormalLength = DefaultNormalLength
	}
	if cfg.NormalColor == (ms3.Vec{}) {
		cfg.NormalColor = ms3.Vec{X: 1, Y: 1}
	}
	return &SystemView{
		palette:      cfg.Palette,
		mat:          cfg.Material,
		build:        cfg.Build,
		wireframe:    cfg.Wireframe,
		showNormals:  cfg.ShowNormals,
		normalLength: cfg.NormalLength,
		normalColor:  cfg.NormalColor,
	}
}

// Refresh rebuilds all meshes of the view from the interpretation output.
// On error the view keeps its previous meshes. Polygons with fewer than
// three vertices are skipped; their vertices still grow the bounds.
func (v *SystemView) Refresh(in Interpretation) error {
	segments := in.LineSegments()
	polys := in.Polygons()
	size := in.PaletteSize()

	var lines Mesh
	if len(segments) > 0 {
		clamped := make([]LineSegment, len(segments))
		for i, seg := range segments {
			seg.Color = clampIndex(seg.Color, size)
			clamped[i] = seg
		}
		m, err := v.build(gsurf.Lines, BuildLineGeometry(clamped, v.palette), v.mat, gldraw.DrawOptions{})
		if err != nil {
			return err
		}
		lines = m
	}

	var polygons, overlays []Mesh
	fail := func(err error) error {
		if lines != nil {
			lines.Delete()
		}
		deleteAll(polygons)
		deleteAll(overlays)
		return err
	}
	for _, poly := range polys {
		if len(poly.Vertices) < 3 {
			continue
		}
		poly.Color = clampIndex(poly.Color, size)
		g := BuildPolygonGeometry(poly, v.palette)
		m, err := v.build(gsurf.TriangleFan, g, v.mat, gldraw.DrawOptions{Wireframe: v.wireframe})
		if err != nil {
			return fail(err)
		}
		polygons = append(polygons, m)

		if !v.showNormals {
			continue
		}
		overlay := BuildNormalOverlay(g.Positions.Data(), g.Normals.Data(), v.normalLength, v.normalColor)
		m, err = v.build(gsurf.Lines, overlay, v.mat, gldraw.DrawOptions{})
		if err != nil {
			return fail(err)
		}
		overlays = append(overlays, m)
	}

	v.releaseMeshes()
	v.last = in
	v.lines = lines
	v.polygons = polygons
	v.overlays = overlays
	v.bounds = CollectBounds(segments, polys)
	return nil
}

// Render draws strokes, polygons and overlays in that order.
func (v *SystemView) Render(params *gldraw.RenderParameters) {
	if v.lines != nil {
		v.lines.Render(params)
	}
	for _, m := range v.polygons {
		m.Render(params)
	}
	for _, m := range v.overlays {
		m.Render(params)
	}
}

// Bounds returns the box accumulated over all points of the last Refresh.
// A view that has nothing to draw returns the zero box.
func (v *SystemView) Bounds() ms3.Box { return v.bounds }

// SetWireframe switches polygon outline drawing and rebuilds the view if it
// has been refreshed before.
func (v *SystemView) SetWireframe(on bool) error {
	if v.wireframe == on {
		return nil
	}
	v.wireframe = on
	if v.last == nil {
		return nil
	}
	return v.Refresh(v.last)
}

// SetShowNormals switches the normal visualization overlay and rebuilds the
// view if it has been refreshed before.
func (v *SystemView) SetShowNormals(on bool) error {
	if v.showNormals == on {
		return nil
	}
	v.showNormals = on
	if v.last == nil {
		return nil
	}
	return v.Refresh(v.last)
}

// Delete releases all meshes of the view.
func (v *SystemView) Delete() {
	v.releaseMeshes()
	v.last = nil
	v.bounds = ms3.Box{}
}

func (v *SystemView) releaseMeshes() {
	if v.lines != nil {
		v.lines.Delete()
		v.lines = nil
	}
	deleteAll(v.polygons)
	deleteAll(v.overlays)
	v.polygons = nil
	v.overlays = nil
}
