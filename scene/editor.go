package scene

import (
	"errors"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gsurf"
	"github.com/soypat/gsurf/gldraw"
)

// DefaultControlPointSize is the point sprite size of control point meshes
// when the editor config leaves it zero.
const DefaultControlPointSize = 8

// PatchEditorConfig configures a PatchEditor. Model, Camera, Depth, Surface
// and Flat must be set.
type PatchEditorConfig struct {
	// Model is the Bézier model being edited. The editor writes control
	// point positions back into it.
	Model *gsurf.ModelParams
	// Camera unprojects cursor positions. Usually a *gldraw.Camera.
	Camera gsurf.Unprojector
	// Depth samples the depth buffer at press. Usually gldraw.FrameDepth.
	Depth gsurf.DepthReader
	// Surface renders the tessellated patches, lit per vertex.
	Surface gldraw.Material
	// Flat renders control points and the control grid from the color
	// channel alone.
	Flat gldraw.Material
	// Build uploads meshes. Nil uses BuildMesh.
	Build MeshBuilder
	// Resolution is the tessellation resolution per patch axis. Zero means
	// DefaultPatchResolution.
	Resolution int
	// PickRadius overrides the controller's pick sphere radius when
	// positive.
	PickRadius float32
	// PointSize is the control point sprite size. Zero means
	// DefaultControlPointSize.
	PointSize float32
	// LineWidth is the control grid line width. Zero means 1.
	LineWidth float32
	// SurfaceColor tints the tessellated patches. The zero value means a
	// neutral gray.
	SurfaceColor ms3.Vec
	// PointColor colors the control point sprites. The zero value means
	// red.
	PointColor ms3.Vec
	// GridColor colors the control grid. The zero value means a dimmer
	// gray than the surface.
	GridColor ms3.Vec
}

func (cfg *PatchEditorConfig) fillDefaults() error {
	switch {
	case cfg.Model == nil:
		return errors.New("scene: patch editor requires a model")
	case cfg.Camera == nil || cfg.Depth == nil:
		return errors.New("scene: patch editor requires a camera and a depth reader")
	case cfg.Surface == nil || cfg.Flat == nil:
		return errors.New("scene: patch editor requires surface and flat materials")
	}
	if cfg.Build == nil {
		cfg.Build = BuildMesh
	}
	if cfg.Resolution == 0 {
		cfg.Resolution = DefaultPatchResolution
	}
	if cfg.PointSize == 0 {
		cfg.PointSize = DefaultControlPointSize
	}
	if cfg.LineWidth == 0 {
		cfg.LineWidth = 1
	}
	if cfg.SurfaceColor == (ms3.Vec{}) {
		cfg.SurfaceColor = ms3.Vec{X: 0.8, Y: 0.8, Z: 0.8}
	}
	if cfg.PointColor == (ms3.Vec{}) {
		cfg.PointColor = ms3.Vec{X: 1, Y: 0.2, Z: 0.2}
	}
	if cfg.GridColor == (ms3.Vec{}) {
		cfg.GridColor = ms3.Vec{X: 0.45, Y: 0.45, Z: 0.45}
	}
	return nil
}

// PatchEditor renders a Bézier model with its control net and turns cursor
// input into control point edits. It is the gsurf.PatchView of its own drag
// controller: moves rebuild the grabbed patch's control meshes, release
// re-tessellates the whole model.
type PatchEditor struct {
	cfg   PatchEditorConfig
	model *gsurf.ModelParams
	ctrl  *gsurf.DragController

	surfaces []Mesh // one per patch
	points   []Mesh // one per patch
	grids    []Mesh // one per patch
	err      error
}

var _ gsurf.PatchView = (*PatchEditor)(nil)

// NewPatchEditor builds the meshes of cfg.Model and returns an editor ready
// for input.
func NewPatchEditor(cfg PatchEditorConfig) (*PatchEditor, error) {
	if err := cfg.fillDefaults(); err != nil {
		return nil, err
	}
	e := &PatchEditor{cfg: cfg, model: cfg.Model}
	e.ctrl = gsurf.NewDragController(cfg.Model, cfg.Camera, cfg.Depth, e)
	if cfg.PickRadius > 0 {
		e.ctrl.Radius = cfg.PickRadius
	}
	e.RefreshSurface()
	if e.err != nil {
		e.Delete()
		return nil, e.err
	}
	return e, nil
}

// Model returns the model being edited.
func (e *PatchEditor) Model() *gsurf.ModelParams { return e.model }

// Dragging reports whether a control point is grabbed. Applications
// suppress camera input while it returns true.
func (e *PatchEditor) Dragging() bool { return e.ctrl.Dragging() }

// Err returns the first mesh rebuild failure since the last successful
// refresh. The frame loop checks it once per frame.
func (e *PatchEditor) Err() error { return e.err }

// HandlePress forwards a primary button press and reports whether a drag
// started.
func (e *PatchEditor) HandlePress(x, y float64, vp gsurf.Viewport) bool {
	return e.ctrl.Press(x, y, vp)
}

// HandleMove forwards cursor motion.
func (e *PatchEditor) HandleMove(x, y float64, vp gsurf.Viewport) {
	e.ctrl.Move(x, y, vp)
}

// HandleRelease forwards a primary button release.
func (e *PatchEditor) HandleRelease() {
	e.ctrl.Release()
}

// RefreshControls rebuilds the control point and grid meshes of one patch.
func (e *PatchEditor) RefreshControls(patch int) {
	points, err := e.buildControlPoints(patch)
	if err != nil {
		e.err = err
		return
	}
	grid, err := e.buildControlGrid(patch)
	if err != nil {
		points.Delete()
		e.err = err
		return
	}
	e.points[patch].Delete()
	e.grids[patch].Delete()
	e.points[patch] = points
	e.grids[patch] = grid
}

// RefreshSurface re-tessellates the model and rebuilds all meshes.
func (e *PatchEditor) RefreshSurface() {
	n := len(e.model.Patches)
	surfaces := make([]Mesh, 0, n)
	points := make([]Mesh, 0, n)
	grids := make([]Mesh, 0, n)
	fail := func(err error) {
		deleteAll(surfaces)
		deleteAll(points)
		deleteAll(grids)
		e.err = err
	}
	for i, patch := range e.model.Patches {
		g := gsurf.NewBezierGeometry(patch, e.cfg.Resolution, e.cfg.Resolution, e.cfg.SurfaceColor)
		surface, err := e.cfg.Build(gsurf.TriangleStrip, g, e.cfg.Surface, gldraw.DrawOptions{})
		if err != nil {
			fail(err)
			return
		}
		surfaces = append(surfaces, surface)

		pts, err := e.buildControlPoints(i)
		if err != nil {
			fail(err)
			return
		}
		points = append(points, pts)

		grid, err := e.buildControlGrid(i)
		if err != nil {
			fail(err)
			return
		}
		grids = append(grids, grid)
	}
	e.releaseMeshes()
	e.surfaces = surfaces
	e.points = points
	e.grids = grids
	e.err = nil
}

// Render draws the tessellated surfaces, then the control net on top.
func (e *PatchEditor) Render(params *gldraw.RenderParameters) {
	for _, m := range e.surfaces {
		m.Render(params)
	}
	for _, m := range e.grids {
		m.Render(params)
	}
	for _, m := range e.points {
		m.Render(params)
	}
}

// Bounds returns the control point box of the model, which contains the
// surface by the convex hull property.
func (e *PatchEditor) Bounds() ms3.Box { return e.model.Bounds() }

// Delete releases all meshes of the editor.
func (e *PatchEditor) Delete() { e.releaseMeshes() }

func (e *PatchEditor) releaseMeshes() {
	deleteAll(e.surfaces)
	deleteAll(e.points)
	deleteAll(e.grids)
	e.surfaces = nil
	e.points = nil
	e.grids = nil
}

func (e *PatchEditor) buildControlPoints(patch int) (Mesh, error) {
	g := gsurf.NewBasicGeometry()
	for _, curve := range e.model.Patches[patch] {
		for _, p := range curve {
			g.AddVertex(gsurf.Vertex{Position: p, Color: e.cfg.PointColor})
		}
	}
	opts := gldraw.DrawOptions{PointSize: e.cfg.PointSize}
	return e.cfg.Build(gsurf.Points, g, e.cfg.Flat, opts)
}

// buildControlGrid connects the 4x4 control net along both parameter
// directions, 24 segments in total.
func (e *PatchEditor) buildControlGrid(patch int) (Mesh, error) {
	g := gsurf.NewLineGeometry()
	p := e.model.Patches[patch]
	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			g.AddSegment(p[i][j], p[i][j+1], e.cfg.GridColor, e.cfg.LineWidth)
			g.AddSegment(p[j][i], p[j+1][i], e.cfg.GridColor, e.cfg.LineWidth)
		}
	}
	opts := gldraw.DrawOptions{LineWidth: e.cfg.LineWidth}
	return e.cfg.Build(gsurf.Lines, g, e.cfg.Flat, opts)
}
