package scene_test

import (
	"testing"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gsurf"
	"github.com/soypat/gsurf/scene"
)

// editorCam unprojects to a regular world grid so cursor positions map to
// predictable world coordinates: 100 pixels per world unit, depth as Z.
type editorCam struct{}

func (editorCam) Unproject(x, y, depth float32, vp gsurf.Viewport) (ms3.Vec, error) {
	return ms3.Vec{X: x / 100, Y: y / 100, Z: depth}, nil
}

type editorDepth struct{ depth float32 }

func (d editorDepth) ReadDepth(x, y float64, vp gsurf.Viewport) float32 { return d.depth }

// editorModel returns a two patch model whose control points sit far from
// the pickable region, except [0][0][0] which lies exactly where a press at
// cursor (100, 100) unprojects to.
func editorModel() *gsurf.ModelParams {
	m := &gsurf.ModelParams{Symbol: 'B', Patches: make([]gsurf.PatchParams, 2)}
	for pi := range m.Patches {
		for ci := range m.Patches[pi] {
			for vi := range m.Patches[pi][ci] {
				m.Patches[pi][ci][vi] = ms3.Vec{
					X: 50 + float32(pi), Y: float32(ci), Z: float32(vi),
				}
			}
		}
	}
	m.Patches[0][0][0] = ms3.Vec{X: 1, Y: 5, Z: 0.7}
	return m
}

func newEditor(t *testing.T, rec *meshRecorder, model *gsurf.ModelParams) *scene.PatchEditor {
	t.Helper()
	e, err := scene.NewPatchEditor(scene.PatchEditorConfig{
		Model:      model,
		Camera:     editorCam{},
		Depth:      editorDepth{depth: 0.7},
		Surface:    fakeMaterial{},
		Flat:       fakeMaterial{},
		Build:      rec.build,
		Resolution: 4,
	})
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestPatchEditorConfigValidation(t *testing.T) {
	model := editorModel()
	for _, tc := range []struct {
		name string
		cfg  scene.PatchEditorConfig
	}{
		{name: "missing model"},
		{name: "missing camera and depth", cfg: scene.PatchEditorConfig{Model: model}},
		{name: "missing materials", cfg: scene.PatchEditorConfig{
			Model: model, Camera: editorCam{}, Depth: editorDepth{},
		}},
	} {
		if _, err := scene.NewPatchEditor(tc.cfg); err == nil {
			t.Errorf("%s: expected config error", tc.name)
		}
	}
}

func TestNewPatchEditorBuildsModelMeshes(t *testing.T) {
	rec := &meshRecorder{}
	model := editorModel()
	e := newEditor(t, rec, model)

	// Surface, control points and control grid per patch.
	if len(rec.built) != 6 {
		t.Fatalf("got %d meshes, want 6", len(rec.built))
	}
	surface, points, grid := rec.built[0], rec.built[1], rec.built[2]
	if surface.topology != gsurf.TriangleStrip || surface.vertices != 25 {
		t.Errorf("surface: got %s with %d vertices, want strip with 25",
			surface.topology, surface.vertices)
	}
	if points.topology != gsurf.Points || points.vertices != 16 {
		t.Errorf("control points: got %s with %d vertices, want points with 16",
			points.topology, points.vertices)
	}
	if points.opts.PointSize != scene.DefaultControlPointSize {
		t.Errorf("point size: got %v, want %v", points.opts.PointSize, scene.DefaultControlPointSize)
	}
	if grid.topology != gsurf.Lines || grid.vertices != 48 {
		t.Errorf("control grid: got %s with %d vertices, want lines with 48",
			grid.topology, grid.vertices)
	}
	if e.Model() != model {
		t.Error("editor does not edit the configured model")
	}
	if e.Bounds() != model.Bounds() {
		t.Error("editor bounds disagree with the model bounds")
	}

	e.Render(identParams())
	for i, m := range rec.built {
		if m.renders != 1 {
			t.Errorf("mesh %d: got %d renders, want 1", i, m.renders)
		}
	}
}

func TestPatchEditorDragRebuildsOwningControls(t *testing.T) {
	rec := &meshRecorder{}
	model := editorModel()
	e := newEditor(t, rec, model)
	vp := gsurf.Viewport{W: 800, H: 600}

	if !e.HandlePress(100, 100, vp) {
		t.Fatal("press on a control point did not start a drag")
	}
	if !e.Dragging() {
		t.Fatal("editor not dragging after press")
	}
	if len(rec.built) != 6 {
		t.Fatalf("press rebuilt meshes: got %d, want 6", len(rec.built))
	}

	e.HandleMove(110, 110, vp)
	want := ms3.Vec{X: 1.1, Y: 4.9, Z: 0.7}
	if got := model.Patches[0][0][0]; got != want {
		t.Errorf("control point after move: got %v, want %v", got, want)
	}
	// Only patch 0's control meshes are rebuilt during the drag.
	if len(rec.built) != 8 {
		t.Fatalf("got %d meshes after move, want 8", len(rec.built))
	}
	if !rec.built[1].deleted || !rec.built[2].deleted {
		t.Error("move kept patch 0's stale control meshes alive")
	}
	if rec.built[0].deleted || rec.built[3].deleted || rec.built[4].deleted || rec.built[5].deleted {
		t.Error("move rebuilt meshes outside the grabbed patch")
	}

	e.HandleRelease()
	if e.Dragging() {
		t.Error("editor still dragging after release")
	}
	// Release re-tessellates the whole model.
	if len(rec.built) != 14 {
		t.Fatalf("got %d meshes after release, want 14", len(rec.built))
	}
	if alive := rec.alive(); len(alive) != 6 {
		t.Errorf("got %d alive meshes after release, want 6", len(alive))
	}
	if err := e.Err(); err != nil {
		t.Errorf("unexpected editor error: %v", err)
	}
}

func TestPatchEditorPressMissDoesNothing(t *testing.T) {
	rec := &meshRecorder{}
	e := newEditor(t, rec, editorModel())
	vp := gsurf.Viewport{W: 800, H: 600}

	if e.HandlePress(400, 300, vp) {
		t.Fatal("press far from all control points started a drag")
	}
	if e.Dragging() {
		t.Error("editor dragging after a miss")
	}
	if len(rec.built) != 6 {
		t.Errorf("miss rebuilt meshes: got %d, want 6", len(rec.built))
	}
}

func TestNewPatchEditorBuildError(t *testing.T) {
	rec := &meshRecorder{failAfter: 2}
	_, err := scene.NewPatchEditor(scene.PatchEditorConfig{
		Model:      editorModel(),
		Camera:     editorCam{},
		Depth:      editorDepth{depth: 0.7},
		Surface:    fakeMaterial{},
		Flat:       fakeMaterial{},
		Build:      rec.build,
		Resolution: 4,
	})
	if err == nil {
		t.Fatal("expected build error")
	}
	for i, m := range rec.built {
		if !m.deleted {
			t.Errorf("mesh %d leaked after failed construction", i)
		}
	}
}

func TestPatchEditorErrReportsControlRebuildFailure(t *testing.T) {
	rec := &meshRecorder{}
	e := newEditor(t, rec, editorModel())
	vp := gsurf.Viewport{W: 800, H: 600}

	if !e.HandlePress(100, 100, vp) {
		t.Fatal("press did not start a drag")
	}
	rec.failAfter = len(rec.built)
	e.HandleMove(110, 110, vp)
	if e.Err() == nil {
		t.Fatal("control rebuild failure not reported")
	}
	// The stale control meshes survive the failed rebuild.
	if rec.built[1].deleted || rec.built[2].deleted {
		t.Error("failed control rebuild released the previous meshes")
	}
}
