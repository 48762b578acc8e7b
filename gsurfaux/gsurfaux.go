// Package gsurfaux is an auxiliary application shell for the gsurf patch
// editor: GLFW window setup, GL state, input routing between the drag
// controller and the trackball camera, and the frame loop. Ideally
// applications implement their own shells since windowing needs vary
// widely; this one gets an editor on screen with a model and little else.
package gsurfaux

import (
	"context"
	"errors"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gsurf"
	"github.com/soypat/gsurf/scene"
)

// EditorConfig configures RunEditor. Model is required; zero values of the
// remaining fields get defaults.
type EditorConfig struct {
	// Model is the Bézier model to edit. The editor writes control point
	// positions back into it, so the model reflects all edits after
	// RunEditor returns.
	Model *gsurf.ModelParams
	// System optionally renders interpreted rewriting output alongside
	// the model being edited.
	System scene.Interpretation
	// Palette resolves System color indices.
	Palette []ms3.Vec
	// Width and Height are the initial window size. Zero means 1024x768.
	Width  int
	Height int
	// Title is the window title.
	Title string
	// FOV is the vertical field of view in degrees. Zero means 75.
	FOV float32
	// Wireframe draws System polygons as outlines.
	Wireframe bool
	// ShowNormals overlays System polygon normals.
	ShowNormals bool
	// ShowBounds outlines the bounding box of everything on screen.
	ShowBounds bool
	// BoundsColor is the outline color. The zero value means white.
	BoundsColor ms3.Vec
	// Context cancels the editor loop early when done.
	Context context.Context
}

func (cfg *EditorConfig) fillDefaults() error {
	if cfg.Model == nil {
		return errors.New("gsurfaux: editor requires a model")
	}
	if cfg.Width == 0 {
		cfg.Width = 1024
	}
	if cfg.Height == 0 {
		cfg.Height = 768
	}
	if cfg.Title == "" {
		cfg.Title = "gsurf patch editor"
	}
	if cfg.FOV == 0 {
		cfg.FOV = 75
	}
	if cfg.BoundsColor == (ms3.Vec{}) {
		cfg.BoundsColor = ms3.Vec{X: 1, Y: 1, Z: 1}
	}
	return nil
}

func boxUnion(a, b ms3.Box) ms3.Box {
	return ms3.Box{
		Min: ms3.MinElem(a.Min, b.Min),
		Max: ms3.MaxElem(a.Max, b.Max),
	}
}
