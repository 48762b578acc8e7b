package gsurf

import "github.com/soypat/geometry/ms3"

// Viewport is the drawable rectangle in pixels.
type Viewport struct {
	X, Y, W, H int32
}

// Contains reports whether the cursor position (x, y) lies inside the
// viewport. Cursor coordinates have their origin at the top left.
func (v Viewport) Contains(x, y float64) bool {
	return x >= float64(v.X) && x < float64(v.X+v.W) &&
		y >= float64(v.Y) && y < float64(v.Y+v.H)
}

// Aspect returns the width to height ratio.
func (v Viewport) Aspect() float32 {
	if v.H == 0 {
		return 1
	}
	return float32(v.W) / float32(v.H)
}

// Unprojector maps window coordinates plus a depth buffer sample back to a
// world position. Window coordinates follow the OpenGL convention with the
// origin at the bottom left and depth in [0,1].
type Unprojector interface {
	Unproject(winX, winY, depth float32, vp Viewport) (ms3.Vec, error)
}

// DepthReader samples the depth buffer under a cursor position. Cursor
// coordinates have their origin at the top left; implementations flip
// internally as required by the framebuffer layout.
type DepthReader interface {
	ReadDepth(x, y float64, vp Viewport) float32
}

// PatchView is the scene-side consumer of drag edits. During a drag only
// the edited patch's control visualization is rebuilt; the expensive full
// rebuild happens once, when the drag completes.
type PatchView interface {
	// RefreshControls rebuilds the control point visualization of one patch.
	RefreshControls(patch int)
	// RefreshSurface re-tessellates the model and rebuilds all of its meshes.
	RefreshSurface()
}

// ControlPointRef identifies one control point of a model as the patch
// index, the curve index within the patch and the point index within the
// curve.
type ControlPointRef struct {
	Patch, Curve, Point int
}

// DefaultPickRadius is the pick sphere radius used by NewDragController,
// sized against the unit patch scale of the built in geometries.
const DefaultPickRadius = 0.05

// DragController turns cursor input into control point edits. It is a two
// state machine, idle or dragging:
//
//   - Press while idle samples the depth buffer once, unprojects the cursor
//     and picks the first control point whose pick sphere intersects the
//     cursor sphere. A miss keeps the controller idle and is not an error.
//   - Move while dragging unprojects with the depth captured at press, so
//     the point follows the cursor on a fixed-depth plane even as the
//     surface shifts underneath, and rebuilds only the owning patch's
//     control visualization. A move outside the viewport ends the drag.
//   - Release re-tessellates the model through one full view refresh.
//
// Applications should suppress camera input while Dragging reports true.
// All methods must be called from the frame loop thread.
type DragController struct {
	// Radius is the pick sphere radius in world units. Both the cursor and
	// the control points carry a sphere of this radius; a pick hits when
	// the two intersect.
	Radius float32

	model *ModelParams
	cam   Unprojector
	depth DepthReader
	view  PatchView

	dragging   bool
	pressDepth float32
	ref        ControlPointRef
}

// NewDragController returns an idle controller editing model through view.
func NewDragController(model *ModelParams, cam Unprojector, depth DepthReader, view PatchView) *DragController {
	if model == nil || cam == nil || depth == nil || view == nil {
		panicf("drag controller requires a model, camera, depth reader and view")
	}
	return &DragController{
		Radius: DefaultPickRadius,
		model:  model,
		cam:    cam,
		depth:  depth,
		view:   view,
	}
}

// Dragging reports whether a control point is currently grabbed.
func (d *DragController) Dragging() bool { return d.dragging }

// Selection returns the control point being dragged, if any.
func (d *DragController) Selection() (ControlPointRef, bool) {
	return d.ref, d.dragging
}

// Press handles a primary button press at cursor position (x, y) and
// reports whether a drag started. Control points are tested in
// (patch, curve, point) order and the first hit wins, so of several control
// points within pick range the lowest indexed one is selected.
func (d *DragController) Press(x, y float64, vp Viewport) bool {
	if d.dragging {
		return false
	}
	depth := d.depth.ReadDepth(x, y, vp)
	world, err := d.cam.Unproject(float32(x), float32(vp.H)-float32(y), depth, vp)
	if err != nil {
		return false
	}
	for pi := range d.model.Patches {
		for ci := range d.model.Patches[pi] {
			for vi := range d.model.Patches[pi][ci] {
				if !spheresTouch(world, d.model.Patches[pi][ci][vi], d.Radius) {
					continue
				}
				d.dragging = true
				d.pressDepth = depth
				d.ref = ControlPointRef{Patch: pi, Curve: ci, Point: vi}
				return true
			}
		}
	}
	return false
}

// Move handles cursor motion. While dragging the grabbed control point is
// overwritten with the cursor unprojected at the press depth. Motion
// outside the viewport ends the drag like a release. Idle motion is
// ignored.
func (d *DragController) Move(x, y float64, vp Viewport) {
	if !d.dragging {
		return
	}
	if !vp.Contains(x, y) {
		d.finish()
		return
	}
	world, err := d.cam.Unproject(float32(x), float32(vp.H)-float32(y), d.pressDepth, vp)
	if err != nil {
		return
	}
	d.model.SetControlPoint(d.ref, world)
	d.view.RefreshControls(d.ref.Patch)
}

// Release ends a drag. Releases while idle are ignored.
func (d *DragController) Release() {
	if !d.dragging {
		return
	}
	d.finish()
}

func (d *DragController) finish() {
	d.dragging = false
	d.view.RefreshSurface()
}

// spheresTouch reports whether two spheres of equal radius r centered at a
// and b intersect.
func spheresTouch(a, b ms3.Vec, r float32) bool {
	return ms3.Norm(ms3.Sub(a, b)) <= 2*r
}
