//go:build !tinygo && cgo

package gsurfaux

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/gsurf"
)

// fakeDrag stands in for the patch editor: a press hits when hit is set and
// a release ends the drag.
type fakeDrag struct {
	hit      bool
	dragging bool

	presses, moves, releases int
}

func (d *fakeDrag) Dragging() bool { return d.dragging }

func (d *fakeDrag) HandlePress(x, y float64, vp gsurf.Viewport) bool {
	d.presses++
	if !d.dragging && d.hit {
		d.dragging = true
		return true
	}
	return false
}

func (d *fakeDrag) HandleMove(x, y float64, vp gsurf.Viewport) { d.moves++ }

func (d *fakeDrag) HandleRelease() {
	d.releases++
	d.dragging = false
}

// fakeCam counts the events that reach the camera.
type fakeCam struct {
	buttons, cursors, scrolls int
}

func (c *fakeCam) HandleMouseButton(button glfw.MouseButton, action glfw.Action, x, y float64) {
	c.buttons++
}
func (c *fakeCam) HandleCursorPos(x, y float64) { c.cursors++ }
func (c *fakeCam) HandleScroll(yoff float64)    { c.scrolls++ }

var testVp = gsurf.Viewport{W: 800, H: 600}

func TestRouteMouseButtonSuppressedWhileDragging(t *testing.T) {
	editor := &fakeDrag{hit: true}
	camera := &fakeCam{}

	routeMouseButton(editor, camera, glfw.MouseButtonLeft, glfw.Press, 100, 100, testVp)
	if !editor.dragging {
		t.Fatal("left press did not start the drag")
	}

	// Pressing and releasing the secondary button mid-drag must not arm a
	// camera pan: its drag origin would go stale while the cursor callback
	// withholds motion, panning the camera by the whole accumulated delta
	// once the grab ends.
	routeMouseButton(editor, camera, glfw.MouseButtonRight, glfw.Press, 100, 100, testVp)
	routeMouseButton(editor, camera, glfw.MouseButtonRight, glfw.Release, 150, 150, testVp)
	if camera.buttons != 0 {
		t.Errorf("camera received %d button events during a drag, want 0", camera.buttons)
	}

	routeMouseButton(editor, camera, glfw.MouseButtonLeft, glfw.Release, 150, 150, testVp)
	if editor.releases != 1 {
		t.Fatalf("editor releases: want 1, got %d", editor.releases)
	}
	if camera.buttons != 0 {
		t.Errorf("left release of a drag reached the camera: %d events", camera.buttons)
	}

	// With the drag over the camera receives buttons again.
	routeMouseButton(editor, camera, glfw.MouseButtonRight, glfw.Press, 150, 150, testVp)
	if camera.buttons != 1 {
		t.Errorf("camera buttons after the drag: want 1, got %d", camera.buttons)
	}
}

func TestRouteMouseButtonMissFallsThrough(t *testing.T) {
	editor := &fakeDrag{hit: false}
	camera := &fakeCam{}

	routeMouseButton(editor, camera, glfw.MouseButtonLeft, glfw.Press, 100, 100, testVp)
	if editor.presses != 1 {
		t.Fatalf("editor presses: want 1, got %d", editor.presses)
	}
	if camera.buttons != 1 {
		t.Errorf("missed press should rotate the camera: %d events", camera.buttons)
	}
	routeMouseButton(editor, camera, glfw.MouseButtonLeft, glfw.Release, 120, 100, testVp)
	if camera.buttons != 2 {
		t.Errorf("idle release should reach the camera: %d events", camera.buttons)
	}
}

func TestRouteCursorPos(t *testing.T) {
	editor := &fakeDrag{dragging: true}
	camera := &fakeCam{}

	routeCursorPos(editor, camera, 100, 100, testVp)
	if editor.moves != 1 || camera.cursors != 0 {
		t.Errorf("dragging motion: editor %d camera %d, want 1 and 0", editor.moves, camera.cursors)
	}

	editor.dragging = false
	routeCursorPos(editor, camera, 110, 100, testVp)
	if editor.moves != 1 || camera.cursors != 1 {
		t.Errorf("idle motion: editor %d camera %d, want 1 and 1", editor.moves, camera.cursors)
	}
}

func TestRouteScroll(t *testing.T) {
	editor := &fakeDrag{dragging: true}
	camera := &fakeCam{}

	routeScroll(editor, camera, 1)
	if camera.scrolls != 0 {
		t.Errorf("scroll during drag reached the camera: %d events", camera.scrolls)
	}
	editor.dragging = false
	routeScroll(editor, camera, 1)
	if camera.scrolls != 1 {
		t.Errorf("idle scroll: want 1 camera event, got %d", camera.scrolls)
	}
}
