package gldraw

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gsurf"
)

const camTol = 1e-5

func camApproxEqual(a, b ms3.Vec, tol float32) bool {
	return math32.Abs(a.X-b.X) < tol && math32.Abs(a.Y-b.Y) < tol && math32.Abs(a.Z-b.Z) < tol
}

func TestNewCameraLooksAtOrigin(t *testing.T) {
	c := NewCamera(800, 600, Perspective, 75)
	if !camApproxEqual(c.Position(), ms3.Vec{Z: 1}, camTol) {
		t.Errorf("initial position: want (0,0,1), got %v", c.Position())
	}
	if c.Target() != (ms3.Vec{}) {
		t.Errorf("initial target: got %v", c.Target())
	}
	if c.Dragging() {
		t.Error("fresh camera reports dragging")
	}
}

func TestCameraProjection(t *testing.T) {
	c := NewCamera(800, 600, Perspective, 75)
	want := mgl32.Perspective(mgl32.DegToRad(75), 800.0/600.0, nearPlane, farPlane)
	if c.Projection() != want {
		t.Errorf("perspective projection mismatch")
	}
	c.Resize(400, 400)
	want = mgl32.Perspective(mgl32.DegToRad(75), 1, nearPlane, farPlane)
	if c.Projection() != want {
		t.Errorf("projection not updated on resize")
	}

	o := NewCamera(600, 600, Orthographic, 0)
	wantOrtho := mgl32.Ortho(-0.5, 0.5, 0.5, -0.5, nearPlane, farPlane)
	if o.Projection() != wantOrtho {
		t.Errorf("orthographic projection mismatch")
	}
}

func TestCameraRotateDrag(t *testing.T) {
	c := NewCamera(800, 600, Perspective, 75)
	c.HandleMouseButton(glfw.MouseButton1, glfw.Press, 300, 300)
	if !c.Dragging() {
		t.Fatal("press did not start camera drag")
	}
	c.HandleCursorPos(250, 300)
	wantTheta := 50.0 / 300.0
	if math.Abs(c.theta-wantTheta) > 1e-9 {
		t.Errorf("theta after drag: want %g, got %g", wantTheta, c.theta)
	}
	// Orbit radius is preserved by rotation.
	if r := ms3.Norm(ms3.Sub(c.Position(), c.Target())); math32.Abs(r-1) > camTol {
		t.Errorf("radius after rotate: want 1, got %g", r)
	}
	c.HandleMouseButton(glfw.MouseButton1, glfw.Release, 250, 300)
	if c.Dragging() {
		t.Error("release did not end camera drag")
	}
	// Motion after release must not rotate further.
	theta := c.theta
	c.HandleCursorPos(0, 0)
	if c.theta != theta {
		t.Error("cursor motion while idle rotated the camera")
	}
}

func TestCameraUpFlipsAcrossPole(t *testing.T) {
	c := NewCamera(800, 600, Perspective, 75)
	if c.up != (ms3.Vec{Y: 1}) {
		t.Fatalf("initial up: got %v", c.up)
	}
	// Drag far enough vertically to push phi beyond pi.
	c.HandleMouseButton(glfw.MouseButton1, glfw.Press, 0, 500)
	c.HandleCursorPos(0, 20)
	if c.phi <= math.Pi {
		t.Fatalf("phi did not cross the pole: %g", c.phi)
	}
	if c.up != (ms3.Vec{Y: -1}) {
		t.Errorf("up vector did not flip at the pole: %v", c.up)
	}
}

func TestCameraPanMovesTarget(t *testing.T) {
	c := NewCamera(800, 600, Perspective, 75)
	c.HandleMouseButton(glfw.MouseButton2, glfw.Press, 100, 100)
	c.HandleCursorPos(90, 80)
	// look=(0,0,-1), right=+X, pan up vector=-Y; dif=(10,20).
	want := ms3.Vec{X: 10 * 0.0018, Y: -20 * 0.0018}
	if !camApproxEqual(c.Target(), want, camTol) {
		t.Errorf("target after pan: want %v, got %v", want, c.Target())
	}
	wantPos := ms3.Add(want, ms3.Vec{Z: 1})
	if !camApproxEqual(c.Position(), wantPos, camTol) {
		t.Errorf("position after pan: want %v, got %v", wantPos, c.Position())
	}
}

func TestCameraScrollZoom(t *testing.T) {
	c := NewCamera(800, 600, Perspective, 75)
	c.HandleScroll(1)
	if want := 1 - (0.1 + 0.01); math.Abs(c.radius-want) > 1e-9 {
		t.Errorf("radius after zoom in: want %g, got %g", want, c.radius)
	}
	for i := 0; i < 1000; i++ {
		c.HandleScroll(5)
	}
	if c.radius < c.minRadius {
		t.Errorf("zoom in past minimum radius: %g < %g", c.radius, c.minRadius)
	}
	for i := 0; i < 1000; i++ {
		c.HandleScroll(-5)
	}
	if c.radius > c.maxRadius {
		t.Errorf("zoom out past maximum radius: %g > %g", c.radius, c.maxRadius)
	}
}

func TestCameraCenter(t *testing.T) {
	c := NewCamera(800, 600, Perspective, 75)
	bb := ms3.Box{Min: ms3.Vec{}, Max: ms3.Vec{X: 2, Y: 4, Z: 6}}
	c.Center(bb)
	if got := c.Target(); !camApproxEqual(got, bb.Center(), camTol) {
		t.Errorf("target after center: want %v, got %v", bb.Center(), got)
	}
	wantRadius := 1.5 * float64(bb.Diagonal())
	if r := float64(ms3.Norm(ms3.Sub(c.Position(), c.Target()))); math.Abs(r-wantRadius) > 1e-3 {
		t.Errorf("orbit radius after center: want %g, got %g", wantRadius, r)
	}
}

func TestCameraUnprojectRoundTrip(t *testing.T) {
	c := NewCamera(800, 600, Perspective, 75)
	vp := gsurf.Viewport{W: 800, H: 600}
	world := mgl32.Vec3{0.1, 0.2, 0.3}
	win := mgl32.Project(world, c.View(), c.Projection(), 0, 0, 800, 600)
	got, err := c.Unproject(win.X(), win.Y(), win.Z(), vp)
	if err != nil {
		t.Fatalf("unproject: %v", err)
	}
	want := ms3.Vec{X: world.X(), Y: world.Y(), Z: world.Z()}
	if !camApproxEqual(got, want, 1e-3) {
		t.Errorf("round trip: want %v, got %v", want, got)
	}
}
