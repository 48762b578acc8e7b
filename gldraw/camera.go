package gldraw

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gsurf"
)

// ProjectionType selects how the camera projects the scene onto the screen.
type ProjectionType int

const (
	// Perspective projection with a configurable vertical field of view.
	Perspective ProjectionType = iota
	// Orthographic projection spanning one world unit vertically.
	Orthographic
)

const (
	nearPlane = 0.1
	farPlane  = 1000.0
)

type moveMode int

const (
	moveNone moveMode = iota
	moveRotate
	movePan
)

// Camera simulates a trackball orbiting a target point. Dragging with the
// primary button rotates the ball, dragging with the secondary button pans
// the target, scrolling zooms. The camera keeps its orientation as two
// angles so it can roll over the poles without gimbal flips: crossing a pole
// flips the up vector instead.
type Camera struct {
	projType ProjectionType
	fov      float32
	width    int
	height   int

	projection mgl32.Mat4
	view       mgl32.Mat4

	position ms3.Vec
	target   ms3.Vec
	up       ms3.Vec

	theta, phi float64
	radius     float64
	minRadius  float64
	maxRadius  float64

	dragX, dragY float64
	dragging     bool
	mode         moveMode
}

// NewCamera returns a camera of the given projection looking at the origin
// from distance 1. fovDegrees is the vertical field of view and only applies
// to perspective projection.
func NewCamera(width, height int, proj ProjectionType, fovDegrees float32) *Camera {
	c := &Camera{
		projType:  proj,
		fov:       fovDegrees,
		width:     width,
		height:    height,
		up:        ms3.Vec{Y: 1},
		phi:       math.Pi / 2,
		radius:    1,
		minRadius: 1e-5,
		maxRadius: farPlane,
	}
	c.updateState()
	c.updateProj()
	c.updateView()
	return c
}

// RenderParams extracts the camera matrices for one rendering pass.
func (c *Camera) RenderParams() *RenderParameters {
	return NewRenderParameters(c.view, c.projection)
}

// Position returns the camera position in world space.
func (c *Camera) Position() ms3.Vec { return c.position }

// Target returns the point the camera orbits.
func (c *Camera) Target() ms3.Vec { return c.target }

// View returns the current view matrix.
func (c *Camera) View() mgl32.Mat4 { return c.view }

// Projection returns the current projection matrix.
func (c *Camera) Projection() mgl32.Mat4 { return c.projection }

// Dragging reports whether the user is moving the camera.
func (c *Camera) Dragging() bool { return c.dragging }

// Resize notifies the camera of new screen dimensions.
func (c *Camera) Resize(width, height int) {
	c.width = width
	c.height = height
	c.updateProj()
}

// Center aims the camera at the center of bb and backs it off far enough to
// take in the whole box. Zoom limits are scaled to the box size.
func (c *Camera) Center(bb ms3.Box) {
	diag := float64(bb.Diagonal())
	if diag <= 0 {
		diag = 1
	}
	c.target = bb.Center()
	c.radius = 1.5 * diag
	c.minRadius = diag * 1e-5
	c.maxRadius = diag * 10
	c.updateState()
	c.updateView()
}

// Unproject maps window coordinates and a depth buffer sample back to world
// space. Window coordinates follow the GL convention with the origin at the
// bottom left.
func (c *Camera) Unproject(winX, winY, depth float32, vp gsurf.Viewport) (ms3.Vec, error) {
	obj, err := mgl32.UnProject(
		mgl32.Vec3{winX, winY, depth},
		c.view, c.projection,
		int(vp.X), int(vp.Y), int(vp.W), int(vp.H),
	)
	if err != nil {
		return ms3.Vec{}, err
	}
	return ms3.Vec{X: obj.X(), Y: obj.Y(), Z: obj.Z()}, nil
}

// HandleMouseButton processes a button event at cursor position (x, y).
// The primary button starts a rotate drag, the secondary a pan drag, any
// release ends the drag.
func (c *Camera) HandleMouseButton(button glfw.MouseButton, action glfw.Action, x, y float64) {
	switch {
	case button == glfw.MouseButton1 && action == glfw.Press:
		c.dragStart(x, y)
		c.mode = moveRotate
	case button == glfw.MouseButton2 && action == glfw.Press:
		c.dragStart(x, y)
		c.mode = movePan
	case action == glfw.Release:
		c.dragEnd()
	}
}

// HandleCursorPos processes cursor motion, applying the active drag mode.
func (c *Camera) HandleCursorPos(x, y float64) {
	if !c.dragging {
		return
	}
	switch c.mode {
	case moveRotate:
		c.rotate(x, y)
	case movePan:
		c.pan(x, y)
	}
	c.dragUpdate(x, y)
}

// HandleScroll zooms the trackball radius, keeping it inside the configured
// limits.
func (c *Camera) HandleScroll(yoff float64) {
	c.radius -= yoff * (c.radius*0.1 + 0.01)
	if c.radius < c.minRadius {
		c.radius = c.minRadius
	} else if c.radius > c.maxRadius {
		c.radius = c.maxRadius
	}
	c.updateState()
	c.updateView()
}

func (c *Camera) dragStart(x, y float64) {
	c.dragging = true
	c.dragUpdate(x, y)
}

func (c *Camera) dragUpdate(x, y float64) {
	if c.dragging {
		c.dragX, c.dragY = x, y
	}
}

func (c *Camera) dragEnd() {
	if c.dragging {
		c.dragX, c.dragY = 0, 0
		c.dragging = false
		c.mode = moveNone
	}
}

// toCartesian converts the rotation angles to the camera offset from the
// target.
func (c *Camera) toCartesian() ms3.Vec {
	sphi, cphi := math.Sincos(c.phi)
	stheta, ctheta := math.Sincos(c.theta)
	return ms3.Vec{
		X: float32(c.radius * sphi * stheta),
		Y: float32(c.radius * cphi),
		Z: float32(c.radius * sphi * ctheta),
	}
}

func (c *Camera) updateState() {
	c.position = ms3.Add(c.toCartesian(), c.target)
}

func (c *Camera) updateView() {
	c.view = mgl32.LookAtV(vec3(c.position), vec3(c.target), vec3(ms3.Unit(c.up)))
}

func (c *Camera) updateProj() {
	aspect := float32(c.width) / float32(c.height)
	switch c.projType {
	case Orthographic:
		c.projection = mgl32.Ortho(-aspect/2, aspect/2, 0.5, -0.5, nearPlane, farPlane)
	case Perspective:
		c.projection = mgl32.Perspective(mgl32.DegToRad(c.fov), aspect, nearPlane, farPlane)
	}
}

func (c *Camera) pan(x, y float64) {
	difX := float32(c.dragX - x)
	difY := float32(c.dragY - y)

	look := ms3.Unit(ms3.Sub(c.target, c.position))
	right := ms3.Cross(look, c.up)
	up := ms3.Cross(look, right)

	c.target = ms3.Add(c.target, ms3.Add(ms3.Scale(difX*0.0018, right), ms3.Scale(difY*0.0018, up)))
	c.updateState()
	c.updateView()
}

func (c *Camera) rotate(x, y float64) {
	deltaTheta := (c.dragX - x) / 300
	deltaPhi := (c.dragY - y) / 300

	if c.up.Y > 0 {
		c.theta += deltaTheta
	} else {
		c.theta -= deltaTheta
	}
	c.phi += deltaPhi

	// Keep phi in the interval -2pi to 2pi.
	if c.phi > 2*math.Pi {
		c.phi -= 2 * math.Pi
	} else if c.phi < -2*math.Pi {
		c.phi += 2 * math.Pi
	}

	// The up vector flips whenever the camera rolls over a pole.
	if (c.phi > 0 && c.phi < math.Pi) || (c.phi < -math.Pi && c.phi > -2*math.Pi) {
		c.up = ms3.Vec{Y: 1}
	} else {
		c.up = ms3.Vec{Y: -1}
	}

	c.updateState()
	c.updateView()
}

func vec3(v ms3.Vec) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}
