//go:build !tinygo && cgo

package gsurfaux

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gsurf"
	"github.com/soypat/gsurf/gldraw"
	"github.com/soypat/gsurf/scene"
)

// RunEditor opens a window and runs the interactive patch editor until the
// window closes, cfg.Context is done, or a rebuild fails. Must be called
// from the main goroutine with the OS thread locked.
//
// Left-clicking a control point, curve or patch surface starts a drag that
// moves the grabbed control point in a plane parallel to the screen. Clicks
// that miss the model fall through to the trackball camera. Escape closes
// the window.
func RunEditor(cfg EditorConfig) error {
	err := cfg.fillDefaults()
	if err != nil {
		return err
	}
	window, terminate, err := startGLFW(cfg.Width, cfg.Height, cfg.Title)
	if err != nil {
		return err
	}
	defer terminate()
	logger().Debug("window created", "width", cfg.Width, "height", cfg.Height)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.1, 1.0)

	shaded, err := gldraw.NewShadedMaterial()
	if err != nil {
		return fmt.Errorf("compiling shaded material: %w", err)
	}
	simple, err := gldraw.NewSimpleMaterial()
	if err != nil {
		return fmt.Errorf("compiling simple material: %w", err)
	}
	camera := gldraw.NewCamera(cfg.Width, cfg.Height, gldraw.Perspective, cfg.FOV)
	editor, err := scene.NewPatchEditor(scene.PatchEditorConfig{
		Model:   cfg.Model,
		Camera:  camera,
		Depth:   gldraw.FrameDepth{},
		Surface: shaded,
		Flat:    simple,
	})
	if err != nil {
		return fmt.Errorf("building editor meshes: %w", err)
	}
	defer editor.Delete()

	var view *scene.SystemView
	if cfg.System != nil {
		view = scene.NewSystemView(scene.SystemViewConfig{
			Palette:     cfg.Palette,
			Material:    simple,
			Wireframe:   cfg.Wireframe,
			ShowNormals: cfg.ShowNormals,
		})
		defer view.Delete()
		err = view.Refresh(cfg.System)
		if err != nil {
			return fmt.Errorf("building system meshes: %w", err)
		}
	}
	bounds := editor.Bounds()
	if view != nil {
		if vb := view.Bounds(); vb != (ms3.Box{}) {
			bounds = boxUnion(bounds, vb)
		}
	}
	camera.Center(bounds)
	gizmo, err := scene.NewOriginGizmo(0.25*bounds.Diagonal(), 2, simple, nil)
	if err != nil {
		return fmt.Errorf("building origin gizmo: %w", err)
	}
	defer gizmo.Delete()
	var bbox *scene.BoundingBox
	if cfg.ShowBounds {
		outline, err := gldraw.NewUniformColorMaterial(cfg.BoundsColor)
		if err != nil {
			return fmt.Errorf("compiling bounds material: %w", err)
		}
		bbox, err = scene.NewBoundingBox(bounds, outline, nil)
		if err != nil {
			return fmt.Errorf("building bounds outline: %w", err)
		}
		defer bbox.Delete()
	}

	vp := gsurf.Viewport{W: int32(cfg.Width), H: int32(cfg.Height)}
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
	window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		vp = gsurf.Viewport{W: int32(width), H: int32(height)}
		camera.Resize(width, height)
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		x, y := w.GetCursorPos()
		routeMouseButton(editor, camera, button, action, x, y, vp)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		routeCursorPos(editor, camera, x, y, vp)
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		routeScroll(editor, camera, yoff)
	})

	ctx := cfg.Context
	for !window.ShouldClose() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		params := camera.RenderParams()
		gizmo.Render(params)
		if view != nil {
			view.Render(params)
		}
		editor.Render(params)
		if bbox != nil {
			bbox.Render(params)
		}
		window.SwapBuffers()
		glfw.PollEvents()
		if err := editor.Err(); err != nil {
			logger().Error("mesh rebuild failed", "err", err)
			return fmt.Errorf("rebuilding editor meshes: %w", err)
		}
	}
	logger().Debug("editor closed")
	return nil
}

// dragInput is the editor side of mouse routing.
type dragInput interface {
	Dragging() bool
	HandlePress(x, y float64, vp gsurf.Viewport) bool
	HandleMove(x, y float64, vp gsurf.Viewport)
	HandleRelease()
}

// cameraInput is the camera side of mouse routing.
type cameraInput interface {
	HandleMouseButton(button glfw.MouseButton, action glfw.Action, x, y float64)
	HandleCursorPos(x, y float64)
	HandleScroll(yoff float64)
}

var (
	_ dragInput   = (*scene.PatchEditor)(nil)
	_ cameraInput = (*gldraw.Camera)(nil)
)

// routeMouseButton forwards a button event to the editor first. The camera
// sees it only when no drag consumed it and none is active: a button pressed
// mid-drag must not arm a camera drag whose origin goes stale while the
// cursor callback withholds motion from the camera.
func routeMouseButton(editor dragInput, camera cameraInput, button glfw.MouseButton, action glfw.Action, x, y float64, vp gsurf.Viewport) {
	if button == glfw.MouseButtonLeft {
		switch action {
		case glfw.Press:
			if editor.HandlePress(x, y, vp) {
				return // Grabbed a control point, keep it from the camera.
			}
		case glfw.Release:
			if editor.Dragging() {
				editor.HandleRelease()
				return
			}
		}
	}
	if editor.Dragging() {
		return
	}
	camera.HandleMouseButton(button, action, x, y)
}

// routeCursorPos sends motion to whichever of the editor and camera is
// dragging, the editor taking precedence.
func routeCursorPos(editor dragInput, camera cameraInput, x, y float64, vp gsurf.Viewport) {
	if editor.Dragging() {
		editor.HandleMove(x, y, vp)
		return
	}
	camera.HandleCursorPos(x, y)
}

// routeScroll zooms the camera unless a control point is grabbed.
func routeScroll(editor dragInput, camera cameraInput, yoff float64) {
	if editor.Dragging() {
		return
	}
	camera.HandleScroll(yoff)
}

func startGLFW(width, height int, title string) (window *glfw.Window, term func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("initializing GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err = glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("creating GLFW window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	return window, glfw.Terminate, nil
}
