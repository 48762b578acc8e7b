package gldraw

import (
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/soypat/gsurf"
)

// FrameDepth samples the depth buffer of the currently bound framebuffer.
// The scene must have been drawn before sampling.
type FrameDepth struct{}

// ReadDepth returns the depth buffer value under the cursor position (x, y).
// Cursor coordinates have their origin at the top left; the framebuffer row
// order is flipped internally.
func (FrameDepth) ReadDepth(x, y float64, vp gsurf.Viewport) float32 {
	var depth float32
	gl.ReadPixels(int32(x), vp.H-1-int32(y), 1, 1, gl.DEPTH_COMPONENT, gl.FLOAT, unsafe.Pointer(&depth))
	return depth
}
