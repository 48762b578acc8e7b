// Package gldraw uploads gsurf geometry to the GPU and draws it. It owns all
// OpenGL state: vertex arrays, buffers, shader programs and the camera
// matrices fed to them. Everything in this package must run on the thread
// holding the GL context.
package gldraw

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/soypat/gsurf"
)

func panicf(format string, args ...any) {
	panic(fmt.Sprintf("gldraw: "+format, args...))
}

// glPrimitive maps a topology to its GL draw mode.
func glPrimitive(t gsurf.PrimitiveType) uint32 {
	switch t {
	case gsurf.Points:
		return gl.POINTS
	case gsurf.Lines:
		return gl.LINES
	case gsurf.LineStrip:
		return gl.LINE_STRIP
	case gsurf.LineLoop:
		return gl.LINE_LOOP
	case gsurf.Triangles:
		return gl.TRIANGLES
	case gsurf.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case gsurf.TriangleFan:
		return gl.TRIANGLE_FAN
	}
	panicf("no GL primitive for topology %s", t)
	return 0
}
