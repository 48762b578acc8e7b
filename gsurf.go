// Package gsurf implements the geometry core of an interactive surface
// editor: typed vertex attribute channels ready for GPU upload, topology
// aware normal generation, bicubic Bézier patch evaluation and tessellation,
// and a drag controller that maps cursor input to control point edits.
//
// The package is free of OpenGL calls so all of it can be exercised headless.
// GPU upload and drawing live in package gldraw.
package gsurf

import (
	"fmt"
	"strconv"
)

// degenerateEps is the squared-length floor below which a face cross product
// counts as zero area, such as the stitching triangles of strip grids.
const degenerateEps = 1e-12

func panicf(format string, args ...any) {
	panic(fmt.Sprintf("gsurf: "+format, args...))
}

// PrimitiveType describes how a vertex or index stream is assembled into
// drawn primitives.
type PrimitiveType int

const (
	Points PrimitiveType = iota
	Lines
	LineStrip
	LineLoop
	Triangles
	TriangleStrip
	TriangleFan
)

func (p PrimitiveType) String() string {
	switch p {
	case Points:
		return "Points"
	case Lines:
		return "Lines"
	case LineStrip:
		return "LineStrip"
	case LineLoop:
		return "LineLoop"
	case Triangles:
		return "Triangles"
	case TriangleStrip:
		return "TriangleStrip"
	case TriangleFan:
		return "TriangleFan"
	}
	return "PrimitiveType(" + strconv.Itoa(int(p)) + ")"
}
