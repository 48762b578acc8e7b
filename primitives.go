package gsurf

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// PlaneGeometry is a tessellated unit plane spanning [0,1]x[0,1] in the XY
// plane at z=0, drawn as a single triangle strip. Rows are stitched together
// with degenerate triangles so the whole grid is one strip.
//
// Vertices are stored row-major: the vertex at grid position (x, y) has
// index y*(cols+1)+x.
type PlaneGeometry struct {
	BasicGeometry
	indices    []uint32
	rows, cols int
}

// NewPlaneGeometry returns a plane subdivided into rows*cols cells. Normals
// start out as +Z, the unit normal of the undisplaced grid.
func NewPlaneGeometry(rows, cols int, color ms3.Vec) *PlaneGeometry {
	if rows < 1 || cols < 1 {
		panicf("plane needs at least one row and one column, got %dx%d", rows, cols)
	}
	nrows, ncols := rows+1, cols+1 // vertex grid dimensions

	positions := make([]ms3.Vec, nrows*ncols)
	colors := make([]ms3.Vec, len(positions))
	normals := make([]ms3.Vec, len(positions))
	for y := 0; y < nrows; y++ {
		base := y * ncols
		for x := 0; x < ncols; x++ {
			positions[base+x] = ms3.Vec{
				X: float32(x) / float32(ncols-1),
				Y: float32(y) / float32(nrows-1),
			}
			colors[base+x] = color
			normals[base+x] = ms3.Vec{Z: 1}
		}
	}

	// One strip pass per cell row plus two degenerate indices between rows.
	indices := make([]uint32, 0, (cols*2+2)*rows+(rows-1)*2)
	for y := 0; y < rows; y++ {
		base := uint32(y * ncols)
		for x := 0; x < ncols; x++ {
			indices = append(indices, base+uint32(x), base+uint32(ncols+x))
		}
		if y < rows-1 {
			next := uint32((y + 1) * ncols)
			indices = append(indices, next+uint32(ncols-1), next)
		}
	}

	g := &PlaneGeometry{
		BasicGeometry: *NewBasicGeometry(),
		indices:       indices,
		rows:          rows,
		cols:          cols,
	}
	g.Positions.SetData(positions)
	g.Colors.SetData(colors)
	g.Normals.SetData(normals)
	return g
}

func (g *PlaneGeometry) Indices() []uint32 { return g.indices }

// Rows returns the cell row count the plane was built with.
func (g *PlaneGeometry) Rows() int { return g.rows }

// Cols returns the cell column count the plane was built with.
func (g *PlaneGeometry) Cols() int { return g.cols }

// VertexIndex returns the row-major vertex index of grid position (x, y).
func (g *PlaneGeometry) VertexIndex(x, y int) int { return y*(g.cols+1) + x }

// Displace replaces every vertex position with f(u, v), where u and v run
// from 0 to 1 across columns and rows, and regenerates the normals.
func (g *PlaneGeometry) Displace(f func(u, v float32) ms3.Vec) {
	positions := g.Positions.Data()
	for y := 0; y <= g.rows; y++ {
		v := float32(y) / float32(g.rows)
		base := y * (g.cols + 1)
		for x := 0; x <= g.cols; x++ {
			u := float32(x) / float32(g.cols)
			positions[base+x] = f(u, v)
		}
	}
	g.RegenerateNormals()
}

// RegenerateNormals recomputes the normal channel from the current vertex
// positions and the strip index stream.
func (g *PlaneGeometry) RegenerateNormals() {
	g.Normals.SetData(GenerateIndexedNormals(TriangleStrip, g.Positions.Data(), g.indices))
}

// SphereGeometry is a latitude/longitude sphere drawn as an indexed triangle
// list, with poles on the Z axis. The seam column is duplicated so each ring
// holds slices+1 vertices.
type SphereGeometry struct {
	BasicGeometry
	indices []uint32
}

// NewSphereGeometry builds a sphere of given radius centered on the origin:
// slices subdivisions around the equator, tiles from pole to pole.
func NewSphereGeometry(radius float32, slices, tiles int, color ms3.Vec) *SphereGeometry {
	if slices < 3 || tiles < 2 {
		panicf("sphere needs at least 3 slices and 2 tiles, got %d and %d", slices, tiles)
	}
	g := &SphereGeometry{BasicGeometry: *NewBasicGeometry()}

	dphi := math32.Pi / float32(tiles)
	dtheta := 2 * math32.Pi / float32(slices)
	for i := 0; i <= tiles; i++ {
		sphi, cphi := math32.Sincos(dphi * float32(i))
		for j := 0; j <= slices; j++ {
			stheta, ctheta := math32.Sincos(dtheta * float32(j%slices))
			normal := ms3.Vec{X: sphi * ctheta, Y: sphi * stheta, Z: cphi}
			g.AddVertex(Vertex{
				Position: ms3.Scale(radius, normal),
				Color:    color,
				Normal:   normal,
			})
		}
	}

	stride := uint32(slices + 1)
	g.indices = make([]uint32, 0, tiles*slices*6)
	for i := 0; i < tiles; i++ {
		ringA := uint32(i) * stride
		ringB := ringA + stride
		for j := uint32(0); j < uint32(slices); j++ {
			g.indices = append(g.indices,
				ringA+j, ringB+j, ringA+j+1,
				ringA+j+1, ringB+j, ringB+j+1,
			)
		}
	}
	return g
}

func (g *SphereGeometry) Indices() []uint32 { return g.indices }

// LineGeometry holds indexed line segments with a per-vertex width channel
// in slot 2 under the label "width". Materials that do not consume the width
// ignore the channel.
type LineGeometry struct {
	Positions *Attribute[ms3.Vec]
	Colors    *Attribute[ms3.Vec]
	Widths    *Attribute[float32]
	indices   []uint32
}

// NewLineGeometry returns an empty line geometry.
func NewLineGeometry() *LineGeometry {
	return &LineGeometry{
		Positions: NewAttribute[ms3.Vec](SlotPosition, "position"),
		Colors:    NewAttribute[ms3.Vec](SlotColor, "color"),
		Widths:    NewAttribute[float32](SlotNormal, "width"),
	}
}

// AddSegment appends one line segment with a uniform color and width.
func (g *LineGeometry) AddSegment(begin, end, color ms3.Vec, width float32) {
	g.Positions.Append(begin, end)
	g.Colors.Append(color, color)
	g.Widths.Append(width, width)

	first := uint32(g.Positions.Len() - 2)
	g.indices = append(g.indices, first, first+1)
}

func (g *LineGeometry) Attributes() []AttributeBuffer {
	return []AttributeBuffer{g.Positions, g.Colors, g.Widths}
}

func (g *LineGeometry) Indices() []uint32 { return g.indices }

// NewBoxEdgeGeometry returns the twelve edges of an axis aligned box as line
// segments, for bounding box visualization.
func NewBoxEdgeGeometry(box ms3.Box, color ms3.Vec) *LineGeometry {
	lo, hi := box.Min, box.Max
	corners := [8]ms3.Vec{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0}, // bottom rim
		{4, 5}, {5, 6}, {6, 7}, {7, 4}, // top rim
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // verticals
	}
	g := NewLineGeometry()
	for _, e := range edges {
		g.AddSegment(corners[e[0]], corners[e[1]], color, 1)
	}
	return g
}
