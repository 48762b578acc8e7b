package gldraw

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/soypat/gsurf"
)

// DrawOptions tune how a mesh is rasterized.
type DrawOptions struct {
	// Wireframe draws triangle topologies as outlines.
	Wireframe bool
	// PointSize is the rasterized size of point topologies. Zero keeps the
	// current GL point size.
	PointSize float32
	// LineWidth is the rasterized width of line topologies. Zero keeps the
	// current GL line width.
	LineWidth float32
}

// Mesh is geometry resident on the GPU: one vertex buffer per attribute
// channel, bound to the channel's slot, plus an index buffer for indexed
// geometry. The buffers are written once at creation; edits to the source
// geometry require a new mesh.
type Mesh struct {
	// Material is enabled before every draw of this mesh.
	Material Material
	// Options apply to every draw of this mesh.
	Options DrawOptions

	vao      uint32
	vbos     []uint32
	ebo      uint32
	count    int32
	mode     uint32
	topology gsurf.PrimitiveType
	indexed  bool
}

// NewMesh uploads g and returns a mesh drawing it with the given topology
// and material. Indexed geometries are validated against the vertex count
// before upload.
func NewMesh(topology gsurf.PrimitiveType, g gsurf.Geometry, mat Material) (*Mesh, error) {
	count := gsurf.VertexCount(g)
	if count == 0 {
		return nil, errors.New("mesh of empty geometry")
	}
	m := &Mesh{
		Material: mat,
		topology: topology,
		mode:     glPrimitive(topology),
		count:    int32(count),
	}

	var p runtime.Pinner
	p.Pin(&m.vao)
	gl.GenVertexArrays(1, &m.vao)
	p.Unpin()
	gl.BindVertexArray(m.vao)

	for _, attr := range g.Attributes() {
		m.vbos = append(m.vbos, loadAttribute(attr, gl.STATIC_DRAW))
	}
	if ig, ok := g.(gsurf.IndexedGeometry); ok {
		indices := ig.Indices()
		gsurf.ValidateIndices(indices, count)
		m.ebo = loadIndices(indices, gl.STATIC_DRAW)
		m.count = int32(len(indices))
		m.indexed = true
	}
	gl.BindVertexArray(0)

	if err := glgl.Err(); err != nil {
		m.Delete()
		return nil, fmt.Errorf("uploading mesh: %w", err)
	}
	return m, nil
}

// NewIndexedMesh is NewMesh for geometry that must draw through its index
// stream. It fails when g carries no indices rather than silently issuing
// an empty draw.
func NewIndexedMesh(topology gsurf.PrimitiveType, g gsurf.IndexedGeometry, mat Material) (*Mesh, error) {
	if len(g.Indices()) == 0 {
		return nil, errors.New("indexed mesh of geometry without indices")
	}
	return NewMesh(topology, g, mat)
}

// Render enables the mesh's material with params and issues the draw call.
func (m *Mesh) Render(params *RenderParameters) {
	if m.Material != nil {
		m.Material.Enable(params)
	}
	if m.Options.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	switch m.topology {
	case gsurf.Points:
		if m.Options.PointSize > 0 {
			gl.PointSize(m.Options.PointSize)
		}
	case gsurf.Lines, gsurf.LineStrip, gsurf.LineLoop:
		if m.Options.LineWidth > 0 {
			gl.LineWidth(m.Options.LineWidth)
		}
	}

	gl.BindVertexArray(m.vao)
	if m.indexed {
		gl.DrawElements(m.mode, m.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(m.mode, 0, m.count)
	}
	gl.BindVertexArray(0)
}

// Delete releases the GPU buffers of the mesh. The mesh must not be rendered
// afterwards.
func (m *Mesh) Delete() {
	var p runtime.Pinner
	p.Pin(&m.vao)
	p.Pin(&m.ebo)
	gl.DeleteVertexArrays(1, &m.vao)
	for i := range m.vbos {
		p.Pin(&m.vbos[i])
		gl.DeleteBuffers(1, &m.vbos[i])
	}
	if m.indexed {
		gl.DeleteBuffers(1, &m.ebo)
	}
	p.Unpin()
	m.vbos = nil
	m.vao = 0
	m.ebo = 0
}

// loadAttribute uploads one attribute channel into a new vertex buffer and
// points the channel's slot at it.
func loadAttribute(a gsurf.AttributeBuffer, usage uint32) (vbo uint32) {
	var p runtime.Pinner
	p.Pin(&vbo)
	gl.GenBuffers(1, &vbo)
	p.Unpin()
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	data := a.Floats()
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(data), gl.Ptr(data), usage)
	desc := a.Descriptor()
	gl.EnableVertexAttribArray(desc.Slot)
	gl.VertexAttribPointer(desc.Slot, a.Components(), gl.FLOAT, false, 0, gl.PtrOffset(0))
	return vbo
}

func loadIndices(indices []uint32, usage uint32) (ebo uint32) {
	var p runtime.Pinner
	p.Pin(&ebo)
	gl.GenBuffers(1, &ebo)
	p.Unpin()
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(indices), gl.Ptr(indices), usage)
	return ebo
}
