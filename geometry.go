package gsurf

import "github.com/soypat/geometry/ms3"

// Vertex bundles the values of the three canonical channels for one vertex.
type Vertex struct {
	Position ms3.Vec
	Color    ms3.Vec
	Normal   ms3.Vec
}

// Geometry is a collection of equally sized attribute channels describing
// vertex data on the CPU. Geometries are cheap to build and discard; the GPU
// representation is created from them once and never written back.
type Geometry interface {
	Attributes() []AttributeBuffer
}

// IndexedGeometry is geometry drawn through an index stream.
type IndexedGeometry interface {
	Geometry
	Indices() []uint32
}

// VertexCount returns the common vertex count of all attribute channels of g.
// Channels of differing length are a programmer error and panic.
func VertexCount(g Geometry) int {
	attrs := g.Attributes()
	if len(attrs) == 0 {
		panicf("geometry has no attribute channels")
	}
	n := attrs[0].Len()
	for _, a := range attrs[1:] {
		if a.Len() != n {
			panicf("inconsistent attribute buffer sizes: %q has %d vertices, %q has %d",
				attrs[0].Descriptor().Label, n, a.Descriptor().Label, a.Len())
		}
	}
	return n
}

// ValidateIndices panics if any index references a vertex beyond count.
func ValidateIndices(indices []uint32, count int) {
	for _, idx := range indices {
		if int(idx) >= count {
			panicf("index %d out of range for %d vertices", idx, count)
		}
	}
}

// BasicGeometry carries the three canonical channels: position, color and
// normal. Geometries built from unlit primitives such as line segments keep
// zero normals.
type BasicGeometry struct {
	Positions *Attribute[ms3.Vec]
	Colors    *Attribute[ms3.Vec]
	Normals   *Attribute[ms3.Vec]
}

// NewBasicGeometry returns an empty geometry with the canonical channels.
func NewBasicGeometry() *BasicGeometry {
	return &BasicGeometry{
		Positions: NewAttribute[ms3.Vec](SlotPosition, "position"),
		Colors:    NewAttribute[ms3.Vec](SlotColor, "color"),
		Normals:   NewAttribute[ms3.Vec](SlotNormal, "normal"),
	}
}

// BasicGeometryFromVertices copies vertex data into a new geometry.
func BasicGeometryFromVertices(vertices []Vertex) *BasicGeometry {
	g := NewBasicGeometry()
	for _, v := range vertices {
		g.Positions.Append(v.Position)
		g.Colors.Append(v.Color)
		g.Normals.Append(v.Normal)
	}
	return g
}

// BasicGeometryWithNormals copies positions and colors and generates the
// normal channel from the positions interpreted as topology.
func BasicGeometryWithNormals(topology PrimitiveType, vertices []Vertex) *BasicGeometry {
	g := NewBasicGeometry()
	for _, v := range vertices {
		g.Positions.Append(v.Position)
		g.Colors.Append(v.Color)
	}
	g.Normals.SetData(GenerateNormals(topology, g.Positions.Data()))
	return g
}

// AddVertex appends one vertex to all three channels.
func (g *BasicGeometry) AddVertex(v Vertex) {
	g.Positions.Append(v.Position)
	g.Colors.Append(v.Color)
	g.Normals.Append(v.Normal)
}

func (g *BasicGeometry) Attributes() []AttributeBuffer {
	return []AttributeBuffer{g.Positions, g.Colors, g.Normals}
}

// ExtendableGeometry is a BasicGeometry that accepts additional channels for
// materials needing per-vertex data beyond the canonical three. Added
// channels receive consecutive slots starting at SlotDynamic.
type ExtendableGeometry struct {
	BasicGeometry
	dynamic []AttributeBuffer
}

// NewExtendableGeometry returns an empty geometry with the canonical
// channels and no dynamic ones.
func NewExtendableGeometry() *ExtendableGeometry {
	return &ExtendableGeometry{BasicGeometry: *NewBasicGeometry()}
}

// NextSlot returns the slot the next added channel will occupy.
func (g *ExtendableGeometry) NextSlot() uint32 {
	return SlotDynamic + uint32(len(g.dynamic))
}

// AddFloat32Attribute adds a scalar channel with the given label.
func (g *ExtendableGeometry) AddFloat32Attribute(label string) *Attribute[float32] {
	a := NewAttribute[float32](g.NextSlot(), label)
	g.dynamic = append(g.dynamic, a)
	return a
}

// AddVec3Attribute adds a vector channel with the given label.
func (g *ExtendableGeometry) AddVec3Attribute(label string) *Attribute[ms3.Vec] {
	a := NewAttribute[ms3.Vec](g.NextSlot(), label)
	g.dynamic = append(g.dynamic, a)
	return a
}

func (g *ExtendableGeometry) Attributes() []AttributeBuffer {
	attrs := g.BasicGeometry.Attributes()
	return append(attrs, g.dynamic...)
}

// AttributeByLabel returns the dynamic channel with the given label and
// element type. A missing label or an element type mismatch is a programmer
// error and panics.
func AttributeByLabel[T attrElem](g *ExtendableGeometry, label string) *Attribute[T] {
	for _, a := range g.dynamic {
		if a.Descriptor().Label != label {
			continue
		}
		typed, ok := a.(*Attribute[T])
		if !ok {
			panicf("attribute %q holds a different element type", label)
		}
		return typed
	}
	panicf("attribute %q not found", label)
	return nil
}
