package gsurf

import "github.com/soypat/geometry/ms3"

// Attribute slots shared by the built in geometries. The vertex shaders of
// package gldraw declare their inputs at these locations. Dynamically added
// channels are assigned slots starting at SlotDynamic.
const (
	SlotPosition uint32 = 0
	SlotColor    uint32 = 1
	SlotNormal   uint32 = 2
	SlotDynamic  uint32 = 3
)

// AttributeDescriptor identifies a vertex attribute channel: the shader
// input slot it binds to and a label used for lookups by name.
type AttributeDescriptor struct {
	Slot  uint32
	Label string
}

// AttributeBuffer is the type-erased view of an attribute channel. Channels
// are stored structure-of-arrays: one buffer per attribute, never
// interleaved, so each channel maps to exactly one GPU buffer object.
type AttributeBuffer interface {
	Descriptor() AttributeDescriptor
	// Len returns the number of vertices stored in the channel.
	Len() int
	// Components returns the number of float32 components per vertex.
	Components() int32
	// Floats returns the channel contents as a flat float32 sequence.
	Floats() []float32
}

type attrElem interface {
	float32 | ms3.Vec
}

// Attribute is a typed attribute channel holding one value per vertex.
type Attribute[T attrElem] struct {
	desc AttributeDescriptor
	data []T
}

// NewAttribute returns an empty channel bound to slot with given label.
func NewAttribute[T attrElem](slot uint32, label string) *Attribute[T] {
	return &Attribute[T]{desc: AttributeDescriptor{Slot: slot, Label: label}}
}

func (a *Attribute[T]) Descriptor() AttributeDescriptor { return a.desc }

func (a *Attribute[T]) Len() int { return len(a.data) }

func (a *Attribute[T]) Components() int32 {
	var z T
	if _, ok := any(z).(ms3.Vec); ok {
		return 3
	}
	return 1
}

// Append adds values to the end of the channel.
func (a *Attribute[T]) Append(values ...T) { a.data = append(a.data, values...) }

// Set overwrites the value of vertex i.
func (a *Attribute[T]) Set(i int, v T) { a.data[i] = v }

// At returns the value of vertex i.
func (a *Attribute[T]) At(i int) T { return a.data[i] }

// Data exposes the backing slice for bulk reads and edits.
func (a *Attribute[T]) Data() []T { return a.data }

// SetData replaces the channel contents wholesale.
func (a *Attribute[T]) SetData(data []T) { a.data = data }

func (a *Attribute[T]) Floats() []float32 {
	switch data := any(a.data).(type) {
	case []float32:
		return data
	case []ms3.Vec:
		out := make([]float32, 0, 3*len(data))
		for _, v := range data {
			out = append(out, v.X, v.Y, v.Z)
		}
		return out
	}
	panicf("attribute %q: unsupported element type", a.desc.Label)
	return nil
}
