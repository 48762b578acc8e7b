package gsurf

import "github.com/soypat/geometry/ms3"

// CurveParams are the four control points of a cubic Bézier curve.
type CurveParams [4]ms3.Vec

// Evaluate returns the curve position at t in [0,1], computed in Bernstein
// form:
//
//	B(t) = (1-t)³P0 + 3t(1-t)²P1 + 3t²(1-t)P2 + t³P3
//
// The endpoints are reproduced exactly: B(0) = P0 and B(1) = P3.
func (c CurveParams) Evaluate(t float32) ms3.Vec {
	s := 1 - t
	b0 := s * s * s
	b1 := 3 * t * s * s
	b2 := 3 * t * t * s
	b3 := t * t * t
	p := ms3.Scale(b0, c[0])
	p = ms3.Add(p, ms3.Scale(b1, c[1]))
	p = ms3.Add(p, ms3.Scale(b2, c[2]))
	return ms3.Add(p, ms3.Scale(b3, c[3]))
}

// PatchParams are the four curves of a bicubic Bézier patch. Curve i holds
// the i-th control point of every parameter row, so evaluating all four
// curves at u yields the control points of the cross curve in v.
type PatchParams [4]CurveParams

// PointsAt evaluates the four patch curves at u. The result is itself a
// Bézier curve running across the patch.
func (p PatchParams) PointsAt(u float32) CurveParams {
	return CurveParams{
		p[0].Evaluate(u),
		p[1].Evaluate(u),
		p[2].Evaluate(u),
		p[3].Evaluate(u),
	}
}

// Evaluate returns the patch surface position at (u, v) in [0,1]².
func (p PatchParams) Evaluate(u, v float32) ms3.Vec {
	return p.PointsAt(u).Evaluate(v)
}

// ModelParams describe an editable surface model: its patches and an
// optional one-character symbol associating the model with the alphabet of
// a rewriting system. Symbol zero means no association.
type ModelParams struct {
	Symbol  rune
	Patches []PatchParams
}

// ControlPoint returns the control point identified by ref.
func (m *ModelParams) ControlPoint(ref ControlPointRef) ms3.Vec {
	return m.Patches[ref.Patch][ref.Curve][ref.Point]
}

// SetControlPoint overwrites the control point identified by ref.
func (m *ModelParams) SetControlPoint(ref ControlPointRef, p ms3.Vec) {
	m.Patches[ref.Patch][ref.Curve][ref.Point] = p
}

// Bounds returns the axis aligned box spanned by all control points of the
// model. The convex hull property of Bézier surfaces guarantees the surface
// itself lies within it.
func (m *ModelParams) Bounds() ms3.Box {
	var bb ms3.Box
	first := true
	for _, patch := range m.Patches {
		for _, curve := range patch {
			for _, pt := range curve {
				if first {
					bb = ms3.Box{Min: pt, Max: pt}
					first = false
					continue
				}
				bb.Min = ms3.MinElem(bb.Min, pt)
				bb.Max = ms3.MaxElem(bb.Max, pt)
			}
		}
	}
	return bb
}

// BezierGeometry is a Bézier patch tessellated onto a plane grid. It keeps
// the plane's triangle strip index stream and row-major vertex layout, so
// the vertex at grid position (x, y) samples the surface at
// u = x/cols, v = y/rows.
type BezierGeometry struct {
	PlaneGeometry
}

// NewBezierGeometry tessellates patch into a (rows+1)x(cols+1) vertex grid.
// The four patch curves are evaluated once per column; each column's cross
// curve is then evaluated down the rows. Normals are regenerated after
// displacement from the strip index stream.
func NewBezierGeometry(patch PatchParams, rows, cols int, color ms3.Vec) *BezierGeometry {
	g := &BezierGeometry{PlaneGeometry: *NewPlaneGeometry(rows, cols, color)}
	positions := g.Positions.Data()
	for x := 0; x <= cols; x++ {
		u := float32(x) / float32(cols)
		cross := patch.PointsAt(u)
		for y := 0; y <= rows; y++ {
			v := float32(y) / float32(rows)
			positions[y*(cols+1)+x] = cross.Evaluate(v)
		}
	}
	g.RegenerateNormals()
	return g
}
