package gsurf

import "github.com/soypat/geometry/ms3"

// TriangleFaces decodes an index stream into triangles under the given
// topology:
//
//   - Triangles: contiguous triples. A stream length that is not a multiple
//     of three is a programmer error and panics.
//   - TriangleStrip: sliding window (i-2, i-1, i). Winding is taken as-is;
//     shared edge accumulation in normal generation smooths the result.
//   - TriangleFan: triples (0, i-1, i) sharing the first index.
//
// Any other topology panics.
func TriangleFaces(topology PrimitiveType, indices []uint32) [][3]uint32 {
	switch topology {
	case Triangles:
		if len(indices)%3 != 0 {
			panicf("triangle list of %d vertices is not a multiple of three", len(indices))
		}
		faces := make([][3]uint32, 0, len(indices)/3)
		for i := 0; i < len(indices); i += 3 {
			faces = append(faces, [3]uint32{indices[i], indices[i+1], indices[i+2]})
		}
		return faces
	case TriangleStrip:
		faces := make([][3]uint32, 0, max(0, len(indices)-2))
		for i := 2; i < len(indices); i++ {
			faces = append(faces, [3]uint32{indices[i-2], indices[i-1], indices[i]})
		}
		return faces
	case TriangleFan:
		faces := make([][3]uint32, 0, max(0, len(indices)-2))
		for i := 2; i < len(indices); i++ {
			faces = append(faces, [3]uint32{indices[0], indices[i-1], indices[i]})
		}
		return faces
	}
	panicf("cannot build triangle faces for topology %s", topology)
	return nil
}

// GenerateNormals computes one unit normal per vertex by averaging the
// normals of all faces the vertex participates in. The vertex stream is
// interpreted as the given topology. Fewer than three vertices panic.
func GenerateNormals(topology PrimitiveType, positions []ms3.Vec) []ms3.Vec {
	if len(positions) < 3 {
		panicf("normal generation expects at least three vertices, got %d", len(positions))
	}
	indices := make([]uint32, len(positions))
	for i := range indices {
		indices[i] = uint32(i)
	}
	return accumulateNormals(positions, TriangleFaces(topology, indices))
}

// GenerateIndexedNormals is GenerateNormals for indexed geometry: faces are
// decoded from the index stream, and a vertex referenced by several faces
// accumulates all of their normals before normalization.
func GenerateIndexedNormals(topology PrimitiveType, positions []ms3.Vec, indices []uint32) []ms3.Vec {
	if len(positions) < 3 {
		panicf("normal generation expects at least three vertices, got %d", len(positions))
	}
	if len(indices) < 3 {
		panicf("normal generation expects at least three indices, got %d", len(indices))
	}
	ValidateIndices(indices, len(positions))
	return accumulateNormals(positions, TriangleFaces(topology, indices))
}

// accumulateNormals sums face normals into the participating vertices and
// normalizes the sums. For a face (A, B, C) the face normal is
// normalize(cross(C-B, A-B)). Zero-area faces, such as the degenerate
// stitching triangles of strip grids, contribute nothing. Vertices whose
// contributions cancel keep a zero normal rather than going NaN.
func accumulateNormals(positions []ms3.Vec, faces [][3]uint32) []ms3.Vec {
	normals := make([]ms3.Vec, len(positions))
	for _, f := range faces {
		va, vb, vc := positions[f[0]], positions[f[1]], positions[f[2]]
		cb := ms3.Sub(vc, vb)
		ab := ms3.Sub(va, vb)
		n := ms3.Cross(cb, ab)
		if ms3.Dot(n, n) <= degenerateEps {
			continue
		}
		n = ms3.Unit(n)
		normals[f[0]] = ms3.Add(normals[f[0]], n)
		normals[f[1]] = ms3.Add(normals[f[1]], n)
		normals[f[2]] = ms3.Add(normals[f[2]], n)
	}
	for i, n := range normals {
		if ms3.Dot(n, n) <= degenerateEps {
			continue
		}
		normals[i] = ms3.Unit(n)
	}
	return normals
}
