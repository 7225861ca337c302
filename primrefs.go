package umesh

import "github.com/umeshkit/umesh/internal/parallel"

// PrimRef enumeration. Output slots are assigned by static index
// arithmetic (per-kind offsets are known up front), so the resulting
// order is stable regardless of scheduling: within a kind, storage
// order; across kinds, tet < pyramid < wedge < hex < grid for volume
// and triangle < quad for surface.

const primRefGrain = 64 * 1024

func fillPrimRefs(out []PrimRef, kind PrimKind, n int) {
	parallel.ForBlocked(0, n, primRefGrain, func(begin, end int) {
		for i := begin; i < end; i++ {
			out[i] = PrimRef{Kind: kind, ID: i}
		}
	})
}

// CreateVolumePrimRefs returns one PrimRef per volume element (tets,
// pyramids, wedges, hexes, grids).
func (m *Mesh) CreateVolumePrimRefs() []PrimRef {
	result := make([]PrimRef, m.NumVolumeElements())

	off := 0
	fillPrimRefs(result[off:off+len(m.Tets)], KindTet, len(m.Tets))
	off += len(m.Tets)
	fillPrimRefs(result[off:off+len(m.Pyramids)], KindPyramid, len(m.Pyramids))
	off += len(m.Pyramids)
	fillPrimRefs(result[off:off+len(m.Wedges)], KindWedge, len(m.Wedges))
	off += len(m.Wedges)
	fillPrimRefs(result[off:off+len(m.Hexes)], KindHex, len(m.Hexes))
	off += len(m.Hexes)
	fillPrimRefs(result[off:off+len(m.Grids)], KindGrid, len(m.Grids))

	return result
}

// CreateSurfacePrimRefs returns one PrimRef per surface element
// (triangles, quads).
func (m *Mesh) CreateSurfacePrimRefs() []PrimRef {
	result := make([]PrimRef, len(m.Triangles)+len(m.Quads))

	fillPrimRefs(result[:len(m.Triangles)], KindTriangle, len(m.Triangles))
	fillPrimRefs(result[len(m.Triangles):], KindQuad, len(m.Quads))

	return result
}

// CreateAllPrimRefs returns PrimRefs for every element of the mesh:
// volume elements first, surface elements appended.
func (m *Mesh) CreateAllPrimRefs() []PrimRef {
	volume := m.CreateVolumePrimRefs()
	surface := m.CreateSurfacePrimRefs()
	return append(volume, surface...)
}
