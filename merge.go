package umesh

import (
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/umeshkit/umesh/geom"
)

// meshOffsets holds one input's position in the merged output, one
// offset per entity kind.
type meshOffsets struct {
	vtx, tri, quad, tet, pyr, wedge, hex, grid, gridScalar int
}

// MergeMeshes merges multiple meshes into one, out of place. Like
// Append it never deduplicates vertices; every input's element indices
// are rebased by that input's vertex offset in the output. When any
// input carries vertex tags the output is fully tagged, untagged
// inputs contributing each vertex's own index as the tag.
//
// Offsets are computed in one sequential prefix-sum pass; the copy
// phase then runs in parallel across inputs since each input writes a
// disjoint output range. Returns ErrVertexOverflow before any output
// allocation if the merged vertex count would not be addressable by
// signed 32-bit element indices.
func MergeMeshes(inputs []*Mesh) (*Mesh, error) {
	hasAttribute := len(inputs) > 0 && inputs[0].PerVertex != nil

	hasTags := false
	offsets := make([]meshOffsets, len(inputs))
	var total meshOffsets
	for i, in := range inputs {
		if (in.PerVertex != nil) != hasAttribute {
			return nil, ErrAttributeMismatch
		}
		if len(in.VertexTags) > 0 {
			hasTags = true
		}
		offsets[i] = total
		total.vtx += len(in.Vertices)
		if total.vtx > math.MaxInt32 {
			return nil, ErrVertexOverflow
		}
		total.tri += len(in.Triangles)
		total.quad += len(in.Quads)
		total.tet += len(in.Tets)
		total.pyr += len(in.Pyramids)
		total.wedge += len(in.Wedges)
		total.hex += len(in.Hexes)
		total.grid += len(in.Grids)
		total.gridScalar += len(in.GridScalars)
	}

	out := NewMesh()
	if hasAttribute {
		out.PerVertex = NewAttribute(total.vtx)
		out.PerVertex.Name = inputs[0].PerVertex.Name
		out.Attributes = []*Attribute{out.PerVertex}
	}
	out.Vertices = make([]geom.Vec3, total.vtx)
	out.Triangles = make([]Triangle, total.tri)
	out.Quads = make([]Quad, total.quad)
	out.Tets = make([]Tet, total.tet)
	out.Pyramids = make([]Pyramid, total.pyr)
	out.Wedges = make([]Wedge, total.wedge)
	out.Hexes = make([]Hex, total.hex)
	out.Grids = make([]Grid, total.grid)
	out.GridScalars = make([]float32, total.gridScalar)
	if hasTags {
		out.VertexTags = make([]uint64, total.vtx)
	}

	var g errgroup.Group
	for i := range inputs {
		i := i
		g.Go(func() error {
			in := inputs[i]
			off := offsets[i]
			shift := int32(off.vtx)

			copy(out.Vertices[off.vtx:], in.Vertices)
			if in.PerVertex != nil {
				copy(out.PerVertex.Values[off.vtx:], in.PerVertex.Values)
			}
			if hasTags {
				if len(in.VertexTags) > 0 {
					copy(out.VertexTags[off.vtx:], in.VertexTags)
				} else {
					copy(out.VertexTags[off.vtx:off.vtx+len(in.Vertices)], identityTags(len(in.Vertices)))
				}
			}

			for j, t := range in.Triangles {
				out.Triangles[off.tri+j] = t.shifted(shift)
			}
			for j, q := range in.Quads {
				out.Quads[off.quad+j] = q.shifted(shift)
			}
			for j, t := range in.Tets {
				out.Tets[off.tet+j] = t.shifted(shift)
			}
			for j, p := range in.Pyramids {
				out.Pyramids[off.pyr+j] = p.shifted(shift)
			}
			for j, w := range in.Wedges {
				out.Wedges[off.wedge+j] = w.shifted(shift)
			}
			for j, h := range in.Hexes {
				out.Hexes[off.hex+j] = h.shifted(shift)
			}
			for j, grid := range in.Grids {
				grid.ScalarsOffset += int32(off.gridScalar)
				out.Grids[off.grid+j] = grid
			}
			copy(out.GridScalars[off.gridScalar:], in.GridScalars)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := out.Finalize(); err != nil {
		return nil, err
	}
	return out, nil
}
