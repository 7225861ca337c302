package partition

import (
	"github.com/RoaringBitmap/roaring/v2"

	umesh "github.com/umeshkit/umesh"
	"github.com/umeshkit/umesh/geom"
)

// Extract builds a standalone mesh holding only the brick's elements,
// with a fresh dense vertex index space. Referenced source vertices
// are collected in a bitmap and assigned local indices in ascending
// source order (the bitmap's rank), which keeps the result
// deterministic regardless of element order. Each extracted vertex
// carries a tag: the source mesh's tag if it has tags, otherwise the
// vertex's original global index, so downstream tools can undo the
// re-indexing.
func Extract(m *umesh.Mesh, b *Brick) (*umesh.Mesh, error) {
	referenced := roaring.New()
	for _, pr := range b.Prims {
		for _, idx := range primIndices(m, pr) {
			referenced.Add(uint32(idx))
		}
	}

	out := umesh.NewMesh()

	out.Vertices = make([]geom.Vec3, 0, referenced.GetCardinality())
	var values []float32
	if m.PerVertex != nil {
		values = make([]float32, 0, referenced.GetCardinality())
	}
	out.VertexTags = make([]uint64, 0, referenced.GetCardinality())

	it := referenced.Iterator()
	for it.HasNext() {
		v := it.Next()
		out.Vertices = append(out.Vertices, m.Vertices[v])
		if values != nil {
			values = append(values, m.PerVertex.Values[v])
		}
		if len(m.VertexTags) > 0 {
			out.VertexTags = append(out.VertexTags, m.VertexTags[v])
		} else {
			out.VertexTags = append(out.VertexTags, uint64(v))
		}
	}
	if values != nil {
		out.PerVertex = &umesh.Attribute{Name: m.PerVertex.Name, Values: values}
		out.Attributes = []*umesh.Attribute{out.PerVertex}
	}

	// Rank gives the 1-based position of a source index among all
	// referenced indices; minus one it is the dense local index.
	local := func(idx int32) int32 {
		return int32(referenced.Rank(uint32(idx))) - 1
	}

	for _, pr := range b.Prims {
		switch pr.Kind {
		case umesh.KindTriangle:
			t := m.Triangles[pr.ID]
			out.Triangles = append(out.Triangles, umesh.Triangle{
				V0: local(t.V0), V1: local(t.V1), V2: local(t.V2),
			})
		case umesh.KindQuad:
			q := m.Quads[pr.ID]
			out.Quads = append(out.Quads, umesh.Quad{
				V0: local(q.V0), V1: local(q.V1), V2: local(q.V2), V3: local(q.V3),
			})
		case umesh.KindTet:
			t := m.Tets[pr.ID]
			out.Tets = append(out.Tets, umesh.Tet{
				V0: local(t.V0), V1: local(t.V1), V2: local(t.V2), V3: local(t.V3),
			})
		case umesh.KindPyramid:
			p := m.Pyramids[pr.ID]
			out.Pyramids = append(out.Pyramids, umesh.Pyramid{
				Base: geom.Vec4i{
					X: local(p.Base.X), Y: local(p.Base.Y), Z: local(p.Base.Z), W: local(p.Base.W),
				},
				Top: local(p.Top),
			})
		case umesh.KindWedge:
			w := m.Wedges[pr.ID]
			out.Wedges = append(out.Wedges, umesh.Wedge{
				Front: geom.Vec3i{X: local(w.Front.X), Y: local(w.Front.Y), Z: local(w.Front.Z)},
				Back:  geom.Vec3i{X: local(w.Back.X), Y: local(w.Back.Y), Z: local(w.Back.Z)},
			})
		case umesh.KindHex:
			h := m.Hexes[pr.ID]
			out.Hexes = append(out.Hexes, umesh.Hex{
				Base: geom.Vec4i{
					X: local(h.Base.X), Y: local(h.Base.Y), Z: local(h.Base.Z), W: local(h.Base.W),
				},
				Top: geom.Vec4i{
					X: local(h.Top.X), Y: local(h.Top.Y), Z: local(h.Top.Z), W: local(h.Top.W),
				},
			})
		case umesh.KindGrid:
			g := m.Grids[pr.ID]
			scalars := m.GridScalars[g.ScalarsOffset : int(g.ScalarsOffset)+g.NumScalars()]
			g.ScalarsOffset = int32(len(out.GridScalars))
			out.GridScalars = append(out.GridScalars, scalars...)
			out.Grids = append(out.Grids, g)
		default:
			return nil, &umesh.ErrUnsupportedKind{Kind: pr.Kind}
		}
	}

	if err := out.Finalize(); err != nil {
		return nil, err
	}
	return out, nil
}

// primIndices returns the vertex indices of a non-grid element; grids
// reference no vertices.
func primIndices(m *umesh.Mesh, pr umesh.PrimRef) []int32 {
	switch pr.Kind {
	case umesh.KindTriangle:
		return m.Triangles[pr.ID].Indices()
	case umesh.KindQuad:
		return m.Quads[pr.ID].Indices()
	case umesh.KindTet:
		return m.Tets[pr.ID].Indices()
	case umesh.KindPyramid:
		return m.Pyramids[pr.ID].Indices()
	case umesh.KindWedge:
		return m.Wedges[pr.ID].Indices()
	case umesh.KindHex:
		return m.Hexes[pr.ID].Indices()
	default:
		return nil
	}
}
