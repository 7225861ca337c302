package umesh

// Append concatenates another mesh onto m. It never deduplicates
// vertices: the other mesh's vertices are appended as-is and every
// appended element index is rebased by m's pre-append vertex count;
// grid scalar offsets are rebased by m's pre-append grid-scalar
// count. Both meshes must agree on primary-attribute presence. When
// either side carries vertex tags the result is fully tagged: the
// untagged side's vertices get their own index as the tag. The mesh
// is finalized before returning.
func (m *Mesh) Append(other *Mesh) error {
	if (m.PerVertex == nil) != (other.PerVertex == nil) {
		return ErrAttributeMismatch
	}

	if len(m.VertexTags) > 0 || len(other.VertexTags) > 0 {
		if len(m.VertexTags) == 0 {
			m.VertexTags = identityTags(len(m.Vertices))
		}
		if len(other.VertexTags) > 0 {
			m.VertexTags = append(m.VertexTags, other.VertexTags...)
		} else {
			m.VertexTags = append(m.VertexTags, identityTags(len(other.Vertices))...)
		}
	}

	oldNumVertices := int32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)

	if m.PerVertex != nil {
		m.PerVertex.Values = append(m.PerVertex.Values, other.PerVertex.Values...)
		m.PerVertex.finalized = false
	}

	for _, t := range other.Triangles {
		m.Triangles = append(m.Triangles, t.shifted(oldNumVertices))
	}
	for _, q := range other.Quads {
		m.Quads = append(m.Quads, q.shifted(oldNumVertices))
	}
	for _, t := range other.Tets {
		m.Tets = append(m.Tets, t.shifted(oldNumVertices))
	}
	for _, p := range other.Pyramids {
		m.Pyramids = append(m.Pyramids, p.shifted(oldNumVertices))
	}
	for _, w := range other.Wedges {
		m.Wedges = append(m.Wedges, w.shifted(oldNumVertices))
	}
	for _, h := range other.Hexes {
		m.Hexes = append(m.Hexes, h.shifted(oldNumVertices))
	}

	oldNumGridScalars := int32(len(m.GridScalars))
	m.GridScalars = append(m.GridScalars, other.GridScalars...)
	for _, g := range other.Grids {
		g.ScalarsOffset += oldNumGridScalars
		m.Grids = append(m.Grids, g)
	}

	m.finalized = false
	return m.Finalize()
}

// identityTags synthesizes the tag array a mesh without explicit tags
// is treated as carrying: every vertex tagged with its own index.
func identityTags(n int) []uint64 {
	tags := make([]uint64, n)
	for i := range tags {
		tags[i] = uint64(i)
	}
	return tags
}
