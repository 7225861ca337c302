package umesh

import "github.com/umeshkit/umesh/geom"

// Per-primitive bounds and value-range lookups. These run in the hot
// paths of Finalize and the partitioner, so the per-kind helpers avoid
// any allocation.

func (m *Mesh) triangleBounds(id int) geom.Box3 {
	t := m.Triangles[id]
	return geom.EmptyBox3().
		Extend(m.Vertices[t.V0]).
		Extend(m.Vertices[t.V1]).
		Extend(m.Vertices[t.V2])
}

func (m *Mesh) quadBounds(id int) geom.Box3 {
	q := m.Quads[id]
	return geom.EmptyBox3().
		Extend(m.Vertices[q.V0]).
		Extend(m.Vertices[q.V1]).
		Extend(m.Vertices[q.V2]).
		Extend(m.Vertices[q.V3])
}

func (m *Mesh) tetBounds(id int) geom.Box3 {
	t := m.Tets[id]
	return geom.EmptyBox3().
		Extend(m.Vertices[t.V0]).
		Extend(m.Vertices[t.V1]).
		Extend(m.Vertices[t.V2]).
		Extend(m.Vertices[t.V3])
}

func (m *Mesh) pyramidBounds(id int) geom.Box3 {
	p := m.Pyramids[id]
	return geom.EmptyBox3().
		Extend(m.Vertices[p.Base.X]).
		Extend(m.Vertices[p.Base.Y]).
		Extend(m.Vertices[p.Base.Z]).
		Extend(m.Vertices[p.Base.W]).
		Extend(m.Vertices[p.Top])
}

func (m *Mesh) wedgeBounds(id int) geom.Box3 {
	w := m.Wedges[id]
	return geom.EmptyBox3().
		Extend(m.Vertices[w.Front.X]).
		Extend(m.Vertices[w.Front.Y]).
		Extend(m.Vertices[w.Front.Z]).
		Extend(m.Vertices[w.Back.X]).
		Extend(m.Vertices[w.Back.Y]).
		Extend(m.Vertices[w.Back.Z])
}

func (m *Mesh) hexBounds(id int) geom.Box3 {
	h := m.Hexes[id]
	return geom.EmptyBox3().
		Extend(m.Vertices[h.Base.X]).
		Extend(m.Vertices[h.Base.Y]).
		Extend(m.Vertices[h.Base.Z]).
		Extend(m.Vertices[h.Base.W]).
		Extend(m.Vertices[h.Top.X]).
		Extend(m.Vertices[h.Top.Y]).
		Extend(m.Vertices[h.Top.Z]).
		Extend(m.Vertices[h.Top.W])
}

// gridBounds comes straight from the stored domain box; grid voxels
// are never scanned.
func (m *Mesh) gridBounds(id int) geom.Box3 {
	return m.Grids[id].Domain.Spatial()
}

// PrimBounds returns the axis-aligned bounding box of the primitive's
// vertex positions (for grids, of its domain box).
func (m *Mesh) PrimBounds(pr PrimRef) (geom.Box3, error) {
	switch pr.Kind {
	case KindTriangle:
		return m.triangleBounds(pr.ID), nil
	case KindQuad:
		return m.quadBounds(pr.ID), nil
	case KindTet:
		return m.tetBounds(pr.ID), nil
	case KindPyramid:
		return m.pyramidBounds(pr.ID), nil
	case KindWedge:
		return m.wedgeBounds(pr.ID), nil
	case KindHex:
		return m.hexBounds(pr.ID), nil
	case KindGrid:
		return m.gridBounds(pr.ID), nil
	default:
		return geom.Box3{}, &ErrUnsupportedKind{Kind: pr.Kind}
	}
}

func (m *Mesh) triangleValueRange(id int) geom.Range1 {
	t := m.Triangles[id]
	v := m.PerVertex.Values
	return geom.EmptyRange1().Extend(v[t.V0]).Extend(v[t.V1]).Extend(v[t.V2])
}

func (m *Mesh) quadValueRange(id int) geom.Range1 {
	q := m.Quads[id]
	v := m.PerVertex.Values
	return geom.EmptyRange1().Extend(v[q.V0]).Extend(v[q.V1]).Extend(v[q.V2]).Extend(v[q.V3])
}

func (m *Mesh) tetValueRange(id int) geom.Range1 {
	t := m.Tets[id]
	v := m.PerVertex.Values
	return geom.EmptyRange1().Extend(v[t.V0]).Extend(v[t.V1]).Extend(v[t.V2]).Extend(v[t.V3])
}

func (m *Mesh) pyramidValueRange(id int) geom.Range1 {
	p := m.Pyramids[id]
	v := m.PerVertex.Values
	return geom.EmptyRange1().
		Extend(v[p.Base.X]).Extend(v[p.Base.Y]).Extend(v[p.Base.Z]).Extend(v[p.Base.W]).
		Extend(v[p.Top])
}

func (m *Mesh) wedgeValueRange(id int) geom.Range1 {
	w := m.Wedges[id]
	v := m.PerVertex.Values
	return geom.EmptyRange1().
		Extend(v[w.Front.X]).Extend(v[w.Front.Y]).Extend(v[w.Front.Z]).
		Extend(v[w.Back.X]).Extend(v[w.Back.Y]).Extend(v[w.Back.Z])
}

func (m *Mesh) hexValueRange(id int) geom.Range1 {
	h := m.Hexes[id]
	v := m.PerVertex.Values
	return geom.EmptyRange1().
		Extend(v[h.Base.X]).Extend(v[h.Base.Y]).Extend(v[h.Base.Z]).Extend(v[h.Base.W]).
		Extend(v[h.Top.X]).Extend(v[h.Top.Y]).Extend(v[h.Top.Z]).Extend(v[h.Top.W])
}

// gridValueRange reads the domain's w component instead of scanning
// the grid's scalar array. For large grids the exact range scan is
// far too expensive, and the domain field is kept up to date by the
// importers; this is a deliberate O(1) approximation.
func (m *Mesh) gridValueRange(id int) geom.Range1 {
	return m.Grids[id].Domain.ScalarRange()
}

// PrimValueRange returns the inclusive range of the primitive's
// vertices' primary-attribute values (for grids, the domain's scalar
// range).
func (m *Mesh) PrimValueRange(pr PrimRef) (geom.Range1, error) {
	if m.PerVertex == nil && pr.Kind != KindGrid {
		return geom.Range1{}, ErrNoAttribute
	}
	switch pr.Kind {
	case KindTriangle:
		return m.triangleValueRange(pr.ID), nil
	case KindQuad:
		return m.quadValueRange(pr.ID), nil
	case KindTet:
		return m.tetValueRange(pr.ID), nil
	case KindPyramid:
		return m.pyramidValueRange(pr.ID), nil
	case KindWedge:
		return m.wedgeValueRange(pr.ID), nil
	case KindHex:
		return m.hexValueRange(pr.ID), nil
	case KindGrid:
		return m.gridValueRange(pr.ID), nil
	default:
		return geom.Range1{}, &ErrUnsupportedKind{Kind: pr.Kind}
	}
}

// PrimBounds4 combines a primitive's spatial bounds and value range
// into one 4D box for unioned spatial+value queries.
func (m *Mesh) PrimBounds4(pr PrimRef) (geom.Box4, error) {
	spatial, err := m.PrimBounds(pr)
	if err != nil {
		return geom.Box4{}, err
	}
	value, err := m.PrimValueRange(pr)
	if err != nil {
		return geom.Box4{}, err
	}
	return geom.MakeBox4(spatial, value), nil
}
