package umesh

import (
	"fmt"
	"strings"

	"github.com/umeshkit/umesh/geom"
	"github.com/umeshkit/umesh/internal/parallel"
)

// Mesh is an unstructured mesh: one shared array of 3-float vertices
// and one array per element shape, all indexing into the vertex array
// with VTK-style winding. Grids are implicit structured sub-grids with
// their scalars packed into the shared GridScalars array.
//
// A Mesh is populated by an importer (or by merge/partition
// operations) and must be finalized after every mutation batch before
// any cached derived state (Bounds, ValueRange) is read. A Mesh is not
// safe for concurrent mutation; internal parallel operations only
// touch disjoint slices of its arrays.
type Mesh struct {
	Vertices []geom.Vec3

	// PerVertex is the primary per-vertex attribute; Attributes carries
	// all attributes (the first one is the primary).
	PerVertex  *Attribute
	Attributes []*Attribute

	// Surface elements.
	Triangles []Triangle
	Quads     []Quad

	// Volume elements.
	Tets     []Tet
	Pyramids []Pyramid
	Wedges   []Wedge
	Hexes    []Hex
	Grids    []Grid

	// GridScalars holds all grids' scalars back to back: first all
	// scalars of Grids[0], then Grids[1], and so on.
	GridScalars []float32

	// VertexTags optionally carries one opaque integer per vertex,
	// preserved through partitioning so downstream tools can map a
	// partitioned vertex back to its original identity.
	VertexTags []uint64

	bounds           geom.Box3
	gridsScalarRange geom.Range1
	finalized        bool
}

// NewMesh creates an empty, unfinalized mesh.
func NewMesh() *Mesh {
	return &Mesh{}
}

// Size returns the total number of elements across all kinds,
// counting each grid as one element.
func (m *Mesh) Size() int {
	return len(m.Triangles) + len(m.Quads) +
		len(m.Tets) + len(m.Pyramids) + len(m.Wedges) + len(m.Hexes) +
		len(m.Grids)
}

// NumVolumeElements returns the number of volume elements (tets,
// pyramids, wedges, hexes, grids).
func (m *Mesh) NumVolumeElements() int {
	return len(m.Tets) + len(m.Pyramids) + len(m.Wedges) + len(m.Hexes) + len(m.Grids)
}

// NumCells returns the total cell count, where each grid contributes
// its individual voxel cells rather than counting as one element.
func (m *Mesh) NumCells() int {
	n := len(m.Tets) + len(m.Pyramids) + len(m.Wedges) + len(m.Hexes)
	for _, g := range m.Grids {
		n += int(g.NumCells.X) * int(g.NumCells.Y) * int(g.NumCells.Z)
	}
	return n
}

// Finalized reports whether derived state is valid.
func (m *Mesh) Finalized() bool {
	return m.finalized
}

// MarkMutated invalidates cached derived state. Importers that mutate
// the exported slices directly should call it before handing the mesh
// on; Append and the other mutating operations call it themselves.
func (m *Mesh) MarkMutated() {
	m.finalized = false
}

// Finalize recomputes all cached derived state: the spatial bounds as
// the union of all primitives' bounds, the grids' scalar range, and
// the primary attribute's value range. It is idempotent and safe to
// call on an empty mesh (bounds and ranges end up at the empty
// sentinels).
func (m *Mesh) Finalize() error {
	if m.PerVertex != nil {
		m.PerVertex.Finalize()
	}

	prims := m.CreateAllPrimRefs()

	type boundsPart struct {
		box geom.Box3
		err error
	}
	part := parallel.Reduce(len(prims), 16*1024,
		boundsPart{box: geom.EmptyBox3()},
		func(begin, end int) boundsPart {
			box := geom.EmptyBox3()
			for i := begin; i < end; i++ {
				pb, err := m.PrimBounds(prims[i])
				if err != nil {
					return boundsPart{box: box, err: err}
				}
				box = box.ExtendBox(pb)
			}
			return boundsPart{box: box}
		},
		func(acc, p boundsPart) boundsPart {
			if acc.err == nil {
				acc.err = p.err
			}
			acc.box = acc.box.ExtendBox(p.box)
			return acc
		})
	if part.err != nil {
		return part.err
	}
	m.bounds = part.box

	m.gridsScalarRange = parallel.Reduce(len(m.Grids), 16*1024, geom.EmptyRange1(),
		func(begin, end int) geom.Range1 {
			r := geom.EmptyRange1()
			for i := begin; i < end; i++ {
				r = r.ExtendRange(m.gridValueRange(i))
			}
			return r
		},
		func(acc, p geom.Range1) geom.Range1 {
			return acc.ExtendRange(p)
		})

	m.finalized = true
	return nil
}

// Bounds returns the cached spatial bounding box of the mesh.
func (m *Mesh) Bounds() (geom.Box3, error) {
	if !m.finalized {
		return geom.Box3{}, ErrNotFinalized
	}
	return m.bounds, nil
}

// GridsScalarRange returns the cached union of all grids' value
// ranges.
func (m *Mesh) GridsScalarRange() (geom.Range1, error) {
	if !m.finalized {
		return geom.Range1{}, ErrNotFinalized
	}
	return m.gridsScalarRange, nil
}

// ValueRange returns the union of the primary attribute's value range
// and the grids' scalar range.
func (m *Mesh) ValueRange() (geom.Range1, error) {
	if m.PerVertex == nil {
		return geom.Range1{}, ErrNoAttribute
	}
	if !m.finalized {
		return geom.Range1{}, ErrNotFinalized
	}
	r, err := m.PerVertex.ValueRange()
	if err != nil {
		return geom.Range1{}, err
	}
	return r.ExtendRange(m.gridsScalarRange), nil
}

// Bounds4 combines the mesh's spatial bounds and value range into a
// single 4D box (xyz spatial, w scalar).
func (m *Mesh) Bounds4() (geom.Box4, error) {
	b, err := m.Bounds()
	if err != nil {
		return geom.Box4{}, err
	}
	r, err := m.ValueRange()
	if err != nil {
		return geom.Box4{}, err
	}
	return geom.MakeBox4(b, r), nil
}

// SetScalar sets one value of the primary attribute without updating
// its cached range; callers must re-finalize before reading ranges.
func (m *Mesh) SetScalar(i int, value float32) {
	m.PerVertex.Values[i] = value
	m.PerVertex.finalized = false
	m.finalized = false
}

// AttachScalars replaces the mesh's primary attribute with the given
// per-vertex values. The value count must match the vertex count.
// The mesh is finalized before returning.
func (m *Mesh) AttachScalars(name string, values []float32) error {
	if len(values) != len(m.Vertices) {
		return &ErrScalarCountMismatch{Scalars: len(values), Vertices: len(m.Vertices)}
	}
	attr := &Attribute{Name: name, Values: values}
	m.PerVertex = attr
	if len(m.Attributes) > 0 {
		m.Attributes[0] = attr
	} else {
		m.Attributes = []*Attribute{attr}
	}
	m.finalized = false
	return m.Finalize()
}

// String returns a compact human-readable summary of the mesh.
func (m *Mesh) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Mesh(#verts=%d", len(m.Vertices))
	if len(m.Triangles) > 0 {
		fmt.Fprintf(&sb, ",#tris=%d", len(m.Triangles))
	}
	if len(m.Quads) > 0 {
		fmt.Fprintf(&sb, ",#quads=%d", len(m.Quads))
	}
	if len(m.Tets) > 0 {
		fmt.Fprintf(&sb, ",#tets=%d", len(m.Tets))
	}
	if len(m.Pyramids) > 0 {
		fmt.Fprintf(&sb, ",#pyrs=%d", len(m.Pyramids))
	}
	if len(m.Wedges) > 0 {
		fmt.Fprintf(&sb, ",#wedges=%d", len(m.Wedges))
	}
	if len(m.Hexes) > 0 {
		fmt.Fprintf(&sb, ",#hexes=%d", len(m.Hexes))
	}
	if len(m.Grids) > 0 {
		fmt.Fprintf(&sb, ",#grids=%d(%d scalars)", len(m.Grids), len(m.GridScalars))
	}
	if m.PerVertex != nil {
		fmt.Fprintf(&sb, ",scalars=%q", m.PerVertex.Name)
	} else {
		sb.WriteString(",scalars=no")
	}
	if len(m.VertexTags) > 0 {
		sb.WriteString(",tags=yes")
	}
	sb.WriteString(")")
	return sb.String()
}
