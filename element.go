package umesh

import "github.com/umeshkit/umesh/geom"

// PrimKind tags the concrete shape of a primitive.
type PrimKind uint8

const (
	// KindTriangle is a 3-vertex surface element.
	KindTriangle PrimKind = iota
	// KindQuad is a 4-vertex surface element.
	KindQuad
	// KindTet is a 4-vertex volume element.
	KindTet
	// KindPyramid is a 5-vertex volume element (4-vertex base plus apex).
	KindPyramid
	// KindWedge is a 6-vertex volume element (two triangular faces).
	KindWedge
	// KindHex is an 8-vertex volume element (two quad faces).
	KindHex
	// KindGrid is an implicit structured sub-grid.
	KindGrid
)

// String returns the kind's short name.
func (k PrimKind) String() string {
	switch k {
	case KindTriangle:
		return "triangle"
	case KindQuad:
		return "quad"
	case KindTet:
		return "tet"
	case KindPyramid:
		return "pyramid"
	case KindWedge:
		return "wedge"
	case KindHex:
		return "hex"
	case KindGrid:
		return "grid"
	default:
		return "invalid"
	}
}

// PrimRef is a uniform, kind-tagged reference to one primitive of a
// Mesh, regardless of its concrete shape. It is how generic code
// (partitioning, bounds export) addresses heterogeneous elements.
// Two PrimRefs are equal iff kind and index match.
type PrimRef struct {
	Kind PrimKind
	ID   int
}

// Element index tuples use the VTK winding conventions: pyramids are
// base-then-apex, wedges and hexes are base face then top/back face.
// All indices are 0-based into the owning mesh's vertex array.

// Triangle is a 3-vertex surface element.
type Triangle struct {
	V0, V1, V2 int32
}

// Quad is a 4-vertex surface element.
type Quad struct {
	V0, V1, V2, V3 int32
}

// Tet is a 4-vertex volume element.
type Tet struct {
	V0, V1, V2, V3 int32
}

// Pyramid is a 5-vertex volume element: quad base plus apex.
type Pyramid struct {
	Base geom.Vec4i
	Top  int32
}

// Wedge is a 6-vertex volume element: triangular front and back faces.
type Wedge struct {
	Front, Back geom.Vec3i
}

// Hex is an 8-vertex volume element: quad base and top faces.
type Hex struct {
	Base, Top geom.Vec4i
}

// Grid is an implicit structured sub-grid: an axis-aligned domain box
// (xyz spatial extent, w scalar range) plus cell counts and an offset
// into the mesh's shared grid-scalar array. A grid with cell counts
// (nx,ny,nz) owns (nx+1)*(ny+1)*(nz+1) scalars starting at
// ScalarsOffset.
type Grid struct {
	Domain        geom.Box4
	NumCells      geom.Vec3i
	ScalarsOffset int32
}

// NumScalars returns the number of scalars the grid owns.
func (g Grid) NumScalars() int {
	return int(g.NumCells.X+1) * int(g.NumCells.Y+1) * int(g.NumCells.Z+1)
}

// shifted returns the element with every vertex index increased by d.
// Used when rebasing indices during append/merge.
func (t Triangle) shifted(d int32) Triangle { return Triangle{t.V0 + d, t.V1 + d, t.V2 + d} }

func (q Quad) shifted(d int32) Quad { return Quad{q.V0 + d, q.V1 + d, q.V2 + d, q.V3 + d} }

func (t Tet) shifted(d int32) Tet { return Tet{t.V0 + d, t.V1 + d, t.V2 + d, t.V3 + d} }

func (p Pyramid) shifted(d int32) Pyramid {
	return Pyramid{
		Base: geom.Vec4i{X: p.Base.X + d, Y: p.Base.Y + d, Z: p.Base.Z + d, W: p.Base.W + d},
		Top:  p.Top + d,
	}
}

func (w Wedge) shifted(d int32) Wedge {
	return Wedge{
		Front: geom.Vec3i{X: w.Front.X + d, Y: w.Front.Y + d, Z: w.Front.Z + d},
		Back:  geom.Vec3i{X: w.Back.X + d, Y: w.Back.Y + d, Z: w.Back.Z + d},
	}
}

func (h Hex) shifted(d int32) Hex {
	return Hex{
		Base: geom.Vec4i{X: h.Base.X + d, Y: h.Base.Y + d, Z: h.Base.Z + d, W: h.Base.W + d},
		Top:  geom.Vec4i{X: h.Top.X + d, Y: h.Top.Y + d, Z: h.Top.Z + d, W: h.Top.W + d},
	}
}

// Indices returns the element's vertex index tuple.
func (t Triangle) Indices() []int32 { return []int32{t.V0, t.V1, t.V2} }

// Indices returns the element's vertex index tuple.
func (q Quad) Indices() []int32 { return []int32{q.V0, q.V1, q.V2, q.V3} }

// Indices returns the element's vertex index tuple.
func (t Tet) Indices() []int32 { return []int32{t.V0, t.V1, t.V2, t.V3} }

// Indices returns the element's vertex index tuple.
func (p Pyramid) Indices() []int32 {
	return []int32{p.Base.X, p.Base.Y, p.Base.Z, p.Base.W, p.Top}
}

// Indices returns the element's vertex index tuple.
func (w Wedge) Indices() []int32 {
	return []int32{w.Front.X, w.Front.Y, w.Front.Z, w.Back.X, w.Back.Y, w.Back.Z}
}

// Indices returns the element's vertex index tuple.
func (h Hex) Indices() []int32 {
	return []int32{h.Base.X, h.Base.Y, h.Base.Z, h.Base.W, h.Top.X, h.Top.Y, h.Top.Z, h.Top.W}
}
