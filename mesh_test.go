package umesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umeshkit/umesh/geom"
)

// singleTetMesh builds a finalized mesh with one tet spanning the unit
// cube and per-vertex scalars 0..3.
func singleTetMesh(t *testing.T) *Mesh {
	t.Helper()

	m := NewMesh()
	m.Vertices = []geom.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 1, Z: 1},
	}
	m.Tets = []Tet{{V0: 0, V1: 1, V2: 2, V3: 3}}
	m.PerVertex = &Attribute{Name: "scalar", Values: []float32{0, 1, 2, 3}}
	m.Attributes = []*Attribute{m.PerVertex}
	require.NoError(t, m.Finalize())
	return m
}

func TestFinalizeBounds(t *testing.T) {
	m := singleTetMesh(t)

	b, err := m.Bounds()
	require.NoError(t, err)
	assert.Equal(t, geom.Vec3{X: 0, Y: 0, Z: 0}, b.Lower)
	assert.Equal(t, geom.Vec3{X: 1, Y: 1, Z: 1}, b.Upper)

	r, err := m.ValueRange()
	require.NoError(t, err)
	assert.Equal(t, float32(0), r.Lower)
	assert.Equal(t, float32(3), r.Upper)
}

func TestUnfinalizedReads(t *testing.T) {
	m := NewMesh()
	m.Vertices = []geom.Vec3{{X: 1, Y: 2, Z: 3}}

	_, err := m.Bounds()
	require.ErrorIs(t, err, ErrNotFinalized)
	_, err = m.GridsScalarRange()
	require.ErrorIs(t, err, ErrNotFinalized)

	require.NoError(t, m.Finalize())
	_, err = m.Bounds()
	require.NoError(t, err)
}

func TestFinalizeEmptyMesh(t *testing.T) {
	m := NewMesh()
	require.NoError(t, m.Finalize())

	b, err := m.Bounds()
	require.NoError(t, err)
	assert.True(t, b.Empty())

	r, err := m.GridsScalarRange()
	require.NoError(t, err)
	assert.True(t, r.Empty())
}

func TestValueRangeNoAttribute(t *testing.T) {
	m := NewMesh()
	require.NoError(t, m.Finalize())

	_, err := m.ValueRange()
	require.ErrorIs(t, err, ErrNoAttribute)
}

func TestMarkMutatedInvalidates(t *testing.T) {
	m := singleTetMesh(t)
	require.True(t, m.Finalized())

	m.MarkMutated()
	_, err := m.Bounds()
	require.ErrorIs(t, err, ErrNotFinalized)
}

func TestSetScalarRequiresRefinalize(t *testing.T) {
	m := singleTetMesh(t)

	m.SetScalar(3, 42)
	_, err := m.ValueRange()
	require.ErrorIs(t, err, ErrNotFinalized)

	require.NoError(t, m.Finalize())
	r, err := m.ValueRange()
	require.NoError(t, err)
	assert.Equal(t, float32(42), r.Upper)
}

func TestAttachScalars(t *testing.T) {
	m := singleTetMesh(t)

	err := m.AttachScalars("pressure", []float32{5, 6, 7})
	var mismatch *ErrScalarCountMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 3, mismatch.Scalars)
	assert.Equal(t, 4, mismatch.Vertices)

	require.NoError(t, m.AttachScalars("pressure", []float32{5, 6, 7, 8}))
	assert.Equal(t, "pressure", m.PerVertex.Name)
	assert.Same(t, m.PerVertex, m.Attributes[0])

	r, err := m.ValueRange()
	require.NoError(t, err)
	assert.Equal(t, float32(5), r.Lower)
	assert.Equal(t, float32(8), r.Upper)
}

func TestGridsScalarRange(t *testing.T) {
	m := NewMesh()
	m.Grids = []Grid{
		{
			Domain:   geom.Box4{Lower: geom.Vec4{X: 0, Y: 0, Z: 0, W: -1}, Upper: geom.Vec4{X: 1, Y: 1, Z: 1, W: 2}},
			NumCells: geom.Vec3i{X: 1, Y: 1, Z: 1},
		},
		{
			Domain:        geom.Box4{Lower: geom.Vec4{X: 1, Y: 0, Z: 0, W: 3}, Upper: geom.Vec4{X: 2, Y: 1, Z: 1, W: 7}},
			NumCells:      geom.Vec3i{X: 1, Y: 1, Z: 1},
			ScalarsOffset: 8,
		},
	}
	m.GridScalars = make([]float32, 16)
	require.NoError(t, m.Finalize())

	r, err := m.GridsScalarRange()
	require.NoError(t, err)
	assert.Equal(t, float32(-1), r.Lower)
	assert.Equal(t, float32(7), r.Upper)

	b, err := m.Bounds()
	require.NoError(t, err)
	assert.Equal(t, geom.Vec3{X: 0, Y: 0, Z: 0}, b.Lower)
	assert.Equal(t, geom.Vec3{X: 2, Y: 1, Z: 1}, b.Upper)
}

func TestSizeAndCellCounts(t *testing.T) {
	m := NewMesh()
	m.Triangles = make([]Triangle, 2)
	m.Tets = make([]Tet, 3)
	m.Grids = []Grid{{NumCells: geom.Vec3i{X: 4, Y: 4, Z: 4}}}

	assert.Equal(t, 6, m.Size())
	assert.Equal(t, 4, m.NumVolumeElements())
	assert.Equal(t, 3+64, m.NumCells())
}

func TestPrimRefOrder(t *testing.T) {
	m := NewMesh()
	m.Triangles = make([]Triangle, 1)
	m.Quads = make([]Quad, 1)
	m.Tets = make([]Tet, 2)
	m.Hexes = make([]Hex, 1)
	m.Grids = make([]Grid, 1)

	prims := m.CreateAllPrimRefs()
	require.Len(t, prims, 6)
	assert.Equal(t, PrimRef{Kind: KindTet, ID: 0}, prims[0])
	assert.Equal(t, PrimRef{Kind: KindTet, ID: 1}, prims[1])
	assert.Equal(t, PrimRef{Kind: KindHex, ID: 0}, prims[2])
	assert.Equal(t, PrimRef{Kind: KindGrid, ID: 0}, prims[3])
	assert.Equal(t, PrimRef{Kind: KindTriangle, ID: 0}, prims[4])
	assert.Equal(t, PrimRef{Kind: KindQuad, ID: 0}, prims[5])
}

func TestStringSummary(t *testing.T) {
	m := singleTetMesh(t)
	s := m.String()
	assert.Contains(t, s, "#verts=4")
	assert.Contains(t, s, "#tets=1")
	assert.NotContains(t, s, "#hexes")
	assert.Contains(t, s, `scalars="scalar"`)
}
