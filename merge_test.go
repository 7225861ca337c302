package umesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umeshkit/umesh/geom"
)

func translatedTetMesh(t *testing.T, dx float32) *Mesh {
	t.Helper()

	m := singleTetMesh(t)
	for i := range m.Vertices {
		m.Vertices[i].X += dx
	}
	require.NoError(t, m.Finalize())
	return m
}

func TestMergeMeshes(t *testing.T) {
	a := translatedTetMesh(t, 0)
	b := translatedTetMesh(t, 2)

	merged, err := MergeMeshes([]*Mesh{a, b})
	require.NoError(t, err)

	require.Len(t, merged.Vertices, 8)
	require.Len(t, merged.Tets, 2)
	assert.Equal(t, Tet{V0: 0, V1: 1, V2: 2, V3: 3}, merged.Tets[0])
	assert.Equal(t, Tet{V0: 4, V1: 5, V2: 6, V3: 7}, merged.Tets[1])

	bounds, err := merged.Bounds()
	require.NoError(t, err)
	assert.Equal(t, geom.Vec3{X: 0, Y: 0, Z: 0}, bounds.Lower)
	assert.Equal(t, geom.Vec3{X: 3, Y: 1, Z: 1}, bounds.Upper)

	r, err := merged.ValueRange()
	require.NoError(t, err)
	assert.Equal(t, float32(0), r.Lower)
	assert.Equal(t, float32(3), r.Upper)
}

func TestMergeMeshesGridOffsets(t *testing.T) {
	grid := func(offset int32) *Mesh {
		m := NewMesh()
		m.Grids = []Grid{{
			Domain:        geom.Box4{Lower: geom.Vec4{W: 0}, Upper: geom.Vec4{X: 1, Y: 1, Z: 1, W: 1}},
			NumCells:      geom.Vec3i{X: 1, Y: 1, Z: 1},
			ScalarsOffset: offset,
		}}
		m.GridScalars = make([]float32, int(offset)+8)
		require.NoError(t, m.Finalize())
		return m
	}

	merged, err := MergeMeshes([]*Mesh{grid(0), grid(4)})
	require.NoError(t, err)

	require.Len(t, merged.Grids, 2)
	assert.Equal(t, int32(0), merged.Grids[0].ScalarsOffset)
	assert.Equal(t, int32(8+4), merged.Grids[1].ScalarsOffset)
	assert.Len(t, merged.GridScalars, 8+12)
}

func TestMergeMeshesAttributeMismatch(t *testing.T) {
	withAttr := singleTetMesh(t)
	without := NewMesh()
	without.Vertices = []geom.Vec3{{X: 0, Y: 0, Z: 0}}
	require.NoError(t, without.Finalize())

	_, err := MergeMeshes([]*Mesh{withAttr, without})
	require.ErrorIs(t, err, ErrAttributeMismatch)
}

func TestMergeMeshesEmptyInput(t *testing.T) {
	merged, err := MergeMeshes(nil)
	require.NoError(t, err)
	assert.True(t, merged.Finalized())
	assert.Equal(t, 0, merged.Size())
}

func TestAppend(t *testing.T) {
	a := translatedTetMesh(t, 0)
	b := translatedTetMesh(t, 2)

	require.NoError(t, a.Append(b))

	require.Len(t, a.Vertices, 8)
	require.Len(t, a.Tets, 2)
	assert.Equal(t, Tet{V0: 4, V1: 5, V2: 6, V3: 7}, a.Tets[1])
	assert.True(t, a.Finalized())

	bounds, err := a.Bounds()
	require.NoError(t, err)
	assert.Equal(t, geom.Vec3{X: 3, Y: 1, Z: 1}, bounds.Upper)
}

func TestAppendExtendsTags(t *testing.T) {
	a := translatedTetMesh(t, 0)
	a.VertexTags = []uint64{100, 101, 102, 103}
	require.NoError(t, a.Finalize())
	b := translatedTetMesh(t, 2)

	require.NoError(t, a.Append(b))

	// Tags stay one per vertex; the untagged side contributes its own
	// vertex indices.
	require.Len(t, a.VertexTags, len(a.Vertices))
	assert.Equal(t, []uint64{100, 101, 102, 103, 0, 1, 2, 3}, a.VertexTags)
}

func TestAppendBackfillsTags(t *testing.T) {
	a := translatedTetMesh(t, 0)
	b := translatedTetMesh(t, 2)
	b.VertexTags = []uint64{200, 201, 202, 203}
	require.NoError(t, b.Finalize())

	require.NoError(t, a.Append(b))

	require.Len(t, a.VertexTags, 8)
	assert.Equal(t, []uint64{0, 1, 2, 3, 200, 201, 202, 203}, a.VertexTags)
}

func TestMergeMeshesTags(t *testing.T) {
	a := translatedTetMesh(t, 0)
	b := translatedTetMesh(t, 2)
	b.VertexTags = []uint64{200, 201, 202, 203}
	require.NoError(t, b.Finalize())

	merged, err := MergeMeshes([]*Mesh{a, b})
	require.NoError(t, err)

	require.Len(t, merged.VertexTags, len(merged.Vertices))
	assert.Equal(t, []uint64{0, 1, 2, 3, 200, 201, 202, 203}, merged.VertexTags)

	// No input tagged means no output tags.
	merged, err = MergeMeshes([]*Mesh{translatedTetMesh(t, 0), translatedTetMesh(t, 2)})
	require.NoError(t, err)
	assert.Empty(t, merged.VertexTags)
}

func TestAppendAttributeMismatch(t *testing.T) {
	a := singleTetMesh(t)
	b := NewMesh()
	b.Vertices = []geom.Vec3{{X: 0, Y: 0, Z: 0}}

	require.ErrorIs(t, a.Append(b), ErrAttributeMismatch)
}
