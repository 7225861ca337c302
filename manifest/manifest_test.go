package manifest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umeshkit/umesh/blobstore"
	"github.com/umeshkit/umesh/codec"
	"github.com/umeshkit/umesh/geom"
	"github.com/umeshkit/umesh/internal/fs"
)

func testManifest() *Manifest {
	return &Manifest{
		Source:        "exajet.umesh",
		MaxBricks:     8,
		LeafThreshold: 1000,
		Bounds: geom.Box3{
			Lower: geom.Vec3{X: 0, Y: 0, Z: 0},
			Upper: geom.Vec3{X: 10, Y: 4, Z: 4},
		},
		Bricks: []BrickInfo{
			{
				Path:  "bricks/brick_00000.umesh",
				Prims: 1200,
				Verts: 800,
				Size:  65536,
				Bounds: geom.Box3{
					Lower: geom.Vec3{X: 0, Y: 0, Z: 0},
					Upper: geom.Vec3{X: 5, Y: 4, Z: 4},
				},
			},
			{
				Path:  "bricks/brick_00001.umesh",
				Prims: 900,
				Verts: 640,
				Size:  49152,
				Bounds: geom.Box3{
					Lower: geom.Vec3{X: 5, Y: 0, Z: 0},
					Upper: geom.Vec3{X: 10, Y: 4, Z: 4},
				},
			},
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(fs.Default, dir, nil)

	// Empty directory loads an empty manifest.
	m, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), m.ID)
	assert.Empty(t, m.Bricks)

	want := testManifest()
	require.NoError(t, store.Save(want))
	assert.Equal(t, uint64(1), want.ID)

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, codec.Default.Name(), got.Codec)
	assert.Equal(t, want.Bricks, got.Bricks)
	assert.Equal(t, want.Bounds, got.Bounds)

	// A second save advances the version.
	require.NoError(t, store.Save(got))
	latest, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), latest.ID)
}

func TestStoreSaveFaultyFS(t *testing.T) {
	dir := t.TempDir()
	ffs := fs.NewFaultyFS(nil)
	ffs.SetLimit(10) // fail partway through the manifest write
	store := NewStore(ffs, dir, nil)

	err := store.Save(testManifest())
	require.Error(t, err)

	// The failed save must not leave a CURRENT behind.
	clean := NewStore(fs.Default, dir, nil)
	m, err := clean.Load()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), m.ID)
}

func TestPublishLoadCurrent(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	_, err := LoadCurrent(ctx, store)
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	want := testManifest()
	require.NoError(t, Publish(ctx, store, want, nil))
	assert.Equal(t, uint64(1), want.ID)

	got, err := LoadCurrent(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, want.Bricks, got.Bricks)

	// Publishing again picks up the committed ID.
	next := testManifest()
	require.NoError(t, Publish(ctx, store, next, nil))
	assert.Equal(t, uint64(2), next.ID)

	names, err := store.List(ctx, ManifestFileName)
	require.NoError(t, err)
	assert.Len(t, names, 2)
}

func TestDecodeRejectsBadVersion(t *testing.T) {
	data := []byte(`{"version": 99, "id": 1}`)
	_, err := decode(data)
	require.Error(t, err)
}

func TestDecodeHonorsDeclaredCodec(t *testing.T) {
	m := testManifest()
	m.Version = CurrentVersion
	m.ID = 1
	m.Codec = "json"

	data, err := codec.JSON{}.Marshal(m)
	require.NoError(t, err)

	got, err := decode(data)
	require.NoError(t, err)
	assert.Equal(t, m.Bricks, got.Bricks)
}
