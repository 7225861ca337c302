package partition

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umeshkit/umesh/blobstore"
	"github.com/umeshkit/umesh/resource"
)

func TestPublishAndLoad(t *testing.T) {
	ctx := context.Background()
	m := tetRowMesh(t, 32)

	bricks, err := Partition(m, Options{MaxBricks: 4})
	require.NoError(t, err)
	require.Len(t, bricks, 4)

	store := blobstore.NewMemoryStore()
	man, err := Publish(ctx, store, m, bricks, PublishOptions{
		Compression: blobstore.CompressionZSTD,
		WithBounds:  true,
		Source:      "tetrow",
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), man.ID)
	assert.Equal(t, ".zst", man.Compression)
	assert.Equal(t, "tetrow", man.Source)
	require.Len(t, man.Bricks, 4)

	names, err := store.List(ctx, "bricks/")
	require.NoError(t, err)
	assert.Len(t, names, 8) // 4 bricks + 4 bounds sidecars

	totalPrims := 0
	for _, info := range man.Bricks {
		assert.Greater(t, info.Size, int64(0))
		assert.Greater(t, info.Verts, 0)
		totalPrims += info.Prims

		blob, err := store.Open(ctx, info.Path)
		require.NoError(t, err)
		assert.Equal(t, info.Size, blob.Size())
		require.NoError(t, blob.Close())
	}
	assert.Equal(t, 32, totalPrims)

	// Round trip through the manifest.
	man2, meshes, err := Load(ctx, store, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, man.ID, man2.ID)
	require.Len(t, meshes, 4)

	verts := 0
	prims := 0
	for i, sub := range meshes {
		assert.True(t, sub.Finalized())
		verts += len(sub.Vertices)
		prims += sub.Size()

		b, err := sub.Bounds()
		require.NoError(t, err)
		assert.Equal(t, man.Bricks[i].Bounds, b)
	}
	assert.Equal(t, 32*4, verts)
	assert.Equal(t, 32, prims)
}

func TestPublishUncompressed(t *testing.T) {
	ctx := context.Background()
	m := tetRowMesh(t, 8)

	bricks, err := Partition(m, Options{MaxBricks: 2})
	require.NoError(t, err)

	store := blobstore.NewMemoryStore()
	man, err := Publish(ctx, store, m, bricks, PublishOptions{})
	require.NoError(t, err)
	assert.Empty(t, man.Compression)

	for _, info := range man.Bricks {
		blob, err := store.Open(ctx, info.Path)
		require.NoError(t, err)
		assert.Equal(t, info.Size, blob.Size())
		require.NoError(t, blob.Close())
	}

	_, meshes, err := Load(ctx, store, LoadOptions{})
	require.NoError(t, err)
	total := 0
	for _, sub := range meshes {
		total += sub.Size()
	}
	assert.Equal(t, 8, total)
}

func TestPublishThrottled(t *testing.T) {
	ctx := context.Background()
	m := tetRowMesh(t, 16)

	bricks, err := Partition(m, Options{MaxBricks: 4})
	require.NoError(t, err)

	rc := resource.NewController(resource.Config{
		MaxBackgroundWorkers: 1,
		MemoryLimitBytes:     1 << 20,
	})
	store := blobstore.NewMemoryStore()
	man, err := Publish(ctx, store, m, bricks, PublishOptions{Resources: rc})
	require.NoError(t, err)
	assert.Len(t, man.Bricks, 4)
	assert.Equal(t, int64(0), rc.MemoryUsage())

	// Loading through the same controller funnels all reads through
	// the worker slot and the memory budget.
	_, meshes, err := Load(ctx, store, LoadOptions{Resources: rc})
	require.NoError(t, err)
	require.Len(t, meshes, 4)
	assert.Equal(t, int64(0), rc.MemoryUsage())

	total := 0
	for _, sub := range meshes {
		total += sub.Size()
	}
	assert.Equal(t, 16, total)
}

func TestPublishUnfinalized(t *testing.T) {
	ctx := context.Background()
	m := tetRowMesh(t, 4)
	bricks, err := Partition(m, Options{MaxBricks: 2})
	require.NoError(t, err)

	m.MarkMutated()
	_, err = Publish(ctx, blobstore.NewMemoryStore(), m, bricks, PublishOptions{})
	require.Error(t, err)
}

func TestLoadEmptyStore(t *testing.T) {
	_, _, err := Load(context.Background(), blobstore.NewMemoryStore(), LoadOptions{})
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}
