package blobstore

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	require.NoError(t, store.Put(ctx, "bricks/brick_00000.umesh", []byte("payload")))

	blob, err := store.Open(ctx, "bricks/brick_00000.umesh")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(7), blob.Size())

	data, err := io.ReadAll(NewReader(ctx, blob))
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	raw, err := blob.(Mappable).Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), raw)
}

func TestLocalStoreCreateStreams(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	w, err := store.Create(ctx, "out.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte("hello "))
	require.NoError(t, err)
	_, err = w.Write([]byte("bricks"))
	require.NoError(t, err)

	// Not visible until Close.
	_, err = store.Open(ctx, "out.bin")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, w.Close())

	blob, err := store.Open(ctx, "out.bin")
	require.NoError(t, err)
	defer blob.Close()
	assert.Equal(t, int64(12), blob.Size())
}

func TestLocalStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	require.NoError(t, store.Put(ctx, "a/one", []byte("1")))
	require.NoError(t, store.Put(ctx, "a/two", []byte("2")))
	require.NoError(t, store.Put(ctx, "b/three", []byte("3")))

	names, err := store.List(ctx, "a/")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a/one", "a/two"}, names)

	require.NoError(t, store.Delete(ctx, "a/one"))
	require.NoError(t, store.Delete(ctx, "a/one")) // idempotent

	_, err = store.Open(ctx, "a/one")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Open(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "k", []byte("v")))
	blob, err := store.Open(ctx, "k")
	require.NoError(t, err)

	buf := make([]byte, 1)
	n, err := blob.ReadAt(ctx, buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		t.Fatal(err)
	}
	assert.Equal(t, 1, n)
	assert.Equal(t, byte('v'), buf[0])
}

func TestCompressionRoundTrip(t *testing.T) {
	payload := make([]byte, 1<<20)
	for i := range payload {
		payload[i] = byte(i / 1024) // compressible
	}

	for _, ct := range []CompressionType{CompressionLZ4, CompressionZSTD} {
		t.Run(ct.Ext(), func(t *testing.T) {
			var buf []byte
			w := NewCompressedBlockWriter(writerFunc(func(p []byte) (int, error) {
				buf = append(buf, p...)
				return len(p), nil
			}), ct, 64*1024)

			_, err := w.Write(payload)
			require.NoError(t, err)
			require.NoError(t, w.Flush())
			assert.Less(t, w.BytesWritten(), int64(len(payload)))

			got, err := DecompressAll(buf, 0, ct)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
