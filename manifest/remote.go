package manifest

import (
	"context"
	"errors"
	"io"

	"github.com/umeshkit/umesh/blobstore"
	"github.com/umeshkit/umesh/codec"
)

// Publish writes a manifest to a blob store and advances the CURRENT
// pointer. With a plain store the pointer update is last-writer-wins;
// stores with conditional CURRENT semantics (s3.DDBCommitStore,
// s3.ExpressStore) turn concurrent publishes into an error instead.
func Publish(ctx context.Context, store blobstore.BlobStore, m *Manifest, c codec.Codec) error {
	if c == nil {
		c = codec.Default
	}

	prev, err := LoadCurrent(ctx, store)
	if err != nil && !errors.Is(err, blobstore.ErrNotFound) {
		return err
	}
	if prev != nil {
		m.ID = prev.ID
	}

	m.Version = CurrentVersion
	m.ID++
	m.Codec = c.Name()

	data, err := c.Marshal(m)
	if err != nil {
		return err
	}

	filename := FileName(m.ID)
	if err := store.Put(ctx, filename, data); err != nil {
		return err
	}

	return store.Put(ctx, CurrentFileName, []byte(filename))
}

// LoadCurrent resolves CURRENT and loads the manifest it points at.
// Returns blobstore.ErrNotFound when nothing has been published yet.
func LoadCurrent(ctx context.Context, store blobstore.BlobStore) (*Manifest, error) {
	name, err := readAll(ctx, store, CurrentFileName)
	if err != nil {
		return nil, err
	}

	data, err := readAll(ctx, store, string(name))
	if err != nil {
		return nil, err
	}

	return decode(data)
}

func readAll(ctx context.Context, store blobstore.BlobStore, name string) ([]byte, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	return io.ReadAll(blobstore.NewReader(ctx, blob))
}
