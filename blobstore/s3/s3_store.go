package s3

import (
	"context"
	"path"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/umeshkit/umesh/blobstore"
)

// Store implements blobstore.BlobStore for Amazon S3. Brick payloads
// stream through multipart uploads; reads go through ranged GetObject
// calls so a consumer can pull a bounds sidecar without fetching the
// brick it belongs to.
type Store struct {
	client   Client
	bucket   string
	prefix   string
	cfg      UploadConfig
	uploader *manager.Uploader
}

// NewStore creates an S3 blob store with production upload defaults.
// rootPrefix is prepended to all keys (e.g. "meshes/jets/").
func NewStore(client Client, bucket, rootPrefix string) *Store {
	return NewStoreWithConfig(client, bucket, rootPrefix, DefaultUploadConfig())
}

// NewStoreWithConfig creates an S3 blob store with explicit upload
// settings.
func NewStoreWithConfig(client Client, bucket, rootPrefix string, cfg UploadConfig) *Store {
	return &Store{
		client:   client,
		bucket:   bucket,
		prefix:   rootPrefix,
		cfg:      cfg,
		uploader: newUploader(client, cfg),
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open opens a blob for reading.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	return openBlob(ctx, s.client, s.bucket, s.key(name))
}

// Create starts a streaming upload. The object becomes visible only
// when Close returns nil; S3 never exposes partial multipart uploads.
func (s *Store) Create(ctx context.Context, name string) (blobstore.WritableBlob, error) {
	return newStreamingWritableBlob(ctx, s.uploader, s.bucket, s.key(name), s.cfg.EnableChecksum), nil
}

// Put uploads a small blob in one request, with CRC32C validation when
// the store has checksums enabled.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	if s.cfg.EnableChecksum {
		return putWithChecksum(ctx, s.client, s.bucket, s.key(name), data)
	}
	return putPlain(ctx, s.client, s.bucket, s.key(name), data)
}

// Delete removes a blob. Deleting a missing key is not an error in S3.
func (s *Store) Delete(ctx context.Context, name string) error {
	return deleteObject(ctx, s.client, s.bucket, s.key(name))
}

// List returns all keys under the root whose name has the prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	return listObjects(ctx, s.client, s.bucket, s.key(prefix), s.prefix)
}

var _ blobstore.BlobStore = (*Store)(nil)
