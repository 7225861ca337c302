// Package s3 provides S3-backed implementations of
// blobstore.BlobStore for partitioned mesh artifacts.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	client := s3.NewFromConfig(cfg)
//	store := s3.NewStore(client, "my-bucket", "meshes/jets/")
//
// # Features
//
//   - Range reads so bounds sidecars can be fetched without the bricks
//   - Multipart uploads with CRC32C checksums for large bricks
//   - Automatic pagination for listing
//   - Configurable prefix for keeping partitions isolated
//
// ExpressStore targets S3 Express One Zone directory buckets for
// latency-sensitive readers. DDBCommitStore layers DynamoDB
// conditional writes on top of a Store so concurrent publishers can
// advance the CURRENT manifest pointer atomically.
package s3
