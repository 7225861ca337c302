// Package blobstore provides storage abstraction for partitioned
// mesh artifacts: brick files, bounds sidecars and manifests.
//
// BlobStore is the interface for reading and writing immutable data
// blobs. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with mmap reads and atomic writes
//   - MemoryStore: In-memory store for tests
//   - s3.Store: Amazon S3 with range reads and parallel uploads
//   - minio.Store: S3-compatible object stores via the MinIO client
//
// Optional block compression (LZ4/ZSTD) is available for publishers
// through CompressedBlockWriter; readers undo it with DecompressAll.
package blobstore
