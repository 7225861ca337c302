// Package minio provides a BlobStore implementation using the MinIO
// client.
//
// MinIO is an S3-compatible object storage system commonly run next to
// HPC clusters, which makes it a natural target for publishing
// partitioned mesh bricks without leaving the machine room. The
// package also works against Ceph, SeaweedFS, Garage and other
// S3-compatible stores.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minio.NewStore(client, "my-bucket", "meshes/lander/")
//
// # Features
//
//   - Works with any S3-compatible storage (Ceph, Garage, SeaweedFS)
//   - Streaming uploads for large bricks
//   - Air-gap friendly (no AWS dependencies required)
package minio
