package partition

import (
	"bytes"
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	umesh "github.com/umeshkit/umesh"
	"github.com/umeshkit/umesh/blobstore"
	"github.com/umeshkit/umesh/codec"
	"github.com/umeshkit/umesh/manifest"
	"github.com/umeshkit/umesh/resource"
)

// LoadOptions controls how bricks are read back from a blob store.
type LoadOptions struct {
	// Resources bounds read concurrency, memory and download
	// throughput, sharing the same controller a publisher would use.
	// Nil means no limits and sequential loading.
	Resources *resource.Controller

	Logger *umesh.Logger
}

// LoadBrick reads one brick of a published partition back into a mesh.
// The manifest supplies the path and the compression the brick was
// written with.
func LoadBrick(ctx context.Context, store blobstore.BlobStore, man *manifest.Manifest, info manifest.BrickInfo, opts LoadOptions) (*umesh.Mesh, error) {
	rc := opts.Resources

	blob, err := store.Open(ctx, info.Path)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	// Charge the stored size against the memory budget; the mapped
	// fast path below shares pages with the OS but decompression still
	// materializes the payload.
	if err := rc.AcquireMemory(ctx, blob.Size()); err != nil {
		return nil, err
	}
	defer rc.ReleaseMemory(blob.Size())

	var data []byte
	if mb, ok := blob.(blobstore.Mappable); ok {
		data, err = mb.Bytes()
	} else {
		var r io.Reader = blobstore.NewReader(ctx, blob)
		if rc != nil {
			r = resource.NewRateLimitedReader(r, rc, ctx)
		}
		data, err = io.ReadAll(r)
	}
	if err != nil {
		return nil, err
	}

	if ct := blobstore.CompressionByExt(man.Compression); ct != blobstore.CompressionNone {
		data, err = blobstore.DecompressAll(data, 0, ct)
		if err != nil {
			return nil, err
		}
	}

	return codec.Read(bytes.NewReader(data))
}

// Load reads the current manifest and all its bricks. Bricks come back
// in manifest order, so merging them reproduces the source mesh's
// elements (in brick order, not original order). With a resource
// controller the bricks download in parallel, one worker slot each.
func Load(ctx context.Context, store blobstore.BlobStore, opts LoadOptions) (*manifest.Manifest, []*umesh.Mesh, error) {
	man, err := manifest.LoadCurrent(ctx, store)
	if err != nil {
		return nil, nil, err
	}
	log := opts.Logger.OrNoop()

	meshes := make([]*umesh.Mesh, len(man.Bricks))

	rc := opts.Resources
	if rc == nil {
		for i, info := range man.Bricks {
			meshes[i], err = LoadBrick(ctx, store, man, info, opts)
			if err != nil {
				return nil, nil, err
			}
		}
		return man, meshes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, info := range man.Bricks {
		i, info := i, info
		g.Go(func() error {
			if !rc.TryAcquireBackground() {
				log.Debug("all load workers busy", "path", info.Path)
				if err := rc.AcquireBackground(gctx); err != nil {
					return err
				}
			}
			defer rc.ReleaseBackground()

			sub, err := LoadBrick(gctx, store, man, info, opts)
			if err != nil {
				return err
			}
			meshes[i] = sub
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return man, meshes, nil
}
