package partition

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	umesh "github.com/umeshkit/umesh"
	"github.com/umeshkit/umesh/blobstore"
	"github.com/umeshkit/umesh/codec"
	"github.com/umeshkit/umesh/manifest"
	"github.com/umeshkit/umesh/resource"
)

// PublishOptions controls how bricks are written to a blob store.
type PublishOptions struct {
	// Compression applies block compression to each brick payload.
	Compression blobstore.CompressionType

	// Codec encodes the manifest. Nil selects codec.Default.
	Codec codec.Codec

	// Resources bounds extraction concurrency, memory and upload
	// throughput. Nil means one extraction per CPU and no other limits.
	Resources *resource.Controller

	// BrickPrefix is the key prefix for brick files. Default "bricks".
	BrickPrefix string

	// WithBounds also writes a .bb4 bounds sidecar per brick.
	WithBounds bool

	// Source is recorded in the manifest.
	Source string

	Logger *umesh.Logger
}

// Publish extracts every brick into a standalone mesh, streams the
// bricks to the store in parallel and commits a manifest. The CURRENT
// pointer only advances after all bricks are durably written, so
// readers either see the previous partition or the complete new one.
func Publish(ctx context.Context, store blobstore.BlobStore, m *umesh.Mesh, bricks []*Brick, opts PublishOptions) (*manifest.Manifest, error) {
	if !m.Finalized() {
		return nil, umesh.ErrNotFinalized
	}

	rc := opts.Resources
	if rc == nil {
		rc = resource.NewController(resource.Config{
			MaxBackgroundWorkers: int64(runtime.NumCPU()),
		})
	}
	prefix := opts.BrickPrefix
	if prefix == "" {
		prefix = "bricks"
	}
	log := opts.Logger.OrNoop()

	infos := make([]manifest.BrickInfo, len(bricks))

	g, gctx := errgroup.WithContext(ctx)
	for i, b := range bricks {
		i, b := i, b
		g.Go(func() error {
			if err := rc.AcquireBackground(gctx); err != nil {
				return err
			}
			defer rc.ReleaseBackground()

			// Coarse upper estimate of the extracted mesh's footprint.
			est := int64(b.NumPrims()) * 48
			if !rc.TryAcquireMemory(est) {
				log.Debug("memory budget exhausted, waiting",
					"want", est, "used", rc.MemoryUsage())
				if err := rc.AcquireMemory(gctx, est); err != nil {
					return err
				}
			}
			defer rc.ReleaseMemory(est)

			sub, err := Extract(m, b)
			if err != nil {
				return err
			}

			name := fmt.Sprintf("%s/brick_%05d.umesh%s", prefix, i, opts.Compression.Ext())
			size, err := writeBrick(gctx, store, rc, name, sub, opts.Compression)
			if err != nil {
				return err
			}

			if opts.WithBounds {
				bbName := fmt.Sprintf("%s/brick_%05d.bb4", prefix, i)
				if err := writeBlob(gctx, store, bbName, func(w io.Writer) error {
					return codec.WriteBounds(w, sub)
				}); err != nil {
					return err
				}
			}

			infos[i] = manifest.BrickInfo{
				Path:   name,
				Prims:  sub.Size(),
				Verts:  len(sub.Vertices),
				Size:   size,
				Bounds: b.Bounds,
			}

			log.Debug("published brick",
				"path", name,
				"prims", sub.Size(),
				"verts", len(sub.Vertices),
				"bytes", size)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bounds, err := m.Bounds()
	if err != nil {
		return nil, err
	}

	man := &manifest.Manifest{
		Source:      opts.Source,
		Compression: opts.Compression.Ext(),
		Bounds:      bounds,
		Bricks:      infos,
	}
	if err := manifest.Publish(ctx, store, man, opts.Codec); err != nil {
		return nil, err
	}

	log.Info("published partition",
		"bricks", len(bricks),
		"manifest", manifest.FileName(man.ID))
	return man, nil
}

// writeBrick streams one extracted mesh to the store, rate limited and
// optionally block compressed, and returns the stored byte count.
func writeBrick(ctx context.Context, store blobstore.BlobStore, rc *resource.Controller, name string, sub *umesh.Mesh, ct blobstore.CompressionType) (int64, error) {
	var size int64
	err := writeBlob(ctx, store, name, func(w io.Writer) error {
		limited := resource.NewRateLimitedWriter(w, rc, ctx)
		if ct == blobstore.CompressionNone {
			cw := &countingWriter{w: limited}
			if err := codec.Write(cw, sub); err != nil {
				return err
			}
			size = cw.n
			return nil
		}

		cbw := blobstore.NewCompressedBlockWriter(limited, ct, 0)
		if err := codec.Write(cbw, sub); err != nil {
			return err
		}
		if err := cbw.Flush(); err != nil {
			return err
		}
		size = cbw.BytesWritten()
		return nil
	})
	return size, err
}

// writeBlob runs fn against a writable blob and closes it, deleting
// the partial object if anything failed.
func writeBlob(ctx context.Context, store blobstore.BlobStore, name string, fn func(io.Writer) error) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}
	if err := fn(w); err != nil {
		_ = w.Close()
		_ = store.Delete(ctx, name)
		return err
	}
	if err := w.Close(); err != nil {
		_ = store.Delete(ctx, name)
		return err
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
