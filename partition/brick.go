// Package partition subdivides a mesh's element set into bricks in
// object space: each element belongs to exactly one brick, bricks may
// overlap spatially. Splitting is greedy, always cutting the brick
// with the most elements, and each brick can then be extracted into a
// standalone mesh with a dense local vertex index space.
package partition

import (
	umesh "github.com/umeshkit/umesh"
	"github.com/umeshkit/umesh/geom"
	"github.com/umeshkit/umesh/internal/parallel"
)

// Brick is one object-space partition cell: a set of elements, the
// box bounding them, and the box bounding their centers. The centroid
// bounds only steer split-plane selection, never element assignment.
type Brick struct {
	Prims      []umesh.PrimRef
	Bounds     geom.Box3
	CentBounds geom.Box3

	// Element centers, same order as Prims; kept so splitting this
	// brick does not recompute per-element bounds.
	centers []geom.Vec3
}

// NumPrims returns the number of elements in the brick.
func (b *Brick) NumPrims() int {
	return len(b.Prims)
}

type brickPart struct {
	bounds geom.Box3
	cent   geom.Box3
	err    error
}

// newBrick computes element centers and both bounding boxes in one
// parallel pass over the prims.
func newBrick(m *umesh.Mesh, prims []umesh.PrimRef) (*Brick, error) {
	b := &Brick{
		Prims:   prims,
		centers: make([]geom.Vec3, len(prims)),
	}

	part := parallel.Reduce(len(prims), 16*1024,
		brickPart{bounds: geom.EmptyBox3(), cent: geom.EmptyBox3()},
		func(begin, end int) brickPart {
			p := brickPart{bounds: geom.EmptyBox3(), cent: geom.EmptyBox3()}
			for i := begin; i < end; i++ {
				pb, err := m.PrimBounds(prims[i])
				if err != nil {
					p.err = err
					return p
				}
				c := pb.Center()
				b.centers[i] = c
				p.bounds = p.bounds.ExtendBox(pb)
				p.cent = p.cent.Extend(c)
			}
			return p
		},
		func(acc, p brickPart) brickPart {
			if acc.err == nil {
				acc.err = p.err
			}
			acc.bounds = acc.bounds.ExtendBox(p.bounds)
			acc.cent = acc.cent.ExtendBox(p.cent)
			return acc
		})
	if part.err != nil {
		return nil, part.err
	}

	b.Bounds = part.bounds
	b.CentBounds = part.cent
	return b, nil
}
