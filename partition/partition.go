package partition

import (
	"container/heap"
	"errors"
	"math"

	umesh "github.com/umeshkit/umesh"
	"github.com/umeshkit/umesh/internal/parallel"
	"github.com/umeshkit/umesh/queue"
)

var (
	// ErrUnsplittableBrick means a brick above the leaf threshold has
	// all element centers coincident, so no plane can separate them.
	ErrUnsplittableBrick = errors.New("cannot split brick - all element centers coincide")

	// ErrBadLimits means the options give the splitter no way to
	// terminate.
	ErrBadLimits = errors.New("partition requires a positive max brick count or a leaf threshold above one")
)

// Options controls the partitioner.
type Options struct {
	// MaxBricks stops splitting once this many bricks exist. Zero
	// means unbounded, in which case LeafThreshold must be set.
	MaxBricks int

	// LeafThreshold stops a brick from being split once its element
	// count drops below this value. Zero means split until MaxBricks
	// is reached.
	LeafThreshold int

	Logger *umesh.Logger
}

const (
	numPlanesPerAxis = 15
	planeFraction    = 1.0 / 16.0
)

// Partition subdivides the mesh's elements into bricks. Every element
// lands in exactly one brick; splitting greedily halves the brick
// with the most elements until MaxBricks is reached or the biggest
// brick falls below LeafThreshold. Fewer than MaxBricks bricks come
// back when the elements run out first, since a single-element brick
// cannot be split further. The mesh must be finalized.
func Partition(m *umesh.Mesh, opts Options) ([]*Brick, error) {
	if !m.Finalized() {
		return nil, umesh.ErrNotFinalized
	}

	maxBricks := opts.MaxBricks
	if maxBricks <= 0 {
		if opts.LeafThreshold <= 1 {
			return nil, ErrBadLimits
		}
		maxBricks = math.MaxInt
	}
	leafThreshold := opts.LeafThreshold
	if leafThreshold < 1 {
		leafThreshold = 1
	}

	log := opts.Logger.OrNoop()

	root, err := newBrick(m, m.CreateAllPrimRefs())
	if err != nil {
		return nil, err
	}

	pq := &queue.PriorityQueue[*Brick]{Descending: true}
	heap.Push(pq, &queue.PriorityQueueItem[*Brick]{
		Value:    root,
		Priority: float64(root.NumPrims()),
	})

	for pq.Len() < maxBricks {
		biggest := pq.Top().Value
		if biggest.NumPrims() < leafThreshold {
			break
		}
		// A single element can never be separated from itself.
		if biggest.NumPrims() <= 1 {
			break
		}
		heap.Pop(pq)

		left, right, err := splitBrick(m, biggest)
		if err != nil {
			return nil, err
		}

		log.Debug("split brick",
			"parent_prims", biggest.NumPrims(),
			"left_prims", left.NumPrims(),
			"right_prims", right.NumPrims(),
			"bricks", pq.Len()+2,
		)

		heap.Push(pq, &queue.PriorityQueueItem[*Brick]{Value: left, Priority: float64(left.NumPrims())})
		heap.Push(pq, &queue.PriorityQueueItem[*Brick]{Value: right, Priority: float64(right.NumPrims())})
	}

	bricks := make([]*Brick, 0, pq.Len())
	for _, item := range pq.Items {
		item.Value.centers = nil
		bricks = append(bricks, item.Value)
	}
	return bricks, nil
}

// splitCandidate is one axis-aligned plane through the centroid
// bounds.
type splitCandidate struct {
	axis   int
	pos    float32
	weight float64
}

// splitBrick finds the lowest-weight valid plane and partitions the
// brick's elements across it.
func splitBrick(m *umesh.Mesh, b *Brick) (*Brick, *Brick, error) {
	best, countL, ok := chooseSplitPlane(b)
	if !ok {
		return nil, nil, ErrUnsplittableBrick
	}

	leftPrims := make([]umesh.PrimRef, 0, countL)
	rightPrims := make([]umesh.PrimRef, 0, len(b.Prims)-countL)
	for i, pr := range b.Prims {
		if b.centers[i].Axis(best.axis) < best.pos {
			leftPrims = append(leftPrims, pr)
		} else {
			rightPrims = append(rightPrims, pr)
		}
	}

	left, err := newBrick(m, leftPrims)
	if err != nil {
		return nil, nil, err
	}
	right, err := newBrick(m, rightPrims)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// chooseSplitPlane evaluates 15 evenly spaced planes per axis across
// the centroid bounds and returns the candidate with the minimum
// weight. The weight prefers balanced splits along the brick's long
// axis:
//
//	(0.1 + imbalance) * maxExtent / extentAlongAxis
//
// Candidates that would leave either side empty are discarded; ok is
// false when no candidate survives.
func chooseSplitPlane(b *Brick) (best splitCandidate, bestCountL int, ok bool) {
	n := len(b.Prims)
	centSize := b.CentBounds.Size()
	brickSize := b.Bounds.Size()
	maxExtent := b.Bounds.MaxExtent()

	var planes [3][numPlanesPerAxis]float32
	for axis := 0; axis < 3; axis++ {
		lo := b.CentBounds.Lower.Axis(axis)
		for k := 0; k < numPlanesPerAxis; k++ {
			planes[axis][k] = lo + float32(k+1)*planeFraction*centSize.Axis(axis)
		}
	}

	// One blocked pass counts, for every plane at once, the elements
	// whose center falls on its lower side.
	type counts struct {
		left [3][numPlanesPerAxis]int
	}
	total := parallel.Reduce(n, 16*1024, counts{},
		func(begin, end int) counts {
			var c counts
			for i := begin; i < end; i++ {
				for axis := 0; axis < 3; axis++ {
					v := b.centers[i].Axis(axis)
					for k := 0; k < numPlanesPerAxis; k++ {
						if v < planes[axis][k] {
							c.left[axis][k]++
						}
					}
				}
			}
			return c
		},
		func(acc, c counts) counts {
			for axis := 0; axis < 3; axis++ {
				for k := 0; k < numPlanesPerAxis; k++ {
					acc.left[axis][k] += c.left[axis][k]
				}
			}
			return acc
		})

	best.weight = math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		extent := math.Max(1e-10, float64(brickSize.Axis(axis)))
		for k := 0; k < numPlanesPerAxis; k++ {
			countL := total.left[axis][k]
			countR := n - countL
			if countL == 0 || countR == 0 {
				continue
			}
			imbalance := math.Abs(float64(countL-countR)) / float64(n)
			weight := (0.1 + imbalance) * float64(maxExtent) / extent
			if weight < best.weight {
				best = splitCandidate{axis: axis, pos: planes[axis][k], weight: weight}
				bestCountL = countL
				ok = true
			}
		}
	}
	return best, bestCountL, ok
}
