package umesh

import (
	"github.com/umeshkit/umesh/geom"
	"github.com/umeshkit/umesh/internal/parallel"
)

// Attribute is a named per-vertex scalar field with a cached inclusive
// value range. The range is stale until Finalize is called after the
// values have been populated or mutated.
type Attribute struct {
	Name   string
	Values []float32

	valueRange geom.Range1
	finalized  bool
}

// NewAttribute creates an attribute with room for n values.
func NewAttribute(n int) *Attribute {
	return &Attribute{Values: make([]float32, n)}
}

// Finalize recomputes the cached value range. Safe to call on an
// empty attribute; idempotent.
func (a *Attribute) Finalize() {
	a.valueRange = parallel.Reduce(len(a.Values), 16*1024, geom.EmptyRange1(),
		func(begin, end int) geom.Range1 {
			r := geom.EmptyRange1()
			for i := begin; i < end; i++ {
				r = r.Extend(a.Values[i])
			}
			return r
		},
		func(acc, part geom.Range1) geom.Range1 {
			return acc.ExtendRange(part)
		})
	a.finalized = true
}

// ValueRange returns the cached inclusive value range.
func (a *Attribute) ValueRange() (geom.Range1, error) {
	if !a.finalized {
		return geom.Range1{}, ErrNotFinalized
	}
	return a.valueRange, nil
}
