package umesh

import (
	"sync/atomic"

	"github.com/umeshkit/umesh/geom"
)

// FilterStats counts elements inspected and dropped by the degeneracy
// filter during import. Counters are atomic so importers may filter
// from parallel blocks; dropping is diagnostic only and never fails an
// import.
type FilterStats struct {
	Tested  atomic.Uint64
	Dropped atomic.Uint64
}

// Log emits the current counters at debug level.
func (s *FilterStats) Log(log *Logger, section string) {
	log.OrNoop().Debug("degenerate element filter",
		"section", section,
		"tested", s.Tested.Load(),
		"dropped", s.Dropped.Load(),
	)
}

// Degenerate reports whether an element with the given vertex index
// tuple is degenerate: its bounding box collapses along some axis, or
// two of its indices resolve to the same position. Degenerate elements
// must be dropped at import time, never retained.
//
// Returns an error if any index is out of range; that is a corrupt
// input, not a degeneracy.
func Degenerate(vertices []geom.Vec3, indices []int32) (bool, error) {
	bounds := geom.EmptyBox3()
	for _, idx := range indices {
		if idx < 0 || int(idx) >= len(vertices) {
			return false, &ErrIndexOutOfRange{Index: idx, Vertices: len(vertices)}
		}
		bounds = bounds.Extend(vertices[idx])
	}

	if bounds.Lower.X == bounds.Upper.X ||
		bounds.Lower.Y == bounds.Upper.Y ||
		bounds.Lower.Z == bounds.Upper.Z {
		return true, nil
	}

	for i := 0; i < len(indices); i++ {
		for j := i + 1; j < len(indices); j++ {
			if vertices[indices[i]] == vertices[indices[j]] {
				return true, nil
			}
		}
	}
	return false, nil
}

// FilterElement runs Degenerate and updates the stats counters.
// Returns true if the element should be kept.
func FilterElement(vertices []geom.Vec3, indices []int32, stats *FilterStats) (bool, error) {
	degen, err := Degenerate(vertices, indices)
	if err != nil {
		return false, err
	}
	if stats != nil {
		stats.Tested.Add(1)
		if degen {
			stats.Dropped.Add(1)
		}
	}
	return !degen, nil
}
