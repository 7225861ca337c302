// Package parallel provides blocked fork-join loops over index ranges.
//
// All helpers are synchronous: they return once every block has been
// processed. Workers are plain goroutines fed from a jobs channel,
// sized to GOMAXPROCS.
package parallel

import (
	"runtime"
	"sync"
)

type block struct {
	begin, end int
}

// ForBlocked runs fn over [begin,end) in blocks of at most grain
// indices. Blocks are disjoint, so fn may write to per-index output
// slots without synchronization; any shared accumulation inside fn
// must be guarded by the caller.
//
// A grain of <= 0 selects a default of 16*1024.
func ForBlocked(begin, end, grain int, fn func(blockBegin, blockEnd int)) {
	if end <= begin {
		return
	}
	if grain <= 0 {
		grain = 16 * 1024
	}

	n := end - begin
	if n <= grain {
		fn(begin, end)
		return
	}

	numWorkers := runtime.GOMAXPROCS(0)
	numBlocks := (n + grain - 1) / grain
	if numWorkers > numBlocks {
		numWorkers = numBlocks
	}

	jobs := make(chan block, numWorkers)
	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range jobs {
				fn(b.begin, b.end)
			}
		}()
	}

	for b := begin; b < end; b += grain {
		e := b + grain
		if e > end {
			e = end
		}
		jobs <- block{begin: b, end: e}
	}
	close(jobs)
	wg.Wait()
}

// Reduce runs a blocked reduction over [0,n): each block computes a
// partial result via fn, and combine folds partials into init. The
// combine step runs under a single mutex, so the combined result is
// correct although the accumulation order is scheduling-dependent.
func Reduce[T any](n, grain int, init T, fn func(blockBegin, blockEnd int) T, combine func(acc, part T) T) T {
	if n <= 0 {
		return init
	}

	var mu sync.Mutex
	acc := init
	ForBlocked(0, n, grain, func(begin, end int) {
		part := fn(begin, end)
		mu.Lock()
		acc = combine(acc, part)
		mu.Unlock()
	})
	return acc
}
