package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForBlockedCoversRange(t *testing.T) {
	const n = 100_000
	seen := make([]int32, n)

	ForBlocked(0, n, 1024, func(begin, end int) {
		for i := begin; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	})

	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times", i, c)
		}
	}
}

func TestForBlockedEmptyRange(t *testing.T) {
	called := false
	ForBlocked(10, 10, 16, func(begin, end int) { called = true })
	assert.False(t, called)
}

func TestForBlockedSmallRangeRunsInline(t *testing.T) {
	var total int64
	ForBlocked(0, 10, 1024, func(begin, end int) {
		for i := begin; i < end; i++ {
			total += int64(i)
		}
	})
	assert.Equal(t, int64(45), total)
}

func TestReduceSum(t *testing.T) {
	const n = 50_000
	got := Reduce(n, 777, int64(0), func(begin, end int) int64 {
		var s int64
		for i := begin; i < end; i++ {
			s += int64(i)
		}
		return s
	}, func(acc, part int64) int64 { return acc + part })

	want := int64(n) * int64(n-1) / 2
	assert.Equal(t, want, got)
}

func TestReduceEmptyReturnsInit(t *testing.T) {
	got := Reduce(0, 16, 42, func(begin, end int) int { return 1 },
		func(acc, part int) int { return acc + part })
	assert.Equal(t, 42, got)
}
