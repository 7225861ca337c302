// Package resource bounds the memory, concurrency and IO that
// background mesh work is allowed to consume. The partition publisher
// runs one goroutine per brick; the controller keeps the number of
// in-flight extractions and the upload throughput within configured
// limits so a publish cannot starve an interactive viewer sharing the
// machine.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds the limits a Controller enforces. Zero values disable
// the corresponding limit, except MaxBackgroundWorkers which defaults
// to one so brick work is serialized rather than unbounded.
type Config struct {
	// MemoryLimitBytes caps extracted-mesh and decode buffers held at
	// once. 0 tracks usage without enforcing a cap.
	MemoryLimitBytes int64

	// MaxBackgroundWorkers caps concurrent brick extractions, uploads
	// and downloads.
	MaxBackgroundWorkers int64

	// IOLimitBytesPerSec throttles brick transfer throughput. 0 means
	// unthrottled.
	IOLimitBytesPerSec int64
}

// Controller hands out memory reservations, worker slots and IO
// tokens. A nil *Controller is valid for the memory methods and means
// unlimited, which lets loaders take an optional controller without
// branching on every reservation.
type Controller struct {
	cfg Config

	memSem  *semaphore.Weighted // nil when no hard memory cap
	memUsed atomic.Int64

	bgSem *semaphore.Weighted

	ioLimiter *rate.Limiter
}

// NewController creates a controller enforcing cfg.
func NewController(cfg Config) *Controller {
	if cfg.MaxBackgroundWorkers <= 0 {
		cfg.MaxBackgroundWorkers = 1
	}

	c := &Controller{
		cfg:   cfg,
		bgSem: semaphore.NewWeighted(cfg.MaxBackgroundWorkers),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// AcquireMemory reserves bytes against the memory budget, blocking
// until enough is free or ctx is canceled. Nil receiver and
// non-positive sizes are no-ops.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// TryAcquireMemory reserves bytes without blocking. The publisher uses
// this as a fast path so it only logs when a brick actually has to
// wait on the budget.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil || bytes <= 0 {
		return true
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return false
		}
	}

	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory returns a reservation made by AcquireMemory or
// TryAcquireMemory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the bytes currently reserved.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireBackground claims a worker slot, blocking while all slots are
// taken. Unlike the memory methods it requires a non-nil receiver:
// callers running without a controller skip the slot protocol entirely.
func (c *Controller) AcquireBackground(ctx context.Context) error {
	return c.bgSem.Acquire(ctx, 1)
}

// TryAcquireBackground claims a worker slot without blocking.
func (c *Controller) TryAcquireBackground() bool {
	return c.bgSem.TryAcquire(1)
}

// ReleaseBackground returns a worker slot.
func (c *Controller) ReleaseBackground() {
	c.bgSem.Release(1)
}

// AcquireIO waits until the throughput limit admits the given number
// of bytes.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	return c.ioLimiter.WaitN(ctx, bytes)
}
