package async

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Group runs functions concurrently with an upper bound on how many run at
// once and returns their results in submission order. The first error
// cancels the context passed to the other functions.
type Group[U any] struct {
	ctx     context.Context
	cancel  context.CancelFunc
	sem     *semaphore.Weighted
	futures []*Future[U]

	mu  sync.Mutex
	err error
}

// NewGroup creates a group bound to ctx. limit <= 0 means unbounded.
func NewGroup[U any](ctx context.Context, limit int) *Group[U] {
	ctx, cancel := context.WithCancel(ctx)
	g := &Group[U]{ctx: ctx, cancel: cancel}
	if limit > 0 {
		g.sem = semaphore.NewWeighted(int64(limit))
	}
	return g
}

// Go schedules fn. It does not block; waiting for a free slot happens inside
// the spawned goroutine, so a cancelled ctx releases waiters with ctx.Err().
func (g *Group[U]) Go(fn func(context.Context) (U, error)) {
	g.futures = append(g.futures, Async(g.ctx, fn, g.run))
}

func (g *Group[U]) run(ctx context.Context, fn func(context.Context) (U, error)) (U, error) {
	if g.sem != nil {
		if err := g.sem.Acquire(ctx, 1); err != nil {
			var zero U
			g.fail(err)
			return zero, err
		}
		defer g.sem.Release(1)
	}
	res, err := fn(ctx)
	if err != nil {
		g.fail(err)
	}
	return res, err
}

func (g *Group[U]) fail(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err == nil {
		g.err = err
		g.cancel()
	}
}

// Wait blocks until every scheduled function has returned. Results keep
// submission order. The error is the first one returned by any function,
// so a fault is not masked by the cancellations it triggered.
func (g *Group[U]) Wait() ([]U, error) {
	results, err := WaitAll(g.futures...)
	g.cancel()

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return results, g.err
	}
	return results, err
}

// Len returns the number of scheduled functions.
func (g *Group[U]) Len() int {
	return len(g.futures)
}
