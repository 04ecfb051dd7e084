package async

import (
	"context"
	"fmt"
	"time"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext waits until the future completes or ctx is done, whichever
// happens first. The underlying computation is not stopped by ctx here;
// it observes the context it was started with.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout waits for completion for at most timeout and returns
// ErrTimeout when the future is still running.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.result, f.err
	case <-timer.C:
		var zero U
		return zero, ErrTimeout
	}
}

// Done is closed when the computation has finished.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// IsComplete checks if the asynchronous function is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async executes fn in its own goroutine and returns a Future.
// A context that is already done completes the future with ctx.Err()
// without calling fn. A panic inside fn completes the future with an
// error wrapping ErrPanic.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		f.result, f.err = call(ctx, param, fn)
	}()

	return f
}

func call[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) (res U, err error) {
	if err := ctx.Err(); err != nil {
		return res, err
	}

	defer func() {
		if r := recover(); r != nil {
			var zero U
			res, err = zero, fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	return fn(ctx, param)
}

// WaitAll waits for every future and returns their results in argument
// order. The returned error is the first non-nil error in argument order.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	var firstErr error

	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return results, firstErr
}
