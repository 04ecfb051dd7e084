// Package async provides small generic helpers for running computations in
// the background and collecting their results.
//
// Async starts a function in its own goroutine and returns a *Future. The
// caller waits with Await, AwaitContext or AwaitWithTimeout, or polls with
// IsComplete. WaitAll collects several futures in argument order, and Group
// runs a batch of functions with a concurrency limit while keeping results in
// submission order, which validators use to merge concurrently produced
// results deterministically.
//
// # Usage
//
//	g := async.NewGroup[*validation.Result](ctx, 4)
//	for _, v := range validators {
//	    g.Go(func(ctx context.Context) (*validation.Result, error) {
//	        return v.ValidateAsync(ctx, instance)
//	    })
//	}
//	results, err := g.Wait()
//
// # Error Handling
//
// Functions return the error produced by the callback. A context that is done
// before the callback starts yields ctx.Err(); a panic in the callback yields
// an error wrapping ErrPanic; AwaitWithTimeout yields ErrTimeout.
package async
