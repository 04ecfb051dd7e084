package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validation/pkg/async"
)

func TestGroup(t *testing.T) {
	t.Parallel()

	t.Run("keeps submission order", func(t *testing.T) {
		g := async.NewGroup[int](context.Background(), 0)
		for i, delay := range []int{30, 0, 15} {
			g.Go(func(context.Context) (int, error) {
				time.Sleep(time.Duration(delay) * time.Millisecond)
				return i, nil
			})
		}

		results, err := g.Wait()
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2}, results)
		assert.Equal(t, 3, g.Len())
	})

	t.Run("respects limit", func(t *testing.T) {
		var running, peak atomic.Int32
		g := async.NewGroup[struct{}](context.Background(), 2)
		for range 8 {
			g.Go(func(context.Context) (struct{}, error) {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				running.Add(-1)
				return struct{}{}, nil
			})
		}

		_, err := g.Wait()
		require.NoError(t, err)
		assert.LessOrEqual(t, peak.Load(), int32(2))
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		g := async.NewGroup[int](ctx, 1)
		g.Go(func(context.Context) (int, error) { return 1, nil })

		_, err := g.Wait()
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("first error cancels the others", func(t *testing.T) {
		boom := errors.New("boom")
		g := async.NewGroup[int](context.Background(), 0)
		g.Go(func(ctx context.Context) (int, error) {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(time.Second):
				return 1, nil
			}
		})
		g.Go(func(context.Context) (int, error) { return 0, boom })

		start := time.Now()
		_, err := g.Wait()
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("empty group", func(t *testing.T) {
		results, err := async.NewGroup[int](context.Background(), 3).Wait()
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
