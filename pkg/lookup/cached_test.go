package lookup_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validation/pkg/lookup"
)

func TestCached(t *testing.T) {
	t.Parallel()

	calls := 0
	fail := false
	src := lookup.SourceFunc(func(_ context.Context, v string) (bool, error) {
		calls++
		if fail {
			return false, errors.New("down")
		}
		return v == "taken", nil
	})

	cached, err := lookup.Cached(src, 2, 0)
	require.NoError(t, err)

	for range 3 {
		found, err := cached.Exists(context.Background(), "taken")
		require.NoError(t, err)
		assert.True(t, found)
	}
	assert.Equal(t, 1, calls)

	fail = true
	_, err = cached.Exists(context.Background(), "new")
	require.Error(t, err)
	_, err = cached.Exists(context.Background(), "new")
	require.Error(t, err)
	assert.Equal(t, 3, calls, "errors are not cached")

	found, err := cached.Exists(context.Background(), "taken")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, calls)
}

func TestCached_InvalidCapacity(t *testing.T) {
	t.Parallel()

	_, err := lookup.Cached(lookup.Static(), 0, 0)
	assert.ErrorIs(t, err, lookup.ErrInvalidCapacity)
}
