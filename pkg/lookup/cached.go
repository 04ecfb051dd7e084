package lookup

import (
	"context"
	"time"

	"github.com/dmitrymomot/validation/pkg/cache"
)

type cachedSource struct {
	src   Source
	cache *cache.LRUCache[string, bool]
}

// Cached memoizes answers of src in an LRU cache holding up to capacity
// values for ttl each. A zero ttl keeps answers until they are evicted.
// Errors are never cached.
func Cached(src Source, capacity int, ttl time.Duration) (Source, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &cachedSource{
		src:   src,
		cache: cache.NewLRUCache[string, bool](capacity, cache.WithTTL(ttl)),
	}, nil
}

func (s *cachedSource) Exists(ctx context.Context, value string) (bool, error) {
	if found, ok := s.cache.Get(value); ok {
		return found, nil
	}
	found, err := s.src.Exists(ctx, value)
	if err != nil {
		return false, err
	}
	s.cache.Put(value, found)
	return found, nil
}
