package lookup

import "context"

// Source answers whether a value is already known to a backing store.
// Implementations must be safe for concurrent use.
type Source interface {
	Exists(ctx context.Context, value string) (bool, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, value string) (bool, error)

func (f SourceFunc) Exists(ctx context.Context, value string) (bool, error) {
	return f(ctx, value)
}

// Static is an in-memory Source over a fixed set of values.
func Static(values ...string) Source {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return SourceFunc(func(ctx context.Context, value string) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		_, ok := set[value]
		return ok, nil
	})
}
