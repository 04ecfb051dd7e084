// Package cache provides a generic, thread-safe LRU cache with optional
// time-to-live for each entry.
//
// The lookup package uses it to remember the answers of remote existence
// checks so that async rules do not hit Redis, Postgres or MongoDB for every
// validation of the same value.
//
// # Usage
//
//	c := cache.NewLRUCache[string, bool](1024, cache.WithTTL(time.Minute))
//	c.Put("alice@example.com", true)
//	if taken, ok := c.Get("alice@example.com"); ok {
//	    // ...
//	}
//
// All operations are O(1) and guarded by a single mutex.
package cache
