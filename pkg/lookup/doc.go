// Package lookup provides existence sources for asynchronous rules such as
// rules.Exists and rules.Unique.
//
// A Source answers one question: is this value already known to the store?
// Implementations exist for Redis sets (SISMEMBER), Postgres tables
// (SELECT EXISTS) and Mongo collections (CountDocuments with limit 1). Each
// constructor accepts the narrow interface it needs, so a *redis.Client,
// *pgxpool.Pool, pgx.Tx or *mongo.Collection can be passed directly and
// tests can substitute fakes.
//
// Cached wraps any Source with the LRU cache from package cache.
//
// ConnectRedis, ConnectPostgres and ConnectMongo open clients from env
// tagged configs (load them with package config) and retry until the server
// answers a ping. The matching *Healthcheck functions return probes for
// readiness endpoints.
//
//	var cfg lookup.RedisConfig
//	config.MustLoad(&cfg)
//	client, err := lookup.ConnectRedis(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	emails, _ := lookup.Redis(client, "users:emails")
//	emails, _ = lookup.Cached(emails, 1024, time.Minute)
//
//	engine.RuleFor(v, "Email", func(s Signup) string { return s.Email }).
//		MustAsync(rules.Unique(emails))
package lookup
