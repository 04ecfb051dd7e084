package lookup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SetMemberChecker is the subset of redis.Cmdable used by Redis.
type SetMemberChecker interface {
	SIsMember(ctx context.Context, key string, member any) *redis.BoolCmd
}

type redisSource struct {
	client SetMemberChecker
	key    string
}

// Redis reports whether a value is a member of the Redis set stored at key.
func Redis(client SetMemberChecker, key string) (Source, error) {
	if key == "" {
		return nil, ErrInvalidIdentifier
	}
	return &redisSource{client: client, key: key}, nil
}

func (s *redisSource) Exists(ctx context.Context, value string) (bool, error) {
	found, err := s.client.SIsMember(ctx, s.key, value).Result()
	if err != nil {
		return false, errors.Join(ErrLookupFailed, fmt.Errorf("redis set %s: %w", s.key, err))
	}
	return found, nil
}

// RedisConfig configures ConnectRedis.
type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"` // ConnectionURL is the URL of the server, e.g. "redis://:password@localhost:6379/0".
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`                      // RetryAttempts is the number of connection attempts.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`                     // RetryInterval is the pause between attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`                   // ConnectTimeout bounds the whole connection procedure.
}

// ConnectRedis opens a client and pings it, retrying up to RetryAttempts
// times with RetryInterval between attempts.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisURL, err)
	}

	for range cfg.RetryAttempts {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrRedisNotReady
}

// RedisHealthcheck returns a probe suitable for readiness endpoints.
func RedisHealthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
