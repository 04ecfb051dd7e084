package lookup

import "errors"

var (
	ErrLookupFailed      = errors.New("lookup: query failed")
	ErrInvalidIdentifier = errors.New("lookup: empty table, column, key or field name")
	ErrInvalidCapacity   = errors.New("lookup: cache capacity must be positive")

	ErrFailedToParseRedisURL = errors.New("lookup: failed to parse redis connection string")
	ErrRedisNotReady         = errors.New("lookup: redis did not become ready within the given time period")
	ErrFailedToParsePGConfig = errors.New("lookup: failed to parse postgres config")
	ErrPostgresNotReady      = errors.New("lookup: failed to open postgres connection")
	ErrMongoNotReady         = errors.New("lookup: failed to connect to mongo")
	ErrS3Config              = errors.New("lookup: failed to load aws config")
	ErrOpenSearchNotReady    = errors.New("lookup: opensearch connection failed")
	ErrHealthcheckFailed     = errors.New("lookup: healthcheck failed")
)
