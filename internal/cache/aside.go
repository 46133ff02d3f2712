package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Aside implements the cache-aside pattern: if the key is cached, unmarshal
// it into dest and return. Otherwise call fetch (which must fill dest), then
// cache dest with the given TTL. When Redis is unavailable fetch runs
// directly. Cache write failures are swallowed; the database is the source of
// truth.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() error) error {
	if client != nil {
		raw, err := client.Get(ctx, key).Result()
		if err == nil {
			if unmarshalErr := json.Unmarshal([]byte(raw), dest); unmarshalErr == nil {
				return nil
			}
			// Corrupt entry; drop it and fall through to fetch.
			client.Del(ctx, key)
		}
	}

	if err := fetch(); err != nil {
		return err
	}

	if client != nil {
		if data, marshalErr := json.Marshal(dest); marshalErr == nil {
			client.Set(ctx, key, data, ttl)
		}
	}

	return nil
}
