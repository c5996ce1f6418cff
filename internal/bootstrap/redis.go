package bootstrap

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// OpenRedis connects to redis when an address is configured. An empty
// address returns a nil client: caching is optional and a nil client
// disables it.
func OpenRedis(ctx context.Context, addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}
