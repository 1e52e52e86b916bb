package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis holds the connection backing the admin session registry. Timeouts
// are short on purpose: session checks sit on the request path and must fail
// fast when Redis is down rather than stall the handler.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to the given address. The client pools connections
// internally; one instance is shared process-wide.
func NewRedis(addr string) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &Redis{Client: client}
}

// Healthy reports whether Redis answers a ping. Used by the health endpoint.
func (r *Redis) Healthy(ctx context.Context) bool {
	if r == nil || r.Client == nil {
		return false
	}
	return r.Client.Ping(ctx).Err() == nil
}
