package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
)

// HealthChecker implements ports.HealthChecker for the Redis dependency.
type HealthChecker struct {
	client *goredis.Client
}

// NewHealthChecker creates a Redis health checker.
func NewHealthChecker(client *goredis.Client) *HealthChecker {
	return &HealthChecker{client: client}
}

func (h *HealthChecker) Name() string { return "redis" }

func (h *HealthChecker) Ping(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}
