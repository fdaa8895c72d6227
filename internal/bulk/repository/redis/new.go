package redis

import (
	"time"

	repo "ticket-srv/internal/bulk/repository"
	"ticket-srv/pkg/log"
	"ticket-srv/pkg/redis"
)

const defaultTrackingTTL = 24 * time.Hour

// implTracker implements repository.Tracker backed by Redis.
type implTracker struct {
	redis redis.IRedis
	l     log.Logger
	ttl   time.Duration
}

// New creates a new batch progress tracker backed by Redis.
// A non-positive ttl falls back to the default 24h retention.
func New(redis redis.IRedis, l log.Logger, ttl time.Duration) repo.Tracker {
	if ttl <= 0 {
		ttl = defaultTrackingTTL
	}
	return &implTracker{
		redis: redis,
		l:     l,
		ttl:   ttl,
	}
}
