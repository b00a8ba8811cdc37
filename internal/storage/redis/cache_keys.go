package redis

import (
	"context"
	"fmt"
	"time"
)

const (
	// Actor snapshots and job details expire after one hour; mutations
	// delete the key explicitly before the TTL kicks in.
	ActorCacheTTL = time.Hour
	JobCacheTTL   = time.Hour

	RateLimitWindowTTL = time.Minute
)

func ActorKey(role string, chatID int64) string {
	return fmt.Sprintf("actor:%s:%d", role, chatID)
}

func JobKey(jobID int64) string {
	return fmt.Sprintf("entity:job:%d", jobID)
}

func SessionKey(chatID int64) string {
	return fmt.Sprintf("session:chat:%d", chatID)
}

func RateLimitKey(chatID int64) string {
	return fmt.Sprintf("ratelimit:chat:%d", chatID)
}

func (c *Cache) IncrementUserRateLimit(ctx context.Context, chatID int64) (int64, error) {
	return c.IncrementWithExpiry(ctx, RateLimitKey(chatID), RateLimitWindowTTL)
}
