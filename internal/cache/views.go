package cache

import (
	"context"
	"strconv"

	"folio/internal/middleware"

	"github.com/redis/go-redis/v9"
)

const viewKeyPrefix = "views:"

// ViewCounter tracks per-article view counts in Redis. All operations are
// best-effort: a nil client or a Redis error never fails the request.
type ViewCounter struct {
	client *redis.Client
}

// NewViewCounter wraps the given client. A nil client yields a no-op counter.
func NewViewCounter(client *redis.Client) *ViewCounter {
	return &ViewCounter{client: client}
}

// Bump increments the view count for an article slug.
func (v *ViewCounter) Bump(ctx context.Context, slug string) {
	if v == nil || v.client == nil {
		return
	}
	if err := v.client.Incr(ctx, viewKeyPrefix+slug).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "View counter increment failed", "slug", slug, "error", err)
	}
}

// Counts returns the view counts for the given slugs. Slugs that were never
// viewed, and every slug when Redis is unavailable, map to zero.
func (v *ViewCounter) Counts(ctx context.Context, slugs []string) map[string]int64 {
	counts := make(map[string]int64, len(slugs))
	for _, s := range slugs {
		counts[s] = 0
	}
	if v == nil || v.client == nil || len(slugs) == 0 {
		return counts
	}

	keys := make([]string, len(slugs))
	for i, s := range slugs {
		keys[i] = viewKeyPrefix + s
	}

	values, err := v.client.MGet(ctx, keys...).Result()
	if err != nil {
		middleware.Logger.WarnContext(ctx, "View counter lookup failed", "error", err)
		return counts
	}

	for i, raw := range values {
		str, ok := raw.(string)
		if !ok {
			continue
		}
		if n, err := strconv.ParseInt(str, 10, 64); err == nil {
			counts[slugs[i]] = n
		}
	}
	return counts
}
