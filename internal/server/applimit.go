package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// incrWithExpiry atomically increments a counter and sets its expiry on
// first use, so one round trip covers both the count and the window start.
var incrWithExpiry = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return current
`)

// appCounter is the database fallback for counting recent submissions when
// redis is not configured or unreachable.
type appCounter interface {
	CountApplicationsSince(ctx context.Context, userID uuid.UUID, cutoffHours int) (int, error)
}

// AppLimiter caps how many applications a job seeker may submit in a
// rolling 24 hour window. Counting goes through redis when available and
// falls back to the applications table otherwise.
type AppLimiter struct {
	client   *redis.Client
	limit    int
	fallback appCounter
}

// NewAppLimiter builds a limiter. client may be nil; fallback may be nil to
// disable the database fallback.
func NewAppLimiter(client *redis.Client, limit int, fallback appCounter) *AppLimiter {
	return &AppLimiter{client: client, limit: limit, fallback: fallback}
}

// Allow records one submission attempt for the user and reports whether it
// is within the daily cap.
func (l *AppLimiter) Allow(ctx context.Context, userID uuid.UUID) (bool, error) {
	if l == nil || l.limit <= 0 {
		return true, nil
	}

	if l.client != nil {
		key := fmt.Sprintf("applimit:%s", userID)
		window := 24 * time.Hour

		count, err := incrWithExpiry.Run(ctx, l.client, []string{key}, window.Milliseconds()).Int()
		if err == nil {
			return count <= l.limit, nil
		}
		log.Printf("application limiter redis unavailable, using database count: %v", err)
	}

	if l.fallback == nil {
		return true, nil
	}
	count, err := l.fallback.CountApplicationsSince(ctx, userID, 24)
	if err != nil {
		return false, fmt.Errorf("failed to count recent applications: %w", err)
	}
	return count < l.limit, nil
}
