package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DailyXPCounter tracks each user's live-scorer XP for the current calendar
// day in Redis. The soft cap reads this before scoring; the award is added
// after. Keys expire shortly after local midnight.
type DailyXPCounter struct {
	redis *redis.Client
	loc   *time.Location
}

func NewDailyXPCounter(redisClient *redis.Client, loc *time.Location) *DailyXPCounter {
	return &DailyXPCounter{redis: redisClient, loc: loc}
}

func (c *DailyXPCounter) key(userID uuid.UUID, now time.Time) string {
	return fmt.Sprintf("daily_xp:%s:%s", userID.String(), now.In(c.loc).Format(dateLayout))
}

// Get returns today's running total. A missing key or a transient Redis
// failure reads as zero: the soft cap degrades open rather than blocking
// checkouts.
func (c *DailyXPCounter) Get(ctx context.Context, userID uuid.UUID, now time.Time) int {
	total, err := c.redis.Get(ctx, c.key(userID, now)).Int()
	if err != nil {
		return 0
	}
	return total
}

// Add folds an award into today's total and refreshes the key's expiry to
// an hour past local midnight.
func (c *DailyXPCounter) Add(ctx context.Context, userID uuid.UUID, now time.Time, xp int) error {
	if xp <= 0 {
		return nil
	}
	key := c.key(userID, now)
	if err := c.redis.IncrBy(ctx, key, int64(xp)).Err(); err != nil {
		return err
	}

	local := now.In(c.loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc).AddDate(0, 0, 1)
	return c.redis.ExpireAt(ctx, key, midnight.Add(time.Hour)).Err()
}
