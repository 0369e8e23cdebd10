package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/followai/followai-backend/internal/pkg/logger"
)

const leaderboardKey = "leaderboard:total_xp"

// RankedScore is one sorted-set entry, highest XP first.
type RankedScore struct {
	UserID  string
	TotalXp int
	Rank    int64
}

// LeaderboardCache mirrors profiles.total_xp into a Redis sorted set so
// leaderboard reads skip the database. The award service keeps it in step.
type LeaderboardCache interface {
	SetScore(ctx context.Context, userID string, totalXp int) error
	Top(ctx context.Context, limit, offset int) ([]RankedScore, error)
	Rank(ctx context.Context, userID string) (int64, bool, error)
}

type leaderboardCache struct {
	log *logger.Logger
	rdb *goredis.Client
}

func NewLeaderboardCache(log *logger.Logger, rdb *goredis.Client) (LeaderboardCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if rdb == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &leaderboardCache{
		log: log.With("service", "RedisLeaderboardCache"),
		rdb: rdb,
	}, nil
}

func (c *leaderboardCache) SetScore(ctx context.Context, userID string, totalXp int) error {
	return c.rdb.ZAdd(ctx, leaderboardKey, goredis.Z{
		Score:  float64(totalXp),
		Member: userID,
	}).Err()
}

func (c *leaderboardCache) Top(ctx context.Context, limit, offset int) ([]RankedScore, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	zs, err := c.rdb.ZRevRangeWithScores(ctx, leaderboardKey, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, err
	}

	out := make([]RankedScore, 0, len(zs))
	for i, z := range zs {
		member, _ := z.Member.(string)
		out = append(out, RankedScore{
			UserID:  member,
			TotalXp: int(z.Score),
			Rank:    int64(offset + i + 1),
		})
	}
	return out, nil
}

// Rank returns the 1-based rank; the second result is false when the user
// has no entry yet.
func (c *leaderboardCache) Rank(ctx context.Context, userID string) (int64, bool, error) {
	rank, err := c.rdb.ZRevRank(ctx, leaderboardKey, userID).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return rank + 1, true, nil
}
