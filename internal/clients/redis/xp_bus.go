package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/followai/followai-backend/internal/pkg/logger"
)

const (
	EventXpAwarded = "xp.awarded"
	EventLevelUp   = "xp.level_up"
)

// XpBusMessage is what downstream notification workers consume.
type XpBusMessage struct {
	Type       string `json:"type"`
	UserID     string `json:"user_id"`
	Amount     int    `json:"amount"`
	Source     string `json:"source"`
	NewTotalXp int    `json:"new_total_xp"`
	NewLevel   int    `json:"new_level"`
}

// XpBus fans XP events out over pub/sub. Publication is best-effort; the
// award transaction has already committed when it runs.
type XpBus interface {
	Publish(ctx context.Context, msg XpBusMessage) error
	Close() error
}

type xpBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewXpBus(log *logger.Logger, rdb *goredis.Client) (XpBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if rdb == nil {
		return nil, fmt.Errorf("redis client required")
	}

	ch := strings.TrimSpace(os.Getenv("REDIS_XP_CHANNEL"))
	if ch == "" {
		ch = "xp"
	}

	return &xpBus{
		log:     log.With("service", "RedisXpBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *xpBus) Publish(ctx context.Context, msg XpBusMessage) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis XP bus not initialized")
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *xpBus) Close() error {
	return nil
}
