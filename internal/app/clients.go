package app

import (
	goredis "github.com/redis/go-redis/v9"

	redisclient "github.com/followai/followai-backend/internal/clients/redis"
	"github.com/followai/followai-backend/internal/pkg/logger"
)

type Clients struct {
	Redis            *goredis.Client
	XpBus            redisclient.XpBus
	LeaderboardCache redisclient.LeaderboardCache
}

// wireClients connects the optional Redis-backed clients. The API keeps
// working without Redis; callers see nil bus and cache.
func wireClients(log *logger.Logger) Clients {
	log.Info("Wiring clients...")

	rdb, err := redisclient.NewClient(log)
	if err != nil {
		log.Warn("Redis unavailable, leaderboard cache and XP bus disabled", "error", err)
		return Clients{}
	}

	bus, err := redisclient.NewXpBus(log, rdb)
	if err != nil {
		log.Warn("XP bus init failed", "error", err)
	}
	cache, err := redisclient.NewLeaderboardCache(log, rdb)
	if err != nil {
		log.Warn("Leaderboard cache init failed", "error", err)
	}

	return Clients{
		Redis:            rdb,
		XpBus:            bus,
		LeaderboardCache: cache,
	}
}
