package app

import (
	httpH "github.com/followai/followai-backend/internal/http/handlers"
	"github.com/followai/followai-backend/internal/pkg/logger"
)

type Handlers struct {
	Health      *httpH.HealthHandler
	Xp          *httpH.XpHandler
	Profile     *httpH.ProfileHandler
	Portfolio   *httpH.PortfolioHandler
	Leaderboard *httpH.LeaderboardHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(),
		Xp:          httpH.NewXpHandler(services.Xp),
		Profile:     httpH.NewProfileHandler(services.Profile),
		Portfolio:   httpH.NewPortfolioHandler(services.Portfolio),
		Leaderboard: httpH.NewLeaderboardHandler(services.Leaderboard),
	}
}
