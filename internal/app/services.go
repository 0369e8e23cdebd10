package app

import (
	"gorm.io/gorm"

	"github.com/followai/followai-backend/internal/pkg/logger"
	"github.com/followai/followai-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	Xp          services.XpService
	Profile     services.ProfileService
	Portfolio   services.PortfolioService
	Leaderboard services.LeaderboardService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")

	var notifier services.XpNotifier
	if clients.XpBus != nil {
		notifier = services.NewBusXpNotifier(log, clients.XpBus)
	}
	var scores services.ScoreWriter
	if clients.LeaderboardCache != nil {
		scores = clients.LeaderboardCache
	}

	authService := services.NewAuthService(log, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	xpService := services.NewXpService(db, log, repos.XpEvent, repos.Profile, notifier, scores)
	profileService := services.NewProfileService(db, log, repos.Profile, repos.PortfolioItem, xpService)
	portfolioService := services.NewPortfolioService(db, log, repos.PortfolioItem, profileService, xpService)
	leaderboardService := services.NewLeaderboardService(db, log, repos.Profile, clients.LeaderboardCache)

	return Services{
		Auth:        authService,
		Xp:          xpService,
		Profile:     profileService,
		Portfolio:   portfolioService,
		Leaderboard: leaderboardService,
	}
}
