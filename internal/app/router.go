package app

import (
	"github.com/gin-gonic/gin"

	internalhttp "github.com/followai/followai-backend/internal/http"
	"github.com/followai/followai-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return internalhttp.NewRouter(internalhttp.RouterConfig{
		Log:                log,
		AuthMiddleware:     middleware.Auth,
		XpHandler:          handlers.Xp,
		ProfileHandler:     handlers.Profile,
		PortfolioHandler:   handlers.Portfolio,
		LeaderboardHandler: handlers.Leaderboard,
		HealthHandler:      handlers.Health,
	})
}
