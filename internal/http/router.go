package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/followai/followai-backend/internal/http/handlers"
	httpMW "github.com/followai/followai-backend/internal/http/middleware"
	"github.com/followai/followai-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware

	XpHandler          *httpH.XpHandler
	ProfileHandler     *httpH.ProfileHandler
	PortfolioHandler   *httpH.PortfolioHandler
	LeaderboardHandler *httpH.LeaderboardHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS())
	r.Use(httpMW.RequestLogger(cfg.Log))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Leaderboard reads are public
		if cfg.LeaderboardHandler != nil {
			api.GET("/leaderboard", cfg.LeaderboardHandler.Top)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// XP
		if cfg.XpHandler != nil {
			protected.POST("/xp/award", cfg.XpHandler.Award)
			protected.GET("/xp/stats", cfg.XpHandler.GetStats)
			protected.GET("/xp/history", cfg.XpHandler.GetHistory)
			protected.POST("/xp/reconcile", cfg.XpHandler.Reconcile)
		}

		// Profile
		if cfg.ProfileHandler != nil {
			protected.GET("/profile", cfg.ProfileHandler.GetMe)
			protected.PATCH("/profile", cfg.ProfileHandler.Update)
			protected.POST("/profile/skills", cfg.ProfileHandler.AddSkill)
			protected.DELETE("/profile/skills/:skill", cfg.ProfileHandler.RemoveSkill)
			protected.POST("/profile/ai-tools", cfg.ProfileHandler.AddAITool)
			protected.DELETE("/profile/ai-tools/:tool", cfg.ProfileHandler.RemoveAITool)
			protected.POST("/profile/completion", cfg.ProfileHandler.RecalculateCompletion)
		}

		// Portfolio
		if cfg.PortfolioHandler != nil {
			protected.GET("/portfolio", cfg.PortfolioHandler.List)
			protected.POST("/portfolio", cfg.PortfolioHandler.Create)
			protected.PATCH("/portfolio/:id", cfg.PortfolioHandler.Update)
			protected.DELETE("/portfolio/:id", cfg.PortfolioHandler.Delete)
		}

		// Leaderboard (rank needs identity)
		if cfg.LeaderboardHandler != nil {
			protected.GET("/leaderboard/rank", cfg.LeaderboardHandler.MyRank)
		}
	}

	return r
}
