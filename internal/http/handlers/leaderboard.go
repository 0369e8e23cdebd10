package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/followai/followai-backend/internal/http/response"
	"github.com/followai/followai-backend/internal/services"
)

type LeaderboardHandler struct {
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GET /api/leaderboard?limit=100&offset=0
func (h *LeaderboardHandler) Top(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.leaderboardService.TopUsers(c.Request.Context(), limit, offset)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"entries": entries})
}

// GET /api/leaderboard/rank
func (h *LeaderboardHandler) MyRank(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	rank, err := h.leaderboardService.UserRank(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"rank": rank})
}
