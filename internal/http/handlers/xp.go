package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/followai/followai-backend/internal/domain"
	"github.com/followai/followai-backend/internal/http/response"
	"github.com/followai/followai-backend/internal/pkg/ctxutil"
	"github.com/followai/followai-backend/internal/services"
)

type XpHandler struct {
	xpService services.XpService
}

func NewXpHandler(xpService services.XpService) *XpHandler {
	return &XpHandler{xpService: xpService}
}

// POST /api/xp/award
// body: { "amount": 100, "reason": "Task approved", "source": "task_submission", "source_id": "sub-1" }
func (h *XpHandler) Award(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req struct {
		Amount   int     `json:"amount"`
		Reason   string  `json:"reason"`
		Source   string  `json:"source"`
		SourceID *string `json:"source_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := h.xpService.Award(c.Request.Context(), services.AwardParams{
		UserID:   rd.UserID,
		Amount:   req.Amount,
		Reason:   req.Reason,
		Source:   domain.XpSource(req.Source),
		SourceID: req.SourceID,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	// Rejected and already-granted outcomes are valid 200 responses; the
	// caller inspects the outcome tag.
	response.RespondOK(c, gin.H{"result": result})
}

// GET /api/xp/stats
func (h *XpHandler) GetStats(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	stats, err := h.xpService.Stats(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"stats": stats})
}

// GET /api/xp/history?limit=50
func (h *XpHandler) GetHistory(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	events, err := h.xpService.History(c.Request.Context(), rd.UserID, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"events": events})
}

// POST /api/xp/reconcile
func (h *XpHandler) Reconcile(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	stats, err := h.xpService.Reconcile(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"stats": stats})
}
