package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/followai/followai-backend/internal/http/response"
	"github.com/followai/followai-backend/internal/pkg/ctxutil"
	"github.com/followai/followai-backend/internal/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func requireUser(c *gin.Context) (uuid.UUID, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return uuid.Nil, false
	}
	return rd.UserID, true
}

// GET /api/profile
func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	prof, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profile": prof})
}

// PATCH /api/profile
// body: { "username": "...", "full_name": "...", "bio": "...", "avatar_url": "..." }
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req struct {
		Username  *string `json:"username"`
		FullName  *string `json:"full_name"`
		Bio       *string `json:"bio"`
		AvatarURL *string `json:"avatar_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	prof, err := h.profileService.UpdateProfile(c.Request.Context(), userID, services.ProfileUpdate{
		Username:  req.Username,
		FullName:  req.FullName,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profile": prof})
}

// POST /api/profile/skills
// body: { "skill": "golang" }
func (h *ProfileHandler) AddSkill(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req struct {
		Skill string `json:"skill"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	prof, err := h.profileService.AddSkill(c.Request.Context(), userID, req.Skill)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profile": prof})
}

// DELETE /api/profile/skills/:skill
func (h *ProfileHandler) RemoveSkill(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	prof, err := h.profileService.RemoveSkill(c.Request.Context(), userID, c.Param("skill"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profile": prof})
}

// POST /api/profile/ai-tools
// body: { "tool": "midjourney" }
func (h *ProfileHandler) AddAITool(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req struct {
		Tool string `json:"tool"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	prof, err := h.profileService.AddAITool(c.Request.Context(), userID, req.Tool)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profile": prof})
}

// DELETE /api/profile/ai-tools/:tool
func (h *ProfileHandler) RemoveAITool(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	prof, err := h.profileService.RemoveAITool(c.Request.Context(), userID, c.Param("tool"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profile": prof})
}

// POST /api/profile/completion
func (h *ProfileHandler) RecalculateCompletion(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	score, err := h.profileService.RecalculateCompletion(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"profile_completion": score})
}
