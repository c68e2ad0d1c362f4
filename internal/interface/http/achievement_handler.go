package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oceantrail/divelog-api/internal/application"
	"github.com/oceantrail/divelog-api/internal/domain/entity"
	"github.com/oceantrail/divelog-api/pkg/response"
	"github.com/oceantrail/divelog-api/pkg/validation"
)

type AchievementHandler struct {
	Svc    *application.AchievementService
	Logger *logrus.Logger
}

func NewAchievementHandler(svc *application.AchievementService, logger *logrus.Logger) *AchievementHandler {
	return &AchievementHandler{Svc: svc, Logger: logger}
}

type createAchievementRequest struct {
	Title         string  `json:"title" binding:"required,min=3,max=100"`
	Description   string  `json:"description" binding:"required,min=10,max=500"`
	Type          string  `json:"type" binding:"required,oneof=milestone progressive"`
	Category      string  `json:"category" binding:"required"`
	Points        int     `json:"points" binding:"min=0,max=10000"`
	IconURL       *string `json:"icon_url"`
	RequiredValue *int    `json:"required_value"`
	IsSecret      bool    `json:"is_secret"`
}

func (h *AchievementHandler) Create(c *gin.Context) {
	var req createAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.CreateAchievement(c.Request.Context(), entity.NewAchievementInput{
		Title:         req.Title,
		Description:   req.Description,
		Type:          entity.AchievementType(req.Type),
		Category:      entity.AchievementCategory(req.Category),
		Points:        req.Points,
		IconURL:       req.IconURL,
		RequiredValue: req.RequiredValue,
		IsSecret:      req.IsSecret,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, achievementView(a), "achievement created", nil)
}

func (h *AchievementHandler) Get(c *gin.Context) {
	a, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, achievementView(a), "achievement", nil)
}

func (h *AchievementHandler) List(c *gin.Context) {
	includeSecret := c.Query("include_secret") == "true"
	achievements, err := h.Svc.List(c.Request.Context(), includeSecret)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	views := make([]gin.H, 0, len(achievements))
	for _, a := range achievements {
		views = append(views, achievementView(a))
	}
	response.Success(c, http.StatusOK, views, "achievements", map[string]any{"count": len(views)})
}

func (h *AchievementHandler) ListMine(c *gin.Context) {
	uid := c.GetString("userID")
	unlocked, err := h.Svc.ListForUser(c.Request.Context(), uid)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	views := make([]gin.H, 0, len(unlocked))
	for _, v := range unlocked {
		views = append(views, gin.H{
			"achievement": achievementView(v.Achievement),
			"progress":    v.Unlock.Progress(),
			"unlocked_at": v.Unlock.UnlockedAt(),
		})
	}
	response.Success(c, http.StatusOK, views, "my achievements", map[string]any{"count": len(views)})
}

type unlockRequest struct {
	AchievementID string `json:"achievement_id" binding:"required,uuid"`
	Progress      *int   `json:"progress"`
}

func (h *AchievementHandler) Unlock(c *gin.Context) {
	uid := c.GetString("userID")
	var req unlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ua, err := h.Svc.Unlock(c.Request.Context(), uid, req.AchievementID, req.Progress)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":             ua.ID(),
		"user_id":        ua.UserID(),
		"achievement_id": ua.AchievementID(),
		"progress":       ua.Progress(),
		"unlocked_at":    ua.UnlockedAt(),
	}, "achievement unlocked", nil)
}
