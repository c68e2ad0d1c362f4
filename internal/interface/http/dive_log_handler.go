package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oceantrail/divelog-api/internal/application"
	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/pkg/response"
	"github.com/oceantrail/divelog-api/pkg/validation"
)

type DiveLogHandler struct {
	Svc    *application.DiveLogService
	Logger *logrus.Logger
}

func NewDiveLogHandler(svc *application.DiveLogService, logger *logrus.Logger) *DiveLogHandler {
	return &DiveLogHandler{Svc: svc, Logger: logger}
}

type logDiveRequest struct {
	DivingSpotID     string    `json:"diving_spot_id" binding:"required,uuid"`
	DiveDate         time.Time `json:"dive_date" binding:"required"`
	DurationMinutes  float64   `json:"duration_minutes" binding:"required,gt=0"`
	MaxDepthMeters   float64   `json:"max_depth_m" binding:"required,gt=0"`
	StartPressure    float64   `json:"start_pressure" binding:"required,gt=0"`
	EndPressure      float64   `json:"end_pressure" binding:"gte=0"`
	TankVolume       float64   `json:"tank_volume" binding:"required,gt=0"`
	GasType          string    `json:"gas_type" binding:"required,oneof=air nitrox"`
	OxygenPercentage *float64  `json:"oxygen_percentage"`
}

func (h *DiveLogHandler) LogDive(c *gin.Context) {
	uid := c.GetString("userID")
	var req logDiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	d, err := h.Svc.LogDive(c.Request.Context(), uid, application.LogDiveInput{
		DivingSpotID:     req.DivingSpotID,
		DiveDate:         req.DiveDate,
		Duration:         time.Duration(req.DurationMinutes * float64(time.Minute)),
		MaxDepthMeters:   req.MaxDepthMeters,
		StartPressure:    req.StartPressure,
		EndPressure:      req.EndPressure,
		TankVolume:       req.TankVolume,
		GasType:          req.GasType,
		OxygenPercentage: req.OxygenPercentage,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, diveLogView(d), "dive logged", nil)
}

// requireOwner loads the dive log and enforces that the caller owns it.
func (h *DiveLogHandler) requireOwner(c *gin.Context, id string) bool {
	d, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return false
	}
	if d.UserID() != c.GetString("userID") {
		respondDomainError(c, domain.NewNotFoundError("dive log", id))
		return false
	}
	return true
}

func (h *DiveLogHandler) Get(c *gin.Context) {
	d, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, diveLogView(d), "dive log", nil)
}

func (h *DiveLogHandler) ListMine(c *gin.Context) {
	uid := c.GetString("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	logs, err := h.Svc.ListByUser(c.Request.Context(), uid, limit, offset)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	views := make([]gin.H, 0, len(logs))
	for _, d := range logs {
		views = append(views, diveLogView(d))
	}
	response.Success(c, http.StatusOK, views, "dive logs", map[string]any{"count": len(views)})
}

type updateDiveRequest struct {
	DiveDate           time.Time `json:"dive_date" binding:"required"`
	DurationMinutes    float64   `json:"duration_minutes" binding:"required,gt=0"`
	MaxDepthMeters     float64   `json:"max_depth_m" binding:"required,gt=0"`
	AverageDepthMeters *float64  `json:"average_depth_m"`
}

func (h *DiveLogHandler) UpdateDive(c *gin.Context) {
	id := c.Param("id")
	if !h.requireOwner(c, id) {
		return
	}
	var req updateDiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	d, err := h.Svc.UpdateDive(c.Request.Context(), id, application.UpdateDiveInput{
		DiveDate:           req.DiveDate,
		Duration:           time.Duration(req.DurationMinutes * float64(time.Minute)),
		MaxDepthMeters:     req.MaxDepthMeters,
		AverageDepthMeters: req.AverageDepthMeters,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, diveLogView(d), "dive updated", nil)
}

type diveConditionsRequest struct {
	WaterTemperatureC *float64 `json:"water_temperature_c"`
	VisibilityMeters  *float64 `json:"visibility_m"`
}

func (h *DiveLogHandler) UpdateConditions(c *gin.Context) {
	id := c.Param("id")
	if !h.requireOwner(c, id) {
		return
	}
	var req diveConditionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	d, err := h.Svc.UpdateConditions(c.Request.Context(), id, application.DiveConditionsInput{
		WaterTemperatureC: req.WaterTemperatureC,
		VisibilityMeters:  req.VisibilityMeters,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, diveLogView(d), "conditions updated", nil)
}

type notesRequest struct {
	Notes *string `json:"notes"`
}

func (h *DiveLogHandler) UpdateNotes(c *gin.Context) {
	id := c.Param("id")
	if !h.requireOwner(c, id) {
		return
	}
	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	d, err := h.Svc.UpdateNotes(c.Request.Context(), id, req.Notes)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, diveLogView(d), "notes updated", nil)
}

type buddyRequest struct {
	BuddyUserID string `json:"buddy_user_id" binding:"required,uuid"`
}

func (h *DiveLogHandler) SetBuddy(c *gin.Context) {
	id := c.Param("id")
	if !h.requireOwner(c, id) {
		return
	}
	var req buddyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	d, err := h.Svc.SetBuddy(c.Request.Context(), id, req.BuddyUserID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, diveLogView(d), "buddy set", nil)
}

func (h *DiveLogHandler) RemoveBuddy(c *gin.Context) {
	id := c.Param("id")
	if !h.requireOwner(c, id) {
		return
	}
	d, err := h.Svc.RemoveBuddy(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, diveLogView(d), "buddy removed", nil)
}

func (h *DiveLogHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !h.requireOwner(c, id) {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "dive log deleted", nil)
}
