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

type EventHandler struct {
	Svc    *application.EventService
	Logger *logrus.Logger
}

func NewEventHandler(svc *application.EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: logger}
}

type eventRequest struct {
	Title           string    `json:"title" binding:"required,min=3,max=100"`
	Description     string    `json:"description" binding:"required,min=10,max=2000"`
	EventDate       time.Time `json:"event_date" binding:"required"`
	LocationName    string    `json:"location_name" binding:"required,min=3,max=200"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
	DivingSpotID    *string   `json:"diving_spot_id"`
	MaxParticipants *int      `json:"max_participants"`
}

func (r eventRequest) toInput() application.CreateEventInput {
	return application.CreateEventInput{
		Title:           r.Title,
		Description:     r.Description,
		EventDate:       r.EventDate,
		LocationName:    r.LocationName,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		DivingSpotID:    r.DivingSpotID,
		MaxParticipants: r.MaxParticipants,
	}
}

func (h *EventHandler) Create(c *gin.Context) {
	uid := c.GetString("userID")
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Svc.Create(c.Request.Context(), uid, req.toInput())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, eventView(e), "event created", nil)
}

func (h *EventHandler) Get(c *gin.Context) {
	e, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, eventView(e), "event", nil)
}

func (h *EventHandler) ListUpcoming(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	events, err := h.Svc.ListUpcoming(c.Request.Context(), limit, offset)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	views := make([]gin.H, 0, len(events))
	for _, e := range events {
		views = append(views, eventView(e))
	}
	response.Success(c, http.StatusOK, views, "upcoming events", map[string]any{"count": len(views)})
}

func (h *EventHandler) ListMine(c *gin.Context) {
	uid := c.GetString("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	events, err := h.Svc.ListByOrganizer(c.Request.Context(), uid, limit, offset)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	views := make([]gin.H, 0, len(events))
	for _, e := range events {
		views = append(views, eventView(e))
	}
	response.Success(c, http.StatusOK, views, "my events", map[string]any{"count": len(views)})
}

// requireOrganizer loads the event and enforces that the caller organizes it.
func (h *EventHandler) requireOrganizer(c *gin.Context, id string) bool {
	e, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return false
	}
	if e.OrganizerID() != c.GetString("userID") {
		respondDomainError(c, domain.NewNotFoundError("event", id))
		return false
	}
	return true
}

func (h *EventHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if !h.requireOrganizer(c, id) {
		return
	}
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Svc.UpdateDetails(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, eventView(e), "event updated", nil)
}

type registerEventRequest struct {
	Comment *string `json:"comment"`
}

func (h *EventHandler) Register(c *gin.Context) {
	uid := c.GetString("userID")
	var req registerEventRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Svc.Register(c.Request.Context(), c.Param("id"), uid, req.Comment)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, eventView(e), "registered", nil)
}

func (h *EventHandler) Unregister(c *gin.Context) {
	uid := c.GetString("userID")
	e, err := h.Svc.Unregister(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, eventView(e), "unregistered", nil)
}

func (h *EventHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if !h.requireOrganizer(c, id) {
		return
	}
	e, err := h.Svc.Cancel(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, eventView(e), "event cancelled", nil)
}

func (h *EventHandler) Complete(c *gin.Context) {
	id := c.Param("id")
	if !h.requireOrganizer(c, id) {
		return
	}
	e, err := h.Svc.Complete(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, eventView(e), "event completed", nil)
}
