package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oceantrail/divelog-api/internal/application"
	"github.com/oceantrail/divelog-api/pkg/response"
)

type NotificationHandler struct {
	Svc    *application.NotificationService
	Logger *logrus.Logger
}

func NewNotificationHandler(svc *application.NotificationService, logger *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{Svc: svc, Logger: logger}
}

func (h *NotificationHandler) ListMine(c *gin.Context) {
	uid := c.GetString("userID")
	unreadOnly := c.Query("unread") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	notifications, err := h.Svc.ListByUser(c.Request.Context(), uid, unreadOnly, limit, offset)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	views := make([]gin.H, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, notificationView(n))
	}
	response.Success(c, http.StatusOK, views, "notifications", map[string]any{"count": len(views)})
}

func (h *NotificationHandler) CountUnread(c *gin.Context) {
	uid := c.GetString("userID")
	count, err := h.Svc.CountUnread(c.Request.Context(), uid)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"unread": count}, "unread count", nil)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	uid := c.GetString("userID")
	n, err := h.Svc.MarkRead(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, notificationView(n), "marked read", nil)
}

func (h *NotificationHandler) MarkUnread(c *gin.Context) {
	uid := c.GetString("userID")
	n, err := h.Svc.MarkUnread(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, notificationView(n), "marked unread", nil)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	uid := c.GetString("userID")
	marked, err := h.Svc.MarkAllRead(c.Request.Context(), uid)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"marked": marked}, "all read", nil)
}
