package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oceantrail/divelog-api/internal/container"
	handlers "github.com/oceantrail/divelog-api/internal/interface/http"
	"github.com/oceantrail/divelog-api/internal/interface/middleware"
	"github.com/oceantrail/divelog-api/pkg/helpers"
)

// NotificationModule registers in-app notification routes.
type NotificationModule struct {
	Handler *handlers.NotificationHandler
	JWT     *helpers.JWTManager
}

func NewNotificationModule(h *handlers.NotificationHandler, jwt *helpers.JWTManager) *NotificationModule {
	return &NotificationModule{Handler: h, JWT: jwt}
}

func (m *NotificationModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/notifications")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 240, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("", m.Handler.ListMine)
		auth.GET("/unread", m.Handler.CountUnread)
		auth.POST("/read", m.Handler.MarkAllRead)
		auth.POST("/:id/read", m.Handler.MarkRead)
		auth.POST("/:id/unread", m.Handler.MarkUnread)
	}
}
