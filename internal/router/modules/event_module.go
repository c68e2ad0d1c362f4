package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oceantrail/divelog-api/internal/container"
	handlers "github.com/oceantrail/divelog-api/internal/interface/http"
	"github.com/oceantrail/divelog-api/internal/interface/middleware"
	"github.com/oceantrail/divelog-api/pkg/helpers"
)

// EventModule registers community event routes.
// The upcoming listing is public; everything else requires auth.
type EventModule struct {
	Handler *handlers.EventHandler
	JWT     *helpers.JWTManager
}

func NewEventModule(h *handlers.EventHandler, jwt *helpers.JWTManager) *EventModule {
	return &EventModule{Handler: h, JWT: jwt}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/events", readLimiter, m.Handler.ListUpcoming)
	rg.GET("/events/:id", readLimiter, m.Handler.Get)

	auth := rg.Group("/events")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("/mine", m.Handler.ListMine)
		auth.PUT("/:id", m.Handler.Update)
		auth.POST("/:id/registrations", m.Handler.Register)
		auth.DELETE("/:id/registrations", m.Handler.Unregister)
		auth.POST("/:id/cancel", m.Handler.Cancel)
		auth.POST("/:id/complete", m.Handler.Complete)
	}
}
