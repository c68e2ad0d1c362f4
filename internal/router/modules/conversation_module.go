package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oceantrail/divelog-api/internal/container"
	handlers "github.com/oceantrail/divelog-api/internal/interface/http"
	"github.com/oceantrail/divelog-api/internal/interface/middleware"
	"github.com/oceantrail/divelog-api/pkg/helpers"
)

// ConversationModule registers messaging routes. Everything requires auth.
type ConversationModule struct {
	Handler *handlers.ConversationHandler
	JWT     *helpers.JWTManager
}

func NewConversationModule(h *handlers.ConversationHandler, jwt *helpers.JWTManager) *ConversationModule {
	return &ConversationModule{Handler: h, JWT: jwt}
}

func (m *ConversationModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/conversations")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 240, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/private", m.Handler.StartPrivate)
		auth.POST("/group", m.Handler.StartGroup)
		auth.GET("", m.Handler.ListMine)
		auth.GET("/:id", m.Handler.Get)
		auth.PUT("/:id/title", m.Handler.UpdateTitle)
		auth.POST("/:id/participants", m.Handler.AddParticipant)
		auth.DELETE("/:id/participants/:userId", m.Handler.RemoveParticipant)
		auth.POST("/:id/messages", m.Handler.SendMessage)
		auth.GET("/:id/messages", m.Handler.ListMessages)
	}

	messages := rg.Group("/messages")
	messages.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		messages.POST("/:messageId/read", m.Handler.MarkMessageRead)
	}
}
