package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oceantrail/divelog-api/internal/container"
	handlers "github.com/oceantrail/divelog-api/internal/interface/http"
	"github.com/oceantrail/divelog-api/internal/interface/middleware"
	"github.com/oceantrail/divelog-api/pkg/helpers"
)

// DiveLogModule registers dive log routes. Everything requires auth.
type DiveLogModule struct {
	Handler *handlers.DiveLogHandler
	JWT     *helpers.JWTManager
}

func NewDiveLogModule(h *handlers.DiveLogHandler, jwt *helpers.JWTManager) *DiveLogModule {
	return &DiveLogModule{Handler: h, JWT: jwt}
}

func (m *DiveLogModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/dives")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("", m.Handler.LogDive)
		auth.GET("", m.Handler.ListMine)
		auth.GET("/:id", m.Handler.Get)
		auth.PUT("/:id", m.Handler.UpdateDive)
		auth.PUT("/:id/conditions", m.Handler.UpdateConditions)
		auth.PUT("/:id/notes", m.Handler.UpdateNotes)
		auth.PUT("/:id/buddy", m.Handler.SetBuddy)
		auth.DELETE("/:id/buddy", m.Handler.RemoveBuddy)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
