package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oceantrail/divelog-api/internal/container"
	handlers "github.com/oceantrail/divelog-api/internal/interface/http"
	"github.com/oceantrail/divelog-api/internal/interface/middleware"
	"github.com/oceantrail/divelog-api/pkg/helpers"
)

// AchievementModule registers achievement catalog and unlock routes.
type AchievementModule struct {
	Handler *handlers.AchievementHandler
	JWT     *helpers.JWTManager
}

func NewAchievementModule(h *handlers.AchievementHandler, jwt *helpers.JWTManager) *AchievementModule {
	return &AchievementModule{Handler: h, JWT: jwt}
}

func (m *AchievementModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/achievements", readLimiter, m.Handler.List)
	rg.GET("/achievements/:id", readLimiter, m.Handler.Get)

	auth := rg.Group("/achievements")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("/mine", m.Handler.ListMine)
		auth.POST("/unlock", m.Handler.Unlock)
	}
}
