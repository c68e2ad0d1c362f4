package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oceantrail/divelog-api/internal/container"
	handlers "github.com/oceantrail/divelog-api/internal/interface/http"
	"github.com/oceantrail/divelog-api/internal/interface/middleware"
	"github.com/oceantrail/divelog-api/pkg/helpers"
)

// SpotModule registers diving spot routes.
// Reads are public; writes require auth.
type SpotModule struct {
	Handler *handlers.SpotHandler
	JWT     *helpers.JWTManager
}

func NewSpotModule(h *handlers.SpotHandler, jwt *helpers.JWTManager) *SpotModule {
	return &SpotModule{Handler: h, JWT: jwt}
}

func (m *SpotModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/spots", readLimiter, m.Handler.List)
	rg.GET("/spots/search", readLimiter, m.Handler.Search)
	rg.GET("/spots/:id", readLimiter, m.Handler.Get)

	auth := rg.Group("/spots")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("", m.Handler.Create)
		auth.PUT("/:id", m.Handler.Update)
		auth.PUT("/:id/conditions", m.Handler.UpdateConditions)
		auth.POST("/:id/photos", m.Handler.UploadPhoto)
		auth.DELETE("/:id/photos/:photoId", m.Handler.RemovePhoto)
		auth.POST("/:id/ratings", m.Handler.Rate)
		auth.DELETE("/:id/ratings", m.Handler.RemoveRating)
	}
}
