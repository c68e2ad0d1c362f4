package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oceantrail/divelog-api/internal/application"
	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/pkg/response"
	"github.com/oceantrail/divelog-api/pkg/validation"
)

type SpotHandler struct {
	Svc    *application.SpotService
	Logger *logrus.Logger
}

func NewSpotHandler(svc *application.SpotService, logger *logrus.Logger) *SpotHandler {
	return &SpotHandler{Svc: svc, Logger: logger}
}

type spotRequest struct {
	Name           string   `json:"name" binding:"required,min=3,max=100"`
	Description    string   `json:"description" binding:"required,min=10,max=2000"`
	Latitude       float64  `json:"latitude" binding:"required,latitude"`
	Longitude      float64  `json:"longitude" binding:"required,longitude"`
	MaxDepthMeters *float64 `json:"max_depth_m"`
}

func (h *SpotHandler) Create(c *gin.Context) {
	uid := c.GetString("userID")
	var req spotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	spot, err := h.Svc.Create(c.Request.Context(), uid, application.CreateSpotInput{
		Name:           req.Name,
		Description:    req.Description,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		MaxDepthMeters: req.MaxDepthMeters,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, spotView(spot), "spot created", nil)
}

func (h *SpotHandler) Get(c *gin.Context) {
	spot, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, spotView(spot), "spot", nil)
}

func (h *SpotHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	spots, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	views := make([]gin.H, 0, len(spots))
	for _, s := range spots {
		views = append(views, spotView(s))
	}
	response.Success(c, http.StatusOK, views, "spots", map[string]any{"count": len(views)})
}

func (h *SpotHandler) Update(c *gin.Context) {
	var req spotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	spot, err := h.Svc.UpdateInformation(c.Request.Context(), c.Param("id"), application.CreateSpotInput{
		Name:           req.Name,
		Description:    req.Description,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		MaxDepthMeters: req.MaxDepthMeters,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, spotView(spot), "spot updated", nil)
}

type spotConditionsRequest struct {
	WaterTemperatureC *float64 `json:"water_temperature_c"`
	VisibilityMeters  *float64 `json:"visibility_m"`
}

func (h *SpotHandler) UpdateConditions(c *gin.Context) {
	var req spotConditionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	spot, err := h.Svc.UpdateConditions(c.Request.Context(), c.Param("id"), application.SpotConditionsInput{
		WaterTemperatureC: req.WaterTemperatureC,
		VisibilityMeters:  req.VisibilityMeters,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, spotView(spot), "conditions updated", nil)
}

// UploadPhoto accepts a multipart file field named "photo" with an optional
// "caption" form value.
func (h *SpotHandler) UploadPhoto(c *gin.Context) {
	uid := c.GetString("userID")
	file, err := c.FormFile("photo")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing photo file", nil)
		return
	}
	f, err := file.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot read photo file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	var caption *string
	if v := c.PostForm("caption"); v != "" {
		caption = &v
	}
	photo, err := h.Svc.UploadPhoto(c.Request.Context(), c.Param("id"), uid, f, file.Filename, file.Header.Get("Content-Type"), caption)
	if err != nil {
		if domain.IsValidation(err) || domain.IsNotFound(err) {
			respondDomainError(c, err)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("spot_id", c.Param("id")).Error("photo upload failed")
		}
		response.Error[any](c, http.StatusBadGateway, "upload failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, photoView(photo), "photo uploaded", nil)
}

func (h *SpotHandler) RemovePhoto(c *gin.Context) {
	if err := h.Svc.RemovePhoto(c.Request.Context(), c.Param("id"), c.Param("photoId")); err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"removed": true}, "photo removed", nil)
}

type rateRequest struct {
	Score   int     `json:"score" binding:"required,min=1,max=5"`
	Comment *string `json:"comment"`
}

func (h *SpotHandler) Rate(c *gin.Context) {
	uid := c.GetString("userID")
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	spot, err := h.Svc.Rate(c.Request.Context(), c.Param("id"), uid, req.Score, req.Comment)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, spotView(spot), "rating recorded", nil)
}

func (h *SpotHandler) RemoveRating(c *gin.Context) {
	uid := c.GetString("userID")
	spot, err := h.Svc.RemoveRating(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, spotView(spot), "rating removed", nil)
}

func (h *SpotHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		response.Error[any](c, http.StatusBadGateway, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}
