package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/furrymatch/service-matching/internal/application"
	"github.com/furrymatch/service-matching/internal/platform/auth"
	"github.com/furrymatch/service-matching/internal/platform/middleware"
	"github.com/furrymatch/service-matching/internal/platform/response"
)

// BreedHandler serves the breed catalogue.
type BreedHandler struct {
	service *application.BreedService
}

// NewBreedHandler creates a new BreedHandler.
func NewBreedHandler(service *application.BreedService) *BreedHandler {
	return &BreedHandler{service: service}
}

// RegisterRoutes registers breed routes.
func (h *BreedHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	breeds := r.Group("/api/v1/breeds")
	breeds.Use(middleware.AuthMiddleware(jwtManager))
	{
		breeds.GET("", h.List)
		breeds.GET("/:id", h.Get)
	}
}

// List handles GET /api/v1/breeds?pet_type=DOG.
func (h *BreedHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), c.Query("pet_type"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get handles GET /api/v1/breeds/:id.
func (h *BreedHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid breed ID")
		return
	}

	result, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
