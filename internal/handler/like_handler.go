package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/furrymatch/service-matching/internal/application"
	"github.com/furrymatch/service-matching/internal/platform/auth"
	"github.com/furrymatch/service-matching/internal/platform/middleware"
	"github.com/furrymatch/service-matching/internal/platform/response"
)

// LikeHandler handles HTTP requests for likes.
type LikeHandler struct {
	service *application.LikeService
}

// NewLikeHandler creates a new LikeHandler.
func NewLikeHandler(service *application.LikeService) *LikeHandler {
	return &LikeHandler{service: service}
}

// RegisterRoutes registers like routes.
func (h *LikeHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	ownerRole := middleware.RequireRole(auth.RoleOwner, auth.RoleAdmin)

	likes := r.Group("/api/v1/likes")
	likes.Use(authMW, ownerRole)
	{
		likes.POST("", h.RecordLike)
		likes.GET("/:id", h.GetLike)
		likes.PATCH("/:id", h.UpdateLikeState)
		likes.DELETE("/:id", h.DeleteLike)
	}

	pets := r.Group("/api/v1/pets")
	pets.Use(authMW, ownerRole)
	pets.GET("/:id/likes", h.ListLikes)
}

// RecordLike handles POST /api/v1/likes. The response carries the match when
// the like completed a mutual pair.
func (h *LikeHandler) RecordLike(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.RecordLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.RecordLike(c.Request.Context(), ownerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetLike handles GET /api/v1/likes/:id.
func (h *LikeHandler) GetLike(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	likeID, ok := uuidParam(c, "id", "like")
	if !ok {
		return
	}

	result, err := h.service.GetLike(c.Request.Context(), ownerID, likeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateLikeState handles PATCH /api/v1/likes/:id.
func (h *LikeHandler) UpdateLikeState(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	likeID, ok := uuidParam(c, "id", "like")
	if !ok {
		return
	}

	var req application.UpdateLikeStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateLikeState(c.Request.Context(), ownerID, likeID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteLike handles DELETE /api/v1/likes/:id.
func (h *LikeHandler) DeleteLike(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	likeID, ok := uuidParam(c, "id", "like")
	if !ok {
		return
	}

	if err := h.service.DeleteLike(c.Request.Context(), ownerID, likeID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListLikes handles GET /api/v1/pets/:id/likes.
func (h *LikeHandler) ListLikes(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	petID, ok := uuidParam(c, "id", "pet")
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	likes, total, err := h.service.ListLikes(c.Request.Context(), ownerID, petID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, likes, total, page, limit)
}
