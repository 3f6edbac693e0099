package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/furrymatch/service-matching/internal/application"
	"github.com/furrymatch/service-matching/internal/platform/auth"
	"github.com/furrymatch/service-matching/internal/platform/middleware"
	"github.com/furrymatch/service-matching/internal/platform/response"
)

// PhotoHandler handles HTTP requests for pet photos.
type PhotoHandler struct {
	service *application.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(service *application.PhotoService) *PhotoHandler {
	return &PhotoHandler{service: service}
}

// RegisterRoutes registers all photo routes.
func (h *PhotoHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	ownerRole := middleware.RequireRole(auth.RoleOwner, auth.RoleAdmin)

	photos := r.Group("/api/v1/pets")
	photos.Use(authMW, ownerRole)
	{
		photos.POST("/:id/photos/upload-url", h.RequestUpload)
		photos.POST("/:id/photos", h.AddPhoto)
		photos.GET("/:id/photos", h.ListPhotos)
		photos.DELETE("/:id/photos/:photoId", h.DeletePhoto)
	}
}

// RequestUpload handles POST /api/v1/pets/:id/photos/upload-url.
func (h *PhotoHandler) RequestUpload(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	petID, ok := uuidParam(c, "id", "pet")
	if !ok {
		return
	}

	var req application.RequestUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.RequestUpload(c.Request.Context(), ownerID, petID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddPhoto handles POST /api/v1/pets/:id/photos.
func (h *PhotoHandler) AddPhoto(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	petID, ok := uuidParam(c, "id", "pet")
	if !ok {
		return
	}

	var req application.AddPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddPhoto(c.Request.Context(), ownerID, petID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListPhotos handles GET /api/v1/pets/:id/photos.
func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	petID, ok := uuidParam(c, "id", "pet")
	if !ok {
		return
	}

	result, err := h.service.ListPhotos(c.Request.Context(), petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeletePhoto handles DELETE /api/v1/pets/:id/photos/:photoId.
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	petID, ok := uuidParam(c, "id", "pet")
	if !ok {
		return
	}
	photoID, ok := uuidParam(c, "photoId", "photo")
	if !ok {
		return
	}

	if err := h.service.DeletePhoto(c.Request.Context(), ownerID, petID, photoID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
