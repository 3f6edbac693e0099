package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/furrymatch/service-matching/internal/application"
	"github.com/furrymatch/service-matching/internal/platform/auth"
	"github.com/furrymatch/service-matching/internal/platform/middleware"
	"github.com/furrymatch/service-matching/internal/platform/response"
)

// AccountHandler handles HTTP requests for the caller's owner profile.
type AccountHandler struct {
	service *application.OwnerService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service *application.OwnerService) *AccountHandler {
	return &AccountHandler{service: service}
}

// RegisterRoutes registers account routes.
func (h *AccountHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	ownerRole := middleware.RequireRole(auth.RoleOwner, auth.RoleAdmin)

	account := r.Group("/api/v1/account")
	account.Use(authMW, ownerRole)
	{
		account.GET("", h.GetProfile)
		account.PUT("", h.UpsertProfile)
		account.POST("/selected-pet/:petId", h.SelectPet)
		account.POST("/active-match/:matchId", h.SetActiveMatch)
	}

	pets := r.Group("/api/v1/pets")
	pets.Use(authMW, ownerRole)
	pets.GET("/current", h.CurrentPet)
}

// GetProfile handles GET /api/v1/account.
func (h *AccountHandler) GetProfile(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.service.GetProfile(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpsertProfile handles PUT /api/v1/account.
func (h *AccountHandler) UpsertProfile(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpsertProfile(c.Request.Context(), ownerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SelectPet handles POST /api/v1/account/selected-pet/:petId.
func (h *AccountHandler) SelectPet(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	petID, ok := uuidParam(c, "petId", "pet")
	if !ok {
		return
	}

	result, err := h.service.SelectPet(c.Request.Context(), ownerID, petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SetActiveMatch handles POST /api/v1/account/active-match/:matchId.
func (h *AccountHandler) SetActiveMatch(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	matchID, ok := uuidParam(c, "matchId", "match")
	if !ok {
		return
	}

	result, err := h.service.SetActiveMatch(c.Request.Context(), ownerID, matchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CurrentPet handles GET /api/v1/pets/current.
func (h *AccountHandler) CurrentPet(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.service.CurrentPet(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
