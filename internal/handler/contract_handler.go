package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/furrymatch/service-matching/internal/application"
	"github.com/furrymatch/service-matching/internal/platform/auth"
	"github.com/furrymatch/service-matching/internal/platform/middleware"
	"github.com/furrymatch/service-matching/internal/platform/response"
)

// ContractHandler handles HTTP requests for breeding contracts.
type ContractHandler struct {
	service *application.ContractService
}

// NewContractHandler creates a new ContractHandler.
func NewContractHandler(service *application.ContractService) *ContractHandler {
	return &ContractHandler{service: service}
}

// RegisterRoutes registers contract routes.
func (h *ContractHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	ownerRole := middleware.RequireRole(auth.RoleOwner, auth.RoleAdmin)

	contracts := r.Group("/api/v1/contracts")
	contracts.Use(authMW, ownerRole)
	{
		contracts.POST("", h.Create)
		contracts.GET("/:id", h.Get)
		contracts.PUT("/:id", h.Update)
		contracts.POST("/:id/send", h.Send)
		contracts.DELETE("/:id", h.Delete)
	}

	pets := r.Group("/api/v1/pets")
	pets.Use(authMW, ownerRole)
	pets.GET("/:id/contracts", h.MatchedPets)
}

// Create handles POST /api/v1/contracts.
func (h *ContractHandler) Create(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// Get handles GET /api/v1/contracts/:id.
func (h *ContractHandler) Get(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	contractID, ok := uuidParam(c, "id", "contract")
	if !ok {
		return
	}

	result, err := h.service.Get(c.Request.Context(), ownerID, contractID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Update handles PUT /api/v1/contracts/:id.
func (h *ContractHandler) Update(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	contractID, ok := uuidParam(c, "id", "contract")
	if !ok {
		return
	}

	var req application.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), ownerID, contractID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Send handles POST /api/v1/contracts/:id/send.
func (h *ContractHandler) Send(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	contractID, ok := uuidParam(c, "id", "contract")
	if !ok {
		return
	}

	result, err := h.service.Send(c.Request.Context(), ownerID, contractID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Delete handles DELETE /api/v1/contracts/:id.
func (h *ContractHandler) Delete(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	contractID, ok := uuidParam(c, "id", "contract")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, contractID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// MatchedPets handles GET /api/v1/pets/:id/contracts.
func (h *ContractHandler) MatchedPets(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	petID, ok := uuidParam(c, "id", "pet")
	if !ok {
		return
	}

	result, err := h.service.MatchedPets(c.Request.Context(), ownerID, petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
