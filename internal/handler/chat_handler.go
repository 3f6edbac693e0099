package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/furrymatch/service-matching/internal/application"
	"github.com/furrymatch/service-matching/internal/platform/auth"
	"github.com/furrymatch/service-matching/internal/platform/middleware"
	"github.com/furrymatch/service-matching/internal/platform/response"
)

// ChatHandler handles HTTP requests for chat messages.
type ChatHandler struct {
	service *application.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(service *application.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// RegisterRoutes registers chat routes.
func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	ownerRole := middleware.RequireRole(auth.RoleOwner, auth.RoleAdmin)

	chats := r.Group("/api/v1/chats")
	chats.Use(authMW, ownerRole)
	{
		chats.POST("", h.Send)
		chats.GET("/unread", h.Unread)
		chats.PUT("/read/:matchId/:senderId", h.MarkRead)
	}

	matches := r.Group("/api/v1/matches")
	matches.Use(authMW, ownerRole)
	{
		matches.GET("/:id/chats", h.ListByMatch)
		matches.DELETE("/:id/chats", h.DeleteByMatch)
	}

	pets := r.Group("/api/v1/pets")
	pets.Use(authMW, ownerRole)
	pets.GET("/:id/conversations", h.Conversations)
}

// Send handles POST /api/v1/chats.
func (h *ChatHandler) Send(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Send(c.Request.Context(), ownerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// Unread handles GET /api/v1/chats/unread.
func (h *ChatHandler) Unread(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.service.Unread(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// MarkRead handles PUT /api/v1/chats/read/:matchId/:senderId.
func (h *ChatHandler) MarkRead(c *gin.Context) {
	readerID, ok := callerID(c)
	if !ok {
		return
	}
	matchID, ok := uuidParam(c, "matchId", "match")
	if !ok {
		return
	}
	senderID, ok := uuidParam(c, "senderId", "sender")
	if !ok {
		return
	}

	result, err := h.service.MarkRead(c.Request.Context(), readerID, matchID, senderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListByMatch handles GET /api/v1/matches/:id/chats.
func (h *ChatHandler) ListByMatch(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	matchID, ok := uuidParam(c, "id", "match")
	if !ok {
		return
	}

	result, err := h.service.ListByMatch(c.Request.Context(), ownerID, matchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteByMatch handles DELETE /api/v1/matches/:id/chats.
func (h *ChatHandler) DeleteByMatch(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	matchID, ok := uuidParam(c, "id", "match")
	if !ok {
		return
	}

	deleted, err := h.service.DeleteByMatch(c.Request.Context(), ownerID, matchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": deleted})
}

// Conversations handles GET /api/v1/pets/:id/conversations.
func (h *ChatHandler) Conversations(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	petID, ok := uuidParam(c, "id", "pet")
	if !ok {
		return
	}

	result, err := h.service.Conversations(c.Request.Context(), ownerID, petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
