package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/furrymatch/service-matching/internal/application"
	"github.com/furrymatch/service-matching/internal/platform/auth"
	"github.com/furrymatch/service-matching/internal/platform/middleware"
	"github.com/furrymatch/service-matching/internal/platform/response"
	"github.com/furrymatch/service-matching/internal/realtime"
)

// RoomServer attaches a websocket connection to a match room.
type RoomServer interface {
	Serve(conn *websocket.Conn, matchID, ownerID uuid.UUID)
}

// MatchHandler handles HTTP requests for matches and the live chat socket.
type MatchHandler struct {
	service *application.MatchService
	rooms   RoomServer
	logger  *zap.Logger
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(service *application.MatchService, rooms RoomServer, logger *zap.Logger) *MatchHandler {
	return &MatchHandler{service: service, rooms: rooms, logger: logger}
}

// RegisterRoutes registers match routes.
func (h *MatchHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	ownerRole := middleware.RequireRole(auth.RoleOwner, auth.RoleAdmin)

	matches := r.Group("/api/v1/matches")
	matches.Use(authMW, ownerRole)
	{
		matches.GET("/:id", h.Get)
		matches.POST("/:id/ack", h.Acknowledge)
		matches.DELETE("/:id", h.Delete)
		matches.GET("/:id/ws", h.Connect)
	}

	pets := r.Group("/api/v1/pets")
	pets.Use(authMW, ownerRole)
	{
		pets.GET("/:id/matches", h.ListForPet)
		pets.GET("/:id/match", h.MatchForPet)
	}
}

// Get handles GET /api/v1/matches/:id.
func (h *MatchHandler) Get(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	matchID, ok := uuidParam(c, "id", "match")
	if !ok {
		return
	}

	result, err := h.service.Get(c.Request.Context(), ownerID, matchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Acknowledge handles POST /api/v1/matches/:id/ack.
func (h *MatchHandler) Acknowledge(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	matchID, ok := uuidParam(c, "id", "match")
	if !ok {
		return
	}

	result, err := h.service.Acknowledge(c.Request.Context(), ownerID, matchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Delete handles DELETE /api/v1/matches/:id.
func (h *MatchHandler) Delete(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	matchID, ok := uuidParam(c, "id", "match")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, matchID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Connect handles GET /api/v1/matches/:id/ws. Only participants may join.
func (h *MatchHandler) Connect(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	matchID, ok := uuidParam(c, "id", "match")
	if !ok {
		return
	}

	if _, err := h.service.Participants(c.Request.Context(), ownerID, matchID); err != nil {
		response.Error(c, err)
		return
	}

	conn, err := realtime.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed",
			zap.String("match_id", matchID.String()),
			zap.Error(err),
		)
		return
	}
	h.rooms.Serve(conn, matchID, ownerID)
}

// ListForPet handles GET /api/v1/pets/:id/matches.
func (h *MatchHandler) ListForPet(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	petID, ok := uuidParam(c, "id", "pet")
	if !ok {
		return
	}

	result, err := h.service.ListForPet(c.Request.Context(), ownerID, petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// MatchForPet handles GET /api/v1/pets/:id/match.
func (h *MatchHandler) MatchForPet(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	petID, ok := uuidParam(c, "id", "pet")
	if !ok {
		return
	}

	result, err := h.service.MatchForPet(c.Request.Context(), ownerID, petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
