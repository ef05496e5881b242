package server

import (
	"recipebox/internal/cache"
	"recipebox/internal/middleware"
	"recipebox/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// IssueWSTicket handles POST /api/ws/ticket
// @Summary Issue a single-use WebSocket ticket
// @Description The ticket is valid for 60 seconds and is passed as ?ticket= on /api/ws.
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{ticket=string,expires_in=int}
// @Failure 503 {object} models.ErrorResponse
// @Router /ws/ticket [post]
func (s *Server) IssueWSTicket(c *fiber.Ctx) error {
	if s.redis == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			&models.AppError{Code: models.CodeInternal, Message: "Notifications unavailable"})
	}

	ticket := uuid.NewString()
	if err := s.redis.Set(c.UserContext(), cache.WSTicketKey(ticket), currentUsername(c), cache.WSTicketTTL).Err(); err != nil {
		return mapServiceError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"ticket":     ticket,
		"expires_in": int(cache.WSTicketTTL.Seconds()),
	})
}

// WebsocketHandler streams points_awarded notifications to the caller.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		username, ok := conn.Locals("username").(string)
		if !ok || username == "" {
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(username, conn)
		if err != nil {
			middleware.Logger.Warn("websocket register failed", "username", username, "error", err.Error())
			_ = conn.WriteJSON(fiber.Map{"error": err.Error()})
			_ = conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}
