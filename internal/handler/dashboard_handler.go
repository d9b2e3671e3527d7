package handler

import (
	"vetvox-be/internal/pkg/logger"
	"vetvox-be/internal/pkg/serverutils"
	internalWS "vetvox-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// DashboardHandler serves the live visit feed: dashboards connect here and
// receive visit.created / visit.notes_updated events pushed through the hub.
type DashboardHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewDashboardHandler(hub *internalWS.Hub, log logger.ILogger) *DashboardHandler {
	return &DashboardHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *DashboardHandler) ServeWs(c *fiber.Ctx) error {
	userID, err := serverutils.UserIdFromWsRequest(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("DashboardHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, conn, userID)
			h.logger.Info("DashboardHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the dashboard feed route.
func (h *DashboardHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
