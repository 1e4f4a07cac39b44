package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/infrastructure/messaging"
)

// requireUpgrade rechaza con 426 lo que no sea un handshake WebSocket.
func requireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.Status(fiber.StatusUpgradeRequired).JSON(dto.NewError("UPGRADE_REQUIRED", "se requiere conexión WebSocket"))
}

// stockFeed registra la conexión en el hub y la mantiene hasta que el cliente cierra.
// Los mensajes entrantes se descartan: el canal es solo de salida.
func stockFeed(hub *messaging.Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		hub.Register(conn)
		defer hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
