package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger lo cumple *pgxpool.Pool; nil en modo memoria.
type Pinger interface {
	Ping(ctx context.Context) error
}

// health responde 200 si el almacenamiento responde, 503 si no.
func health(db Pinger, storage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "storage": storage})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "storage": storage})
	}
}
