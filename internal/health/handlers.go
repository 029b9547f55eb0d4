package health

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Handlers exposes the liveness endpoint.
type Handlers struct {
	DB *gorm.DB
}

// Check GET /health
func (h *Handlers) Check(c *fiber.Ctx) error {
	if h.DB != nil {
		sqlDB, err := h.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
