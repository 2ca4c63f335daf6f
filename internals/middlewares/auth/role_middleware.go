package auth

import (
	"github.com/gofiber/fiber/v2"
)

// IsAdmin menolak request tanpa flag admin di token.
func IsAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, ok := c.Locals("is_admin").(bool)
		if !ok || !isAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Forbidden: akses khusus admin",
			})
		}
		return c.Next()
	}
}
