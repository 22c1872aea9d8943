package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/votehub/votehub-api/internal/dto"
)

// AdminRequired gates a route to users with the admin role. Must run after
// LoadUser.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
