package middleware

import (
	"github.com/Rjvaldo21/correspondence/models"
	"github.com/Rjvaldo21/correspondence/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func RequireRole(allowedRoles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(ContextClaimsKey).(*utils.JWTClaims)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}
		for _, role := range allowedRoles {
			if claims.Role == role {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{"error": "Forbidden"})
	}
}

func RequireSekretariat() fiber.Handler {
	return RequireRole(models.RoleSekretariat, models.RoleAdmin)
}
func RequireDirektur() fiber.Handler { return RequireRole(models.RoleDirektur, models.RoleAdmin) }
func RequireAdmin() fiber.Handler    { return RequireRole(models.RoleAdmin) }

// GetUserFromContext membangun user ringan dari claims token. Handler yang
// butuh relasi (grup RHS, keanggotaan) tetap harus fetch dari database.
func GetUserFromContext(c *fiber.Ctx) (*models.User, error) {
	claims, ok := c.Locals(ContextClaimsKey).(*utils.JWTClaims)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	return &models.User{
		Model: gorm.Model{ID: claims.UserID},
		Role:  claims.Role,
		Email: claims.Email,
	}, nil
}
