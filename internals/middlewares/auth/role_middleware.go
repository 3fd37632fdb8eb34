package auth

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helperAuth "esta_backend/internals/helpers/auth"
)

// OnlyRoles validasi role aktor terhadap daftar yang diizinkan.
// Dipasang SETELAH AuthRequired / OptionalAuth.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := helperAuth.GetAuthUser(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: missing role information",
			})
		}

		for _, allowed := range roles {
			if user.Role == allowed {
				return c.Next()
			}
		}

		if customMessage == "" {
			customMessage = "Forbidden: you are not authorized to access this resource"
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": customMessage,
		})
	}
}

// AllowPreviewOr: bypass auth kalau lesson berstatus preview, selain itu
// auth wajib + role gate. Dipakai route streaming lesson.
func AllowPreviewOr(db *gorm.DB, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonID := c.Params("lessonId")
		if lessonID != "" {
			var isPreview bool
			err := db.Raw("SELECT is_preview FROM lessons WHERE id = ?", lessonID).Scan(&isPreview).Error
			if err == nil && isPreview {
				return c.Next()
			}
		}

		user, err := parseAccessToken(c)
		if err != nil {
			return err
		}
		helperAuth.SetAuthUser(c, user)

		for _, allowed := range roles {
			if user.Role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden: you are not authorized to access this resource",
		})
	}
}
