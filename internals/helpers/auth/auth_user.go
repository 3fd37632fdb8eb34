// file: internals/helpers/auth/auth_user.go
package auth

import (
	"github.com/gofiber/fiber/v2"
)

// AuthUser adalah identitas ter-autentikasi dari token identity provider.
// Immutable selama request; ditaruh sekali di c.Locals oleh middleware auth.
type AuthUser struct {
	ID       string
	Role     string
	Username string
}

const localsKey = "auth_user"

func SetAuthUser(c *fiber.Ctx, u AuthUser) {
	c.Locals(localsKey, u)
}

// GetAuthUser mengembalikan identitas aktor; ok=false jika request anonim.
func GetAuthUser(c *fiber.Ctx) (AuthUser, bool) {
	u, ok := c.Locals(localsKey).(AuthUser)
	return u, ok
}

// MustAuthUser: untuk handler di belakang middleware auth wajib.
func MustAuthUser(c *fiber.Ctx) (AuthUser, error) {
	u, ok := GetAuthUser(c)
	if !ok || u.ID == "" {
		return AuthUser{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: Missing token")
	}
	return u, nil
}
