// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"esta_backend/internals/configs"
	helperAuth "esta_backend/internals/helpers/auth"
)

const accessTokenCookie = "accessToken"

type tokenClaims struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// parseAccessToken memverifikasi cookie accessToken (RS256, kunci publik
// dimuat saat startup). Token dipercaya sepenuhnya setelah signature valid.
func parseAccessToken(c *fiber.Ctx) (helperAuth.AuthUser, error) {
	tokenString := strings.TrimSpace(c.Cookies(accessTokenCookie))
	if tokenString == "" {
		return helperAuth.AuthUser{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: No token provided")
	}

	if configs.JWTPublicKey == nil {
		log.Println("[ERROR] Kunci publik JWT belum dimuat")
		return helperAuth.AuthUser{}, fiber.NewError(fiber.StatusInternalServerError, "Missing JWT public key")
	}

	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "unexpected signing method")
		}
		return configs.JWTPublicKey, nil
	})
	if err != nil {
		return helperAuth.AuthUser{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: Invalid token")
	}
	if claims.ID == "" || claims.Role == "" {
		return helperAuth.AuthUser{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: Invalid token payload")
	}

	return helperAuth.AuthUser{
		ID:       claims.ID,
		Role:     claims.Role,
		Username: claims.Username,
	}, nil
}

// AuthRequired: token wajib; identitas disimpan immutable di locals.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := parseAccessToken(c)
		if err != nil {
			return err
		}
		helperAuth.SetAuthUser(c, user)
		return c.Next()
	}
}

// OptionalAuth: token boleh kosong/invalid; request lanjut sebagai anonim.
// Dipakai route publik yang membedakan admin (listing course).
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if user, err := parseAccessToken(c); err == nil {
			helperAuth.SetAuthUser(c, user)
		}
		return c.Next()
	}
}
