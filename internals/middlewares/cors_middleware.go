// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"esta_backend/internals/configs"
)

// CorsMiddleware membuat middleware CORS.
// Origin frontend diambil dari env supaya dashboard & web publik bisa kirim cookie.
func CorsMiddleware() fiber.Handler {
	origins := []string{
		"http://localhost:5173",
		"http://localhost:3000",
	}
	if configs.FrontendDashURL != "" {
		origins = append(origins, configs.FrontendDashURL)
	}
	if configs.FrontendPubURL != "" {
		origins = append(origins, configs.FrontendPubURL)
	}

	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	})
}
