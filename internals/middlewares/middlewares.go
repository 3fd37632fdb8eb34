package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMiddleware "esta_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware dasar (urutan penting:
// recovery paling luar, lalu CORS, logger, rate limiter).
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggerMiddleware.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
