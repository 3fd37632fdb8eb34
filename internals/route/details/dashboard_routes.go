// file: internals/route/details/dashboard_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	statsController "esta_backend/internals/features/dashboard/controller"
)

// ✅ Statistik marketplace (admin)
func DashboardRoutes(api fiber.Router, db *gorm.DB) {
	stats := statsController.NewStatsController(db)
	api.Get("/dashboard/stats", stats.Overview)
}
