// internals/features/dashboard/controller/stats_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	statsService "esta_backend/internals/features/dashboard/service"
	helper "esta_backend/internals/helpers"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

// ✅ GET /api/dashboard/stats
func (ctrl *StatsController) Overview(c *fiber.Ctx) error {
	stats, err := statsService.Overview(ctrl.DB)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build dashboard stats")
	}
	return helper.JsonOK(c, "ok", stats)
}
