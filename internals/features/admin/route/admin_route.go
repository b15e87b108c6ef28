package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/admin/controller"
)

// AdminStatsRoutes registers the platform dashboard numbers (admin only).
func AdminStatsRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewStatsController(db)

	api.Get("/stats", ctl.GetStats)
}
