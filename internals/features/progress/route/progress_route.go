package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/progress/controller"
)

// ProgressRoutes registers video progress tracking (logged-in users).
func ProgressRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewProgressController(db)

	api.Post("/progress", ctl.UpsertProgress)
	api.Get("/progress/:courseId", ctl.GetCourseProgress)
	api.Get("/progress", ctl.QueryProgress)
}
