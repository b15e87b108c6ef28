package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/courses/modules/controller"
)

// ModulePublicRoutes registers the read-only module endpoints.
func ModulePublicRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewModuleController(db)

	api.Get("/courses/:courseId/modules", ctl.ListByCourse)
	api.Get("/modules/:id", ctl.GetModule)
}

// ModuleInstructorRoutes registers module mutations (owner or admin).
func ModuleInstructorRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewModuleController(db)

	api.Post("/modules", ctl.CreateModule)
	api.Put("/modules/reorder", ctl.ReorderModules)
	api.Put("/modules/:id", ctl.UpdateModule)
	api.Delete("/modules/:id", ctl.DeleteModule)
}
