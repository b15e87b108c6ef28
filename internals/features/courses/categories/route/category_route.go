package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/courses/categories/controller"
)

// CategoryPublicRoutes exposes the ordered category list.
func CategoryPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewCategoryController(db)

	api.Get("/categories", ctl.ListCategories)
}

// CategoryAdminRoutes registers category management (admin only).
func CategoryAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewCategoryController(db)

	api.Post("/categories", ctl.CreateCategory)
	api.Put("/categories/:id", ctl.UpdateCategory)
	api.Delete("/categories/:id", ctl.DeleteCategory)
}
