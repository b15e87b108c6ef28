package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/courses/courses/controller"
)

// CoursePublicRoutes registers browsing endpoints. They pass through
// OptionalAuthJWT so drafts stay hidden from anonymous visitors.
func CoursePublicRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewCourseController(db)

	api.Get("/courses", ctl.ListCourses)
	api.Get("/courses/:id", ctl.GetCourse)
}

// CourseInstructorRoutes registers course mutations (owner or admin).
func CourseInstructorRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewCourseController(db)

	api.Post("/courses", ctl.CreateCourse)
	api.Put("/courses/:id", ctl.UpdateCourse)
	api.Delete("/courses/:id", ctl.DeleteCourse)
}

// CourseAdminRoutes registers the moderation list (every course, any status).
func CourseAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewCourseController(db)

	admin.Get("/courses", ctl.AdminListCourses)
}
