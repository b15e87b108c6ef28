package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/courses/lessons/controller"
	"kursusku_backend/internals/helpers/oss"
)

// LessonPublicRoutes registers lesson reads. The video endpoint sits here
// behind OptionalAuthJWT so free previews stay reachable without a login;
// the handler enforces purchase access for the rest.
func LessonPublicRoutes(api fiber.Router, db *gorm.DB, ossSvc *oss.Service) {
	ctl := controller.NewLessonController(db, ossSvc)

	api.Get("/modules/:moduleId/lessons", ctl.ListByModule)
	api.Get("/lessons/:id", ctl.GetLesson)
	api.Get("/lessons/:id/video", ctl.GetVideoURL)
}

// LessonInstructorRoutes registers lesson mutations (owner or admin).
func LessonInstructorRoutes(api fiber.Router, db *gorm.DB, ossSvc *oss.Service) {
	ctl := controller.NewLessonController(db, ossSvc)

	api.Post("/lessons", ctl.CreateLesson)
	api.Put("/lessons/reorder", ctl.ReorderLessons)
	api.Put("/lessons/:id", ctl.UpdateLesson)
	api.Delete("/lessons/:id", ctl.DeleteLesson)
}
