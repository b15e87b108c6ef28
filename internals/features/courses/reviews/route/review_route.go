package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/courses/reviews/controller"
)

// ReviewPublicRoutes exposes course review listings.
func ReviewPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewReviewController(db)

	api.Get("/courses/:courseId/reviews", ctl.ListByCourse)
}

// ReviewUserRoutes registers review mutations for logged-in students.
func ReviewUserRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewReviewController(db)

	api.Post("/reviews", ctl.CreateReview)
	api.Put("/reviews/:id", ctl.UpdateReview)
	api.Delete("/reviews/:id", ctl.DeleteReview)
}
