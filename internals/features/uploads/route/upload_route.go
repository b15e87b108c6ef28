package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/uploads/controller"
	"kursusku_backend/internals/helpers/oss"
)

// UploadRoutes registers direct-upload signing and signed file reads
// (logged-in users).
func UploadRoutes(api fiber.Router, db *gorm.DB, ossSvc *oss.Service) {
	ctl := controller.NewUploadController(db, ossSvc)

	api.Post("/uploads/sign", ctl.SignUpload)
	api.Get("/files/*", ctl.SignedFileURL)
}
