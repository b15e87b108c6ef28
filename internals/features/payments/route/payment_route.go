package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/payments/controller"
	"kursusku_backend/internals/features/payments/service"
)

// PaymentWebhookRoutes registers the gateway notification endpoint. It is
// unauthenticated; the request is trusted through its signature instead.
func PaymentWebhookRoutes(api fiber.Router, db *gorm.DB, gateway *service.Gateway) {
	ctl := controller.NewPaymentController(db, gateway)

	api.Post("/payments/webhook", ctl.Webhook)
}

// PaymentUserRoutes registers checkout and verification for logged-in users.
func PaymentUserRoutes(api fiber.Router, db *gorm.DB, gateway *service.Gateway) {
	ctl := controller.NewPaymentController(db, gateway)

	api.Post("/payments/create-checkout", ctl.CreateCheckout)
	api.Get("/payments/verify-session", ctl.VerifySession)
	api.Get("/payments/verify/:courseId", ctl.VerifyCourseAccess)
	api.Get("/payments/history", ctl.History)
	api.Get("/user/purchases", ctl.History)
}

// PaymentAdminRoutes registers the moderation list over all purchases.
func PaymentAdminRoutes(admin fiber.Router, db *gorm.DB, gateway *service.Gateway) {
	ctl := controller.NewPaymentController(db, gateway)

	admin.Get("/purchases", ctl.AdminListPurchases)
}
