package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/configs"
	adminRoute "kursusku_backend/internals/features/admin/route"
	categoryRoute "kursusku_backend/internals/features/courses/categories/route"
	courseRoute "kursusku_backend/internals/features/courses/courses/route"
	lessonRoute "kursusku_backend/internals/features/courses/lessons/route"
	moduleRoute "kursusku_backend/internals/features/courses/modules/route"
	reviewRoute "kursusku_backend/internals/features/courses/reviews/route"
	paymentRoute "kursusku_backend/internals/features/payments/route"
	paymentService "kursusku_backend/internals/features/payments/service"
	progressRoute "kursusku_backend/internals/features/progress/route"
	uploadRoute "kursusku_backend/internals/features/uploads/route"
	authRoute "kursusku_backend/internals/features/users/auth/route"
	userRoute "kursusku_backend/internals/features/users/user/route"
	"kursusku_backend/internals/helpers/oss"
	authMw "kursusku_backend/internals/middlewares/auth"
)

// SetupRoutes wires every feature under /api. Groups share middleware
// chains: public reads carry an optional JWT so drafts and previews resolve
// per caller, user endpoints require a login, instructor and admin groups
// add role checks on top.
func SetupRoutes(app *fiber.App, db *gorm.DB, ossSvc *oss.Service, gateway *paymentService.Gateway) {
	api := app.Group("/api")

	authOpts := authMw.AuthJWTOpts{Secret: configs.JWTSecret, AllowCookieFallback: true}

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(api, db)

	// ===================== WEBHOOK (no auth, signature-verified) =====================
	log.Println("[INFO] Setting up PaymentWebhookRoutes...")
	paymentRoute.PaymentWebhookRoutes(api, db, gateway)

	// ===================== PUBLIC (optional JWT) =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := api.Group("", authMw.OptionalAuthJWT(authOpts))
	courseRoute.CoursePublicRoutes(public, db)
	moduleRoute.ModulePublicRoutes(public, db)
	lessonRoute.LessonPublicRoutes(public, db, ossSvc)
	categoryRoute.CategoryPublicRoutes(public, db)
	reviewRoute.ReviewPublicRoutes(public, db)

	// ===================== USER (JWT required) =====================
	log.Println("[INFO] Setting up USER group...")
	user := api.Group("", authMw.AuthJWT(authOpts))
	userRoute.UserRoutes(user, db)
	reviewRoute.ReviewUserRoutes(user, db)
	paymentRoute.PaymentUserRoutes(user, db, gateway)
	progressRoute.ProgressRoutes(user, db)
	uploadRoute.UploadRoutes(user, db, ossSvc)

	// ===================== INSTRUCTOR =====================
	log.Println("[INFO] Setting up INSTRUCTOR group...")
	instructor := api.Group("", authMw.AuthJWT(authOpts), authMw.RequireInstructor())
	courseRoute.CourseInstructorRoutes(instructor, db)
	moduleRoute.ModuleInstructorRoutes(instructor, db)
	lessonRoute.LessonInstructorRoutes(instructor, db, ossSvc)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := api.Group("/admin", authMw.AuthJWT(authOpts), authMw.RequireAdmin())
	userRoute.UserAdminRoutes(admin, db)
	categoryRoute.CategoryAdminRoutes(admin, db)
	courseRoute.CourseAdminRoutes(admin, db)
	paymentRoute.PaymentAdminRoutes(admin, db, gateway)
	adminRoute.AdminStatsRoutes(admin, db)

	log.Println("✅ Routes registered")
}
