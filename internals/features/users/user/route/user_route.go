package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "kursusku_backend/internals/features/users/auth/controller"
	"kursusku_backend/internals/features/users/user/controller"
)

// UserRoutes registers the self-service profile endpoints (logged-in).
func UserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)
	authCtrl := authController.NewAuthController(db)

	user := api.Group("/user")
	user.Get("/profile", ctrl.GetProfile)
	user.Put("/profile", ctrl.UpdateProfile)
	user.Put("/avatar", ctrl.UpdateAvatar)
	user.Post("/password", authCtrl.ChangePassword)
}

// UserAdminRoutes registers user management (admin only).
func UserAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)

	api.Get("/users", ctrl.AdminListUsers)
	api.Put("/users/:id", ctrl.AdminUpdateUser)
	api.Delete("/users/:id", ctrl.AdminDeactivateUser)
}
