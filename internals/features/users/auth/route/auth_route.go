package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/configs"
	"kursusku_backend/internals/features/users/auth/controller"
	"kursusku_backend/internals/middlewares"
	authMw "kursusku_backend/internals/middlewares/auth"
)

func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/logout", ctrl.Logout)
	auth.Post("/refresh-token", ctrl.RefreshToken)
	auth.Post("/forgot-password", middlewares.ForgotPasswordRateLimiter(), ctrl.ForgotPassword)
	auth.Post("/reset-password", ctrl.ResetPassword)

	// Session resolves the identity when present, degrades otherwise.
	auth.Get("/session",
		authMw.OptionalAuthJWT(authMw.AuthJWTOpts{Secret: configs.JWTSecret, AllowCookieFallback: true}),
		ctrl.Session,
	)
}
