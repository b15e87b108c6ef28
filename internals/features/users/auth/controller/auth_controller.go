package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/users/auth/service"
	userDTO "kursusku_backend/internals/features/users/user/dto"
	userModel "kursusku_backend/internals/features/users/user/model"
	authMw "kursusku_backend/internals/middlewares/auth"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	return service.Register(ac.DB, c)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ac.DB, c)
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return service.Logout(ac.DB, c)
}

func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	return service.RefreshToken(ac.DB, c)
}

func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error {
	return service.ForgotPassword(ac.DB, c)
}

func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	return service.ResetPassword(ac.DB, c)
}

// POST /api/user/password (logged-in)
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	uid, err := authMw.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Harus login")
	}
	return service.ChangePassword(ac.DB, c, uid)
}

// GET /api/auth/session never errors: anonymous callers get user:null.
func (ac *AuthController) Session(c *fiber.Ctx) error {
	uid, err := authMw.UserID(c)
	if err != nil {
		return c.JSON(fiber.Map{"user": nil, "is_authenticated": false})
	}

	var user userModel.UserModel
	if err := ac.DB.WithContext(c.Context()).First(&user, "id = ?", uid).Error; err != nil {
		return c.JSON(fiber.Map{"user": nil, "is_authenticated": false})
	}

	return c.JSON(fiber.Map{
		"user":             userDTO.ToUserDTO(user),
		"is_authenticated": true,
	})
}
