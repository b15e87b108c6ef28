// internals/features/users/auth/service/auth_service.go
package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kursusku_backend/internals/configs"
	authModel "kursusku_backend/internals/features/users/auth/model"
	userDTO "kursusku_backend/internals/features/users/user/dto"
	userModel "kursusku_backend/internals/features/users/user/model"
	helpers "kursusku_backend/internals/helpers"
)

var validate = validator.New()

/* ========================== REGISTER ========================== */
// POST /api/auth/register

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	UserName string `json:"user_name" validate:"required,min=2,max=255"`
}

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mendaftarkan user")
	}

	user := userModel.UserModel{
		UserName: strings.TrimSpace(req.UserName),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hash),
	}
	user.SetDefaultValues()

	if err := db.WithContext(c.Context()).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helpers.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
		}
		log.Printf("[ERROR] register: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mendaftarkan user")
	}

	return helpers.JsonCreated(c, "Registrasi berhasil. Silakan login.", fiber.Map{
		"user_id":   user.ID,
		"email":     user.Email,
		"user_name": user.UserName,
	})
}

/* ========================== LOGIN ========================== */
// POST /api/auth/login

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := db.WithContext(c.Context()).
		First(&user, "email = ?", strings.ToLower(strings.TrimSpace(req.Email))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal login")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Akun dinonaktifkan")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}

	now := time.Now().UTC()
	access, err := SignToken(BuildAccessClaims(user, now), configs.JWTSecret)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menerbitkan token")
	}
	refresh, err := SignToken(BuildRefreshClaims(user.ID, now), configs.JWTRefreshSecret)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menerbitkan token")
	}

	if err := db.WithContext(c.Context()).Create(&authModel.RefreshTokenModel{
		UserID:    user.ID,
		Token:     ComputeRefreshHash(refresh, configs.JWTRefreshSecret),
		ExpiresAt: now.Add(RefreshTTL),
		UserAgent: strptr(c.Get("User-Agent")),
		IP:        strptr(c.IP()),
	}).Error; err != nil {
		log.Printf("[ERROR] store refresh token: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal login")
	}

	SetAuthCookies(c, access, refresh, now)

	return helpers.JsonOK(c, "Login berhasil", fiber.Map{
		"user_id":      user.ID,
		"access_token": access,
		"expires_at":   now.Add(AccessTTL),
		"user":         userDTO.ToUserDTO(user),
	})
}

/* ========================== LOGOUT ========================== */
// POST /api/auth/logout

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	if refresh := strings.TrimSpace(c.Cookies("refresh_token")); refresh != "" {
		h := ComputeRefreshHash(refresh, configs.JWTRefreshSecret)
		if err := db.WithContext(c.Context()).
			Delete(&authModel.RefreshTokenModel{}, "token = ?", h).Error; err != nil {
			log.Printf("[WARN] logout revoke: %v", err)
		}
	}
	ClearAuthCookies(c)
	return helpers.JsonOK(c, "Logout berhasil", nil)
}

/* ========================== REFRESH ========================== */
// POST /api/auth/refresh-token rotates: old hash row deleted, new one stored.

func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	refreshCookie := strings.TrimSpace(c.Cookies("refresh_token"))
	if refreshCookie == "" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak ditemukan")
	}

	userID, err := ParseRefreshSubject(refreshCookie, configs.JWTRefreshSecret)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak valid")
	}

	h := ComputeRefreshHash(refreshCookie, configs.JWTRefreshSecret)
	var rt authModel.RefreshTokenModel
	if err := db.WithContext(c.Context()).
		First(&rt, "token = ? AND revoked_at IS NULL AND expires_at > NOW()", h).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak dikenali")
	}

	var user userModel.UserModel
	if err := db.WithContext(c.Context()).First(&user, "id = ?", userID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Akun dinonaktifkan")
	}

	now := time.Now().UTC()
	newAccess, err := SignToken(BuildAccessClaims(user, now), configs.JWTSecret)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menerbitkan token")
	}
	newRefresh, err := SignToken(BuildRefreshClaims(user.ID, now), configs.JWTRefreshSecret)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menerbitkan token")
	}

	err = db.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&authModel.RefreshTokenModel{}, "id = ?", rt.ID).Error; err != nil {
			return err
		}
		return tx.Create(&authModel.RefreshTokenModel{
			UserID:    user.ID,
			Token:     ComputeRefreshHash(newRefresh, configs.JWTRefreshSecret),
			ExpiresAt: now.Add(RefreshTTL),
			UserAgent: strptr(c.Get("User-Agent")),
			IP:        strptr(c.IP()),
		}).Error
	})
	if err != nil {
		log.Printf("[ERROR] rotate refresh token: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal merotasi token")
	}

	SetAuthCookies(c, newAccess, newRefresh, now)

	return helpers.JsonOK(c, "Token berhasil diperbarui", fiber.Map{
		"access_token": newAccess,
		"expires_at":   now.Add(AccessTTL),
	})
}

/* ========================== PASSWORDS ========================== */

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// POST /api/user/password
func ChangePassword(db *gorm.DB, c *fiber.Ctx, userID uuid.UUID) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := db.WithContext(c.Context()).First(&user, "id = ?", userID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Password lama salah")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah password")
	}
	if err := db.WithContext(c.Context()).Model(&userModel.UserModel{}).
		Where("id = ?", user.ID).Update("password", string(hash)).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah password")
	}
	return helpers.JsonOK(c, "Password berhasil diperbarui", nil)
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// POST /api/auth/forgot-password: uniform response whether or not the
// account exists, so the endpoint cannot be used for enumeration.
func ForgotPassword(db *gorm.DB, c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	var user userModel.UserModel
	err := db.WithContext(c.Context()).
		First(&user, "email = ?", strings.ToLower(strings.TrimSpace(req.Email))).Error
	if err == nil && user.IsActive {
		token := RandomToken(32)
		reset := authModel.PasswordResetModel{
			UserID:    user.ID,
			TokenHash: ComputeRefreshHash(token, configs.JWTSecret),
			ExpiresAt: time.Now().UTC().Add(30 * time.Minute),
		}
		if err := db.WithContext(c.Context()).Create(&reset).Error; err != nil {
			log.Printf("[ERROR] create password reset: %v", err)
		} else {
			// Delivery is the mailer's job; the token never appears in the response.
			log.Printf("[INFO] password reset issued for user %s", user.ID)
		}
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[ERROR] forgot password lookup: %v", err)
	}

	return helpers.JsonOK(c, "Jika email terdaftar, tautan reset sudah dikirim.", nil)
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// POST /api/auth/reset-password
func ResetPassword(db *gorm.DB, c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	h := ComputeRefreshHash(req.Token, configs.JWTSecret)
	var reset authModel.PasswordResetModel
	if err := db.WithContext(c.Context()).
		First(&reset, "token_hash = ? AND used_at IS NULL AND expires_at > NOW()", h).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Token reset tidak valid atau kedaluwarsa")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mereset password")
	}

	now := time.Now().UTC()
	err = db.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&userModel.UserModel{}).
			Where("id = ?", reset.UserID).Update("password", string(hash)).Error; err != nil {
			return err
		}
		if err := tx.Model(&authModel.PasswordResetModel{}).
			Where("id = ?", reset.ID).Update("used_at", now).Error; err != nil {
			return err
		}
		// Force re-login everywhere.
		return tx.Delete(&authModel.RefreshTokenModel{}, "user_id = ?", reset.UserID).Error
	})
	if err != nil {
		log.Printf("[ERROR] reset password: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mereset password")
	}
	return helpers.JsonOK(c, "Password berhasil direset. Silakan login.", nil)
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
