package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/users/user/dto"
	"kursusku_backend/internals/features/users/user/model"
	helpers "kursusku_backend/internals/helpers"
	authMw "kursusku_backend/internals/middlewares/auth"
)

type UserController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Validator: validator.New()}
}

/* =============================
   Profile (self)
============================= */

// GET /api/user/profile
func (ctrl *UserController) GetProfile(c *fiber.Ctx) error {
	uid, err := authMw.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Harus login")
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.Context()).First(&user, "id = ?", uid).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
	}
	return helpers.JsonOK(c, "OK", dto.ToUserDTO(user))
}

// PUT /api/user/profile
func (ctrl *UserController) UpdateProfile(c *fiber.Ctx) error {
	uid, err := authMw.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Harus login")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	if err := ctrl.DB.WithContext(c.Context()).Model(&model.UserModel{}).
		Where("id = ?", uid).Update("user_name", req.UserName).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui profil")
	}
	return helpers.JsonOK(c, "Profil berhasil diperbarui", nil)
}

// PUT /api/user/avatar
func (ctrl *UserController) UpdateAvatar(c *fiber.Ctx) error {
	uid, err := authMw.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Harus login")
	}

	var req dto.UpdateAvatarRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	if err := ctrl.DB.WithContext(c.Context()).Model(&model.UserModel{}).
		Where("id = ?", uid).Update("avatar_key", req.AvatarKey).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui avatar")
	}
	return helpers.JsonOK(c, "Avatar berhasil diperbarui", nil)
}

/* =============================
   Admin
============================= */

// GET /api/admin/users?role=&search=
func (ctrl *UserController) AdminListUsers(c *fiber.Ctx) error {
	p := helpers.ParseFiber(c, "created_at", "desc", helpers.AdminPageOpts)

	q := ctrl.DB.WithContext(c.Context()).Model(&model.UserModel{})
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if search := c.Query("search"); search != "" {
		q = q.Where("user_name ILIKE ? OR email ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil user")
	}

	allowed := map[string]string{"created_at": "created_at", "user_name": "user_name", "email": "email"}
	var users []model.UserModel
	if err := q.Order(p.SafeOrderClause(allowed, "created_at")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&users).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil user")
	}

	out := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserDTO(u))
	}
	return helpers.JsonOK(c, "OK", fiber.Map{
		"users": out,
		"meta":  helpers.BuildPageMeta(total, p),
	})
}

// PUT /api/admin/users/:id
func (ctrl *UserController) AdminUpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.Context()).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil user")
	}

	updates := map[string]interface{}{}
	if req.UserName != nil {
		updates["user_name"] = *req.UserName
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helpers.JsonOK(c, "Tidak ada yang diperbarui", dto.ToUserDTO(user))
	}

	if err := ctrl.DB.WithContext(c.Context()).Model(&user).Updates(updates).Error; err != nil {
		log.Printf("[ERROR] admin update user: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui user")
	}
	return helpers.JsonOK(c, "User berhasil diperbarui", dto.ToUserDTO(user))
}

// DELETE /api/admin/users/:id deactivates; rows are never hard-deleted so
// purchase history keeps its owner.
func (ctrl *UserController) AdminDeactivateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	res := ctrl.DB.WithContext(c.Context()).Model(&model.UserModel{}).
		Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menonaktifkan user")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
	}
	return helpers.JsonOK(c, "User berhasil dinonaktifkan", nil)
}
