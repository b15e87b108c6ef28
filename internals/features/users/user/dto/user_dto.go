package dto

import (
	"time"

	"kursusku_backend/internals/features/users/user/model"
)

/* ============================
   Response DTO
============================ */

type UserDTO struct {
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	AvatarKey *string   `json:"avatar_key,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

/* ============================
   Request DTO
============================ */

type UpdateProfileRequest struct {
	UserName string `json:"user_name" validate:"required,min=2,max=255"`
}

type UpdateAvatarRequest struct {
	AvatarKey string `json:"avatar_key" validate:"required,max=500"`
}

type AdminUpdateUserRequest struct {
	UserName *string `json:"user_name" validate:"omitempty,min=2,max=255"`
	Role     *string `json:"role" validate:"omitempty,oneof=student instructor admin"`
	IsActive *bool   `json:"is_active"`
}

/* ============================
   Converter
============================ */

func ToUserDTO(m model.UserModel) UserDTO {
	return UserDTO{
		UserID:    m.ID.String(),
		UserName:  m.UserName,
		Email:     m.Email,
		AvatarKey: m.AvatarKey,
		Role:      m.Role,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
