package dto

import (
	"time"

	"kursusku_backend/internals/features/courses/categories/model"
)

type CategoryDTO struct {
	CategoryID          string    `json:"category_id"`
	CategoryName        string    `json:"category_name"`
	CategorySlug        string    `json:"category_slug"`
	CategoryDescription string    `json:"category_description"`
	CategoryIcon        string    `json:"category_icon"`
	CategoryOrder       int       `json:"category_order"`
	CategoryCreatedAt   time.Time `json:"category_created_at"`
	CategoryUpdatedAt   time.Time `json:"category_updated_at"`
}

func ToCategoryDTO(m model.CategoryModel) CategoryDTO {
	return CategoryDTO{
		CategoryID:          m.CategoryID.String(),
		CategoryName:        m.CategoryName,
		CategorySlug:        m.CategorySlug,
		CategoryDescription: m.CategoryDescription,
		CategoryIcon:        m.CategoryIcon,
		CategoryOrder:       m.CategoryOrder,
		CategoryCreatedAt:   m.CategoryCreatedAt,
		CategoryUpdatedAt:   m.CategoryUpdatedAt,
	}
}

type CreateCategoryRequest struct {
	CategoryName        string `json:"category_name" validate:"required,min=2,max=100"`
	CategoryDescription string `json:"category_description"`
	CategoryIcon        string `json:"category_icon" validate:"omitempty,max=100"`
	CategoryOrder       int    `json:"category_order" validate:"min=0"`
}

type UpdateCategoryRequest struct {
	CategoryName        *string `json:"category_name" validate:"omitempty,min=2,max=100"`
	CategoryDescription *string `json:"category_description"`
	CategoryIcon        *string `json:"category_icon" validate:"omitempty,max=100"`
	CategoryOrder       *int    `json:"category_order" validate:"omitempty,min=0"`
}
