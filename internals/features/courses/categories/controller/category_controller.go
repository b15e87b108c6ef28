package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/courses/categories/dto"
	"kursusku_backend/internals/features/courses/categories/model"
	helpers "kursusku_backend/internals/helpers"
)

type CategoryController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db, Validator: validator.New()}
}

// GET /api/categories
func (ctl *CategoryController) ListCategories(c *fiber.Ctx) error {
	var categories []model.CategoryModel
	if err := ctl.DB.
		Order("category_order ASC, category_name ASC").
		Find(&categories).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil kategori")
	}

	out := make([]dto.CategoryDTO, 0, len(categories))
	for _, m := range categories {
		out = append(out, dto.ToCategoryDTO(m))
	}
	return helpers.JsonOK(c, "Daftar kategori berhasil diambil", out)
}

// POST /api/admin/categories
func (ctl *CategoryController) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	base := helpers.Slugify(req.CategoryName, 100)
	slug, err := helpers.EnsureUniqueSlugCI(c.Context(), ctl.DB, "categories", "category_slug", base, nil, 100)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat slug kategori")
	}

	m := model.CategoryModel{
		CategoryName:        req.CategoryName,
		CategorySlug:        slug,
		CategoryDescription: req.CategoryDescription,
		CategoryIcon:        req.CategoryIcon,
		CategoryOrder:       req.CategoryOrder,
	}
	if err := ctl.DB.Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, "Kategori dengan slug tersebut sudah ada")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat kategori")
	}
	return helpers.JsonCreated(c, "Kategori berhasil dibuat", dto.ToCategoryDTO(m))
}

// PUT /api/admin/categories/:id
func (ctl *CategoryController) UpdateCategory(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Category ID tidak valid")
	}

	var m model.CategoryModel
	if err := ctl.DB.First(&m, "category_id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Kategori tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil kategori")
	}

	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	if req.CategoryName != nil && *req.CategoryName != m.CategoryName {
		m.CategoryName = *req.CategoryName
		base := helpers.Slugify(m.CategoryName, 100)
		slug, err := helpers.EnsureUniqueSlugCI(c.Context(), ctl.DB, "categories", "category_slug", base,
			func(q *gorm.DB) *gorm.DB { return q.Where("category_id <> ?", categoryID) }, 100)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat slug kategori")
		}
		m.CategorySlug = slug
	}
	if req.CategoryDescription != nil {
		m.CategoryDescription = *req.CategoryDescription
	}
	if req.CategoryIcon != nil {
		m.CategoryIcon = *req.CategoryIcon
	}
	if req.CategoryOrder != nil {
		m.CategoryOrder = *req.CategoryOrder
	}
	m.CategoryUpdatedAt = time.Now()

	if err := ctl.DB.Save(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, "Kategori dengan slug tersebut sudah ada")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui kategori")
	}
	return helpers.JsonOK(c, "Kategori berhasil diperbarui", dto.ToCategoryDTO(m))
}

// DELETE /api/admin/categories/:id
func (ctl *CategoryController) DeleteCategory(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Category ID tidak valid")
	}

	res := ctl.DB.Delete(&model.CategoryModel{}, "category_id = ?", categoryID)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus kategori")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Kategori tidak ditemukan")
	}
	return helpers.JsonOK(c, "Kategori berhasil dihapus", fiber.Map{"category_id": categoryID})
}
