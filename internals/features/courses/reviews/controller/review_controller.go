package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	courseModel "kursusku_backend/internals/features/courses/courses/model"
	"kursusku_backend/internals/features/courses/reviews/dto"
	"kursusku_backend/internals/features/courses/reviews/model"
	"kursusku_backend/internals/features/courses/reviews/service"
	paymentService "kursusku_backend/internals/features/payments/service"
	userModel "kursusku_backend/internals/features/users/user/model"
	helpers "kursusku_backend/internals/helpers"
	authMw "kursusku_backend/internals/middlewares/auth"
)

type ReviewController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db, Validator: validator.New()}
}

// GET /api/courses/:courseId/reviews
func (ctl *ReviewController) ListByCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Course ID tidak valid")
	}

	var reviews []model.ReviewModel
	if err := ctl.DB.
		Where("review_course_id = ?", courseID).
		Order("review_created_at DESC").
		Find(&reviews).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil review")
	}

	// batch-load reviewer names
	names := map[uuid.UUID]string{}
	if len(reviews) > 0 {
		ids := make([]uuid.UUID, 0, len(reviews))
		for _, r := range reviews {
			ids = append(ids, r.ReviewUserID)
		}
		var users []userModel.UserModel
		if err := ctl.DB.Select("id", "user_name").Find(&users, "id IN ?", ids).Error; err == nil {
			for _, u := range users {
				names[u.ID] = u.UserName
			}
		}
	}

	out := make([]dto.ReviewDTO, 0, len(reviews))
	ratings := make([]int, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, dto.ToReviewDTO(r, names[r.ReviewUserID]))
		ratings = append(ratings, r.ReviewRating)
	}

	return helpers.JsonOK(c, "Daftar review berhasil diambil", dto.CourseReviewsResponse{
		Reviews:       out,
		TotalReviews:  int64(len(out)),
		AverageRating: service.AverageRating(ratings),
	})
}

// POST /api/reviews
//
// Only buyers may review: a completed purchase is required. The composite
// unique index turns a second review from the same user into a 409.
func (ctl *ReviewController) CreateReview(c *fiber.Ctx) error {
	userID, err := authMw.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Harus login")
	}

	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	courseID, _ := uuid.Parse(req.ReviewCourseID)
	var course courseModel.CourseModel
	if err := ctl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil course")
	}

	purchased, err := paymentService.HasCompletedPurchase(ctl.DB, userID, courseID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa pembelian")
	}
	if !purchased {
		return fiber.NewError(fiber.StatusForbidden, "Beli course ini untuk memberi review")
	}

	m := model.ReviewModel{
		ReviewUserID:   userID,
		ReviewCourseID: courseID,
		ReviewRating:   req.ReviewRating,
		ReviewComment:  req.ReviewComment,
	}
	if err := ctl.DB.Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, "Anda sudah memberi review untuk course ini")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat review")
	}
	return helpers.JsonCreated(c, "Review berhasil dibuat", dto.ToReviewDTO(m, ""))
}

// PUT /api/reviews/:id
func (ctl *ReviewController) UpdateReview(c *fiber.Ctx) error {
	userID, err := authMw.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Harus login")
	}
	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Review ID tidak valid")
	}

	var m model.ReviewModel
	if err := ctl.DB.First(&m, "review_id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Review tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil review")
	}
	if m.ReviewUserID != userID {
		return fiber.NewError(fiber.StatusForbidden, "Bukan review milik Anda")
	}

	var req dto.UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	if req.ReviewRating != nil {
		m.ReviewRating = *req.ReviewRating
	}
	if req.ReviewComment != nil {
		m.ReviewComment = *req.ReviewComment
	}
	m.ReviewUpdatedAt = time.Now()

	if err := ctl.DB.Save(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui review")
	}
	return helpers.JsonOK(c, "Review berhasil diperbarui", dto.ToReviewDTO(m, ""))
}

// DELETE /api/reviews/:id (owner or admin)
func (ctl *ReviewController) DeleteReview(c *fiber.Ctx) error {
	userID, err := authMw.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Harus login")
	}
	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Review ID tidak valid")
	}

	var m model.ReviewModel
	if err := ctl.DB.First(&m, "review_id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Review tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil review")
	}
	if m.ReviewUserID != userID && authMw.UserRole(c) != constants.RoleAdmin {
		return fiber.NewError(fiber.StatusForbidden, "Bukan review milik Anda")
	}

	if err := ctl.DB.Delete(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus review")
	}
	return helpers.JsonOK(c, "Review berhasil dihapus", fiber.Map{"review_id": reviewID})
}
