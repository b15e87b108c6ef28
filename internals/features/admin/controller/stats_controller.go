package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	categoryModel "kursusku_backend/internals/features/courses/categories/model"
	courseModel "kursusku_backend/internals/features/courses/courses/model"
	reviewModel "kursusku_backend/internals/features/courses/reviews/model"
	paymentModel "kursusku_backend/internals/features/payments/model"
	userModel "kursusku_backend/internals/features/users/user/model"
	helpers "kursusku_backend/internals/helpers"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

type platformStats struct {
	TotalUsers         int64 `json:"total_users"`
	TotalCourses       int64 `json:"total_courses"`
	PublishedCourses   int64 `json:"published_courses"`
	TotalPurchases     int64 `json:"total_purchases"`
	CompletedPurchases int64 `json:"completed_purchases"`
	TotalRevenueIDR    int64 `json:"total_revenue_idr"`
	TotalReviews       int64 `json:"total_reviews"`
	TotalCategories    int64 `json:"total_categories"`
	NewUsers30Days     int64 `json:"new_users_30_days"`
	NewPurchases30Days int64 `json:"new_purchases_30_days"`
	Revenue30DaysIDR   int64 `json:"revenue_30_days_idr"`
}

// GET /api/admin/stats
func (ctl *StatsController) GetStats(c *fiber.Ctx) error {
	var s platformStats
	since := time.Now().AddDate(0, 0, -30)

	if err := ctl.DB.Model(&userModel.UserModel{}).Count(&s.TotalUsers).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung users")
	}
	if err := ctl.DB.Model(&courseModel.CourseModel{}).Count(&s.TotalCourses).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung courses")
	}
	if err := ctl.DB.Model(&courseModel.CourseModel{}).
		Where("course_status = ?", courseModel.CourseStatusPublished).
		Count(&s.PublishedCourses).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung courses")
	}
	if err := ctl.DB.Model(&paymentModel.PurchaseModel{}).Count(&s.TotalPurchases).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung pembelian")
	}
	if err := ctl.DB.Model(&paymentModel.PurchaseModel{}).
		Where("purchase_status = ?", paymentModel.PurchaseStatusCompleted).
		Count(&s.CompletedPurchases).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung pembelian")
	}
	if err := ctl.DB.Model(&paymentModel.PurchaseModel{}).
		Where("purchase_status = ?", paymentModel.PurchaseStatusCompleted).
		Select("COALESCE(SUM(purchase_amount_idr), 0)").
		Scan(&s.TotalRevenueIDR).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung pendapatan")
	}
	if err := ctl.DB.Model(&reviewModel.ReviewModel{}).Count(&s.TotalReviews).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung review")
	}
	if err := ctl.DB.Model(&categoryModel.CategoryModel{}).Count(&s.TotalCategories).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung kategori")
	}

	if err := ctl.DB.Model(&userModel.UserModel{}).
		Where("created_at >= ?", since).
		Count(&s.NewUsers30Days).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung users baru")
	}
	if err := ctl.DB.Model(&paymentModel.PurchaseModel{}).
		Where("purchase_created_at >= ?", since).
		Count(&s.NewPurchases30Days).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung pembelian baru")
	}
	if err := ctl.DB.Model(&paymentModel.PurchaseModel{}).
		Where("purchase_status = ? AND purchase_paid_at >= ?",
			paymentModel.PurchaseStatusCompleted, since).
		Select("COALESCE(SUM(purchase_amount_idr), 0)").
		Scan(&s.Revenue30DaysIDR).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung pendapatan")
	}

	return helpers.JsonOK(c, "Statistik platform berhasil diambil", s)
}
