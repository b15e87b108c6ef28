package database

import (
	"log"

	"gorm.io/gorm"

	categoryModel "kursusku_backend/internals/features/courses/categories/model"
	courseModel "kursusku_backend/internals/features/courses/courses/model"
	lessonModel "kursusku_backend/internals/features/courses/lessons/model"
	moduleModel "kursusku_backend/internals/features/courses/modules/model"
	reviewModel "kursusku_backend/internals/features/courses/reviews/model"
	paymentModel "kursusku_backend/internals/features/payments/model"
	progressModel "kursusku_backend/internals/features/progress/model"
	authModel "kursusku_backend/internals/features/users/auth/model"
	userModel "kursusku_backend/internals/features/users/user/model"
)

// AutoMigrate creates or updates every table, including the unique indexes
// the purchase and review idempotency relies on. Opt-in via DB_AUTO_MIGRATE;
// production schemas are managed with SQL migrations.
func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.RefreshTokenModel{},
		&authModel.PasswordResetModel{},
		&categoryModel.CategoryModel{},
		&courseModel.CourseModel{},
		&moduleModel.ModuleModel{},
		&lessonModel.LessonModel{},
		&reviewModel.ReviewModel{},
		&paymentModel.PurchaseModel{},
		&paymentModel.GatewayEventModel{},
		&progressModel.ProgressModel{},
	)
	if err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}
	log.Println("✅ AutoMigrate done.")
}
