package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	lessonModel "kursusku_backend/internals/features/courses/lessons/model"
	paymentService "kursusku_backend/internals/features/payments/service"
	"kursusku_backend/internals/features/progress/dto"
	"kursusku_backend/internals/features/progress/model"
	"kursusku_backend/internals/features/progress/service"
	helpers "kursusku_backend/internals/helpers"
	authMw "kursusku_backend/internals/middlewares/auth"
)

type ProgressController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewProgressController(db *gorm.DB) *ProgressController {
	return &ProgressController{DB: db, Validator: validator.New()}
}

// POST /api/progress
//
// Upserts the (user, lesson) row via ON CONFLICT so concurrent beacons from
// two tabs cannot create duplicates. Completed never flips back to false
// from a stale beacon that omits the flag.
func (ctl *ProgressController) UpsertProgress(c *fiber.Ctx) error {
	userID, err := authMw.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Harus login")
	}

	var req dto.UpsertProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	courseID, _ := uuid.Parse(req.CourseID)
	lessonID, _ := uuid.Parse(req.LessonID)

	var lesson lessonModel.LessonModel
	if err := ctl.DB.First(&lesson, "lesson_id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Lesson tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil lesson")
	}
	if lesson.LessonCourseID != courseID {
		return fiber.NewError(fiber.StatusBadRequest, "Lesson bukan bagian dari course tersebut")
	}

	if !lesson.LessonIsFreePreview {
		ok, err := paymentService.HasCompletedPurchase(ctl.DB, userID, courseID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa akses")
		}
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Beli course ini untuk menyimpan progres")
		}
	}

	now := time.Now()
	completed := req.Completed != nil && *req.Completed

	row := model.ProgressModel{
		ProgressUserID:         userID,
		ProgressLessonID:       lessonID,
		ProgressCourseID:       courseID,
		ProgressWatchedSeconds: req.WatchedSeconds,
		ProgressCompleted:      completed,
		ProgressLastWatchedAt:  now,
	}
	err = ctl.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "progress_user_id"}, {Name: "progress_lesson_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"progress_watched_seconds": req.WatchedSeconds,
			"progress_completed":       gorm.Expr("progress.progress_completed OR ?", completed),
			"progress_last_watched_at": now,
		}),
	}).Create(&row).Error
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan progres")
	}

	// read back so the response carries the merged completed flag
	var saved model.ProgressModel
	if err := ctl.DB.First(&saved,
		"progress_user_id = ? AND progress_lesson_id = ?", userID, lessonID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil progres")
	}
	return helpers.JsonOK(c, "Progres berhasil disimpan", dto.ToProgressDTO(saved))
}

// GET /api/progress/:courseId
func (ctl *ProgressController) GetCourseProgress(c *fiber.Ctx) error {
	userID, err := authMw.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Harus login")
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Course ID tidak valid")
	}

	var lessons []lessonModel.LessonModel
	if err := ctl.DB.
		Where("lesson_course_id = ?", courseID).
		Find(&lessons).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil lessons")
	}

	var rows []model.ProgressModel
	if err := ctl.DB.
		Where("progress_user_id = ? AND progress_course_id = ?", userID, courseID).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil progres")
	}

	perLesson := make([]dto.ProgressDTO, 0, len(rows))
	for _, r := range rows {
		perLesson = append(perLesson, dto.ToProgressDTO(r))
	}
	return helpers.JsonOK(c, "Progres course berhasil diambil", fiber.Map{
		"summary": service.ComputeCourseProgress(lessons, rows),
		"lessons": perLesson,
	})
}

// GET /api/progress?course_id=&lesson_id=
//
// With lesson_id: the single row (or an empty zero row). Without: the list
// of rows for the course.
func (ctl *ProgressController) QueryProgress(c *fiber.Ctx) error {
	userID, err := authMw.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Harus login")
	}
	courseID, err := uuid.Parse(c.Query("course_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "course_id tidak valid")
	}

	if raw := c.Query("lesson_id"); raw != "" {
		lessonID, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lesson_id tidak valid")
		}
		var row model.ProgressModel
		err = ctl.DB.First(&row,
			"progress_user_id = ? AND progress_lesson_id = ?", userID, lessonID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helpers.JsonOK(c, "Belum ada progres", dto.ProgressDTO{
					ProgressLessonID: lessonID.String(),
					ProgressCourseID: courseID.String(),
				})
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil progres")
		}
		return helpers.JsonOK(c, "Progres berhasil diambil", dto.ToProgressDTO(row))
	}

	var rows []model.ProgressModel
	if err := ctl.DB.
		Where("progress_user_id = ? AND progress_course_id = ?", userID, courseID).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil progres")
	}
	out := make([]dto.ProgressDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToProgressDTO(r))
	}
	return helpers.JsonOK(c, "Progres berhasil diambil", out)
}
