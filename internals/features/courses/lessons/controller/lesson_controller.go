package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	courseModel "kursusku_backend/internals/features/courses/courses/model"
	courseService "kursusku_backend/internals/features/courses/courses/service"
	"kursusku_backend/internals/features/courses/lessons/dto"
	"kursusku_backend/internals/features/courses/lessons/model"
	moduleModel "kursusku_backend/internals/features/courses/modules/model"
	paymentService "kursusku_backend/internals/features/payments/service"
	progressModel "kursusku_backend/internals/features/progress/model"
	helpers "kursusku_backend/internals/helpers"
	"kursusku_backend/internals/helpers/oss"
	authMw "kursusku_backend/internals/middlewares/auth"
)

type LessonController struct {
	DB        *gorm.DB
	OSS       *oss.Service
	Validator *validator.Validate
}

func NewLessonController(db *gorm.DB, ossSvc *oss.Service) *LessonController {
	return &LessonController{DB: db, OSS: ossSvc, Validator: validator.New()}
}

/* =========================================================
   Helpers
========================================================= */

func (ctl *LessonController) findLesson(lessonID uuid.UUID) (*model.LessonModel, error) {
	var l model.LessonModel
	if err := ctl.DB.First(&l, "lesson_id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Lesson tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil lesson")
	}
	return &l, nil
}

func (ctl *LessonController) courseOwnerCheck(c *fiber.Ctx, courseID uuid.UUID) (*courseModel.CourseModel, error) {
	var course courseModel.CourseModel
	if err := ctl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil course")
	}
	if err := authMw.OwnerOrAdmin(c, course.CourseInstructorID.String()); err != nil {
		return nil, err
	}
	return &course, nil
}

/* =========================================================
   Reads
========================================================= */

// GET /api/modules/:moduleId/lessons
func (ctl *LessonController) ListByModule(c *fiber.Ctx) error {
	moduleID, err := uuid.Parse(c.Params("moduleId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Module ID tidak valid")
	}

	var lessons []model.LessonModel
	if err := ctl.DB.
		Where("lesson_module_id = ?", moduleID).
		Order("lesson_order ASC, lesson_created_at ASC").
		Find(&lessons).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil lessons")
	}

	out := make([]dto.LessonDTO, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, dto.ToLessonDTO(l))
	}
	return helpers.JsonOK(c, "Daftar lesson berhasil diambil", out)
}

// GET /api/lessons/:id
func (ctl *LessonController) GetLesson(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Lesson ID tidak valid")
	}
	l, err := ctl.findLesson(lessonID)
	if err != nil {
		return err
	}
	return helpers.JsonOK(c, "Lesson berhasil diambil", dto.ToLessonDTO(*l))
}

// GET /api/lessons/:id/video
//
// Returns a short-lived signed URL for the lesson video. Free-preview
// lessons are open to anyone; everything else requires a completed purchase
// of the parent course (the instructor and admins always pass).
func (ctl *LessonController) GetVideoURL(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Lesson ID tidak valid")
	}
	l, err := ctl.findLesson(lessonID)
	if err != nil {
		return err
	}
	if l.LessonVideoKey == nil || *l.LessonVideoKey == "" {
		return fiber.NewError(fiber.StatusNotFound, "Lesson tidak memiliki video")
	}

	if !l.LessonIsFreePreview {
		userID, err := authMw.UserID(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Harus login untuk menonton video ini")
		}
		allowed := authMw.UserRole(c) == constants.RoleAdmin
		if !allowed {
			var course courseModel.CourseModel
			if err := ctl.DB.First(&course, "course_id = ?", l.LessonCourseID).Error; err == nil {
				allowed = course.CourseInstructorID == userID
			}
		}
		if !allowed {
			ok, err := paymentService.HasCompletedPurchase(ctl.DB, userID, l.LessonCourseID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa akses")
			}
			if !ok {
				return fiber.NewError(fiber.StatusForbidden, "Beli course ini untuk menonton video")
			}
		}
	}

	key := oss.NormalizeVideoKey(*l.LessonVideoKey)
	url, err := ctl.OSS.SignedGetURL(key, oss.DefaultSignedURLExpirySec)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat URL video")
	}
	return helpers.JsonOK(c, "URL video berhasil dibuat", fiber.Map{
		"url":        url,
		"expires_in": oss.DefaultSignedURLExpirySec,
	})
}

/* =========================================================
   Mutations (instructor owner / admin)
========================================================= */

// POST /api/lessons
func (ctl *LessonController) CreateLesson(c *fiber.Ctx) error {
	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	moduleID, _ := uuid.Parse(req.LessonModuleID)
	var mod moduleModel.ModuleModel
	if err := ctl.DB.First(&mod, "module_id = ?", moduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Module tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil module")
	}
	if _, err := ctl.courseOwnerCheck(c, mod.ModuleCourseID); err != nil {
		return err
	}

	resources, err := dto.MarshalResources(req.LessonResources)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Resources tidak valid")
	}

	order := req.LessonOrder
	if order == 0 {
		var maxOrder int
		ctl.DB.Model(&model.LessonModel{}).
			Where("lesson_module_id = ?", moduleID).
			Select("COALESCE(MAX(lesson_order), 0)").
			Scan(&maxOrder)
		order = maxOrder + 1
	}

	l := model.LessonModel{
		LessonModuleID:        moduleID,
		LessonCourseID:        mod.ModuleCourseID,
		LessonTitle:           req.LessonTitle,
		LessonDescription:     req.LessonDescription,
		LessonVideoKey:        req.LessonVideoKey,
		LessonDurationSeconds: req.LessonDurationSeconds,
		LessonOrder:           order,
		LessonIsFreePreview:   req.LessonIsFreePreview,
		LessonResources:       resources,
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&l).Error; err != nil {
			return err
		}
		return courseService.RecomputeCourseCounters(tx, mod.ModuleCourseID)
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat lesson")
	}
	return helpers.JsonCreated(c, "Lesson berhasil dibuat", dto.ToLessonDTO(l))
}

// PUT /api/lessons/:id
func (ctl *LessonController) UpdateLesson(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Lesson ID tidak valid")
	}
	l, err := ctl.findLesson(lessonID)
	if err != nil {
		return err
	}
	if _, err := ctl.courseOwnerCheck(c, l.LessonCourseID); err != nil {
		return err
	}

	var req dto.UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	if req.LessonTitle != nil {
		l.LessonTitle = *req.LessonTitle
	}
	if req.LessonDescription != nil {
		l.LessonDescription = *req.LessonDescription
	}
	if req.LessonVideoKey != nil {
		l.LessonVideoKey = req.LessonVideoKey
	}
	if req.LessonDurationSeconds != nil {
		l.LessonDurationSeconds = *req.LessonDurationSeconds
	}
	if req.LessonOrder != nil {
		l.LessonOrder = *req.LessonOrder
	}
	if req.LessonIsFreePreview != nil {
		l.LessonIsFreePreview = *req.LessonIsFreePreview
	}
	if req.LessonResources != nil {
		resources, err := dto.MarshalResources(*req.LessonResources)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Resources tidak valid")
		}
		l.LessonResources = resources
	}
	l.LessonUpdatedAt = time.Now()

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(l).Error; err != nil {
			return err
		}
		return courseService.RecomputeCourseCounters(tx, l.LessonCourseID)
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui lesson")
	}
	return helpers.JsonOK(c, "Lesson berhasil diperbarui", dto.ToLessonDTO(*l))
}

// DELETE /api/lessons/:id
func (ctl *LessonController) DeleteLesson(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Lesson ID tidak valid")
	}
	l, err := ctl.findLesson(lessonID)
	if err != nil {
		return err
	}
	if _, err := ctl.courseOwnerCheck(c, l.LessonCourseID); err != nil {
		return err
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("progress_lesson_id = ?", lessonID).
			Delete(&progressModel.ProgressModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.LessonModel{}, "lesson_id = ?", lessonID).Error; err != nil {
			return err
		}
		return courseService.RecomputeCourseCounters(tx, l.LessonCourseID)
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus lesson")
	}

	// Best effort, the DB row is already gone.
	if l.LessonVideoKey != nil && *l.LessonVideoKey != "" {
		if err := ctl.OSS.DeleteObject(oss.NormalizeVideoKey(*l.LessonVideoKey)); err != nil {
			log.Printf("[WARN] delete lesson video object: %v", err)
		}
	}
	return helpers.JsonOK(c, "Lesson berhasil dihapus", fiber.Map{"lesson_id": lessonID})
}

// PUT /api/lessons/reorder
func (ctl *LessonController) ReorderLessons(c *fiber.Ctx) error {
	var req dto.ReorderLessonsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	moduleID, _ := uuid.Parse(req.ModuleID)
	var mod moduleModel.ModuleModel
	if err := ctl.DB.First(&mod, "module_id = ?", moduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Module tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil module")
	}
	if _, err := ctl.courseOwnerCheck(c, mod.ModuleCourseID); err != nil {
		return err
	}

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		for _, pair := range req.LessonOrders {
			lessonID, err := uuid.Parse(pair.LessonID)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Lesson ID tidak valid")
			}
			res := tx.Model(&model.LessonModel{}).
				Where("lesson_id = ? AND lesson_module_id = ?", lessonID, moduleID).
				Updates(map[string]interface{}{
					"lesson_order":      pair.Order,
					"lesson_updated_at": time.Now(),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fiber.NewError(fiber.StatusNotFound, "Lesson tidak ditemukan pada module ini")
			}
		}
		return nil
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyusun ulang lesson")
	}

	var lessons []model.LessonModel
	if err := ctl.DB.
		Where("lesson_module_id = ?", moduleID).
		Order("lesson_order ASC, lesson_created_at ASC").
		Find(&lessons).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil lessons")
	}
	out := make([]dto.LessonDTO, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, dto.ToLessonDTO(l))
	}
	return helpers.JsonOK(c, "Urutan lesson berhasil diperbarui", out)
}
