package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "kursusku_backend/internals/features/courses/courses/model"
	courseService "kursusku_backend/internals/features/courses/courses/service"
	lessonModel "kursusku_backend/internals/features/courses/lessons/model"
	"kursusku_backend/internals/features/courses/modules/dto"
	"kursusku_backend/internals/features/courses/modules/model"
	progressModel "kursusku_backend/internals/features/progress/model"
	helpers "kursusku_backend/internals/helpers"
	authMw "kursusku_backend/internals/middlewares/auth"
)

type ModuleController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewModuleController(db *gorm.DB) *ModuleController {
	return &ModuleController{DB: db, Validator: validator.New()}
}

/* =========================================================
   Helpers
========================================================= */

func (ctl *ModuleController) findCourse(courseID uuid.UUID) (*courseModel.CourseModel, error) {
	var course courseModel.CourseModel
	if err := ctl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil course")
	}
	return &course, nil
}

func (ctl *ModuleController) findModule(moduleID uuid.UUID) (*model.ModuleModel, error) {
	var m model.ModuleModel
	if err := ctl.DB.First(&m, "module_id = ?", moduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Module tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil module")
	}
	return &m, nil
}

/* =========================================================
   List & Detail
========================================================= */

// GET /api/courses/:courseId/modules
func (ctl *ModuleController) ListByCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Course ID tidak valid")
	}
	if _, err := ctl.findCourse(courseID); err != nil {
		return err
	}

	var modules []model.ModuleModel
	if err := ctl.DB.
		Where("module_course_id = ?", courseID).
		Order("module_order ASC, module_created_at ASC").
		Find(&modules).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil modules")
	}

	out := make([]dto.ModuleDTO, 0, len(modules))
	for _, m := range modules {
		out = append(out, dto.ToModuleDTO(m))
	}
	return helpers.JsonOK(c, "Daftar module berhasil diambil", out)
}

// GET /api/modules/:id
func (ctl *ModuleController) GetModule(c *fiber.Ctx) error {
	moduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Module ID tidak valid")
	}
	m, err := ctl.findModule(moduleID)
	if err != nil {
		return err
	}
	return helpers.JsonOK(c, "Module berhasil diambil", dto.ToModuleDTO(*m))
}

/* =========================================================
   Mutations (instructor owner / admin)
========================================================= */

// POST /api/modules
func (ctl *ModuleController) CreateModule(c *fiber.Ctx) error {
	var req dto.CreateModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	courseID, _ := uuid.Parse(req.ModuleCourseID)
	course, err := ctl.findCourse(courseID)
	if err != nil {
		return err
	}
	if err := authMw.OwnerOrAdmin(c, course.CourseInstructorID.String()); err != nil {
		return err
	}

	order := req.ModuleOrder
	if order == 0 {
		// place at the end when no explicit order was given
		var maxOrder int
		ctl.DB.Model(&model.ModuleModel{}).
			Where("module_course_id = ?", courseID).
			Select("COALESCE(MAX(module_order), 0)").
			Scan(&maxOrder)
		order = maxOrder + 1
	}

	m := model.ModuleModel{
		ModuleCourseID:    courseID,
		ModuleTitle:       req.ModuleTitle,
		ModuleDescription: req.ModuleDescription,
		ModuleOrder:       order,
	}
	if err := ctl.DB.Create(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat module")
	}
	return helpers.JsonCreated(c, "Module berhasil dibuat", dto.ToModuleDTO(m))
}

// PUT /api/modules/:id
func (ctl *ModuleController) UpdateModule(c *fiber.Ctx) error {
	moduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Module ID tidak valid")
	}
	m, err := ctl.findModule(moduleID)
	if err != nil {
		return err
	}
	course, err := ctl.findCourse(m.ModuleCourseID)
	if err != nil {
		return err
	}
	if err := authMw.OwnerOrAdmin(c, course.CourseInstructorID.String()); err != nil {
		return err
	}

	var req dto.UpdateModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	if req.ModuleTitle != nil {
		m.ModuleTitle = *req.ModuleTitle
	}
	if req.ModuleDescription != nil {
		m.ModuleDescription = *req.ModuleDescription
	}
	if req.ModuleOrder != nil {
		m.ModuleOrder = *req.ModuleOrder
	}
	m.ModuleUpdatedAt = time.Now()

	if err := ctl.DB.Save(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui module")
	}
	return helpers.JsonOK(c, "Module berhasil diperbarui", dto.ToModuleDTO(*m))
}

// DELETE /api/modules/:id
//
// Removes the module together with its lessons and any progress rows that
// reference them, then refreshes the parent course counters. All inside one
// transaction so a failure leaves nothing half-deleted.
func (ctl *ModuleController) DeleteModule(c *fiber.Ctx) error {
	moduleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Module ID tidak valid")
	}
	m, err := ctl.findModule(moduleID)
	if err != nil {
		return err
	}
	course, err := ctl.findCourse(m.ModuleCourseID)
	if err != nil {
		return err
	}
	if err := authMw.OwnerOrAdmin(c, course.CourseInstructorID.String()); err != nil {
		return err
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var lessonIDs []uuid.UUID
		if err := tx.Model(&lessonModel.LessonModel{}).
			Where("lesson_module_id = ?", moduleID).
			Pluck("lesson_id", &lessonIDs).Error; err != nil {
			return err
		}
		if len(lessonIDs) > 0 {
			if err := tx.Where("progress_lesson_id IN ?", lessonIDs).
				Delete(&progressModel.ProgressModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("lesson_module_id = ?", moduleID).
				Delete(&lessonModel.LessonModel{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&model.ModuleModel{}, "module_id = ?", moduleID).Error; err != nil {
			return err
		}
		return courseService.RecomputeCourseCounters(tx, course.CourseID)
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus module")
	}
	return helpers.JsonOK(c, "Module berhasil dihapus", fiber.Map{"module_id": moduleID})
}

/* =========================================================
   Reorder
========================================================= */

// PUT /api/modules/reorder
//
// Applies every order pair in one transaction and returns the course's
// modules re-fetched in ascending order.
func (ctl *ModuleController) ReorderModules(c *fiber.Ctx) error {
	var req dto.ReorderModulesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	courseID, _ := uuid.Parse(req.CourseID)
	course, err := ctl.findCourse(courseID)
	if err != nil {
		return err
	}
	if err := authMw.OwnerOrAdmin(c, course.CourseInstructorID.String()); err != nil {
		return err
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		for _, pair := range req.ModuleOrders {
			moduleID, err := uuid.Parse(pair.ModuleID)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Module ID tidak valid")
			}
			res := tx.Model(&model.ModuleModel{}).
				Where("module_id = ? AND module_course_id = ?", moduleID, courseID).
				Updates(map[string]interface{}{
					"module_order":      pair.Order,
					"module_updated_at": time.Now(),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fiber.NewError(fiber.StatusNotFound, "Module tidak ditemukan pada course ini")
			}
		}
		return nil
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyusun ulang module")
	}

	var modules []model.ModuleModel
	if err := ctl.DB.
		Where("module_course_id = ?", courseID).
		Order("module_order ASC, module_created_at ASC").
		Find(&modules).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil modules")
	}
	out := make([]dto.ModuleDTO, 0, len(modules))
	for _, m := range modules {
		out = append(out, dto.ToModuleDTO(m))
	}
	return helpers.JsonOK(c, "Urutan module berhasil diperbarui", out)
}
