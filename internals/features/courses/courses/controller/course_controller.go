// internals/features/courses/courses/controller/course_controller.go
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
	"kursusku_backend/internals/features/courses/courses/dto"
	"kursusku_backend/internals/features/courses/courses/model"
	lessonModel "kursusku_backend/internals/features/courses/lessons/model"
	moduleModel "kursusku_backend/internals/features/courses/modules/model"
	progressModel "kursusku_backend/internals/features/progress/model"
	helpers "kursusku_backend/internals/helpers"
	authMw "kursusku_backend/internals/middlewares/auth"
)

type CourseController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db, Validator: validator.New()}
}

/* =======================================================================
   Public reads
======================================================================= */

// GET /api/courses?status=&category=&level=&search=
// Anonymous callers only ever see published courses.
func (ctrl *CourseController) ListCourses(c *fiber.Ctx) error {
	p := helpers.ParseFiber(c, "created_at", "desc", helpers.DefaultPageOpts)

	status := c.Query("status", string(model.CourseStatusPublished))
	if status != string(model.CourseStatusPublished) && authMw.UserRole(c) == "" {
		status = string(model.CourseStatusPublished)
	}

	q := ctrl.DB.WithContext(c.Context()).Model(&model.CourseModel{}).
		Where("course_status = ?", status)
	// non-admins browsing drafts or archives only see their own
	if status != string(model.CourseStatusPublished) && authMw.UserRole(c) != constants.RoleAdmin {
		uid, err := authMw.UserID(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Harus login")
		}
		q = q.Where("course_instructor_id = ?", uid)
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("course_category = ?", category)
	}
	if level := c.Query("level"); level != "" {
		q = q.Where("course_level = ?", level)
	}
	if search := c.Query("search"); search != "" {
		q = q.Where("course_title ILIKE ? OR course_description ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil course")
	}

	allowed := map[string]string{
		"created_at": "course_created_at",
		"title":      "course_title",
		"price":      "course_price_idr",
	}
	var courses []model.CourseModel
	if err := q.Order(p.SafeOrderClause(allowed, "created_at")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&courses).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil course")
	}

	out := make([]dto.CourseDTO, 0, len(courses))
	for _, co := range courses {
		out = append(out, dto.ToCourseDTO(co))
	}
	return helpers.JsonOK(c, "OK", fiber.Map{
		"courses": out,
		"total":   total,
		"meta":    helpers.BuildPageMeta(total, p),
	})
}

// GET /api/courses/:id, where id may be a UUID or a slug.
// Unpublished courses resolve only for their instructor and admins.
func (ctrl *CourseController) GetCourse(c *fiber.Ctx) error {
	course, err := ctrl.findByIDOrSlug(c, c.Params("id"))
	if err != nil {
		return err
	}
	if course.CourseStatus != model.CourseStatusPublished {
		if err := authMw.OwnerOrAdmin(c, course.CourseInstructorID.String()); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Course tidak ditemukan")
		}
	}
	return helpers.JsonOK(c, "OK", dto.ToCourseDTO(*course))
}

/* =======================================================================
   Instructor/admin writes
======================================================================= */

// POST /api/courses
func (ctrl *CourseController) CreateCourse(c *fiber.Ctx) error {
	uid, err := authMw.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Harus login")
	}

	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	course := req.ToModel()
	course.CourseInstructorID = uid

	base := helpers.Slugify(course.CourseTitle, 100)
	slug, err := helpers.EnsureUniqueSlugCI(c.Context(), ctrl.DB, "courses", "course_slug", base, nil, 100)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat course")
	}
	course.CourseSlug = slug

	if course.CourseStatus == model.CourseStatusPublished {
		now := time.Now().UTC()
		course.CoursePublishedAt = &now
	}

	if err := ctrl.DB.WithContext(c.Context()).Create(&course).Error; err != nil {
		log.Printf("[ERROR] create course: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat course")
	}
	return helpers.JsonCreated(c, "Course berhasil dibuat", dto.ToCourseDTO(course))
}

// PUT /api/courses/:id
func (ctrl *CourseController) UpdateCourse(c *fiber.Ctx) error {
	course, err := ctrl.findByIDOrSlug(c, c.Params("id"))
	if err != nil {
		return err
	}
	if err := authMw.OwnerOrAdmin(c, course.CourseInstructorID.String()); err != nil {
		return err
	}

	var req dto.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helpers.ValidationError(c, err)
	}

	if titleChanged := req.Apply(course, time.Now().UTC()); titleChanged {
		base := helpers.Slugify(course.CourseTitle, 100)
		slug, err := helpers.EnsureUniqueSlugCI(c.Context(), ctrl.DB, "courses", "course_slug", base,
			func(q *gorm.DB) *gorm.DB { return q.Where("course_id <> ?", course.CourseID) }, 100)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui course")
		}
		course.CourseSlug = slug
	}

	if err := ctrl.DB.WithContext(c.Context()).Save(course).Error; err != nil {
		log.Printf("[ERROR] update course: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui course")
	}
	return helpers.JsonOK(c, "Course berhasil diperbarui", dto.ToCourseDTO(*course))
}

// DELETE /api/courses/:id cascades modules, lessons and progress rows in
// one transaction; there are no orphans to sweep up afterwards.
func (ctrl *CourseController) DeleteCourse(c *fiber.Ctx) error {
	course, err := ctrl.findByIDOrSlug(c, c.Params("id"))
	if err != nil {
		return err
	}
	if err := authMw.OwnerOrAdmin(c, course.CourseInstructorID.String()); err != nil {
		return err
	}

	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&progressModel.ProgressModel{}, "progress_course_id = ?", course.CourseID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&lessonModel.LessonModel{}, "lesson_course_id = ?", course.CourseID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&moduleModel.ModuleModel{}, "module_course_id = ?", course.CourseID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.CourseModel{}, "course_id = ?", course.CourseID).Error
	})
	if err != nil {
		log.Printf("[ERROR] delete course: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus course")
	}
	return helpers.JsonOK(c, "Course berhasil dihapus", nil)
}

/* =======================================================================
   Admin moderation
======================================================================= */

// GET /api/admin/courses?status=&search=
// Unlike the public list this sees every instructor's courses in any status.
func (ctrl *CourseController) AdminListCourses(c *fiber.Ctx) error {
	p := helpers.ParseFiber(c, "created_at", "desc", helpers.AdminPageOpts)

	q := ctrl.DB.WithContext(c.Context()).Model(&model.CourseModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("course_status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		q = q.Where("course_title ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil course")
	}

	allowed := map[string]string{
		"created_at": "course_created_at",
		"title":      "course_title",
		"status":     "course_status",
	}
	var courses []model.CourseModel
	if err := q.Order(p.SafeOrderClause(allowed, "created_at")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&courses).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil course")
	}

	out := make([]dto.CourseDTO, 0, len(courses))
	for _, co := range courses {
		out = append(out, dto.ToCourseDTO(co))
	}
	return helpers.JsonOK(c, "OK", fiber.Map{
		"courses": out,
		"total":   total,
		"meta":    helpers.BuildPageMeta(total, p),
	})
}

/* =======================================================================
   Helpers
======================================================================= */

func (ctrl *CourseController) findByIDOrSlug(c *fiber.Ctx, idOrSlug string) (*model.CourseModel, error) {
	var course model.CourseModel
	var err error
	if id, perr := uuid.Parse(idOrSlug); perr == nil {
		err = ctrl.DB.WithContext(c.Context()).First(&course, "course_id = ?", id).Error
	} else {
		err = ctrl.DB.WithContext(c.Context()).First(&course, "LOWER(course_slug) = LOWER(?)", idOrSlug).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil course")
	}
	return &course, nil
}
