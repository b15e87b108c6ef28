package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	courseModel "kursusku_backend/internals/features/courses/courses/model"
	lessonModel "kursusku_backend/internals/features/courses/lessons/model"
	paymentService "kursusku_backend/internals/features/payments/service"
	helpers "kursusku_backend/internals/helpers"
	"kursusku_backend/internals/helpers/oss"
	authMw "kursusku_backend/internals/middlewares/auth"
)

type UploadController struct {
	DB        *gorm.DB
	OSS       *oss.Service
	Validator *validator.Validate
}

func NewUploadController(db *gorm.DB, ossSvc *oss.Service) *UploadController {
	return &UploadController{DB: db, OSS: ossSvc, Validator: validator.New()}
}

type signUploadRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=image video resource images videos resources"`
	FileName    string `json:"file_name" validate:"required,min=1,max=300"`
	ContentType string `json:"content_type" validate:"required,min=3,max=100"`
}

// videoAccessAllowed decides lesson video visibility: free previews are open,
// admins and the course's own instructor always pass, everyone else needs a
// completed purchase.
func videoAccessAllowed(isFreePreview bool, role string, isCourseOwner, hasPurchase bool) bool {
	return isFreePreview || role == constants.RoleAdmin || isCourseOwner || hasPurchase
}

func normalizeUploadKind(kind string) string {
	switch kind {
	case "image":
		return oss.FolderImages
	case "video":
		return oss.FolderVideos
	case "resource":
		return oss.FolderResources
	}
	return kind
}

// POST /api/uploads/sign
//
// Images are open to any logged-in user (avatars, thumbnails); videos and
// resources are instructor material.
func (ctl *UploadController) SignUpload(c *fiber.Ctx) error {
	if _, err := authMw.UserID(c); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Harus login")
	}

	var req signUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}
	req.Kind = normalizeUploadKind(req.Kind)

	if req.Kind != oss.FolderImages {
		role := authMw.UserRole(c)
		if role != constants.RoleInstructor && role != constants.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Hanya instruktur yang boleh mengunggah "+req.Kind)
		}
	}

	key, err := oss.BuildObjectKey(req.Kind, req.FileName, req.ContentType)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	url, err := ctl.OSS.SignedPutURL(key, req.ContentType, oss.DefaultSignedURLExpirySec)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat URL upload")
	}

	return helpers.JsonOK(c, "URL upload berhasil dibuat", fiber.Map{
		"key":        key,
		"url":        url,
		"expires_in": oss.DefaultSignedURLExpirySec,
	})
}

// GET /api/files/*
//
// Serves a signed read URL for a stored object. Video keys are gated: the
// caller must own the lesson's course, have bought it, or the lesson must be
// a free preview. Images and resources only need a login.
func (ctl *UploadController) SignedFileURL(c *fiber.Ctx) error {
	userID, err := authMw.UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Harus login")
	}

	key := strings.TrimPrefix(c.Params("*"), "/")
	if key == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Key wajib diisi")
	}
	if strings.Contains(key, "..") {
		return fiber.NewError(fiber.StatusBadRequest, "Key tidak valid")
	}

	if strings.HasPrefix(key, oss.FolderVideos+"/") {
		var lesson lessonModel.LessonModel
		err := ctl.DB.First(&lesson, "lesson_video_key = ?", key).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "File tidak ditemukan")
		}
		role := authMw.UserRole(c)
		if !videoAccessAllowed(lesson.LessonIsFreePreview, role, false, false) {
			var course courseModel.CourseModel
			if err := ctl.DB.Select("course_instructor_id").
				First(&course, "course_id = ?", lesson.LessonCourseID).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa akses")
			}
			isOwner := course.CourseInstructorID == userID
			hasPurchase := false
			if !isOwner {
				hasPurchase, err = paymentService.HasCompletedPurchase(ctl.DB, userID, lesson.LessonCourseID)
				if err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa akses")
				}
			}
			if !videoAccessAllowed(lesson.LessonIsFreePreview, role, isOwner, hasPurchase) {
				return fiber.NewError(fiber.StatusForbidden, "Tidak memiliki akses ke file ini")
			}
		}
	}

	url, err := ctl.OSS.SignedGetURL(key, oss.DefaultSignedURLExpirySec)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat URL file")
	}
	return helpers.JsonOK(c, "URL file berhasil dibuat", fiber.Map{
		"url":        url,
		"expires_in": oss.DefaultSignedURLExpirySec,
	})
}
