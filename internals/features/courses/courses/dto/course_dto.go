package dto

import (
	"time"

	"kursusku_backend/internals/features/courses/courses/model"
)

/* ============================
   Response DTO
============================ */

type CourseDTO struct {
	CourseID               string     `json:"course_id"`
	CourseTitle            string     `json:"course_title"`
	CourseSlug             string     `json:"course_slug"`
	CourseDescription      string     `json:"course_description"`
	CourseShortDescription string     `json:"course_short_description"`
	CoursePriceIDR         int64      `json:"course_price_idr"`
	CourseThumbnailKey     *string    `json:"course_thumbnail_key,omitempty"`
	CourseCategory         string     `json:"course_category"`
	CourseLevel            string     `json:"course_level"`
	CourseInstructorID     string     `json:"course_instructor_id"`
	CourseStatus           string     `json:"course_status"`
	CourseTotalLessons     int        `json:"course_total_lessons"`
	CourseTotalDurationSec int        `json:"course_total_duration_seconds"`
	CourseCreatedAt        time.Time  `json:"course_created_at"`
	CourseUpdatedAt        time.Time  `json:"course_updated_at"`
	CoursePublishedAt      *time.Time `json:"course_published_at,omitempty"`
}

func ToCourseDTO(m model.CourseModel) CourseDTO {
	return CourseDTO{
		CourseID:               m.CourseID.String(),
		CourseTitle:            m.CourseTitle,
		CourseSlug:             m.CourseSlug,
		CourseDescription:      m.CourseDescription,
		CourseShortDescription: m.CourseShortDescription,
		CoursePriceIDR:         m.CoursePriceIDR,
		CourseThumbnailKey:     m.CourseThumbnailKey,
		CourseCategory:         m.CourseCategory,
		CourseLevel:            string(m.CourseLevel),
		CourseInstructorID:     m.CourseInstructorID.String(),
		CourseStatus:           string(m.CourseStatus),
		CourseTotalLessons:     m.CourseTotalLessons,
		CourseTotalDurationSec: m.CourseTotalDurationSeconds,
		CourseCreatedAt:        m.CourseCreatedAt,
		CourseUpdatedAt:        m.CourseUpdatedAt,
		CoursePublishedAt:      m.CoursePublishedAt,
	}
}

/* ============================
   Create & Update Request DTO
============================ */

type CreateCourseRequest struct {
	CourseTitle            string  `json:"course_title" validate:"required,min=3,max=500"`
	CourseDescription      string  `json:"course_description" validate:"required,min=10"`
	CourseShortDescription string  `json:"course_short_description" validate:"required,min=10,max=500"`
	CoursePriceIDR         int64   `json:"course_price_idr" validate:"min=0"`
	CourseThumbnailKey     *string `json:"course_thumbnail_key" validate:"omitempty,max=500"`
	CourseCategory         string  `json:"course_category" validate:"required,max=100"`
	CourseLevel            string  `json:"course_level" validate:"required,oneof=beginner intermediate advanced"`
	CourseStatus           string  `json:"course_status" validate:"omitempty,oneof=draft published archived"`
}

func (r CreateCourseRequest) ToModel() model.CourseModel {
	status := model.CourseStatusDraft
	if r.CourseStatus != "" {
		status = model.CourseStatus(r.CourseStatus)
	}
	return model.CourseModel{
		CourseTitle:            r.CourseTitle,
		CourseDescription:      r.CourseDescription,
		CourseShortDescription: r.CourseShortDescription,
		CoursePriceIDR:         r.CoursePriceIDR,
		CourseThumbnailKey:     r.CourseThumbnailKey,
		CourseCategory:         r.CourseCategory,
		CourseLevel:            model.CourseLevel(r.CourseLevel),
		CourseStatus:           status,
	}
}

type UpdateCourseRequest struct {
	CourseTitle            *string `json:"course_title" validate:"omitempty,min=3,max=500"`
	CourseDescription      *string `json:"course_description" validate:"omitempty,min=10"`
	CourseShortDescription *string `json:"course_short_description" validate:"omitempty,min=10,max=500"`
	CoursePriceIDR         *int64  `json:"course_price_idr" validate:"omitempty,min=0"`
	CourseThumbnailKey     *string `json:"course_thumbnail_key" validate:"omitempty,max=500"`
	CourseCategory         *string `json:"course_category" validate:"omitempty,max=100"`
	CourseLevel            *string `json:"course_level" validate:"omitempty,oneof=beginner intermediate advanced"`
	CourseStatus           *string `json:"course_status" validate:"omitempty,oneof=draft published archived"`
}

// Apply copies the set fields onto the model and reports whether the title
// changed (so the caller regenerates the slug). The publish timestamp is
// stamped the first time only; repeated publishes never re-stamp it.
func (r UpdateCourseRequest) Apply(m *model.CourseModel, now time.Time) (titleChanged bool) {
	if r.CourseTitle != nil && *r.CourseTitle != m.CourseTitle {
		m.CourseTitle = *r.CourseTitle
		titleChanged = true
	}
	if r.CourseDescription != nil {
		m.CourseDescription = *r.CourseDescription
	}
	if r.CourseShortDescription != nil {
		m.CourseShortDescription = *r.CourseShortDescription
	}
	if r.CoursePriceIDR != nil {
		m.CoursePriceIDR = *r.CoursePriceIDR
	}
	if r.CourseThumbnailKey != nil {
		m.CourseThumbnailKey = r.CourseThumbnailKey
	}
	if r.CourseCategory != nil {
		m.CourseCategory = *r.CourseCategory
	}
	if r.CourseLevel != nil {
		m.CourseLevel = model.CourseLevel(*r.CourseLevel)
	}
	if r.CourseStatus != nil {
		m.CourseStatus = model.CourseStatus(*r.CourseStatus)
		if m.CourseStatus == model.CourseStatusPublished && m.CoursePublishedAt == nil {
			m.CoursePublishedAt = &now
		}
	}
	return titleChanged
}
