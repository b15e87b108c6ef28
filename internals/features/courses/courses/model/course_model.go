package model

import (
	"time"

	"github.com/google/uuid"
)

type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "draft"
	CourseStatusPublished CourseStatus = "published"
	CourseStatusArchived  CourseStatus = "archived"
)

type CourseLevel string

const (
	CourseLevelBeginner     CourseLevel = "beginner"
	CourseLevelIntermediate CourseLevel = "intermediate"
	CourseLevelAdvanced     CourseLevel = "advanced"
)

// CourseModel maps the courses table. Price is integer minor units (IDR);
// there is no float representation anywhere in the system.
type CourseModel struct {
	CourseID               uuid.UUID    `gorm:"column:course_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"course_id"`
	CourseTitle            string       `gorm:"column:course_title;type:varchar(500);not null" json:"course_title"`
	CourseSlug             string       `gorm:"column:course_slug;type:varchar(500);uniqueIndex;not null" json:"course_slug"`
	CourseDescription      string       `gorm:"column:course_description;type:text;not null" json:"course_description"`
	CourseShortDescription string       `gorm:"column:course_short_description;type:varchar(500);not null" json:"course_short_description"`
	CoursePriceIDR         int64        `gorm:"column:course_price_idr;not null;default:0" json:"course_price_idr"`
	CourseThumbnailKey     *string      `gorm:"column:course_thumbnail_key;type:varchar(500)" json:"course_thumbnail_key,omitempty"`
	CourseCategory         string       `gorm:"column:course_category;type:varchar(100);not null;index" json:"course_category"`
	CourseLevel            CourseLevel  `gorm:"column:course_level;type:varchar(20);not null" json:"course_level"`
	CourseInstructorID     uuid.UUID    `gorm:"column:course_instructor_id;type:uuid;not null;index" json:"course_instructor_id"`
	CourseStatus           CourseStatus `gorm:"column:course_status;type:varchar(20);not null;default:'draft';index" json:"course_status"`

	// Denormalized, recomputed on every lesson mutation.
	CourseTotalLessons         int `gorm:"column:course_total_lessons;not null;default:0" json:"course_total_lessons"`
	CourseTotalDurationSeconds int `gorm:"column:course_total_duration_seconds;not null;default:0" json:"course_total_duration_seconds"`

	CourseCreatedAt   time.Time  `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt   time.Time  `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at"`
	CoursePublishedAt *time.Time `gorm:"column:course_published_at" json:"course_published_at,omitempty"`
}

func (CourseModel) TableName() string {
	return "courses"
}

func ValidCourseLevel(s string) bool {
	switch CourseLevel(s) {
	case CourseLevelBeginner, CourseLevelIntermediate, CourseLevelAdvanced:
		return true
	}
	return false
}
