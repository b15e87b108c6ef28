package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LessonResource is one downloadable attachment; the list is stored as JSONB
// so its shape is the application's to enforce, not the store's.
type LessonResource struct {
	Title string `json:"title"`
	Key   string `json:"key"`
	Type  string `json:"type,omitempty"`
}

type LessonModel struct {
	LessonID          uuid.UUID `gorm:"column:lesson_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"lesson_id"`
	LessonModuleID    uuid.UUID `gorm:"column:lesson_module_id;type:uuid;not null;index" json:"lesson_module_id"`
	LessonCourseID    uuid.UUID `gorm:"column:lesson_course_id;type:uuid;not null;index" json:"lesson_course_id"`
	LessonTitle       string    `gorm:"column:lesson_title;type:varchar(500);not null" json:"lesson_title"`
	LessonDescription string    `gorm:"column:lesson_description;type:text" json:"lesson_description"`
	LessonVideoKey    *string   `gorm:"column:lesson_video_key;type:varchar(500)" json:"lesson_video_key,omitempty"`

	LessonDurationSeconds int  `gorm:"column:lesson_duration_seconds;not null;default:0" json:"lesson_duration_seconds"`
	LessonOrder           int  `gorm:"column:lesson_order;not null;default:0" json:"lesson_order"`
	LessonIsFreePreview   bool `gorm:"column:lesson_is_free_preview;not null;default:false" json:"lesson_is_free_preview"`

	LessonResources datatypes.JSON `gorm:"column:lesson_resources" json:"lesson_resources,omitempty"`

	LessonCreatedAt time.Time `gorm:"column:lesson_created_at;autoCreateTime" json:"lesson_created_at"`
	LessonUpdatedAt time.Time `gorm:"column:lesson_updated_at;autoUpdateTime" json:"lesson_updated_at"`
}

func (LessonModel) TableName() string {
	return "lessons"
}
