package model

import (
	"time"

	"github.com/google/uuid"
)

// ProgressModel keeps exactly one row per (user, lesson); writes upsert on
// the composite unique index.
type ProgressModel struct {
	ProgressID       uuid.UUID `gorm:"column:progress_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"progress_id"`
	ProgressUserID   uuid.UUID `gorm:"column:progress_user_id;type:uuid;not null;uniqueIndex:uq_progress_user_lesson" json:"progress_user_id"`
	ProgressLessonID uuid.UUID `gorm:"column:progress_lesson_id;type:uuid;not null;uniqueIndex:uq_progress_user_lesson" json:"progress_lesson_id"`
	ProgressCourseID uuid.UUID `gorm:"column:progress_course_id;type:uuid;not null;index" json:"progress_course_id"`

	ProgressWatchedSeconds int  `gorm:"column:progress_watched_seconds;not null;default:0" json:"progress_watched_seconds"`
	ProgressCompleted      bool `gorm:"column:progress_completed;not null;default:false" json:"progress_completed"`

	ProgressLastWatchedAt time.Time `gorm:"column:progress_last_watched_at;not null" json:"progress_last_watched_at"`
	ProgressCreatedAt     time.Time `gorm:"column:progress_created_at;autoCreateTime" json:"progress_created_at"`
}

func (ProgressModel) TableName() string {
	return "progress"
}
