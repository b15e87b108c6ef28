package dto

import (
	"time"

	"kursusku_backend/internals/features/progress/model"
)

type ProgressDTO struct {
	ProgressID             string    `json:"progress_id"`
	ProgressLessonID       string    `json:"progress_lesson_id"`
	ProgressCourseID       string    `json:"progress_course_id"`
	ProgressWatchedSeconds int       `json:"progress_watched_seconds"`
	ProgressCompleted      bool      `json:"progress_completed"`
	ProgressLastWatchedAt  time.Time `json:"progress_last_watched_at"`
}

func ToProgressDTO(m model.ProgressModel) ProgressDTO {
	return ProgressDTO{
		ProgressID:             m.ProgressID.String(),
		ProgressLessonID:       m.ProgressLessonID.String(),
		ProgressCourseID:       m.ProgressCourseID.String(),
		ProgressWatchedSeconds: m.ProgressWatchedSeconds,
		ProgressCompleted:      m.ProgressCompleted,
		ProgressLastWatchedAt:  m.ProgressLastWatchedAt,
	}
}

type UpsertProgressRequest struct {
	CourseID       string `json:"course_id" validate:"required,uuid"`
	LessonID       string `json:"lesson_id" validate:"required,uuid"`
	WatchedSeconds int    `json:"watched_seconds" validate:"min=0"`
	Completed      *bool  `json:"completed"`
}
