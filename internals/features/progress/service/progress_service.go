package service

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	lessonModel "kursusku_backend/internals/features/courses/lessons/model"
	"kursusku_backend/internals/features/progress/model"
)

// CourseProgress is the aggregate returned for one user's standing in a
// course.
type CourseProgress struct {
	TotalLessons         int        `json:"total_lessons"`
	CompletedLessons     int        `json:"completed_lessons"`
	CompletionPercentage int        `json:"completion_percentage"`
	TotalDurationSeconds int        `json:"total_duration_seconds"`
	TotalWatchedSeconds  int        `json:"total_watched_seconds"`
	LastWatchedAt        *time.Time `json:"last_watched_at,omitempty"`
	NextLessonID         *uuid.UUID `json:"next_lesson_id,omitempty"`
}

// ComputeCourseProgress aggregates per-lesson rows against the course's
// lesson list. Lessons are walked in (lesson_order, created_at) order so the
// next lesson is the first incomplete one in course order. A course with no
// lessons reports zero percent.
func ComputeCourseProgress(lessons []lessonModel.LessonModel, rows []model.ProgressModel) CourseProgress {
	out := CourseProgress{TotalLessons: len(lessons)}
	if len(lessons) == 0 {
		return out
	}

	sort.SliceStable(lessons, func(i, j int) bool {
		if lessons[i].LessonOrder != lessons[j].LessonOrder {
			return lessons[i].LessonOrder < lessons[j].LessonOrder
		}
		return lessons[i].LessonCreatedAt.Before(lessons[j].LessonCreatedAt)
	})

	byLesson := make(map[uuid.UUID]model.ProgressModel, len(rows))
	for _, r := range rows {
		byLesson[r.ProgressLessonID] = r
		out.TotalWatchedSeconds += r.ProgressWatchedSeconds
		if out.LastWatchedAt == nil || r.ProgressLastWatchedAt.After(*out.LastWatchedAt) {
			t := r.ProgressLastWatchedAt
			out.LastWatchedAt = &t
		}
	}

	for _, l := range lessons {
		out.TotalDurationSeconds += l.LessonDurationSeconds
		r, ok := byLesson[l.LessonID]
		if ok && r.ProgressCompleted {
			out.CompletedLessons++
			continue
		}
		if out.NextLessonID == nil {
			id := l.LessonID
			out.NextLessonID = &id
		}
	}

	out.CompletionPercentage = int(math.Round(
		float64(out.CompletedLessons) / float64(out.TotalLessons) * 100))
	return out
}
