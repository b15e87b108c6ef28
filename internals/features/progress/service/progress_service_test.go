package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	lessonModel "kursusku_backend/internals/features/courses/lessons/model"
	"kursusku_backend/internals/features/progress/model"
)

func makeLessons(n int) []lessonModel.LessonModel {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]lessonModel.LessonModel, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, lessonModel.LessonModel{
			LessonID:              uuid.New(),
			LessonOrder:           i + 1,
			LessonDurationSeconds: 600,
			LessonCreatedAt:       base.Add(time.Duration(i) * time.Minute),
		})
	}
	return out
}

func TestComputeCourseProgress(t *testing.T) {
	lessons := makeLessons(4)
	t1 := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)

	rows := []model.ProgressModel{
		{ProgressLessonID: lessons[0].LessonID, ProgressCompleted: true, ProgressWatchedSeconds: 300, ProgressLastWatchedAt: t1},
		{ProgressLessonID: lessons[1].LessonID, ProgressCompleted: false, ProgressWatchedSeconds: 120, ProgressLastWatchedAt: t2},
	}

	got := ComputeCourseProgress(lessons, rows)
	if got.TotalLessons != 4 || got.CompletedLessons != 1 {
		t.Fatalf("counts wrong: %+v", got)
	}
	if got.CompletionPercentage != 25 {
		t.Fatalf("completion = %d, want 25", got.CompletionPercentage)
	}
	if got.TotalWatchedSeconds != 420 {
		t.Fatalf("watched = %d, want 420", got.TotalWatchedSeconds)
	}
	if got.TotalDurationSeconds != 2400 {
		t.Fatalf("duration = %d, want 2400", got.TotalDurationSeconds)
	}
	if got.LastWatchedAt == nil || !got.LastWatchedAt.Equal(t2) {
		t.Fatalf("last watched = %v, want %v", got.LastWatchedAt, t2)
	}
	// lesson 2 has progress but is not completed, so it is next
	if got.NextLessonID == nil || *got.NextLessonID != lessons[1].LessonID {
		t.Fatalf("next lesson = %v, want %v", got.NextLessonID, lessons[1].LessonID)
	}
}

func TestComputeCourseProgressEmptyCourse(t *testing.T) {
	got := ComputeCourseProgress(nil, nil)
	if got.TotalLessons != 0 || got.CompletionPercentage != 0 {
		t.Fatalf("empty course should be all zeros: %+v", got)
	}
	if got.NextLessonID != nil || got.LastWatchedAt != nil {
		t.Fatalf("empty course should have nil pointers: %+v", got)
	}
}

func TestComputeCourseProgressAllDone(t *testing.T) {
	lessons := makeLessons(3)
	now := time.Now()
	rows := make([]model.ProgressModel, 0, len(lessons))
	for _, l := range lessons {
		rows = append(rows, model.ProgressModel{
			ProgressLessonID:      l.LessonID,
			ProgressCompleted:     true,
			ProgressLastWatchedAt: now,
		})
	}
	got := ComputeCourseProgress(lessons, rows)
	if got.CompletionPercentage != 100 {
		t.Fatalf("completion = %d, want 100", got.CompletionPercentage)
	}
	if got.NextLessonID != nil {
		t.Fatalf("finished course should have no next lesson, got %v", got.NextLessonID)
	}
}

func TestComputeCourseProgressRespectsOrder(t *testing.T) {
	lessons := makeLessons(3)
	// shuffle the input order; the order field decides, not slice position
	shuffled := []lessonModel.LessonModel{lessons[2], lessons[0], lessons[1]}

	rows := []model.ProgressModel{
		{ProgressLessonID: lessons[0].LessonID, ProgressCompleted: true, ProgressLastWatchedAt: time.Now()},
	}
	got := ComputeCourseProgress(shuffled, rows)
	if got.NextLessonID == nil || *got.NextLessonID != lessons[1].LessonID {
		t.Fatalf("next lesson = %v, want second lesson %v", got.NextLessonID, lessons[1].LessonID)
	}
}
