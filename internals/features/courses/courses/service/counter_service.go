// internals/features/courses/courses/service/counter_service.go
package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecomputeCourseCounters re-derives the denormalized lesson count and total
// duration from the lessons table and persists them on the course row.
// Called inside the same transaction as every lesson mutation so the
// counters can never drift.
func RecomputeCourseCounters(tx *gorm.DB, courseID uuid.UUID) error {
	var agg struct {
		Total    int64
		Duration int64
	}
	if err := tx.Table("lessons").
		Select("COUNT(*) AS total, COALESCE(SUM(lesson_duration_seconds), 0) AS duration").
		Where("lesson_course_id = ?", courseID).
		Scan(&agg).Error; err != nil {
		return err
	}

	return tx.Table("courses").
		Where("course_id = ?", courseID).
		Updates(map[string]interface{}{
			"course_total_lessons":          agg.Total,
			"course_total_duration_seconds": agg.Duration,
		}).Error
}
