package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel holds one review per (user, course), enforced by the composite
// unique index rather than a read-then-insert check.
type ReviewModel struct {
	ReviewID        uuid.UUID `gorm:"column:review_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"review_id"`
	ReviewUserID    uuid.UUID `gorm:"column:review_user_id;type:uuid;not null;uniqueIndex:uq_review_user_course" json:"review_user_id"`
	ReviewCourseID  uuid.UUID `gorm:"column:review_course_id;type:uuid;not null;uniqueIndex:uq_review_user_course;index" json:"review_course_id"`
	ReviewRating    int       `gorm:"column:review_rating;not null" json:"review_rating"`
	ReviewComment   string    `gorm:"column:review_comment;type:text" json:"review_comment"`
	ReviewCreatedAt time.Time `gorm:"column:review_created_at;autoCreateTime" json:"review_created_at"`
	ReviewUpdatedAt time.Time `gorm:"column:review_updated_at;autoUpdateTime" json:"review_updated_at"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}
