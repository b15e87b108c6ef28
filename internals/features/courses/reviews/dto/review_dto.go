package dto

import (
	"time"

	"kursusku_backend/internals/features/courses/reviews/model"
)

type ReviewDTO struct {
	ReviewID        string    `json:"review_id"`
	ReviewUserID    string    `json:"review_user_id"`
	ReviewUserName  string    `json:"review_user_name,omitempty"`
	ReviewCourseID  string    `json:"review_course_id"`
	ReviewRating    int       `json:"review_rating"`
	ReviewComment   string    `json:"review_comment"`
	ReviewCreatedAt time.Time `json:"review_created_at"`
	ReviewUpdatedAt time.Time `json:"review_updated_at"`
}

func ToReviewDTO(m model.ReviewModel, userName string) ReviewDTO {
	return ReviewDTO{
		ReviewID:        m.ReviewID.String(),
		ReviewUserID:    m.ReviewUserID.String(),
		ReviewUserName:  userName,
		ReviewCourseID:  m.ReviewCourseID.String(),
		ReviewRating:    m.ReviewRating,
		ReviewComment:   m.ReviewComment,
		ReviewCreatedAt: m.ReviewCreatedAt,
		ReviewUpdatedAt: m.ReviewUpdatedAt,
	}
}

type CreateReviewRequest struct {
	ReviewCourseID string `json:"review_course_id" validate:"required,uuid"`
	ReviewRating   int    `json:"review_rating" validate:"required,min=1,max=5"`
	ReviewComment  string `json:"review_comment" validate:"required,min=10"`
}

type UpdateReviewRequest struct {
	ReviewRating  *int    `json:"review_rating" validate:"omitempty,min=1,max=5"`
	ReviewComment *string `json:"review_comment" validate:"omitempty,min=10"`
}

type CourseReviewsResponse struct {
	Reviews       []ReviewDTO `json:"reviews"`
	TotalReviews  int64       `json:"total_reviews"`
	AverageRating float64     `json:"average_rating"`
}
