package dto

import (
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"

	"kursusku_backend/internals/features/courses/lessons/model"
)

type LessonResourceDTO struct {
	Title string `json:"title" validate:"required,min=1,max=300"`
	Key   string `json:"key" validate:"required,min=1,max=500"`
	Type  string `json:"type" validate:"omitempty,max=50"`
}

type LessonDTO struct {
	LessonID              string              `json:"lesson_id"`
	LessonModuleID        string              `json:"lesson_module_id"`
	LessonCourseID        string              `json:"lesson_course_id"`
	LessonTitle           string              `json:"lesson_title"`
	LessonDescription     string              `json:"lesson_description"`
	LessonHasVideo        bool                `json:"lesson_has_video"`
	LessonDurationSeconds int                 `json:"lesson_duration_seconds"`
	LessonOrder           int                 `json:"lesson_order"`
	LessonIsFreePreview   bool                `json:"lesson_is_free_preview"`
	LessonResources       []LessonResourceDTO `json:"lesson_resources"`
	LessonCreatedAt       time.Time           `json:"lesson_created_at"`
	LessonUpdatedAt       time.Time           `json:"lesson_updated_at"`
}

// ToLessonDTO hides the raw video key; playback goes through the signed-URL
// endpoint instead.
func ToLessonDTO(m model.LessonModel) LessonDTO {
	out := LessonDTO{
		LessonID:              m.LessonID.String(),
		LessonModuleID:        m.LessonModuleID.String(),
		LessonCourseID:        m.LessonCourseID.String(),
		LessonTitle:           m.LessonTitle,
		LessonDescription:     m.LessonDescription,
		LessonHasVideo:        m.LessonVideoKey != nil && *m.LessonVideoKey != "",
		LessonDurationSeconds: m.LessonDurationSeconds,
		LessonOrder:           m.LessonOrder,
		LessonIsFreePreview:   m.LessonIsFreePreview,
		LessonResources:       []LessonResourceDTO{},
		LessonCreatedAt:       m.LessonCreatedAt,
		LessonUpdatedAt:       m.LessonUpdatedAt,
	}
	if len(m.LessonResources) > 0 {
		var resources []LessonResourceDTO
		if err := sonic.Unmarshal(m.LessonResources, &resources); err == nil {
			out.LessonResources = resources
		}
	}
	return out
}

func MarshalResources(resources []LessonResourceDTO) (datatypes.JSON, error) {
	if len(resources) == 0 {
		return datatypes.JSON("[]"), nil
	}
	raw, err := sonic.Marshal(resources)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

type CreateLessonRequest struct {
	LessonModuleID        string              `json:"lesson_module_id" validate:"required,uuid"`
	LessonTitle           string              `json:"lesson_title" validate:"required,min=2,max=500"`
	LessonDescription     string              `json:"lesson_description"`
	LessonVideoKey        *string             `json:"lesson_video_key" validate:"omitempty,max=500"`
	LessonDurationSeconds int                 `json:"lesson_duration_seconds" validate:"min=0"`
	LessonOrder           int                 `json:"lesson_order" validate:"min=0"`
	LessonIsFreePreview   bool                `json:"lesson_is_free_preview"`
	LessonResources       []LessonResourceDTO `json:"lesson_resources" validate:"omitempty,dive"`
}

type UpdateLessonRequest struct {
	LessonTitle           *string              `json:"lesson_title" validate:"omitempty,min=2,max=500"`
	LessonDescription     *string              `json:"lesson_description"`
	LessonVideoKey        *string              `json:"lesson_video_key" validate:"omitempty,max=500"`
	LessonDurationSeconds *int                 `json:"lesson_duration_seconds" validate:"omitempty,min=0"`
	LessonOrder           *int                 `json:"lesson_order" validate:"omitempty,min=0"`
	LessonIsFreePreview   *bool                `json:"lesson_is_free_preview"`
	LessonResources       *[]LessonResourceDTO `json:"lesson_resources" validate:"omitempty,dive"`
}

type LessonOrderPair struct {
	LessonID string `json:"lesson_id" validate:"required,uuid"`
	Order    int    `json:"order" validate:"min=0"`
}

type ReorderLessonsRequest struct {
	ModuleID     string            `json:"module_id" validate:"required,uuid"`
	LessonOrders []LessonOrderPair `json:"lesson_orders" validate:"required,min=1,dive"`
}
