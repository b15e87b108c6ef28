package dto

import (
	"sort"
	"time"

	"kursusku_backend/internals/features/courses/modules/model"
)

type ModuleDTO struct {
	ModuleID          string    `json:"module_id"`
	ModuleCourseID    string    `json:"module_course_id"`
	ModuleTitle       string    `json:"module_title"`
	ModuleDescription string    `json:"module_description"`
	ModuleOrder       int       `json:"module_order"`
	ModuleCreatedAt   time.Time `json:"module_created_at"`
	ModuleUpdatedAt   time.Time `json:"module_updated_at"`
}

func ToModuleDTO(m model.ModuleModel) ModuleDTO {
	return ModuleDTO{
		ModuleID:          m.ModuleID.String(),
		ModuleCourseID:    m.ModuleCourseID.String(),
		ModuleTitle:       m.ModuleTitle,
		ModuleDescription: m.ModuleDescription,
		ModuleOrder:       m.ModuleOrder,
		ModuleCreatedAt:   m.ModuleCreatedAt,
		ModuleUpdatedAt:   m.ModuleUpdatedAt,
	}
}

type CreateModuleRequest struct {
	ModuleCourseID    string `json:"module_course_id" validate:"required,uuid"`
	ModuleTitle       string `json:"module_title" validate:"required,min=2,max=500"`
	ModuleDescription string `json:"module_description"`
	ModuleOrder       int    `json:"module_order" validate:"min=0"`
}

type UpdateModuleRequest struct {
	ModuleTitle       *string `json:"module_title" validate:"omitempty,min=2,max=500"`
	ModuleDescription *string `json:"module_description"`
	ModuleOrder       *int    `json:"module_order" validate:"omitempty,min=0"`
}

type ModuleOrderPair struct {
	ModuleID string `json:"module_id" validate:"required,uuid"`
	Order    int    `json:"order" validate:"min=0"`
}

type ReorderModulesRequest struct {
	CourseID     string            `json:"course_id" validate:"required,uuid"`
	ModuleOrders []ModuleOrderPair `json:"module_orders" validate:"required,min=1,dive"`
}

// ApplyOrderPairs rewrites each module's order from the matching pair and
// returns the modules sorted by the new order, ascending. Modules without a
// pair keep their current order.
func ApplyOrderPairs(modules []model.ModuleModel, pairs []ModuleOrderPair) []model.ModuleModel {
	byID := make(map[string]int, len(pairs))
	for _, p := range pairs {
		byID[p.ModuleID] = p.Order
	}
	out := make([]model.ModuleModel, len(modules))
	copy(out, modules)
	for i := range out {
		if ord, ok := byID[out[i].ModuleID.String()]; ok {
			out[i].ModuleOrder = ord
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ModuleOrder < out[j].ModuleOrder
	})
	return out
}
