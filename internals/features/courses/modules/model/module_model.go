package model

import (
	"time"

	"github.com/google/uuid"
)

type ModuleModel struct {
	ModuleID          uuid.UUID `gorm:"column:module_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"module_id"`
	ModuleCourseID    uuid.UUID `gorm:"column:module_course_id;type:uuid;not null;index" json:"module_course_id"`
	ModuleTitle       string    `gorm:"column:module_title;type:varchar(500);not null" json:"module_title"`
	ModuleDescription string    `gorm:"column:module_description;type:text" json:"module_description"`
	ModuleOrder       int       `gorm:"column:module_order;not null;default:0" json:"module_order"`
	ModuleCreatedAt   time.Time `gorm:"column:module_created_at;autoCreateTime" json:"module_created_at"`
	ModuleUpdatedAt   time.Time `gorm:"column:module_updated_at;autoUpdateTime" json:"module_updated_at"`
}

func (ModuleModel) TableName() string {
	return "modules"
}
