package model

import (
	"time"

	"github.com/google/uuid"
)

type CategoryModel struct {
	CategoryID          uuid.UUID `gorm:"column:category_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"category_id"`
	CategoryName        string    `gorm:"column:category_name;type:varchar(100);not null" json:"category_name"`
	CategorySlug        string    `gorm:"column:category_slug;type:varchar(100);uniqueIndex;not null" json:"category_slug"`
	CategoryDescription string    `gorm:"column:category_description;type:text" json:"category_description"`
	CategoryIcon        string    `gorm:"column:category_icon;type:varchar(100)" json:"category_icon"`
	CategoryOrder       int       `gorm:"column:category_order;not null;default:0" json:"category_order"`
	CategoryCreatedAt   time.Time `gorm:"column:category_created_at;autoCreateTime" json:"category_created_at"`
	CategoryUpdatedAt   time.Time `gorm:"column:category_updated_at;autoUpdateTime" json:"category_updated_at"`
}

func (CategoryModel) TableName() string {
	return "categories"
}
