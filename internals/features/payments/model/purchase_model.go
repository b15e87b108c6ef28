package model

import (
	"time"

	"github.com/google/uuid"
)

type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusRefunded  PurchaseStatus = "refunded"
)

// PurchaseModel links a user to a paid course. PurchaseOrderID is the
// gateway's checkout session identifier; its unique index makes webhook
// redeliveries idempotent at the store level.
type PurchaseModel struct {
	PurchaseID         uuid.UUID      `gorm:"column:purchase_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"purchase_id"`
	PurchaseUserID     uuid.UUID      `gorm:"column:purchase_user_id;type:uuid;not null;index:idx_purchase_user_course" json:"purchase_user_id"`
	PurchaseCourseID   uuid.UUID      `gorm:"column:purchase_course_id;type:uuid;not null;index:idx_purchase_user_course;index" json:"purchase_course_id"`
	PurchaseOrderID    string         `gorm:"column:purchase_order_id;type:varchar(255);not null;uniqueIndex" json:"purchase_order_id"`
	PurchaseGatewayRef *string        `gorm:"column:purchase_gateway_ref;type:varchar(255)" json:"purchase_gateway_ref,omitempty"`
	PurchaseAmountIDR  int64          `gorm:"column:purchase_amount_idr;not null" json:"purchase_amount_idr"`
	PurchaseStatus     PurchaseStatus `gorm:"column:purchase_status;type:varchar(20);not null;default:'pending';index" json:"purchase_status"`

	PurchasePaidAt     *time.Time `gorm:"column:purchase_paid_at" json:"purchase_paid_at,omitempty"`
	PurchaseRefundedAt *time.Time `gorm:"column:purchase_refunded_at" json:"purchase_refunded_at,omitempty"`
	PurchaseCreatedAt  time.Time  `gorm:"column:purchase_created_at;autoCreateTime" json:"purchase_created_at"`
	PurchaseUpdatedAt  time.Time  `gorm:"column:purchase_updated_at;autoUpdateTime" json:"purchase_updated_at"`
}

func (PurchaseModel) TableName() string {
	return "purchases"
}
