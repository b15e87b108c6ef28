package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GatewayEventModel is the audit log of every webhook notification received,
// whether or not it changed a purchase.
type GatewayEventModel struct {
	GatewayEventID          uuid.UUID      `gorm:"column:gateway_event_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"gateway_event_id"`
	GatewayEventOrderID     string         `gorm:"column:gateway_event_order_id;type:varchar(255);not null;index" json:"gateway_event_order_id"`
	GatewayEventType        string         `gorm:"column:gateway_event_type;type:varchar(50);not null" json:"gateway_event_type"`
	GatewayEventPayload     datatypes.JSON `gorm:"column:gateway_event_payload" json:"gateway_event_payload"`
	GatewayEventStatus      string         `gorm:"column:gateway_event_status;type:varchar(20);not null" json:"gateway_event_status"`
	GatewayEventError       *string        `gorm:"column:gateway_event_error;type:text" json:"gateway_event_error,omitempty"`
	GatewayEventCreatedAt   time.Time      `gorm:"column:gateway_event_created_at;autoCreateTime" json:"gateway_event_created_at"`
	GatewayEventProcessedAt *time.Time     `gorm:"column:gateway_event_processed_at" json:"gateway_event_processed_at,omitempty"`
}

func (GatewayEventModel) TableName() string {
	return "gateway_events"
}
