package dto

import (
	"time"

	"kursusku_backend/internals/features/payments/model"
)

type PurchaseDTO struct {
	PurchaseID         string               `json:"purchase_id"`
	PurchaseUserID     string               `json:"purchase_user_id"`
	PurchaseCourseID   string               `json:"purchase_course_id"`
	PurchaseOrderID    string               `json:"purchase_order_id"`
	PurchaseAmountIDR  int64                `json:"purchase_amount_idr"`
	PurchaseStatus     model.PurchaseStatus `json:"purchase_status"`
	PurchasePaidAt     *time.Time           `json:"purchase_paid_at,omitempty"`
	PurchaseRefundedAt *time.Time           `json:"purchase_refunded_at,omitempty"`
	PurchaseCreatedAt  time.Time            `json:"purchase_created_at"`
}

func ToPurchaseDTO(m model.PurchaseModel) PurchaseDTO {
	return PurchaseDTO{
		PurchaseID:         m.PurchaseID.String(),
		PurchaseUserID:     m.PurchaseUserID.String(),
		PurchaseCourseID:   m.PurchaseCourseID.String(),
		PurchaseOrderID:    m.PurchaseOrderID,
		PurchaseAmountIDR:  m.PurchaseAmountIDR,
		PurchaseStatus:     m.PurchaseStatus,
		PurchasePaidAt:     m.PurchasePaidAt,
		PurchaseRefundedAt: m.PurchaseRefundedAt,
		PurchaseCreatedAt:  m.PurchaseCreatedAt,
	}
}

// PurchaseHistoryItem decorates a purchase with course display fields.
type PurchaseHistoryItem struct {
	PurchaseDTO
	CourseTitle        string  `json:"course_title"`
	CourseSlug         string  `json:"course_slug"`
	CourseThumbnailKey *string `json:"course_thumbnail_key,omitempty"`
}

type CreateCheckoutRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`
}

type CreateCheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// GatewayNotification is the midtrans webhook payload; extra fields in the
// body are ignored.
type GatewayNotification struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
	TransactionID     string `json:"transaction_id"`
	SettlementTime    string `json:"settlement_time"`
}
