package service

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"

	"kursusku_backend/internals/features/payments/model"
)

/* =========================================================
   Gateway client
========================================================= */

// Gateway wraps the Snap client. Built once at bootstrap and handed to the
// controllers, never reached through a package global.
type Gateway struct {
	snap      snap.Client
	serverKey string
}

func NewGateway(serverKey string, useProduction bool) *Gateway {
	g := &Gateway{serverKey: serverKey}
	if useProduction {
		g.snap.New(serverKey, midtrans.Production)
	} else {
		g.snap.New(serverKey, midtrans.Sandbox)
	}
	return g
}

// NewOrderID generates the identifier sent to the gateway as OrderID. It is
// stored on the purchase row with a unique index, so it doubles as the
// checkout session id returned to the client.
func NewOrderID() string {
	return fmt.Sprintf("KURSUS-%s", uuid.New().String())
}

type CheckoutInput struct {
	OrderID     string
	AmountIDR   int64
	CourseTitle string
	CourseID    string
	UserName    string
	UserEmail   string
}

// CreateCheckout opens a Snap transaction and returns the redirect URL.
func (g *Gateway) CreateCheckout(in CheckoutInput) (string, error) {
	if in.AmountIDR <= 0 {
		return "", errors.New("invalid amount")
	}
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  in.OrderID,
			GrossAmt: in.AmountIDR,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: in.UserName,
			Email: in.UserEmail,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       in.CourseID,
				Price:    in.AmountIDR,
				Qty:      1,
				Name:     truncate(in.CourseTitle, 50),
				Category: "course",
			},
		},
	}
	resp, err := g.snap.CreateTransaction(req)
	if err != nil {
		return "", err
	}
	return resp.RedirectURL, nil
}

// VerifySignature checks the notification signature:
// SHA512(order_id + status_code + gross_amount + serverKey).
func (g *Gateway) VerifySignature(orderID, statusCode, grossAmount, signatureKey string) bool {
	return VerifySignatureWithKey(orderID, statusCode, grossAmount, signatureKey, g.serverKey)
}

func VerifySignatureWithKey(orderID, statusCode, grossAmount, signatureKey, serverKey string) bool {
	want := strings.ToLower(strings.TrimSpace(signatureKey))
	if want == "" {
		return false
	}
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hmac.Equal([]byte(hex.EncodeToString(sum[:])), []byte(want))
}

/* =========================================================
   Status mapping
========================================================= */

// StatusOutcome is what a notification does to a purchase.
type StatusOutcome struct {
	Status     model.PurchaseStatus
	PaidAt     *time.Time
	RefundedAt *time.Time
	// Handled is false for statuses we acknowledge without touching the
	// purchase (deny, cancel, expire, failure on a pending order).
	Handled bool
}

// MapTransactionStatus translates a gateway transaction_status (+fraud_status
// for card captures) into the purchase transition to apply.
func MapTransactionStatus(transactionStatus, fraudStatus string, now time.Time) StatusOutcome {
	ts := strings.ToLower(transactionStatus)
	fraud := strings.ToLower(fraudStatus)
	switch ts {
	case "capture":
		if fraud == "accept" {
			return StatusOutcome{Status: model.PurchaseStatusCompleted, PaidAt: &now, Handled: true}
		}
		return StatusOutcome{Handled: false}
	case "settlement":
		return StatusOutcome{Status: model.PurchaseStatusCompleted, PaidAt: &now, Handled: true}
	case "pending":
		return StatusOutcome{Status: model.PurchaseStatusPending, Handled: true}
	case "refund", "partial_refund":
		return StatusOutcome{Status: model.PurchaseStatusRefunded, RefundedAt: &now, Handled: true}
	}
	return StatusOutcome{Handled: false}
}

// statusRank orders purchase states along their lifecycle so redeliveries
// can never move a purchase backwards.
func statusRank(s model.PurchaseStatus) int {
	switch s {
	case model.PurchaseStatusPending:
		return 0
	case model.PurchaseStatusCompleted:
		return 1
	case model.PurchaseStatusRefunded:
		return 2
	}
	return -1
}

// CanTransition reports whether a notification may move a purchase from its
// current status to the mapped one. The gateway redelivers notifications out
// of order, so a stale pending arriving after settlement must not take the
// buyer's access away. Re-applying the same status stays allowed, which keeps
// duplicate deliveries idempotent.
func CanTransition(from, to model.PurchaseStatus) bool {
	return statusRank(to) >= statusRank(from)
}

/* =========================================================
   Access checks
========================================================= */

// HasCompletedPurchase reports whether the user owns a completed purchase of
// the course. Shared by lesson playback, reviews, and the verify endpoint.
func HasCompletedPurchase(db *gorm.DB, userID, courseID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&model.PurchaseModel{}).
		Where("purchase_user_id = ? AND purchase_course_id = ? AND purchase_status = ?",
			userID, courseID, model.PurchaseStatusCompleted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
