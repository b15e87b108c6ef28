package service

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"kursusku_backend/internals/features/payments/model"
)

func TestVerifySignatureWithKey(t *testing.T) {
	serverKey := "SB-Mid-server-testkey"
	orderID := "KURSUS-abc"
	statusCode := "200"
	gross := "150000.00"

	sum := sha512.Sum512([]byte(orderID + statusCode + gross + serverKey))
	sig := hex.EncodeToString(sum[:])

	if !VerifySignatureWithKey(orderID, statusCode, gross, sig, serverKey) {
		t.Fatal("valid signature rejected")
	}
	if !VerifySignatureWithKey(orderID, statusCode, gross, strings.ToUpper(sig), serverKey) {
		t.Fatal("signature comparison should be case-insensitive")
	}
	if VerifySignatureWithKey(orderID, statusCode, gross, sig, "wrong-key") {
		t.Fatal("signature accepted with wrong server key")
	}
	if VerifySignatureWithKey(orderID, statusCode, gross, "", serverKey) {
		t.Fatal("empty signature accepted")
	}
}

func TestMapTransactionStatus(t *testing.T) {
	now := time.Now()

	out := MapTransactionStatus("settlement", "", now)
	if !out.Handled || out.Status != model.PurchaseStatusCompleted || out.PaidAt == nil {
		t.Fatalf("settlement mapping wrong: %+v", out)
	}

	out = MapTransactionStatus("capture", "accept", now)
	if !out.Handled || out.Status != model.PurchaseStatusCompleted {
		t.Fatalf("capture+accept mapping wrong: %+v", out)
	}

	out = MapTransactionStatus("capture", "challenge", now)
	if out.Handled {
		t.Fatalf("capture+challenge should not complete a purchase: %+v", out)
	}

	out = MapTransactionStatus("pending", "", now)
	if !out.Handled || out.Status != model.PurchaseStatusPending || out.PaidAt != nil {
		t.Fatalf("pending mapping wrong: %+v", out)
	}

	out = MapTransactionStatus("refund", "", now)
	if !out.Handled || out.Status != model.PurchaseStatusRefunded || out.RefundedAt == nil {
		t.Fatalf("refund mapping wrong: %+v", out)
	}

	for _, ts := range []string{"deny", "cancel", "expire", "failure", "something_new"} {
		out = MapTransactionStatus(ts, "", now)
		if out.Handled {
			t.Fatalf("%q should be acknowledged without a transition", ts)
		}
	}
}

func TestNewOrderID(t *testing.T) {
	a, b := NewOrderID(), NewOrderID()
	if !strings.HasPrefix(a, "KURSUS-") {
		t.Fatalf("order id %q missing prefix", a)
	}
	if a == b {
		t.Fatal("order ids must be unique")
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from model.PurchaseStatus
		to   model.PurchaseStatus
		want bool
	}{
		{model.PurchaseStatusPending, model.PurchaseStatusCompleted, true},
		{model.PurchaseStatusPending, model.PurchaseStatusPending, true},
		{model.PurchaseStatusCompleted, model.PurchaseStatusCompleted, true},
		{model.PurchaseStatusCompleted, model.PurchaseStatusRefunded, true},
		{model.PurchaseStatusCompleted, model.PurchaseStatusPending, false},
		{model.PurchaseStatusRefunded, model.PurchaseStatusCompleted, false},
		{model.PurchaseStatusRefunded, model.PurchaseStatusPending, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

// A pending notification redelivered after settlement must not take the
// purchase back out of completed.
func TestStalePendingAfterSettlementIsIgnored(t *testing.T) {
	now := time.Now()

	settled := MapTransactionStatus("settlement", "", now)
	if !settled.Handled || settled.Status != model.PurchaseStatusCompleted {
		t.Fatalf("settlement outcome = %+v", settled)
	}
	current := settled.Status

	stale := MapTransactionStatus("pending", "", now)
	if !stale.Handled {
		t.Fatal("pending should map to a transition on a fresh order")
	}
	if CanTransition(current, stale.Status) {
		t.Fatalf("stale pending after %s must be rejected", current)
	}
}
