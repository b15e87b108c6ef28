package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	userModel "kursusku_backend/internals/features/users/user/model"
)

func TestRefreshTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	userID := uuid.New()
	now := time.Now()

	signed, err := SignToken(BuildRefreshClaims(userID, now), secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got, err := ParseRefreshSubject(signed, secret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != userID {
		t.Fatalf("subject = %s, want %s", got, userID)
	}

	if _, err := ParseRefreshSubject(signed, "other-secret"); err == nil {
		t.Fatal("token accepted with wrong secret")
	}
}

func TestAccessClaims(t *testing.T) {
	u := userModel.UserModel{ID: uuid.New(), UserName: "budi", Role: "instructor"}
	now := time.Now()

	claims := BuildAccessClaims(u, now)
	if claims["sub"] != u.ID.String() {
		t.Fatalf("sub = %v", claims["sub"])
	}
	if claims["role"] != "instructor" || claims["name"] != "budi" {
		t.Fatalf("claims = %v", claims)
	}
	exp, _ := claims["exp"].(int64)
	if exp != now.Add(AccessTTL).Unix() {
		t.Fatalf("exp = %d", exp)
	}
}

func TestComputeRefreshHash(t *testing.T) {
	a := ComputeRefreshHash("token-1", "secret")
	if a != ComputeRefreshHash("token-1", "secret") {
		t.Fatal("hash must be deterministic")
	}
	if a == ComputeRefreshHash("token-2", "secret") {
		t.Fatal("different tokens must hash differently")
	}
	if a == ComputeRefreshHash("token-1", "other") {
		t.Fatal("different secrets must hash differently")
	}
}

func TestRandomToken(t *testing.T) {
	a, b := RandomToken(32), RandomToken(32)
	if len(a) != 64 {
		t.Fatalf("token hex length = %d, want 64", len(a))
	}
	if a == b {
		t.Fatal("tokens must be unique")
	}
}
