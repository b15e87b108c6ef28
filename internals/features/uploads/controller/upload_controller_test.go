package controller

import (
	"testing"

	"kursusku_backend/internals/constants"
)

func TestVideoAccessAllowed(t *testing.T) {
	cases := []struct {
		name        string
		freePreview bool
		role        string
		owner       bool
		purchased   bool
		want        bool
	}{
		{"free preview open to students", true, constants.RoleStudent, false, false, true},
		{"admin bypass", false, constants.RoleAdmin, false, false, true},
		{"course instructor bypass", false, constants.RoleInstructor, true, false, true},
		{"purchaser", false, constants.RoleStudent, false, true, true},
		{"other instructor without purchase", false, constants.RoleInstructor, false, false, false},
		{"student without purchase", false, constants.RoleStudent, false, false, false},
	}
	for _, tc := range cases {
		if got := videoAccessAllowed(tc.freePreview, tc.role, tc.owner, tc.purchased); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestNormalizeUploadKind(t *testing.T) {
	for in, want := range map[string]string{
		"image":     "images",
		"video":     "videos",
		"resource":  "resources",
		"images":    "images",
		"videos":    "videos",
		"resources": "resources",
	} {
		if got := normalizeUploadKind(in); got != want {
			t.Fatalf("normalizeUploadKind(%q) = %q, want %q", in, got, want)
		}
	}
}
