package oss

import (
	"strings"
	"testing"
)

func TestBuildObjectKey(t *testing.T) {
	key, err := BuildObjectKey(FolderVideos, "intro.mp4", "video/mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(key, "videos/") || !strings.HasSuffix(key, ".mp4") {
		t.Fatalf("unexpected key %q", key)
	}

	// the generated name never reuses the client file name
	if strings.Contains(key, "intro") {
		t.Fatalf("key %q leaks the original file name", key)
	}
}

func TestBuildObjectKeyRejectsContentType(t *testing.T) {
	if _, err := BuildObjectKey(FolderImages, "x.exe", "application/x-msdownload"); err == nil {
		t.Fatal("expected error for disallowed content type")
	}
	if _, err := BuildObjectKey("secrets", "x.png", "image/png"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestNormalizeVideoKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"videos/abc.mp4", "videos/abc.mp4"},
		{"abc.mp4", "videos/abc.mp4"},
		{"https://bucket.oss-ap-southeast-5.aliyuncs.com/videos/abc.mp4", "videos/abc.mp4"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeVideoKey(tc.in); got != tc.want {
			t.Fatalf("NormalizeVideoKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
