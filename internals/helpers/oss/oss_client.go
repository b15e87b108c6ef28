// internals/helpers/oss/oss_client.go
package oss

import (
	"fmt"
	"path"
	"strings"

	alioss "github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

const (
	FolderVideos    = "videos"
	FolderImages    = "images"
	FolderResources = "resources"

	DefaultSignedURLExpirySec = 3600 // 1 hour
)

// Service wraps one bucket handle, constructed once at startup from validated
// config. Signed URLs are the only read/write path the app hands out.
type Service struct {
	bucket *alioss.Bucket
}

func NewService(endpoint, keyID, keySecret, bucketName string) (*Service, error) {
	client, err := alioss.New(endpoint, keyID, keySecret)
	if err != nil {
		return nil, fmt.Errorf("oss client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss bucket %s: %w", bucketName, err)
	}
	return &Service{bucket: bucket}, nil
}

// SignedGetURL returns a time-limited read URL for one object key.
func (s *Service) SignedGetURL(key string, expirySec int64) (string, error) {
	if expirySec <= 0 {
		expirySec = DefaultSignedURLExpirySec
	}
	url, err := s.bucket.SignURL(key, alioss.HTTPGet, expirySec)
	if err != nil {
		return "", fmt.Errorf("sign get url: %w", err)
	}
	return url, nil
}

// SignedPutURL returns a time-limited direct-upload URL for one object key.
func (s *Service) SignedPutURL(key, contentType string, expirySec int64) (string, error) {
	if expirySec <= 0 {
		expirySec = DefaultSignedURLExpirySec
	}
	url, err := s.bucket.SignURL(key, alioss.HTTPPut, expirySec, alioss.ContentType(contentType))
	if err != nil {
		return "", fmt.Errorf("sign put url: %w", err)
	}
	return url, nil
}

func (s *Service) DeleteObject(key string) error {
	return s.bucket.DeleteObject(key)
}

/* =======================================================================
   Key building & validation (pure, no bucket needed)
======================================================================= */

var allowedContentTypes = map[string]map[string]string{
	FolderImages: {
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
	},
	FolderVideos: {
		"video/mp4":       ".mp4",
		"video/webm":      ".webm",
		"video/quicktime": ".mov",
	},
	FolderResources: {
		"application/pdf": ".pdf",
		"application/zip": ".zip",
		"text/plain":      ".txt",
	},
}

// BuildObjectKey validates kind/content type and returns a fresh collision-free
// key "<folder>/<uuid><ext>". The original file name only contributes its
// extension when the content type allows several.
func BuildObjectKey(kind, fileName, contentType string) (string, error) {
	types, ok := allowedContentTypes[kind]
	if !ok {
		return "", fmt.Errorf("unknown upload kind %q", kind)
	}
	ext, ok := types[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", fmt.Errorf("content type %q not allowed for %s", contentType, kind)
	}
	if e := strings.ToLower(path.Ext(fileName)); e != "" && hasValue(types, e) {
		ext = e
	}
	return kind + "/" + uuid.NewString() + ext, nil
}

// NormalizeVideoKey maps stored video references (bare file name, key, or a
// full URL from an older writer) onto the canonical "videos/..." key.
func NormalizeVideoKey(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		if i := strings.Index(ref, "/"+FolderVideos+"/"); i >= 0 {
			return ref[i+1:]
		}
		return FolderVideos + "/" + path.Base(ref)
	}
	if !strings.HasPrefix(ref, FolderVideos+"/") {
		return FolderVideos + "/" + ref
	}
	return ref
}

func hasValue(m map[string]string, v string) bool {
	for _, x := range m {
		if x == v {
			return true
		}
	}
	return false
}
