package dto

import (
	"strings"
	"testing"

	"kursusku_backend/internals/features/courses/lessons/model"
)

func TestToLessonDTOHidesVideoKey(t *testing.T) {
	key := "videos/abc.mp4"
	m := model.LessonModel{LessonTitle: "Intro", LessonVideoKey: &key}

	out := ToLessonDTO(m)
	if !out.LessonHasVideo {
		t.Fatal("has_video should be true")
	}
	// the DTO never carries the raw object key
	if strings.Contains(out.LessonTitle, key) {
		t.Fatal("unexpected key leak")
	}

	out = ToLessonDTO(model.LessonModel{LessonTitle: "No video"})
	if out.LessonHasVideo {
		t.Fatal("has_video should be false without a key")
	}
}

func TestResourcesRoundTrip(t *testing.T) {
	in := []LessonResourceDTO{
		{Title: "Slides", Key: "resources/slides.pdf", Type: "pdf"},
		{Title: "Source", Key: "resources/src.zip"},
	}
	raw, err := MarshalResources(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	out := ToLessonDTO(model.LessonModel{LessonResources: raw})
	if len(out.LessonResources) != 2 {
		t.Fatalf("got %d resources", len(out.LessonResources))
	}
	if out.LessonResources[0].Title != "Slides" || out.LessonResources[1].Key != "resources/src.zip" {
		t.Fatalf("resources mangled: %+v", out.LessonResources)
	}
}

func TestMarshalResourcesEmpty(t *testing.T) {
	raw, err := MarshalResources(nil)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != "[]" {
		t.Fatalf("empty list should serialize to [], got %s", raw)
	}
}
