package dto

import (
	"testing"
	"time"

	"kursusku_backend/internals/features/courses/courses/model"
)

func strPtr(s string) *string { return &s }

func TestApplyStampsPublishedOnce(t *testing.T) {
	m := model.CourseModel{CourseStatus: model.CourseStatusDraft}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	req := UpdateCourseRequest{CourseStatus: strPtr("published")}
	req.Apply(&m, now)

	if m.CourseStatus != model.CourseStatusPublished {
		t.Fatalf("status = %s, want published", m.CourseStatus)
	}
	if m.CoursePublishedAt == nil || !m.CoursePublishedAt.Equal(now) {
		t.Fatalf("published at = %v, want %v", m.CoursePublishedAt, now)
	}

	// republish later: the original timestamp survives
	later := now.Add(24 * time.Hour)
	req2 := UpdateCourseRequest{CourseStatus: strPtr("published")}
	req2.Apply(&m, later)
	if !m.CoursePublishedAt.Equal(now) {
		t.Fatalf("published at re-stamped to %v", m.CoursePublishedAt)
	}
}

func TestApplyReportsTitleChange(t *testing.T) {
	m := model.CourseModel{CourseTitle: "Go Dasar"}

	if changed := (UpdateCourseRequest{CourseTitle: strPtr("Go Dasar")}).Apply(&m, time.Now()); changed {
		t.Fatal("same title should not report a change")
	}
	if changed := (UpdateCourseRequest{CourseTitle: strPtr("Go Lanjutan")}).Apply(&m, time.Now()); !changed {
		t.Fatal("new title should report a change")
	}
	if m.CourseTitle != "Go Lanjutan" {
		t.Fatalf("title = %q", m.CourseTitle)
	}
}

func TestApplyPartialUpdate(t *testing.T) {
	m := model.CourseModel{
		CourseTitle:    "Go Dasar",
		CoursePriceIDR: 150000,
		CourseLevel:    model.CourseLevelBeginner,
	}
	var price int64 = 200000
	(UpdateCourseRequest{CoursePriceIDR: &price}).Apply(&m, time.Now())

	if m.CoursePriceIDR != 200000 {
		t.Fatalf("price = %d", m.CoursePriceIDR)
	}
	if m.CourseTitle != "Go Dasar" || m.CourseLevel != model.CourseLevelBeginner {
		t.Fatalf("unset fields were touched: %+v", m)
	}
}
