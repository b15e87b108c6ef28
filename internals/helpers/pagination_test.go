package helper

import "testing"

func TestSafeOrderClause(t *testing.T) {
	allowed := map[string]string{
		"created_at": "course_created_at",
		"price":      "course_price_idr",
	}

	p := PageParams{SortBy: "price", SortOrder: "asc"}
	if got := p.SafeOrderClause(allowed, "created_at"); got != "course_price_idr ASC" {
		t.Fatalf("got %q", got)
	}

	// unknown keys fall back to the default column, never into SQL
	p = PageParams{SortBy: "1; DROP TABLE courses", SortOrder: "desc"}
	if got := p.SafeOrderClause(allowed, "created_at"); got != "course_created_at DESC" {
		t.Fatalf("got %q", got)
	}
}

func TestBuildPageMeta(t *testing.T) {
	meta := BuildPageMeta(101, PageParams{Page: 2, PerPage: 25})
	if meta.TotalPages != 5 {
		t.Fatalf("total pages = %d, want 5", meta.TotalPages)
	}
	if !meta.HasNext || !meta.HasPrev {
		t.Fatalf("page 2 of 5 should have both next and prev: %+v", meta)
	}

	meta = BuildPageMeta(0, PageParams{Page: 1, PerPage: 25})
	if meta.TotalPages != 0 || meta.HasNext || meta.HasPrev {
		t.Fatalf("empty result meta wrong: %+v", meta)
	}
}
