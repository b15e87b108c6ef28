package dto

import (
	"testing"

	"github.com/google/uuid"

	"kursusku_backend/internals/features/courses/modules/model"
)

func TestApplyOrderPairs(t *testing.T) {
	a := model.ModuleModel{ModuleID: uuid.New(), ModuleTitle: "A", ModuleOrder: 0}
	b := model.ModuleModel{ModuleID: uuid.New(), ModuleTitle: "B", ModuleOrder: 1}
	c := model.ModuleModel{ModuleID: uuid.New(), ModuleTitle: "C", ModuleOrder: 2}

	got := ApplyOrderPairs([]model.ModuleModel{a, b, c}, []ModuleOrderPair{
		{ModuleID: a.ModuleID.String(), Order: 2},
		{ModuleID: b.ModuleID.String(), Order: 0},
		{ModuleID: c.ModuleID.String(), Order: 1},
	})

	want := []string{"B", "C", "A"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, title := range want {
		if got[i].ModuleTitle != title {
			t.Fatalf("position %d = %q, want %q", i, got[i].ModuleTitle, title)
		}
	}
}

func TestApplyOrderPairsKeepsUnlistedOrder(t *testing.T) {
	a := model.ModuleModel{ModuleID: uuid.New(), ModuleTitle: "A", ModuleOrder: 0}
	b := model.ModuleModel{ModuleID: uuid.New(), ModuleTitle: "B", ModuleOrder: 5}

	got := ApplyOrderPairs([]model.ModuleModel{a, b}, []ModuleOrderPair{
		{ModuleID: a.ModuleID.String(), Order: 9},
	})

	if got[0].ModuleTitle != "B" || got[1].ModuleTitle != "A" {
		t.Fatalf("order = [%s, %s], want [B, A]", got[0].ModuleTitle, got[1].ModuleTitle)
	}
	if got[0].ModuleOrder != 5 {
		t.Fatalf("unlisted module order = %d, want 5", got[0].ModuleOrder)
	}
}

func TestToModuleDTO(t *testing.T) {
	m := model.ModuleModel{
		ModuleID:       uuid.New(),
		ModuleCourseID: uuid.New(),
		ModuleTitle:    "Pengenalan",
		ModuleOrder:    3,
	}
	got := ToModuleDTO(m)
	if got.ModuleID != m.ModuleID.String() {
		t.Fatalf("ModuleID = %q, want %q", got.ModuleID, m.ModuleID.String())
	}
	if got.ModuleOrder != 3 || got.ModuleTitle != "Pengenalan" {
		t.Fatalf("unexpected dto: %+v", got)
	}
}
