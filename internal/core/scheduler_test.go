package core

import (
	"testing"

	"herdcore/pkg/domain"
)

func dueListTags(animals []Animal) []string {
	tags := make([]string, 0, len(animals))
	for _, a := range animals {
		tags = append(tags, a.TagNumber)
	}
	return tags
}

func TestPregnancyCheckDueList(t *testing.T) {
	now, _ := domain.ParseDate("2024-06-15")
	herd := []Animal{
		{TagNumber: "M-46", Category: domain.CategoryMilking, Status: domain.StatusInseminated, InseminationDate: strPtr("2024-04-30")}, // 46 days, due
		{TagNumber: "M-44", Category: domain.CategoryMilking, Status: domain.StatusInseminated, InseminationDate: strPtr("2024-05-02")}, // 44 days, not due
		{TagNumber: "H-44", Category: domain.CategoryHeifer, Status: domain.StatusInseminated, InseminationDate: strPtr("2024-05-02")},  // heifer 44 >= 40, due
		{TagNumber: "S-99", Category: domain.CategoryMilking, Status: domain.StatusSold, InseminationDate: strPtr("2024-04-01")},
		{TagNumber: "X-1", Category: domain.CategoryMilking, Status: domain.StatusInseminated, InseminationDate: strPtr("bogus")},
	}
	lists := ComputeDueLists(herd, now)
	got := dueListTags(lists.PregnancyCheckDue)
	want := []string{"H-44", "M-46"}
	if len(got) != len(want) {
		t.Fatalf("pregnancy check due = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pregnancy check due = %v, want %v", got, want)
		}
	}
}

func TestDryOffDueList(t *testing.T) {
	now, _ := domain.ParseDate("2024-06-15")
	herd := []Animal{
		{TagNumber: "D-225", Category: domain.CategoryMilking, Status: domain.StatusPregnant, InseminationDate: strPtr("2023-11-03")}, // 225 days, due
		{TagNumber: "D-224", Category: domain.CategoryMilking, Status: domain.StatusPregnant, InseminationDate: strPtr("2023-11-04")}, // 224 days, not due
	}
	lists := ComputeDueLists(herd, now)
	got := dueListTags(lists.DryOffDue)
	if len(got) != 1 || got[0] != "D-225" {
		t.Fatalf("dry-off due = %v, want [D-225]", got)
	}
}

func TestCalvingDueList(t *testing.T) {
	now, _ := domain.ParseDate("2024-06-15")
	herd := []Animal{
		{TagNumber: "C-4", Category: domain.CategoryMilking, Status: domain.StatusPregnant, ExpectedCalvingDate: strPtr("2024-06-19")},
		{TagNumber: "C-6", Category: domain.CategoryMilking, Status: domain.StatusPregnant, ExpectedCalvingDate: strPtr("2024-06-21")},
		{TagNumber: "C-dry", Category: domain.CategoryMilking, Status: domain.StatusDry, ExpectedCalvingDate: strPtr("2024-06-16")},
		{TagNumber: "C-over", Category: domain.CategoryMilking, Status: domain.StatusPregnant, ExpectedCalvingDate: strPtr("2024-06-10")},
	}
	lists := ComputeDueLists(herd, now)
	got := dueListTags(lists.CalvingDue)
	want := map[string]bool{"C-4": true, "C-dry": true, "C-over": true}
	if len(got) != len(want) {
		t.Fatalf("calving due = %v, want C-4, C-dry, C-over", got)
	}
	for _, tag := range got {
		if !want[tag] {
			t.Fatalf("unexpected tag %s in calving due list", tag)
		}
	}
}

func TestReadyForHeatList(t *testing.T) {
	now, _ := domain.ParseDate("2024-06-15")
	herd := []Animal{
		{TagNumber: "R-45", Category: domain.CategoryMilking, Status: domain.StatusNewlyCalved, CalvingDate: strPtr("2024-05-01")}, // 45 days, ready
		{TagNumber: "R-44", Category: domain.CategoryMilking, Status: domain.StatusNewlyCalved, CalvingDate: strPtr("2024-05-02")}, // 44 days, not yet
		{TagNumber: "R-open", Category: domain.CategoryMilking, Status: domain.StatusOpen, CalvingDate: strPtr("2024-04-01")},
		{TagNumber: "R-preg", Category: domain.CategoryMilking, Status: domain.StatusPregnant, CalvingDate: strPtr("2024-01-01")},
	}
	lists := ComputeDueLists(herd, now)
	got := dueListTags(lists.ReadyForHeat)
	want := []string{"R-45", "R-open"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("ready for heat = %v, want %v", got, want)
	}
}

func TestSummarize(t *testing.T) {
	herd := []Animal{
		{TagNumber: "1", Category: domain.CategoryMilking, Status: domain.StatusOpen, Farm: domain.FarmMilking},
		{TagNumber: "2", Category: domain.CategoryMilking, Status: domain.StatusPregnant, Farm: domain.FarmMilking},
		{TagNumber: "3", Category: domain.CategoryCattle, Status: domain.StatusOther, Farm: domain.FarmCattle},
		{TagNumber: "4", Category: domain.CategoryHeifer, Status: domain.StatusSold, Farm: domain.FarmMilking},
	}
	summary := Summarize(herd)
	if summary.Total != 3 {
		t.Fatalf("total = %d, want 3", summary.Total)
	}
	if summary.Sold != 1 {
		t.Fatalf("sold = %d, want 1", summary.Sold)
	}
	if summary.ByCategory[domain.CategoryMilking] != 2 {
		t.Fatalf("milking count = %d, want 2", summary.ByCategory[domain.CategoryMilking])
	}
	if summary.ByFarm[domain.FarmCattle] != 1 {
		t.Fatalf("cattle farm count = %d, want 1", summary.ByFarm[domain.FarmCattle])
	}
	// Sold animals do not leak into the breakdowns.
	if summary.ByCategory[domain.CategoryHeifer] != 0 {
		t.Fatalf("heifer count = %d, want 0", summary.ByCategory[domain.CategoryHeifer])
	}
}

func TestServiceDueListsUseInjectedClock(t *testing.T) {
	svc, _ := newTestService(t, "2024-06-15")
	mustRegister(t, svc, Animal{
		TagNumber:        "M-46",
		Category:         domain.CategoryMilking,
		Status:           domain.StatusInseminated,
		InseminationDate: strPtr("2024-04-30"),
	})
	lists := svc.DueLists()
	if got := dueListTags(lists.PregnancyCheckDue); len(got) != 1 || got[0] != "M-46" {
		t.Fatalf("pregnancy check due = %v, want [M-46]", got)
	}
}
