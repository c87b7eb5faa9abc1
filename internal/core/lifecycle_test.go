package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"herdcore/pkg/domain"
)

func TestRegisterAnimalDefaults(t *testing.T) {
	svc, _ := newTestService(t, "2024-01-10")
	ctx := context.Background()

	cow, _, err := svc.RegisterAnimal(ctx, Animal{TagNumber: "M-1", Category: domain.CategoryMilking}, "tester")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if cow.ID == "" {
		t.Fatal("expected generated ID")
	}
	if cow.Status != domain.StatusOpen {
		t.Fatalf("status = %s, want Open", cow.Status)
	}
	if cow.Farm != domain.FarmMilking {
		t.Fatalf("farm = %s, want Milking Farm", cow.Farm)
	}
	if len(cow.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(cow.History))
	}
	if cow.History[0].Details != "Animal registered" {
		t.Fatalf("registration event details = %q", cow.History[0].Details)
	}
	if cow.History[0].Date != "2024-01-10" {
		t.Fatalf("registration event date = %s", cow.History[0].Date)
	}

	bull, _, err := svc.RegisterAnimal(ctx, Animal{TagNumber: "B-1", Category: domain.CategoryCattle, Status: domain.StatusPregnant}, "tester")
	if err != nil {
		t.Fatalf("register bull: %v", err)
	}
	if bull.Status != domain.StatusOther {
		t.Fatalf("male status = %s, want Other", bull.Status)
	}
	if bull.Farm != domain.FarmCattle {
		t.Fatalf("male farm = %s, want Cattle Farm", bull.Farm)
	}
}

func TestRegisterAnimalDerivesCalvingDateForPregnant(t *testing.T) {
	svc, _ := newTestService(t, "2024-05-01")
	a := Animal{
		TagNumber:        "M-2",
		Category:         domain.CategoryMilking,
		Status:           domain.StatusPregnant,
		InseminationDate: strPtr("2024-01-01"),
	}
	created := mustRegister(t, svc, a)
	if created.ExpectedCalvingDate == nil || *created.ExpectedCalvingDate != "2024-10-10" {
		t.Fatalf("expected calving date = %v, want 2024-10-10", created.ExpectedCalvingDate)
	}
}

func TestRegisterAnimalRequiresTagAndCategory(t *testing.T) {
	svc, _ := newTestService(t, "2024-01-10")
	ctx := context.Background()
	if _, _, err := svc.RegisterAnimal(ctx, Animal{Category: domain.CategoryMilking}, ""); err == nil {
		t.Fatal("expected error for missing tag")
	}
	if _, _, err := svc.RegisterAnimal(ctx, Animal{TagNumber: "X"}, ""); err == nil {
		t.Fatal("expected error for missing category")
	}
}

func TestRegisterAnimalRejectsDuplicateTag(t *testing.T) {
	svc, _ := newTestService(t, "2024-01-10")
	ctx := context.Background()
	mustRegister(t, svc, Animal{TagNumber: "T-7", Category: domain.CategoryMilking})

	_, _, err := svc.RegisterAnimal(ctx, Animal{TagNumber: "T-7", Category: domain.CategoryHeifer}, "tester")
	var rve domain.RuleViolationError
	if !errors.As(err, &rve) {
		t.Fatalf("expected rule violation error, got %v", err)
	}
	if !rve.Result.HasBlocking() {
		t.Fatal("expected blocking violation")
	}
	if len(svc.ListAnimals()) != 1 {
		t.Fatal("blocked registration must not be committed")
	}
}

func TestDuplicateTagAllowedAfterSale(t *testing.T) {
	svc, _ := newTestService(t, "2024-01-10")
	ctx := context.Background()
	first := mustRegister(t, svc, Animal{TagNumber: "T-8", Category: domain.CategoryMilking})
	if _, _, err := svc.MarkSold(ctx, first.ID, "", "", "tester"); err != nil {
		t.Fatalf("mark sold: %v", err)
	}
	if _, _, err := svc.RegisterAnimal(ctx, Animal{TagNumber: "T-8", Category: domain.CategoryHeifer}, "tester"); err != nil {
		t.Fatalf("expected tag reuse after sale, got %v", err)
	}
}

func TestRecordInsemination(t *testing.T) {
	svc, _ := newTestService(t, "2024-01-10")
	ctx := context.Background()
	cow := mustRegister(t, svc, Animal{TagNumber: "M-1", Category: domain.CategoryMilking})

	updated, _, err := svc.RecordInsemination(ctx, cow.ID, "2024-01-10", "BullX", "first attempt", "vet")
	if err != nil {
		t.Fatalf("record insemination: %v", err)
	}
	if updated.Status != domain.StatusInseminated {
		t.Fatalf("status = %s, want Inseminated", updated.Status)
	}
	if strOrEmpty(updated.InseminationDate) != "2024-01-10" || strOrEmpty(updated.SemenName) != "BullX" {
		t.Fatalf("breeding fields = %v / %v", updated.InseminationDate, updated.SemenName)
	}
	if updated.ExpectedCalvingDate != nil {
		t.Fatal("expected calving date must stay empty until a positive check")
	}
	ev := updated.History[0]
	if ev.Type != domain.EventInsemination {
		t.Fatalf("event type = %s", ev.Type)
	}
	if strOrEmpty(ev.Semen) != "BullX" {
		t.Fatalf("event semen = %v", ev.Semen)
	}
}

func TestRecordInseminationRejectsMaleAndPregnant(t *testing.T) {
	svc, _ := newTestService(t, "2024-01-10")
	ctx := context.Background()
	bull := mustRegister(t, svc, Animal{TagNumber: "B-1", Category: domain.CategoryCattle})
	if _, _, err := svc.RecordInsemination(ctx, bull.ID, "", "BullX", "", ""); err == nil {
		t.Fatal("expected rejection for male category")
	}

	cow := mustRegister(t, svc, Animal{TagNumber: "M-1", Category: domain.CategoryMilking})
	if _, _, err := svc.RecordInsemination(ctx, cow.ID, "2024-01-10", "BullX", "", ""); err != nil {
		t.Fatalf("insemination: %v", err)
	}
	if _, _, err := svc.RecordPregnancyCheck(ctx, cow.ID, "2024-02-25", true, "", ""); err != nil {
		t.Fatalf("pregnancy check: %v", err)
	}
	if _, _, err := svc.RecordInsemination(ctx, cow.ID, "", "BullY", "", ""); err == nil {
		t.Fatal("expected rejection for pregnant animal")
	}
	if _, _, err := svc.RecordInsemination(ctx, cow.ID, "", "", "", ""); err == nil {
		t.Fatal("expected rejection for missing semen")
	}
}

func TestPregnancyCheckPositive(t *testing.T) {
	svc, _ := newTestService(t, "2024-01-01")
	ctx := context.Background()
	cow := mustRegister(t, svc, Animal{TagNumber: "M-1", Category: domain.CategoryMilking})
	if _, _, err := svc.RecordInsemination(ctx, cow.ID, "2024-01-01", "BullX", "", ""); err != nil {
		t.Fatalf("insemination: %v", err)
	}

	updated, _, err := svc.RecordPregnancyCheck(ctx, cow.ID, "2024-02-15", true, "", "vet")
	if err != nil {
		t.Fatalf("pregnancy check: %v", err)
	}
	if updated.Status != domain.StatusPregnant {
		t.Fatalf("status = %s, want Pregnant", updated.Status)
	}
	if strOrEmpty(updated.ExpectedCalvingDate) != "2024-10-10" {
		t.Fatalf("expected calving date = %v, want 2024-10-10", updated.ExpectedCalvingDate)
	}
	ev := updated.History[0]
	if ev.Type != domain.EventPregnancyCheck || strOrEmpty(ev.Result) != domain.CheckResultPositive {
		t.Fatalf("check event = %+v", ev)
	}
}

func TestPregnancyCheckNegativeRevertsToOpen(t *testing.T) {
	svc, _ := newTestService(t, "2024-01-01")
	ctx := context.Background()
	cow := mustRegister(t, svc, Animal{TagNumber: "M-1", Category: domain.CategoryMilking})
	if _, _, err := svc.RecordInsemination(ctx, cow.ID, "2024-01-01", "BullX", "", ""); err != nil {
		t.Fatalf("insemination: %v", err)
	}

	updated, _, err := svc.RecordPregnancyCheck(ctx, cow.ID, "2024-02-15", false, "", "vet")
	if err != nil {
		t.Fatalf("pregnancy check: %v", err)
	}
	if updated.Status != domain.StatusOpen {
		t.Fatalf("status = %s, want Open", updated.Status)
	}
	if updated.InseminationDate != nil || updated.SemenName != nil || updated.ExpectedCalvingDate != nil {
		t.Fatal("negative check must clear breeding fields")
	}
	if strOrEmpty(updated.History[0].Result) != domain.CheckResultNegative {
		t.Fatalf("check result = %v", updated.History[0].Result)
	}
	// The insemination event survives in the ledger.
	if updated.History[1].Type != domain.EventInsemination {
		t.Fatalf("expected insemination event retained, got %s", updated.History[1].Type)
	}

	if _, _, err := svc.RecordPregnancyCheck(ctx, cow.ID, "2024-02-16", true, "", ""); err == nil {
		t.Fatal("expected rejection: check requires Inseminated")
	}
}

func TestMarkDryGestationGate(t *testing.T) {
	svc, clock := newTestService(t, "2024-01-01")
	ctx := context.Background()
	cow := mustRegister(t, svc, Animal{TagNumber: "M-1", Category: domain.CategoryMilking})
	if _, _, err := svc.RecordInsemination(ctx, cow.ID, "2024-01-01", "BullX", "", ""); err != nil {
		t.Fatalf("insemination: %v", err)
	}
	clock.Set("2024-02-15")
	if _, _, err := svc.RecordPregnancyCheck(ctx, cow.ID, "2024-02-15", true, "", ""); err != nil {
		t.Fatalf("pregnancy check: %v", err)
	}

	clock.Set("2024-08-12") // 224 gestation days
	if _, _, err := svc.MarkDry(ctx, cow.ID, "", "", ""); err == nil {
		t.Fatal("expected rejection before 225 gestation days")
	}

	clock.Set("2024-08-13") // 225 gestation days
	updated, _, err := svc.MarkDry(ctx, cow.ID, "", "early bagging", "tester")
	if err != nil {
		t.Fatalf("mark dry: %v", err)
	}
	if updated.Status != domain.StatusDry {
		t.Fatalf("status = %s, want Dry", updated.Status)
	}
	if updated.History[0].Details != "Shifted to dry" {
		t.Fatalf("dry event details = %q", updated.History[0].Details)
	}
}

func TestMarkDryRequiresPregnant(t *testing.T) {
	svc, _ := newTestService(t, "2024-01-01")
	cow := mustRegister(t, svc, Animal{TagNumber: "M-1", Category: domain.CategoryMilking})
	if _, _, err := svc.MarkDry(context.Background(), cow.ID, "", "", ""); err == nil {
		t.Fatal("expected rejection for non-pregnant animal")
	}
}

func TestRecordCalving(t *testing.T) {
	svc, clock := newTestService(t, "2024-01-01")
	ctx := context.Background()
	cow := mustRegister(t, svc, Animal{TagNumber: "M-1", Category: domain.CategoryMilking})
	if _, _, err := svc.RecordInsemination(ctx, cow.ID, "2024-01-01", "BullX", "", ""); err != nil {
		t.Fatalf("insemination: %v", err)
	}
	clock.Set("2024-02-15")
	if _, _, err := svc.RecordPregnancyCheck(ctx, cow.ID, "2024-02-15", true, "", ""); err != nil {
		t.Fatalf("pregnancy check: %v", err)
	}

	clock.Set("2024-10-05")
	mother, calf, _, err := svc.RecordCalving(ctx, cow.ID, CalvingInput{
		Date:       "2024-10-05",
		CalfTag:    "C-9",
		CalfGender: "male",
		RecordedBy: "tester",
	})
	if err != nil {
		t.Fatalf("record calving: %v", err)
	}

	if calf.Category != domain.CategoryMaleCalf {
		t.Fatalf("calf category = %s, want Male Calf", calf.Category)
	}
	if calf.Status != domain.StatusOther {
		t.Fatalf("male calf status = %s, want Other", calf.Status)
	}
	if calf.Farm != mother.Farm {
		t.Fatalf("calf farm = %s, mother farm = %s", calf.Farm, mother.Farm)
	}
	if strOrEmpty(calf.MotherID) != mother.ID {
		t.Fatalf("calf mother id = %v, want %s", calf.MotherID, mother.ID)
	}
	if !strings.Contains(calf.History[0].Details, "Born to Mother Tag: M-1") {
		t.Fatalf("calf birth event = %q", calf.History[0].Details)
	}

	if mother.Status != domain.StatusNewlyCalved {
		t.Fatalf("mother status = %s, want Newly Calved", mother.Status)
	}
	if mother.InseminationDate != nil || mother.SemenName != nil || mother.ExpectedCalvingDate != nil {
		t.Fatal("mother breeding fields must be cleared")
	}
	if strOrEmpty(mother.CalvingDate) != "2024-10-05" {
		t.Fatalf("mother calving date = %v", mother.CalvingDate)
	}
	if len(mother.CalvesIDs) != 1 || mother.CalvesIDs[0] != calf.ID {
		t.Fatalf("mother calves = %v", mother.CalvesIDs)
	}

	ev := mother.History[0]
	if ev.Type != domain.EventCalving {
		t.Fatalf("event type = %s", ev.Type)
	}
	// The cleared semen and insemination date stay recoverable in the entry.
	if !strings.Contains(ev.Details, "Calf Tag: C-9") ||
		!strings.Contains(ev.Details, "Semen: BullX") ||
		!strings.Contains(ev.Details, "Inseminated on 2024-01-01") {
		t.Fatalf("calving details = %q", ev.Details)
	}
	if strOrEmpty(ev.Semen) != "BullX" {
		t.Fatalf("calving event semen = %v", ev.Semen)
	}
	if strOrEmpty(ev.CalfID) != calf.ID {
		t.Fatalf("calving event calf id = %v", ev.CalfID)
	}
}

func TestRecordCalvingFemaleCalfIsOpen(t *testing.T) {
	svc, clock := newTestService(t, "2024-01-01")
	ctx := context.Background()
	cow := mustRegister(t, svc, Animal{TagNumber: "M-1", Category: domain.CategoryMilking})
	if _, _, err := svc.RecordInsemination(ctx, cow.ID, "2024-01-01", "BullX", "", ""); err != nil {
		t.Fatalf("insemination: %v", err)
	}
	clock.Set("2024-02-15")
	if _, _, err := svc.RecordPregnancyCheck(ctx, cow.ID, "2024-02-15", true, "", ""); err != nil {
		t.Fatalf("pregnancy check: %v", err)
	}
	clock.Set("2024-10-05")
	_, calf, _, err := svc.RecordCalving(ctx, cow.ID, CalvingInput{CalfTag: "C-10", CalfGender: "female"})
	if err != nil {
		t.Fatalf("record calving: %v", err)
	}
	if calf.Category != domain.CategoryFemaleCalf || calf.Status != domain.StatusOpen {
		t.Fatalf("female calf = %s/%s, want Female Calf/Open", calf.Category, calf.Status)
	}
}

func TestRecordCalvingValidation(t *testing.T) {
	svc, _ := newTestService(t, "2024-01-01")
	ctx := context.Background()
	cow := mustRegister(t, svc, Animal{TagNumber: "M-1", Category: domain.CategoryMilking})

	if _, _, _, err := svc.RecordCalving(ctx, cow.ID, CalvingInput{CalfGender: "female"}); err == nil {
		t.Fatal("expected rejection for missing calf tag")
	}
	if _, _, _, err := svc.RecordCalving(ctx, cow.ID, CalvingInput{CalfTag: "C-1", CalfGender: "unknown"}); err == nil {
		t.Fatal("expected rejection for bad gender")
	}
	if _, _, _, err := svc.RecordCalving(ctx, cow.ID, CalvingInput{CalfTag: "C-1", CalfGender: "female"}); err == nil {
		t.Fatal("expected rejection: calving requires Pregnant or Dry")
	}
	if _, _, _, err := svc.RecordCalving(ctx, "missing", CalvingInput{CalfTag: "C-1", CalfGender: "female"}); err == nil {
		t.Fatal("expected not-found error")
	}
}

func TestUpdateAnimalLedgerPriority(t *testing.T) {
	svc, _ := newTestService(t, "2024-03-01")
	ctx := context.Background()
	cow := mustRegister(t, svc, Animal{TagNumber: "M-1", Category: domain.CategoryMilking})

	// Status and insemination data changed together: one status entry only.
	updated, _, err := svc.UpdateAnimal(ctx, cow.ID, "tester", func(a *Animal) error {
		a.Status = domain.StatusInseminated
		a.InseminationDate = strPtr("2024-03-01")
		a.SemenName = strPtr("BullY")
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(updated.History))
	}
	ev := updated.History[0]
	if ev.Type != domain.EventGeneral || !strings.Contains(ev.Details, "Status manually changed from Open to Inseminated") {
		t.Fatalf("priority event = %+v", ev)
	}

	// Insemination data alone: one insemination entry.
	updated, _, err = svc.UpdateAnimal(ctx, cow.ID, "tester", func(a *Animal) error {
		a.SemenName = strPtr("BullZ")
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.History[0].Type != domain.EventInsemination {
		t.Fatalf("expected insemination event, got %s", updated.History[0].Type)
	}
	if !strings.Contains(updated.History[0].Details, "Inseminated with BullZ") {
		t.Fatalf("details = %q", updated.History[0].Details)
	}

	// No tracked change: no new entry.
	before := len(updated.History)
	updated, _, err = svc.UpdateAnimal(ctx, cow.ID, "tester", func(a *Animal) error {
		a.Remarks = "gentle"
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.History) != before {
		t.Fatalf("history length = %d, want %d", len(updated.History), before)
	}
}

func TestUpdateAnimalRecomputesCalvingDate(t *testing.T) {
	svc, _ := newTestService(t, "2024-03-01")
	cow := mustRegister(t, svc, Animal{
		TagNumber:        "M-1",
		Category:         domain.CategoryMilking,
		Status:           domain.StatusPregnant,
		InseminationDate: strPtr("2024-01-01"),
	})
	updated, _, err := svc.UpdateAnimal(context.Background(), cow.ID, "tester", func(a *Animal) error {
		a.InseminationDate = strPtr("2024-02-01")
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if strOrEmpty(updated.ExpectedCalvingDate) != "2024-11-10" {
		t.Fatalf("recomputed calving date = %v, want 2024-11-10", updated.ExpectedCalvingDate)
	}
}

func TestMarkSold(t *testing.T) {
	svc, _ := newTestService(t, "2024-01-01")
	ctx := context.Background()
	cow := mustRegister(t, svc, Animal{TagNumber: "M-1", Category: domain.CategoryMilking})

	updated, _, err := svc.MarkSold(ctx, cow.ID, "2024-04-01", "auction", "tester")
	if err != nil {
		t.Fatalf("mark sold: %v", err)
	}
	if updated.Status != domain.StatusSold {
		t.Fatalf("status = %s, want Sold", updated.Status)
	}
	if _, _, err := svc.MarkSold(ctx, cow.ID, "", "", ""); err == nil {
		t.Fatal("expected rejection for already sold animal")
	}
	if got := len(svc.ListActiveAnimals()); got != 0 {
		t.Fatalf("active animals = %d, want 0", got)
	}
	if got := len(svc.ListAnimals()); got != 1 {
		t.Fatalf("all animals = %d, want 1 (sold stays queryable)", got)
	}
}

func TestShiftFarm(t *testing.T) {
	svc, _ := newTestService(t, "2024-01-01")
	cow := mustRegister(t, svc, Animal{TagNumber: "M-1", Category: domain.CategoryMilking})

	updated, _, err := svc.ShiftFarm(context.Background(), cow.ID, "2024-02-01", "", "tester")
	if err != nil {
		t.Fatalf("shift farm: %v", err)
	}
	if updated.Farm != domain.FarmCattle {
		t.Fatalf("farm = %s, want Cattle Farm", updated.Farm)
	}
	ev := updated.History[0]
	if ev.Type != domain.EventFarmShift || !strings.Contains(ev.Details, "Shifted from Milking Farm to Cattle Farm") {
		t.Fatalf("shift event = %+v", ev)
	}
	if updated.Status != domain.StatusOpen {
		t.Fatalf("status changed by farm shift: %s", updated.Status)
	}
}

func TestRecordMedication(t *testing.T) {
	svc, _ := newTestService(t, "2024-01-01")
	ctx := context.Background()
	cow := mustRegister(t, svc, Animal{TagNumber: "M-1", Category: domain.CategoryMilking})

	updated, _, err := svc.RecordMedication(ctx, cow.ID, "2024-02-01", "Ivermectin", "routine", "vet")
	if err != nil {
		t.Fatalf("record medication: %v", err)
	}
	if updated.Medications != "Ivermectin" {
		t.Fatalf("medications = %q", updated.Medications)
	}
	ev := updated.History[0]
	if ev.Type != domain.EventMedication || strOrEmpty(ev.Medications) != "Ivermectin" {
		t.Fatalf("medication event = %+v", ev)
	}
	if _, _, err := svc.RecordMedication(ctx, cow.ID, "", "", "", ""); err == nil {
		t.Fatal("expected rejection for empty medications")
	}
}

func TestDeleteAnimalDetachesLineage(t *testing.T) {
	svc, clock := newTestService(t, "2024-01-01")
	ctx := context.Background()
	cow := mustRegister(t, svc, Animal{TagNumber: "M-1", Category: domain.CategoryMilking})
	if _, _, err := svc.RecordInsemination(ctx, cow.ID, "2024-01-01", "BullX", "", ""); err != nil {
		t.Fatalf("insemination: %v", err)
	}
	clock.Set("2024-02-15")
	if _, _, err := svc.RecordPregnancyCheck(ctx, cow.ID, "2024-02-15", true, "", ""); err != nil {
		t.Fatalf("pregnancy check: %v", err)
	}
	clock.Set("2024-10-05")
	_, calf, _, err := svc.RecordCalving(ctx, cow.ID, CalvingInput{CalfTag: "C-1", CalfGender: "female"})
	if err != nil {
		t.Fatalf("record calving: %v", err)
	}

	if _, err := svc.DeleteAnimal(ctx, calf.ID); err != nil {
		t.Fatalf("delete calf: %v", err)
	}
	mother, ok := svc.GetAnimal(cow.ID)
	if !ok {
		t.Fatal("mother missing")
	}
	if len(mother.CalvesIDs) != 0 {
		t.Fatalf("mother calves = %v, want detached", mother.CalvesIDs)
	}
	// The mother's calving ledger entry is untouched.
	if mother.History[0].Type != domain.EventCalving {
		t.Fatalf("mother ledger head = %s", mother.History[0].Type)
	}
}

func TestFindAnimalByTagTrimsWhitespace(t *testing.T) {
	svc, _ := newTestService(t, "2024-01-01")
	mustRegister(t, svc, Animal{TagNumber: "M-1", Category: domain.CategoryMilking})
	found, ok, err := svc.FindAnimalByTag(context.Background(), "  M-1 ")
	if err != nil || !ok {
		t.Fatalf("find by tag: ok=%v err=%v", ok, err)
	}
	if found.TagNumber != "M-1" {
		t.Fatalf("found tag = %s", found.TagNumber)
	}
}

func TestCreateStampsLastUpdatedFromServiceClock(t *testing.T) {
	svc, clock := newTestService(t, "2024-01-10")
	ctx := context.Background()

	cow := mustRegister(t, svc, Animal{TagNumber: "M-1", Category: domain.CategoryMilking})
	if !cow.LastUpdated.Equal(clock.Now()) {
		t.Fatalf("registered last updated = %v, want %v", cow.LastUpdated, clock.Now())
	}

	if _, _, err := svc.RecordInsemination(ctx, cow.ID, "2024-01-10", "BullX", "", "vet"); err != nil {
		t.Fatalf("inseminate: %v", err)
	}
	if _, _, err := svc.RecordPregnancyCheck(ctx, cow.ID, "2024-02-24", true, "", "vet"); err != nil {
		t.Fatalf("pregnancy check: %v", err)
	}
	clock.Set("2024-10-10")
	_, calf, _, err := svc.RecordCalving(ctx, cow.ID, CalvingInput{CalfTag: "C-1", CalfGender: "female", RecordedBy: "vet"})
	if err != nil {
		t.Fatalf("record calving: %v", err)
	}
	if !calf.LastUpdated.Equal(clock.Now()) {
		t.Fatalf("calf last updated = %v, want %v", calf.LastUpdated, clock.Now())
	}
}
