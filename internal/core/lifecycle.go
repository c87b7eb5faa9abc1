package core

import (
	"context"
	"fmt"

	"herdcore/pkg/domain"
)

// RegisterAnimal validates and persists a manually-registered animal. The
// status is coerced to the legal set for the category's gender class and the
// ledger is seeded with a registration event.
func (s *Service) RegisterAnimal(ctx context.Context, animal Animal, recordedBy string) (Animal, Result, error) {
	if animal.TagNumber == "" {
		return Animal{}, Result{}, fmt.Errorf("tag number is required")
	}
	if animal.Category == "" {
		return Animal{}, Result{}, fmt.Errorf("category is required")
	}
	now := s.nowFn()
	animal.ID = s.newID()
	if animal.Status == "" {
		animal.Status = domain.StatusOpen
	}
	animal.Status = domain.CoerceStatus(animal.Category, animal.Status)
	if animal.Farm == "" {
		if domain.IsMaleCategory(animal.Category) {
			animal.Farm = domain.FarmCattle
		} else {
			animal.Farm = domain.FarmMilking
		}
	}
	if animal.Status == domain.StatusPregnant && animal.InseminationDate != nil {
		if due, ok := domain.CalvingDue(*animal.InseminationDate); ok {
			animal.ExpectedCalvingDate = strPtr(domain.FormatDate(due))
		}
	}
	s.appendEvent(&animal, generalEvent(domain.FormatDate(now), "Animal registered", "", recordedBy), now)

	var created Animal
	res, err := s.runWrite(ctx, "register_animal", func() string { return animal.ID }, func(tx Transaction) error {
		var err error
		created, err = tx.CreateAnimal(animal)
		return err
	})
	return created, res, err
}

// UpdateAnimal applies a manual edit through the supplied mutator. The status
// is re-coerced after the edit, the expected calving date is recomputed when
// the insemination date changed while pregnant, and exactly one ledger entry
// is appended: a status-change entry takes priority over an
// insemination-data entry when both changed in the same edit.
func (s *Service) UpdateAnimal(ctx context.Context, id string, recordedBy string, mutator func(*Animal) error) (Animal, Result, error) {
	now := s.nowFn()
	var updated Animal
	res, err := s.runWrite(ctx, "update_animal", func() string { return id }, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateAnimal(id, func(a *Animal) error {
			before := *a
			if err := mutator(a); err != nil {
				return err
			}
			a.Status = domain.CoerceStatus(a.Category, a.Status)
			if a.Status == domain.StatusPregnant && a.InseminationDate != nil &&
				strOrEmpty(a.InseminationDate) != strOrEmpty(before.InseminationDate) {
				if due, ok := domain.CalvingDue(*a.InseminationDate); ok {
					a.ExpectedCalvingDate = strPtr(domain.FormatDate(due))
				}
			}
			statusChanged := a.Status != before.Status || a.Category != before.Category
			inseminationChanged := strOrEmpty(a.InseminationDate) != strOrEmpty(before.InseminationDate) ||
				strOrEmpty(a.SemenName) != strOrEmpty(before.SemenName)
			switch {
			case statusChanged:
				details := fmt.Sprintf("Status manually changed from %s to %s", before.Status, a.Status)
				s.appendEvent(a, generalEvent(domain.FormatDate(now), details, "", recordedBy), now)
			case inseminationChanged && a.SemenName != nil:
				ev := HistoryEvent{
					Type:       domain.EventInsemination,
					Date:       strOrEmpty(a.InseminationDate),
					Details:    fmt.Sprintf("Inseminated with %s", *a.SemenName),
					Semen:      clonePtrValue(a.SemenName),
					RecordedBy: strPtr(recordedBy),
				}
				s.appendEvent(a, ev, now)
			default:
				a.LastUpdated = now
			}
			return nil
		})
		return err
	})
	return updated, res, err
}

// RecordInsemination starts a gestation clock: the animal moves to
// Inseminated with the semen and date recorded in both the fields and the
// ledger.
func (s *Service) RecordInsemination(ctx context.Context, id, date, semen, remarks, recordedBy string) (Animal, Result, error) {
	now := s.nowFn()
	if date == "" {
		date = domain.FormatDate(now)
	}
	if semen == "" {
		return Animal{}, Result{}, fmt.Errorf("semen name is required")
	}
	var updated Animal
	res, err := s.runWrite(ctx, "record_insemination", func() string { return id }, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateAnimal(id, func(a *Animal) error {
			if domain.IsMaleCategory(a.Category) {
				return fmt.Errorf("animal %s is %s; insemination applies to female categories only", a.TagNumber, a.Category)
			}
			switch a.Status {
			case domain.StatusPregnant, domain.StatusDry, domain.StatusSold:
				return fmt.Errorf("animal %s is %s; cannot record insemination", a.TagNumber, a.Status)
			}
			a.Status = domain.StatusInseminated
			a.InseminationDate = strPtr(date)
			a.SemenName = strPtr(semen)
			a.ExpectedCalvingDate = nil
			ev := HistoryEvent{
				Type:       domain.EventInsemination,
				Date:       date,
				Details:    fmt.Sprintf("Inseminated with %s", semen),
				Semen:      strPtr(semen),
				Remarks:    strPtr(remarks),
				RecordedBy: strPtr(recordedBy),
			}
			s.appendEvent(a, ev, now)
			return nil
		})
		return err
	})
	return updated, res, err
}

// RecordPregnancyCheck records the manual check outcome. Positive moves the
// animal to Pregnant and derives the expected calving date; negative reverts
// to Open and clears the breeding fields.
func (s *Service) RecordPregnancyCheck(ctx context.Context, id, date string, positive bool, remarks, recordedBy string) (Animal, Result, error) {
	now := s.nowFn()
	if date == "" {
		date = domain.FormatDate(now)
	}
	var updated Animal
	res, err := s.runWrite(ctx, "record_pregnancy_check", func() string { return id }, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateAnimal(id, func(a *Animal) error {
			if a.Status != domain.StatusInseminated {
				return fmt.Errorf("animal %s is %s; pregnancy check requires Inseminated", a.TagNumber, a.Status)
			}
			result := domain.CheckResultNegative
			details := "Pregnancy check negative"
			if positive {
				result = domain.CheckResultPositive
				details = "Pregnancy check positive"
				a.Status = domain.StatusPregnant
				if a.InseminationDate != nil {
					if due, ok := domain.CalvingDue(*a.InseminationDate); ok {
						a.ExpectedCalvingDate = strPtr(domain.FormatDate(due))
					}
				}
			} else {
				a.Status = domain.StatusOpen
				a.InseminationDate = nil
				a.SemenName = nil
				a.ExpectedCalvingDate = nil
			}
			ev := HistoryEvent{
				Type:       domain.EventPregnancyCheck,
				Date:       date,
				Details:    details,
				Result:     strPtr(result),
				Remarks:    strPtr(remarks),
				RecordedBy: strPtr(recordedBy),
			}
			s.appendEvent(a, ev, now)
			return nil
		})
		return err
	})
	return updated, res, err
}

// MarkDry moves a pregnant animal to Dry. The transition is rejected before
// 225 days of gestation when the insemination date is parseable; an
// unparseable date degrades to allowing the manual confirmation.
func (s *Service) MarkDry(ctx context.Context, id, date, remarks, recordedBy string) (Animal, Result, error) {
	now := s.nowFn()
	if date == "" {
		date = domain.FormatDate(now)
	}
	var updated Animal
	res, err := s.runWrite(ctx, "mark_dry", func() string { return id }, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateAnimal(id, func(a *Animal) error {
			if a.Status != domain.StatusPregnant {
				return fmt.Errorf("animal %s is %s; dry-off requires Pregnant", a.TagNumber, a.Status)
			}
			if a.InseminationDate != nil {
				if days, ok := domain.GestationElapsed(*a.InseminationDate, now); ok && days < domain.DryOffGestationDays {
					return fmt.Errorf("animal %s has %d gestation days; dry-off requires at least %d", a.TagNumber, days, domain.DryOffGestationDays)
				}
			}
			a.Status = domain.StatusDry
			s.appendEvent(a, generalEvent(date, "Shifted to dry", remarks, recordedBy), now)
			return nil
		})
		return err
	})
	return updated, res, err
}

// CalvingInput carries the facts of a recorded birth.
type CalvingInput struct {
	Date       string
	CalfTag    string
	CalfGender string // "male" or "female"
	Remarks    string
	RecordedBy string
}

// RecordCalving creates the calf and transitions the mother in one atomic
// transaction. The mother's breeding fields are cleared, but the Calving
// ledger entry textually retains the prior semen and insemination date so
// lineage stays recoverable.
func (s *Service) RecordCalving(ctx context.Context, motherID string, in CalvingInput) (Animal, Animal, Result, error) {
	now := s.nowFn()
	if in.Date == "" {
		in.Date = domain.FormatDate(now)
	}
	if in.CalfTag == "" {
		return Animal{}, Animal{}, Result{}, fmt.Errorf("calf tag is required")
	}
	var calfCategory Category
	switch in.CalfGender {
	case "male":
		calfCategory = domain.CategoryMaleCalf
	case "female":
		calfCategory = domain.CategoryFemaleCalf
	default:
		return Animal{}, Animal{}, Result{}, fmt.Errorf("calf gender must be male or female, got %q", in.CalfGender)
	}

	var mother, calf Animal
	res, err := s.runWrite(ctx, "record_calving", func() string { return motherID }, func(tx Transaction) error {
		current, ok := tx.FindAnimal(motherID)
		if !ok {
			return ErrNotFound{Entity: domain.EntityAnimal, ID: motherID}
		}
		if current.Status != domain.StatusPregnant && current.Status != domain.StatusDry {
			return fmt.Errorf("animal %s is %s; calving requires Pregnant or Dry", current.TagNumber, current.Status)
		}

		newCalf := Animal{
			ID:        s.newID(),
			TagNumber: in.CalfTag,
			Category:  calfCategory,
			Status:    domain.CoerceStatus(calfCategory, domain.StatusOpen),
			Farm:      current.Farm,
			MotherID:  strPtr(motherID),
		}
		birth := generalEvent(in.Date, fmt.Sprintf("Born to Mother Tag: %s", current.TagNumber), "", in.RecordedBy)
		s.appendEvent(&newCalf, birth, now)
		created, err := tx.CreateAnimal(newCalf)
		if err != nil {
			return err
		}
		calf = created

		mother, err = tx.UpdateAnimal(motherID, func(a *Animal) error {
			priorSemen := strOrEmpty(a.SemenName)
			priorInsemination := strOrEmpty(a.InseminationDate)
			a.Status = domain.StatusNewlyCalved
			a.InseminationDate = nil
			a.SemenName = nil
			a.ExpectedCalvingDate = nil
			a.CalvingDate = strPtr(in.Date)
			a.CalvesIDs = append(a.CalvesIDs, created.ID)

			details := fmt.Sprintf("Calving recorded. Calf Tag: %s", in.CalfTag)
			if priorSemen != "" {
				details += fmt.Sprintf(". Semen: %s", priorSemen)
			}
			if priorInsemination != "" {
				details += fmt.Sprintf(". Inseminated on %s", priorInsemination)
			}
			ev := HistoryEvent{
				Type:       domain.EventCalving,
				Date:       in.Date,
				Details:    details,
				Semen:      strPtr(priorSemen),
				CalfID:     strPtr(created.ID),
				Remarks:    strPtr(in.Remarks),
				RecordedBy: strPtr(in.RecordedBy),
			}
			s.appendEvent(a, ev, now)
			return nil
		})
		return err
	})
	return mother, calf, res, err
}

// MarkSold moves an animal to the terminal Sold status. Sold animals are
// excluded from active-herd counts and due lists but remain queryable.
func (s *Service) MarkSold(ctx context.Context, id, date, remarks, recordedBy string) (Animal, Result, error) {
	now := s.nowFn()
	if date == "" {
		date = domain.FormatDate(now)
	}
	var updated Animal
	res, err := s.runWrite(ctx, "mark_sold", func() string { return id }, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateAnimal(id, func(a *Animal) error {
			if a.Status == domain.StatusSold {
				return fmt.Errorf("animal %s is already sold", a.TagNumber)
			}
			a.Status = domain.StatusSold
			s.appendEvent(a, generalEvent(date, "Marked as sold", remarks, recordedBy), now)
			return nil
		})
		return err
	})
	return updated, res, err
}

// ShiftFarm swaps the animal to the other farm. Farm placement is independent
// of reproductive status.
func (s *Service) ShiftFarm(ctx context.Context, id, date, remarks, recordedBy string) (Animal, Result, error) {
	now := s.nowFn()
	if date == "" {
		date = domain.FormatDate(now)
	}
	var updated Animal
	res, err := s.runWrite(ctx, "shift_farm", func() string { return id }, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateAnimal(id, func(a *Animal) error {
			from := a.Farm
			a.Farm = domain.OtherFarm(a.Farm)
			ev := HistoryEvent{
				Type:       domain.EventFarmShift,
				Date:       date,
				Details:    fmt.Sprintf("Shifted from %s to %s", from, a.Farm),
				Remarks:    strPtr(remarks),
				RecordedBy: strPtr(recordedBy),
			}
			s.appendEvent(a, ev, now)
			return nil
		})
		return err
	})
	return updated, res, err
}

// RecordMedication appends a medication event and refreshes the medications
// annotation on the animal.
func (s *Service) RecordMedication(ctx context.Context, id, date, medications, remarks, recordedBy string) (Animal, Result, error) {
	now := s.nowFn()
	if date == "" {
		date = domain.FormatDate(now)
	}
	if medications == "" {
		return Animal{}, Result{}, fmt.Errorf("medications text is required")
	}
	var updated Animal
	res, err := s.runWrite(ctx, "record_medication", func() string { return id }, func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateAnimal(id, func(a *Animal) error {
			a.Medications = medications
			ev := HistoryEvent{
				Type:        domain.EventMedication,
				Date:        date,
				Details:     fmt.Sprintf("Medication given: %s", medications),
				Medications: strPtr(medications),
				Remarks:     strPtr(remarks),
				RecordedBy:  strPtr(recordedBy),
			}
			s.appendEvent(a, ev, now)
			return nil
		})
		return err
	})
	return updated, res, err
}

// DeleteAnimal removes an animal record. Lineage references held by other
// animals are detached by the store; ledgers of relatives are untouched.
func (s *Service) DeleteAnimal(ctx context.Context, id string) (Result, error) {
	return s.runWrite(ctx, "delete_animal", func() string { return id }, func(tx Transaction) error {
		return tx.DeleteAnimal(id)
	})
}

func clonePtrValue(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
