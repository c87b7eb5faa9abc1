package core

import (
	"context"
	"fmt"

	"herdcore/pkg/domain"
)

// LineageIntegrityRule enforces mother/calf reference constraints. Broken
// mother references block the transaction; calves-list drift only warns,
// since the list is maintained by convention rather than a referential
// constraint.
func LineageIntegrityRule() domain.Rule {
	return lineageIntegrityRule{}
}

type lineageIntegrityRule struct{}

func (lineageIntegrityRule) Name() string { return "lineage_integrity" }

func (lineageIntegrityRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	res := domain.Result{}

	animals := view.ListAnimals()
	index := make(map[string]domain.Animal, len(animals))
	for _, a := range animals {
		index[a.ID] = a
	}

	for _, a := range animals {
		if a.MotherID != nil {
			switch {
			case *a.MotherID == a.ID:
				res.Violations = append(res.Violations, lineageViolation(a.ID, domain.SeverityBlock,
					fmt.Sprintf("animal %s references itself as its mother", a.ID)))
			default:
				if _, ok := index[*a.MotherID]; !ok {
					res.Violations = append(res.Violations, lineageViolation(a.ID, domain.SeverityBlock,
						fmt.Sprintf("animal %s references missing mother %s", a.ID, *a.MotherID)))
				}
			}
		}
		seen := make(map[string]struct{}, len(a.CalvesIDs))
		for _, calfID := range a.CalvesIDs {
			if _, dup := seen[calfID]; dup {
				res.Violations = append(res.Violations, lineageViolation(a.ID, domain.SeverityWarn,
					fmt.Sprintf("animal %s lists calf %s multiple times", a.ID, calfID)))
				continue
			}
			seen[calfID] = struct{}{}
			calf, ok := index[calfID]
			if !ok {
				res.Violations = append(res.Violations, lineageViolation(a.ID, domain.SeverityWarn,
					fmt.Sprintf("animal %s lists missing calf %s", a.ID, calfID)))
				continue
			}
			if calf.MotherID == nil || *calf.MotherID != a.ID {
				res.Violations = append(res.Violations, lineageViolation(a.ID, domain.SeverityWarn,
					fmt.Sprintf("calf %s does not reference %s as its mother", calfID, a.ID)))
			}
		}
	}

	return res, nil
}

func lineageViolation(entityID string, severity domain.Severity, message string) domain.Violation {
	return domain.Violation{
		Rule:     "lineage_integrity",
		Severity: severity,
		Message:  message,
		Entity:   domain.EntityAnimal,
		EntityID: entityID,
	}
}
