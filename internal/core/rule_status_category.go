package core

import (
	"context"
	"fmt"

	"herdcore/pkg/domain"
)

// StatusCategoryRule blocks a transaction that would persist a status outside
// the legal set for the animal's gender class. The service coerces statuses
// before writing; this rule is the authoritative backstop.
func StatusCategoryRule() domain.Rule {
	return statusCategoryRule{}
}

type statusCategoryRule struct{}

func (statusCategoryRule) Name() string { return "status_category" }

func (statusCategoryRule) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		if change.Entity != domain.EntityAnimal || change.After == nil {
			continue
		}
		animal, ok := change.After.(domain.Animal)
		if !ok {
			continue
		}
		if _, legal := domain.LegalStatuses(animal.Category)[animal.Status]; !legal {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "status_category",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("status %s is not legal for category %s", animal.Status, animal.Category),
				Entity:   domain.EntityAnimal,
				EntityID: animal.ID,
			})
		}
	}
	return res, nil
}
