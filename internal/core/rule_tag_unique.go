package core

import (
	"context"
	"fmt"
	"strings"

	"herdcore/pkg/domain"
)

// TagUniquenessRule blocks a transaction that would leave two active animals
// carrying the same tag number. Sold animals release their tag.
func TagUniquenessRule() domain.Rule {
	return tagUniquenessRule{}
}

type tagUniquenessRule struct{}

func (tagUniquenessRule) Name() string { return "tag_uniqueness" }

func (tagUniquenessRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		if change.Entity != domain.EntityAnimal || change.After == nil {
			continue
		}
		animal, ok := change.After.(domain.Animal)
		if !ok {
			continue
		}
		if !animal.IsActive() {
			continue
		}
		tag := strings.TrimSpace(animal.TagNumber)
		if tag == "" {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "tag_uniqueness",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("animal %s has an empty tag number", animal.ID),
				Entity:   domain.EntityAnimal,
				EntityID: animal.ID,
			})
			continue
		}
		for _, other := range view.ListAnimals() {
			if other.ID == animal.ID || !other.IsActive() {
				continue
			}
			if strings.TrimSpace(other.TagNumber) == tag {
				res.Violations = append(res.Violations, domain.Violation{
					Rule:     "tag_uniqueness",
					Severity: domain.SeverityBlock,
					Message:  fmt.Sprintf("tag %s already assigned to animal %s", tag, other.ID),
					Entity:   domain.EntityAnimal,
					EntityID: animal.ID,
				})
				break
			}
		}
	}
	return res, nil
}
