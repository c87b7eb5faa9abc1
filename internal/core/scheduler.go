package core

import (
	"sort"
	"time"

	"herdcore/pkg/domain"
)

// DueLists are the derived alert sets. Each list is recomputed from the live
// herd on every call and never stored; membership changes as dates roll
// forward and performing the underlying transition removes the animal.
type DueLists struct {
	PregnancyCheckDue []Animal
	CalvingDue        []Animal
	DryOffDue         []Animal
	ReadyForHeat      []Animal
}

// ComputeDueLists derives the four due lists from the herd at the given
// reference time. Sold animals and animals with unparseable dates are
// excluded, never errors.
func ComputeDueLists(animals []Animal, now time.Time) DueLists {
	var lists DueLists
	for _, a := range animals {
		if !a.IsActive() {
			continue
		}
		if a.Status == domain.StatusInseminated && a.InseminationDate != nil {
			if due, ok := domain.PregnancyCheckDue(*a.InseminationDate, a.Category); ok {
				if domain.DaysBetween(now, due) <= 0 {
					lists.PregnancyCheckDue = append(lists.PregnancyCheckDue, a)
				}
			}
		}
		if (a.Status == domain.StatusPregnant || a.Status == domain.StatusDry) && a.ExpectedCalvingDate != nil {
			if days, ok := domain.DaysUntil(*a.ExpectedCalvingDate, now); ok && days <= domain.CalvingDueWindowDays {
				lists.CalvingDue = append(lists.CalvingDue, a)
			}
		}
		if a.Status == domain.StatusPregnant && a.InseminationDate != nil {
			if days, ok := domain.GestationElapsed(*a.InseminationDate, now); ok && days >= domain.DryOffGestationDays {
				lists.DryOffDue = append(lists.DryOffDue, a)
			}
		}
		if (a.Status == domain.StatusNewlyCalved || a.Status == domain.StatusOpen) && a.CalvingDate != nil {
			if days, ok := domain.DaysSince(*a.CalvingDate, now); ok && days >= domain.HeatIntervalDays {
				lists.ReadyForHeat = append(lists.ReadyForHeat, a)
			}
		}
	}
	sortByTag(lists.PregnancyCheckDue)
	sortByTag(lists.CalvingDue)
	sortByTag(lists.DryOffDue)
	sortByTag(lists.ReadyForHeat)
	return lists
}

// DueLists derives the alert sets from the service's current herd and clock.
func (s *Service) DueLists() DueLists {
	return ComputeDueLists(s.ListAnimals(), s.nowFn())
}

// HerdSummary aggregates active-herd counts per status, category, and farm.
type HerdSummary struct {
	Total      int
	Sold       int
	ByStatus   map[Status]int
	ByCategory map[Category]int
	ByFarm     map[Farm]int
}

// Summarize counts the herd. Sold animals are counted separately and excluded
// from the active totals and breakdowns.
func Summarize(animals []Animal) HerdSummary {
	summary := HerdSummary{
		ByStatus:   make(map[Status]int),
		ByCategory: make(map[Category]int),
		ByFarm:     make(map[Farm]int),
	}
	for _, a := range animals {
		if !a.IsActive() {
			summary.Sold++
			continue
		}
		summary.Total++
		summary.ByStatus[a.Status]++
		summary.ByCategory[a.Category]++
		summary.ByFarm[a.Farm]++
	}
	return summary
}

// HerdSummary aggregates the service's current herd.
func (s *Service) HerdSummary() HerdSummary {
	return Summarize(s.ListAnimals())
}

func sortByTag(animals []Animal) {
	sort.Slice(animals, func(i, j int) bool {
		return animals[i].TagNumber < animals[j].TagNumber
	})
}
