package core

import (
	"strings"
	"time"

	"herdcore/pkg/domain"
)

// isCalfLike reports whether an animal qualifies for sire resolution: a calf
// category, or a newly-registered animal still tagged Open/Child before its
// first real breeding cycle.
func isCalfLike(a Animal) bool {
	if strings.Contains(string(a.Category), "Calf") {
		return true
	}
	return a.Status == domain.StatusOpen || a.Status == domain.StatusChild
}

// ResolveSire infers which semen/sire produced the given calf. Resolution
// follows a fixed priority order and degrades to ("", false) when nothing
// matches; it never fabricates a placeholder.
func ResolveSire(calf Animal, population []Animal) (string, bool) {
	if !isCalfLike(calf) {
		return "", false
	}

	// 1. The calf's own ledger: any event carrying a semen value alongside
	// birth-describing details, or any General event with semen set.
	for _, ev := range calf.History {
		if ev.Semen == nil || strings.TrimSpace(*ev.Semen) == "" {
			continue
		}
		if ev.Type == domain.EventGeneral || mentionsBirth(ev.Details) {
			return strings.TrimSpace(*ev.Semen), true
		}
	}

	if calf.MotherID == nil {
		return "", false
	}
	var mother *Animal
	for i := range population {
		if population[i].ID == *calf.MotherID {
			mother = &population[i]
			break
		}
	}
	if mother == nil {
		return "", false
	}

	// 2. The mother's Calving event referencing this calf, matched by the
	// structured CalfID or by the calf's tag inside legacy details.
	for _, ev := range mother.History {
		if ev.Type != domain.EventCalving {
			continue
		}
		matched := ev.CalfID != nil && *ev.CalfID == calf.ID
		if !matched && calf.TagNumber != "" {
			if tag, ok := tagFromDetails(ev.Details); ok && tag == calf.TagNumber {
				matched = true
			}
		}
		if !matched {
			continue
		}
		if ev.Semen != nil && strings.TrimSpace(*ev.Semen) != "" {
			return strings.TrimSpace(*ev.Semen), true
		}
		if semen, ok := semenFromDetails(ev.Details); ok {
			return semen, true
		}
	}

	// 3. Window scan: estimate the calf's birth date, then pick the latest
	// of the mother's insemination events landing 240 to 310 days before it.
	birth, ok := estimateBirthDate(calf)
	if !ok {
		return "", false
	}
	var best *HistoryEvent
	var bestDate time.Time
	for i := range mother.History {
		ev := &mother.History[i]
		if ev.Type != domain.EventInsemination {
			continue
		}
		d, ok := domain.ParseDate(ev.Date)
		if !ok || !d.Before(birth) {
			continue
		}
		days := domain.DaysBetween(d, birth)
		if days < domain.LineageWindowMinDays || days > domain.LineageWindowMaxDays {
			continue
		}
		if best == nil || d.After(bestDate) {
			best = ev
			bestDate = d
		}
	}
	if best != nil {
		if best.Semen != nil && strings.TrimSpace(*best.Semen) != "" {
			return strings.TrimSpace(*best.Semen), true
		}
		if semen, ok := semenFromInseminationDetails(best.Details); ok {
			return semen, true
		}
	}

	return "", false
}

// estimateBirthDate derives a calf's birth date from the oldest ledger event
// (history is newest-first), falling back to LastUpdated.
func estimateBirthDate(calf Animal) (time.Time, bool) {
	if n := len(calf.History); n > 0 {
		if d, ok := domain.ParseDate(calf.History[n-1].Date); ok {
			return d, true
		}
	}
	if calf.LastUpdated.IsZero() {
		return time.Time{}, false
	}
	return calf.LastUpdated, true
}
