package core

import (
	"time"

	"herdcore/pkg/domain"
)

// ReportRow is one already-computed line for the external report renderer.
// All derived fields are resolved here; no business logic may live in the
// renderer.
type ReportRow struct {
	TagNumber             string `json:"tag_number"`
	Category              string `json:"category"`
	Status                string `json:"status"`
	Farm                  string `json:"farm"`
	SemenName             string `json:"semen_name,omitempty"`
	InseminationDate      string `json:"insemination_date,omitempty"`
	DaysSinceInsemination *int   `json:"days_since_insemination,omitempty"`
	GestationDays         *int   `json:"gestation_days,omitempty"`
	ExpectedCalvingDate   string `json:"expected_calving_date,omitempty"`
	DaysToCalving         *int   `json:"days_to_calving,omitempty"`
	CalvingDate           string `json:"calving_date,omitempty"`
	DaysInDry             *int   `json:"days_in_dry,omitempty"`
	Sire                  string `json:"sire,omitempty"`
}

// BuildReport turns an already-filtered herd slice into renderer-ready rows.
// Unparseable dates leave the derived fields absent; sire resolution degrades
// to an empty column.
func BuildReport(animals []Animal, population []Animal, now time.Time) []ReportRow {
	rows := make([]ReportRow, 0, len(animals))
	for _, a := range animals {
		row := ReportRow{
			TagNumber:        a.TagNumber,
			Category:         string(a.Category),
			Status:           string(a.Status),
			Farm:             string(a.Farm),
			SemenName:        strOrEmpty(a.SemenName),
			InseminationDate: strOrEmpty(a.InseminationDate),
			CalvingDate:      strOrEmpty(a.CalvingDate),
		}
		if a.InseminationDate != nil {
			if days, ok := domain.DaysSince(*a.InseminationDate, now); ok {
				row.DaysSinceInsemination = intPtr(days)
				row.GestationDays = intPtr(days)
			}
		}
		if a.ExpectedCalvingDate != nil {
			row.ExpectedCalvingDate = *a.ExpectedCalvingDate
			if days, ok := domain.DaysUntil(*a.ExpectedCalvingDate, now); ok {
				row.DaysToCalving = intPtr(days)
			}
		}
		// LastUpdated doubles as the dry-off anchor: shifting to dry is the
		// last write, so its stamp marks the start of the dry period. Any
		// later edit while Dry restarts the count.
		if a.Status == domain.StatusDry && !a.LastUpdated.IsZero() {
			row.DaysInDry = intPtr(domain.DaysBetween(a.LastUpdated, now))
		}
		if sire, ok := ResolveSire(a, population); ok {
			row.Sire = sire
		}
		rows = append(rows, row)
	}
	return rows
}

// ReportSnapshot builds rows for the whole active herd at the service clock.
func (s *Service) ReportSnapshot() []ReportRow {
	population := s.ListAnimals()
	return BuildReport(s.ListActiveAnimals(), population, s.nowFn())
}

func intPtr(v int) *int { return &v }
