package core

import (
	"time"

	"herdcore/pkg/domain"
)

// appendEvent prepends a freshly-identified event to the animal's ledger and
// refreshes LastUpdated. The ledger is append-only: no event is ever edited
// or removed once recorded.
func (s *Service) appendEvent(a *Animal, ev HistoryEvent, now time.Time) {
	if ev.ID == "" {
		ev.ID = s.newID()
	}
	if ev.Date == "" {
		ev.Date = domain.FormatDate(now)
	}
	a.History = append([]HistoryEvent{ev}, a.History...)
	a.LastUpdated = now
}

func strPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func strOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func generalEvent(date, details, remarks, recordedBy string) HistoryEvent {
	return HistoryEvent{
		Type:       domain.EventGeneral,
		Date:       date,
		Details:    details,
		Remarks:    strPtr(remarks),
		RecordedBy: strPtr(recordedBy),
	}
}
