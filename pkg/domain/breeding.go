package domain

import "time"

// Breeding-cycle constants. The lineage window is deliberately wider than the
// fixed gestation estimate to tolerate recording slack in historical data;
// the literal bounds must not be tuned, since changing them silently changes
// which animal is credited as a sire.
const (
	// GestationLengthDays is the fixed gestation estimate used to derive the
	// expected calving date from an insemination date.
	GestationLengthDays = 283
	// PregnancyCheckOffsetDays is the standard delay between insemination and
	// the manual pregnancy check.
	PregnancyCheckOffsetDays = 45
	// HeiferCheckOffsetDays is the shorter observation window for heifers.
	HeiferCheckOffsetDays = 40
	// DryOffGestationDays is the gestation length after which a pregnant
	// animal is due to be dried off.
	DryOffGestationDays = 225
	// HeatIntervalDays is the post-calving interval after which an animal is
	// ready for re-insemination.
	HeatIntervalDays = 45
	// CalvingDueWindowDays is the lead window for the calving due list.
	CalvingDueWindowDays = 5
	// LineageWindowMinDays / LineageWindowMaxDays bound the plausible
	// insemination-to-birth distance for sire inference.
	LineageWindowMinDays = 240
	LineageWindowMaxDays = 310
)

const dateLayout = "2006-01-02"

// ParseDate parses an ISO date or RFC 3339 timestamp and normalizes it to
// date-only precision in UTC. It reports false for empty or unparseable
// input; it never panics.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return dateOnly(t), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return dateOnly(t), true
	}
	return time.Time{}, false
}

// FormatDate renders a time as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole-calendar-day difference to minus from.
// Comparisons are date-only so time-of-day components cannot introduce
// off-by-one errors.
func DaysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)) / (24 * time.Hour))
}

// PregnancyCheckDue returns the date the pregnancy check falls due for an
// insemination date: 45 days after insemination, 40 for heifers.
func PregnancyCheckDue(inseminationDate string, category Category) (time.Time, bool) {
	t, ok := ParseDate(inseminationDate)
	if !ok {
		return time.Time{}, false
	}
	offset := PregnancyCheckOffsetDays
	if category == CategoryHeifer {
		offset = HeiferCheckOffsetDays
	}
	return t.AddDate(0, 0, offset), true
}

// CalvingDue returns the expected calving date for an insemination date.
func CalvingDue(inseminationDate string) (time.Time, bool) {
	t, ok := ParseDate(inseminationDate)
	if !ok {
		return time.Time{}, false
	}
	return t.AddDate(0, 0, GestationLengthDays), true
}

// ReInseminationDue returns the date an animal becomes ready for the next
// breeding cycle after a calving date.
func ReInseminationDue(calvingDate string) (time.Time, bool) {
	t, ok := ParseDate(calvingDate)
	if !ok {
		return time.Time{}, false
	}
	return t.AddDate(0, 0, HeatIntervalDays), true
}

// DaysUntil returns the calendar days from now to the target date. Negative
// values are meaningful ("overdue by N days") and are never clamped.
func DaysUntil(target string, now time.Time) (int, bool) {
	t, ok := ParseDate(target)
	if !ok {
		return 0, false
	}
	return DaysBetween(now, t), true
}

// DaysSince returns the calendar days elapsed from the source date to now.
func DaysSince(source string, now time.Time) (int, bool) {
	t, ok := ParseDate(source)
	if !ok {
		return 0, false
	}
	return DaysBetween(t, now), true
}

// GestationElapsed returns the days elapsed since an insemination date.
func GestationElapsed(inseminationDate string, now time.Time) (int, bool) {
	return DaysSince(inseminationDate, now)
}
