package domain

import (
	"testing"
	"time"
)

func TestParseDateNormalizesToDateOnlyUTC(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-03-15", "2024-03-15", true},
		{"2024-03-15T18:45:00Z", "2024-03-15", true},
		{"2024-03-15T23:30:00+05:30", "2024-03-15", true},
		{"", "", false},
		{"15/03/2024", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseDate(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if !ok {
			continue
		}
		if got.Location() != time.UTC {
			t.Errorf("ParseDate(%q) location = %v, want UTC", tc.in, got.Location())
		}
		if h, m, s := got.Clock(); h != 0 || m != 0 || s != 0 {
			t.Errorf("ParseDate(%q) retained time of day %02d:%02d:%02d", tc.in, h, m, s)
		}
		if FormatDate(got) != tc.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tc.in, FormatDate(got), tc.want)
		}
	}
}

func TestCalvingDueIsFixedGestation(t *testing.T) {
	due, ok := CalvingDue("2024-01-01")
	if !ok {
		t.Fatal("expected parseable insemination date")
	}
	if got := FormatDate(due); got != "2024-10-10" {
		t.Fatalf("calving due = %s, want 2024-10-10", got)
	}
	start, _ := ParseDate("2024-01-01")
	if days := DaysBetween(start, due); days != GestationLengthDays {
		t.Fatalf("gestation span = %d days, want %d", days, GestationLengthDays)
	}
	if _, ok := CalvingDue("not-a-date"); ok {
		t.Fatal("expected failure for unparseable date")
	}
}

func TestPregnancyCheckDueUsesHeiferOffset(t *testing.T) {
	milking, ok := PregnancyCheckDue("2024-01-01", CategoryMilking)
	if !ok {
		t.Fatal("expected parseable date")
	}
	if got := FormatDate(milking); got != "2024-02-15" {
		t.Fatalf("milking check due = %s, want 2024-02-15", got)
	}
	heifer, _ := PregnancyCheckDue("2024-01-01", CategoryHeifer)
	if got := FormatDate(heifer); got != "2024-02-10" {
		t.Fatalf("heifer check due = %s, want 2024-02-10", got)
	}
}

func TestDaysUntilIsNegativeWhenOverdue(t *testing.T) {
	now, _ := ParseDate("2024-06-10")
	days, ok := DaysUntil("2024-06-03", now)
	if !ok {
		t.Fatal("expected parseable target")
	}
	if days != -7 {
		t.Fatalf("days until = %d, want -7", days)
	}
	if _, ok := DaysUntil("", now); ok {
		t.Fatal("expected failure for empty target")
	}
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	to := time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC)
	if days := DaysBetween(from, to); days != 1 {
		t.Fatalf("days between = %d, want 1", days)
	}
}

func TestReInseminationDueAfterHeatInterval(t *testing.T) {
	due, ok := ReInseminationDue("2024-01-01")
	if !ok {
		t.Fatal("expected parseable calving date")
	}
	if got := FormatDate(due); got != "2024-02-15" {
		t.Fatalf("re-insemination due = %s, want 2024-02-15", got)
	}
}

func TestGestationElapsed(t *testing.T) {
	now, _ := ParseDate("2024-08-13")
	days, ok := GestationElapsed("2024-01-01", now)
	if !ok {
		t.Fatal("expected parseable insemination date")
	}
	if days != 225 {
		t.Fatalf("gestation elapsed = %d, want 225", days)
	}
}
