package timezone

import (
	"testing"
	"time"
)

func TestLocationFallsBack(t *testing.T) {
	if got := Location("Not/AZone"); got.String() != Location(DefaultTimezone).String() {
		t.Fatalf("Location(invalid) = %s", got)
	}
	if got := Location("UTC"); got != time.UTC {
		t.Fatalf("Location(UTC) = %s", got)
	}
}

func TestDayIgnoresClockAndZoneOfInput(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	date := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)

	start, end := Day(date, loc)
	if want := time.Date(2025, 3, 10, 0, 0, 0, 0, loc); !start.Equal(want) {
		t.Fatalf("start = %s, want %s", start, want)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Fatalf("end = %s", end)
	}
}

func TestMonthCrossesYear(t *testing.T) {
	start, end := Month(2025, time.December, time.UTC)
	if start != time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC) || end != time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("Month = [%s, %s)", start, end)
	}
}
