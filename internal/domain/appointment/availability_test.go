package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return monday.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func starts(slots []TimeSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSlots(t *testing.T) {
	day := models.BusinessDay{IsOpen: true, Start: "09:00", End: "12:00", BreakStart: "10:00", BreakEnd: "10:30"}

	tests := []struct {
		name   string
		req    SlotRequest
		expect []string
	}{
		{
			name:   "break removes overlapping slots",
			req:    SlotRequest{Day: day, Date: monday, Location: time.UTC, Duration: time.Hour, Now: monday},
			expect: []string{"09:00", "11:00"},
		},
		{
			name:   "closed day",
			req:    SlotRequest{Day: models.BusinessDay{}, Date: monday, Location: time.UTC, Duration: time.Hour, Now: monday},
			expect: []string{},
		},
		{
			name: "past slots are skipped",
			req: SlotRequest{
				Day:      models.BusinessDay{IsOpen: true, Start: "09:00", End: "11:00"},
				Date:     monday,
				Location: time.UTC,
				Duration: 30 * time.Minute,
				Now:      at(9, 45),
			},
			expect: []string{"10:00", "10:30"},
		},
		{
			name: "booked time and buffer are skipped",
			req: SlotRequest{
				Day:      models.BusinessDay{IsOpen: true, Start: "09:00", End: "11:00"},
				Date:     monday,
				Location: time.UTC,
				Duration: 30 * time.Minute,
				Buffer:   15 * time.Minute,
				Booked:   []models.Appointment{booking(t, "a1", at(9, 30), 30, models.StatusConfirmed)},
				Now:      monday,
			},
			expect: []string{"10:30"},
		},
		{
			name: "cancelled bookings free their slot",
			req: SlotRequest{
				Day:      models.BusinessDay{IsOpen: true, Start: "09:00", End: "10:00"},
				Date:     monday,
				Location: time.UTC,
				Duration: 30 * time.Minute,
				Booked:   []models.Appointment{booking(t, "a1", at(9, 0), 30, models.StatusCancelled)},
				Now:      monday,
			},
			expect: []string{"09:00", "09:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := starts(Slots(tt.req))
			if !equal(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestCheckWithinBusinessHours(t *testing.T) {
	day := models.BusinessDay{IsOpen: true, Start: "09:00", End: "17:00", BreakStart: "12:00", BreakEnd: "13:00"}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		code  string
	}{
		{"inside", at(9, 0), at(10, 0), ""},
		{"ends at close", at(16, 0), at(17, 0), ""},
		{"before open", at(8, 30), at(9, 30), "outside_business_hours"},
		{"after close", at(16, 30), at(17, 30), "outside_business_hours"},
		{"during break", at(11, 30), at(12, 30), "outside_business_hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckWithinBusinessHours(day, tt.start, tt.end, time.UTC)
			if tt.code == "" && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if tt.code != "" && !httperr.IsBusiness(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}

	if err := CheckWithinBusinessHours(models.BusinessDay{}, at(9, 0), at(10, 0), time.UTC); !httperr.IsBusiness(err, httperr.CodeClosed) {
		t.Fatalf("expected closed, got %v", err)
	}
}

func TestCheckNoConflict(t *testing.T) {
	booked := []models.Appointment{booking(t, "a1", at(10, 0), 60, models.StatusPending)}

	if err := CheckNoConflict(at(11, 0), at(11, 30), booked, 15*time.Minute, ""); !httperr.IsBusiness(err, httperr.CodeTimeConflict) {
		t.Fatalf("expected buffer conflict, got %v", err)
	}
	if err := CheckNoConflict(at(11, 15), at(11, 45), booked, 15*time.Minute, ""); err != nil {
		t.Fatalf("unexpected conflict %v", err)
	}
	if err := CheckNoConflict(at(10, 30), at(11, 0), booked, 0, "a1"); err != nil {
		t.Fatalf("rescheduled booking should not conflict with itself: %v", err)
	}
}
