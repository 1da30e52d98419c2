package models

import (
	"testing"
	"time"
)

func TestBlockedDateRoundTrip(t *testing.T) {
	b, err := NewBlockedDate("bd-1", "2025-12-25", "Christmas", "admin-1", time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewBlockedDate: %v", err)
	}
	got, err := BlockedDateFromMap("bd-1", b.ToMap())
	if err != nil {
		t.Fatalf("BlockedDateFromMap: %v", err)
	}
	if got != b {
		t.Fatalf("round trip = %+v, want %+v", got, b)
	}
	if b.FormattedDate() != "December 25, 2025" {
		t.Fatalf("FormattedDate() = %q", b.FormattedDate())
	}
}

func TestBlockedDateValidity(t *testing.T) {
	tests := []struct {
		name string
		b    BlockedDate
		want bool
	}{
		{"valid", BlockedDate{ID: "1", Date: "2025-01-01", Reason: "Holiday", CreatedBy: "admin"}, true},
		{"bad date", BlockedDate{ID: "1", Date: "01/01/2025", Reason: "Holiday", CreatedBy: "admin"}, false},
		{"no reason", BlockedDate{ID: "1", Date: "2025-01-01", CreatedBy: "admin"}, false},
		{"no author", BlockedDate{ID: "1", Date: "2025-01-01", Reason: "Holiday"}, false},
	}
	for _, tt := range tests {
		if got := tt.b.IsValid(); got != tt.want {
			t.Fatalf("%s: IsValid() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBusinessSettingsRoundTrip(t *testing.T) {
	s := BusinessSettings{
		BusinessName:             "Totally Waxed",
		Address:                  "Cairo Road, Lusaka",
		Email:                    "hello@example.com",
		Phone:                    "+260 211 000000",
		Currency:                 "K",
		Timezone:                 "Africa/Lusaka",
		AppointmentBufferMinutes: 0,
		CancellationPolicy:       "24h notice",
		LastUpdated:              "2025-01-01T00:00:00Z",
	}
	got, err := BusinessSettingsFromMap("business", s.ToMap())
	if err != nil {
		t.Fatalf("BusinessSettingsFromMap: %v", err)
	}
	if got != s {
		t.Fatalf("round trip = %+v, want %+v", got, s)
	}
}

func TestBusinessSettingsDefaults(t *testing.T) {
	got, err := BusinessSettingsFromMap("business", map[string]any{"name": "Salon", "email": "a@b.c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Currency != "K" || got.Timezone != "Africa/Lusaka" || got.AppointmentBufferMinutes != 15 {
		t.Fatalf("defaults not applied: %+v", got)
	}

	got.AppointmentBufferMinutes = -1
	if got.IsValid() {
		t.Fatalf("negative buffer accepted")
	}
}

func TestServiceCategoryRoundTrip(t *testing.T) {
	c := ServiceCategory{ID: "cat_001", Name: "standard waxing", Description: "Everyday", DisplayOrder: 1}
	got, err := ServiceCategoryFromMap("cat_001", c.ToMap())
	if err != nil {
		t.Fatalf("ServiceCategoryFromMap: %v", err)
	}
	if got != c {
		t.Fatalf("round trip = %+v, want %+v", got, c)
	}
	if c.FormattedName() != "Standard waxing" {
		t.Fatalf("FormattedName() = %q", c.FormattedName())
	}
	if (ServiceCategory{ID: "x", Name: "y", DisplayOrder: -1}).IsValid() {
		t.Fatalf("negative display order accepted")
	}
}

func TestBusinessDayRoundTrip(t *testing.T) {
	days := []BusinessDay{
		{IsOpen: false},
		{IsOpen: true, Start: "09:00", End: "17:00"},
		{IsOpen: true, Start: "09:00", End: "17:00", BreakStart: "12:00", BreakEnd: "13:00"},
	}
	for _, d := range days {
		got, err := BusinessDayFromMap("monday", d.ToMap())
		if err != nil {
			t.Fatalf("BusinessDayFromMap(%+v): %v", d, err)
		}
		if got != d {
			t.Fatalf("round trip = %+v, want %+v", got, d)
		}
	}
}

func TestNotificationSettingsRoundTrip(t *testing.T) {
	s := NotificationSettings{
		Reminder:             ReminderSettings{Enabled: true, HoursBeforeAppointment: 48, Message: "See you at {time}"},
		Cancellation:         CancellationPolicySettings{Enabled: true, MinimumNoticeHours: 12},
		RequiresConfirmation: true,
	}
	got, err := NotificationSettingsFromMap("notifications", s.ToMap())
	if err != nil {
		t.Fatalf("NotificationSettingsFromMap: %v", err)
	}
	if got != s {
		t.Fatalf("round trip = %+v, want %+v", got, s)
	}
}

func TestSystemLogRoundTripKeepsIDOutOfRecord(t *testing.T) {
	l, err := NewSystemLog("APPOINTMENT_CREATED", "booked", "appointment", "ap-1", "uid-1", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewSystemLog: %v", err)
	}
	m := l.ToMap()
	if _, ok := m["id"]; ok {
		t.Fatalf("id must not be persisted")
	}

	got, err := SystemLogFromMap("log-1", m)
	if err != nil {
		t.Fatalf("SystemLogFromMap: %v", err)
	}
	l.ID = "log-1"
	if got != l {
		t.Fatalf("round trip = %+v, want %+v", got, l)
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	for _, v := range []any{"2025-03-10T09:30:00Z", float64(want.UnixMilli()), want.UnixMilli()} {
		got, err := ParseTimestamp(v)
		if err != nil {
			t.Fatalf("ParseTimestamp(%v): %v", v, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseTimestamp(%v) = %v, want %v", v, got, want)
		}
	}
	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Fatalf("garbage timestamp accepted")
	}
}

func TestSettingsDecodeRejectsOutOfRangeValues(t *testing.T) {
	_, err := BusinessSettingsFromMap("business", map[string]any{
		"name": "Salon", "email": "a@b.c", "appointmentBuffer": -30,
	})
	if !IsValidation(err) {
		t.Fatalf("negative buffer: err = %v, want ValidationError", err)
	}

	for _, hours := range []int{0, 169} {
		_, err := NotificationSettingsFromMap("notifications", map[string]any{
			"cancellationNotice": map[string]any{"minimumHours": hours},
		})
		if !IsValidation(err) {
			t.Fatalf("minimumHours %d: err = %v, want ValidationError", hours, err)
		}
	}
}
