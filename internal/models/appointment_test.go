package models

import (
	"errors"
	"testing"
	"time"
)

func validAppointmentInput() AppointmentInput {
	return AppointmentInput{
		ClientEmail: "ana@example.com",
		ClientID:    "client-1",
		ClientPhone: "+260 977-123456",
		DateTime:    time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		Duration:    45,
		Services:    []AppointmentService{{ServiceID: "svc-1", Name: "Brazilian", Duration: 45, Price: 350}},
		TotalPrice:  350,
	}
}

func TestNewAppointment(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppointmentInput)
		wantErr bool
	}{
		{"valid", func(*AppointmentInput) {}, false},
		{"zero duration", func(in *AppointmentInput) { in.Duration = 0 }, true},
		{"negative duration", func(in *AppointmentInput) { in.Duration = -15 }, true},
		{"negative price", func(in *AppointmentInput) { in.TotalPrice = -1 }, true},
		{"free appointment", func(in *AppointmentInput) { in.TotalPrice = 0 }, false},
		{"no services", func(in *AppointmentInput) { in.Services = nil }, true},
		{"letters in phone", func(in *AppointmentInput) { in.ClientPhone = "call me" }, true},
		{"empty phone", func(in *AppointmentInput) { in.ClientPhone = "" }, true},
		{"unknown status", func(in *AppointmentInput) { in.Status = "LOST" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validAppointmentInput()
			tt.mutate(&in)

			_, err := NewAppointment(in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewAppointment() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("expected *ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestNewAppointmentDefaultsToPending(t *testing.T) {
	ap, err := NewAppointment(validAppointmentInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status() != StatusPending {
		t.Fatalf("status = %s, want %s", ap.Status(), StatusPending)
	}
}

func TestAppointmentMapRoundTrip(t *testing.T) {
	in := validAppointmentInput()
	in.Notes = "first visit"
	in.CreatedAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ap, err := NewAppointment(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := AppointmentFromMap("key-1", ap.ToMap())
	if err != nil {
		t.Fatalf("AppointmentFromMap: %v", err)
	}

	if got.ID() != "key-1" {
		t.Fatalf("id = %q, want key fallback", got.ID())
	}
	if !got.DateTime().Equal(ap.DateTime()) || !got.CreatedAt().Equal(ap.CreatedAt()) {
		t.Fatalf("instants changed: %v / %v", got.DateTime(), got.CreatedAt())
	}
	if got.Duration() != 45 || got.TotalPrice() != 350 || got.Notes() != "first visit" {
		t.Fatalf("unexpected appointment %+v", got.Input())
	}
	if len(got.Services()) != 1 || got.Services()[0] != in.Services[0] {
		t.Fatalf("services = %+v", got.Services())
	}
}

func TestAppointmentFromMapAcceptsEpochMillis(t *testing.T) {
	m := validAppointmentFromInput(t).ToMap()
	m["createdAt"] = float64(1741600800000)

	got, err := AppointmentFromMap("k", m)
	if err != nil {
		t.Fatalf("AppointmentFromMap: %v", err)
	}
	if got.CreatedAt().UnixMilli() != 1741600800000 {
		t.Fatalf("createdAt = %v", got.CreatedAt())
	}
}

func TestAppointmentOverlaps(t *testing.T) {
	base := validAppointmentFromInput(t)

	later := validAppointmentInput()
	later.DateTime = base.End()
	next, err := NewAppointment(later)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if base.Overlaps(next, 0) {
		t.Fatalf("back-to-back appointments must not overlap without buffer")
	}
	if !base.Overlaps(next, 15*time.Minute) {
		t.Fatalf("buffer should make back-to-back appointments overlap")
	}
}

func validAppointmentFromInput(t *testing.T) Appointment {
	t.Helper()
	ap, err := NewAppointment(validAppointmentInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return ap
}
