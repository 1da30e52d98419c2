package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func booking(t *testing.T, id string, start time.Time, minutes int, status models.AppointmentStatus) models.Appointment {
	t.Helper()
	ap, err := models.NewAppointment(models.AppointmentInput{
		ID:          id,
		ClientID:    "client-1",
		ClientPhone: "+260977000000",
		DateTime:    start,
		Duration:    minutes,
		Services:    []models.AppointmentService{{ServiceID: "svc-1", Name: "Legs", Duration: minutes, Price: 200}},
		Status:      status,
		TotalPrice:  200,
	})
	if err != nil {
		t.Fatalf("NewAppointment: %v", err)
	}
	return ap
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		from, to models.AppointmentStatus
		ok       bool
	}{
		{models.StatusPending, models.StatusConfirmed, true},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusPending, models.StatusCompleted, false},
		{models.StatusConfirmed, models.StatusCompleted, true},
		{models.StatusConfirmed, models.StatusCancelled, true},
		{models.StatusConfirmed, models.StatusPending, false},
		{models.StatusCancelled, models.StatusConfirmed, false},
		{models.StatusCompleted, models.StatusCancelled, false},
	}

	for _, tt := range tests {
		err := CanTransition(tt.from, tt.to)
		if tt.ok && err != nil {
			t.Fatalf("%s -> %s: unexpected error %v", tt.from, tt.to, err)
		}
		if !tt.ok && !httperr.IsBusiness(err, httperr.CodeInvalidState) {
			t.Fatalf("%s -> %s: want invalid_state, got %v", tt.from, tt.to, err)
		}
	}
}

func TestActionsStampUpdate(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	now := start.Add(-time.Hour)
	ap := booking(t, "a1", start, 30, models.StatusPending)

	confirmed, err := Confirm(ap, now)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if confirmed.Status() != models.StatusConfirmed || !confirmed.UpdatedAt().Equal(now) {
		t.Fatalf("unexpected confirmed booking %+v", confirmed.Input())
	}
	if ap.Status() != models.StatusPending {
		t.Fatalf("original booking was modified")
	}

	done, err := Complete(confirmed, now)
	if err != nil || done.Status() != models.StatusCompleted {
		t.Fatalf("Complete: %v", err)
	}
	if _, err := Cancel(done, now); err == nil {
		t.Fatalf("expected completed booking to reject cancel")
	}
}

func TestInitialStatus(t *testing.T) {
	if InitialStatus(true) != models.StatusPending {
		t.Fatalf("confirmation required should start pending")
	}
	if InitialStatus(false) != models.StatusConfirmed {
		t.Fatalf("no confirmation should start confirmed")
	}
}
