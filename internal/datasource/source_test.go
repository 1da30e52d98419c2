package datasource

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/remote/memstore"
)

func newTestSource(opts ...memstore.Option) (*Source, *memstore.Store) {
	store := memstore.New(opts...)
	return New(store, slog.New(slog.DiscardHandler)), store
}

func appointmentRecord(status string) map[string]any {
	return map[string]any{
		"clientEmail": "ana@example.com",
		"clientId":    "client-1",
		"clientPhone": "+260977123456",
		"dateTime":    "2025-03-10T09:00:00Z",
		"duration":    30,
		"services":    []any{map[string]any{"serviceId": "svc-1", "name": "Brow wax", "duration": 30, "price": 120}},
		"status":      status,
		"totalPrice":  120,
	}
}

func TestFetchListSkipsMalformedRecords(t *testing.T) {
	ctx := context.Background()
	src, store := newTestSource()

	broken := appointmentRecord("PENDING")
	broken["duration"] = 0

	_ = store.Set(ctx, "appointments/a", appointmentRecord("PENDING"))
	_ = store.Set(ctx, "appointments/b", "not an object")
	_ = store.Set(ctx, "appointments/c", broken)
	_ = store.Set(ctx, "appointments/d", appointmentRecord("CONFIRMED"))

	got, err := src.Appointments(ctx)
	if err != nil {
		t.Fatalf("Appointments: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d appointments, want 2", len(got))
	}
	if got[0].ID() != "a" || got[1].ID() != "d" {
		t.Fatalf("ids = %s, %s; want a, d in key order", got[0].ID(), got[1].ID())
	}
}

func TestFetchTransportFailure(t *testing.T) {
	offline := errors.New("offline")
	src, _ := newTestSource(memstore.WithFault(func(op, path string) error {
		if op == "get" {
			return offline
		}
		return nil
	}))

	_, err := src.Appointments(context.Background())
	var se *SyncError
	if !errors.As(err, &se) || !errors.Is(err, offline) {
		t.Fatalf("error = %v, want SyncError wrapping the cause", err)
	}
}

func TestFetchOneNotFoundAndDecodeError(t *testing.T) {
	ctx := context.Background()
	src, store := newTestSource()

	_, err := src.BusinessSettings(ctx)
	if !IsNotFound(err) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}

	_ = store.Set(ctx, "appointments/x", map[string]any{"duration": "soon"})
	_, err = src.Appointment(ctx, "x")
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error = %v, want DecodeError", err)
	}
}

func TestAppendAndUpdateStampServerTime(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	src, _ := newTestSource(memstore.WithClock(func() time.Time { return fixed }))

	ap, err := models.AppointmentFromMap("", appointmentRecord("PENDING"))
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	id, err := src.CreateAppointment(ctx, ap)
	if err != nil || id == "" {
		t.Fatalf("CreateAppointment = %q, %v", id, err)
	}

	if err := src.UpdateAppointmentStatus(ctx, id, models.StatusConfirmed); err != nil {
		t.Fatalf("UpdateAppointmentStatus: %v", err)
	}

	got, err := src.Appointment(ctx, id)
	if err != nil {
		t.Fatalf("Appointment: %v", err)
	}
	if got.ID() != id || got.Status() != models.StatusConfirmed {
		t.Fatalf("got id=%s status=%s", got.ID(), got.Status())
	}
	if !got.CreatedAt().Equal(fixed) || !got.UpdatedAt().Equal(fixed) {
		t.Fatalf("timestamps = %v / %v, want server time", got.CreatedAt(), got.UpdatedAt())
	}
}

func TestBlockedDatesUseKeyAsID(t *testing.T) {
	ctx := context.Background()
	src, _ := newTestSource()

	b, err := src.AddBlockedDate(ctx, "2025-12-25", "Christmas", "admin-1", time.Now())
	if err != nil {
		t.Fatalf("AddBlockedDate: %v", err)
	}
	list, err := src.BlockedDates(ctx)
	if err != nil || len(list) != 1 || list[0].ID != b.ID {
		t.Fatalf("BlockedDates = %+v, %v", list, err)
	}

	if err := src.RemoveBlockedDate(ctx, b.ID); err != nil {
		t.Fatalf("RemoveBlockedDate: %v", err)
	}
	if err := src.RemoveBlockedDate(ctx, b.ID); !IsNotFound(err) {
		t.Fatalf("second remove error = %v, want NotFoundError", err)
	}
}

func TestBusinessHoursByWeekday(t *testing.T) {
	ctx := context.Background()
	src, store := newTestSource()

	if err := src.PutBusinessDay(ctx, time.Monday, models.BusinessDay{IsOpen: true, Start: "09:00", End: "17:00"}); err != nil {
		t.Fatalf("PutBusinessDay: %v", err)
	}
	_ = store.Set(ctx, "schedules/business_hours/funday", map[string]any{"isOpen": false})

	hours, err := src.BusinessHours(ctx)
	if err != nil {
		t.Fatalf("BusinessHours: %v", err)
	}
	if len(hours) != 1 || !hours[time.Monday].IsOpen {
		t.Fatalf("hours = %+v", hours)
	}

	err = src.PutBusinessDay(ctx, time.Tuesday, models.BusinessDay{IsOpen: true})
	if !models.IsValidation(err) {
		t.Fatalf("invalid day error = %v", err)
	}
}

func TestOutOfRangeSettingsAreDecodeErrors(t *testing.T) {
	ctx := context.Background()
	src, store := newTestSource()

	_ = store.Set(ctx, PathBusinessSettings, map[string]any{
		"name":              "Salon",
		"email":             "hello@salon.test",
		"timezone":          "UTC",
		"appointmentBuffer": -30,
	})
	_ = store.Set(ctx, PathNotificationSettings, map[string]any{
		"cancellationNotice": map[string]any{"enabled": true, "minimumHours": 0},
	})

	var de *DecodeError
	if _, err := src.BusinessSettings(ctx); !errors.As(err, &de) {
		t.Fatalf("BusinessSettings err = %v, want DecodeError", err)
	}
	if _, err := src.NotificationSettings(ctx); !errors.As(err, &de) {
		t.Fatalf("NotificationSettings err = %v, want DecodeError", err)
	}
}
