package datasource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func receive[T any](t *testing.T, ch <-chan []T) []T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatalf("updates closed unexpectedly")
		}
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for update")
	}
	return nil
}

func expectClosed[T any](t *testing.T, ch <-chan []T) {
	t.Helper()
	select {
	case v, ok := <-ch:
		if ok {
			t.Fatalf("unexpected update %v", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("updates not closed")
	}
}

func TestSubscribeEmitsInitialAndChanges(t *testing.T) {
	ctx := context.Background()
	src, store := newTestSource()
	_ = store.Set(ctx, "appointments/a", appointmentRecord("PENDING"))

	sub, err := src.ObserveAppointments().Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Cancel()

	if got := receive(t, sub.Updates()); len(got) != 1 {
		t.Fatalf("initial = %d items, want 1", len(got))
	}

	_ = store.Set(ctx, "appointments/b", appointmentRecord("PENDING"))
	if got := receive(t, sub.Updates()); len(got) != 2 {
		t.Fatalf("after write = %d items, want 2", len(got))
	}

	_ = store.Set(ctx, "appointments/c", "garbage")
	if got := receive(t, sub.Updates()); len(got) != 2 {
		t.Fatalf("malformed child must be skipped, got %d items", len(got))
	}
}

func TestSlowSubscriberGetsLatestSnapshot(t *testing.T) {
	ctx := context.Background()
	src, store := newTestSource()

	sub, err := src.ObserveAppointments().Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Cancel()

	ids := []string{"a", "b", "c", "d", "e", "f"}
	for _, id := range ids {
		_ = store.Set(ctx, "appointments/"+id, appointmentRecord("PENDING"))
	}

	// The pump may already hold one earlier snapshot; everything after it
	// collapses into the latest.
	got := receive(t, sub.Updates())
	if len(got) != len(ids) {
		got = receive(t, sub.Updates())
	}
	if len(got) != len(ids) {
		t.Fatalf("latest = %d items, want %d", len(got), len(ids))
	}

	select {
	case v := <-sub.Updates():
		t.Fatalf("stale snapshot delivered after the latest: %d items", len(v))
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCancelStopsDeliveryAndDeregisters(t *testing.T) {
	ctx := context.Background()
	src, store := newTestSource()
	baseline := store.ListenerCount(PathAppointments)

	sub, err := src.ObserveAppointments().Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if store.ListenerCount(PathAppointments) != baseline+1 {
		t.Fatalf("listener not registered")
	}

	sub.Cancel()
	sub.Cancel()

	if store.ListenerCount(PathAppointments) != baseline {
		t.Fatalf("listener count = %d, want %d", store.ListenerCount(PathAppointments), baseline)
	}

	_ = store.Set(ctx, "appointments/late", appointmentRecord("PENDING"))
	for v := range sub.Updates() {
		if len(v) > 0 {
			t.Fatalf("received %v after Cancel", v)
		}
	}
	if sub.Err() != nil {
		t.Fatalf("Err() = %v after plain cancel", sub.Err())
	}
}

func TestSubscriptionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	src, store := newTestSource()
	feed := src.ObserveAppointments()

	first, err := feed.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	second, err := feed.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer second.Cancel()

	receive(t, first.Updates())
	receive(t, second.Updates())

	first.Cancel()
	_ = store.Set(ctx, "appointments/a", appointmentRecord("PENDING"))

	if got := receive(t, second.Updates()); len(got) != 1 {
		t.Fatalf("second subscription got %d items, want 1", len(got))
	}
	if store.ListenerCount(PathAppointments) != 1 {
		t.Fatalf("listener count = %d, want 1", store.ListenerCount(PathAppointments))
	}
}

func TestChannelErrorEndsSubscription(t *testing.T) {
	ctx := context.Background()
	src, store := newTestSource()

	sub, err := src.ObserveAdmins().Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	receive(t, sub.Updates())

	denied := errors.New("permission denied")
	store.Revoke("users", denied)

	expectClosed(t, sub.Updates())
	var se *SyncError
	if !errors.As(sub.Err(), &se) || !errors.Is(sub.Err(), denied) {
		t.Fatalf("Err() = %v, want SyncError wrapping cause", sub.Err())
	}
	sub.Cancel()
}

func TestContextCancelEndsSubscription(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src, store := newTestSource()

	sub, err := src.ObserveServiceItems().Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	receive(t, sub.Updates())

	cancel()
	expectClosed(t, sub.Updates())

	deadline := time.Now().Add(2 * time.Second)
	for store.ListenerCount(PathServiceItems) != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("listener not removed after context cancel")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestMappedFeed(t *testing.T) {
	ctx := context.Background()
	src, store := newTestSource()
	_ = store.Set(ctx, "appointments/a", appointmentRecord("PENDING"))
	_ = store.Set(ctx, "appointments/b", appointmentRecord("CANCELLED"))

	pending := Map(src.ObserveAppointments(), func(list []models.Appointment) []string {
		var ids []string
		for _, a := range list {
			if a.Status() == models.StatusPending {
				ids = append(ids, a.ID())
			}
		}
		return ids
	})

	sub, err := pending.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if got := receive(t, sub.Updates()); len(got) != 1 || got[0] != "a" {
		t.Fatalf("mapped = %v, want [a]", got)
	}

	sub.Cancel()
	expectClosed(t, sub.Updates())
	if store.ListenerCount(PathAppointments) != 0 {
		t.Fatalf("mapped cancel left a listener")
	}
}
