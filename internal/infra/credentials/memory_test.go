package credentials

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.cost = bcrypt.MinCost

	cred, err := s.Create(ctx, "ana@example.com", "secret1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(ctx, "ana@example.com", "other"); !errors.Is(err, auth.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if err := s.SetDisplayName(ctx, cred.UID, "Ana Banda"); err != nil {
		t.Fatalf("SetDisplayName: %v", err)
	}
	got, err := s.Verify(ctx, "ana@example.com", "secret1")
	if err != nil || got.DisplayName != "Ana Banda" {
		t.Fatalf("Verify = %+v (%v)", got, err)
	}
	if _, err := s.Verify(ctx, "ana@example.com", "nope"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("wrong password accepted: %v", err)
	}

	before, err := s.Get(ctx, cred.UID)
	if err != nil || before.PasswordStamp == "" {
		t.Fatalf("Get = %+v (%v)", before, err)
	}
	if err := s.SetPassword(ctx, cred.UID, "changed"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	after, err := s.Get(ctx, cred.UID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if after.PasswordStamp == before.PasswordStamp {
		t.Fatalf("stamp did not change with the password")
	}
	if _, err := s.Verify(ctx, "ana@example.com", "changed"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	if err := s.Delete(ctx, cred.UID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Lookup(ctx, "ana@example.com"); !errors.Is(err, auth.ErrCredentialNotFound) {
		t.Fatalf("deleted credential still found: %v", err)
	}
	if _, err := s.Get(ctx, cred.UID); !errors.Is(err, auth.ErrCredentialNotFound) {
		t.Fatalf("deleted credential still readable: %v", err)
	}
	if err := s.SetDisplayName(ctx, cred.UID, "x"); !errors.Is(err, auth.ErrCredentialNotFound) {
		t.Fatalf("expected ErrCredentialNotFound, got %v", err)
	}
	if _, err := s.Create(ctx, "ana@example.com", "secret1"); err != nil {
		t.Fatalf("email should be free after delete: %v", err)
	}
}
