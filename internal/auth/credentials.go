package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNoProfile          = errors.New("no profile record for credential")
)

// Credential is the identity held by the credential provider.
type Credential struct {
	UID         string
	Email       string
	DisplayName string
	// PasswordStamp changes whenever the password does.
	PasswordStamp string
}

// Credentials is the identity provider behind the gateway.
type Credentials interface {
	Create(ctx context.Context, email, password string) (Credential, error)
	SetDisplayName(ctx context.Context, uid, name string) error
	Delete(ctx context.Context, uid string) error
	// Verify returns ErrInvalidCredentials for an unknown email or a wrong
	// password.
	Verify(ctx context.Context, email, password string) (Credential, error)
	Get(ctx context.Context, uid string) (Credential, error)
	Lookup(ctx context.Context, email string) (Credential, error)
	SetPassword(ctx context.Context, uid, password string) error
}
