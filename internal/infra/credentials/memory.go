package credentials

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
)

// MemoryStore keeps credentials in process. It backs the memory store
// driver.
type MemoryStore struct {
	mu      sync.RWMutex
	byUID   map[string]Credential
	byEmail map[string]string
	cost    int
}

var _ auth.Credentials = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byUID:   map[string]Credential{},
		byEmail: map[string]string{},
		cost:    bcrypt.DefaultCost,
	}
}

func (s *MemoryStore) Create(_ context.Context, email, password string) (auth.Credential, error) {
	hashed, err := hashPassword(password, s.cost)
	if err != nil {
		return auth.Credential{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byEmail[email]; taken {
		return auth.Credential{}, auth.ErrEmailTaken
	}

	cred := Credential{UID: uuid.NewString(), Email: email, PasswordHash: hashed}
	s.byUID[cred.UID] = cred
	s.byEmail[email] = cred.UID
	return toAuth(cred), nil
}

func (s *MemoryStore) SetDisplayName(_ context.Context, uid, name string) error {
	return s.modify(uid, func(c *Credential) { c.DisplayName = name })
}

func (s *MemoryStore) Delete(_ context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cred, ok := s.byUID[uid]; ok {
		delete(s.byEmail, cred.Email)
		delete(s.byUID, uid)
	}
	return nil
}

func (s *MemoryStore) Verify(_ context.Context, email, password string) (auth.Credential, error) {
	s.mu.RLock()
	cred, ok := s.byUID[s.byEmail[email]]
	s.mu.RUnlock()

	if !ok || !checkPassword(cred.PasswordHash, password) {
		return auth.Credential{}, auth.ErrInvalidCredentials
	}
	return toAuth(cred), nil
}

func (s *MemoryStore) Get(_ context.Context, uid string) (auth.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.byUID[uid]
	if !ok {
		return auth.Credential{}, auth.ErrCredentialNotFound
	}
	return toAuth(cred), nil
}

func (s *MemoryStore) Lookup(_ context.Context, email string) (auth.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.byUID[s.byEmail[email]]
	if !ok {
		return auth.Credential{}, auth.ErrCredentialNotFound
	}
	return toAuth(cred), nil
}

func (s *MemoryStore) SetPassword(_ context.Context, uid, password string) error {
	hashed, err := hashPassword(password, s.cost)
	if err != nil {
		return err
	}
	return s.modify(uid, func(c *Credential) { c.PasswordHash = hashed })
}

func (s *MemoryStore) modify(uid string, fn func(*Credential)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cred, ok := s.byUID[uid]
	if !ok {
		return auth.ErrCredentialNotFound
	}
	fn(&cred)
	s.byUID[uid] = cred
	return nil
}
