// Package memstore is an in-process remote.Store.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/remote"
)

// Fault lets callers fail operations on chosen paths. op is one of get,
// set, update or listen.
type Fault func(op, path string) error

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithFault(f Fault) Option {
	return func(s *Store) { s.fault = f }
}

type Store struct {
	mu    sync.RWMutex
	root  any
	now   func() time.Time
	fault Fault

	listeners *remote.Registry
}

var _ remote.Store = (*Store)(nil)

func New(opts ...Option) *Store {
	s := &Store{now: time.Now, listeners: remote.NewRegistry()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(ctx context.Context, path string) (remote.Snapshot, error) {
	if err := s.check(ctx, "get", path); err != nil {
		return remote.Snapshot{}, err
	}
	return s.read(path)
}

func (s *Store) Set(ctx context.Context, path string, value any) error {
	if err := s.check(ctx, "set", path); err != nil {
		return err
	}
	segs, err := remote.Split(path)
	if err != nil {
		return err
	}
	v, err := remote.Normalize(value, s.now())
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.root = remote.SetAt(s.root, segs, v)
	s.mu.Unlock()

	s.listeners.Notify(path, s.read)
	return nil
}

func (s *Store) Push(ctx context.Context, path string, value any) (string, error) {
	key, err := remote.NewPushKey()
	if err != nil {
		return "", err
	}
	if err := s.Set(ctx, remote.Join(path, key), value); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Store) Update(ctx context.Context, path string, fields map[string]any) error {
	if err := s.check(ctx, "update", path); err != nil {
		return err
	}
	base, err := remote.Split(path)
	if err != nil {
		return err
	}

	type change struct {
		segs []string
		v    any
	}
	changes := make([]change, 0, len(fields))
	now := s.now()
	for field, value := range fields {
		rel, err := remote.Split(field)
		if err != nil || len(rel) == 0 {
			return remote.ErrInvalidPath
		}
		v, err := remote.Normalize(value, now)
		if err != nil {
			return err
		}
		segs := append(append([]string(nil), base...), rel...)
		changes = append(changes, change{segs: segs, v: v})
	}

	s.mu.Lock()
	for _, c := range changes {
		s.root = remote.SetAt(s.root, c.segs, c.v)
	}
	s.mu.Unlock()

	s.listeners.Notify(path, s.read)
	return nil
}

func (s *Store) Listen(path string, l remote.Listener) (remote.Registration, error) {
	if err := s.check(context.Background(), "listen", path); err != nil {
		return nil, err
	}
	return s.listeners.Add(path, l, s.read), nil
}

// Revoke cancels the listeners at or below path, as a server would on a
// permission change.
func (s *Store) Revoke(path string, err error) {
	s.listeners.Revoke(path, err)
}

func (s *Store) ListenerCount(path string) int {
	return s.listeners.Len(path)
}

func (s *Store) read(path string) (remote.Snapshot, error) {
	segs, err := remote.Split(path)
	if err != nil {
		return remote.Snapshot{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return remote.Snapshot{Key: remote.Last(path), Value: remote.Clone(remote.GetAt(s.root, segs))}, nil
}

func (s *Store) check(ctx context.Context, op, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.fault != nil {
		return s.fault(op, path)
	}
	return nil
}
