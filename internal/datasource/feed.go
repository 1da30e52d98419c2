package datasource

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/salon-scheduler/internal/remote"
)

// Feed is a cold live query: nothing is registered with the store until
// Subscribe, and every subscription gets its own listener.
type Feed[T any] struct {
	src    *Source
	path   string
	decode Decoder[T]
}

func Observe[T any](s *Source, path string, decode Decoder[T]) *Feed[T] {
	return &Feed[T]{src: s, path: path, decode: decode}
}

// Map derives a feed whose collections are transformed by fn.
func Map[T, U any](f *Feed[T], fn func([]T) []U) *MappedFeed[T, U] {
	return &MappedFeed[T, U]{feed: f, fn: fn}
}

// Subscribe registers a listener on the feed's path. The current
// collection arrives first, then one collection per change, until Cancel,
// ctx ends, or the store cancels the listener.
func (f *Feed[T]) Subscribe(ctx context.Context) (*Subscription[T], error) {
	sub := &Subscription[T]{
		updates:  make(chan []T),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		pumpDone: make(chan struct{}),
	}
	l := &feedListener[T]{sub: sub, feed: f}

	reg, err := f.src.store.Listen(f.path, l)
	if err != nil {
		return nil, &SyncError{Op: "listen", Path: f.path, Err: err}
	}
	sub.reg = reg

	go sub.pump()
	go func() {
		select {
		case <-ctx.Done():
			sub.Cancel()
		case <-sub.pumpDone:
		}
	}()
	return sub, nil
}

type Subscription[T any] struct {
	updates  chan []T
	wake     chan struct{}
	done     chan struct{}
	pumpDone chan struct{}
	reg      remote.Registration
	once     sync.Once

	// Every snapshot is a full collection, so an undelivered one is
	// replaced by the next rather than queued behind it.
	mu      sync.Mutex
	pending []T
	waiting bool
	err     error
	stopped bool
}

// Updates is closed when the subscription ends.
func (s *Subscription[T]) Updates() <-chan []T {
	return s.updates
}

// Err is the SyncError that ended the subscription, if the store ended it.
func (s *Subscription[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Cancel is idempotent. When it returns the listener is deregistered and
// Updates is closed.
func (s *Subscription[T]) Cancel() {
	s.once.Do(func() {
		if s.reg != nil {
			s.reg.Remove()
		}
		s.mu.Lock()
		s.stopped = true
		s.pending, s.waiting = nil, false
		s.mu.Unlock()
		close(s.done)
	})
	<-s.pumpDone
}

func (s *Subscription[T]) push(items []T) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.pending, s.waiting = items, true
	s.mu.Unlock()
	s.signal()
}

func (s *Subscription[T]) fail(err error) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.err = err
	s.stopped = true
	s.mu.Unlock()
	s.signal()
}

func (s *Subscription[T]) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Subscription[T]) pump() {
	defer close(s.pumpDone)
	defer close(s.updates)

	for {
		s.mu.Lock()
		if !s.waiting {
			stopped := s.stopped
			s.mu.Unlock()
			if stopped {
				return
			}
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			}
		}
		next := s.pending
		s.pending, s.waiting = nil, false
		s.mu.Unlock()

		select {
		case s.updates <- next:
		case <-s.done:
			return
		}
	}
}

type feedListener[T any] struct {
	sub  *Subscription[T]
	feed *Feed[T]
}

func (l *feedListener[T]) OnData(snap remote.Snapshot) {
	l.sub.push(decodeChildren(l.feed.src.logger, l.feed.path, snap, l.feed.decode))
}

func (l *feedListener[T]) OnCancelled(err error) {
	l.sub.fail(&SyncError{Op: "listen", Path: l.feed.path, Err: err})
}

// MappedFeed applies a transformation to every collection of a Feed.
type MappedFeed[T, U any] struct {
	feed *Feed[T]
	fn   func([]T) []U
}

func (m *MappedFeed[T, U]) Subscribe(ctx context.Context) (*MappedSubscription[U], error) {
	inner, err := m.feed.Subscribe(ctx)
	if err != nil {
		return nil, err
	}
	out := &MappedSubscription[U]{
		updates:  make(chan []U),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
		cancel:   inner.Cancel,
		err:      inner.Err,
	}
	go func() {
		defer close(out.finished)
		defer close(out.updates)
		for items := range inner.Updates() {
			select {
			case out.updates <- m.fn(items):
			case <-out.done:
				return
			}
		}
	}()
	return out, nil
}

type MappedSubscription[U any] struct {
	updates  chan []U
	done     chan struct{}
	finished chan struct{}
	once     sync.Once
	cancel   func()
	err      func() error
}

func (s *MappedSubscription[U]) Updates() <-chan []U { return s.updates }
func (s *MappedSubscription[U]) Err() error          { return s.err() }

func (s *MappedSubscription[U]) Cancel() {
	s.once.Do(func() {
		close(s.done)
		s.cancel()
	})
	<-s.finished
}
