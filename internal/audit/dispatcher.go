package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Event struct {
	ActorID  string
	Action   string
	Entity   string
	EntityID string
	Details  string
	Metadata any
}

// Dispatcher writes audit events off the request path. Events are dropped
// when the queue is full.
type Dispatcher struct {
	logger *Logger
	log    *slog.Logger
	queue  chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(logger *Logger, size int, log *slog.Logger) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, size),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := d.logger.Log(ctx, ev); err != nil {
			d.log.Error("audit write failed", "action", ev.Action, "entity_id", ev.EntityID, "error", err)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close stops accepting events and waits for queued ones to be written or
// for ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
