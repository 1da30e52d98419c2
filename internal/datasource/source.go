// Package datasource maps the store's logical paths to domain entities,
// through one-shot fetches, live subscriptions and writes.
package datasource

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BruksfildServices01/salon-scheduler/internal/remote"
)

// Decoder turns one stored record into an entity; key is the record's key
// under its collection.
type Decoder[T any] func(key string, m map[string]any) (T, error)

type Source struct {
	store  remote.Store
	logger *slog.Logger
	tracer trace.Tracer
}

func New(store remote.Store, logger *slog.Logger) *Source {
	return &Source{
		store:  store,
		logger: logger,
		tracer: otel.Tracer("github.com/BruksfildServices01/salon-scheduler/internal/datasource"),
	}
}

func (s *Source) start(ctx context.Context, op, path string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "datasource."+op, trace.WithAttributes(attribute.String("store.path", path)))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// FetchList reads every record under path once. Records that do not
// decode are skipped.
func FetchList[T any](ctx context.Context, s *Source, path string, decode Decoder[T]) (out []T, err error) {
	ctx, span := s.start(ctx, "fetch_list", path)
	defer func() { finish(span, err) }()

	snap, err := s.store.Get(ctx, path)
	if err != nil {
		return nil, &SyncError{Op: "get", Path: path, Err: err}
	}
	return decodeChildren(s.logger, path, snap, decode), nil
}

// FetchOne reads the record at path once. A missing record is a
// NotFoundError and a malformed one a DecodeError.
func FetchOne[T any](ctx context.Context, s *Source, path string, decode Decoder[T]) (out T, err error) {
	ctx, span := s.start(ctx, "fetch_one", path)
	defer func() { finish(span, err) }()

	snap, err := s.store.Get(ctx, path)
	if err != nil {
		return out, &SyncError{Op: "get", Path: path, Err: err}
	}
	if !snap.Exists() {
		return out, &NotFoundError{Path: path}
	}
	m, ok := snap.Value.(map[string]any)
	if !ok {
		return out, &DecodeError{Path: path, Err: fmt.Errorf("expected object, got %T", snap.Value)}
	}
	v, err := decode(snap.Key, m)
	if err != nil {
		return out, &DecodeError{Path: path, Err: err}
	}
	return v, nil
}

// decodeChildren is shared by fetches and subscriptions so both see the
// same collection for the same snapshot.
func decodeChildren[T any](logger *slog.Logger, path string, snap remote.Snapshot, decode Decoder[T]) []T {
	children := snap.Children()
	out := make([]T, 0, len(children))
	for _, child := range children {
		m, ok := child.Value.(map[string]any)
		if !ok {
			logger.Warn("skipping malformed record", "path", path, "key", child.Key, "type", fmt.Sprintf("%T", child.Value))
			continue
		}
		v, err := decode(child.Key, m)
		if err != nil {
			logger.Warn("skipping malformed record", "path", path, "key", child.Key, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

// Append stores value under a new key below path and returns the key.
func (s *Source) Append(ctx context.Context, path string, value map[string]any) (key string, err error) {
	ctx, span := s.start(ctx, "append", path)
	defer func() { finish(span, err) }()

	key, err = s.store.Push(ctx, path, value)
	if err != nil {
		return "", &SyncError{Op: "push", Path: path, Err: err}
	}
	if key == "" {
		return "", ErrCreationFailed
	}
	return key, nil
}

// Put replaces the record at path.
func (s *Source) Put(ctx context.Context, path string, value any) (err error) {
	ctx, span := s.start(ctx, "put", path)
	defer func() { finish(span, err) }()

	if err := s.store.Set(ctx, path, value); err != nil {
		return &SyncError{Op: "set", Path: path, Err: err}
	}
	return nil
}

// Update merges fields into the record at path and stamps updatedAt with
// the server time.
func (s *Source) Update(ctx context.Context, path string, fields map[string]any) (err error) {
	ctx, span := s.start(ctx, "update", path)
	defer func() { finish(span, err) }()

	merged := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["updatedAt"] = remote.ServerTimestamp

	if err := s.store.Update(ctx, path, merged); err != nil {
		return &SyncError{Op: "update", Path: path, Err: err}
	}
	return nil
}

func (s *Source) Remove(ctx context.Context, path string) (err error) {
	ctx, span := s.start(ctx, "remove", path)
	defer func() { finish(span, err) }()

	if err := s.store.Set(ctx, path, nil); err != nil {
		return &SyncError{Op: "remove", Path: path, Err: err}
	}
	return nil
}
