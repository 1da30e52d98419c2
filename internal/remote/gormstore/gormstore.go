// Package gormstore is a remote.Store persisted in PostgreSQL through gorm.
package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/remote"
)

// Notifier carries change notifications between processes sharing the
// database.
type Notifier interface {
	Publish(ctx context.Context, path string) error
	// Subscribe calls fn for each path changed by another process until ctx
	// ends or the channel fails.
	Subscribe(ctx context.Context, fn func(path string)) error
}

type Store struct {
	db        *gorm.DB
	notifier  Notifier
	logger    *slog.Logger
	now       func() time.Time
	listeners *remote.Registry
}

var _ remote.Store = (*Store)(nil)

func New(db *gorm.DB, notifier Notifier, logger *slog.Logger) *Store {
	return &Store{
		db:        db,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
		listeners: remote.NewRegistry(),
	}
}

// Run relays notifications from other processes to local listeners. When
// the channel fails every listener is cancelled with the error.
func (s *Store) Run(ctx context.Context) error {
	if s.notifier == nil {
		<-ctx.Done()
		return nil
	}
	err := s.notifier.Subscribe(ctx, func(path string) {
		s.listeners.Notify(path, s.readDetached)
	})
	if err != nil && ctx.Err() == nil {
		s.listeners.Revoke("", fmt.Errorf("change feed: %w", err))
		return err
	}
	return nil
}

func (s *Store) Get(ctx context.Context, path string) (remote.Snapshot, error) {
	segs, err := remote.Split(path)
	if err != nil {
		return remote.Snapshot{}, err
	}
	v, err := s.load(s.db.WithContext(ctx), segs)
	if err != nil {
		return remote.Snapshot{}, err
	}
	return remote.Snapshot{Key: remote.Last(path), Value: v}, nil
}

func (s *Store) Set(ctx context.Context, path string, value any) error {
	segs, err := remote.Split(path)
	if err != nil {
		return err
	}
	if len(segs) == 0 {
		return remote.ErrInvalidPath
	}
	v, err := remote.Normalize(value, s.now())
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCollection(tx, segs); err != nil {
			return err
		}
		return s.write(tx, segs, v)
	})
	if err != nil {
		return err
	}

	s.changed(ctx, path)
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
	base, err := remote.Split(path)
	if err != nil {
		return err
	}
	now := s.now()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockCollection(tx, base); err != nil {
			return err
		}
		for field, value := range fields {
			rel, err := remote.Split(field)
			if err != nil || len(rel) == 0 {
				return remote.ErrInvalidPath
			}
			v, err := remote.Normalize(value, now)
			if err != nil {
				return err
			}
			if err := s.write(tx, append(append([]string(nil), base...), rel...), v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.changed(ctx, path)
	return nil
}

func (s *Store) Listen(path string, l remote.Listener) (remote.Registration, error) {
	if _, err := remote.Split(path); err != nil {
		return nil, err
	}
	return s.listeners.Add(path, l, s.readDetached), nil
}

func (s *Store) changed(ctx context.Context, path string) {
	s.listeners.Notify(path, s.readDetached)
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(context.WithoutCancel(ctx), path); err != nil {
		s.logger.Warn("publish change failed", "path", path, "error", err)
	}
}

func (s *Store) readDetached(path string) (remote.Snapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Get(ctx, path)
}

// lockCollection serializes writers within a top-level collection.
func lockCollection(tx *gorm.DB, segs []string) error {
	top := ""
	if len(segs) > 0 {
		top = segs[0]
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", top).Error
}

func (s *Store) load(db *gorm.DB, segs []string) (any, error) {
	anc, err := findAncestor(db, segs, false)
	if err != nil {
		return nil, err
	}
	if anc != nil {
		return readAncestor(*anc, segs)
	}

	var rows []Node
	if err := descendants(db, segs).Order("path").Find(&rows).Error; err != nil {
		return nil, err
	}
	return assemble(segs, rows)
}

func (s *Store) write(tx *gorm.DB, segs []string, v any) error {
	anc, err := findAncestor(tx, segs, true)
	if err != nil {
		return err
	}

	if anc != nil {
		root, err := writeAncestor(*anc, segs, v)
		if err != nil {
			return err
		}
		if root == nil {
			return tx.Delete(&Node{}, "path = ?", anc.Path).Error
		}
		return save(tx, anc.Path, root, s.now())
	}

	if err := descendants(tx, segs).Delete(&Node{}).Error; err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return save(tx, strings.Join(segs, "/"), v, s.now())
}

// findAncestor returns the node stored at segs or above it, if any.
func findAncestor(db *gorm.DB, segs []string, lock bool) (*Node, error) {
	paths := ancestorPaths(segs)
	if len(paths) == 0 {
		return nil, nil
	}

	q := db.Where("path IN ?", paths)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var rows []Node
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return pickAncestor(segs, rows)
}

// descendants selects the nodes strictly below segs.
func descendants(db *gorm.DB, segs []string) *gorm.DB {
	if len(segs) == 0 {
		return db.Model(&Node{}).Where("1 = 1")
	}
	return db.Model(&Node{}).Where("path LIKE ?", likePrefix(segs))
}

// --------- Path logic ---------

// ancestorPaths lists segs and every path above it, outermost first.
func ancestorPaths(segs []string) []string {
	paths := make([]string, 0, len(segs))
	for i := 1; i <= len(segs); i++ {
		paths = append(paths, strings.Join(segs[:i], "/"))
	}
	return paths
}

func pickAncestor(segs []string, rows []Node) (*Node, error) {
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return &rows[0], nil
	default:
		return nil, errors.New("gormstore: nested nodes at " + strings.Join(segs, "/"))
	}
}

// readAncestor extracts the value at segs from the node holding it.
func readAncestor(anc Node, segs []string) (any, error) {
	root, err := decode(anc.Value)
	if err != nil {
		return nil, err
	}
	return remote.GetAt(root, segs[depth(anc.Path):]), nil
}

// writeAncestor returns the node's value with v placed at segs. nil means
// nothing is left and the node goes.
func writeAncestor(anc Node, segs []string, v any) (any, error) {
	root, err := decode(anc.Value)
	if err != nil {
		return nil, err
	}
	return remote.SetAt(root, segs[depth(anc.Path):], v), nil
}

// assemble rebuilds the tree at segs from the nodes below it.
func assemble(segs []string, rows []Node) (any, error) {
	var tree any
	for _, row := range rows {
		v, err := decode(row.Value)
		if err != nil {
			return nil, err
		}
		rowSegs, _ := remote.Split(row.Path)
		tree = remote.SetAt(tree, rowSegs[len(segs):], v)
	}
	return tree, nil
}

// likePrefix matches paths strictly below segs.
func likePrefix(segs []string) string {
	return likeEscaper.Replace(strings.Join(segs, "/")) + "/%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func save(tx *gorm.DB, path string, v any, now time.Time) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	node := Node{Path: path, Value: string(raw), UpdatedAt: now}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "path"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&node).Error
}

func decode(raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("gormstore: corrupt node: %w", err)
	}
	return v, nil
}

func depth(path string) int {
	return strings.Count(path, "/") + 1
}
