package remote

import (
	"sort"
	"strings"
	"sync"
)

// ReadFunc loads the current snapshot at path for delivery.
type ReadFunc func(path string) (Snapshot, error)

// Registry tracks listeners by path and fans change notifications out to
// them. Deliveries are serialized, so each listener sees snapshots in the
// order the changes were notified.
type Registry struct {
	dispatch sync.Mutex

	mu      sync.RWMutex
	next    uint64
	entries map[uint64]*entry
}

type entry struct {
	id   uint64
	path string
	l    Listener
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[uint64]*entry)}
}

// Add registers l and delivers the snapshot at path before returning.
func (r *Registry) Add(path string, l Listener, read ReadFunc) Registration {
	r.dispatch.Lock()
	defer r.dispatch.Unlock()

	r.mu.Lock()
	r.next++
	e := &entry{id: r.next, path: path, l: l}
	r.entries[e.id] = e
	r.mu.Unlock()

	reg := &registration{r: r, id: e.id}

	snap, err := read(path)
	if err != nil {
		r.drop(e.id)
		l.OnCancelled(err)
		return reg
	}
	l.OnData(snap)
	return reg
}

// Notify delivers a fresh snapshot to every listener whose path is related
// to changed. A failed read cancels the listeners of that path.
func (r *Registry) Notify(changed string, read ReadFunc) {
	r.dispatch.Lock()
	defer r.dispatch.Unlock()

	byPath := map[string][]*entry{}
	for _, e := range r.matching(func(e *entry) bool { return Related(e.path, changed) }) {
		byPath[e.path] = append(byPath[e.path], e)
	}

	paths := make([]string, 0, len(byPath))
	for p := range byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		snap, err := read(p)
		for _, e := range byPath[p] {
			if err != nil {
				r.drop(e.id)
				e.l.OnCancelled(err)
				continue
			}
			e.l.OnData(snap)
		}
	}
}

// Revoke cancels every listener at or below path with err.
func (r *Registry) Revoke(path string, err error) {
	r.dispatch.Lock()
	defer r.dispatch.Unlock()

	for _, e := range r.matching(func(e *entry) bool {
		return path == "" || e.path == path || strings.HasPrefix(e.path, path+"/")
	}) {
		r.drop(e.id)
		e.l.OnCancelled(err)
	}
}

// Len counts listeners registered exactly at path.
func (r *Registry) Len(path string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, e := range r.entries {
		if e.path == path {
			n++
		}
	}
	return n
}

func (r *Registry) matching(keep func(*entry) bool) []*entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entry
	for _, e := range r.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (r *Registry) drop(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

type registration struct {
	r    *Registry
	id   uint64
	once sync.Once
}

func (g *registration) Remove() {
	g.once.Do(func() {
		// waits out a delivery in progress
		g.r.dispatch.Lock()
		defer g.r.dispatch.Unlock()
		g.r.drop(g.id)
	})
}
