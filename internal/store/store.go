// Package store provides the in-memory CRUD repositories backing the editor:
// one generic Store per entity kind, keyed by id, with change notification
// for reactive consumers.
//
// All operations are synchronous and complete before returning; the editor
// mutates stores from a single logical thread, so operations never interleave.
// A mutex still guards the map so that accidental cross-goroutine use (e.g.
// a debounced exporter reading a snapshot) stays memory-safe.
//
// Snapshots are isolating: Items and Read return deep clones, so a caller can
// never observe store-internal state change through a previously returned
// value, and mutating a returned value never writes through to the store.
package store

import (
	"sync"

	"cardsmith/internal/content"
)

// Entity is the contract stored values satisfy: identity access, id
// assignment and deep cloning. The type parameter ties WithEntityID and Clone
// to the concrete entity type.
type Entity[T any] interface {
	EntityID() string
	WithEntityID(id string) T
	Clone() T
}

// Option configures a Store at construction.
type Option[T Entity[T]] func(*Store[T])

// WithProtection marks entities the store refuses to delete. Delete returns
// a PROTECTED StoreError for any entity the predicate accepts.
func WithProtection[T Entity[T]](protected func(T) bool) Option[T] {
	return func(s *Store[T]) { s.protected = protected }
}

// WithIDSource overrides the store's id generator. Used in tests to pin the
// clock.
func WithIDSource[T Entity[T]](ids *content.IDSource) Option[T] {
	return func(s *Store[T]) { s.ids = ids }
}

// Store is an in-memory repository for one entity kind.
//
// Iteration order is insertion order: Items returns entities in the order
// they were created or loaded, with updates leaving position unchanged.
type Store[T Entity[T]] struct {
	mu        sync.Mutex
	kind      string
	ids       *content.IDSource
	items     map[string]T
	order     []string
	protected func(T) bool

	subs    map[int]func()
	nextSub int
}

// New creates an empty store for the given entity kind. The kind doubles as
// the id prefix and appears in error messages.
func New[T Entity[T]](kind string, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		kind:  kind,
		ids:   content.NewIDSource(kind),
		items: make(map[string]T),
		subs:  make(map[int]func()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kind returns the entity kind this store holds.
func (s *Store[T]) Kind() string { return s.kind }

// Items returns a fresh snapshot of all entities in insertion order.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id].Clone())
	}
	return out
}

// Len returns the number of stored entities.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Read returns a clone of the entity with the given id. Absence is not an
// error: the second result is false when the id is unknown.
func (s *Store[T]) Read(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return item.Clone(), true
}

// Create assigns a fresh unique id to the entity, inserts it, and returns the
// stored record (id populated). Any id on the input is ignored; stores own
// identity assignment.
func (s *Store[T]) Create(item T) T {
	s.mu.Lock()
	id := s.ids.Next()
	stored := item.Clone().WithEntityID(id)
	s.items[id] = stored
	s.order = append(s.order, id)
	result := stored.Clone()
	s.mu.Unlock()

	s.notify()
	return result
}

// Update merges a partial change onto the entity with the given id. The merge
// func receives a clone of the current record and returns the replacement;
// entity patches (content.CardPatch etc.) provide shallow-merge semantics
// with wholesale array replacement. The replacement keeps the original id
// regardless of what merge returns.
//
// Returns a NOT_FOUND StoreError when the id is unknown.
func (s *Store[T]) Update(id string, merge func(T) T) error {
	s.mu.Lock()
	current, ok := s.items[id]
	if !ok {
		s.mu.Unlock()
		return NewNotFoundError(s.kind, id)
	}
	// Clone the merge result too: a merge func may return a record sharing
	// maps with caller-held state, which must not alias store internals.
	s.items[id] = merge(current.Clone()).Clone().WithEntityID(id)
	s.mu.Unlock()

	s.notify()
	return nil
}

// Delete removes the entity with the given id.
//
// Returns a NOT_FOUND StoreError when the id is unknown and a PROTECTED
// StoreError when the entity is marked undeletable. Callers that want the
// historical silent no-op can discard not-found errors via IsNotFound.
func (s *Store[T]) Delete(id string) error {
	s.mu.Lock()
	item, ok := s.items[id]
	if !ok {
		s.mu.Unlock()
		return NewNotFoundError(s.kind, id)
	}
	if s.protected != nil && s.protected(item) {
		s.mu.Unlock()
		return NewProtectedError(s.kind, id)
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// Load atomically replaces the entire collection. Loaded entities keep their
// existing ids; entries without an id are skipped. Later duplicates win but
// keep the first occurrence's position. Used for import/restore.
func (s *Store[T]) Load(items []T) {
	s.mu.Lock()
	s.items = make(map[string]T, len(items))
	s.order = s.order[:0]
	for _, item := range items {
		id := item.EntityID()
		if id == "" {
			continue
		}
		if _, exists := s.items[id]; !exists {
			s.order = append(s.order, id)
		}
		s.items[id] = item.Clone()
	}
	s.mu.Unlock()

	s.notify()
}

// Subscribe registers a change observer, called synchronously after every
// mutation (Create, Update, Delete, Load). Returns an unsubscribe func.
// Observers must not mutate the store reentrantly.
func (s *Store[T]) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// notify runs all subscribers outside the store lock so observers can read
// snapshots.
func (s *Store[T]) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
