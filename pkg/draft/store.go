// Package draft defines the persistence contract for in-progress field
// values. Drafts are keyed by (form identifier, field identifier), written
// through on every change of a draft-enabled field, and cleared as a set on
// successful submission or on logout. Values pass through as given; adapters
// own any serialization.
package draft

import (
	"errors"
	"sync"
)

// Store is the external persistence collaborator. Writes are fire-and-forget
// from the core's perspective: the form never awaits acknowledgement and
// discards Set errors.
type Store interface {
	// Get returns the stored value for the pair and whether one exists.
	Get(formID, fieldID string) (any, bool, error)
	// Set writes the value for the pair, replacing any previous draft.
	Set(formID, fieldID string, value any) error
	// ClearForm removes every draft recorded under the form identifier.
	ClearForm(formID string) error
	// ClearAll removes every draft. Wired to the global logout event.
	ClearAll() error
}

// MemoryStore is an in-process Store for tests and ephemeral sessions.
type MemoryStore struct {
	mu    sync.RWMutex
	forms map[string]map[string]any
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{forms: make(map[string]map[string]any)}
}

// Get implements Store.
func (s *MemoryStore) Get(formID, fieldID string) (any, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields, ok := s.forms[formID]
	if !ok {
		return nil, false, nil
	}
	value, ok := fields[fieldID]
	return value, ok, nil
}

// Set implements Store.
func (s *MemoryStore) Set(formID, fieldID string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields, ok := s.forms[formID]
	if !ok {
		fields = make(map[string]any)
		s.forms[formID] = fields
	}
	fields[fieldID] = value
	return nil
}

// ClearForm implements Store.
func (s *MemoryStore) ClearForm(formID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.forms, formID)
	return nil
}

// ClearAll implements Store.
func (s *MemoryStore) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms = make(map[string]map[string]any)
	return nil
}

// Lifecycle fans a logout event out to subscribed stores. Applications hook
// their session teardown to Logout once instead of threading clear calls
// through every form.
type Lifecycle struct {
	mu     sync.Mutex
	stores []Store
}

// Subscribe adds a store to the logout fan-out.
func (l *Lifecycle) Subscribe(store Store) {
	if store == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stores = append(l.stores, store)
}

// Logout clears every subscribed store, joining any failures.
func (l *Lifecycle) Logout() error {
	l.mu.Lock()
	stores := append([]Store(nil), l.stores...)
	l.mu.Unlock()

	var errs []error
	for _, store := range stores {
		if err := store.ClearAll(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
