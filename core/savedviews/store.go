// Package savedviews keeps named filter bookmarks for the process lifetime.
// Views are never persisted; restarting the service starts from an empty
// store.
package savedviews

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/storeops/shelfwatch/core/restock"
)

// View is a named filter bookmark.
type View struct {
	ID        string
	Name      string
	Filter    restock.Filter
	CreatedAt time.Time
}

// Store keeps named dashboard views.
type Store interface {
	Save(name string, f restock.Filter) (View, error)
	Get(id string) (View, bool)
	List() []View
	Delete(id string) bool
	Len() int
}

// MemoryStore implements Store with a mutex guarded map.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]View
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]View{}, now: time.Now}
}

// Save stores f under name with a fresh id. Blank names are rejected.
func (s *MemoryStore) Save(name string, f restock.Filter) (View, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return View{}, fmt.Errorf("view name is required")
	}
	v := View{ID: uuid.NewString(), Name: name, Filter: f, CreatedAt: s.now().UTC()}
	s.mu.Lock()
	s.data[v.ID] = v
	s.mu.Unlock()
	return v, nil
}

// Get returns the view with the given id.
func (s *MemoryStore) Get(id string) (View, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[id]
	return v, ok
}

// List returns all views ordered by creation time, ties by name.
func (s *MemoryStore) List() []View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]View, 0, len(s.data))
	for _, v := range s.data {
		res = append(res, v)
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.Before(res[j].CreatedAt)
		}
		return res[i].Name < res[j].Name
	})
	return res
}

// Delete removes the view with the given id and reports whether it existed.
func (s *MemoryStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[id]
	delete(s.data, id)
	return ok
}

// Len returns the number of stored views.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
