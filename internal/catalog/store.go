package catalog

import (
	"errors"
	"sync"
)

var ErrCatalogNotFound = errors.New("catalog not found")

// Store holds the loaded catalogs. Catalogs are immutable; the store only
// guards registration against concurrent reads.
type Store struct {
	mu       sync.RWMutex
	catalogs map[string]*Catalog
	order    []string
}

func NewStore(catalogs ...*Catalog) *Store {
	s := &Store{catalogs: make(map[string]*Catalog)}
	for _, c := range catalogs {
		s.Put(c)
	}
	return s
}

// Put registers a catalog, replacing any catalog with the same id.
func (s *Store) Put(c *Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.catalogs[c.ID]; !exists {
		s.order = append(s.order, c.ID)
	}
	s.catalogs[c.ID] = c
}

func (s *Store) Get(id string) (*Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.catalogs[id]
	if !ok {
		return nil, ErrCatalogNotFound
	}
	return c, nil
}

// List returns all catalogs in registration order.
func (s *Store) List() []*Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Catalog, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.catalogs[id])
	}
	return out
}
