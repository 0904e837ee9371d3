package store

import (
	"context"
	"sync"

	"product_catalog/domain"
)

// InMemoryStore is a thread-safe in-memory domain.ProductStore
type InMemoryStore struct {
	mu       sync.RWMutex
	products map[int64]record
}

// NewInMemoryStore constructs a new InMemoryStore
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		products: make(map[int64]record),
	}
}

// compile-time assertion that InMemoryStore implements domain.ProductStore
var _ domain.ProductStore = (*InMemoryStore)(nil)

func (s *InMemoryStore) Begin(ctx context.Context) (domain.ProductRepository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return newSession(s), nil
}

func (s *InMemoryStore) Close() error { return nil }

func (s *InMemoryStore) load(ctx context.Context, id int64) (record, bool, error) {
	select {
	case <-ctx.Done():
		return record{}, false, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.products[id]
	return r, ok, nil
}

func (s *InMemoryStore) save(ctx context.Context, inserts, updates []record) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkChanges(s.products, inserts, updates); err != nil {
		return err
	}
	applyChanges(s.products, inserts, updates)
	return nil
}

// checkChanges rejects inserts of ids that already exist and updates of ids
// that do not, before anything is written.
func checkChanges(products map[int64]record, inserts, updates []record) error {
	for _, r := range inserts {
		if _, exists := products[r.ID]; exists {
			return domain.NewDuplicateProductError(r.ID)
		}
	}
	for _, r := range updates {
		if _, exists := products[r.ID]; !exists {
			return domain.NewProductNotFoundError(r.ID)
		}
	}
	return nil
}

func applyChanges(products map[int64]record, inserts, updates []record) {
	for _, r := range inserts {
		products[r.ID] = r
	}
	for _, r := range updates {
		products[r.ID] = r
	}
}
