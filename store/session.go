package store

import (
	"context"
	"fmt"
	"sort"

	"product_catalog/domain"
	"product_catalog/result"
)

// backend is what each storage kind has to provide for a session. save must
// apply inserts and updates atomically: either all of them land or none do.
type backend interface {
	load(ctx context.Context, id int64) (record, bool, error)
	save(ctx context.Context, inserts, updates []record) error
}

// session is the unit of work handed out by every store. It keeps an
// identity map of the products it has seen and a snapshot of their stored
// state, so Commit writes only new products and products that changed.
type session struct {
	backend  backend
	tracked  map[int64]*domain.Product
	snapshot map[int64]record
}

// compile-time assertion
var _ domain.ProductRepository = (*session)(nil)

func newSession(b backend) *session {
	return &session{
		backend:  b,
		tracked:  make(map[int64]*domain.Product),
		snapshot: make(map[int64]record),
	}
}

func (s *session) Find(ctx context.Context, id int64) (result.Maybe[*domain.Product], error) {
	if p, ok := s.tracked[id]; ok {
		return result.Some(p), nil
	}
	if err := ctx.Err(); err != nil {
		return result.None[*domain.Product](), err
	}

	rec, ok, err := s.backend.load(ctx, id)
	if err != nil {
		return result.None[*domain.Product](), fmt.Errorf("find product %d: %w", id, err)
	}
	if !ok {
		return result.None[*domain.Product](), nil
	}
	p, err := rec.product()
	if err != nil {
		return result.None[*domain.Product](), fmt.Errorf("restore product %d: %w", id, err)
	}
	s.tracked[id] = p
	s.snapshot[id] = rec
	return result.Some(p), nil
}

func (s *session) Add(ctx context.Context, product *domain.Product) error {
	id := product.ID()
	if _, ok := s.tracked[id]; ok {
		return domain.NewDuplicateProductError(id)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	_, exists, err := s.backend.load(ctx, id)
	if err != nil {
		return fmt.Errorf("check product %d: %w", id, err)
	}
	if exists {
		return domain.NewDuplicateProductError(id)
	}
	s.tracked[id] = product
	return nil
}

func (s *session) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ids := make([]int64, 0, len(s.tracked))
	for id := range s.tracked {
		ids = append(ids, id)
	}
	// stable order for deterministic writes
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var inserts, updates []record
	for _, id := range ids {
		current := toRecord(s.tracked[id])
		prev, loaded := s.snapshot[id]
		switch {
		case !loaded:
			inserts = append(inserts, current)
		case !prev.equal(current):
			updates = append(updates, current)
		}
	}
	if len(inserts) == 0 && len(updates) == 0 {
		return nil
	}

	if err := s.backend.save(ctx, inserts, updates); err != nil {
		return fmt.Errorf("commit products: %w", err)
	}
	for _, r := range inserts {
		s.snapshot[r.ID] = r
	}
	for _, r := range updates {
		s.snapshot[r.ID] = r
	}
	return nil
}
