package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"product_catalog/domain"
)

// FileStore is a JSON file-backed implementation of domain.ProductStore
type FileStore struct {
	mu       sync.RWMutex
	products map[int64]record
	path     string
}

// compile-time assertion
var _ domain.ProductStore = (*FileStore)(nil)

// NewFileStore constructs a FileStore at the given path. If the file exists it will be loaded.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		products: make(map[int64]record),
		path:     path,
	}
	if err := s.loadFromFile(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) loadFromFile() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// no file yet; that's fine
			return nil
		}
		return err
	}
	var list []record
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	for _, r := range list {
		s.products[r.ID] = r
	}
	return nil
}

func (s *FileStore) saveToFile(products map[int64]record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	list := make([]record, 0, len(products))
	for _, r := range products {
		list = append(list, r)
	}
	// stable order for deterministic files
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Begin(ctx context.Context) (domain.ProductRepository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return newSession(s), nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) load(ctx context.Context, id int64) (record, bool, error) {
	if err := ctx.Err(); err != nil {
		return record{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.products[id]
	return r, ok, nil
}

// save writes the next state to disk first and only then swaps it in, so a
// failed write leaves both the file and the in-memory view untouched.
func (s *FileStore) save(ctx context.Context, inserts, updates []record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkChanges(s.products, inserts, updates); err != nil {
		return err
	}
	next := make(map[int64]record, len(s.products)+len(inserts))
	for id, r := range s.products {
		next[id] = r
	}
	applyChanges(next, inserts, updates)

	if err := s.saveToFile(next); err != nil {
		return err
	}
	s.products = next
	return nil
}
