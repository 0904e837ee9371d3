package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"product_catalog/domain"
)

const (
	createProductsTable = `CREATE TABLE IF NOT EXISTS products (
	id BIGINT PRIMARY KEY,
	category TEXT NOT NULL DEFAULT '',
	name VARCHAR(100) NOT NULL,
	manufacturer VARCHAR(100) NOT NULL,
	importer_email VARCHAR(320),
	quantity BIGINT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
	selectProduct = `SELECT id, category, name, manufacturer, importer_email, quantity FROM products WHERE id = $1`
	insertProduct = `INSERT INTO products (id, category, name, manufacturer, importer_email, quantity) VALUES ($1, $2, $3, $4, $5, $6)`
	updateProduct = `UPDATE products SET category = $2, name = $3, manufacturer = $4, importer_email = $5, quantity = $6, updated_at = NOW() WHERE id = $1`
)

// pgUniqueViolation is the SQLSTATE for a unique constraint failure.
const pgUniqueViolation = "23505"

// PostgresStore persists products in PostgreSQL via database/sql and lib/pq.
type PostgresStore struct {
	db *sql.DB
}

// compile-time assertion
var _ domain.ProductStore = (*PostgresStore)(nil)

// OpenPostgresStore connects to dsn and makes sure the products table exists.
func OpenPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := NewPostgresStore(db)
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresStore wraps an open database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the products table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createProductsTable); err != nil {
		return fmt.Errorf("create products table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Begin(ctx context.Context) (domain.ProductRepository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return newSession(s), nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) load(ctx context.Context, id int64) (record, bool, error) {
	var (
		r     record
		email sql.NullString
		qty   int64
	)
	err := s.db.QueryRowContext(ctx, selectProduct, id).Scan(&r.ID, &r.Category, &r.Name, &r.Manufacturer, &email, &qty)
	if errors.Is(err, sql.ErrNoRows) {
		return record{}, false, nil
	}
	if err != nil {
		return record{}, false, fmt.Errorf("select product: %w", err)
	}
	if qty < 0 {
		return record{}, false, fmt.Errorf("product %d has negative quantity %d", id, qty)
	}
	if email.Valid {
		r.ImporterEmail = &email.String
	}
	r.Quantity = uint(qty)
	return r, true, nil
}

func (s *PostgresStore) save(ctx context.Context, inserts, updates []record) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, r := range inserts {
		if _, err = tx.ExecContext(ctx, insertProduct, productArgs(r)...); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
				return domain.NewDuplicateProductError(r.ID)
			}
			return fmt.Errorf("insert product %d: %w", r.ID, err)
		}
	}
	for _, r := range updates {
		res, err := tx.ExecContext(ctx, updateProduct, productArgs(r)...)
		if err != nil {
			return fmt.Errorf("update product %d: %w", r.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update product %d: %w", r.ID, err)
		}
		if n == 0 {
			return domain.NewProductNotFoundError(r.ID)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func productArgs(r record) []interface{} {
	var email sql.NullString
	if r.ImporterEmail != nil {
		email = sql.NullString{String: *r.ImporterEmail, Valid: true}
	}
	return []interface{}{r.ID, r.Category, r.Name, r.Manufacturer, email, int64(r.Quantity)}
}
