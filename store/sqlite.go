package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"product_catalog/domain"
)

// productRow is the gorm model behind SQLiteStore.
type productRow struct {
	ID            int64     `gorm:"primaryKey;autoIncrement:false"`
	Category      string    `gorm:"size:100"`
	Name          string    `gorm:"size:100;not null"`
	Manufacturer  string    `gorm:"size:100;not null"`
	ImporterEmail *string   `gorm:"size:320"`
	Quantity      uint      `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for productRow.
func (productRow) TableName() string {
	return "products"
}

func rowFromRecord(r record) productRow {
	return productRow{
		ID:            r.ID,
		Category:      r.Category,
		Name:          r.Name,
		Manufacturer:  r.Manufacturer,
		ImporterEmail: r.ImporterEmail,
		Quantity:      r.Quantity,
	}
}

func (row productRow) record() record {
	return record{
		ID:            row.ID,
		Category:      row.Category,
		Name:          row.Name,
		Manufacturer:  row.Manufacturer,
		ImporterEmail: row.ImporterEmail,
		Quantity:      row.Quantity,
	}
}

// SQLiteStore persists products through gorm.
type SQLiteStore struct {
	db *gorm.DB
}

// compile-time assertion
var _ domain.ProductStore = (*SQLiteStore)(nil)

// OpenSQLiteStore opens (and migrates) the SQLite database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return NewSQLiteStore(db)
}

// NewSQLiteStore wraps an existing gorm connection and migrates the schema.
func NewSQLiteStore(db *gorm.DB) (*SQLiteStore, error) {
	if err := db.AutoMigrate(&productRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate products table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Begin(ctx context.Context) (domain.ProductRepository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return newSession(s), nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLiteStore) load(ctx context.Context, id int64) (record, bool, error) {
	var row productRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return record{}, false, nil
		}
		return record{}, false, fmt.Errorf("failed to find product: %w", err)
	}
	return row.record(), true, nil
}

func (s *SQLiteStore) save(ctx context.Context, inserts, updates []record) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range inserts {
			row := rowFromRecord(r)
			if err := tx.Create(&row).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return domain.NewDuplicateProductError(r.ID)
				}
				return fmt.Errorf("failed to create product: %w", err)
			}
		}
		for _, r := range updates {
			res := tx.Model(&productRow{}).Where("id = ?", r.ID).Updates(map[string]interface{}{
				"category":       r.Category,
				"name":           r.Name,
				"manufacturer":   r.Manufacturer,
				"importer_email": r.ImporterEmail,
				"quantity":       r.Quantity,
			})
			if err := res.Error; err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
			if res.RowsAffected == 0 {
				return domain.NewProductNotFoundError(r.ID)
			}
		}
		return nil
	})
}
