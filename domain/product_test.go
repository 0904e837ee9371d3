package domain

import (
	"context"
	"strings"
	"testing"

	"product_catalog/result"
)

func TestValueTypes(t *testing.T) {
	tests := []struct {
		name        string
		create      func() result.Outcome
		expectError bool
		errField    string
		errMessage  string
	}{
		{
			name:   "valid product name",
			create: func() result.Outcome { return NewProductName("Laptop") },
		},
		{
			name:        "empty product name",
			create:      func() result.Outcome { return NewProductName("") },
			expectError: true,
			errField:    "name",
			errMessage:  "Product name should not be empty",
		},
		{
			name:        "blank product name",
			create:      func() result.Outcome { return NewProductName("   ") },
			expectError: true,
			errField:    "name",
			errMessage:  "Product name should not be empty",
		},
		{
			name:        "product name too long",
			create:      func() result.Outcome { return NewProductName(strings.Repeat("a", MaxNameLength+1)) },
			expectError: true,
			errField:    "name",
			errMessage:  "Product name is too long",
		},
		{
			name:   "product name at the bound",
			create: func() result.Outcome { return NewProductName(strings.Repeat("é", MaxNameLength)) },
		},
		{
			name:   "valid manufacturer",
			create: func() result.Outcome { return NewManufacturerName("Acme") },
		},
		{
			name:        "empty manufacturer",
			create:      func() result.Outcome { return NewManufacturerName("") },
			expectError: true,
			errField:    "manufacturer",
			errMessage:  "Manufacturer name should not be empty",
		},
		{
			name:   "valid email",
			create: func() result.Outcome { return NewEmail("imports@acme.com") },
		},
		{
			name:        "email without domain",
			create:      func() result.Outcome { return NewEmail("imports@") },
			expectError: true,
			errField:    "importerEmail",
			errMessage:  "Email is invalid",
		},
		{
			name:        "empty email",
			create:      func() result.Outcome { return NewEmail("") },
			expectError: true,
			errField:    "importerEmail",
			errMessage:  "Email is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.create().Err()

			if !tt.expectError {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if ve.Field != tt.errField || ve.Message != tt.errMessage {
				t.Fatalf("expected %s/%q, got %s/%q", tt.errField, tt.errMessage, ve.Field, ve.Message)
			}
		})
	}
}

func TestValueEquality(t *testing.T) {
	a, _ := NewProductName("Phone").Unwrap()
	b, _ := NewProductName("Phone").Unwrap()
	if a != b {
		t.Fatal("value types should compare by value")
	}
}

func TestValidateOptionalEmail(t *testing.T) {
	m, err := ValidateOptionalEmail(nil).Unwrap()
	if err != nil || m.HasValue() {
		t.Fatalf("nil email should be valid and absent, got %v (%v)", m, err)
	}

	good := "a@b.io"
	m, err = ValidateOptionalEmail(&good).Unwrap()
	if err != nil || !m.HasValue() {
		t.Fatalf("expected present email, got %v (%v)", m, err)
	}

	bad := "nope"
	if ValidateOptionalEmail(&bad).IsSuccess() {
		t.Fatal("expected invalid email to fail")
	}
}

func TestProductStock(t *testing.T) {
	name, _ := NewProductName("Pen").Unwrap()
	maker, _ := NewManufacturerName("Bic").Unwrap()
	p := NewProduct(1, "office", name, maker, result.None[Email](), 5)

	if err := p.Withdraw(3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Quantity() != 2 {
		t.Fatalf("expected 2 left, got %d", p.Quantity())
	}

	err := p.Withdraw(3)
	if !IsOutOfStockError(err) {
		t.Fatalf("expected OutOfStockError, got %v", err)
	}
	if p.Quantity() != 2 {
		t.Fatalf("failed withdraw must not change stock, got %d", p.Quantity())
	}

	p.Restock(8)
	if p.Quantity() != 10 {
		t.Fatalf("expected 10 after restock, got %d", p.Quantity())
	}
}

func TestRestoreProduct(t *testing.T) {
	email := "ops@acme.com"
	p, err := RestoreProduct(7, "tools", "Hammer", "Acme", &email, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID() != 7 || p.Category() != "tools" || p.Name().String() != "Hammer" || p.Manufacturer().String() != "Acme" || p.Quantity() != 4 {
		t.Fatalf("product fields not restored correctly")
	}
	if e, ok := p.ImporterEmail().Get(); !ok || e.String() != email {
		t.Fatalf("expected importer email %q", email)
	}

	if _, err := RestoreProduct(8, "tools", "", "Acme", nil, 1); !IsValidationError(err) {
		t.Fatalf("expected ValidationError for corrupt row, got %v", err)
	}
}

// ---- Interface compile-time test ----

type mockRepository struct{}

func (m *mockRepository) Find(ctx context.Context, id int64) (result.Maybe[*Product], error) {
	return result.None[*Product](), nil
}

func (m *mockRepository) Add(ctx context.Context, p *Product) error {
	return nil
}

func (m *mockRepository) Commit(ctx context.Context) error {
	return nil
}

// compile-time assertion
var _ ProductRepository = (*mockRepository)(nil)
