package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"product_catalog/result"
)

// MaxNameLength bounds product and manufacturer names, in characters.
const MaxNameLength = 100

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ProductName is a validated product name.
type ProductName struct {
	value string
}

// NewProductName validates s as a product name.
func NewProductName(s string) result.Result[ProductName] {
	if err := checkName("name", "Product name", s); err != nil {
		return result.Fail[ProductName](err)
	}
	return result.Ok(ProductName{value: s})
}

func (n ProductName) String() string { return n.value }

// ManufacturerName is a validated manufacturer name.
type ManufacturerName struct {
	value string
}

// NewManufacturerName validates s as a manufacturer name.
func NewManufacturerName(s string) result.Result[ManufacturerName] {
	if err := checkName("manufacturer", "Manufacturer name", s); err != nil {
		return result.Fail[ManufacturerName](err)
	}
	return result.Ok(ManufacturerName{value: s})
}

func (n ManufacturerName) String() string { return n.value }

// Email is a syntactically valid e-mail address.
type Email struct {
	value string
}

// NewEmail validates s as an e-mail address.
func NewEmail(s string) result.Result[Email] {
	if !emailRegex.MatchString(s) {
		return result.Fail[Email](NewValidationError("importerEmail", "Email is invalid"))
	}
	return result.Ok(Email{value: s})
}

func (e Email) String() string { return e.value }

func checkName(field, label, s string) error {
	if strings.TrimSpace(s) == "" {
		return NewValidationError(field, label+" should not be empty")
	}
	if utf8.RuneCountInString(s) > MaxNameLength {
		return NewValidationError(field, label+" is too long")
	}
	return nil
}
