// Package domain defines error types for the product catalog.
package domain

import (
	"errors"
	"fmt"
)

// ValidationError is returned when an input value breaks a field rule
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return e.Message
}

// Is allows proper error type checking with errors.Is()
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// ProductNotFoundError is returned when a product with the given ID is not found
type ProductNotFoundError struct {
	ProductID int64
}

// Error implements the error interface for ProductNotFoundError
func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product with id %d was not found", e.ProductID)
}

// Is allows proper error type checking with errors.Is()
func (e *ProductNotFoundError) Is(target error) bool {
	_, ok := target.(*ProductNotFoundError)
	return ok
}

// DuplicateProductError is returned when attempting to add a product with an existing ID
type DuplicateProductError struct {
	ProductID int64
}

// Error implements the error interface for DuplicateProductError
func (e *DuplicateProductError) Error() string {
	return fmt.Sprintf("Product with id %d already exists", e.ProductID)
}

// Is allows proper error type checking with errors.Is()
func (e *DuplicateProductError) Is(target error) bool {
	_, ok := target.(*DuplicateProductError)
	return ok
}

// OrderTooLargeError is returned when an order exceeds the configured maximum
type OrderTooLargeError struct {
	Requested uint
	Max       uint
}

func (e *OrderTooLargeError) Error() string {
	return "The order is too large"
}

func (e *OrderTooLargeError) Is(target error) bool {
	_, ok := target.(*OrderTooLargeError)
	return ok
}

// OutOfStockError is returned when neither stock nor supplier can cover an order
type OutOfStockError struct {
	ProductID int64
	Requested uint
	Available uint
}

func (e *OutOfStockError) Error() string {
	return "The product is out of stock"
}

func (e *OutOfStockError) Is(target error) bool {
	_, ok := target.(*OutOfStockError)
	return ok
}

// InfrastructureError wraps a failure of a collaborator (storage, supplier).
// Unlike the errors above it is not something the caller can fix.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors with context

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewProductNotFoundError creates a new ProductNotFoundError
func NewProductNotFoundError(productID int64) error {
	return &ProductNotFoundError{ProductID: productID}
}

// NewDuplicateProductError creates a new DuplicateProductError
func NewDuplicateProductError(productID int64) error {
	return &DuplicateProductError{ProductID: productID}
}

// NewOrderTooLargeError creates a new OrderTooLargeError
func NewOrderTooLargeError(requested, max uint) error {
	return &OrderTooLargeError{Requested: requested, Max: max}
}

// NewOutOfStockError creates a new OutOfStockError
func NewOutOfStockError(productID int64, requested, available uint) error {
	return &OutOfStockError{ProductID: productID, Requested: requested, Available: available}
}

// NewInfrastructureError creates a new InfrastructureError
func NewInfrastructureError(op string, err error) error {
	return &InfrastructureError{Op: op, Err: err}
}

// Type assertion helpers for use with errors.As()

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsProductNotFoundError checks if an error is a ProductNotFoundError
func IsProductNotFoundError(err error) bool {
	var pnf *ProductNotFoundError
	return errors.As(err, &pnf)
}

// IsDuplicateProductError checks if an error is a DuplicateProductError
func IsDuplicateProductError(err error) bool {
	var dpe *DuplicateProductError
	return errors.As(err, &dpe)
}

// IsOrderTooLargeError checks if an error is an OrderTooLargeError
func IsOrderTooLargeError(err error) bool {
	var ote *OrderTooLargeError
	return errors.As(err, &ote)
}

// IsOutOfStockError checks if an error is an OutOfStockError
func IsOutOfStockError(err error) bool {
	var ose *OutOfStockError
	return errors.As(err, &ose)
}

// IsInfrastructureError checks if an error is an InfrastructureError
func IsInfrastructureError(err error) bool {
	var ie *InfrastructureError
	return errors.As(err, &ie)
}
