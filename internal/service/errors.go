package service

import (
	"errors"
	"fmt"

	"go-ferre-inventory/pkg/validator"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrDuplicateCode     = errors.New("product code already exists")
	ErrNotFound          = errors.New("record not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ValidationError names the first field that failed validation.
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s: %s is required", ErrValidation, e.Field)
	case "gte":
		return fmt.Sprintf("%s: %s must not be negative", ErrValidation, e.Field)
	case "gt":
		return fmt.Sprintf("%s: %s must be greater than zero", ErrValidation, e.Field)
	}
	return fmt.Sprintf("%s: field '%s' failed on tag '%s'", ErrValidation, e.Field, e.Tag)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// InsufficientStockError is returned when a sale asks for more units than
// the product holds.
type InsufficientStockError struct {
	Code      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s for %s: requested %d, available %d", ErrInsufficientStock, e.Code, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// validateRecord runs struct tags and converts the first failure.
func validateRecord(v interface{}) error {
	if errs := validator.ValidateStruct(v); len(errs) > 0 {
		return &ValidationError{Field: errs[0].FailedField, Tag: errs[0].Tag}
	}
	return nil
}
