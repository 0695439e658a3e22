package domain

import "errors"

// Product validation errors
var (
	ErrProductFieldsRequired = errors.New("product name and expiration date are required")
	ErrProductNameTooShort   = errors.New("product name must be at least 3 characters")
	ErrProductNameEmpty      = errors.New("product name cannot be empty")
	ErrBadExpirationDate     = errors.New("expiration date must be a valid YYYY-MM-DD date")
	ErrExpirationDatePast    = errors.New("expiration date cannot be in the past")
)

var validationErrors = []error{
	ErrProductFieldsRequired,
	ErrProductNameTooShort,
	ErrProductNameEmpty,
	ErrBadExpirationDate,
	ErrExpirationDatePast,
}

// IsValidationError reports whether err is one of the product validation errors.
func IsValidationError(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
