package invoice

import (
	"errors"
	"fmt"

	"tripbill/internal/totals"
)

// Validation failures. Validate wraps each in a *ValidationError.
var (
	// ErrConflictingTax is returned when both GST and IGST are enabled.
	ErrConflictingTax = totals.ErrConflictingTax

	// ErrNegativeReading is returned for a negative odometer reading or free distance.
	ErrNegativeReading = errors.New("odometer reading cannot be negative")

	// ErrReadingOrder is returned when the end reading is below the start reading.
	ErrReadingOrder = errors.New("end reading is below start reading")

	// ErrTimeOrder is returned when the trip ends before it starts.
	ErrTimeOrder = errors.New("trip ends before it starts")

	// ErrNegativeAmount is returned for any negative money value or count.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrRentVariant is returned unless exactly one rent variant is set.
	ErrRentVariant = errors.New("exactly one rent variant is required")

	ErrMissingCustomer      = errors.New("customer name is required")
	ErrMissingInvoiceNumber = errors.New("invoice number is required")
)

// ErrSequenceUnavailable is returned when no invoice number could be
// acquired. No document is produced.
var ErrSequenceUnavailable = errors.New("invoice number sequence unavailable")

// ValidationError describes one invalid input field.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// Unwrap returns the matching sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, err error, message string) *ValidationError {
	if message == "" && err != nil {
		message = err.Error()
	}
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
		Err:     err,
	}
}

// GenerationError wraps a failure in one step of invoice generation.
type GenerationError struct {
	// Op is the step that failed, e.g. "render", "store", "register".
	Op string

	// InvoiceNumber is set once a number has been assigned.
	InvoiceNumber string

	Err error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	if e.InvoiceNumber != "" {
		return fmt.Sprintf("invoice: %s failed (invoice: %s): %v", e.Op, e.InvoiceNumber, e.Err)
	}
	return fmt.Sprintf("invoice: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *GenerationError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapGenerationError wraps err as a GenerationError unless it already is one.
func WrapGenerationError(op, invoiceNumber string, err error) error {
	if err == nil {
		return nil
	}

	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return err
	}

	return &GenerationError{Op: op, InvoiceNumber: invoiceNumber, Err: err}
}
