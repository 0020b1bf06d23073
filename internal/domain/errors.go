package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a referenced car, customer, rental or
	// charge does not exist. It is a caller error and is never retried.
	ErrNotFound = errors.New("not found")

	// ErrAlreadySettled is returned when settlement is committed on a rental
	// whose deposit has already been refunded.
	ErrAlreadySettled = errors.New("rental already settled")

	// ErrCarDefleeted is returned when an operation targets a car that has
	// been removed from the active fleet.
	ErrCarDefleeted = errors.New("car is defleeted")

	// ErrCarRented is returned when defleeting a car that still has an
	// active, unsettled rental.
	ErrCarRented = errors.New("car has an active rental")
)

// ValidationError names the input field that failed validation. Validation
// happens before any write, so a ValidationError never leaves partial state.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// RentalOverlapError rejects a rental whose period intersects another active
// rental on the same car. The conflicting rental is identified so the caller
// can display it.
type RentalOverlapError struct {
	CarID      int32
	ConflictID int32
	Start      time.Time
	End        *time.Time
}

func (e *RentalOverlapError) Error() string {
	end := "open"
	if e.End != nil {
		end = e.End.Format("2006-01-02")
	}
	return fmt.Sprintf("car %d is already rented by rental %d (%s to %s)",
		e.CarID, e.ConflictID, e.Start.Format("2006-01-02"), end)
}
