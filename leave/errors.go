/*
errors.go - Error taxonomy for the leave core

ERROR CATEGORIES:
  1. Validation errors - user input fails a creation precondition; the
     message is user-displayable verbatim.
  2. State-conflict errors - request not pending when a transition is
     attempted. Kept as two distinct sentinels (not found vs already
     processed) so callers can choose whether to collapse them.
  3. Storage errors - propagated upward unmodified.

USAGE:
  if errors.Is(err, leave.ErrRequestAlreadyProcessed) { ... }

  var insufficientErr *leave.InsufficientBalanceError
  if errors.As(err, &insufficientErr) {
      // insufficientErr.Remaining carries the actual remaining balance
  }
*/
package leave

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is the root of every user-input failure.
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientBalance is returned when a request exceeds the
	// remaining balance for its year.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrRequestNotFound is returned when no request has the given id
	// within the actor's tenant.
	ErrRequestNotFound = errors.New("request not found")

	// ErrRequestAlreadyProcessed is returned when a transition is attempted
	// on a request that is no longer pending.
	ErrRequestAlreadyProcessed = errors.New("request already processed")

	// ErrBalanceNotFound is returned when no balance row exists for the
	// (user, leave-type, year) a mutation targets.
	ErrBalanceNotFound = errors.New("balance not found")

	// ErrNotRequestOwner is returned when a user tries to cancel a request
	// they did not submit.
	ErrNotRequestOwner = errors.New("not the request owner")

	// ErrPermissionDenied is returned when the actor's role does not allow
	// the operation.
	ErrPermissionDenied = errors.New("permission denied")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ValidationError carries a user-displayable message for a failed creation
// precondition.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return ErrValidation }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientBalanceError reports how many days actually remain.
type InsufficientBalanceError struct {
	Remaining decimal.Decimal
	Requested int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient remaining balance: %s day(s) left, %d requested",
		e.Remaining.String(), e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError reports whether the error was caused by the caller rather
// than the system. Client errors are safe to surface verbatim.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrRequestNotFound) ||
		errors.Is(err, ErrRequestAlreadyProcessed) ||
		errors.Is(err, ErrNotRequestOwner) ||
		errors.Is(err, ErrPermissionDenied)
}
