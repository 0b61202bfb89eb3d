/*
store.go - Persistence interfaces consumed by the leave core

PURPOSE:
  Defines what the core needs from storage. The SQLite implementation lives
  in store/sqlite; tests use the same implementation with an in-memory
  database.

ATOMIC BALANCE MUTATIONS:
  ApplyBalanceDelta must be a single atomic increment against the stored
  row (UPDATE ... SET pending_days = MAX(0, pending_days + delta)). The
  core never reads a balance and writes back a computed value, so two
  lifecycle events on the same row cannot lose an update.

CONDITIONAL STATUS TRANSITIONS:
  UpdateRequestStatus writes the new status only when the stored status
  still matches the expected one, and reports whether a row changed. A
  transition that lost a race affects zero rows and zero ledger days.
*/
package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceStore persists balance rows.
type BalanceStore interface {
	// GetBalance returns the balance row, or nil when absent.
	GetBalance(ctx context.Context, key BalanceKey) (*Balance, error)

	// ApplyBalanceDelta atomically increments pending_days (floored at
	// zero) and used_days on the row. Returns ErrBalanceNotFound when the
	// row does not exist.
	ApplyBalanceDelta(ctx context.Context, key BalanceKey, pendingDelta, usedDelta decimal.Decimal) error

	// ListBalances returns a user's balances for a year, with the joined
	// leave type.
	ListBalances(ctx context.Context, tenantID, userID string, year int) ([]Balance, error)
}

// StatusMeta carries the audit fields written alongside a transition.
type StatusMeta struct {
	ActorID string
	At      time.Time
	Notes   string // approval notes
	Reason  string // rejection reason
}

// RequestFilter narrows request listings.
type RequestFilter struct {
	UserID string // only this user's requests
	Status Status // only this status
}

// RequestStore persists leave requests.
type RequestStore interface {
	// CreateRequest inserts a new request.
	CreateRequest(ctx context.Context, r *Request) error

	// GetRequest returns the request, or nil when absent.
	GetRequest(ctx context.Context, id string) (*Request, error)

	// UpdateRequestStatus transitions the request from the expected status
	// to the new one, recording the audit fields for the target status.
	// Returns false when the stored status no longer matches.
	UpdateRequestStatus(ctx context.Context, id string, from, to Status, meta StatusMeta) (bool, error)

	// ListRequests returns a tenant's requests, newest first.
	ListRequests(ctx context.Context, tenantID string, f RequestFilter) ([]Request, error)

	// ListRequestsInRange returns approved and pending requests whose date
	// range overlaps [from, to].
	ListRequestsInRange(ctx context.Context, tenantID string, from, to time.Time) ([]Request, error)
}

// LeaveTypeStore reads the leave type catalogue.
type LeaveTypeStore interface {
	// GetLeaveType returns the leave type, or nil when absent.
	GetLeaveType(ctx context.Context, id string) (*LeaveType, error)

	// ListLeaveTypes returns a tenant's leave types.
	ListLeaveTypes(ctx context.Context, tenantID string) ([]LeaveType, error)
}
