/*
Package leave is the accounting core of the leave planner.

PURPOSE:
  Owns the domain types and the two pieces of logic everything else hangs
  off: the balance ledger (reserve/commit/release of leave days) and the
  request lifecycle (create -> approve/reject/cancel). Persistence and HTTP
  live elsewhere; this package only talks to the store interfaces defined
  in store.go.

KEY CONCEPTS IN THIS FILE (types.go):
  - LeaveType:  immutable reference data (annual leave, sick leave, ...)
  - Balance:    per (tenant, user, leave-type, year) day counters
  - Request:    a dated leave request with its lifecycle status

DESIGN PRINCIPLES:
  1. Remaining days are derived on every read, never stored.
  2. Day amounts use decimal.Decimal so future half-day allocations do not
     force a schema change; a request's days_count stays an integer tally.
  3. The acting user is passed explicitly to every operation.

SEE ALSO:
  - ledger.go:  balance mutations
  - request.go: lifecycle transitions and validations
*/
package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// LEAVE TYPE - Immutable reference data
// =============================================================================

// LeaveType describes one kind of leave a tenant offers.
// Created and edited by admin tooling; this core only reads it.
type LeaveType struct {
	ID               string
	TenantID         string
	Name             string
	Code             string
	IsPaid           bool
	Color            string
	RequiresApproval bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// =============================================================================
// BALANCE - Per-year day counters
// =============================================================================

// BalanceKey identifies exactly one balance row.
type BalanceKey struct {
	TenantID    string
	UserID      string
	LeaveTypeID string
	Year        int
}

// Balance tracks a user's leave days for one leave type and year.
// Seeded at year start by an admin process; mutated only by BalanceLedger.
type Balance struct {
	ID          string
	TenantID    string
	UserID      string
	LeaveTypeID string
	Year        int
	TotalDays   decimal.Decimal
	UsedDays    decimal.Decimal
	PendingDays decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// LeaveType is the joined reference record, populated on reads.
	LeaveType *LeaveType
}

// Key returns the identifying key of this balance row.
func (b *Balance) Key() BalanceKey {
	return BalanceKey{
		TenantID:    b.TenantID,
		UserID:      b.UserID,
		LeaveTypeID: b.LeaveTypeID,
		Year:        b.Year,
	}
}

// Remaining derives the requestable days: total - used - pending, clamped
// at zero. Never stored; computed on every read.
func (b *Balance) Remaining() decimal.Decimal {
	remaining := b.TotalDays.Sub(b.UsedDays).Sub(b.PendingDays)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// =============================================================================
// REQUEST - A dated leave request
// =============================================================================

// Status is the lifecycle state of a request.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Request is a user's leave request over an inclusive date range.
// Created pending; transitions exactly once to approved, rejected, or
// cancelled. No transition leads back to pending.
type Request struct {
	ID          string
	TenantID    string
	UserID      string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	DaysCount   int
	Status      Status
	Reason      string
	Notes       string

	ApprovedBy      string
	ApprovedAt      *time.Time
	RejectedBy      string
	RejectedAt      *time.Time
	RejectionReason string
	CancelledAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// UserName is the requester's display name, populated on reads.
	UserName string
}

// BalanceKey returns the balance row this request draws from: the year is
// taken from the start date.
func (r *Request) BalanceKey() BalanceKey {
	return BalanceKey{
		TenantID:    r.TenantID,
		UserID:      r.UserID,
		LeaveTypeID: r.LeaveTypeID,
		Year:        r.StartDate.Year(),
	}
}

// Covers reports whether the request's date range includes the given day.
func (r *Request) Covers(day time.Time) bool {
	return !day.Before(r.StartDate) && !day.After(r.EndDate)
}
