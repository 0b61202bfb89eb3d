/*
request.go - Leave request lifecycle

PURPOSE:
  Handles the full lifecycle of leave requests:
  1. Create:  validate input, count working days, check remaining balance,
              persist pending, reserve days
  2. Approve: pending -> approved, commit held days
  3. Reject:  pending -> rejected, release held days
  4. Cancel:  owner withdraws own pending request, release held days

REQUEST FLOW:

  User submits      Count working     Persist pending    Manager acts
  request      -->  days, validate -->  + reserve    -->  approve/reject
                    balance                               (or owner cancels)

STATE MACHINE:
  pending -> approved | rejected | cancelled     (exactly once)
  approved/rejected/cancelled are terminal.

ORDERING:
  A request's status transition is written before its ledger mutation. The
  two are not atomic together: if the ledger write fails the request and
  the balance are out of sync until corrected. The transition itself is a
  conditional update, so a second approve/reject of the same request fails
  before touching the ledger.

SEE ALSO:
  - ledger.go: the balance mutations each transition drives
  - calendar:  working-day counting and holiday lookup
*/
package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Imrushtempo/Modulsite-SzabiTervezo/calendar"
	"github.com/Imrushtempo/Modulsite-SzabiTervezo/identity"
)

// CreateInput is the user-supplied portion of a new request.
// Dates are YYYY-MM-DD strings, inclusive on both ends.
type CreateInput struct {
	LeaveTypeID string
	StartDate   string
	EndDate     string
	Reason      string
}

// RequestService drives the request lifecycle and the matching ledger
// mutations.
type RequestService struct {
	Requests RequestStore
	Types    LeaveTypeStore
	Ledger   *BalanceLedger
	Calendar *calendar.Calendar

	// Now overrides the clock in tests; nil means time.Now.
	Now func() time.Time
}

func (s *RequestService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// =============================================================================
// CREATE
// =============================================================================

// Create validates the input, counts working days, checks the remaining
// balance, persists the request as pending, and reserves the days.
func (s *RequestService) Create(ctx context.Context, actor identity.User, in CreateInput) (*Request, error) {
	if in.LeaveTypeID == "" {
		return nil, validationErrorf("please select a leave type")
	}
	if in.StartDate == "" || in.EndDate == "" {
		return nil, validationErrorf("please select a start and end date")
	}

	start, err := calendar.ParseDate(in.StartDate)
	if err != nil {
		return nil, validationErrorf("invalid start date %q (use YYYY-MM-DD)", in.StartDate)
	}
	end, err := calendar.ParseDate(in.EndDate)
	if err != nil {
		return nil, validationErrorf("invalid end date %q (use YYYY-MM-DD)", in.EndDate)
	}

	today := calendar.Truncate(s.now())
	if start.Before(today) {
		return nil, validationErrorf("the start date cannot be in the past")
	}
	if end.Before(start) {
		return nil, validationErrorf("the end date cannot be before the start date")
	}

	leaveType, err := s.Types.GetLeaveType(ctx, in.LeaveTypeID)
	if err != nil {
		return nil, fmt.Errorf("load leave type: %w", err)
	}
	if leaveType == nil || leaveType.TenantID != actor.TenantID {
		return nil, validationErrorf("unknown leave type")
	}

	days := s.Calendar.WorkingDays(start, end)
	if days == 0 {
		return nil, validationErrorf("the selected range contains only weekends or holidays")
	}

	key := BalanceKey{
		TenantID:    actor.TenantID,
		UserID:      actor.ID,
		LeaveTypeID: leaveType.ID,
		Year:        start.Year(),
	}
	balance, err := s.Ledger.Balance(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load balance: %w", err)
	}
	if balance == nil {
		return nil, validationErrorf("no leave balance for %d", key.Year)
	}
	if decimal.NewFromInt(int64(days)).GreaterThan(balance.Remaining()) {
		return nil, &InsufficientBalanceError{Remaining: balance.Remaining(), Requested: days}
	}

	now := s.now()
	request := &Request{
		ID:          uuid.NewString(),
		TenantID:    actor.TenantID,
		UserID:      actor.ID,
		LeaveTypeID: leaveType.ID,
		StartDate:   start,
		EndDate:     end,
		DaysCount:   days,
		Status:      StatusPending,
		Reason:      in.Reason,
		CreatedAt:   now,
		UpdatedAt:   now,
		UserName:    actor.FullName,
	}

	if err := s.Requests.CreateRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("persist request: %w", err)
	}

	if err := s.Ledger.Reserve(ctx, key, days); err != nil {
		return nil, err
	}

	return request, nil
}

// =============================================================================
// APPROVE / REJECT / CANCEL
// =============================================================================

// Approve transitions a pending request to approved and commits its days.
// Only admins may approve.
func (s *RequestService) Approve(ctx context.Context, actor identity.User, requestID, notes string) (*Request, error) {
	if !actor.CanApprove() {
		return nil, ErrPermissionDenied
	}

	request, err := s.pendingRequest(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	changed, err := s.Requests.UpdateRequestStatus(ctx, request.ID, StatusPending, StatusApproved, StatusMeta{
		ActorID: actor.ID,
		At:      now,
		Notes:   notes,
	})
	if err != nil {
		return nil, fmt.Errorf("approve request: %w", err)
	}
	if !changed {
		return nil, ErrRequestAlreadyProcessed
	}

	if err := s.Ledger.Commit(ctx, request.BalanceKey(), request.DaysCount); err != nil {
		return nil, err
	}

	request.Status = StatusApproved
	request.ApprovedBy = actor.ID
	request.ApprovedAt = &now
	request.Notes = notes
	request.UpdatedAt = now
	return request, nil
}

// Reject transitions a pending request to rejected and releases its days.
// Only admins may reject.
func (s *RequestService) Reject(ctx context.Context, actor identity.User, requestID, reason string) (*Request, error) {
	if !actor.CanApprove() {
		return nil, ErrPermissionDenied
	}

	request, err := s.pendingRequest(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	changed, err := s.Requests.UpdateRequestStatus(ctx, request.ID, StatusPending, StatusRejected, StatusMeta{
		ActorID: actor.ID,
		At:      now,
		Reason:  reason,
	})
	if err != nil {
		return nil, fmt.Errorf("reject request: %w", err)
	}
	if !changed {
		return nil, ErrRequestAlreadyProcessed
	}

	if err := s.Ledger.Release(ctx, request.BalanceKey(), request.DaysCount); err != nil {
		return nil, err
	}

	request.Status = StatusRejected
	request.RejectedBy = actor.ID
	request.RejectedAt = &now
	request.RejectionReason = reason
	request.UpdatedAt = now
	return request, nil
}

// Cancel withdraws the actor's own pending request and releases its days.
func (s *RequestService) Cancel(ctx context.Context, actor identity.User, requestID string) (*Request, error) {
	request, err := s.pendingRequest(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}
	if request.UserID != actor.ID {
		return nil, ErrNotRequestOwner
	}

	now := s.now()
	changed, err := s.Requests.UpdateRequestStatus(ctx, request.ID, StatusPending, StatusCancelled, StatusMeta{
		ActorID: actor.ID,
		At:      now,
	})
	if err != nil {
		return nil, fmt.Errorf("cancel request: %w", err)
	}
	if !changed {
		return nil, ErrRequestAlreadyProcessed
	}

	if err := s.Ledger.Release(ctx, request.BalanceKey(), request.DaysCount); err != nil {
		return nil, err
	}

	request.Status = StatusCancelled
	request.CancelledAt = &now
	request.UpdatedAt = now
	return request, nil
}

// pendingRequest loads a request within the actor's tenant and checks it is
// still pending.
func (s *RequestService) pendingRequest(ctx context.Context, actor identity.User, requestID string) (*Request, error) {
	request, err := s.Requests.GetRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("load request: %w", err)
	}
	if request == nil || request.TenantID != actor.TenantID {
		return nil, ErrRequestNotFound
	}
	if request.Status != StatusPending {
		return nil, ErrRequestAlreadyProcessed
	}
	return request, nil
}
