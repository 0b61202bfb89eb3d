/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in the leave core, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/Imrushtempo/Modulsite-SzabiTervezo/calendar"
	"github.com/Imrushtempo/Modulsite-SzabiTervezo/leave"
)

// =============================================================================
// AUTH
// =============================================================================

// TokenRequest is the demo login request.
type TokenRequest struct {
	Email string `json:"email"`
}

// TokenResponse carries the issued bearer token.
type TokenResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// UserDTO represents a user in API responses.
type UserDTO struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// =============================================================================
// LEAVE TYPES / BALANCES
// =============================================================================

// LeaveTypeDTO represents a leave type in API responses.
type LeaveTypeDTO struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Code             string `json:"code"`
	IsPaid           bool   `json:"is_paid"`
	Color            string `json:"color,omitempty"`
	RequiresApproval bool   `json:"requires_approval"`
}

// BalanceDTO represents one balance row. Remaining is derived, never stored.
type BalanceDTO struct {
	ID            string        `json:"id"`
	Year          int           `json:"year"`
	LeaveType     *LeaveTypeDTO `json:"leave_type,omitempty"`
	TotalDays     float64       `json:"total_days"`
	UsedDays      float64       `json:"used_days"`
	PendingDays   float64       `json:"pending_days"`
	RemainingDays float64       `json:"remaining_days"`
}

// =============================================================================
// REQUESTS
// =============================================================================

// CreateRequestBody is the request to file new leave.
type CreateRequestBody struct {
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason,omitempty"`
}

// DecisionBody carries the optional text attached to an approval/rejection.
type DecisionBody struct {
	Notes  string `json:"notes,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// RequestDTO represents a leave request in API responses.
type RequestDTO struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	UserName        string  `json:"user_name,omitempty"`
	LeaveTypeID     string  `json:"leave_type_id"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	DaysCount       int     `json:"days_count"`
	Status          string  `json:"status"`
	Reason          string  `json:"reason,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	ApprovedBy      string  `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectedBy      string  `json:"rejected_by,omitempty"`
	RejectedAt      *string `json:"rejected_at,omitempty"`
	RejectionReason string  `json:"rejection_reason,omitempty"`
	CancelledAt     *string `json:"cancelled_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// =============================================================================
// CALENDAR / CONFLICTS
// =============================================================================

// HolidayDTO is one public holiday.
type HolidayDTO struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// CalendarDayDTO is one day of the month calendar view.
type CalendarDayDTO struct {
	Date       string       `json:"date"`
	Weekday    string       `json:"weekday"`
	WorkingDay bool         `json:"working_day"`
	Holiday    string       `json:"holiday,omitempty"`
	OnLeave    []RequestDTO `json:"on_leave,omitempty"`
}

// WorkdaysDTO is the working-day count for a range.
type WorkdaysDTO struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	WorkingDays int    `json:"working_days"`
}

// ConflictDayDTO is one day where several people are out.
type ConflictDayDTO struct {
	Date        string   `json:"date"`
	PeopleCount int      `json:"people_count"`
	UserNames   []string `json:"user_names"`
}

// ConflictReportDTO is the conflict check response.
type ConflictReportDTO struct {
	Conflicts         []ConflictDayDTO `json:"conflicts"`
	Requests          []RequestDTO     `json:"requests"`
	MaxPeopleOnLeave  int              `json:"max_people_on_leave"`
	TotalConflictDays int              `json:"total_conflict_days"`
	Severity          string           `json:"severity"`
	Warnings          []string         `json:"warnings,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toLeaveTypeDTO(lt *leave.LeaveType) *LeaveTypeDTO {
	if lt == nil {
		return nil
	}
	return &LeaveTypeDTO{
		ID:               lt.ID,
		Name:             lt.Name,
		Code:             lt.Code,
		IsPaid:           lt.IsPaid,
		Color:            lt.Color,
		RequiresApproval: lt.RequiresApproval,
	}
}

func toBalanceDTO(b leave.Balance) BalanceDTO {
	return BalanceDTO{
		ID:            b.ID,
		Year:          b.Year,
		LeaveType:     toLeaveTypeDTO(b.LeaveType),
		TotalDays:     b.TotalDays.InexactFloat64(),
		UsedDays:      b.UsedDays.InexactFloat64(),
		PendingDays:   b.PendingDays.InexactFloat64(),
		RemainingDays: b.Remaining().InexactFloat64(),
	}
}

func toRequestDTO(r leave.Request) RequestDTO {
	return RequestDTO{
		ID:              r.ID,
		UserID:          r.UserID,
		UserName:        r.UserName,
		LeaveTypeID:     r.LeaveTypeID,
		StartDate:       calendar.FormatDate(r.StartDate),
		EndDate:         calendar.FormatDate(r.EndDate),
		DaysCount:       r.DaysCount,
		Status:          string(r.Status),
		Reason:          r.Reason,
		Notes:           r.Notes,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      rfc3339(r.ApprovedAt),
		RejectedBy:      r.RejectedBy,
		RejectedAt:      rfc3339(r.RejectedAt),
		RejectionReason: r.RejectionReason,
		CancelledAt:     rfc3339(r.CancelledAt),
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
}

func toRequestDTOs(requests []leave.Request) []RequestDTO {
	dtos := make([]RequestDTO, len(requests))
	for i, r := range requests {
		dtos[i] = toRequestDTO(r)
	}
	return dtos
}

func rfc3339(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
