/*
handlers.go - HTTP API handlers for the leave planner

PURPOSE:
  Exposes the leave core via REST API. Handles HTTP request/response, JSON
  serialization, and delegates to domain logic.

ENDPOINTS:
  Auth:
    POST   /api/auth/token              Demo login: email -> bearer token

  Catalogue and balances:
    GET    /api/leave-types             Tenant's leave types
    GET    /api/balances                Acting user's balances for a year

  Requests:
    GET    /api/requests                List requests (staff see their own)
    POST   /api/requests                File a new request
    GET    /api/requests/pending        Manager approval queue
    POST   /api/requests/{id}/approve   Approve a pending request
    POST   /api/requests/{id}/reject    Reject a pending request
    POST   /api/requests/{id}/cancel    Withdraw own pending request

  Calendar:
    GET    /api/holidays/{year}         Public holidays of a year
    GET    /api/workdays                Working days in a range
    GET    /api/calendar/{year}/{month} Month view with leave overlay
    GET    /api/conflicts               Team availability check

ERROR HANDLING:
  Domain errors map to HTTP status:
  - 400: Validation failures, insufficient balance
  - 401: Missing/invalid token
  - 403: Role or ownership denied
  - 404: Request not found (within the actor's tenant)
  - 409: Request no longer pending
  - 500: Everything else, with the detail kept out of the response

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - leave/request.go: The lifecycle logic these handlers call
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Imrushtempo/Modulsite-SzabiTervezo/calendar"
	"github.com/Imrushtempo/Modulsite-SzabiTervezo/identity"
	"github.com/Imrushtempo/Modulsite-SzabiTervezo/leave"
	"github.com/Imrushtempo/Modulsite-SzabiTervezo/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Service  *leave.RequestService
	Identity *identity.TokenProvider
	Calendar *calendar.Calendar
}

// NewHandler wires a handler over the given store and token provider.
func NewHandler(store *sqlite.Store, tokens *identity.TokenProvider) *Handler {
	cal := calendar.Hungarian()
	return &Handler{
		Store:    store,
		Identity: tokens,
		Calendar: cal,
		Service: &leave.RequestService{
			Requests: store,
			Types:    store,
			Ledger:   leave.NewBalanceLedger(store),
			Calendar: cal,
		},
	}
}

// =============================================================================
// AUTH
// =============================================================================

// IssueToken is the demo login: exchange a known email for a bearer token.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.Store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up user", nil)
		return
	}
	if user == nil || !user.IsActive {
		writeError(w, http.StatusUnauthorized, "Unknown or inactive account", nil)
		return
	}

	token, err := h.Identity.IssueToken(*user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue token", nil)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		Token: token,
		User: UserDTO{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     string(user.Role),
		},
	})
}

// =============================================================================
// LEAVE TYPES / BALANCES
// =============================================================================

// ListLeaveTypes returns the tenant's leave type catalogue.
func (h *Handler) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	actor := actingUser(r)

	types, err := h.Store.ListLeaveTypes(r.Context(), actor.TenantID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leave types", nil)
		return
	}

	dtos := make([]LeaveTypeDTO, len(types))
	for i, lt := range types {
		dtos[i] = *toLeaveTypeDTO(&lt)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListBalances returns balances for a year. Staff see their own; admins may
// pass user_id to inspect someone else's.
func (h *Handler) ListBalances(w http.ResponseWriter, r *http.Request) {
	actor := actingUser(r)

	year := time.Now().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", nil)
			return
		}
		year = parsed
	}

	userID := actor.ID
	if requested := r.URL.Query().Get("user_id"); requested != "" && requested != actor.ID {
		if !actor.CanApprove() {
			writeError(w, http.StatusForbidden, "Cannot view another user's balances", nil)
			return
		}
		userID = requested
	}

	balances, err := h.Store.ListBalances(r.Context(), actor.TenantID, userID, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list balances", nil)
		return
	}

	dtos := make([]BalanceDTO, len(balances))
	for i, b := range balances {
		dtos[i] = toBalanceDTO(b)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// REQUEST HANDLERS
// =============================================================================

// ListRequests returns the tenant's requests. Staff are restricted to their
// own; admins see everyone's and may filter by user_id and status.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	actor := actingUser(r)

	filter := leave.RequestFilter{
		UserID: r.URL.Query().Get("user_id"),
		Status: leave.Status(r.URL.Query().Get("status")),
	}
	if !actor.CanApprove() {
		filter.UserID = actor.ID
	}

	requests, err := h.Store.ListRequests(r.Context(), actor.TenantID, filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list requests", nil)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTOs(requests))
}

// ListPendingRequests is the manager approval queue.
func (h *Handler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	actor := actingUser(r)
	if !actor.CanApprove() {
		writeError(w, http.StatusForbidden, "Managers only", nil)
		return
	}

	requests, err := h.Store.ListRequests(r.Context(), actor.TenantID,
		leave.RequestFilter{Status: leave.StatusPending})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list pending requests", nil)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTOs(requests))
}

// CreateRequest files new leave for the acting user.
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var body CreateRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	request, err := h.Service.Create(r.Context(), actingUser(r), leave.CreateInput{
		LeaveTypeID: body.LeaveTypeID,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
		Reason:      body.Reason,
	})
	if err != nil {
		writeLeaveError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRequestDTO(*request))
}

// ApproveRequest approves a pending request.
func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	var body DecisionBody
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	request, err := h.Service.Approve(r.Context(), actingUser(r), chi.URLParam(r, "id"), body.Notes)
	if err != nil {
		writeLeaveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTO(*request))
}

// RejectRequest rejects a pending request.
func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	var body DecisionBody
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	request, err := h.Service.Reject(r.Context(), actingUser(r), chi.URLParam(r, "id"), body.Reason)
	if err != nil {
		writeLeaveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTO(*request))
}

// CancelRequest withdraws the actor's own pending request.
func (h *Handler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	request, err := h.Service.Cancel(r.Context(), actingUser(r), chi.URLParam(r, "id"))
	if err != nil {
		writeLeaveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTO(*request))
}

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// ListHolidays returns the public holidays of a year.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", nil)
		return
	}

	holidays := h.Calendar.Holidays(year)
	dtos := make([]HolidayDTO, len(holidays))
	for i, hol := range holidays {
		dtos[i] = HolidayDTO{Date: hol.Date, Name: hol.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CountWorkdays returns the inclusive working-day count for a range.
func (h *Handler) CountWorkdays(w http.ResponseWriter, r *http.Request) {
	start, end, err := rangeParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	writeJSON(w, http.StatusOK, WorkdaysDTO{
		StartDate:   calendar.FormatDate(start),
		EndDate:     calendar.FormatDate(end),
		WorkingDays: h.Calendar.WorkingDays(start, end),
	})
}

// MonthCalendar returns one month with holidays and the tenant's approved
// and pending leave overlaid per day.
func (h *Handler) MonthCalendar(w http.ResponseWriter, r *http.Request) {
	actor := actingUser(r)

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", nil)
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Invalid month", nil)
		return
	}

	first := calendar.Date(year, time.Month(month), 1)
	last := first.AddDate(0, 1, -1)

	requests, err := h.Store.ListRequestsInRange(r.Context(), actor.TenantID, first, last)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load requests", nil)
		return
	}

	var days []CalendarDayDTO
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		dto := CalendarDayDTO{
			Date:       calendar.FormatDate(day),
			Weekday:    day.Weekday().String(),
			WorkingDay: h.Calendar.IsWorkingDay(day),
		}
		if name, ok := h.Calendar.Holiday(day); ok {
			dto.Holiday = name
		}
		for _, req := range requests {
			if req.Covers(day) {
				dto.OnLeave = append(dto.OnLeave, toRequestDTO(req))
			}
		}
		days = append(days, dto)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"year":  year,
		"month": month,
		"days":  days,
	})
}

// CheckConflicts reports the days in a range where several people are out.
func (h *Handler) CheckConflicts(w http.ResponseWriter, r *http.Request) {
	start, end, err := rangeParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	report, err := h.Service.CheckConflicts(r.Context(), actingUser(r), start, end)
	if err != nil {
		writeLeaveError(w, err)
		return
	}

	dto := ConflictReportDTO{
		Requests:          toRequestDTOs(report.Requests),
		MaxPeopleOnLeave:  report.Summary.MaxPeopleOnLeave,
		TotalConflictDays: report.Summary.TotalConflictDays,
		Severity:          report.Summary.Severity,
		Warnings:          report.Warnings,
	}
	dto.Conflicts = make([]ConflictDayDTO, len(report.Conflicts))
	for i, c := range report.Conflicts {
		dto.Conflicts[i] = ConflictDayDTO{
			Date:        c.Date,
			PeopleCount: c.PeopleCount,
			UserNames:   c.UserNames,
		}
	}
	writeJSON(w, http.StatusOK, dto)
}

func rangeParams(r *http.Request) (start, end time.Time, err error) {
	start, err = calendar.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		return start, end, fmt.Errorf("invalid start date (use YYYY-MM-DD)")
	}
	end, err = calendar.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		return start, end, fmt.Errorf("invalid end date (use YYYY-MM-DD)")
	}
	return start, end, nil
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeLeaveError maps domain errors onto HTTP status codes. Client errors
// surface their message verbatim; everything else stays generic.
func writeLeaveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, leave.ErrValidation), errors.Is(err, leave.ErrInsufficientBalance):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, leave.ErrRequestNotFound):
		writeError(w, http.StatusNotFound, "Request not found", nil)
	case errors.Is(err, leave.ErrRequestAlreadyProcessed):
		writeError(w, http.StatusConflict, "Request already processed", nil)
	case errors.Is(err, leave.ErrPermissionDenied), errors.Is(err, leave.ErrNotRequestOwner):
		writeError(w, http.StatusForbidden, err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", nil)
	}
}
