/*
handlers_test.go - HTTP round-trip tests for the API

Tests drive the real router with httptest against an in-memory store:
token issuance, the request lifecycle, and the error status mapping.
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Imrushtempo/Modulsite-SzabiTervezo/calendar"
	"github.com/Imrushtempo/Modulsite-SzabiTervezo/identity"
	"github.com/Imrushtempo/Modulsite-SzabiTervezo/leave"
	"github.com/Imrushtempo/Modulsite-SzabiTervezo/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// The clock is pinned to 2025-03-01 so date validations are deterministic.
var fixedNow = func() time.Time { return calendar.Date(2025, time.March, 1) }

func newTestServer(t *testing.T) (*httptest.Server, *Handler) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	// The demo seeder also plants sample requests; these tests want an empty
	// ledger, so the fixture loads the demo accounts directly with flat
	// 25-day balances for 2025.
	ctx := context.Background()
	for _, lt := range seedLeaveTypes {
		require.NoError(t, store.SaveLeaveType(ctx, leave.LeaveType{
			ID: lt.id, TenantID: DemoTenantID, Name: lt.name, Code: lt.code,
			IsPaid: lt.isPaid, Color: lt.color, RequiresApproval: true,
		}))
	}
	for _, u := range seedUsers {
		require.NoError(t, store.SaveUser(ctx, identity.User{
			ID: u.id, TenantID: DemoTenantID, Email: u.email, FullName: u.name,
			Role: u.role, IsActive: true,
		}))
		for _, lt := range seedLeaveTypes {
			require.NoError(t, store.SaveBalance(ctx, leave.Balance{
				ID: fmt.Sprintf("bal-%s-%s", u.id, lt.code), TenantID: DemoTenantID,
				UserID: u.id, LeaveTypeID: lt.id, Year: 2025,
				TotalDays: decimal.NewFromInt(25),
			}))
		}
	}

	tokens := identity.NewTokenProvider("test-secret", "test", time.Hour)
	h := NewHandler(store, tokens)
	h.Service.Now = fixedNow

	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, h
}

func login(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()
	resp := doJSON(t, srv, http.MethodPost, "/api/auth/token", "", TokenRequest{Email: email})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tr TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tr))
	require.NotEmpty(t, tr.Token)
	return tr.Token
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeRequestDTO(t *testing.T, resp *http.Response) RequestDTO {
	t.Helper()
	defer resp.Body.Close()
	var dto RequestDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dto))
	return dto
}

// =============================================================================
// AUTH
// =============================================================================

func TestIssueToken_KnownAccount(t *testing.T) {
	srv, _ := newTestServer(t)
	token := login(t, srv, "kiss.judit@demo.hu")
	assert.NotEmpty(t, token)
}

func TestIssueToken_UnknownAccount_Unauthorized(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/api/auth/token", "", TokenRequest{Email: "nobody@demo.hu"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoute_WithoutToken_Unauthorized(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, srv, http.MethodGet, "/api/leave-types", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// =============================================================================
// CATALOGUE AND BALANCES
// =============================================================================

func TestListLeaveTypes(t *testing.T) {
	srv, _ := newTestServer(t)
	token := login(t, srv, "kiss.judit@demo.hu")

	resp := doJSON(t, srv, http.MethodGet, "/api/leave-types", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var types []LeaveTypeDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&types))
	assert.Len(t, types, 3)
}

func TestListBalances_DerivesRemaining(t *testing.T) {
	srv, _ := newTestServer(t)
	token := login(t, srv, "kiss.judit@demo.hu")

	resp := doJSON(t, srv, http.MethodGet, "/api/balances?year=2025", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var balances []BalanceDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&balances))
	require.Len(t, balances, 3)
	for _, b := range balances {
		assert.Equal(t, 25.0, b.TotalDays)
		assert.Equal(t, 25.0, b.RemainingDays)
		require.NotNil(t, b.LeaveType)
	}
}

func TestListBalances_OtherUser_ForbiddenForStaff(t *testing.T) {
	srv, _ := newTestServer(t)
	token := login(t, srv, "kiss.judit@demo.hu")

	resp := doJSON(t, srv, http.MethodGet, "/api/balances?year=2025&user_id=user-nagy-gabor", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// =============================================================================
// REQUEST LIFECYCLE OVER HTTP
// =============================================================================

func TestRequestLifecycle_CreateApprove(t *testing.T) {
	// GIVEN: Judit files 5 days, Ádám (company_admin) approves
	// THEN: Status codes 201/200, balance moves 5 days into used

	srv, _ := newTestServer(t)
	staff := login(t, srv, "kiss.judit@demo.hu")
	admin := login(t, srv, "toth.adam@demo.hu")

	created := decodeRequestDTO(t, doJSON(t, srv, http.MethodPost, "/api/requests", staff, CreateRequestBody{
		LeaveTypeID: "type-annual",
		StartDate:   "2025-04-07",
		EndDate:     "2025-04-11",
		Reason:      "családi program",
	}))
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, 5, created.DaysCount)

	resp := doJSON(t, srv, http.MethodPost, "/api/requests/"+created.ID+"/approve", admin, DecisionBody{Notes: "rendben"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	approved := decodeRequestDTO(t, resp)
	assert.Equal(t, "approved", approved.Status)
	require.NotNil(t, approved.ApprovedAt)

	resp = doJSON(t, srv, http.MethodGet, "/api/balances?year=2025", staff, nil)
	defer resp.Body.Close()
	var balances []BalanceDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&balances))
	for _, b := range balances {
		if b.LeaveType.Code == "annual" {
			assert.Equal(t, 5.0, b.UsedDays)
			assert.Equal(t, 0.0, b.PendingDays)
			assert.Equal(t, 20.0, b.RemainingDays)
		}
	}
}

func TestCreateRequest_ValidationError_BadRequest(t *testing.T) {
	srv, _ := newTestServer(t)
	staff := login(t, srv, "kiss.judit@demo.hu")

	// Weekend-only range
	resp := doJSON(t, srv, http.MethodPost, "/api/requests", staff, CreateRequestBody{
		LeaveTypeID: "type-annual",
		StartDate:   "2025-04-05",
		EndDate:     "2025-04-06",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Contains(t, errResp.Error, "weekends or holidays")
}

func TestApprove_ByStaff_Forbidden(t *testing.T) {
	srv, _ := newTestServer(t)
	staff := login(t, srv, "kiss.judit@demo.hu")

	created := decodeRequestDTO(t, doJSON(t, srv, http.MethodPost, "/api/requests", staff, CreateRequestBody{
		LeaveTypeID: "type-annual", StartDate: "2025-04-07", EndDate: "2025-04-08",
	}))

	resp := doJSON(t, srv, http.MethodPost, "/api/requests/"+created.ID+"/approve", staff, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestApprove_Twice_Conflict(t *testing.T) {
	srv, _ := newTestServer(t)
	staff := login(t, srv, "kiss.judit@demo.hu")
	admin := login(t, srv, "toth.adam@demo.hu")

	created := decodeRequestDTO(t, doJSON(t, srv, http.MethodPost, "/api/requests", staff, CreateRequestBody{
		LeaveTypeID: "type-annual", StartDate: "2025-04-07", EndDate: "2025-04-08",
	}))

	first := doJSON(t, srv, http.MethodPost, "/api/requests/"+created.ID+"/approve", admin, nil)
	first.Body.Close()
	require.Equal(t, http.StatusOK, first.StatusCode)

	second := doJSON(t, srv, http.MethodPost, "/api/requests/"+created.ID+"/approve", admin, nil)
	defer second.Body.Close()
	assert.Equal(t, http.StatusConflict, second.StatusCode)
}

func TestApprove_UnknownRequest_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	admin := login(t, srv, "toth.adam@demo.hu")

	resp := doJSON(t, srv, http.MethodPost, "/api/requests/req-nope/approve", admin, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReject_ReleasesBalance(t *testing.T) {
	srv, _ := newTestServer(t)
	staff := login(t, srv, "kiss.judit@demo.hu")
	admin := login(t, srv, "toth.adam@demo.hu")

	created := decodeRequestDTO(t, doJSON(t, srv, http.MethodPost, "/api/requests", staff, CreateRequestBody{
		LeaveTypeID: "type-annual", StartDate: "2025-04-07", EndDate: "2025-04-11",
	}))

	resp := doJSON(t, srv, http.MethodPost, "/api/requests/"+created.ID+"/reject", admin,
		DecisionBody{Reason: "létszámhiány"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rejected := decodeRequestDTO(t, resp)
	assert.Equal(t, "rejected", rejected.Status)
	assert.Equal(t, "létszámhiány", rejected.RejectionReason)

	resp = doJSON(t, srv, http.MethodGet, "/api/balances?year=2025", staff, nil)
	defer resp.Body.Close()
	var balances []BalanceDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&balances))
	for _, b := range balances {
		if b.LeaveType.Code == "annual" {
			assert.Equal(t, 25.0, b.RemainingDays)
		}
	}
}

func TestCancel_OwnRequest(t *testing.T) {
	srv, _ := newTestServer(t)
	staff := login(t, srv, "kiss.judit@demo.hu")

	created := decodeRequestDTO(t, doJSON(t, srv, http.MethodPost, "/api/requests", staff, CreateRequestBody{
		LeaveTypeID: "type-annual", StartDate: "2025-04-07", EndDate: "2025-04-08",
	}))

	resp := doJSON(t, srv, http.MethodPost, "/api/requests/"+created.ID+"/cancel", staff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cancelled := decodeRequestDTO(t, resp)
	assert.Equal(t, "cancelled", cancelled.Status)
}

func TestListRequests_StaffSeeOnlyTheirOwn(t *testing.T) {
	srv, _ := newTestServer(t)
	judit := login(t, srv, "kiss.judit@demo.hu")
	gabor := login(t, srv, "nagy.gabor@demo.hu")

	doJSON(t, srv, http.MethodPost, "/api/requests", judit, CreateRequestBody{
		LeaveTypeID: "type-annual", StartDate: "2025-04-07", EndDate: "2025-04-08",
	}).Body.Close()
	doJSON(t, srv, http.MethodPost, "/api/requests", gabor, CreateRequestBody{
		LeaveTypeID: "type-annual", StartDate: "2025-04-09", EndDate: "2025-04-10",
	}).Body.Close()

	resp := doJSON(t, srv, http.MethodGet, "/api/requests", judit, nil)
	defer resp.Body.Close()
	var requests []RequestDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&requests))
	require.Len(t, requests, 1)
	assert.Equal(t, "user-kiss-judit", requests[0].UserID)
}

func TestPendingQueue_AdminOnly(t *testing.T) {
	srv, _ := newTestServer(t)
	staff := login(t, srv, "kiss.judit@demo.hu")
	admin := login(t, srv, "toth.adam@demo.hu")

	doJSON(t, srv, http.MethodPost, "/api/requests", staff, CreateRequestBody{
		LeaveTypeID: "type-annual", StartDate: "2025-04-07", EndDate: "2025-04-08",
	}).Body.Close()

	forbidden := doJSON(t, srv, http.MethodGet, "/api/requests/pending", staff, nil)
	forbidden.Body.Close()
	assert.Equal(t, http.StatusForbidden, forbidden.StatusCode)

	resp := doJSON(t, srv, http.MethodGet, "/api/requests/pending", admin, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var queue []RequestDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&queue))
	assert.Len(t, queue, 1)
}

// =============================================================================
// CALENDAR ENDPOINTS
// =============================================================================

func TestListHolidays(t *testing.T) {
	srv, _ := newTestServer(t)
	token := login(t, srv, "kiss.judit@demo.hu")

	resp := doJSON(t, srv, http.MethodGet, "/api/holidays/2025", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var holidays []HolidayDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&holidays))
	assert.Len(t, holidays, 11)
	assert.Equal(t, "2025-01-01", holidays[0].Date)
	assert.Equal(t, "Újév", holidays[0].Name)
}

func TestCountWorkdays(t *testing.T) {
	srv, _ := newTestServer(t)
	token := login(t, srv, "kiss.judit@demo.hu")

	// Easter week 2025: Good Friday and Easter Monday excluded
	resp := doJSON(t, srv, http.MethodGet, "/api/workdays?start=2025-04-17&end=2025-04-22", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dto WorkdaysDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dto))
	assert.Equal(t, 2, dto.WorkingDays)
}

func TestMonthCalendar_MarksHolidayAndLeave(t *testing.T) {
	srv, _ := newTestServer(t)
	staff := login(t, srv, "kiss.judit@demo.hu")

	doJSON(t, srv, http.MethodPost, "/api/requests", staff, CreateRequestBody{
		LeaveTypeID: "type-annual", StartDate: "2025-03-17", EndDate: "2025-03-18",
	}).Body.Close()

	resp := doJSON(t, srv, http.MethodGet, "/api/calendar/2025/3", staff, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var month struct {
		Year  int              `json:"year"`
		Month int              `json:"month"`
		Days  []CalendarDayDTO `json:"days"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&month))
	require.Len(t, month.Days, 31)

	// March 15 is a national holiday
	mar15 := month.Days[14]
	assert.Equal(t, "1848-as forradalom", mar15.Holiday)
	assert.False(t, mar15.WorkingDay)

	// March 17 carries Judit's pending leave
	mar17 := month.Days[16]
	require.Len(t, mar17.OnLeave, 1)
	assert.Equal(t, "Kiss Judit", mar17.OnLeave[0].UserName)
}

func TestCheckConflicts_TwoPeopleOverlap(t *testing.T) {
	srv, _ := newTestServer(t)
	judit := login(t, srv, "kiss.judit@demo.hu")
	gabor := login(t, srv, "nagy.gabor@demo.hu")
	admin := login(t, srv, "toth.adam@demo.hu")

	doJSON(t, srv, http.MethodPost, "/api/requests", judit, CreateRequestBody{
		LeaveTypeID: "type-annual", StartDate: "2025-04-07", EndDate: "2025-04-09",
	}).Body.Close()
	doJSON(t, srv, http.MethodPost, "/api/requests", gabor, CreateRequestBody{
		LeaveTypeID: "type-annual", StartDate: "2025-04-08", EndDate: "2025-04-10",
	}).Body.Close()

	resp := doJSON(t, srv, http.MethodGet, "/api/conflicts?start=2025-04-07&end=2025-04-11", admin, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report ConflictReportDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, 2, report.TotalConflictDays)
	assert.Equal(t, 2, report.MaxPeopleOnLeave)
	assert.Equal(t, "low", report.Severity)
}
