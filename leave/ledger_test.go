package leave_test

import (
	"context"
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

const (
	testTenant  = "tenant-1"
	testUserID  = "user-anna"
	testAdminID = "user-boss"
	testTypeID  = "type-annual"
	testYear    = 2025
)

// testClock keeps "today" fixed so the past-date validation is deterministic.
var testClock = func() time.Time { return calendar.Date(2025, time.March, 1) }

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, identity.User{
		ID: testUserID, TenantID: testTenant, Email: "anna@example.hu",
		FullName: "Kiss Anna", Role: identity.RoleStaff, IsActive: true,
	}))
	require.NoError(t, store.SaveUser(ctx, identity.User{
		ID: testAdminID, TenantID: testTenant, Email: "boss@example.hu",
		FullName: "Tóth Ádám", Role: identity.RoleCompanyAdmin, IsActive: true,
	}))
	require.NoError(t, store.SaveLeaveType(ctx, leave.LeaveType{
		ID: testTypeID, TenantID: testTenant, Name: "Éves szabadság", Code: "annual",
		IsPaid: true, RequiresApproval: true,
	}))
	require.NoError(t, store.SaveBalance(ctx, leave.Balance{
		ID: "bal-1", TenantID: testTenant, UserID: testUserID,
		LeaveTypeID: testTypeID, Year: testYear,
		TotalDays: decimal.NewFromInt(25),
	}))

	return store
}

func newTestService(t *testing.T) (*leave.RequestService, *sqlite.Store) {
	store := newTestStore(t)
	svc := &leave.RequestService{
		Requests: store,
		Types:    store,
		Ledger:   leave.NewBalanceLedger(store),
		Calendar: calendar.Hungarian(),
		Now:      testClock,
	}
	return svc, store
}

func staffUser() identity.User {
	return identity.User{
		ID: testUserID, TenantID: testTenant, Email: "anna@example.hu",
		FullName: "Kiss Anna", Role: identity.RoleStaff, IsActive: true,
	}
}

func adminUser() identity.User {
	return identity.User{
		ID: testAdminID, TenantID: testTenant, Email: "boss@example.hu",
		FullName: "Tóth Ádám", Role: identity.RoleCompanyAdmin, IsActive: true,
	}
}

func testKey() leave.BalanceKey {
	return leave.BalanceKey{
		TenantID: testTenant, UserID: testUserID,
		LeaveTypeID: testTypeID, Year: testYear,
	}
}

func balanceDays(t *testing.T, store *sqlite.Store) (total, used, pending, remaining decimal.Decimal) {
	b, err := store.GetBalance(context.Background(), testKey())
	require.NoError(t, err)
	require.NotNil(t, b)
	return b.TotalDays, b.UsedDays, b.PendingDays, b.Remaining()
}

// =============================================================================
// LEDGER TESTS
// =============================================================================

func TestLedger_Reserve_HoldsPendingDays(t *testing.T) {
	// GIVEN: A balance of 25 total, nothing used or pending
	// WHEN: Reserving 5 days
	// THEN: pending = 5, remaining = 20, total and used unchanged

	_, store := newTestService(t)
	ledger := leave.NewBalanceLedger(store)
	ctx := context.Background()

	require.NoError(t, ledger.Reserve(ctx, testKey(), 5))

	total, used, pending, remaining := balanceDays(t, store)
	assert.True(t, total.Equal(decimal.NewFromInt(25)))
	assert.True(t, used.IsZero())
	assert.True(t, pending.Equal(decimal.NewFromInt(5)))
	assert.True(t, remaining.Equal(decimal.NewFromInt(20)))
}

func TestLedger_Commit_MovesPendingToUsed(t *testing.T) {
	// GIVEN: 5 days held as pending
	// WHEN: Committing those 5 days
	// THEN: pending = 0, used = 5, remaining = 20

	_, store := newTestService(t)
	ledger := leave.NewBalanceLedger(store)
	ctx := context.Background()

	require.NoError(t, ledger.Reserve(ctx, testKey(), 5))
	require.NoError(t, ledger.Commit(ctx, testKey(), 5))

	_, used, pending, remaining := balanceDays(t, store)
	assert.True(t, pending.IsZero())
	assert.True(t, used.Equal(decimal.NewFromInt(5)))
	assert.True(t, remaining.Equal(decimal.NewFromInt(20)))
}

func TestLedger_Release_ReturnsHeldDays(t *testing.T) {
	// GIVEN: 5 days held as pending
	// WHEN: Releasing them
	// THEN: The balance is back at 25 remaining, nothing used

	_, store := newTestService(t)
	ledger := leave.NewBalanceLedger(store)
	ctx := context.Background()

	require.NoError(t, ledger.Reserve(ctx, testKey(), 5))
	require.NoError(t, ledger.Release(ctx, testKey(), 5))

	_, used, pending, remaining := balanceDays(t, store)
	assert.True(t, pending.IsZero())
	assert.True(t, used.IsZero())
	assert.True(t, remaining.Equal(decimal.NewFromInt(25)))
}

func TestLedger_Release_FlooredAtZero(t *testing.T) {
	// GIVEN: 2 days pending
	// WHEN: Releasing 5 days (drifted accounting)
	// THEN: pending clamps at 0, never goes negative

	_, store := newTestService(t)
	ledger := leave.NewBalanceLedger(store)
	ctx := context.Background()

	require.NoError(t, ledger.Reserve(ctx, testKey(), 2))
	require.NoError(t, ledger.Release(ctx, testKey(), 5))

	_, _, pending, _ := balanceDays(t, store)
	assert.True(t, pending.IsZero())
}

func TestLedger_MissingRow_ReturnsBalanceNotFound(t *testing.T) {
	// GIVEN: No balance row for 2030
	// WHEN: Reserving against it
	// THEN: ErrBalanceNotFound

	_, store := newTestService(t)
	ledger := leave.NewBalanceLedger(store)

	key := testKey()
	key.Year = 2030
	err := ledger.Reserve(context.Background(), key, 1)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
}

func TestBalance_Remaining_ClampedAtZero(t *testing.T) {
	// GIVEN: An over-consumed balance (used > total)
	// THEN: Remaining reports 0, not a negative number

	b := &leave.Balance{
		TotalDays: decimal.NewFromInt(10),
		UsedDays:  decimal.NewFromInt(12),
	}
	assert.True(t, b.Remaining().IsZero())
}
