/*
seed_test.go - Demo tenant seeding

Verifies the first-start dataset: accounts, catalogue, balances, the sample
requests in every lifecycle state, and that re-running the seeder is a no-op.
*/
package api

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Imrushtempo/Modulsite-SzabiTervezo/leave"
	"github.com/Imrushtempo/Modulsite-SzabiTervezo/store/sqlite"
)

func newSeededStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, SeedDemoTenant(context.Background(), store))
	return store
}

func TestSeedDemoTenant_LoadsAccountsAndCatalogue(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	users, err := store.ListUsers(ctx, DemoTenantID)
	require.NoError(t, err)
	assert.Len(t, users, 4)

	types, err := store.ListLeaveTypes(ctx, DemoTenantID)
	require.NoError(t, err)
	assert.Len(t, types, 3)
}

func TestSeedDemoTenant_PlantsSampleRequests(t *testing.T) {
	// GIVEN: a freshly seeded database
	// THEN: sample requests exist and the approved one carries audit fields

	store := newSeededStore(t)
	ctx := context.Background()

	requests, err := store.ListRequests(ctx, DemoTenantID, leave.RequestFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, requests)

	// The February family holiday range always contains working days, so
	// this request is seeded in every year.
	approved, err := store.GetRequest(ctx, "req-csaladi-nyaralas")
	require.NoError(t, err)
	require.NotNil(t, approved)
	assert.Equal(t, leave.StatusApproved, approved.Status)
	assert.Equal(t, "user-toth-adam", approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)
	assert.Positive(t, approved.DaysCount)
}

func TestSeedDemoTenant_BalancesMirrorSampleRequests(t *testing.T) {
	// GIVEN: the seeded sample requests
	// THEN: each balance row holds the matching reservations - approved days
	//       in used, pending days in pending, rejected days in neither

	store := newSeededStore(t)
	ctx := context.Background()

	requests, err := store.ListRequests(ctx, DemoTenantID, leave.RequestFilter{})
	require.NoError(t, err)

	wantUsed := make(map[leave.BalanceKey]decimal.Decimal)
	wantPending := make(map[leave.BalanceKey]decimal.Decimal)
	for _, r := range requests {
		days := decimal.NewFromInt(int64(r.DaysCount))
		switch r.Status {
		case leave.StatusApproved:
			wantUsed[r.BalanceKey()] = wantUsed[r.BalanceKey()].Add(days)
		case leave.StatusPending:
			wantPending[r.BalanceKey()] = wantPending[r.BalanceKey()].Add(days)
		}
	}

	for key, want := range wantUsed {
		bal, err := store.GetBalance(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, bal)
		assert.True(t, bal.UsedDays.Equal(want),
			"used days for %s: got %s want %s", key.UserID, bal.UsedDays, want)
	}
	for key, want := range wantPending {
		bal, err := store.GetBalance(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, bal)
		assert.True(t, bal.PendingDays.Equal(want),
			"pending days for %s: got %s want %s", key.UserID, bal.PendingDays, want)
	}
}

func TestSeedDemoTenant_SecondRunIsNoOp(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	before, err := store.ListRequests(ctx, DemoTenantID, leave.RequestFilter{})
	require.NoError(t, err)

	require.NoError(t, SeedDemoTenant(ctx, store))

	after, err := store.ListRequests(ctx, DemoTenantID, leave.RequestFilter{})
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}
