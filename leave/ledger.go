/*
ledger.go - Balance ledger operations

PURPOSE:
  Applies request lifecycle events to the matching balance row:

    reserve(days)  on creation:  pending += days
    commit(days)   on approval:  pending -= days (floored), used += days
    release(days)  on rejection/cancellation: pending -= days (floored)

  Every mutation is a single atomic increment executed by the store; there
  is no read-then-write round trip, so concurrent lifecycle events on the
  same row cannot lose an update.

FLOOR AT ZERO:
  pending_days is clamped at zero on decrement. The clamp is a defensive
  guard against drift from externally edited rows; it is not a substitute
  for correct accounting.
*/
package leave

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// BalanceLedger mutates balance rows in response to lifecycle events.
type BalanceLedger struct {
	Store BalanceStore
}

// NewBalanceLedger creates a ledger over the given store.
func NewBalanceLedger(store BalanceStore) *BalanceLedger {
	return &BalanceLedger{Store: store}
}

// Balance returns the balance row for the key, or nil when absent.
func (l *BalanceLedger) Balance(ctx context.Context, key BalanceKey) (*Balance, error) {
	return l.Store.GetBalance(ctx, key)
}

// Reserve holds days for a newly created pending request.
func (l *BalanceLedger) Reserve(ctx context.Context, key BalanceKey, days int) error {
	if err := l.Store.ApplyBalanceDelta(ctx, key, decimal.NewFromInt(int64(days)), decimal.Zero); err != nil {
		return fmt.Errorf("reserve %d day(s): %w", days, err)
	}
	return nil
}

// Commit converts a request's held days into used days on approval.
func (l *BalanceLedger) Commit(ctx context.Context, key BalanceKey, days int) error {
	d := decimal.NewFromInt(int64(days))
	if err := l.Store.ApplyBalanceDelta(ctx, key, d.Neg(), d); err != nil {
		return fmt.Errorf("commit %d day(s): %w", days, err)
	}
	return nil
}

// Release returns a request's held days on rejection or cancellation.
func (l *BalanceLedger) Release(ctx context.Context, key BalanceKey, days int) error {
	if err := l.Store.ApplyBalanceDelta(ctx, key, decimal.NewFromInt(int64(days)).Neg(), decimal.Zero); err != nil {
		return fmt.Errorf("release %d day(s): %w", days, err)
	}
	return nil
}
