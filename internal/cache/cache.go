// Package cache keeps per-user transaction totals by type tag so repeated
// sum queries skip the database.
package cache

import (
	"context"

	"github.com/shopspring/decimal"
)

// Slot names where a total computed after a miss belongs. It carries the
// user's cache generation at lookup time, so a total read before an
// invalidation is never served after it.
type Slot struct {
	UserID          int64
	TransactionType string
	Generation      string
}

// TotalsCache stores the sum of a user's transactions for one type tag.
// Failures are treated as misses; the database stays the source of truth.
type TotalsCache interface {
	Get(ctx context.Context, userID int64, transactionType string) (decimal.Decimal, Slot, bool)
	Set(ctx context.Context, slot Slot, total decimal.Decimal)
	// Invalidate drops every cached total of the user.
	Invalidate(ctx context.Context, userID int64)
}

// Noop never caches anything.
type Noop struct{}

var _ TotalsCache = Noop{}

func (Noop) Get(context.Context, int64, string) (decimal.Decimal, Slot, bool) {
	return decimal.Zero, Slot{}, false
}

func (Noop) Set(context.Context, Slot, decimal.Decimal) {}

func (Noop) Invalidate(context.Context, int64) {}
