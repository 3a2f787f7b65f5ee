package service

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/carson-networks/finance-tracker/internal/cache"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// inlineProcessor runs actions directly against the mocked tables.
type inlineProcessor struct {
	writer *storage.Writer
}

func (p inlineProcessor) Process(ctx context.Context, action actions.IAction) error {
	return action.Perform(ctx, p.writer)
}

type fakeSigner struct{}

func (fakeSigner) Sign(userID int64, email string) (string, error) {
	return "token-for-" + email, nil
}

// fakeTotals mirrors the generation scheme of cache.Memcache in memory.
type fakeTotals struct {
	mu          sync.Mutex
	generations map[int64]int
	values      map[cache.Slot]decimal.Decimal
	invalidated []int64
}

func newFakeTotals() *fakeTotals {
	return &fakeTotals{
		generations: make(map[int64]int),
		values:      make(map[cache.Slot]decimal.Decimal),
	}
}

func (f *fakeTotals) Get(_ context.Context, userID int64, transactionType string) (decimal.Decimal, cache.Slot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slot := cache.Slot{
		UserID:          userID,
		TransactionType: transactionType,
		Generation:      strconv.Itoa(f.generations[userID]),
	}
	v, ok := f.values[slot]
	return v, slot, ok
}

func (f *fakeTotals) Set(_ context.Context, slot cache.Slot, total decimal.Decimal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[slot] = total
}

func (f *fakeTotals) Invalidate(_ context.Context, userID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generations[userID]++
	f.invalidated = append(f.invalidated, userID)
}

func (f *fakeTotals) seed(userID int64, transactionType string, total decimal.Decimal) {
	_, slot, _ := f.Get(context.Background(), userID, transactionType)
	f.Set(context.Background(), slot, total)
}

func (f *fakeTotals) cached(userID int64, transactionType string) bool {
	_, _, ok := f.Get(context.Background(), userID, transactionType)
	return ok
}

type testTables struct {
	users        *sqlconfig.MockIUserTable
	categories   *sqlconfig.MockICategoryTable
	transactions *sqlconfig.MockITransactionTable
	totals       *fakeTotals
}

// newTestService builds a Service whose reads and writes share one set of mocks.
func newTestService(t *testing.T) (*Service, testTables) {
	t.Helper()
	tables := testTables{
		users:        sqlconfig.NewMockIUserTable(t),
		categories:   sqlconfig.NewMockICategoryTable(t),
		transactions: sqlconfig.NewMockITransactionTable(t),
		totals:       newFakeTotals(),
	}
	store := &storage.Storage{Reader: &storage.Reader{
		Users:        tables.users,
		Categories:   tables.categories,
		Transactions: tables.transactions,
	}}
	writer := &storage.Writer{
		Users:        tables.users,
		Categories:   tables.categories,
		Transactions: tables.transactions,
	}
	svc := NewService(store, inlineProcessor{writer: writer}, tables.totals, fakeSigner{})
	svc.User.cost = bcrypt.MinCost
	return svc, tables
}

func ptr[T any](v T) *T {
	return &v
}
