package service

import (
	"context"

	"github.com/carson-networks/finance-tracker/internal/cache"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// actionProcessor runs a mutation inside a database transaction.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

type tokenSigner interface {
	Sign(userID int64, email string) (string, error)
}

// Service holds all business logic services.
type Service struct {
	User        *UserService
	Category    *CategoryService
	Transaction *TransactionService
}

// NewService wires the services. Reads go through store, mutations through op.
func NewService(store *storage.Storage, op actionProcessor, totals cache.TotalsCache, tokens tokenSigner) *Service {
	if totals == nil {
		totals = cache.Noop{}
	}
	return &Service{
		User:        NewUserService(store.Reader, op, tokens),
		Category:    NewCategoryService(store.Reader, op),
		Transaction: NewTransactionService(store.Reader, op, totals),
	}
}

// UpdateResult reports how many rows an update touched.
type UpdateResult struct {
	Affected int64
}

// DeleteResult reports how many rows a removal touched.
type DeleteResult struct {
	Affected int64
}
