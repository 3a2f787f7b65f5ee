package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/cache"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	reader *storage.Reader
	op     actionProcessor
	totals cache.TotalsCache
}

func NewTransactionService(reader *storage.Reader, op actionProcessor, totals cache.TotalsCache) *TransactionService {
	return &TransactionService{reader: reader, op: op, totals: totals}
}

// Create stores a transaction for ownerID. A category, when given, must
// belong to the same owner.
func (s *TransactionService) Create(ctx context.Context, create TransactionCreate, ownerID int64) (*Transaction, error) {
	action := &actions.CreateTransaction{
		UserID:     ownerID,
		Title:      create.Title,
		Type:       create.Type,
		Amount:     create.Amount,
		CategoryID: create.CategoryID,
	}
	if err := s.op.Process(ctx, action); err != nil {
		return nil, err
	}
	transaction := transactionFromRow(action.Result)
	return &transaction, nil
}

// FindOne returns the transaction with its category attached, or NotFound.
func (s *TransactionService) FindOne(ctx context.Context, id int64) (*Transaction, error) {
	row, err := s.reader.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperror.NotFound("transaction not found")
	}

	transactions := []Transaction{transactionFromRow(row)}
	if err := s.attachCategories(ctx, transactions); err != nil {
		return nil, err
	}
	return &transactions[0], nil
}

// Update replaces the set fields of an existing transaction.
func (s *TransactionService) Update(ctx context.Context, id int64, update TransactionUpdate) (*UpdateResult, error) {
	action := &actions.UpdateTransaction{
		ID: id,
		Update: &sqlconfig.TransactionUpdate{
			Title:      update.Title,
			Type:       update.Type,
			Amount:     update.Amount,
			CategoryID: update.CategoryID,
		},
	}
	if err := s.op.Process(ctx, action); err != nil {
		return nil, err
	}
	return &UpdateResult{Affected: action.Affected}, nil
}

// Remove deletes a transaction.
func (s *TransactionService) Remove(ctx context.Context, id int64) (*DeleteResult, error) {
	action := &actions.RemoveTransaction{ID: id}
	if err := s.op.Process(ctx, action); err != nil {
		return nil, err
	}
	return &DeleteResult{Affected: action.Affected}, nil
}

// FindAll returns the owner's transactions newest first, each with its category.
func (s *TransactionService) FindAll(ctx context.Context, ownerID int64) ([]Transaction, error) {
	return s.list(ctx, &sqlconfig.TransactionFilter{UserID: ownerID})
}

// FindAllWithPagination returns one page of the owner's transactions with
// category and owner attached. page starts at 1.
func (s *TransactionService) FindAllWithPagination(ctx context.Context, ownerID int64, page, pageSize int) ([]Transaction, error) {
	page, pageSize = normalizePage(page, pageSize)
	transactions, err := s.list(ctx, &sqlconfig.TransactionFilter{
		UserID: ownerID,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return transactions, nil
	}

	row, err := s.reader.Users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if row != nil {
		owner := userFromRow(row)
		for i := range transactions {
			transactions[i].User = &owner
		}
	}
	return transactions, nil
}

// FindAllByType sums the amounts of the owner's transactions tagged
// transactionType. No matching transactions sum to zero. Writers drop the
// cached totals after their commit, see operator.Operator.
func (s *TransactionService) FindAllByType(ctx context.Context, ownerID int64, transactionType string) (decimal.Decimal, error) {
	cached, slot, ok := s.totals.Get(ctx, ownerID, transactionType)
	if ok {
		return cached, nil
	}

	total, err := s.reader.Transactions.SumByType(ctx, ownerID, transactionType)
	if err != nil {
		return decimal.Zero, err
	}
	s.totals.Set(ctx, slot, total)
	return total, nil
}

func (s *TransactionService) list(ctx context.Context, filter *sqlconfig.TransactionFilter) ([]Transaction, error) {
	rows, err := s.reader.Transactions.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	transactions := make([]Transaction, len(rows))
	for i, row := range rows {
		transactions[i] = transactionFromRow(row)
	}
	if err := s.attachCategories(ctx, transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (s *TransactionService) attachCategories(ctx context.Context, transactions []Transaction) error {
	seen := make(map[int64]bool)
	var ids []int64
	for _, t := range transactions {
		if t.CategoryID != nil && !seen[*t.CategoryID] {
			seen[*t.CategoryID] = true
			ids = append(ids, *t.CategoryID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := s.reader.Categories.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[int64]*Category, len(rows))
	for _, row := range rows {
		category := categoryFromRow(row)
		byID[row.ID] = &category
	}
	for i := range transactions {
		if transactions[i].CategoryID != nil {
			transactions[i].Category = byID[*transactions[i].CategoryID]
		}
	}
	return nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
