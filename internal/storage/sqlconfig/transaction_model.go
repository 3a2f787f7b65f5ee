package sqlconfig

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/shopspring/decimal"
)

// Transaction represents a transactions row.
type Transaction struct {
	ID         int64           `db:"id"`
	Title      string          `db:"title"`
	Type       *string         `db:"type"`
	Amount     decimal.Decimal `db:"amount"`
	UserID     int64           `db:"user_id"`
	CategoryID *int64          `db:"category_id"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	Title      string
	Type       *string
	Amount     decimal.Decimal
	UserID     int64
	CategoryID *int64
}

// TransactionUpdate holds the fields to replace. Unset fields are left alone,
// null clears the nullable columns.
type TransactionUpdate struct {
	Title      omit.Val[string]
	Type       omitnull.Val[string]
	Amount     omit.Val[decimal.Decimal]
	CategoryID omitnull.Val[int64]
}

// TransactionFilter specifies filters for listing transactions.
// Results are always ordered newest first.
type TransactionFilter struct {
	UserID      int64
	CategoryIDs []int64
	Limit       int
	Offset      int
}

// ITransactionTable defines the interface for transaction storage operations.
// Lookups return a nil row and no error when nothing matches.
//
//go:generate mockery --name ITransactionTable --output mock_ITransactionTable.go
type ITransactionTable interface {
	FindByID(ctx context.Context, id int64) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	SumByType(ctx context.Context, userID int64, transactionType string) (decimal.Decimal, error)
	Update(ctx context.Context, id int64, update *TransactionUpdate) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
