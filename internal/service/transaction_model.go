package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// Transaction represents a transaction in the service layer. Category and
// User are only set by the reads that join them.
type Transaction struct {
	ID         int64
	Title      string
	Type       *string
	Amount     decimal.Decimal
	UserID     int64
	CategoryID *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category *Category
	User     *User
}

// TransactionCreate is the input for creating a transaction.
type TransactionCreate struct {
	Title      string
	Type       *string
	Amount     decimal.Decimal
	CategoryID *int64
}

// TransactionUpdate holds the fields to replace. A null Type or CategoryID
// clears the column.
type TransactionUpdate struct {
	Title      omit.Val[string]
	Type       omitnull.Val[string]
	Amount     omit.Val[decimal.Decimal]
	CategoryID omitnull.Val[int64]
}

func transactionFromRow(row *sqlconfig.Transaction) Transaction {
	return Transaction{
		ID:         row.ID,
		Title:      row.Title,
		Type:       row.Type,
		Amount:     row.Amount,
		UserID:     row.UserID,
		CategoryID: row.CategoryID,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
