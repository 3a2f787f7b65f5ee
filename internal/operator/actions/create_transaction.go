package actions

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

type CreateTransaction struct {
	UserID     int64
	Title      string
	Type       *string
	Amount     decimal.Decimal
	CategoryID *int64

	Result *sqlconfig.Transaction
}

func (t *CreateTransaction) Name() string { return "create_transaction" }

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if t.CategoryID != nil {
		if err := requireOwnedCategory(ctx, writer, *t.CategoryID, t.UserID); err != nil {
			return err
		}
	}

	row, err := writer.Transactions.Insert(ctx, &sqlconfig.TransactionCreate{
		Title:      t.Title,
		Type:       t.Type,
		Amount:     t.Amount,
		UserID:     t.UserID,
		CategoryID: t.CategoryID,
	})
	if err != nil {
		return err
	}
	if row == nil {
		return apperror.BadRequest("transaction creation failed")
	}

	t.Result = row
	return nil
}

// requireOwnedCategory fails unless the category exists and belongs to userID.
func requireOwnedCategory(ctx context.Context, writer *storage.Writer, categoryID, userID int64) error {
	category, err := writer.Categories.FindByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category == nil || category.UserID != userID {
		return apperror.BadRequest("category not found")
	}
	return nil
}

// Untyped transactions never count toward a total.
func (t *CreateTransaction) TotalsOwner() (int64, bool) {
	return t.UserID, t.Result != nil && t.Type != nil
}
