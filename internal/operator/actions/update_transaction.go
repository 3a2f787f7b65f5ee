package actions

import (
	"context"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

type UpdateTransaction struct {
	ID     int64
	Update *sqlconfig.TransactionUpdate

	// Previous is the row as it was before the update.
	Previous *sqlconfig.Transaction
	Affected int64
}

func (u *UpdateTransaction) Name() string { return "update_transaction" }

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	current, err := writer.Transactions.FindByID(ctx, u.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return apperror.NotFound("transaction not found")
	}
	u.Previous = current

	if categoryID, ok := u.Update.CategoryID.Get(); ok {
		if err := requireOwnedCategory(ctx, writer, categoryID, current.UserID); err != nil {
			return err
		}
	}

	u.Affected, err = writer.Transactions.Update(ctx, u.ID, u.Update)
	return err
}

func (u *UpdateTransaction) TotalsOwner() (int64, bool) {
	if u.Previous == nil {
		return 0, false
	}
	return u.Previous.UserID, u.Affected > 0
}
