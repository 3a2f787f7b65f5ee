package actions

import (
	"context"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

type RemoveTransaction struct {
	ID int64

	Removed  *sqlconfig.Transaction
	Affected int64
}

func (r *RemoveTransaction) Name() string { return "remove_transaction" }

func (r *RemoveTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	current, err := writer.Transactions.FindByID(ctx, r.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return apperror.NotFound("transaction not found")
	}
	r.Removed = current

	r.Affected, err = writer.Transactions.Delete(ctx, r.ID)
	return err
}

func (r *RemoveTransaction) TotalsOwner() (int64, bool) {
	if r.Removed == nil {
		return 0, false
	}
	return r.Removed.UserID, r.Affected > 0
}
