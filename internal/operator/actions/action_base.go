package actions

import (
	"context"

	"github.com/carson-networks/finance-tracker/internal/storage"
)

// IAction is a unit of work run by the operator inside one database
// transaction. Results are written back onto the action itself.
type IAction interface {
	Name() string
	Perform(ctx context.Context, writer *storage.Writer) error
}

// TotalsChanger is implemented by actions that can change a user's
// per-type totals. The operator invalidates them once the action commits.
type TotalsChanger interface {
	TotalsOwner() (userID int64, changed bool)
}
