package actions

import (
	"context"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

type RemoveCategory struct {
	ID int64

	Affected int64
}

func (r *RemoveCategory) Name() string { return "remove_category" }

func (r *RemoveCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	current, err := writer.Categories.FindByID(ctx, r.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return apperror.NotFound("category not found")
	}

	r.Affected, err = writer.Categories.Delete(ctx, r.ID)
	return err
}
