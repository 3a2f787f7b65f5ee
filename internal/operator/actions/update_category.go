package actions

import (
	"context"
	"errors"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

type UpdateCategory struct {
	ID     int64
	Update *sqlconfig.CategoryUpdate

	Affected int64
}

func (u *UpdateCategory) Name() string { return "update_category" }

func (u *UpdateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	current, err := writer.Categories.FindByID(ctx, u.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return apperror.NotFound("category not found")
	}

	if title, ok := u.Update.Title.Get(); ok && title != current.Title {
		clash, err := writer.Categories.FindByTitle(ctx, current.UserID, title)
		if err != nil {
			return err
		}
		if clash != nil {
			return apperror.BadRequest("category already exists")
		}
	}

	u.Affected, err = writer.Categories.Update(ctx, u.ID, u.Update)
	// A concurrent writer can pass the lookup above first.
	if errors.Is(err, sqlconfig.ErrDuplicate) {
		return apperror.BadRequest("category already exists")
	}
	return err
}
