package actions

import (
	"context"
	"errors"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

type CreateCategory struct {
	UserID int64
	Title  string

	Result *sqlconfig.Category
}

func (c *CreateCategory) Name() string { return "create_category" }

func (c *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Categories.FindByTitle(ctx, c.UserID, c.Title)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.BadRequest("category already exists")
	}

	c.Result, err = writer.Categories.Insert(ctx, &sqlconfig.CategoryCreate{
		Title:  c.Title,
		UserID: c.UserID,
	})
	// A concurrent writer can pass the lookup above first.
	if errors.Is(err, sqlconfig.ErrDuplicate) {
		return apperror.BadRequest("category already exists")
	}
	return err
}
