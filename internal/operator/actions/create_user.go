package actions

import (
	"context"
	"errors"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

type CreateUser struct {
	Email        string
	PasswordHash string

	Result *sqlconfig.User
}

func (c *CreateUser) Name() string { return "create_user" }

func (c *CreateUser) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Users.FindByEmail(ctx, c.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.BadRequest("this email already exists")
	}

	c.Result, err = writer.Users.Insert(ctx, &sqlconfig.UserCreate{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
	})
	// A concurrent writer can pass the lookup above first.
	if errors.Is(err, sqlconfig.ErrDuplicate) {
		return apperror.BadRequest("this email already exists")
	}
	return err
}
