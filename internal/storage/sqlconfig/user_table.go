package sqlconfig

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

// UsersTable provides access to the users table.
type UsersTable struct {
	exec bob.Executor
}

var _ IUserTable = (*UsersTable)(nil)

func NewUsersTable(exec bob.Executor) *UsersTable {
	return &UsersTable{exec: exec}
}

// FindByID retrieves a user by primary key.
func (t *UsersTable) FindByID(ctx context.Context, id int64) (*User, error) {
	q := psql.Select(
		sm.Columns(userColumns...),
		sm.From(usersTable),
		sm.Where(byID(id)),
	)
	return findOne[User](ctx, t.exec, q, "find user by id")
}

// FindByEmail retrieves a user by their unique email.
func (t *UsersTable) FindByEmail(ctx context.Context, email string) (*User, error) {
	q := psql.Select(
		sm.Columns(userColumns...),
		sm.From(usersTable),
		sm.Where(psql.Quote("email").EQ(psql.Arg(email))),
	)
	return findOne[User](ctx, t.exec, q, "find user by email")
}

// Insert creates a user and returns the stored row.
func (t *UsersTable) Insert(ctx context.Context, create *UserCreate) (*User, error) {
	q := psql.Insert(
		im.Into(usersTable, "email", "password"),
		im.Values(psql.Arg(create.Email, create.PasswordHash)),
		im.Returning(userColumns...),
	)
	return findOne[User](ctx, t.exec, q, "insert user")
}
