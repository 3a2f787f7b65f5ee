package sqlconfig

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/scan"
)

const (
	usersTable        = "users"
	categoriesTable   = "categories"
	transactionsTable = "transactions"
)

var (
	userColumns        = []any{"id", "email", "password", "created_at", "updated_at"}
	categoryColumns    = []any{"id", "title", "user_id", "created_at", "updated_at"}
	transactionColumns = []any{"id", "title", "type", "amount", "user_id", "category_id", "created_at", "updated_at"}
)

// ErrDuplicate is returned by writes that hit a unique index.
var ErrDuplicate = errors.New("duplicate key")

const uniqueViolation = pq.ErrorCode("23505")

// wrapWrite wraps err with op, mapping unique violations to ErrDuplicate.
func wrapWrite(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return errors.Wrap(ErrDuplicate, op)
	}
	return errors.Wrap(err, op)
}

func byID(id int64) bob.Expression {
	return psql.Quote("id").EQ(psql.Arg(id))
}

// findOne runs q and maps the single row. A missing row is not an error.
func findOne[T any](ctx context.Context, exec bob.Executor, q bob.Query, op string) (*T, error) {
	row, err := bob.One(ctx, exec, q, scan.StructMapper[*T]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapWrite(err, op)
	}
	return row, nil
}

func execAffected(ctx context.Context, exec bob.Executor, q bob.Query, op string) (int64, error) {
	res, err := bob.Exec(ctx, exec, q)
	if err != nil {
		return 0, wrapWrite(err, op)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, op)
	}
	return affected, nil
}
