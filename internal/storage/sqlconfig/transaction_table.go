package sqlconfig

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

// FindByID retrieves a transaction by primary key.
func (t *TransactionsTable) FindByID(ctx context.Context, id int64) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From(transactionsTable),
		sm.Where(byID(id)),
	)
	return findOne[Transaction](ctx, t.exec, q, "find transaction by id")
}

// Insert creates a new transaction and returns the stored row.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	q := psql.Insert(
		im.Into(transactionsTable, "title", "type", "amount", "user_id", "category_id"),
		im.Values(psql.Arg(create.Title, create.Type, create.Amount, create.UserID, create.CategoryID)),
		im.Returning(transactionColumns...),
	)
	return findOne[Transaction](ctx, t.exec, q, "insert transaction")
}

// List returns transactions matching the filter. Nil filter returns all.
func (t *TransactionsTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From(transactionsTable),
	}
	if filter != nil {
		if filter.UserID > 0 {
			queryMods = append(queryMods, sm.Where(psql.Quote("user_id").EQ(psql.Arg(filter.UserID))))
		}
		if len(filter.CategoryIDs) > 0 {
			ids := make([]any, len(filter.CategoryIDs))
			for i, id := range filter.CategoryIDs {
				ids[i] = id
			}
			queryMods = append(queryMods, sm.Where(psql.Quote("category_id").In(psql.Arg(ids...))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
	)
	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
	if err != nil {
		return nil, errors.Wrap(err, "list transactions")
	}
	return rows, nil
}

// SumByType adds up the amounts of the user's transactions of one type.
// No matching rows sums to zero.
func (t *TransactionsTable) SumByType(ctx context.Context, userID int64, transactionType string) (decimal.Decimal, error) {
	q := psql.Select(
		sm.Columns(psql.Raw("COALESCE(SUM(amount), 0)")),
		sm.From(transactionsTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("type").EQ(psql.Arg(transactionType))),
	)
	sum, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[decimal.Decimal])
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "sum transactions by type")
	}
	return sum, nil
}

// Update applies the set fields and reports the number of rows changed.
func (t *TransactionsTable) Update(ctx context.Context, id int64, update *TransactionUpdate) (int64, error) {
	mods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(transactionsTable),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(byID(id)),
	}
	if title, ok := update.Title.Get(); ok {
		mods = append(mods, um.SetCol("title").ToArg(title))
	}
	if amount, ok := update.Amount.Get(); ok {
		mods = append(mods, um.SetCol("amount").ToArg(amount))
	}
	if !update.Type.IsUnset() {
		var value *string
		if v, ok := update.Type.Get(); ok {
			value = &v
		}
		mods = append(mods, um.SetCol("type").ToArg(value))
	}
	if !update.CategoryID.IsUnset() {
		var value *int64
		if v, ok := update.CategoryID.Get(); ok {
			value = &v
		}
		mods = append(mods, um.SetCol("category_id").ToArg(value))
	}
	return execAffected(ctx, t.exec, psql.Update(mods...), "update transaction")
}

// Delete removes a transaction and reports the number of rows removed.
func (t *TransactionsTable) Delete(ctx context.Context, id int64) (int64, error) {
	q := psql.Delete(
		dm.From(transactionsTable),
		dm.Where(byID(id)),
	)
	return execAffected(ctx, t.exec, q, "delete transaction")
}
