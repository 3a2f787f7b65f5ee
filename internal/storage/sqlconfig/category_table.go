package sqlconfig

import (
	"context"

	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

// CategoriesTable provides access to the categories table.
type CategoriesTable struct {
	exec bob.Executor
}

var _ ICategoryTable = (*CategoriesTable)(nil)

func NewCategoriesTable(exec bob.Executor) *CategoriesTable {
	return &CategoriesTable{exec: exec}
}

// FindByID retrieves a category by primary key.
func (t *CategoriesTable) FindByID(ctx context.Context, id int64) (*Category, error) {
	q := psql.Select(
		sm.Columns(categoryColumns...),
		sm.From(categoriesTable),
		sm.Where(byID(id)),
	)
	return findOne[Category](ctx, t.exec, q, "find category by id")
}

// FindByTitle retrieves the user's category with the given title.
func (t *CategoriesTable) FindByTitle(ctx context.Context, userID int64, title string) (*Category, error) {
	q := psql.Select(
		sm.Columns(categoryColumns...),
		sm.From(categoriesTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("title").EQ(psql.Arg(title))),
	)
	return findOne[Category](ctx, t.exec, q, "find category by title")
}

// ListByUser returns every category owned by the user, in title order.
func (t *CategoriesTable) ListByUser(ctx context.Context, userID int64) ([]*Category, error) {
	q := psql.Select(
		sm.Columns(categoryColumns...),
		sm.From(categoriesTable),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy("title").Asc(),
	)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[*Category]())
	if err != nil {
		return nil, errors.Wrap(err, "list categories by user")
	}
	return rows, nil
}

// ListByIDs returns the categories with the given ids. Unknown ids are skipped.
func (t *CategoriesTable) ListByIDs(ctx context.Context, ids []int64) ([]*Category, error) {
	if len(ids) == 0 {
		return []*Category{}, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	q := psql.Select(
		sm.Columns(categoryColumns...),
		sm.From(categoriesTable),
		sm.Where(psql.Quote("id").In(psql.Arg(args...))),
	)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[*Category]())
	if err != nil {
		return nil, errors.Wrap(err, "list categories by ids")
	}
	return rows, nil
}

// Insert creates a category and returns the stored row.
func (t *CategoriesTable) Insert(ctx context.Context, create *CategoryCreate) (*Category, error) {
	q := psql.Insert(
		im.Into(categoriesTable, "title", "user_id"),
		im.Values(psql.Arg(create.Title, create.UserID)),
		im.Returning(categoryColumns...),
	)
	return findOne[Category](ctx, t.exec, q, "insert category")
}

// Update applies the set fields and reports the number of rows changed.
func (t *CategoriesTable) Update(ctx context.Context, id int64, update *CategoryUpdate) (int64, error) {
	mods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(categoriesTable),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(byID(id)),
	}
	if title, ok := update.Title.Get(); ok {
		mods = append(mods, um.SetCol("title").ToArg(title))
	}
	return execAffected(ctx, t.exec, psql.Update(mods...), "update category")
}

// Delete removes a category and reports the number of rows removed.
func (t *CategoriesTable) Delete(ctx context.Context, id int64) (int64, error) {
	q := psql.Delete(
		dm.From(categoriesTable),
		dm.Where(byID(id)),
	)
	return execAffected(ctx, t.exec, q, "delete category")
}
