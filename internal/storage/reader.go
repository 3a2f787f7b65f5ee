package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

type Reader struct {
	Users        sqlconfig.IUserTable
	Categories   sqlconfig.ICategoryTable
	Transactions sqlconfig.ITransactionTable
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Users:        sqlconfig.NewUsersTable(exec),
		Categories:   sqlconfig.NewCategoriesTable(exec),
		Transactions: sqlconfig.NewTransactionsTable(exec),
	}
}
