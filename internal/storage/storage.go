package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-tracker/internal/config"
)

// Storage owns the connection pool. Reads go through the embedded Reader,
// mutations through a Writer bound to a transaction.
type Storage struct {
	*Reader
	DB    *sql.DB
	bobDB bob.DB
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresDSN())
	if err != nil {
		return nil, errors.Wrap(err, "sql.Open")
	}
	return NewStorageFromDB(db), nil
}

func NewStorageFromDB(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)
	return &Storage{
		Reader: NewReader(bobDB),
		DB:     db,
		bobDB:  bobDB,
	}
}

// Write opens a database transaction and returns a Writer bound to it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bobDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin transaction")
	}
	return NewWriter(tx), nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
