package sqlconfig

import (
	"context"
	"time"
)

// User represents a users row.
type User struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// UserCreate is the input for creating a new user.
type UserCreate struct {
	Email        string
	PasswordHash string
}

// IUserTable defines the interface for user storage operations.
// Lookups return a nil row and no error when nothing matches.
//
//go:generate mockery --name IUserTable --output mock_IUserTable.go
type IUserTable interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, create *UserCreate) (*User, error)
}
